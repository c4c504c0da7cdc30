// Package highlight renders extraction results as HTML span markup laid
// over the original text.
package highlight

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cobalt-ridge/gleaner/internal/engine/registry"
	"github.com/cobalt-ridge/gleaner/internal/model"
)

const spanMarkup = `<span class="highlight" data-type="%s" data-confidence="%s" style="background-color: %s; padding: 2px 4px; border-radius: 3px; margin: 1px;" title="%s (Confidence: %.2f)">%s</span>`

// Render wraps every entity and event span in text with highlight markup.
// Entities and events are merged entities-first, walked in start order, and
// regions not covered by any span pass through verbatim, so stripping the
// markup from non-overlapping output reproduces the input exactly. Spans
// must carry offsets into text; overlapping spans are emitted back to back,
// each with its own full span text.
func Render(text string, entities []model.Annotation, events []model.Event, reg *registry.Registry) string {
	items := make([]model.Annotation, 0, len(entities)+len(events))
	items = append(items, entities...)
	for _, ev := range events {
		items = append(items, ev.Annotation)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Start < items[j].Start })

	var b strings.Builder
	last := 0
	for _, it := range items {
		if it.Start > last {
			b.WriteString(text[last:it.Start])
		}
		conf := strconv.FormatFloat(it.Confidence, 'g', -1, 64)
		fmt.Fprintf(&b, spanMarkup, it.Type, conf, reg.Color(it.Type), it.Type, it.Confidence, it.Text)
		last = it.End
	}
	if last < len(text) {
		b.WriteString(text[last:])
	}
	return b.String()
}
