// Package heuristic implements a deterministic statistical entity source:
// capitalized-run detection for people and organizations, currency amounts,
// and natural-language date references. It needs no model files or network
// access and serves as the fallback when no model-backed source is available.
package heuristic

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/cobalt-ridge/gleaner/internal/engine/labeler"
)

var (
	// Two or more capitalized words, optionally joined by of/the/for/and.
	capRun = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+(?:(?:of|the|for|and)\s+)?[A-Z][a-z]+)+\b`)

	// Currency amounts: $-prefixed figures with an optional scale word, or
	// figures followed by a currency noun.
	money = regexp.MustCompile(`(?i)\$[0-9][\d,]*(?:\.\d+)?(?:\s*(?:trillion|billion|million|thousand))?|\b\d[\d,]*(?:\.\d+)?\s*(?:dollars|euros|pounds|cents)\b`)
)

// orgMarkers classifies a capitalized run as an organization when any of
// its words matches.
var orgMarkers = map[string]bool{
	"Inc": true, "Corp": true, "Corporation": true, "Ltd": true, "LLC": true,
	"Group": true, "Company": true, "Bank": true, "University": true,
	"Ministry": true, "Authority": true, "Agency": true, "Institute": true,
	"Association": true, "Committee": true, "Council": true,
}

// Labeler finds spans with regex and calendar heuristics.
type Labeler struct {
	w *when.Parser
}

// New creates a heuristic Labeler with English date rules.
func New() *Labeler {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Labeler{w: w}
}

// Label runs all heuristic passes and returns their spans ordered by start.
func (l *Labeler) Label(ctx context.Context, text string) ([]labeler.Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var spans []labeler.Span
	for _, m := range capRun.FindAllStringIndex(text, -1) {
		run := text[m[0]:m[1]]
		spans = append(spans, labeler.Span{
			Text:  run,
			Start: m[0],
			End:   m[1],
			Label: classifyRun(run),
		})
	}
	for _, m := range money.FindAllStringIndex(text, -1) {
		spans = append(spans, labeler.Span{
			Text:  text[m[0]:m[1]],
			Start: m[0],
			End:   m[1],
			Label: "MONEY",
		})
	}
	spans = append(spans, l.dateSpans(text)...)

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans, nil
}

// classifyRun labels a capitalized run ORG when it carries an organization
// marker word, PERSON otherwise.
func classifyRun(run string) string {
	for _, w := range strings.Fields(run) {
		if orgMarkers[w] {
			return "ORG"
		}
	}
	return "PERSON"
}

// dateSpans walks the text with the when parser, emitting one DATE span per
// recognized calendar reference.
func (l *Labeler) dateSpans(text string) []labeler.Span {
	var spans []labeler.Span
	base := time.Now()
	offset := 0
	for offset < len(text) {
		r, err := l.w.Parse(text[offset:], base)
		if err != nil || r == nil {
			break
		}
		start := offset + r.Index
		end := start + len(r.Text)
		spans = append(spans, labeler.Span{
			Text:  text[start:end],
			Start: start,
			End:   end,
			Label: "DATE",
		})
		offset = end
	}
	return spans
}

// Close is a no-op.
func (l *Labeler) Close() error { return nil }

func init() {
	labeler.Register("heuristic", func(labeler.Config) (labeler.Labeler, error) {
		return New(), nil
	})
}
