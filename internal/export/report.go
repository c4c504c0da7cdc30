package export

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cobalt-ridge/gleaner/internal/model"
)

const reportRule = "=================================================="

// textRenderer produces the plain-text extraction report: run metadata,
// the statistics breakdown, then one detailed block per entity and event.
type textRenderer struct{}

func (textRenderer) Render(res model.Result) ([]byte, error) {
	var b strings.Builder

	b.WriteString("Named Entity and Event Extraction Report\n")
	b.WriteString(reportRule + "\n\n")

	if m := res.Metadata; m != nil {
		fmt.Fprintf(&b, "Processing Time: %s seconds\n", strconv.FormatFloat(m.ProcessingTime, 'g', -1, 64))
		fmt.Fprintf(&b, "Timestamp: %s\n", m.Timestamp)
		fmt.Fprintf(&b, "Text Length: %d characters\n\n", m.TextLength)
	}

	fmt.Fprintf(&b, "Total Entities: %d\n", res.Statistics.TotalEntities)
	fmt.Fprintf(&b, "Total Events: %d\n\n", res.Statistics.TotalEvents)

	b.WriteString("Entity Breakdown:\n")
	for _, t := range sortedKeys(res.Statistics.EntityCounts) {
		fmt.Fprintf(&b, "  %s: %d\n", t, res.Statistics.EntityCounts[t])
	}

	b.WriteString("\nEvent Breakdown:\n")
	for _, t := range sortedKeys(res.Statistics.EventCounts) {
		fmt.Fprintf(&b, "  %s: %d\n", t, res.Statistics.EventCounts[t])
	}

	b.WriteString("\n" + reportRule + "\n")
	b.WriteString("Detailed Entities:\n\n")
	for _, e := range res.Entities {
		fmt.Fprintf(&b, "[%s] %s (Confidence: %.2f)\n", e.Type, e.Text, e.Confidence)
		fmt.Fprintf(&b, "  Position: %d-%d\n", e.Start, e.End)
		fmt.Fprintf(&b, "  Context: %s\n\n", e.Context)
	}

	b.WriteString("Detailed Events:\n\n")
	for _, ev := range res.Events {
		fmt.Fprintf(&b, "[%s] %s (Confidence: %.2f)\n", ev.Type, ev.Text, ev.Confidence)
		fmt.Fprintf(&b, "  Position: %d-%d\n", ev.Start, ev.End)
		fmt.Fprintf(&b, "  Context: %s\n", ev.Context)
		for _, k := range sortedKeys(ev.Attributes) {
			if v := ev.Attributes[k]; v != "" {
				fmt.Fprintf(&b, "  %s: %s\n", titleCase(k), v)
			}
		}
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

func (textRenderer) ContentType() string { return "text/plain" }
func (textRenderer) Filename() string    { return "extraction_report.txt" }

// titleCase uppercases each letter that follows a non-letter and lowercases
// the rest, so "event_type" becomes "Event_Type".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}
