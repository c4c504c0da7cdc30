// Package event finds structured happenings in news text by matching an
// ordered table of regular-expression rules, each carrying named capture
// groups that become event attributes.
package event

import (
	"regexp"
	"sort"

	"github.com/cobalt-ridge/gleaner/internal/model"
)

const (
	patternConfidence  = 0.7
	temporalConfidence = 0.6
)

// temporalPattern finds a time marker followed by the clause it introduces.
var temporalPattern = regexp.MustCompile(`(?i)(yesterday|today|tomorrow|last\s+\w+|next\s+\w+|on\s+\w+)\s+([^.]+)`)

// Extractor matches a rule table plus a built-in temporal pass against
// document text.
type Extractor struct {
	rules []Rule
}

// New returns an Extractor over the given rule table. A nil table selects
// DefaultRules.
func New(rules []Rule) *Extractor {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Extractor{rules: rules}
}

// Extract returns every rule match and temporal match in text, ordered by
// start offset. Matches from different rules may overlap; events are not
// deduplicated.
func (e *Extractor) Extract(text string) []model.Event {
	var events []model.Event
	for _, r := range e.rules {
		for _, m := range r.Pattern.FindAllStringSubmatchIndex(text, -1) {
			events = append(events, model.Event{
				Annotation: model.Annotation{
					Text:       text[m[0]:m[1]],
					Type:       r.Type,
					Start:      m[0],
					End:        m[1],
					Confidence: patternConfidence,
					Context:    model.ContextWindow(text, m[0], m[1]),
				},
				Attributes: captureAttributes(text, m, r.Attributes),
			})
		}
	}
	events = append(events, temporalEvents(text)...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Start < events[j].Start })
	return events
}

// captureAttributes resolves named capture groups from a submatch index
// vector. Groups that did not take part in the match yield no key.
func captureAttributes(text string, m []int, attrs map[string]int) map[string]string {
	out := make(map[string]string, len(attrs))
	for name, gi := range attrs {
		lo, hi := 2*gi, 2*gi+1
		if hi >= len(m) || m[lo] < 0 {
			continue
		}
		out[name] = text[m[lo]:m[hi]]
	}
	return out
}

func temporalEvents(text string) []model.Event {
	var events []model.Event
	for _, m := range temporalPattern.FindAllStringSubmatchIndex(text, -1) {
		events = append(events, model.Event{
			Annotation: model.Annotation{
				Text:       text[m[0]:m[1]],
				Type:       "TEMPORAL_EVENT",
				Start:      m[0],
				End:        m[1],
				Confidence: temporalConfidence,
				Context:    model.ContextWindow(text, m[0], m[1]),
			},
			Attributes: map[string]string{
				"temporal_marker":   text[m[2]:m[3]],
				"event_description": text[m[4]:m[5]],
			},
		})
	}
	return events
}
