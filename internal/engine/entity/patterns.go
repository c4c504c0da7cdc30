package entity

import (
	"regexp"

	"github.com/cobalt-ridge/gleaner/internal/model"
)

// Rule is one pattern-extraction rule bound to a canonical type and a fixed
// confidence.
type Rule struct {
	Type       string
	Confidence float64
	Pattern    *regexp.Regexp
}

// DefaultRules returns the built-in contact rules: email addresses and
// North American phone numbers.
func DefaultRules() []Rule {
	return []Rule{
		{
			Type:       "CONTACT",
			Confidence: 0.9,
			Pattern:    regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		},
		{
			Type:       "CONTACT",
			Confidence: 0.85,
			Pattern:    regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`),
		},
	}
}

// matchRules scans text with every rule whose type passes the filter,
// emitting one annotation per non-overlapping match.
func matchRules(text string, rules []Rule, keep map[string]bool) []model.Annotation {
	var out []model.Annotation
	for _, r := range rules {
		if keep != nil && !keep[r.Type] {
			continue
		}
		for _, m := range r.Pattern.FindAllStringIndex(text, -1) {
			out = append(out, model.Annotation{
				Text:       text[m[0]:m[1]],
				Type:       r.Type,
				Start:      m[0],
				End:        m[1],
				Confidence: r.Confidence,
				Context:    model.ContextWindow(text, m[0], m[1]),
			})
		}
	}
	return out
}
