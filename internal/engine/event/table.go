package event

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Rule pairs a compiled pattern with the event type it yields. Attributes
// maps attribute names to capture group indexes within Pattern; a group
// that does not take part in a match contributes no attribute.
type Rule struct {
	Type       string
	Pattern    *regexp.Regexp
	Attributes map[string]int
}

// DefaultRules returns the built-in pattern table. The order is fixed:
// matches are reported table-first, then re-sorted by offset.
func DefaultRules() []Rule {
	return []Rule{
		{
			// Who announced what. The optional honorific keeps titled
			// names ("Dr. Smith") in the announcer capture.
			Type:    "ANNOUNCEMENT",
			Pattern: regexp.MustCompile(`((?:(?:Dr|Mr|Mrs|Ms|Prof)\.\s+)?[A-Z][a-zA-Z\s,]+?)\s+(announced|declared|revealed|unveiled|disclosed)\s+(?:that\s)?(.+?)(?:\.|$)`),
			Attributes: map[string]int{
				"announcer": 1,
				"action":    2,
				"content":   3,
			},
		},
		{
			// Gatherings and their participants.
			Type:    "MEETING",
			Pattern: regexp.MustCompile(`(?i)(a\s+meeting|conference|summit|gathering|assembly)\s+(?:between|among|with)\s+((?:[A-Z][\w\s,]+(?:(?:and|,)\s)?)+)`),
			Attributes: map[string]int{
				"event_type":   1,
				"participants": 2,
			},
		},
		{
			// Who took legal action against whom.
			Type:    "LEGAL_ACTION",
			Pattern: regexp.MustCompile(`([A-Z][\w\s,]+?)\s+(sued|filed\s+a\s+lawsuit\s+against|charged|convicted|sentenced)\s+([A-Z][\w\s,]+)`),
			Attributes: map[string]int{
				"plaintiff_or_authority": 1,
				"action":                 2,
				"defendant":              3,
			},
		},
		{
			// Metric, direction, and magnitude of an economic change.
			Type:    "ECONOMIC_CHANGE",
			Pattern: regexp.MustCompile(`(shares|revenue|profits|sales)\s+(rose|fell|increased|decreased|grew)\s+(?:by\s+)?([\d\.\s%]+)`),
			Attributes: map[string]int{
				"metric":    1,
				"direction": 2,
				"value":     3,
			},
		},
		{
			// Incident type and where it happened.
			Type:    "INCIDENT",
			Pattern: regexp.MustCompile(`(?i)\b(an?\s+accident|a\s+crash|a\s+collision|an\s+explosion|a\s+fire)\s+(?:at|in|near)\s+((?:the\s+)?[A-Z][\w\s,]+)`),
			Attributes: map[string]int{
				"incident_type": 1,
				"location":      2,
			},
		},
	}
}

// ruleSpec is the YAML form of a rule.
type ruleSpec struct {
	Type       string         `yaml:"type"`
	Pattern    string         `yaml:"pattern"`
	Attributes map[string]int `yaml:"attributes"`
}

// LoadRules reads a pattern table from a YAML file: an ordered list of
// {type, pattern, attributes} entries. Entries that are incomplete or whose
// pattern does not compile are skipped with a warning; the rest load
// normally. The returned table is not merged with the defaults.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("event: read rule table: %w", err)
	}
	var specs []ruleSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("event: parse rule table: %w", err)
	}
	rules := make([]Rule, 0, len(specs))
	for _, s := range specs {
		if s.Type == "" || s.Pattern == "" {
			slog.Warn("skipping incomplete event rule", "type", s.Type, "pattern", s.Pattern)
			continue
		}
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			slog.Warn("skipping event rule with invalid pattern", "type", s.Type, "error", err)
			continue
		}
		rules = append(rules, Rule{Type: s.Type, Pattern: re, Attributes: s.Attributes})
	}
	return rules, nil
}
