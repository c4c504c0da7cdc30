// Package entity implements named-entity extraction: statistical-source
// spans mapped into the canonical vocabulary, pattern-rule matches for the
// types the source does not cover, and cross-source deduplication.
package entity

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/cobalt-ridge/gleaner/internal/engine/labeler"
	"github.com/cobalt-ridge/gleaner/internal/model"
)

// sourceConfidence is the fixed score for statistical-source annotations.
const sourceConfidence = 0.8

// Extractor merges statistical-source spans with pattern-rule matches into
// one ordered, duplicate-free annotation list.
type Extractor struct {
	source labeler.Labeler
	rules  []Rule
}

// New creates an Extractor. source may be nil to run pattern rules only.
func New(source labeler.Labeler, rules []Rule) *Extractor {
	if source == nil {
		source = labeler.Null{}
	}
	return &Extractor{source: source, rules: rules}
}

// Extract returns the deduplicated annotations found in text, ordered by
// start offset. selected filters by canonical type; nil or empty means no
// filter. A failing statistical source degrades to pattern-only extraction
// rather than failing the call.
func (x *Extractor) Extract(ctx context.Context, text string, selected []string) []model.Annotation {
	keep := filterSet(selected)

	var entities []model.Annotation

	spans, err := x.source.Label(ctx, text)
	if err != nil {
		slog.Warn("statistical source failed, continuing with pattern rules", "error", err)
		spans = nil
	}
	for _, s := range spans {
		if s.Start < 0 || s.End > len(text) || s.Start >= s.End {
			continue
		}
		typ := MapLabel(s.Label)
		if keep != nil && !keep[typ] {
			continue
		}
		entities = append(entities, model.Annotation{
			Text:       text[s.Start:s.End],
			Type:       typ,
			Start:      s.Start,
			End:        s.End,
			Confidence: sourceConfidence,
			Context:    model.ContextWindow(text, s.Start, s.End),
		})
	}

	entities = append(entities, matchRules(text, x.rules, keep)...)

	return dedupe(entities)
}

// filterSet converts the selected-types list into a lookup set. nil or
// empty input means no filtering.
func filterSet(selected []string) map[string]bool {
	if len(selected) == 0 {
		return nil
	}
	set := make(map[string]bool, len(selected))
	for _, t := range selected {
		set[t] = true
	}
	return set
}

// dedupe drops annotations already seen under the key (lowercased text,
// start, end), keeping the first occurrence, then orders by start. Source
// annotations are appended before pattern matches, so they win ties.
func dedupe(entities []model.Annotation) []model.Annotation {
	type key struct {
		text  string
		start int
		end   int
	}
	seen := make(map[key]bool, len(entities))
	var unique []model.Annotation
	for _, e := range entities {
		k := key{strings.ToLower(e.Text), e.Start, e.End}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, e)
	}
	sort.SliceStable(unique, func(i, j int) bool { return unique[i].Start < unique[j].Start })
	return unique
}
