// Package stats aggregates extraction output into summary counts.
package stats

import "github.com/cobalt-ridge/gleaner/internal/model"

// Collect tallies entities and events by type. The count maps are always
// non-nil and their values sum to the respective totals.
func Collect(entities []model.Annotation, events []model.Event) model.Statistics {
	s := model.Statistics{
		TotalEntities: len(entities),
		TotalEvents:   len(events),
		EntityCounts:  make(map[string]int),
		EventCounts:   make(map[string]int),
	}
	for _, e := range entities {
		s.EntityCounts[e.Type]++
	}
	for _, e := range events {
		s.EventCounts[e.Type]++
	}
	return s
}
