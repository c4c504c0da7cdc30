// Package engine wires the extraction pipeline: a statistical labeling
// source merged with pattern rules, the event rule table, statistics, and
// span highlighting over the original text.
package engine

import (
	"context"

	"github.com/cobalt-ridge/gleaner/internal/engine/entity"
	"github.com/cobalt-ridge/gleaner/internal/engine/event"
	"github.com/cobalt-ridge/gleaner/internal/engine/highlight"
	"github.com/cobalt-ridge/gleaner/internal/engine/labeler"
	"github.com/cobalt-ridge/gleaner/internal/engine/registry"
	"github.com/cobalt-ridge/gleaner/internal/engine/stats"
	"github.com/cobalt-ridge/gleaner/internal/model"
)

// Engine orchestrates the extract → aggregate → highlight pipeline.
type Engine struct {
	reg      *registry.Registry
	entities *entity.Extractor
	events   *event.Extractor
	source   labeler.Labeler
}

// New creates an Engine around a statistical source. A nil source runs
// pattern rules only; nil eventRules selects the default table.
func New(source labeler.Labeler, eventRules []event.Rule) *Engine {
	return &Engine{
		reg:      registry.Default(),
		entities: entity.New(source, entity.DefaultRules()),
		events:   event.New(eventRules),
		source:   source,
	}
}

// Process extracts entities (and events, when includeEvents is set) from
// text, aggregates statistics, and renders the highlighted text. Valid
// input never fails: empty text yields empty lists and highlighted text
// equal to the input. The returned lists are always non-nil.
func (e *Engine) Process(ctx context.Context, text string, selectedTypes []string, includeEvents bool) model.Result {
	entities := e.entities.Extract(ctx, text, selectedTypes)
	if entities == nil {
		entities = []model.Annotation{}
	}

	events := []model.Event{}
	if includeEvents {
		if found := e.events.Extract(text); found != nil {
			events = found
		}
	}

	return model.Result{
		Entities:        entities,
		Events:          events,
		Statistics:      stats.Collect(entities, events),
		HighlightedText: highlight.Render(text, entities, events, e.reg),
	}
}

// Registry exposes the canonical type vocabulary for presentation layers.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// Close releases the statistical source.
func (e *Engine) Close() error {
	if e.source != nil {
		return e.source.Close()
	}
	return nil
}
