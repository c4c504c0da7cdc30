package gleaner

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/cobalt-ridge/gleaner/internal/engine"
	"github.com/cobalt-ridge/gleaner/internal/engine/event"
	"github.com/cobalt-ridge/gleaner/internal/engine/labeler"
	"github.com/cobalt-ridge/gleaner/internal/model"

	// Register the labeler implementations selectable via WithLabeler.
	_ "github.com/cobalt-ridge/gleaner/internal/engine/labeler/genai"
	_ "github.com/cobalt-ridge/gleaner/internal/engine/labeler/heuristic"
	_ "github.com/cobalt-ridge/gleaner/internal/engine/labeler/onnx"
	_ "github.com/cobalt-ridge/gleaner/internal/engine/labeler/prose"
	_ "github.com/cobalt-ridge/gleaner/internal/engine/labeler/remote"
)

// Gleaner extracts named entities and events from news text.
type Gleaner struct {
	engine *engine.Engine
}

// New creates a Gleaner. With no options it uses the pure-Go statistical
// source and the built-in event rule table.
func New(opts ...Option) (*Gleaner, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ctor, err := labeler.Get(o.labelerKind)
	if err != nil {
		return nil, fmt.Errorf("gleaner: %w", err)
	}
	source, err := ctor(labeler.Config{
		Kind:     o.labelerKind,
		ModelDir: o.modelDir,
		Endpoint: o.endpoint,
		APIKey:   o.apiKey,
		Model:    o.model,
	})
	if err != nil {
		return nil, fmt.Errorf("gleaner: create %s labeler: %w", o.labelerKind, err)
	}

	var rules []event.Rule
	switch {
	case len(o.patterns) > 0:
		rules = compilePatterns(o.patterns)
	case o.patternPath != "":
		rules, err = event.LoadRules(o.patternPath)
		if err != nil {
			source.Close()
			return nil, fmt.Errorf("gleaner: %w", err)
		}
	}

	return &Gleaner{engine: engine.New(source, rules)}, nil
}

// compilePatterns turns source-form rules into the compiled table, with
// the same skip-on-error behavior as rule-file loading.
func compilePatterns(patterns []Pattern) []event.Rule {
	rules := make([]event.Rule, 0, len(patterns))
	for _, p := range patterns {
		if p.Type == "" || p.Pattern == "" {
			slog.Warn("skipping incomplete event rule", "type", p.Type, "pattern", p.Pattern)
			continue
		}
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			slog.Warn("skipping event rule with invalid pattern", "type", p.Type, "error", err)
			continue
		}
		rules = append(rules, event.Rule{Type: p.Type, Pattern: re, Attributes: p.Attributes})
	}
	return rules
}

// Process extracts all entity types and events from text.
func (g *Gleaner) Process(ctx context.Context, text string) Result {
	return fromInternal(g.engine.Process(ctx, text, nil, true))
}

// ProcessFiltered restricts extraction to the named entity types (nil or
// empty means all) and skips events unless includeEvents is set.
func (g *Gleaner) ProcessFiltered(ctx context.Context, text string, entityTypes []string, includeEvents bool) Result {
	return fromInternal(g.engine.Process(ctx, text, entityTypes, includeEvents))
}

// EntityTypes lists the canonical entity type names in display order.
func (g *Gleaner) EntityTypes() []string {
	return g.engine.Registry().Names()
}

// Close releases the statistical source. Call it when the Gleaner is no
// longer needed.
func (g *Gleaner) Close() error {
	return g.engine.Close()
}

func fromInternal(r model.Result) Result {
	out := Result{
		Entities: make([]Entity, len(r.Entities)),
		Events:   make([]Event, len(r.Events)),
		Statistics: Statistics{
			TotalEntities: r.Statistics.TotalEntities,
			TotalEvents:   r.Statistics.TotalEvents,
			EntityCounts:  r.Statistics.EntityCounts,
			EventCounts:   r.Statistics.EventCounts,
		},
		HighlightedText: r.HighlightedText,
	}
	for i, e := range r.Entities {
		out.Entities[i] = Entity{
			Text:       e.Text,
			Type:       e.Type,
			Start:      e.Start,
			End:        e.End,
			Confidence: e.Confidence,
			Context:    e.Context,
		}
	}
	for i, ev := range r.Events {
		out.Events[i] = Event{
			Text:       ev.Text,
			Type:       ev.Type,
			Start:      ev.Start,
			End:        ev.End,
			Confidence: ev.Confidence,
			Context:    ev.Context,
			Attributes: ev.Attributes,
		}
	}
	return out
}
