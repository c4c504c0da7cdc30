// Package prose implements the statistical entity source on top of the
// pure-Go prose NLP library. It ships its own model data, needs no external
// files or services, and is the default labeler kind.
package prose

import (
	"context"
	"fmt"

	"github.com/tsawler/prose/v3"

	"github.com/cobalt-ridge/gleaner/internal/engine/labeler"
)

// Labeler tags text with prose's built-in NER model.
type Labeler struct{}

// New creates a prose Labeler.
func New() *Labeler { return &Labeler{} }

// Label runs prose NER over text and returns its entity mentions as spans.
// Mentions with offsets outside the text bounds are dropped.
func (l *Labeler) Label(ctx context.Context, text string) ([]labeler.Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}
	var spans []labeler.Span
	for _, ent := range doc.Entities() {
		if ent.Start < 0 || ent.End > len(text) || ent.Start >= ent.End {
			continue
		}
		spans = append(spans, labeler.Span{
			Text:  ent.Text,
			Start: ent.Start,
			End:   ent.End,
			Label: ent.Label,
		})
	}
	return spans, nil
}

// Close is a no-op; prose holds no external resources.
func (l *Labeler) Close() error { return nil }

func init() {
	labeler.Register("prose", func(labeler.Config) (labeler.Labeler, error) {
		return New(), nil
	})
}
