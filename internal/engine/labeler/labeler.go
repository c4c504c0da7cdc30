// Package labeler defines the statistical entity source: a pluggable
// capability that maps raw text to labeled character spans. Implementations
// live in subpackages and self-register by kind; the pipeline treats every
// kind the same and tolerates a source that is absent or failing.
package labeler

import (
	"context"
	"errors"
)

// ErrUnavailable reports a source that cannot run because its model assets,
// endpoint, or credentials are not configured.
var ErrUnavailable = errors.New("labeler unavailable")

// Span is one labeled region of the input text. Start and End are byte
// offsets into the text handed to Label.
type Span struct {
	Text  string
	Start int
	End   int
	Label string // source vocabulary, not yet canonical
}

// Labeler finds labeled spans in text.
type Labeler interface {
	Label(ctx context.Context, text string) ([]Span, error)
	Close() error
}

// Config holds implementation-specific settings.
type Config struct {
	Kind     string            // registered implementation name
	ModelDir string            // local model assets (onnx)
	Endpoint string            // remote service URL (remote)
	APIKey   string            // credential (remote, genai)
	Model    string            // model identifier (genai)
	Extra    map[string]string // anything implementation-specific
}
