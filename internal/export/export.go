// Package export renders extraction results into downloadable documents.
// Renderers are registered per format name; For resolves them
// case-insensitively.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cobalt-ridge/gleaner/internal/model"
)

// Renderer converts one extraction result into an export document.
type Renderer interface {
	Render(res model.Result) ([]byte, error)
	ContentType() string
	// Filename is the suggested download name, or "" to serve inline.
	Filename() string
}

var renderers = map[string]Renderer{
	"json": jsonRenderer{},
	"csv":  csvRenderer{},
	"txt":  textRenderer{},
}

// For returns the renderer registered under the given format name.
func For(format string) (Renderer, bool) {
	r, ok := renderers[strings.ToLower(format)]
	return r, ok
}

// Formats lists the registered format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// jsonRenderer re-encodes the result verbatim. It is served inline rather
// than as an attachment.
type jsonRenderer struct{}

func (jsonRenderer) Render(res model.Result) ([]byte, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("export: marshal json: %w", err)
	}
	return data, nil
}

func (jsonRenderer) ContentType() string { return "application/json" }
func (jsonRenderer) Filename() string    { return "" }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
