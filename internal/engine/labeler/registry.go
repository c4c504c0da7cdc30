package labeler

import "fmt"

// Constructor is a function that creates a new Labeler instance.
type Constructor func(cfg Config) (Labeler, error)

var registry = map[string]Constructor{}

// Register adds a labeler constructor under the given kind name.
func Register(kind string, ctor Constructor) {
	registry[kind] = ctor
}

// Get returns the labeler constructor for the given kind name.
func Get(kind string) (Constructor, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown labeler kind: %s", kind)
	}
	return ctor, nil
}

// Kinds returns the names of all registered labeler kinds.
func Kinds() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
