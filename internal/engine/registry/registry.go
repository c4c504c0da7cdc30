// Package registry holds the canonical entity-type vocabulary: the fixed
// set of type names the pipeline emits, with the display color and
// description used when rendering results.
package registry

// DefaultColor is used for any type without a registry entry (event types,
// unknown labels passed through the mapper).
const DefaultColor = "#CCCCCC"

// Type is one canonical entity type.
type Type struct {
	Name  string
	Color string // hex display color
	Desc  string
}

// Registry is an immutable name -> Type lookup preserving registration order.
type Registry struct {
	types map[string]Type
	order []string
}

// New creates a Registry from a list of types. Later duplicates of a name
// overwrite earlier ones but keep the original position.
func New(types []Type) *Registry {
	r := &Registry{types: make(map[string]Type, len(types))}
	for _, t := range types {
		if _, seen := r.types[t.Name]; !seen {
			r.order = append(r.order, t.Name)
		}
		r.types[t.Name] = t
	}
	return r
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Color returns the display color for name, or DefaultColor when the name
// is not registered.
func (r *Registry) Color(name string) string {
	if t, ok := r.types[name]; ok {
		return t.Color
	}
	return DefaultColor
}

// Names returns all registered type names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Types returns all registered types in registration order.
func (r *Registry) Types() []Type {
	out := make([]Type, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.types[name])
	}
	return out
}
