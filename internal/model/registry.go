package model

import "fmt"

// Registry maps collection types to constructors. Callers own their
// registry instance; there is no package-level mutable registration, so
// construction order is deterministic and explicit.
type Registry struct {
	order        []CollectionType
	constructors map[CollectionType]func(title string, addDefaults bool) *Collection
}

// NewRegistry returns a registry pre-loaded with every built-in type.
func NewRegistry() *Registry {
	r := &Registry{constructors: make(map[CollectionType]func(string, bool) *Collection)}
	for _, ctype := range CollectionTypes() {
		ct := ctype
		if ct == TypeBibtex {
			r.Register(ct, func(title string, addDefaults bool) *Collection {
				return NewBibtexCollection(title, addDefaults).Collection
			})
			continue
		}
		r.Register(ct, func(title string, addDefaults bool) *Collection {
			c := NewCollection(ct, title)
			if addDefaults {
				if err := c.AddFields(defaultFieldsFor(ct)); err != nil {
					panic(err)
				}
			}
			return c
		})
	}
	return r
}

// Register adds or replaces the constructor for a type.
func (r *Registry) Register(ctype CollectionType, ctor func(title string, addDefaults bool) *Collection) {
	if _, ok := r.constructors[ctype]; !ok {
		r.order = append(r.order, ctype)
	}
	r.constructors[ctype] = ctor
}

// New constructs a collection of the given type.
func (r *Registry) New(ctype CollectionType, title string, addDefaults bool) (*Collection, error) {
	ctor, ok := r.constructors[ctype]
	if !ok {
		return nil, fmt.Errorf("no collection type registered for %d", int(ctype))
	}
	return ctor(title, addDefaults), nil
}

// Types returns the registered types in registration order.
func (r *Registry) Types() []CollectionType {
	return append([]CollectionType(nil), r.order...)
}
