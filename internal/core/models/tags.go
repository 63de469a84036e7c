package models

import "fmt"

// TagRegistry interns component type names into handles. It is scoped to a
// single request and not safe for concurrent mutation.
type TagRegistry struct {
	byName map[string]ComponentTag
}

func NewTagRegistry() *TagRegistry {
	return &TagRegistry{
		byName: make(map[string]ComponentTag),
	}
}

// Intern returns the handle for name, allocating one on first use. Handles
// start at 1 so NoTag is never handed out.
func (r *TagRegistry) Intern(name string) (ComponentTag, error) {
	if name == "" {
		return NoTag, fmt.Errorf("empty component name")
	}
	if tag, ok := r.byName[name]; ok {
		return tag, nil
	}
	tag := ComponentTag(len(r.byName) + 1)
	r.byName[name] = tag
	return tag, nil
}

// InternAll interns every name in order.
func (r *TagRegistry) InternAll(names []string) ([]ComponentTag, error) {
	out := make([]ComponentTag, len(names))
	for i, name := range names {
		tag, err := r.Intern(name)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		out[i] = tag
	}
	return out, nil
}
