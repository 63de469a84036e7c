package models

// EntityID is an opaque entity identifier. Only equality is meaningful.
type EntityID string

// Valid reports whether the identifier is usable as a key.
func (id EntityID) Valid() bool {
	return id != ""
}

func (id EntityID) String() string {
	return string(id)
}

// ComponentTag is an interned handle naming a component type.
type ComponentTag uint32

// NoTag is the zero handle. It never names a component.
const NoTag ComponentTag = 0

// Valid reports whether the handle names a component.
func (t ComponentTag) Valid() bool {
	return t != NoTag
}

// Pair is a single (entity, component) membership row as supplied by the store.
type Pair struct {
	Entity EntityID
	Tag    ComponentTag
}

// P is a shorthand for building a Pair.
func P(entity EntityID, tag ComponentTag) Pair {
	return Pair{Entity: entity, Tag: tag}
}
