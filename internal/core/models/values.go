package models

// ValueKey addresses a component instance in the value table.
type ValueKey struct {
	Entity EntityID
	Tag    ComponentTag
}

// ValueTable is a sparse (entity, tag) -> value store. A missing key means
// the entity has no value for the tag; a stored nil is a present value.
type ValueTable map[ValueKey]any

// Set stores a value.
func (t ValueTable) Set(entity EntityID, tag ComponentTag, value any) {
	t[ValueKey{Entity: entity, Tag: tag}] = value
}

// Lookup returns the value and whether one is stored.
func (t ValueTable) Lookup(entity EntityID, tag ComponentTag) (any, bool) {
	v, ok := t[ValueKey{Entity: entity, Tag: tag}]
	return v, ok
}

type absent struct{}

func (absent) String() string { return "absent" }

// Absent fills an optional tuple slot for which no value exists.
var Absent any = absent{}

// IsAbsent reports whether v is the Absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}

// Tuple is one materialized result row: the entity (when requested), then
// mandatory slots, then optional slots.
type Tuple []any

// Selection describes the requested output columns.
type Selection struct {
	WithEntity bool
	Mandatory  []ComponentTag
	Optional   []ComponentTag
}

// Width is the number of slots each tuple carries.
func (s Selection) Width() int {
	n := len(s.Mandatory) + len(s.Optional)
	if s.WithEntity {
		n++
	}
	return n
}
