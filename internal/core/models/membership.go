package models

// Membership maps every entity to the tags currently attached to it, in
// first-seen order. Every key carries at least one tag.
type Membership map[EntityID][]ComponentTag

// Clone returns a shallow copy. Tag slices are shared.
func (m Membership) Clone() Membership {
	out := make(Membership, len(m))
	for id, tags := range m {
		out[id] = tags
	}
	return out
}
