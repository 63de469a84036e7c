package models

// Clause is a single with/without membership predicate. An entity satisfies
// it when its tags include every With tag and none of the Without tags.
type Clause struct {
	With    []ComponentTag `json:"with" yaml:"with"`
	Without []ComponentTag `json:"without" yaml:"without"`
}

// With starts a clause requiring the given tags.
func With(tags ...ComponentTag) Clause {
	return Clause{With: tags}
}

// Excluding returns a copy of the clause that also rejects the given tags.
func (c Clause) Excluding(tags ...ComponentTag) Clause {
	without := make([]ComponentTag, 0, len(c.Without)+len(tags))
	without = append(without, c.Without...)
	c.Without = append(without, tags...)
	return c
}

// Tags returns every tag referenced by the clause.
func (c Clause) Tags() []ComponentTag {
	out := make([]ComponentTag, 0, len(c.With)+len(c.Without))
	out = append(out, c.With...)
	return append(out, c.Without...)
}

// Matches evaluates the clause against a tag set.
func (c Clause) Matches(tags TagSet) bool {
	for _, t := range c.With {
		if !tags.Contains(t) {
			return false
		}
	}
	for _, t := range c.Without {
		if tags.Contains(t) {
			return false
		}
	}
	return true
}

// TagSet is the set view of an entity's tags.
type TagSet map[ComponentTag]struct{}

// NewTagSet collapses a tag sequence into a set.
func NewTagSet(tags []ComponentTag) TagSet {
	set := make(TagSet, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// Contains reports whether the tag is in the set.
func (s TagSet) Contains(tag ComponentTag) bool {
	_, ok := s[tag]
	return ok
}
