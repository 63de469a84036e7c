package query

import (
	"slices"

	"github.com/zeusync/ecsquery/internal/core/models"
)

type entitySet map[models.EntityID]struct{}

// InvertedIndex maps each tag to the set of entities carrying it. It is
// read-only once built.
type InvertedIndex struct {
	universe []models.EntityID
	postings map[models.ComponentTag]entitySet
}

func BuildInvertedIndex(m models.Membership) *InvertedIndex {
	index := &InvertedIndex{
		universe: make([]models.EntityID, 0, len(m)),
		postings: make(map[models.ComponentTag]entitySet),
	}
	for id, tags := range m {
		index.universe = append(index.universe, id)
		for _, t := range tags {
			set, ok := index.postings[t]
			if !ok {
				set = make(entitySet)
				index.postings[t] = set
			}
			set[id] = struct{}{}
		}
	}
	return index
}

// Evaluate returns the entities satisfying a single clause.
func (x *InvertedIndex) Evaluate(c models.Clause) []models.EntityID {
	with := make([]entitySet, 0, len(c.With))
	for _, t := range c.With {
		set := x.postings[t]
		if len(set) == 0 {
			return nil
		}
		with = append(with, set)
	}
	without := make([]entitySet, 0, len(c.Without))
	for _, t := range c.Without {
		if set := x.postings[t]; len(set) > 0 {
			without = append(without, set)
		}
	}

	keep := func(id models.EntityID) bool {
		for _, set := range with {
			if _, ok := set[id]; !ok {
				return false
			}
		}
		for _, set := range without {
			if _, ok := set[id]; ok {
				return false
			}
		}
		return true
	}

	var out []models.EntityID
	if len(with) == 0 {
		for _, id := range x.universe {
			if keep(id) {
				out = append(out, id)
			}
		}
		return out
	}

	slices.SortFunc(with, func(a, b entitySet) int { return len(a) - len(b) })
	smallest := with[0]
	with = with[1:]
	for id := range smallest {
		if keep(id) {
			out = append(out, id)
		}
	}
	return out
}
