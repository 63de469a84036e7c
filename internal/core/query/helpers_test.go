package query

import (
	"fmt"
	"math/rand"

	"github.com/zeusync/ecsquery/internal/core/models"
)

const (
	A models.ComponentTag = iota + 1
	B
	C
	D
)

// sampleMembership is e1:[A,B] e2:[A] e3:[B,C].
func sampleMembership() models.Membership {
	return models.Membership{
		"e1": {A, B},
		"e2": {A},
		"e3": {B, C},
	}
}

func randomPairs(rng *rand.Rand, entities, tags int) []models.Pair {
	var pairs []models.Pair
	for e := 0; e < entities; e++ {
		id := models.EntityID(fmt.Sprintf("e%d", e))
		n := 1 + rng.Intn(tags)
		for i := 0; i < n; i++ {
			pairs = append(pairs, models.P(id, models.ComponentTag(1+rng.Intn(tags))))
		}
	}
	rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })
	return pairs
}

func randomClauses(rng *rand.Rand, n, tags int) []models.Clause {
	clauses := make([]models.Clause, n)
	for i := range clauses {
		for t := 1; t <= tags; t++ {
			switch rng.Intn(5) {
			case 0:
				clauses[i].With = append(clauses[i].With, models.ComponentTag(t))
			case 1:
				clauses[i].Without = append(clauses[i].Without, models.ComponentTag(t))
			}
		}
	}
	return clauses
}

// bruteForce is the reference semantics for clause matching.
func bruteForce(m models.Membership, clauses []models.Clause) []models.EntityID {
	var out []models.EntityID
	for id, tags := range m {
		set := models.NewTagSet(tags)
		for _, c := range clauses {
			if c.Matches(set) {
				out = append(out, id)
				break
			}
		}
	}
	return out
}
