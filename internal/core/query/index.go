package query

import (
	"fmt"

	"github.com/zeusync/ecsquery/internal/core/models"
)

// BuildMembershipIndex groups raw (entity, tag) rows by entity. Tags keep
// their first-seen order and duplicate rows are kept as duplicate entries.
func BuildMembershipIndex(pairs []models.Pair) (models.Membership, error) {
	membership := make(models.Membership)
	for i, p := range pairs {
		if !p.Entity.Valid() {
			return nil, inputError("build index", i, fmt.Errorf("%w: empty entity id", ErrMalformedPair))
		}
		if !p.Tag.Valid() {
			return nil, inputError("build index", i, fmt.Errorf("%w: entity %q has no component tag", ErrMalformedPair, p.Entity))
		}
		membership[p.Entity] = append(membership[p.Entity], p.Tag)
	}
	return membership, nil
}
