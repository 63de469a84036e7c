package query

import (
	"github.com/zeusync/ecsquery/internal/core/models"
)

// RestrictToEntities keeps only the entities named in allow. An empty allow
// list means the filter is inactive and m is returned as is. Named entities
// that m does not track are ignored.
func RestrictToEntities(m models.Membership, allow []models.EntityID) (models.Membership, error) {
	if err := validateIDs("restrict", allow); err != nil {
		return nil, err
	}
	if len(allow) == 0 {
		return m, nil
	}

	out := make(models.Membership, min(len(allow), len(m)))
	for _, id := range allow {
		if tags, ok := m[id]; ok {
			out[id] = tags
		}
	}
	return out, nil
}

// ExcludeEntities drops exactly the entities named in deny. The input mapping
// is left untouched.
func ExcludeEntities(m models.Membership, deny []models.EntityID) (models.Membership, error) {
	if err := validateIDs("exclude", deny); err != nil {
		return nil, err
	}

	out := m.Clone()
	for _, id := range deny {
		delete(out, id)
	}
	return out, nil
}

func validateIDs(op string, ids []models.EntityID) error {
	for i, id := range ids {
		if !id.Valid() {
			return inputError(op, i, ErrInvalidEntityID)
		}
	}
	return nil
}
