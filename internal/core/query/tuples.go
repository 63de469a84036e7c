package query

import (
	"github.com/zeusync/ecsquery/internal/core/models"
)

// Encoder converts engine values into the caller's output representation.
// Encoders are driven from a single goroutine and need not be safe for
// concurrent use.
type Encoder interface {
	EncodeEntity(id models.EntityID) any
	EncodeValue(tag models.ComponentTag, value any) any
	EncodeAbsent(tag models.ComponentTag) any
}

// DefaultEncoder passes values through and marks missing optional slots
// with models.Absent.
type DefaultEncoder struct{}

func (DefaultEncoder) EncodeEntity(id models.EntityID) any {
	return id
}

func (DefaultEncoder) EncodeValue(_ models.ComponentTag, v any) any {
	return v
}

func (DefaultEncoder) EncodeAbsent(models.ComponentTag) any {
	return models.Absent
}

// BuildResultTuples materializes one tuple per entity using DefaultEncoder.
func BuildResultTuples(sel models.Selection, ids []models.EntityID, values models.ValueTable) ([]models.Tuple, error) {
	return BuildResultTuplesWith(DefaultEncoder{}, sel, ids, values)
}

// BuildResultTuplesWith materializes tuples in the order of ids. An entity
// lacking a value for any mandatory tag is left out entirely; a missing
// optional value is filled by enc.EncodeAbsent. Runs on the calling goroutine.
func BuildResultTuplesWith(enc Encoder, sel models.Selection, ids []models.EntityID, values models.ValueTable) ([]models.Tuple, error) {
	if err := validateSelection(sel); err != nil {
		return nil, err
	}
	if err := validateIDs("build tuples", ids); err != nil {
		return nil, err
	}

	width := sel.Width()
	out := make([]models.Tuple, 0, len(ids))
	for _, id := range ids {
		if tuple, ok := buildTuple(enc, sel, width, id, values); ok {
			out = append(out, tuple)
		}
	}
	return out, nil
}

func buildTuple(enc Encoder, sel models.Selection, width int, id models.EntityID, values models.ValueTable) (models.Tuple, bool) {
	// Mandatory lookups first so a dropped entity never touches the encoder.
	for _, tag := range sel.Mandatory {
		if _, ok := values.Lookup(id, tag); !ok {
			return nil, false
		}
	}

	tuple := make(models.Tuple, 0, width)
	if sel.WithEntity {
		tuple = append(tuple, enc.EncodeEntity(id))
	}
	for _, tag := range sel.Mandatory {
		v, _ := values.Lookup(id, tag)
		tuple = append(tuple, enc.EncodeValue(tag, v))
	}
	for _, tag := range sel.Optional {
		if v, ok := values.Lookup(id, tag); ok {
			tuple = append(tuple, enc.EncodeValue(tag, v))
		} else {
			tuple = append(tuple, enc.EncodeAbsent(tag))
		}
	}
	return tuple, true
}

func validateSelection(sel models.Selection) error {
	for i, tag := range sel.Mandatory {
		if !tag.Valid() {
			return inputError("select", i, ErrInvalidTag)
		}
	}
	for i, tag := range sel.Optional {
		if !tag.Valid() {
			return inputError("select optional", i, ErrInvalidTag)
		}
	}
	return nil
}
