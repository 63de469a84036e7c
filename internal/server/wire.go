package server

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zeusync/ecsquery/internal/core/models"
	"github.com/zeusync/ecsquery/internal/core/query"
)

// WireRequest is the JSON form of a query. Component types are named by
// string and interned per request.
type WireRequest struct {
	Pairs          [][]string   `json:"pairs"`
	ForEntities    []string     `json:"for_entities,omitempty"`
	NotForEntities []string     `json:"not_for_entities,omitempty"`
	Clauses        []WireClause `json:"clauses"`
	ReturnEntity   bool         `json:"return_entity,omitempty"`
	Select         []string     `json:"select,omitempty"`
	SelectOptional []string     `json:"select_optional,omitempty"`
	Values         []WireValue  `json:"values,omitempty"`
}

type WireClause struct {
	With    []string `json:"with,omitempty"`
	Without []string `json:"without,omitempty"`
}

// WireValue carries one component instance. Value is passed through untouched.
type WireValue struct {
	Entity    string          `json:"entity"`
	Component string          `json:"component"`
	Value     json.RawMessage `json:"value"`
}

type WireResponse struct {
	Entities []string   `json:"entities,omitempty"`
	Tuples   [][]any    `json:"tuples"`
	Error    string     `json:"error,omitempty"`
	Stats    *WireStats `json:"stats,omitempty"`
}

type WireStats struct {
	Entities  int    `json:"entities"`
	Scoped    int    `json:"scoped"`
	Matched   int    `json:"matched"`
	Emitted   int    `json:"emitted"`
	Strategy  string `json:"strategy"`
	ElapsedUS int64  `json:"elapsed_us"`
}

// ReadRequest decodes one JSON request. Failures match both ErrInvalidRequest
// and query.ErrInput.
func ReadRequest(r io.Reader) (*WireRequest, error) {
	var req WireRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrInvalidRequest, query.ErrInput, err)
	}
	return &req, nil
}

// Decode converts a wire request into an engine request.
func (r *WireRequest) Decode() (query.Request, error) {
	tags := models.NewTagRegistry()
	req := query.Request{
		Pairs:          make([]models.Pair, len(r.Pairs)),
		ForEntities:    toEntityIDs(r.ForEntities),
		NotForEntities: toEntityIDs(r.NotForEntities),
		Clauses:        make([]models.Clause, len(r.Clauses)),
		Values:         make(models.ValueTable, len(r.Values)),
	}

	for i, p := range r.Pairs {
		if len(p) != 2 {
			return query.Request{}, decodeError("pairs", i, query.ErrMalformedPair,
				fmt.Errorf("want [entity, component], got %d elements", len(p)))
		}
		tag, err := tags.Intern(p[1])
		if err != nil {
			return query.Request{}, decodeError("pairs", i, query.ErrMalformedPair, err)
		}
		req.Pairs[i] = models.P(models.EntityID(p[0]), tag)
	}

	for i, c := range r.Clauses {
		with, err := tags.InternAll(c.With)
		if err != nil {
			return query.Request{}, decodeError("clauses", i, query.ErrInvalidTag, err)
		}
		without, err := tags.InternAll(c.Without)
		if err != nil {
			return query.Request{}, decodeError("clauses", i, query.ErrInvalidTag, err)
		}
		req.Clauses[i] = models.Clause{With: with, Without: without}
	}

	mandatory, err := tags.InternAll(r.Select)
	if err != nil {
		return query.Request{}, decodeError("select", -1, query.ErrInvalidTag, err)
	}
	optional, err := tags.InternAll(r.SelectOptional)
	if err != nil {
		return query.Request{}, decodeError("select_optional", -1, query.ErrInvalidTag, err)
	}
	req.Selection = models.Selection{
		WithEntity: r.ReturnEntity,
		Mandatory:  mandatory,
		Optional:   optional,
	}

	for i, v := range r.Values {
		if v.Entity == "" {
			return query.Request{}, decodeError("values", i, query.ErrInvalidEntityID, nil)
		}
		tag, err := tags.Intern(v.Component)
		if err != nil {
			return query.Request{}, decodeError("values", i, query.ErrInvalidTag, err)
		}
		req.Values.Set(models.EntityID(v.Entity), tag, v.Value)
	}

	return req, nil
}

func decodeError(field string, index int, kind, cause error) error {
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %v", kind, cause)
	}
	return &query.InputError{Op: "decode " + field, Index: index, Err: err}
}

func toEntityIDs(ids []string) []models.EntityID {
	out := make([]models.EntityID, len(ids))
	for i, id := range ids {
		out[i] = models.EntityID(id)
	}
	return out
}

// jsonEncoder renders tuple slots for JSON output. Absent optional values
// become null.
type jsonEncoder struct{}

func (jsonEncoder) EncodeEntity(id models.EntityID) any { return string(id) }

func (jsonEncoder) EncodeValue(_ models.ComponentTag, v any) any {
	if raw, ok := v.(json.RawMessage); ok && len(raw) == 0 {
		return nil
	}
	return v
}

func (jsonEncoder) EncodeAbsent(models.ComponentTag) any { return nil }

func encodeResult(res *query.Result) *WireResponse {
	resp := &WireResponse{
		Entities: make([]string, len(res.Entities)),
		Tuples:   make([][]any, len(res.Tuples)),
		Stats: &WireStats{
			Entities:  res.Stats.Indexed,
			Scoped:    res.Stats.Scoped,
			Matched:   res.Stats.Matched,
			Emitted:   res.Stats.Emitted,
			Strategy:  res.Stats.Strategy.String(),
			ElapsedUS: res.Stats.Total.Microseconds(),
		},
	}
	for i, id := range res.Entities {
		resp.Entities[i] = string(id)
	}
	for i, tuple := range res.Tuples {
		resp.Tuples[i] = tuple
	}
	return resp
}
