package query

import (
	"errors"
	"fmt"
)

// Input errors. Every error returned by this package matches ErrInput.
var (
	ErrInput = errors.New("invalid query input")

	ErrMalformedPair   = errors.New("malformed membership pair")
	ErrNoClauses       = errors.New("query specifies no clauses")
	ErrInvalidEntityID = errors.New("invalid entity id")
	ErrInvalidTag      = errors.New("invalid component tag")
)

// InputError reports a malformed argument. Index is the offending position
// within the argument, or -1 when the argument as a whole is rejected.
type InputError struct {
	Op    string
	Index int
	Err   error
}

func (e *InputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: item %d: %v", e.Op, e.Index, e.Err)
}

func (e *InputError) Unwrap() []error {
	return []error{e.Err, ErrInput}
}

func inputError(op string, index int, err error) error {
	return &InputError{Op: op, Index: index, Err: err}
}
