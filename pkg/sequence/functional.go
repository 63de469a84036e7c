package sequence

import (
	"iter"
)

// Iterator is a generic, immutable, chainable iterator for any type T.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// Concat chains slices into one Iterator, in argument order.
func Concat[T any](parts ...[]T) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for _, part := range parts {
				for _, v := range part {
					if !yield(v) {
						return
					}
				}
			}
		},
	}
}

// Collect exhausts the iterator and returns a slice of all elements.
func (i *Iterator[T]) Collect() []T {
	var out []T
	i.seq(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Unique drops every element equal to one already yielded. First occurrences
// keep their relative order.
func Unique[T comparable](it *Iterator[T]) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			seen := make(map[T]struct{})
			it.seq(func(v T) bool {
				if _, dup := seen[v]; dup {
					return true
				}
				seen[v] = struct{}{}
				return yield(v)
			})
		},
	}
}
