// Package indexed provides an append-only, deduplicating collection that
// hands out stable integer indices.
//
// A [Store] assigns index 0 to the first distinct value added, 1 to the
// second, and so on. Adding a value that is already present returns its
// existing index and leaves the store untouched. Nothing is ever removed or
// re-indexed, so an index stays valid for the lifetime of the store.
//
//	var s indexed.Store[string]
//	s.Add("a") // 0
//	s.Add("b") // 1
//	s.Add("a") // 0
package indexed

import "iter"

// Store is a deduplicating list of values. The zero value is an empty store
// ready to use. A Store is not safe for concurrent mutation.
type Store[T comparable] struct {
	values []T
	index  map[T]int
}

// Add inserts v if it is not yet present and returns its index.
func (s *Store[T]) Add(v T) int {
	if i, ok := s.index[v]; ok {
		return i
	}
	if s.index == nil {
		s.index = make(map[T]int)
	}
	i := len(s.values)
	s.values = append(s.values, v)
	s.index[v] = i
	return i
}

// Index returns the index of v and whether it is present.
func (s *Store[T]) Index(v T) (int, bool) {
	i, ok := s.index[v]
	return i, ok
}

// At returns the value with index i. It panics if i is out of range.
func (s *Store[T]) At(i int) T { return s.values[i] }

// Len returns the number of distinct values.
func (s *Store[T]) Len() int { return len(s.values) }

// All iterates over index/value pairs in insertion order.
func (s *Store[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range s.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values returns a copy of the values in insertion order.
func (s *Store[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}
