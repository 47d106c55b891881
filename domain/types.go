// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Number type set, Kind, Domain/Erased interfaces and the shared storage
//       used by both domain representations.
// Determinism:
//   - Index order is fixed at construction and never changes.

package domain

import (
	"fmt"
	"math"
)

// Number is the set of value types a domain may hold.
type Number interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// Kind tells which representation backs a domain.
type Kind int

const (
	// KindSet is a deduplicated, ascending value set.
	KindSet Kind = iota
	// KindIndices maps indices 0..n-1 to caller-ordered values.
	KindIndices
)

// String returns "set" or "indices".
func (k Kind) String() string {
	switch k {
	case KindSet:
		return "set"
	case KindIndices:
		return "indices"
	default:
		return "unknown"
	}
}

// Erased is the type-independent view of a domain. It lets a problem be
// assembled from domains of different Number types before a single value
// type is chosen (see Convert).
//
// The interface is sealed: only Set and Indexed implement it.
type Erased interface {
	// Size returns the number of values, always ≥ 1.
	Size() int

	// Kind reports the representation.
	Kind() Kind

	// ValueType returns the Go name of the element type ("int", "float64", ...).
	ValueType() string

	// String renders the domain for diagnostics.
	String() string

	valuesAny() any
}

// Domain is a finite, non-empty, immutable set of candidate values indexed
// densely from 0.
type Domain[T Number] interface {
	Erased

	// At returns the value at index i (value_at).
	// Errors: ErrOutOfRange.
	At(i int) (T, error)

	// Index returns the index of v, or (-1,false) if v is not in the domain.
	Index(v T) (int, bool)

	// Contains reports membership of v.
	Contains(v T) bool

	// Values returns a copy of the values in index order.
	Values() []T
}

// store is the storage shared by Set and Indexed: values in index order plus
// the reverse value→index map. Complexity: At O(1), Index O(1) expected.
type store[T Number] struct {
	values []T
	index  map[T]int
}

func newStore[T Number](values []T) store[T] {
	idx := make(map[T]int, len(values))
	var (
		i int
		v T
	)
	for i, v = range values {
		idx[v] = i
	}

	return store[T]{values: values, index: idx}
}

func (s *store[T]) Size() int { return len(s.values) }

func (s *store[T]) At(i int) (T, error) {
	if i < 0 || i >= len(s.values) {
		var zero T
		return zero, ErrOutOfRange
	}

	return s.values[i], nil
}

func (s *store[T]) Index(v T) (int, bool) {
	i, ok := s.index[v]
	if !ok {
		return -1, false
	}

	return i, true
}

func (s *store[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *store[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)

	return out
}

func (s *store[T]) ValueType() string { return typeName[T]() }

func (s *store[T]) valuesAny() any { return s.values }

// typeName returns the Go name of T, e.g. "int64".
func typeName[T Number]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// checkFinite rejects NaN and ±Inf in floating-point inputs. Integer inputs
// always pass.
func checkFinite[T Number](values []T) error {
	var v T
	for _, v = range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidValue, v)
		}
	}

	return nil
}

// render prints at most eight values, eliding the middle of longer domains.
func render(kind Kind, values []string) string {
	const maxShown = 8
	if len(values) <= maxShown {
		return fmt.Sprintf("%s%v", kind, values)
	}
	head := values[:maxShown/2]
	tail := values[len(values)-maxShown/2:]

	return fmt.Sprintf("%s%v…%v(%d values)", kind, head, tail, len(values))
}
