// SPDX-License-Identifier: MIT
//
// File: convert.go
// Role: Re-typing of Erased domains to a single Number type.
// Policy:
//   - A value converts only if it survives the round trip T(u) -> U and keeps
//     its sign. Anything else is ErrNotRepresentable; there is no rounding.

package domain

import (
	"fmt"
	"slices"
)

// Convert returns d as a Domain[T]. If d already holds T values it is
// returned unchanged; otherwise a new domain of the same Kind is built from
// exactly converted values.
//
// Errors: ErrNotRepresentable (wrapped with the offending value).
//
// Complexity: O(n) time and space (plus O(n log n) re-sort for sets).
func Convert[T Number](d Erased) (Domain[T], error) {
	if typed, ok := d.(Domain[T]); ok {
		return typed, nil
	}

	var (
		values []T
		err    error
	)
	switch src := d.valuesAny().(type) {
	case []int:
		values, err = convertSlice[T](src)
	case []int8:
		values, err = convertSlice[T](src)
	case []int16:
		values, err = convertSlice[T](src)
	case []int32:
		values, err = convertSlice[T](src)
	case []int64:
		values, err = convertSlice[T](src)
	case []uint:
		values, err = convertSlice[T](src)
	case []uint8:
		values, err = convertSlice[T](src)
	case []uint16:
		values, err = convertSlice[T](src)
	case []uint32:
		values, err = convertSlice[T](src)
	case []uint64:
		values, err = convertSlice[T](src)
	case []float32:
		values, err = convertSlice[T](src)
	case []float64:
		values, err = convertSlice[T](src)
	default:
		return nil, fmt.Errorf("%w: unsupported element type %s", ErrNotRepresentable, d.ValueType())
	}
	if err != nil {
		return nil, err
	}

	if d.Kind() == KindIndices {
		return &Indexed[T]{store: newStore(values)}, nil
	}
	slices.Sort(values)

	return &Set[T]{store: newStore(values)}, nil
}

// convertSlice converts every element of in to T exactly.
func convertSlice[T Number, U Number](in []U) ([]T, error) {
	out := make([]T, len(in))
	var (
		i int
		u U
		t T
	)
	for i, u = range in {
		t = T(u)
		if U(t) != u || (t < 0) != (u < 0) {
			return nil, fmt.Errorf("%w: %v (%T) as %s", ErrNotRepresentable, u, u, typeName[T]())
		}
		out[i] = t
	}

	return out, nil
}
