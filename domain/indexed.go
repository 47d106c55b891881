// SPDX-License-Identifier: MIT
//
// File: indexed.go
// Role: Indexed[T] - index-indirection domain; indices follow caller order.

package domain

import set "github.com/hashicorp/go-set/v3"

// Indexed maps search indices 0..n-1 to the caller's values in the order they
// were supplied. Duplicates keep their first position.
type Indexed[T Number] struct {
	store[T]
}

var _ Domain[float64] = (*Indexed[float64])(nil)

// NewIndexed builds an index domain over values.
//
// Errors: ErrEmptyDomain, ErrInvalidValue.
//
// Complexity: O(n) time, O(n) space.
func NewIndexed[T Number](values []T) (*Indexed[T], error) {
	if len(values) == 0 {
		return nil, ErrEmptyDomain
	}
	if err := checkFinite(values); err != nil {
		return nil, err
	}

	seen := set.New[T](len(values))
	ordered := make([]T, 0, len(values))
	var v T
	for _, v = range values {
		if seen.Insert(v) {
			ordered = append(ordered, v)
		}
	}

	return &Indexed[T]{store: newStore(ordered)}, nil
}

// Kind returns KindIndices.
func (d *Indexed[T]) Kind() Kind { return KindIndices }

// String renders the domain, e.g. "indices[53.69 89.2 0.12]".
func (d *Indexed[T]) String() string { return render(KindIndices, stringify(d.values)) }
