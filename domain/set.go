// SPDX-License-Identifier: MIT
//
// File: set.go
// Role: Set[T] - direct value-set domain (deduplicated, ascending) and the
//       Interval convenience constructor.

package domain

import (
	"fmt"
	"slices"

	set "github.com/hashicorp/go-set/v3"
)

// MaxIntervalSize bounds the number of values Interval will materialise.
const MaxIntervalSize = 1 << 24

// Set is a direct value-set domain. Index i is the i-th smallest value.
type Set[T Number] struct {
	store[T]
}

var _ Domain[int] = (*Set[int])(nil)

// New builds a value-set domain from values. Duplicates are dropped and the
// remaining values are sorted ascending. The input slice is not retained.
//
// Errors: ErrEmptyDomain, ErrInvalidValue.
//
// Complexity: O(n log n) time, O(n) space.
func New[T Number](values []T) (*Set[T], error) {
	if len(values) == 0 {
		return nil, ErrEmptyDomain
	}
	if err := checkFinite(values); err != nil {
		return nil, err
	}

	seen := set.New[T](len(values))
	uniq := make([]T, 0, len(values))
	var v T
	for _, v = range values {
		if seen.Insert(v) {
			uniq = append(uniq, v)
		}
	}
	slices.Sort(uniq)

	return &Set[T]{store: newStore(uniq)}, nil
}

// Interval builds the value set {lo, lo+1, …, hi}.
//
// Errors: ErrEmptyDomain when lo > hi, ErrInvalidValue on non-finite
// bounds, ErrDomainTooLarge when the interval exceeds MaxIntervalSize.
func Interval[T Number](lo, hi T) (*Set[T], error) {
	if err := checkFinite([]T{lo, hi}); err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, fmt.Errorf("%w: interval [%v, %v]", ErrEmptyDomain, lo, hi)
	}
	if float64(hi)-float64(lo) >= MaxIntervalSize {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrDomainTooLarge, lo, hi)
	}

	values := make([]T, 0, int(float64(hi)-float64(lo))+1)
	var v T
	for v = lo; v <= hi; v++ {
		values = append(values, v)
		if v == hi { // guard against wrap-around at the type's maximum
			break
		}
	}

	return &Set[T]{store: newStore(values)}, nil
}

// Kind returns KindSet.
func (d *Set[T]) Kind() Kind { return KindSet }

// String renders the domain, e.g. "set[0 1 2 3]".
func (d *Set[T]) String() string { return render(KindSet, stringify(d.values)) }

func stringify[T Number](values []T) []string {
	out := make([]string, len(values))
	var (
		i int
		v T
	)
	for i, v = range values {
		out[i] = fmt.Sprint(v)
	}

	return out
}
