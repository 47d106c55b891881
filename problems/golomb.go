// SPDX-License-Identifier: MIT
//
// File: golomb.go
// Role: Golomb ruler model.
//
// Contract:
//   - marks ≥ 2 (else ErrTooFewMarks); length ≥ marks-1 (else ErrBadSize).
//   - Variables 0..marks-1 over [0, length].
//   - Constraints, in order: x0 = 0; all different; non-decreasing;
//     |xi−xj| ≠ |xk−xl| for every two distinct pairs (i<j), (k<l).
//   - optimize adds the objective max−min over all marks.
//
// Complexity: O(marks⁴) constraints.

package problems

import (
	"fmt"

	"github.com/katalvlaran/cbls/constraint"
	"github.com/katalvlaran/cbls/domain"
	"github.com/katalvlaran/cbls/model"
)

const (
	methodGolomb   = "Golomb"
	minGolombMarks = 2
)

// Golomb returns a Golomb ruler problem with the given number of marks, all
// within [0, length].
func Golomb(marks, length int, optimize bool) (*model.Builder, error) {
	if marks < minGolombMarks {
		return nil, fmt.Errorf("%s: marks=%d < min=%d: %w", methodGolomb, marks, minGolombMarks, ErrTooFewMarks)
	}
	if length < marks-1 {
		return nil, fmt.Errorf("%s: length=%d cannot hold %d marks: %w", methodGolomb, length, marks, ErrBadSize)
	}

	d, err := domain.Interval(0, length)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodGolomb, err)
	}
	b := model.NewBuilder()
	all := make([]int, marks)
	for i := range all {
		if all[i], err = b.AddVariable(d); err != nil {
			return nil, fmt.Errorf("%s: AddVariable(%d): %w", methodGolomb, i, err)
		}
	}

	add := func(fn constraint.Func[int], ids ...int) error {
		if _, err := model.Constrain(b, fn, ids...); err != nil {
			return fmt.Errorf("%s: constraint over %v: %w", methodGolomb, ids, err)
		}
		return nil
	}
	if err = add(constraint.AllEqualParam(0), 0); err != nil {
		return nil, err
	}
	if err = add(constraint.AllDifferent[int], all...); err != nil {
		return nil, err
	}
	if err = add(constraint.Ordered[int], all...); err != nil {
		return nil, err
	}

	pairs := make([][2]int, 0, marks*(marks-1)/2)
	for i := 0; i < marks; i++ {
		for j := i + 1; j < marks; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	for p := 0; p < len(pairs); p++ {
		for q := p + 1; q < len(pairs); q++ {
			if err = add(constraint.DistDifferent[int], pairs[p][0], pairs[p][1], pairs[q][0], pairs[q][1]); err != nil {
				return nil, err
			}
		}
	}

	if optimize {
		if _, err = model.Minimize(b, constraint.DistExtrema[int]); err != nil {
			return nil, fmt.Errorf("%s: objective: %w", methodGolomb, err)
		}
	}

	return b, nil
}

// IsGolombRuler reports whether marks, read in any order, are distinct and
// have pairwise distinct distances.
func IsGolombRuler(marks []int) bool {
	seen := make(map[int]bool, len(marks)*len(marks)/2)
	for i := 0; i < len(marks); i++ {
		for j := i + 1; j < len(marks); j++ {
			d := marks[i] - marks[j]
			if d < 0 {
				d = -d
			}
			if d == 0 || seen[d] {
				return false
			}
			seen[d] = true
		}
	}

	return true
}
