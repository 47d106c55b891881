// SPDX-License-Identifier: MIT
//
// File: library.go
// Role: Built-in violation and cost functions.
// Policy:
//   - Violations count how many elementary conditions fail so that local
//     search sees a gradient, not just satisfied/unsatisfied.
//   - Fixed-arity functions panic on the wrong arity; New turns that into a
//     construction error.

package constraint

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cbls/domain"
)

// pairwiseLimit is the arity above which AllDifferent switches from the
// pairwise scan to a frequency map.
const pairwiseLimit = 32

// AllDifferent is violated by every pair of equal values: the violation is
// the number of colliding pairs.
//
// Complexity: O(n²) for n ≤ 32, O(n) expected otherwise.
func AllDifferent[T domain.Number](x []T) float64 {
	var (
		n    = len(x)
		pair int
		i, j int
	)
	if n <= pairwiseLimit {
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				if x[i] == x[j] {
					pair++
				}
			}
		}

		return float64(pair)
	}

	freq := make(map[T]int, n)
	var v T
	for _, v = range x {
		pair += freq[v] // each earlier equal value forms one new pair
		freq[v]++
	}

	return float64(pair)
}

// AllEqual is violated by the values that would have to change for all
// values to agree: n minus the size of the largest group of equal values.
func AllEqual[T domain.Number](x []T) float64 {
	if len(x) == 0 {
		return 0
	}
	freq := make(map[T]int, len(x))
	best := 0
	var v T
	for _, v = range x {
		freq[v]++
		if freq[v] > best {
			best = freq[v]
		}
	}

	return float64(len(x) - best)
}

// AllEqualParam returns a function violated once by every value different
// from param.
func AllEqualParam[T domain.Number](param T) Func[T] {
	return func(x []T) float64 {
		miss := 0
		var v T
		for _, v = range x {
			if v != param {
				miss++
			}
		}

		return float64(miss)
	}
}

// DistDifferent over (a, b, c, d) is violated when |a−b| == |c−d|.
// Panics unless len(x) == 4.
func DistDifferent[T domain.Number](x []T) float64 {
	if len(x) != 4 {
		panic(fmt.Sprintf("DistDifferent needs 4 values, got %d", len(x)))
	}
	if dist(x[0], x[1]) == dist(x[2], x[3]) {
		return 1
	}

	return 0
}

// Ordered is violated once by every adjacent pair that is out of
// non-decreasing order.
func Ordered[T domain.Number](x []T) float64 {
	bad := 0
	var i int
	for i = 1; i < len(x); i++ {
		if x[i-1] > x[i] {
			bad++
		}
	}

	return float64(bad)
}

// DistExtrema is an objective: the distance between the largest and the
// smallest value.
func DistExtrema[T domain.Number](x []T) float64 {
	if len(x) == 0 {
		return 0
	}
	lo, hi := x[0], x[0]
	var v T
	for _, v = range x[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return float64(hi) - float64(lo)
}

// dist is |a−b| computed in float64 so unsigned types cannot wrap.
func dist[T domain.Number](a, b T) float64 {
	return math.Abs(float64(a) - float64(b))
}
