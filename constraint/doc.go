// SPDX-License-Identifier: MIT

// Package constraint defines the scoped functions a local-search problem is
// made of: constraints, whose violation degree is ≥ 0 and equals 0 exactly
// when satisfied, and objectives, whose real-valued cost is minimised.
//
// Both are a fixed, ordered scope of variable ids plus a pure function over
// the scope's current values (in scope order):
//
//	type Func[T domain.Number] func(values []T) float64
//
// New and NewObjective are the single point where a function's arity and
// result are checked: the function is called once on a sample aligned with
// the scope and rejected with a *Error if it panics or returns a malformed
// result (NaN, ±Inf, or a negative violation). After that the solver may
// call the function any number of times, in any order, from any goroutine;
// callers must keep it free of hidden state.
//
// The package also ships the classic CBLS library: AllDifferent, AllEqual,
// AllEqualParam, DistDifferent, Ordered and the DistExtrema objective.
package constraint
