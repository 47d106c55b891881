// SPDX-License-Identifier: MIT
//
// File: state.go
// Role: The mutable search state owned by one Solver, and its read-only copy.
// Invariant:
//   - cv[c] equals a fresh evaluation of constraint c on values, for every c,
//     at every iteration boundary; likewise ov for objectives.
//   - unsat == |{c : cv[c] > 0}| exactly; violation and objective equal the
//     sums of the caches up to floating-point drift, removed on resync.

package solver

import (
	"slices"

	"github.com/katalvlaran/cbls/domain"
)

// state is mutated only by the Solver's move, restart and resync steps.
type state[T domain.Number] struct {
	index  []int // current domain index per variable
	values []T   // current value per variable

	cv []float64 // per-constraint violation
	ov []float64 // per-objective value

	violation float64
	unsat     int
	objective float64

	best          []T
	bestObjective float64
	hasBest       bool
	bestViolation float64

	tabu      []int // variable is tabu while tabu[x] > iteration
	stale     int   // iterations since the last improvement
	iteration int
	restarts  int
}

func newState[T domain.Number](vars, constraints, objectives int) *state[T] {
	return &state[T]{
		index:  make([]int, vars),
		values: make([]T, vars),
		cv:     make([]float64, constraints),
		ov:     make([]float64, objectives),
		tabu:   make([]int, vars),
	}
}

// resync rebuilds the aggregates from the per-factor caches, in id order.
func (st *state[T]) resync() {
	var (
		sum   float64
		unsat int
		v     float64
	)
	for _, v = range st.cv {
		sum += v
		if v > 0 {
			unsat++
		}
	}
	st.violation, st.unsat = sum, unsat

	sum = 0
	for _, v = range st.ov {
		sum += v
	}
	st.objective = sum
}

// record stores the current assignment as the best known one.
func (st *state[T]) record() {
	st.best = append(st.best[:0], st.values...)
	st.bestObjective = st.objective
	st.hasBest = true
}

// State is a read-only copy of a Solver's search state. Slices are indexed
// by variable, constraint or objective id.
type State[T domain.Number] struct {
	Iteration     int
	Restarts      int
	Values        []T
	Violations    []float64
	Objectives    []float64
	Violation     float64
	Unsatisfied   int
	Objective     float64
	Best          []T // nil until a feasible state was recorded
	BestObjective float64
	HasBest       bool
}

func (st *state[T]) snapshot() State[T] {
	out := State[T]{
		Iteration:     st.iteration,
		Restarts:      st.restarts,
		Values:        slices.Clone(st.values),
		Violations:    slices.Clone(st.cv),
		Objectives:    slices.Clone(st.ov),
		Violation:     st.violation,
		Unsatisfied:   st.unsat,
		Objective:     st.objective,
		BestObjective: st.bestObjective,
		HasBest:       st.hasBest,
	}
	if st.hasBest {
		out.Best = slices.Clone(st.best)
	}

	return out
}

func toMap[T domain.Number](values []T) map[int]T {
	out := make(map[int]T, len(values))
	var (
		i int
		v T
	)
	for i, v = range values {
		out[i] = v
	}

	return out
}
