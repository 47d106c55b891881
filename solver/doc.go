// SPDX-License-Identifier: MIT

// Package solver implements constraint-based local search over a
// model.Problem.
//
// A Solver owns one search state: the current value of every variable, a
// cached violation per constraint and value per objective, the aggregate
// violation, the number of unsatisfied constraints, the current objective
// and the best feasible assignment seen so far.
//
// Each iteration:
//
//  1. scores moving every variable to every other value of its domain,
//     re-evaluating only the constraints and objectives that read it;
//  2. picks the pair with the lowest (violation, objective), ties broken
//     uniformly at random with the solver's seeded stream;
//  3. applies it, refreshing the touched caches and the aggregates;
//  4. records the state as best when it is feasible and improves the best
//     objective (optimization) or is the first feasible one (satisfaction).
//
// Variables with a single value are never moved. Optional tabu tenure (with
// aspiration) and stagnation restarts help the search leave plateaus.
//
// Status:
//
//	Unspecialized → Specialized → Running → {Solved, Exhausted, Stopped}
//
// Solve stops with Solved when the state is feasible in satisfaction mode
// (or the TargetObjective is met in optimization mode), with Exhausted when
// MaxIteration iterations have run, and with Stopped when the context ends
// or TimeLimit elapses. In optimization mode Exhausted is the usual outcome;
// read Best and BestObjective.
//
// A constraint or objective that panics or returns NaN, ±Inf or (for a
// constraint) a negative number aborts the run with an *EvaluationError.
//
// With Workers > 1 scoring runs on a worker pool; results are merged in
// variable order, so a given Seed gives the same search for any Workers.
// MultiStart runs independent solvers over one shared Problem.
//
// Options can be built with functional options or loaded from YAML
// (LoadOptions). Runs are logged with log/slog, traced with OpenTelemetry
// and counted with Prometheus metrics (cbls_solver_*).
package solver
