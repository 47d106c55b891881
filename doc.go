// SPDX-License-Identifier: MIT

// Package cbls is a constraint-based local search toolkit: declare
// variables over finite numeric domains, attach constraints (violation
// functions) and objectives (cost functions), then let a solver move one
// variable at a time towards a feasible, and optionally cheap, assignment.
//
// Packages:
//
//	domain/     finite value sets (Set, Indexed) and exact type conversion
//	constraint/ Constraint and Objective wrappers plus a function library
//	graph/      bipartite variable–factor incidence graph
//	model/      the two-phase Builder → Problem[T] (Specialize)
//	solver/     Solver[T]: state, search loop, options, MultiStart
//	problems/   ready-made models (Golomb rulers, Sudoku)
//	cmd/cbls    command-line front end
//
// Quick start:
//
//	b, _ := problems.Golomb(4, 6, true)
//	s, _ := solver.New[int](b, nil, solver.WithTabuTenure(2), solver.WithRestartAfter(200))
//	status, err := s.Solve(ctx)
//	best, ok := s.Best()
//
// Search is deterministic for a given Seed, whatever the number of Workers.
package cbls
