// SPDX-License-Identifier: MIT

// Package model assembles local-search problems in two phases.
//
// Phase one is a Builder: a mutable, type-independent catalogue of
// variables (each a domain.Erased), constraints and objectives (each a
// constraint.Erased). Entries receive dense sequential ids from 0 in their
// own sequence. Every addition updates a graph.Graph linking variables to the
// factors whose scope contains them; scopes may name variables that are not
// declared yet.
//
// Phase two is Specialize[T]: it checks that every scope refers to declared
// variables, converts every domain to T and requires every function to be
// typed over T, then freezes the builder and returns an immutable Problem[T]
// (dense arrays plus a reverse index variable → constraints/objectives).
// A Problem is safe to share read-only between any number of solvers.
//
// Mode: a problem without objectives is a satisfaction problem, otherwise an
// optimization problem.
//
// Errors:
//
//	ErrProblemFrozen       - Add* after a successful specialization.
//	*UnknownVariableError  - a scope names an id that was never declared.
//	*SpecializationError   - Specialize failed; unwraps to the causes.
package model
