// SPDX-License-Identifier: MIT

// Package graph provides a thread-safe, in-memory bipartite incidence graph
// that links the variables of a problem to the factors (constraints and
// objectives) whose scope contains them.
//
// The graph G = (V ∪ F, E) has:
//
//   - variable nodes, keyed by integer id;
//   - factor nodes, keyed by FactorID{Kind, ID} where Kind is Constraint or
//     Objective, each carrying its ordered scope;
//   - one incidence edge per (variable, factor) pair, however many times the
//     variable occurs in the scope.
//
// Adding a factor auto-creates the variable nodes it references, the same
// way an edge creates its endpoints. Such nodes stay "undeclared" until
// AddVariable is called for them; Undeclared lists them so that a problem
// can reject dangling references at specialization time.
//
// Core methods:
//
//	AddVariable(id int) error                 // O(1)
//	AddFactor(key FactorID, scope []int) error // O(|scope|)
//	HasVariable(id int) bool                  // O(1), declared only
//	Factors(id int) ([]FactorID, error)       // O(d·log d), sorted
//	Degree(id int) (c, o int, err error)       // O(d)
//	Neighbors(id int) ([]int, error)          // O(Σ|scope|·log), sorted, self excluded
//	Scope(key FactorID) ([]int, error)        // O(|scope|), copy
//	Variables() []int / Undeclared() []int    // O(V·log V), sorted
//	Components() [][]int                      // BFS, O(V+Σ|scope|·d)
//	Stats() Stats                             // O(V+F)
//	Clone() *Graph                            // O(V+F+E)
//
// Concurrency: one sync.RWMutex guards all catalogs; every method is safe
// for concurrent use. Enumerations are sorted, so output is deterministic.
//
// Errors:
//
//	ErrNegativeID         - a variable or factor id < 0.
//	ErrDuplicateVariable  - AddVariable for an already declared id.
//	ErrDuplicateFactor    - AddFactor for an existing key.
//	ErrEmptyScope         - AddFactor with no variables.
//	ErrVariableNotFound   - query for an id never seen.
//	ErrFactorNotFound     - query for a key never added.
package graph
