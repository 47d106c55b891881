// SPDX-License-Identifier: MIT
// Package graph: node/factor types, sentinel errors and the constructor.

package graph

import (
	"errors"
	"fmt"
	"sync"

	set "github.com/hashicorp/go-set/v3"
)

// Sentinel errors for graph operations.
var (
	// ErrNegativeID indicates a variable or factor id below zero.
	ErrNegativeID = errors.New("graph: negative id")

	// ErrDuplicateVariable indicates AddVariable on an already declared id.
	ErrDuplicateVariable = errors.New("graph: variable already declared")

	// ErrDuplicateFactor indicates AddFactor on an existing key.
	ErrDuplicateFactor = errors.New("graph: factor already exists")

	// ErrEmptyScope indicates a factor without variables.
	ErrEmptyScope = errors.New("graph: empty scope")

	// ErrVariableNotFound indicates a query on an id the graph has never seen.
	ErrVariableNotFound = errors.New("graph: variable not found")

	// ErrFactorNotFound indicates a query on a factor key never added.
	ErrFactorNotFound = errors.New("graph: factor not found")
)

// FactorKind tells constraints and objectives apart.
type FactorKind int

const (
	// Constraint factors carry a violation function.
	Constraint FactorKind = iota
	// Objective factors carry a cost function.
	Objective
)

func (k FactorKind) String() string {
	if k == Objective {
		return "objective"
	}

	return "constraint"
}

// FactorID identifies a factor node. Constraint and objective ids live in
// separate sequences, so the kind is part of the key.
type FactorID struct {
	Kind FactorKind
	ID   int
}

func (f FactorID) String() string { return fmt.Sprintf("%s#%d", f.Kind, f.ID) }

// less orders constraints before objectives, then by id.
func (f FactorID) less(o FactorID) bool {
	if f.Kind != o.Kind {
		return f.Kind < o.Kind
	}

	return f.ID < o.ID
}

// variable is a variable node.
type variable struct {
	declared bool
	factors  *set.Set[FactorID]
}

// Stats is a read-only snapshot of catalog sizes.
type Stats struct {
	Variables   int // declared variable nodes
	Undeclared  int // referenced but never declared
	Constraints int
	Objectives  int
	Links       int // incidence edges
}

// Graph is the bipartite incidence graph. The zero value is not usable;
// call New.
type Graph struct {
	mu        sync.RWMutex
	variables map[int]*variable
	factors   map[FactorID][]int // factor -> ordered scope (as given)
	links     int
}

// New creates an empty Graph.
// Complexity: O(1).
func New() *Graph {
	return &Graph{
		variables: make(map[int]*variable),
		factors:   make(map[FactorID][]int),
	}
}
