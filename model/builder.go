// SPDX-License-Identifier: MIT
//
// File: builder.go
// Role: Builder - the mutable, type-independent phase of a problem.
// Concurrency:
//   - All methods are safe for concurrent use (mu).
// Determinism:
//   - Ids are assigned sequentially in call order, per sequence.

package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/katalvlaran/cbls/constraint"
	"github.com/katalvlaran/cbls/domain"
	"github.com/katalvlaran/cbls/graph"
)

// Builder accumulates variables, constraints and objectives of possibly
// different numeric types. The zero value is not usable; call NewBuilder.
type Builder struct {
	mu          sync.RWMutex
	variables   []domain.Erased
	constraints []constraint.Erased
	objectives  []constraint.Erased
	g           *graph.Graph

	frozen      bool
	specialized map[string]any // value type -> *Problem[T]
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		g:           graph.New(),
		specialized: make(map[string]any),
	}
}

// AddVariable appends a variable over d and returns its id.
//
// Errors: ErrProblemFrozen, ErrNilEntry.
func (b *Builder) AddVariable(d domain.Erased) (int, error) {
	if d == nil {
		return -1, fmt.Errorf("%w: domain", ErrNilEntry)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen {
		return -1, ErrProblemFrozen
	}
	id := len(b.variables)
	if err := b.g.AddVariable(id); err != nil {
		return -1, fmt.Errorf("model: add variable %d: %w", id, err)
	}
	b.variables = append(b.variables, d)

	return id, nil
}

// AddConstraint appends c and returns its id. Its scope may name variables
// declared later; Specialize rejects ids that are still unknown by then.
//
// Errors: ErrProblemFrozen, ErrNilEntry, *UnknownVariableError for a
// negative id.
func (b *Builder) AddConstraint(c constraint.Erased) (int, error) {
	return b.addFactor(graph.Constraint, c)
}

// AddObjective appends o and returns its id. Adding the first objective
// switches the problem to optimization mode.
//
// Errors: as AddConstraint.
func (b *Builder) AddObjective(o constraint.Erased) (int, error) {
	return b.addFactor(graph.Objective, o)
}

func (b *Builder) addFactor(kind graph.FactorKind, f constraint.Erased) (int, error) {
	if f == nil {
		return -1, fmt.Errorf("%w: %s", ErrNilEntry, kind)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frozen {
		return -1, ErrProblemFrozen
	}

	list := &b.constraints
	if kind == graph.Objective {
		list = &b.objectives
	}
	key := graph.FactorID{Kind: kind, ID: len(*list)}
	scope := f.Scope()
	var id int
	for _, id = range scope {
		if id < 0 {
			return -1, &UnknownVariableError{Where: key.String(), ID: id}
		}
	}
	if err := b.g.AddFactor(key, scope); err != nil {
		return -1, fmt.Errorf("model: add %s: %w", key, err)
	}
	*list = append(*list, f)

	return key.ID, nil
}

// NumVariables returns the number of declared variables.
func (b *Builder) NumVariables() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.variables)
}

// NumConstraints returns the number of constraints.
func (b *Builder) NumConstraints() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.constraints)
}

// NumObjectives returns the number of objectives.
func (b *Builder) NumObjectives() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.objectives)
}

// IsSatisfaction reports whether no objective has been added.
func (b *Builder) IsSatisfaction() bool { return b.NumObjectives() == 0 }

// IsOptimization reports whether at least one objective has been added.
func (b *Builder) IsOptimization() bool { return !b.IsSatisfaction() }

// Frozen reports whether a specialization has succeeded.
func (b *Builder) Frozen() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.frozen
}

// Domain returns the domain of variable id.
//
// Errors: *UnknownVariableError.
func (b *Builder) Domain(id int) (domain.Erased, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if id < 0 || id >= len(b.variables) {
		return nil, &UnknownVariableError{Where: "builder", ID: id}
	}

	return b.variables[id], nil
}

// Graph returns a snapshot of the interconnection graph.
func (b *Builder) Graph() *graph.Graph {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.g.Clone()
}

// Describe renders the structure of the problem.
func (b *Builder) Describe() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	sb := &strings.Builder{}
	header(sb, len(b.variables), len(b.constraints), len(b.objectives), "")
	var (
		i int
		d domain.Erased
		f constraint.Erased
	)
	for i, d = range b.variables {
		fmt.Fprintf(sb, "  x%d ∈ %s\n", i, d)
	}
	for i, f = range b.constraints {
		fmt.Fprintf(sb, "  c%d over %v (%s)\n", i, f.Scope(), f.ValueType())
	}
	for i, f = range b.objectives {
		fmt.Fprintf(sb, "  o%d over %v (%s)\n", i, f.Scope(), f.ValueType())
	}
	if u := b.g.Undeclared(); len(u) > 0 {
		fmt.Fprintf(sb, "  undeclared variables: %v\n", u)
	}

	return sb.String()
}

func header(sb *strings.Builder, vars, cons, objs int, valueType string) {
	mode := "satisfaction"
	if objs > 0 {
		mode = "optimization"
	}
	fmt.Fprintf(sb, "Problem (%s", mode)
	if valueType != "" {
		fmt.Fprintf(sb, ", %s", valueType)
	}
	fmt.Fprintf(sb, "): %d variables, %d constraints, %d objectives\n", vars, cons, objs)
}
