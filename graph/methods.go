// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: Variable/factor lifecycle and incidence queries.
// Determinism:
//   - Factors(), Neighbors(), Variables(), Undeclared() return sorted slices.
// Concurrency:
//   - Mutations under mu write lock; queries under mu read lock.

package graph

import (
	"slices"
	"sort"

	set "github.com/hashicorp/go-set/v3"
)

// AddVariable declares variable id.
//
// A node auto-created by an earlier AddFactor becomes declared; its
// incidences are kept.
//
// Errors: ErrNegativeID, ErrDuplicateVariable.
//
// Complexity: O(1) amortized.
func (g *Graph) AddVariable(id int) error {
	if id < 0 {
		return ErrNegativeID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	v := g.ensureVariable(id)
	if v.declared {
		return ErrDuplicateVariable
	}
	v.declared = true

	return nil
}

// AddFactor inserts factor key with the given ordered scope and links it to
// every variable in the scope, creating undeclared variable nodes as needed.
// A variable repeated in the scope is linked once. The scope is copied.
//
// Errors: ErrNegativeID, ErrEmptyScope, ErrDuplicateFactor.
//
// Complexity: O(|scope|) amortized.
func (g *Graph) AddFactor(key FactorID, scope []int) error {
	if key.ID < 0 {
		return ErrNegativeID
	}
	if len(scope) == 0 {
		return ErrEmptyScope
	}
	var id int
	for _, id = range scope {
		if id < 0 {
			return ErrNegativeID
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.factors[key]; exists {
		return ErrDuplicateFactor
	}
	g.factors[key] = slices.Clone(scope)
	for _, id = range scope {
		if g.ensureVariable(id).factors.Insert(key) {
			g.links++
		}
	}

	return nil
}

// HasVariable reports whether id has been declared.
// Complexity: O(1).
func (g *Graph) HasVariable(id int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v, ok := g.variables[id]

	return ok && v.declared
}

// Factors returns the factors whose scope contains variable id, constraints
// first, each kind by ascending id.
//
// Errors: ErrVariableNotFound when id was never declared nor referenced.
//
// Complexity: O(d·log d) where d is the number of incident factors.
func (g *Graph) Factors(id int) ([]FactorID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v, ok := g.variables[id]
	if !ok {
		return nil, ErrVariableNotFound
	}
	out := v.factors.Slice()
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })

	return out, nil
}

// Degree returns how many constraints and objectives touch variable id.
//
// Errors: ErrVariableNotFound.
func (g *Graph) Degree(id int) (constraints, objectives int, err error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v, ok := g.variables[id]
	if !ok {
		return 0, 0, ErrVariableNotFound
	}
	var f FactorID
	for _, f = range v.factors.Slice() {
		if f.Kind == Objective {
			objectives++
		} else {
			constraints++
		}
	}

	return constraints, objectives, nil
}

// Neighbors returns the variables that share at least one factor with id,
// ascending, without id itself.
//
// Errors: ErrVariableNotFound.
//
// Complexity: O(Σ|scope| + k·log k) over the incident factors.
func (g *Graph) Neighbors(id int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v, ok := g.variables[id]
	if !ok {
		return nil, ErrVariableNotFound
	}
	seen := set.New[int](0)
	var (
		f     FactorID
		other int
	)
	for _, f = range v.factors.Slice() {
		for _, other = range g.factors[f] {
			if other != id {
				seen.Insert(other)
			}
		}
	}
	out := seen.Slice()
	slices.Sort(out)

	return out, nil
}

// Scope returns a copy of the ordered scope of key.
//
// Errors: ErrFactorNotFound.
func (g *Graph) Scope(key FactorID) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	scope, ok := g.factors[key]
	if !ok {
		return nil, ErrFactorNotFound
	}

	return slices.Clone(scope), nil
}

// Variables returns the declared variable ids, ascending.
func (g *Graph) Variables() []int {
	return g.collect(true)
}

// Undeclared returns ids referenced by some factor but never declared,
// ascending.
func (g *Graph) Undeclared() []int {
	return g.collect(false)
}

// Stats returns catalog sizes.
// Complexity: O(V+F).
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st := Stats{Links: g.links}
	var v *variable
	for _, v = range g.variables {
		if v.declared {
			st.Variables++
		} else {
			st.Undeclared++
		}
	}
	var f FactorID
	for f = range g.factors {
		if f.Kind == Objective {
			st.Objectives++
		} else {
			st.Constraints++
		}
	}

	return st
}

// Clone returns a deep copy. The source is only read-locked.
// Complexity: O(V+F+E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := New()
	out.links = g.links
	var (
		id int
		v  *variable
	)
	for id, v = range g.variables {
		out.variables[id] = &variable{declared: v.declared, factors: set.From(v.factors.Slice())}
	}
	var (
		f     FactorID
		scope []int
	)
	for f, scope = range g.factors {
		out.factors[f] = slices.Clone(scope)
	}

	return out
}

func (g *Graph) collect(declared bool) []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]int, 0, len(g.variables))
	var (
		id int
		v  *variable
	)
	for id, v = range g.variables {
		if v.declared == declared {
			out = append(out, id)
		}
	}
	slices.Sort(out)

	return out
}

// ensureVariable returns the node for id, creating an undeclared one.
// Caller must hold mu for writing.
func (g *Graph) ensureVariable(id int) *variable {
	v, ok := g.variables[id]
	if !ok {
		v = &variable{factors: set.New[FactorID](0)}
		g.variables[id] = v
	}

	return v
}
