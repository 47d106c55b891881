// SPDX-License-Identifier: MIT
//
// File: problem.go
// Role: Problem[T] - the frozen, value-typed phase; Specialize and the
//       sample-drawing helpers Constrain and Minimize.
// Determinism:
//   - Reverse-index lists are ascending.

package model

import (
	"fmt"
	"strings"

	set "github.com/hashicorp/go-set/v3"
	"go.uber.org/multierr"

	"github.com/katalvlaran/cbls/constraint"
	"github.com/katalvlaran/cbls/domain"
	"github.com/katalvlaran/cbls/graph"
)

// Variable is a variable of a specialized problem.
type Variable[T domain.Number] struct {
	ID     int
	Domain domain.Domain[T]
}

// Problem is an immutable, value-typed problem: variables, constraints and
// objectives in dense arrays indexed by id, plus the reverse index from a
// variable to the factors that read it.
type Problem[T domain.Number] struct {
	variables   []Variable[T]
	constraints []*constraint.Constraint[T]
	objectives  []*constraint.Objective[T]

	constraintScopes [][]int
	objectiveScopes  [][]int
	varConstraints   [][]int
	varObjectives    [][]int

	g *graph.Graph
}

// Specialize freezes b and returns its value-typed form. Repeated calls
// with the same T return the same *Problem[T].
//
// It fails, without freezing b, when
//   - a scope names a variable id that was never declared,
//   - a domain value cannot be converted exactly to T,
//   - a constraint or objective function is not typed over T.
//
// All causes are reported together in one *SpecializationError.
//
// Complexity: O(V·|D| + Σ|scope|).
func Specialize[T domain.Number](b *Builder) (*Problem[T], error) {
	if b == nil {
		return nil, &SpecializationError{ValueType: valueType[T](), Err: ErrNilEntry}
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	vt := valueType[T]()
	if cached, ok := b.specialized[vt]; ok {
		return cached.(*Problem[T]), nil
	}

	var (
		errs error
		n    = len(b.variables)
		p    = &Problem[T]{
			variables:      make([]Variable[T], n),
			constraints:    make([]*constraint.Constraint[T], len(b.constraints)),
			objectives:     make([]*constraint.Objective[T], len(b.objectives)),
			varConstraints: make([][]int, n),
			varObjectives:  make([][]int, n),
		}
	)

	var (
		i int
		d domain.Erased
	)
	for i, d = range b.variables {
		td, err := domain.Convert[T](d)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("variable %d: %w", i, err))
			continue
		}
		p.variables[i] = Variable[T]{ID: i, Domain: td}
	}

	var f constraint.Erased
	for i, f = range b.constraints {
		key := graph.FactorID{Kind: graph.Constraint, ID: i}
		errs = multierr.Append(errs, checkScope(b.g, key, f.Scope()))
		c, ok := f.(*constraint.Constraint[T])
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s is over %s", ErrTypeMismatch, key, f.ValueType()))
			continue
		}
		p.constraints[i] = c
	}
	for i, f = range b.objectives {
		key := graph.FactorID{Kind: graph.Objective, ID: i}
		errs = multierr.Append(errs, checkScope(b.g, key, f.Scope()))
		o, ok := f.(*constraint.Objective[T])
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s is over %s", ErrTypeMismatch, key, f.ValueType()))
			continue
		}
		p.objectives[i] = o
	}
	if errs != nil {
		return nil, &SpecializationError{ValueType: vt, Err: errs}
	}

	if err := p.link(b.g); err != nil {
		return nil, &SpecializationError{ValueType: vt, Err: err}
	}
	p.g = b.g.Clone()

	b.frozen = true
	b.specialized[vt] = p

	return p, nil
}

// checkScope returns one *UnknownVariableError per distinct undeclared id.
func checkScope(g *graph.Graph, key graph.FactorID, scope []int) error {
	var (
		errs error
		seen = set.New[int](len(scope))
		id   int
	)
	for _, id = range scope {
		if !g.HasVariable(id) && seen.Insert(id) {
			errs = multierr.Append(errs, &UnknownVariableError{Where: key.String(), ID: id})
		}
	}

	return errs
}

// link copies the scopes and the variable → factor lists out of g. Factors
// come back constraints first, each kind ascending, so every list is sorted
// and holds a factor once however often its scope repeats the variable.
func (p *Problem[T]) link(g *graph.Graph) error {
	p.constraintScopes = make([][]int, len(p.constraints))
	p.objectiveScopes = make([][]int, len(p.objectives))
	var (
		i   int
		err error
	)
	for i = range p.constraintScopes {
		if p.constraintScopes[i], err = g.Scope(graph.FactorID{Kind: graph.Constraint, ID: i}); err != nil {
			return err
		}
	}
	for i = range p.objectiveScopes {
		if p.objectiveScopes[i], err = g.Scope(graph.FactorID{Kind: graph.Objective, ID: i}); err != nil {
			return err
		}
	}

	var (
		id int
		fs []graph.FactorID
		f  graph.FactorID
	)
	for _, id = range g.Variables() {
		if fs, err = g.Factors(id); err != nil {
			return err
		}
		for _, f = range fs {
			if f.Kind == graph.Objective {
				p.varObjectives[id] = append(p.varObjectives[id], f.ID)
			} else {
				p.varConstraints[id] = append(p.varConstraints[id], f.ID)
			}
		}
	}

	return nil
}

// NumVariables returns the number of variables.
func (p *Problem[T]) NumVariables() int { return len(p.variables) }

// NumConstraints returns the number of constraints.
func (p *Problem[T]) NumConstraints() int { return len(p.constraints) }

// NumObjectives returns the number of objectives.
func (p *Problem[T]) NumObjectives() int { return len(p.objectives) }

// IsSatisfaction reports whether the problem has no objective.
func (p *Problem[T]) IsSatisfaction() bool { return len(p.objectives) == 0 }

// IsOptimization reports whether the problem has at least one objective.
func (p *Problem[T]) IsOptimization() bool { return len(p.objectives) > 0 }

// ValueType returns the Go name of T.
func (p *Problem[T]) ValueType() string { return valueType[T]() }

// Variable returns variable id. id must be in [0, NumVariables()).
func (p *Problem[T]) Variable(id int) Variable[T] { return p.variables[id] }

// Domain returns the domain of variable id. id must be in range.
func (p *Problem[T]) Domain(id int) domain.Domain[T] { return p.variables[id].Domain }

// Constraint returns constraint i. i must be in [0, NumConstraints()).
func (p *Problem[T]) Constraint(i int) *constraint.Constraint[T] { return p.constraints[i] }

// Objective returns objective i. i must be in [0, NumObjectives()).
func (p *Problem[T]) Objective(i int) *constraint.Objective[T] { return p.objectives[i] }

// ConstraintScope returns the scope of constraint i without copying. The
// slice is shared and must not be modified.
func (p *Problem[T]) ConstraintScope(i int) []int { return p.constraintScopes[i] }

// ObjectiveScope returns the scope of objective i without copying. The
// slice is shared and must not be modified.
func (p *Problem[T]) ObjectiveScope(i int) []int { return p.objectiveScopes[i] }

// ConstraintsOf returns the ids of the constraints whose scope contains
// variable id, ascending. The slice is shared and must not be modified.
func (p *Problem[T]) ConstraintsOf(id int) []int { return p.varConstraints[id] }

// ObjectivesOf returns the ids of the objectives whose scope contains
// variable id, ascending. The slice is shared and must not be modified.
func (p *Problem[T]) ObjectivesOf(id int) []int { return p.varObjectives[id] }

// Neighbors returns the variables sharing a constraint or objective with id.
//
// Errors: graph.ErrVariableNotFound.
func (p *Problem[T]) Neighbors(id int) ([]int, error) { return p.g.Neighbors(id) }

// Stats returns the sizes of the interconnection graph.
func (p *Problem[T]) Stats() graph.Stats { return p.g.Stats() }

// Components groups the variables into independent subproblems: no factor
// reads variables from two different groups.
func (p *Problem[T]) Components() [][]int { return p.g.Components() }

// Describe renders the structure of the problem.
func (p *Problem[T]) Describe() string {
	sb := &strings.Builder{}
	header(sb, len(p.variables), len(p.constraints), len(p.objectives), p.ValueType())

	space := 1.0
	var v Variable[T]
	for _, v = range p.variables {
		space *= float64(v.Domain.Size())
	}
	fmt.Fprintf(sb, "  search space: %.3g assignments, %d links, %d components\n", space, p.Stats().Links, len(p.Components()))
	for _, v = range p.variables {
		cons, objs, _ := p.g.Degree(v.ID)
		fmt.Fprintf(sb, "  x%d ∈ %s, in %d constraints, %d objectives\n", v.ID, v.Domain, cons, objs)
	}
	var i int
	for i = range p.constraintScopes {
		fmt.Fprintf(sb, "  c%d over %v\n", i, p.constraintScopes[i])
	}
	for i = range p.objectiveScopes {
		fmt.Fprintf(sb, "  o%d over %v\n", i, p.objectiveScopes[i])
	}

	return sb.String()
}

// Constrain builds a constraint over ids, validating fn on the first value of
// every scoped domain, and adds it to b.
//
// Errors: *UnknownVariableError, domain.ErrNotRepresentable, *constraint.Error,
// ErrProblemFrozen.
func Constrain[T domain.Number](b *Builder, fn constraint.Func[T], ids ...int) (int, error) {
	sample, err := sampleOf[T](b, ids)
	if err != nil {
		return -1, err
	}
	c, err := constraint.New(fn, ids, sample)
	if err != nil {
		return -1, err
	}

	return b.AddConstraint(c)
}

// Minimize builds an objective over ids (every variable declared so far
// when ids is empty) and adds it to b.
//
// Errors: as Constrain, with *constraint.Error wrapping
// constraint.ErrInvalidObjective.
func Minimize[T domain.Number](b *Builder, fn constraint.Func[T], ids ...int) (int, error) {
	if len(ids) == 0 {
		ids = make([]int, b.NumVariables())
		for i := range ids {
			ids[i] = i
		}
	}
	sample, err := sampleOf[T](b, ids)
	if err != nil {
		return -1, err
	}
	o, err := constraint.NewObjective(fn, ids, sample)
	if err != nil {
		return -1, err
	}

	return b.AddObjective(o)
}

func sampleOf[T domain.Number](b *Builder, ids []int) ([]T, error) {
	sample := make([]T, len(ids))
	var (
		k, id int
	)
	for k, id = range ids {
		d, err := b.Domain(id)
		if err != nil {
			return nil, err
		}
		td, err := domain.Convert[T](d)
		if err != nil {
			return nil, fmt.Errorf("model: sample for variable %d: %w", id, err)
		}
		if sample[k], err = td.At(0); err != nil {
			return nil, err
		}
	}

	return sample, nil
}

func valueType[T domain.Number]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
