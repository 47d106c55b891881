// SPDX-License-Identifier: MIT
//
// File: constraint.go
// Role: Func, Constraint, Objective and their validating constructors.
// Determinism:
//   - Validation calls the function exactly once with the caller's sample.

package constraint

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cbls/domain"
)

// Role distinguishes constraints from objectives behind the Erased view.
type Role int

const (
	// RoleConstraint marks a violation function (result ≥ 0).
	RoleConstraint Role = iota
	// RoleObjective marks a cost function (any finite result).
	RoleObjective
)

func (r Role) String() string {
	if r == RoleObjective {
		return "objective"
	}

	return "constraint"
}

// Func is a pure function over the values of a scope, in scope order.
type Func[T domain.Number] func(values []T) float64

// Erased is the type-independent view used while a problem is being built.
// Scope returns a copy.
type Erased interface {
	Role() Role
	Scope() []int
	Arity() int
	ValueType() string
}

// scoped is the storage shared by Constraint and Objective.
type scoped[T domain.Number] struct {
	scope []int
	fn    Func[T]
}

// Scope returns a copy of the ordered variable ids.
func (s *scoped[T]) Scope() []int {
	out := make([]int, len(s.scope))
	copy(out, s.scope)

	return out
}

// Arity returns len(Scope()).
func (s *scoped[T]) Arity() int { return len(s.scope) }

// ValueType returns the Go name of T.
func (s *scoped[T]) ValueType() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// Eval calls the function on values, which must be aligned with Scope.
// No validation happens here: this is the solver's hot path.
func (s *scoped[T]) Eval(values []T) float64 { return s.fn(values) }

// Constraint is an immutable violation function over a scope.
type Constraint[T domain.Number] struct {
	scoped[T]
}

// Role returns RoleConstraint.
func (c *Constraint[T]) Role() Role { return RoleConstraint }

// Objective is an immutable cost function over a scope.
type Objective[T domain.Number] struct {
	scoped[T]
}

// Role returns RoleObjective.
func (o *Objective[T]) Role() Role { return RoleObjective }

var (
	_ Erased = (*Constraint[int])(nil)
	_ Erased = (*Objective[int])(nil)
)

// New validates fn against sample and returns a Constraint over scope.
//
// Contracts:
//   - scope is non-empty; ids are not checked here (the problem does that).
//   - len(sample) == len(scope); sample[k] is a plausible value for scope[k].
//
// Errors: *Error (errors.Is ErrInvalidConstraint) when fn is nil, the shapes
// disagree, fn panics, or fn returns NaN, ±Inf or a negative number.
func New[T domain.Number](fn Func[T], scope []int, sample []T) (*Constraint[T], error) {
	s, err := validate(RoleConstraint, fn, scope, sample)
	if err != nil {
		return nil, err
	}

	return &Constraint[T]{scoped: s}, nil
}

// NewObjective validates fn against sample and returns an Objective over
// scope. Negative results are accepted.
//
// Errors: *Error (errors.Is ErrInvalidObjective).
func NewObjective[T domain.Number](fn Func[T], scope []int, sample []T) (*Objective[T], error) {
	s, err := validate(RoleObjective, fn, scope, sample)
	if err != nil {
		return nil, err
	}

	return &Objective[T]{scoped: s}, nil
}

func validate[T domain.Number](role Role, fn Func[T], scope []int, sample []T) (scoped[T], error) {
	ids := make([]int, len(scope))
	copy(ids, scope)

	fail := func(format string, args ...any) (scoped[T], error) {
		return scoped[T]{}, &Error{Role: role, Scope: ids, Reason: fmt.Sprintf(format, args...)}
	}

	if fn == nil {
		return fail("nil function")
	}
	if len(ids) == 0 {
		return fail("empty scope")
	}
	if len(sample) != len(ids) {
		return fail("sample has %d values for %d variables", len(sample), len(ids))
	}

	probe := make([]T, len(sample))
	copy(probe, sample)
	v, perr := call(fn, probe)
	if perr != nil {
		return fail("%v", perr)
	}
	if reason := Check(role, v); reason != "" {
		return fail("%s", reason)
	}

	return scoped[T]{scope: ids, fn: fn}, nil
}

// Check returns a non-empty reason when v is not an acceptable result for
// role: NaN and ±Inf are never acceptable, negative values are rejected for
// constraints only.
func Check(role Role, v float64) string {
	switch {
	case math.IsNaN(v):
		return "function returned NaN"
	case math.IsInf(v, 0):
		return fmt.Sprintf("function returned %v", v)
	case role == RoleConstraint && v < 0:
		return fmt.Sprintf("negative violation %v", v)
	}

	return ""
}

// call runs fn and converts a panic into an error.
func call[T domain.Number](fn Func[T], values []T) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("function panicked: %v", r)
		}
	}()

	return fn(values), nil
}
