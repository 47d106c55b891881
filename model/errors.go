// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrProblemFrozen indicates an addition after specialization.
	ErrProblemFrozen = errors.New("model: problem is frozen")

	// ErrUnknownVariable is the sentinel behind *UnknownVariableError.
	ErrUnknownVariable = errors.New("model: unknown variable")

	// ErrSpecialization is the sentinel behind *SpecializationError.
	ErrSpecialization = errors.New("model: specialization failed")

	// ErrNilEntry indicates a nil domain, constraint or objective.
	ErrNilEntry = errors.New("model: nil entry")

	// ErrTypeMismatch indicates a function typed over another value type
	// than the one requested from Specialize.
	ErrTypeMismatch = errors.New("model: function value type mismatch")
)

// UnknownVariableError reports a reference to a variable id that does not
// exist. Where names the referrer, e.g. "constraint#2" or "initial values".
type UnknownVariableError struct {
	Where string
	ID    int
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("model: unknown variable %d in %s", e.ID, e.Where)
}

// Unwrap returns ErrUnknownVariable.
func (e *UnknownVariableError) Unwrap() error { return ErrUnknownVariable }

// SpecializationError reports why a builder could not be specialized to
// ValueType. Err may combine several causes (go.uber.org/multierr).
type SpecializationError struct {
	ValueType string
	Err       error
}

func (e *SpecializationError) Error() string {
	return fmt.Sprintf("model: cannot specialize to %s: %v", e.ValueType, e.Err)
}

// Unwrap exposes both ErrSpecialization and the causes, so errors.Is and
// errors.As reach e.g. a nested *UnknownVariableError.
func (e *SpecializationError) Unwrap() []error {
	return []error{ErrSpecialization, e.Err}
}
