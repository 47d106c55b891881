// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/cbls/constraint"
)

var (
	// ErrNotSpecialized is the sentinel behind *NotSpecializedError.
	ErrNotSpecialized = errors.New("solver: problem cannot be specialized")

	// ErrValueNotInDomain indicates an initial value outside its variable's domain.
	ErrValueNotInDomain = errors.New("solver: value not in domain")

	// ErrUnboundedRun indicates MaxIteration == Unbounded with neither a
	// cancellable context nor a TimeLimit to stop the run.
	ErrUnboundedRun = errors.New("solver: unbounded run without a stop signal")

	// ErrInvalidOptions indicates an out-of-range option value.
	ErrInvalidOptions = errors.New("solver: invalid options")

	// ErrEvaluation is the sentinel behind *EvaluationError.
	ErrEvaluation = errors.New("solver: evaluation failed")

	// ErrInconsistentState is returned by Verify when a cache disagrees with
	// a fresh evaluation.
	ErrInconsistentState = errors.New("solver: inconsistent state")

	// ErrUnknownStatus indicates a string that names no Status.
	ErrUnknownStatus = errors.New("solver: unknown status")
)

// NotSpecializedError reports that Solve could not specialize its builder.
type NotSpecializedError struct {
	Err error
}

func (e *NotSpecializedError) Error() string {
	return fmt.Sprintf("solver: problem cannot be specialized: %v", e.Err)
}

// Unwrap exposes ErrNotSpecialized and the specialization failure.
func (e *NotSpecializedError) Unwrap() []error { return []error{ErrNotSpecialized, e.Err} }

// EvaluationError reports a constraint or objective that panicked or
// returned a malformed result during search. The run is aborted: the
// solver keeps returning this error.
type EvaluationError struct {
	Role   constraint.Role
	ID     int
	Scope  []int
	Reason string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("solver: %s #%d over scope %v: %s", e.Role, e.ID, e.Scope, e.Reason)
}

// Unwrap returns ErrEvaluation.
func (e *EvaluationError) Unwrap() error { return ErrEvaluation }
