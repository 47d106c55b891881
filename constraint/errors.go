// SPDX-License-Identifier: MIT

package constraint

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConstraint is the sentinel behind every rejected constraint.
	ErrInvalidConstraint = errors.New("constraint: invalid constraint")

	// ErrInvalidObjective is the sentinel behind every rejected objective.
	ErrInvalidObjective = errors.New("constraint: invalid objective")
)

// Error reports a function rejected at construction. It names the offending
// scope and unwraps to ErrInvalidConstraint or ErrInvalidObjective.
type Error struct {
	Role   Role
	Scope  []int
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("constraint: invalid %s over scope %v: %s", e.Role, e.Scope, e.Reason)
}

// Unwrap returns the role's sentinel so callers can branch with errors.Is.
func (e *Error) Unwrap() error {
	if e.Role == RoleObjective {
		return ErrInvalidObjective
	}

	return ErrInvalidConstraint
}
