// SPDX-License-Identifier: MIT
// Package domain: sentinel error set.
// Every message is prefixed with "domain: ..." so it can be grepped in logs.
// Callers match with errors.Is; context is added with fmt.Errorf("...: %w").

package domain

import "errors"

var (
	// ErrEmptyDomain is returned when a domain is built from no values.
	ErrEmptyDomain = errors.New("domain: empty domain")

	// ErrInvalidValue is returned when a floating-point domain receives NaN or ±Inf.
	ErrInvalidValue = errors.New("domain: NaN or Inf value")

	// ErrOutOfRange indicates an index outside [0, Size()).
	ErrOutOfRange = errors.New("domain: index out of range")

	// ErrNotRepresentable is returned by Convert when a value does not
	// survive conversion to the target numeric type.
	ErrNotRepresentable = errors.New("domain: value not representable in target type")

	// ErrDomainTooLarge is returned by Interval when hi-lo+1 exceeds MaxIntervalSize.
	ErrDomainTooLarge = errors.New("domain: interval too large")
)
