// SPDX-License-Identifier: MIT

// Package domain provides finite, discrete, immutable value domains for
// local-search variables.
//
// Two representations are offered:
//
//   - Set[T]     - a direct value set: values are deduplicated and kept in
//     ascending order; index i is the i-th smallest value.
//   - Indexed[T] - an index indirection: search indices 0..n-1 map to the
//     caller's values in the caller's order. Useful when iterating compact
//     indices is cheaper than iterating heterogeneous values, or when the
//     order of values carries meaning (e.g. preference order).
//
// Both implement Domain[T]. The solver never works with values directly in
// its hot loop; it moves indices and resolves values through At.
//
// Numeric types:
//
//	Number = int | int8 | int16 | int32 | int64 |
//	         uint | uint8 | uint16 | uint32 | uint64 |
//	         float32 | float64
//
// A problem may be assembled from domains of different Number types (see the
// Erased view). Convert re-types a domain to a single target type and fails
// with ErrNotRepresentable whenever a value does not survive the round trip.
//
// Errors:
//
//	ErrEmptyDomain      - no values supplied.
//	ErrInvalidValue     - NaN or ±Inf in a floating-point domain.
//	ErrOutOfRange       - index outside [0, Size()).
//	ErrNotRepresentable - a value cannot be converted exactly to the target type.
//	ErrDomainTooLarge   - Interval bounds describe more than MaxIntervalSize values.
//
// Thread safety: domains are immutable after construction and safe for
// concurrent reads; Values returns a copy.
package domain
