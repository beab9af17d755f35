// Package contract exposes the minimal error interface used by other packages.
//
// Implementations must be immutable from the outside: getters never hand out
// internal state that a caller could mutate, and FieldErrors yields entries in
// insertion order.
package contract

import "iter"

// Error is the minimal, stable surface that other packages can depend on.
//
// Implementations must:
//   - Always report a Code (500 when nothing more specific is known).
//   - Yield field errors in the order they were recorded.
//   - Support errors.Unwrap via Unwrap().
//
// The interface intentionally contains only getters and Unwrap so that
// consumers never depend on how an error crossed a runtime boundary.
type Error interface {
	error
	Code() uint16
	Message() string
	// Title is the canonical name of Code, e.g. "NotFound" for 404.
	Title() string
	// FieldErrors yields path/message pairs; it yields nothing when the
	// error carries no field-level detail.
	FieldErrors() iter.Seq2[string, string]
	Unwrap() error
}
