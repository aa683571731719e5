// Package errors holds dtrobust's domain error kinds (spec.md §7): sentinel
// values rather than the teacher's richer suggestion-bearing diagnostics,
// since these four are fatal preconditions the evaluator checks, not typos
// a user can be nudged to fix. Syntax errors from the optional textual DSL
// surface (package grammar) use their own caret-style diagnostic instead.
package errors

import (
	"errors"

	"dtrobust/internal/schema"
)

var (
	// ErrNumeric is spec.md's NumericError: interval division by an
	// interval containing zero, raised only where a closed-form guard is
	// impossible.
	ErrNumeric = errors.New("dtrobust: numeric error: interval division by an interval containing zero")

	// ErrEmptyAbstraction is raised when summary is invoked on a T# whose
	// total-count upper bound is zero.
	ErrEmptyAbstraction = errors.New("dtrobust: empty abstraction: total count interval is zero")

	// ErrMalformedProgram is raised when the evaluator reaches the end of a
	// Sequence without a Return, or a Return appears in non-tail position.
	ErrMalformedProgram = errors.New("dtrobust: malformed program: execution did not end in return")

	// ErrSchemaMismatch is spec.md's SchemaMismatch error kind. It is the
	// same sentinel schema.ErrSchemaMismatch names — schema and predicate
	// are where a mismatch is actually detected and wrapped with %w, so
	// they own the underlying value; this package re-exports it so callers
	// checking dtrobust's four domain error kinds have one place to look.
	ErrSchemaMismatch = schema.ErrSchemaMismatch
)
