// Package errors provides error handling for the generator core.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrFileNotFound) {
//	    // handle missing source
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for the parse pipeline.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrFileNotFound indicates the grammar source file is missing or unreadable
	ErrFileNotFound = New("grammar file not found")

	// ErrLex indicates a tokenization failure in the grammar source
	ErrLex = New("lexical error")

	// ErrSyntax indicates the grammar source violates the language syntax
	ErrSyntax = New("syntax error")

	// ErrSemantic indicates a validation diagnostic (e.g. unresolved reference)
	// was promoted to fatal because validation was requested
	ErrSemantic = New("semantic error")
)

// IsFileNotFoundError checks if an error is or wraps ErrFileNotFound
func IsFileNotFoundError(err error) bool {
	return err != nil && Is(err, ErrFileNotFound)
}

// IsFatalParseError reports whether err belongs to the fatal parse taxonomy
// (file access, lexing, syntax, or requested-validation failures).
func IsFatalParseError(err error) bool {
	return err != nil && IsAny(err, ErrFileNotFound, ErrLex, ErrSyntax, ErrSemantic)
}
