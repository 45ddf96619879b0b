// Package errors provides error handling for solpm.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints for CLI error output
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
//	if errors.Is(err, errors.ErrProgramNotFound) {
//	    // handle missing registry entry
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
	Is           = crdb.Is
	IsAny        = crdb.IsAny
	As           = crdb.As
	Unwrap       = crdb.Unwrap
	UnwrapAll    = crdb.UnwrapAll
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Sentinel errors for solpm operations. Use with errors.Is() for
// type-safe checks; wrap with errors.Wrap() to add context while
// preserving the type.
var (
	// ErrConfigNotFound indicates a required configuration file does not exist
	ErrConfigNotFound = New("configuration not found")

	// ErrProgramNotFound indicates the requested program is not in the registry
	ErrProgramNotFound = New("program not found in registry")

	// ErrInvalidIDL indicates the IDL document is malformed or uses an
	// unrecognized schema construct (e.g. an unknown seed kind)
	ErrInvalidIDL = New("invalid IDL")

	// ErrInvalidPath indicates a file path is missing or unreadable
	ErrInvalidPath = New("invalid path")

	// ErrUploadFailed indicates a registry request was rejected
	ErrUploadFailed = New("upload failed")

	// ErrDataMissing indicates a required configuration field is empty
	ErrDataMissing = New("data missing")
)

// IsConfigNotFound checks if an error is or wraps ErrConfigNotFound
func IsConfigNotFound(err error) bool {
	return err != nil && Is(err, ErrConfigNotFound)
}

// IsProgramNotFound checks if an error is or wraps ErrProgramNotFound
func IsProgramNotFound(err error) bool {
	return err != nil && Is(err, ErrProgramNotFound)
}

// IsInvalidIDL checks if an error is or wraps ErrInvalidIDL
func IsInvalidIDL(err error) bool {
	return err != nil && Is(err, ErrInvalidIDL)
}

// NewInvalidIDLError creates an invalid-IDL error with a formatted message
func NewInvalidIDLError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidIDL, Newf(format, args...).Error())
}

// NewConfigNotFoundError creates a config-not-found error with a formatted message
func NewConfigNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrConfigNotFound, Newf(format, args...).Error())
}
