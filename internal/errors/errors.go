// Package errors provides centralized error definitions and error handling
// utilities for the medley codebase. It defines sentinel errors for the
// concurrency core and a domain error type for backend failures.
//
// # Error Categories
//
//   - ErrLockState: a caller violated the provider lock's usage contract.
//     Always a programming error; never retried.
//   - ProviderError: a single backend operation failed. These are isolated
//     per task by the dispatcher and reported, never fatal to a batch.
//   - Cache I/O failures have no error type at all: the cache is fail-open
//     and swallows them (see internal/cache).
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewProviderError("flatpak", "install failed", cause)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrLockState) { ... }
//
//	var provErr *errors.ProviderError
//	if errors.As(err, &provErr) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Lock-related sentinel errors
var (
	// ErrLockState indicates a caller violated the provider lock's usage
	// contract, e.g. releasing a shared hold it never acquired.
	ErrLockState = New("lock state violation")
)

// Provider-related sentinel errors
var (
	// ErrProviderNotFound indicates that no provider is registered under
	// the requested name.
	ErrProviderNotFound = New("provider not found")
	// ErrProviderUnavailable indicates that a provider is registered but
	// its package manager is not installed on this system.
	ErrProviderUnavailable = New("provider not available")
)

// General sentinel errors
var (
	// ErrNoSelection indicates that an interactive selection was cancelled
	// or produced no choice.
	ErrNoSelection = New("no selection made")
	// ErrNoProviders indicates that no package managers are available.
	ErrNoProviders = New("no package managers available")
)

// ProviderError represents a failed operation against a single backend
// package manager. It carries the provider name so batch reporting can
// attribute the failure.
//
// Example:
//
//	err := errors.NewProviderError("nixpkgs", "upgrade failed", cause)
//	fmt.Println(err) // "nixpkgs: upgrade failed: <cause>"
type ProviderError struct {
	Provider string
	Message  string
	cause    error
}

// NewProviderError creates a ProviderError for the named provider.
func NewProviderError(provider, message string, cause error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  message,
		cause:    cause,
	}
}

// Error returns the formatted error message.
func (e *ProviderError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.cause
}

// Is reports whether this error matches the target. Any *ProviderError
// matches another *ProviderError; otherwise matching falls through to
// the wrapped cause.
func (e *ProviderError) Is(target error) bool {
	if _, ok := target.(*ProviderError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "load search cache")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
