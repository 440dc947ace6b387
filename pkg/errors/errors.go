// Package errors provides the error types used by the credits system.
// Each type carries enough context for a human to fix the underlying
// problem (a registry entry, a config value, a file on disk) and supports
// errors.Is against the package sentinels.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As re-export the standard library helpers so callers need a
// single errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the credits system
var (
	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates that two identities claim the same email or name
	ErrConflict = errors.New("identity conflict")

	// ErrHistoryUnavailable indicates that version-control history could not be read
	ErrHistoryUnavailable = errors.New("history unavailable")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// Conflict describes one ambiguous identity. Key is the email or name that
// resolves to more than one person; Persons holds the primary emails of
// the people involved.
type Conflict struct {
	Kind    string // "email" or "alias"
	Key     string
	Persons []string
}

// String renders the conflict on a single line.
func (c Conflict) String() string {
	return fmt.Sprintf("%s %q claimed by %s", c.Kind, c.Key, strings.Join(c.Persons, ", "))
}

// IdentityConflictError reports every conflict found during a reconciliation
// pass. Conflicts are never resolved automatically.
type IdentityConflictError struct {
	Conflicts []Conflict
}

// Error implements the error interface
func (e *IdentityConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		return "identity conflict: " + e.Conflicts[0].String()
	}
	lines := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		lines = append(lines, "  "+c.String())
	}
	return fmt.Sprintf("%d identity conflicts:\n%s", len(e.Conflicts), strings.Join(lines, "\n"))
}

// Is implements errors.Is support
func (e *IdentityConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewIdentityConflictError creates an IdentityConflictError with conflicts
// sorted by kind and key so the message is stable between runs.
func NewIdentityConflictError(conflicts []Conflict) *IdentityConflictError {
	sorted := make([]Conflict, len(conflicts))
	copy(sorted, conflicts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Kind != sorted[j].Kind {
			return sorted[i].Kind < sorted[j].Kind
		}
		return sorted[i].Key < sorted[j].Key
	})
	return &IdentityConflictError{Conflicts: sorted}
}

// HistoryUnavailableError indicates the history source could not produce a
// complete read. The ledger must not be written from partial history.
type HistoryUnavailableError struct {
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *HistoryUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("history unavailable from %s: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("history unavailable from %s: %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *HistoryUnavailableError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *HistoryUnavailableError) Is(target error) bool {
	return target == ErrHistoryUnavailable
}

// NewHistoryUnavailableError creates a new HistoryUnavailableError
func NewHistoryUnavailableError(source, message string, err error) *HistoryUnavailableError {
	return &HistoryUnavailableError{Source: source, Message: message, Err: err}
}

// ExistingFilesError is returned by initialization when generated files are
// already present and overwriting was not requested.
type ExistingFilesError struct {
	Paths []string
}

// Error implements the error interface
func (e *ExistingFilesError) Error() string {
	return fmt.Sprintf("refusing to overwrite existing files (use --force): %s", strings.Join(e.Paths, ", "))
}

// Is implements errors.Is support
func (e *ExistingFilesError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "json", "toml"
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d:%d: %s", e.Format, e.File, e.Line, e.Column, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "rename", "remove", "stat"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// CanceledError reports that a run stopped because its context ended.
// It unwraps to the context error.
type CanceledError struct {
	Operation string
	Err       error
}

// Error implements the error interface
func (e *CanceledError) Error() string {
	return fmt.Sprintf("%s canceled: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *CanceledError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CanceledError) Is(target error) bool {
	return target == ErrCanceled
}

// Helper functions for error checking

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConflict checks if an error is an identity conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsHistoryUnavailable checks if an error is a history read failure
func IsHistoryUnavailable(err error) bool {
	return errors.Is(err, ErrHistoryUnavailable)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Message: err.Error(), Err: err}
}

// WrapCanceled wraps a context error as a CanceledError
func WrapCanceled(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &CanceledError{Operation: operation, Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
