// Package errors provides the error types used across the sportslink
// system. It keeps a small taxonomy — transport, not-found, conflict,
// validation, authentication — with sentinel errors for programmatic
// checks and typed errors carrying context.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As re-export the standard library helpers so callers only need
// one errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors.
var (
	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrAlreadyJoined indicates a duplicate join of the same event.
	ErrAlreadyJoined = errors.New("Event Already Joined")

	// ErrNotJoined indicates a leave of an event that was never joined.
	ErrNotJoined = errors.New("Event Not Joined")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIncorrectCredentials indicates a failed sign-in. The text is the
	// fixed message the application surfaces, verbatim.
	ErrIncorrectCredentials = errors.New("Incorrect Credentials")

	// ErrUnauthenticated indicates an operation that requires a signed-in
	// principal was attempted without one.
	ErrUnauthenticated = errors.New("not signed in")

	// ErrStoreUnavailable indicates the remote store could not be reached
	// or refused the operation.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotReady indicates a snapshot getter was called before the first
	// successful fetch completed.
	ErrNotReady = errors.New("catalog not ready")
)

// MsgCannotRetrieveEvents is the fixed message surfaced when a list
// subscription fails, matching the store collaborator's contract.
const MsgCannotRetrieveEvents = "Cannot Retrieve Events"

// NotFoundError represents an error when a resource is not found.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError represents a conflicting write: a duplicate join or a
// duplicate title where the store surfaces it.
type ConflictError struct {
	Resource string
	ID       string
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s already exists", e.Resource, e.ID)
}

// Unwrap implements errors.Unwrap.
func (e *ConflictError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *ConflictError) Is(target error) bool {
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return target == ErrAlreadyExists
}

// NewConflictError creates a new ConflictError.
func NewConflictError(resource, id, message string) *ConflictError {
	return &ConflictError{Resource: resource, ID: id, Message: message}
}

// ValidationError represents a validation failure caught client-side,
// before any remote call is attempted.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// TransportError represents a failure talking to the remote store or the
// authentication collaborator. The collaborator's message text is carried
// verbatim.
type TransportError struct {
	Op      string // "get", "set", "delete", "watch", "signin", ...
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *TransportError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// NewTransportError creates a new TransportError.
func NewTransportError(op, path, message string, err error) *TransportError {
	if message == "" && err != nil {
		message = err.Error()
	}
	return &TransportError{Op: op, Path: path, Message: message, Err: err}
}

// AuthenticationError represents a failed authentication attempt.
type AuthenticationError struct {
	Email   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrIncorrectCredentials.Error()
}

// Unwrap implements errors.Unwrap.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrIncorrectCredentials
}

// NewAuthenticationError creates a new AuthenticationError.
func NewAuthenticationError(email, message string, err error) *AuthenticationError {
	return &AuthenticationError{Email: email, Message: message, Err: err}
}

// ParseError represents an error decoding a store document or cache file.
type ParseError struct {
	Format  string // "json", "yaml"
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error in %s document %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during local file I/O (snapshot cache,
// seed files, token files).
type IOError struct {
	Operation string // "read", "write", "create", "delete"
	Path      string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking.

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflicting-write error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrAlreadyJoined)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTransport checks if an error is a transport error.
func IsTransport(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsAuthentication checks if an error is an authentication error.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrIncorrectCredentials) || errors.Is(err, ErrUnauthenticated)
}

// Helper wrapping functions for common patterns.

// WrapTransport wraps an error as a TransportError, carrying the
// collaborator's message verbatim.
func WrapTransport(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewTransportError(op, path, err.Error(), err)
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, path string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Path: path, Message: err.Error(), Err: err}
}

// WrapIO wraps an error as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapValidation wraps an error as a ValidationError.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}
