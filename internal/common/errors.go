// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input errors.
	ErrNoRecords      = errors.New("no invoice records")
	ErrMissingColumn  = errors.New("missing required column")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidTaxRate = errors.New("invalid tax rate")
	ErrDuplicateID    = errors.New("duplicate invoice identifier")

	// Collaborator errors.
	ErrCollaborator  = errors.New("collaborator failed")
	ErrEmptyQuestion = errors.New("question is empty")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// ValidationError reports a malformed input row. Row is the zero-based index
// of the row in the original input.
type ValidationError struct {
	Err    error
	Column string
	Value  string
	Row    int
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("row %d", e.Row)
	if e.Column != "" {
		msg += fmt.Sprintf(" column %q", e.Column)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error for a row.
func NewValidationError(row int, column, value string, err error) *ValidationError {
	return &ValidationError{Row: row, Column: column, Value: value, Err: err}
}

// CollaboratorError wraps a failure of an external collaborator such as the
// assistant or a report exporter. It is always recoverable.
type CollaboratorError struct {
	Err          error
	Collaborator string
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() []error {
	return []error{ErrCollaborator, e.Err}
}

// NewCollaboratorError wraps err as a failure of the named collaborator.
func NewCollaboratorError(collaborator string, err error) error {
	return &CollaboratorError{Collaborator: collaborator, Err: err}
}

// ConfigurationError reports absent or invalid configuration. It is fatal and
// must be raised before any analysis starts.
type ConfigurationError struct {
	Err error
	Key string
}

func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a configuration error for key.
func NewConfigurationError(key string, err error) error {
	return &ConfigurationError{Key: key, Err: err}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
