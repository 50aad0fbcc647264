/*
Copyright © 2025 changheonshin
*/

// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Application-level errors.
var (
	// LLM gateway errors.
	ErrConnection        = errors.New("llm endpoint unreachable")
	ErrTimeout           = errors.New("llm request timed out")
	ErrMalformedResponse = errors.New("malformed llm response")

	// File operation errors.
	ErrFileOperation = errors.New("file operation failed")
	ErrSourceMissing = errors.New("source directory does not exist")

	// Classification errors.
	ErrNoSignal = errors.New("no classification signal")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")

	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Retryable marks an error as transient so the engine's retry policy
// picks it up.
func Retryable(err error) error {
	return &RetryableError{Err: err, Retryable: true}
}

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

// UserMessage extracts the short human-readable message for an error,
// mapping the error taxonomy to actionable advice.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	switch {
	case errors.Is(err, ErrConnection), errors.Is(err, ErrTimeout):
		return "check that the LLM service is running"
	case errors.Is(err, ErrFileOperation):
		return "could not write to target location"
	case errors.Is(err, ErrSourceMissing):
		return "check that the source directory exists"
	case errors.Is(err, ErrNoSignal), errors.Is(err, ErrMalformedResponse):
		return "file left in default category"
	default:
		return err.Error()
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrConnection) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
