package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Failure taxonomy of the ingestion core. Every error raised by the gateway,
// the orchestrator, or the repositories wraps exactly one of these.
var (
	ErrConfigMissing    = errors.New("configuration missing")
	ErrTransport        = errors.New("transport failure")
	ErrExtractionEmpty  = errors.New("extraction returned no usable content")
	ErrExtractionParse  = errors.New("extraction response could not be parsed")
	ErrValidation       = errors.New("validation failed")
	ErrRevisionConflict = errors.New("list revision conflict")
	ErrIngestBusy       = errors.New("ingestion already in progress")
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Typed helpers used across the ingestion pipeline.
func ConfigError(message string) error {
	return NewAppError("CONFIG_ERROR", message, ErrConfigMissing)
}

func TransportError(message string, cause error) error {
	if cause == nil {
		cause = ErrTransport
	} else if !errors.Is(cause, ErrTransport) {
		cause = fmt.Errorf("%w: %w", ErrTransport, cause)
	}
	return NewAppError("TRANSPORT_ERROR", message, cause)
}

func ValidationError(message string) error {
	return NewAppError("VALIDATION_ERROR", message, ErrValidation)
}
