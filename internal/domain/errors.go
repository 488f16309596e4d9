package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Generator specific errors
	ErrConsistency  ErrorCode = "CONSISTENCY_VIOLATION"
	ErrUnknownShape ErrorCode = "UNKNOWN_SHAPE"
	ErrStorage      ErrorCode = "STORAGE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewConsistencyError(message string) *DomainError {
	return NewError(ErrConsistency, message, nil)
}

func NewUnknownShapeError(kind ShapeKind) *DomainError {
	return NewError(ErrUnknownShape, fmt.Sprintf("unknown shape kind: %d", int(kind)), nil)
}

func NewStorageError(message string, err error) *DomainError {
	return NewError(ErrStorage, message, err)
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not a DomainError.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
