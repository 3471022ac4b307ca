package common

import (
	"errors"

	"github.com/noah-isme/basket/internal/pricing"
)

const (
	// ExitInternal is the process exit code for unexpected failures.
	ExitInternal = 1
	// ExitItemNotFound is the process exit code when a basket holds an unpriced item.
	ExitItemNotFound = 2
)

// AppError represents an error with an attached code and process exit code.
type AppError struct {
	Code     string
	Message  string
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, exitCode int, err error) *AppError {
	return &AppError{Code: code, Message: message, ExitCode: exitCode, Err: err}
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// Classify maps err onto an AppError. Existing AppErrors are returned as is.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}
	var target *AppError
	if errors.As(err, &target) {
		return target
	}
	if errors.Is(err, pricing.ErrItemNotFound) {
		return NewAppError("item_not_found", "basket contains an item with no price", ExitItemNotFound, err)
	}
	return NewAppError("internal", "basket could not be priced", ExitInternal, err)
}
