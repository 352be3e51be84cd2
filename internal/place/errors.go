// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package place

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOperation is returned when a provider does not implement an operation.
	ErrUnsupportedOperation = errors.New("operation not supported by provider")

	// ErrNotFound is returned when a well-formed request yields no result.
	ErrNotFound = errors.New("no result found")
)

// ValidationError reports a violated precondition of a request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError returns a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Unsupported wraps ErrUnsupportedOperation with the provider and operation name.
func Unsupported(provider, operation string) error {
	return fmt.Errorf("%s: %s: %w", provider, operation, ErrUnsupportedOperation)
}

// UnexpectedRecord returns the error a provider reports when handed a foreign record type.
func UnexpectedRecord(provider string, record Record) error {
	return fmt.Errorf("%s: unexpected record type %T", provider, record)
}
