// Package businessflow contains the core business logic and use cases for dispatch tracking workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Messenger-related errors
	ErrMessengerNotFound = errors.New("messenger not found")

	// Dispatch-related errors
	ErrDispatchNotFound     = errors.New("dispatch not found")
	ErrDispatchItemsMissing = errors.New("dispatch requires at least one item")

	// Report-related errors
	ErrInvalidReportDate = errors.New("report date must be in YYYY-MM-DD format")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsMessengerNotFound(err error) bool {
	return errors.Is(err, ErrMessengerNotFound)
}

func IsDispatchNotFound(err error) bool {
	return errors.Is(err, ErrDispatchNotFound)
}

func IsDispatchItemsMissing(err error) bool {
	return errors.Is(err, ErrDispatchItemsMissing)
}

func IsInvalidReportDate(err error) bool {
	return errors.Is(err, ErrInvalidReportDate)
}
