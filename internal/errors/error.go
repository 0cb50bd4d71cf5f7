package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryInit     Category = "init"
	CategoryUpdate   Category = "update"
	CategoryObserver Category = "observer"
	CategoryWait     Category = "wait"
	CategoryUsage    Category = "usage"
	CategoryConfig   Category = "config"
)

// StoreError is a structured error raised by a store operation.
type StoreError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Store is the name of the store that raised the error, if any.
	Store string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *StoreError) Unwrap() error {
	return e.Wrapped
}

// Is matches another *StoreError with the same code.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithStore records the store name on the error.
func (e *StoreError) WithStore(name string) *StoreError {
	e.Store = name
	return e
}

// Wrap wraps another error.
func (e *StoreError) Wrap(err error) *StoreError {
	e.Wrapped = err
	return e
}

// New creates a StoreError from a registered error code.
func New(code string) *StoreError {
	template, ok := Lookup(code)
	if !ok {
		return &StoreError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &StoreError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// FromError wraps a standard error in a StoreError.
// An error that already is a StoreError is returned unchanged.
func FromError(err error, code string) *StoreError {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}
