package entities

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyOwned       = errors.New("book already owned")
	ErrNotOwned           = errors.New("book not owned")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicate          = errors.New("record already exists")
)

// Resource names used in error messages.
const (
	ResourceBook = "Book"
	ResourceUser = "User"
)

// NotFoundError reports a missing row or an empty lookup result.
type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Resource + " Not Found"
}

// NewNotFoundError builds the default "<Resource> Not Found" error.
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// IDMismatchError is returned when a request body names a different id than the path.
type IDMismatchError struct {
	Resource string
	PathID   int64
	BodyID   uint
}

func (e *IDMismatchError) Error() string {
	return fmt.Sprintf("%s Id Mismatch: path id %d, body id %d", e.Resource, e.PathID, e.BodyID)
}

// ValidationError describes a field that failed a precondition.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewRequiredFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s can't be empty", field)}
}

func NewInvalidFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s is invalid", field)}
}

// IntegrationError wraps a failure talking to, or interpreting, an external service.
type IntegrationError struct {
	Service string
	Err     error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}
