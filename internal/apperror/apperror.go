// Package apperror defines the user-facing error kinds shared by all
// services: NotFound, AlreadyExists and BadRequest. Each carries a
// human-readable message that the HTTP layer returns as-is.
package apperror

import "errors"

// NotFoundError indicates the requested entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// AlreadyExistsError indicates a uniqueness conflict, e.g. a slug collision.
type AlreadyExistsError struct {
	Message string
}

func (e *AlreadyExistsError) Error() string {
	return e.Message
}

// BadRequestError indicates the request violated a validation rule.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// NotFound creates a NotFoundError with the given message.
func NotFound(message string) error {
	return &NotFoundError{Message: message}
}

// AlreadyExists creates an AlreadyExistsError with the given message.
func AlreadyExists(message string) error {
	return &AlreadyExistsError{Message: message}
}

// BadRequest creates a BadRequestError with the given message.
func BadRequest(message string) error {
	return &BadRequestError{Message: message}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsAlreadyExists reports whether err is an AlreadyExistsError.
func IsAlreadyExists(err error) bool {
	var target *AlreadyExistsError
	return errors.As(err, &target)
}

// IsBadRequest reports whether err is a BadRequestError.
func IsBadRequest(err error) bool {
	var target *BadRequestError
	return errors.As(err, &target)
}
