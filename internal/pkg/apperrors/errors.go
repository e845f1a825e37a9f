package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrPersistence marks any database connectivity, constraint or mapping failure.
	ErrPersistence = errors.New("persistence error")

	// ErrBadRequest marks input that could not be bound to a request.
	ErrBadRequest = errors.New("bad request")
)

// PersistenceError describes a failed data access operation.
type PersistenceError struct {
	Op   string // repository operation, e.g. "insert student"
	Code string // SQLSTATE when the database reported one
	Err  error
}

// NewPersistenceError wraps err as a PersistenceError for op.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// WithCode adds the SQLSTATE reported by the database
func (e *PersistenceError) WithCode(code string) *PersistenceError {
	e.Code = code
	return e
}

// Error implements error interface
func (e *PersistenceError) Error() string {
	msg := e.Op
	if msg == "" {
		msg = ErrPersistence.Error()
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s (sqlstate %s)", msg, e.Code)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap implements errors.Unwrap interface
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrPersistence so callers can use errors.Is
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// BadRequestError describes a path parameter or body that failed type binding.
type BadRequestError struct {
	Message string
	Field   string // offending parameter, empty for the body
	Details string
}

// NewBadRequestError returns a BadRequestError with the given message
func NewBadRequestError(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}

// WithField names the offending parameter
func (e *BadRequestError) WithField(field string) *BadRequestError {
	e.Field = field
	return e
}

// WithDetails adds a human readable explanation
func (e *BadRequestError) WithDetails(details string) *BadRequestError {
	e.Details = details
	return e
}

func (e *BadRequestError) Error() string { return e.Message }

// Unwrap lets errors.Is match ErrBadRequest
func (e *BadRequestError) Unwrap() error { return ErrBadRequest }
