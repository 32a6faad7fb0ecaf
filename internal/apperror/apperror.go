// Package apperror defines the error taxonomy shared by handlers,
// middleware, and the store, and its mapping to HTTP status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType int

const (
	Internal ErrorType = iota
	BadRequest
	Unauthorized
	Forbidden
	NotFound
	Conflict
)

// AppError carries a user-facing message and an optional wrapped cause.
// The cause is for logs; only Message ever reaches a response body.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) StatusCode() int {
	switch e.Type {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func New(t ErrorType, message string, cause error) *AppError {
	return &AppError{Type: t, Message: message, Err: cause}
}

func NewBadRequest(message string) *AppError { return New(BadRequest, message, nil) }

func NewUnauthorized(message string) *AppError { return New(Unauthorized, message, nil) }

func NewForbidden(message string) *AppError { return New(Forbidden, message, nil) }

func NewNotFound(message string) *AppError { return New(NotFound, message, nil) }

func NewConflict(message string) *AppError { return New(Conflict, message, nil) }

func NewInternal(message string, cause error) *AppError {
	return New(Internal, message, cause)
}

// From extracts an *AppError from err's chain, or wraps err as Internal
// with a generic message so callers never leak internal detail.
func From(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return NewInternal("internal error", err)
}

func Is(err error, t ErrorType) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Type == t
}
