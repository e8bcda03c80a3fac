package models

import (
	"errors"
	"fmt"
)

// ErrorKind is a machine-readable error category returned to API clients
type ErrorKind string

const (
	KindUnauthorized       ErrorKind = "Unauthorized"
	KindInvalidSlug        ErrorKind = "InvalidSlug"
	KindDuplicateSlug      ErrorKind = "DuplicateSlug"
	KindOrderConflict      ErrorKind = "OrderConflict"
	KindInvalidOrder       ErrorKind = "InvalidOrder"
	KindMissingField       ErrorKind = "MissingField"
	KindInvalidContent     ErrorKind = "InvalidContent"
	KindNotFound           ErrorKind = "NotFound"
	KindUnsupportedType    ErrorKind = "UnsupportedType"
	KindTooLarge           ErrorKind = "TooLarge"
	KindStorageFailure     ErrorKind = "StorageFailure"
	KindTransactionFailure ErrorKind = "TransactionFailure"
)

// IsValidation reports whether the kind belongs to the ValidationError family
func (k ErrorKind) IsValidation() bool {
	switch k {
	case KindInvalidSlug, KindDuplicateSlug, KindOrderConflict, KindInvalidOrder, KindMissingField, KindInvalidContent:
		return true
	default:
		return false
	}
}

// AppError is an error with a kind that handlers translate into a response
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewError creates an AppError of the given kind
func NewError(kind ErrorKind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates an AppError of the given kind that keeps the underlying cause
func WrapError(kind ErrorKind, err error, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// ErrUnauthorized is returned when the caller presents no valid admin capability
var ErrUnauthorized = NewError(KindUnauthorized, "unauthorized")

// KindOf returns the kind of err, or an empty kind if err carries none
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// NewValidationError creates an error of one of the validation kinds
func NewValidationError(kind ErrorKind, format string, args ...any) *AppError {
	if !kind.IsValidation() {
		kind = KindMissingField
	}
	return NewError(kind, format, args...)
}

// NotFoundError creates a NotFound error for the named entity
func NotFoundError(entity string, id int) *AppError {
	return NewError(KindNotFound, "%s %d not found", entity, id)
}

// ErrorResponse is the body of every failed API response
type ErrorResponse struct {
	OK    bool      `json:"ok" example:"false"`
	Error string    `json:"error" example:"slug must contain only lowercase latin letters and dashes"`
	Kind  ErrorKind `json:"kind" example:"InvalidSlug"`
}
