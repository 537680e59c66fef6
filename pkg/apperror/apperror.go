// Package apperror defines the error kinds the API can report and how each
// kind maps to an HTTP status and a machine-readable code.
package apperror

import (
	"errors"
	"net/http"
)

// Kind is the closed set of failure categories.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
	KindStoreUnavailable
)

const (
	CodeInternal         = "ERR_INTERNAL"
	CodeValidation       = "ERR_VALIDATION"
	CodeUnauthorized     = "ERR_UNAUTHORIZED"
	CodeNotFound         = "ERR_NOT_FOUND"
	CodeConflict         = "ERR_CONFLICT"
	CodeStoreUnavailable = "ERR_STORE_UNAVAILABLE"
)

var kindCodes = map[Kind]string{
	KindInternal:         CodeInternal,
	KindValidation:       CodeValidation,
	KindUnauthorized:     CodeUnauthorized,
	KindNotFound:         CodeNotFound,
	KindConflict:         CodeConflict,
	KindStoreUnavailable: CodeStoreUnavailable,
}

var kindStatus = map[Kind]int{
	KindInternal:         http.StatusInternalServerError,
	KindValidation:       http.StatusBadRequest,
	KindUnauthorized:     http.StatusUnauthorized,
	KindNotFound:         http.StatusNotFound,
	KindConflict:         http.StatusConflict,
	KindStoreUnavailable: http.StatusServiceUnavailable,
}

// Code returns the machine-readable code of the kind.
func (k Kind) Code() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return CodeInternal
}

// HTTPStatus returns the response status for the kind.
func (k Kind) HTTPStatus() int {
	if status, ok := kindStatus[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (k Kind) String() string {
	return k.Code()
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is an error tagged with a Kind. Err holds the underlying cause and is
// never sent to clients.
type Error struct {
	Kind    Kind
	Message string
	Details []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func Validation(message string, details ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// KindOf reports the kind of err. Errors not produced by this package are
// internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
