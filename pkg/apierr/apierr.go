package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of API error shared by the server and the Go client.
type Code string

const (
	CodeNoToken             Code = "NO_TOKEN"
	CodeTokenExpired        Code = "TOKEN_EXPIRED"
	CodeInvalidCredentials  Code = "INVALID_CREDENTIALS"
	CodeRefreshTokenMissing Code = "REFRESH_TOKEN_MISSING"
	CodeRefreshTokenExpired Code = "REFRESH_TOKEN_EXPIRED"
	CodeNetworkError        Code = "NETWORK_ERROR"
	CodeInvalidJSON         Code = "INVALID_JSON"
	CodeValidation          Code = "VALIDATION"
	CodeNotFound            Code = "NOT_FOUND"
	CodeConflict            Code = "CONFLICT"
	CodeForbidden           Code = "FORBIDDEN"
	CodeInternal            Code = "INTERNAL"
)

// Error is a typed API error carrying a stable code and a user-safe message.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a typed error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a typed error preserving the underlying cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// NotFound creates a NOT_FOUND error for a named resource.
func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}

// Validation creates a VALIDATION error.
func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// As unwraps err into an *Error if possible.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	if ae, ok := As(err); ok {
		return ae.Code == code
	}
	return false
}

// HTTPStatus maps an error to the HTTP status the API responds with.
func HTTPStatus(err error) int {
	ae, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch ae.Code {
	case CodeValidation, CodeInvalidJSON:
		return http.StatusBadRequest
	case CodeNoToken, CodeTokenExpired, CodeInvalidCredentials, CodeRefreshTokenExpired:
		return http.StatusUnauthorized
	case CodeRefreshTokenMissing, CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
