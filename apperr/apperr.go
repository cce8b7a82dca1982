// Package apperr defines the error taxonomy shared by services and controllers.
// Every failure that crosses a service boundary carries a Kind so the HTTP layer
// can map it to a status code without string matching.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation           Kind = "VALIDATION_ERROR"
	KindDuplicateCredential  Kind = "DUPLICATE_CREDENTIAL"
	KindNotFound             Kind = "NOT_FOUND"
	KindAlreadyAssigned      Kind = "ALREADY_ASSIGNED"
	KindUnsupportedMediaType Kind = "UNSUPPORTED_MEDIA_TYPE"
	KindPayloadTooLarge      Kind = "PAYLOAD_TOO_LARGE"
	KindInvalidCredentials   Kind = "INVALID_CREDENTIALS"
	KindTokenExpired         Kind = "TOKEN_EXPIRED"
	KindTokenInvalid         Kind = "TOKEN_INVALID"
	KindForbidden            Kind = "FORBIDDEN"
	KindInternal             Kind = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Internal wraps an unexpected store or transport failure. The original cause is
// kept for logging but the message is what callers are allowed to see.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf extracts the taxonomy kind from err, defaulting to KindInternal for
// anything that did not originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicateCredential, KindAlreadyAssigned:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindInvalidCredentials, KindTokenExpired, KindTokenInvalid:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
