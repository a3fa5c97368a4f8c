package apperr

import (
	"errors"
	"net/http"
)

// Kind tags an error with the failure class the transport boundary maps to a
// status code. Internal operations return these instead of writing responses.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthentication
	KindValidation
	KindNotFound
	KindInvalidState
	KindVerification
	KindUpstream
	KindPersistence
)

type Error struct {
	Kind    Kind
	Message string
	Details string
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

// WithDetails carries upstream text the client should see alongside the
// message (stripe error strings, upstream webhook bodies).
func (e *Error) WithDetails(details string) *Error {
	e.Details = details
	return e
}

// KindOf unwraps err looking for a tagged error; untagged errors report
// KindUnknown and are treated as server faults.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindValidation, KindInvalidState, KindVerification:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
