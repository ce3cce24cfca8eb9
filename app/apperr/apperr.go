// Package apperr defines the error kinds handlers translate into responses.
package apperr

import (
	"errors"
	"net/http"
)

// ErrNotFound is wrapped by every "row not found" error of the persistence layer.
var ErrNotFound = errors.New("not found")

type Kind int

const (
	KindPersistence Kind = iota
	KindNotFound
	KindValidation
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindIO:
		return "io"
	default:
		return "persistence"
	}
}

// Error carries a kind and a user-facing message. Err is the underlying cause, if any.
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

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func IO(message string, err error) *Error {
	return &Error{Kind: KindIO, Message: message, Err: err}
}

func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "Something went wrong", Err: err}
}

// KindOf classifies err. Untyped errors wrapping ErrNotFound are NotFound,
// everything else unknown is Persistence.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindPersistence
}

// Message returns the text safe to show to a user.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if errors.Is(err, ErrNotFound) {
		return err.Error()
	}
	return "Something went wrong"
}

func StatusCode(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindIO:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
