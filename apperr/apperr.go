// apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind hatanın sınıfıdır; istemciye aynen döner.
type Kind string

const (
	NotFound        Kind = "not_found"
	InvalidArgument Kind = "invalid_argument"
	Conflict        Kind = "conflict"
	Unauthorized    Kind = "unauthorized"
	Forbidden       Kind = "forbidden"
	Unavailable     Kind = "unavailable"
	Internal        Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is, aynı Kind'a sahip iki *Error'u eşit sayar.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf zincirdeki ilk *Error'un türünü döner, yoksa Internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message istemciye gösterilecek metni döner.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "unexpected error"
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case NotFound:
		return http.StatusNotFound
	case InvalidArgument:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
