package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindDoubleEmail     Kind = "DOUBLE_EMAIL"
	KindWrongUser       Kind = "WRONG_USER"
	KindForbidden       Kind = "FORBIDDEN"
	KindBadRequest      Kind = "BAD_REQUEST"
	KindWrongDate       Kind = "WRONG_DATE"
	KindUnavailableItem Kind = "UNAVAILABLE_ITEM"
	KindValidation      Kind = "VALIDATION"
	KindInternal        Kind = "INTERNAL"
)

var statusByKind = map[Kind]int{
	KindNotFound:        http.StatusNotFound,
	KindDoubleEmail:     http.StatusConflict,
	KindWrongUser:       http.StatusConflict,
	KindForbidden:       http.StatusForbidden,
	KindBadRequest:      http.StatusBadRequest,
	KindWrongDate:       http.StatusBadRequest,
	KindUnavailableItem: http.StatusBadRequest,
	KindValidation:      http.StatusBadRequest,
	KindInternal:        http.StatusInternalServerError,
}

// Error is an application error carrying a caller-facing message.
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

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error { return newf(KindNotFound, format, args...) }

func DoubleEmail(format string, args ...any) *Error { return newf(KindDoubleEmail, format, args...) }

func WrongUser(format string, args ...any) *Error { return newf(KindWrongUser, format, args...) }

func Forbidden(format string, args ...any) *Error { return newf(KindForbidden, format, args...) }

func BadRequest(format string, args ...any) *Error { return newf(KindBadRequest, format, args...) }

func WrongDate(format string, args ...any) *Error { return newf(KindWrongDate, format, args...) }

func UnavailableItem(format string, args ...any) *Error {
	return newf(KindUnavailableItem, format, args...)
}

func Validation(format string, args ...any) *Error { return newf(KindValidation, format, args...) }

// Internal wraps an unexpected failure. The message is the cause's text.
func Internal(err error) *Error {
	if err == nil {
		return &Error{Kind: KindInternal, Message: "internal error"}
	}
	return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
}

// KindOf returns KindInternal for errors that are not *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps err to a response status code.
func HTTPStatus(err error) int {
	if status, ok := statusByKind[KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Message is the text sent to the caller. Untyped errors pass through as-is.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
