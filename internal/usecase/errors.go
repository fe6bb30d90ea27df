package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// エラーの種類（レスポンスの"error"に入る）
type ErrorKind string

const (
	KindValidationFailed ErrorKind = "ValidationFailed"
	KindUnauthorized     ErrorKind = "Unauthorized"
	KindForbidden        ErrorKind = "Forbidden"
	KindNotFound         ErrorKind = "NotFound"
	KindConflictFailed   ErrorKind = "ConflictFailed"
	KindInternal         ErrorKind = "Internal"
)

// 500で返すときの文言（詳細はログにだけ出す）
const internalMessage = "internal server error"

type HTTPError struct {
	Status  int
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.Err }

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Kind:    kindForStatus(status),
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// HTTPErrorでなければInternal
func KindOf(err error) ErrorKind {
	if he, ok := AsHTTPError(err); ok {
		return he.Kind
	}
	return KindInternal
}

func ErrValidation(msg string) error { return NewHTTPError(http.StatusBadRequest, msg) }
func ErrUnauthorized(msg string) error { return NewHTTPError(http.StatusUnauthorized, msg) }
func ErrForbidden(msg string) error { return NewHTTPError(http.StatusForbidden, msg) }
func ErrNotFound(msg string) error { return NewHTTPError(http.StatusNotFound, msg) }
func ErrConflict(msg string) error { return NewHTTPError(http.StatusConflict, msg) }

// 原因を持つ500
func ErrInternal(cause error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: internalMessage,
		Err:     cause,
	}
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return KindValidationFailed
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflictFailed
	}
	return KindInternal
}
