package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is the typed error raised by the validation and service layers.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two *Error values by code so wrapped copies still compare equal
// to the predefined values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Status returns the HTTP status code for the error.
func (e *Error) Status() int { return e.Kind.Status() }

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: e.Message, Err: cause}
}

// WithMessage returns a copy of e with a more specific message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: msg, Err: e.Err}
}

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrCreationFailed   = newError(KindBadRequest, "CREATION_FAILED", "creation failed")
	ErrUpdateFailed     = newError(KindBadRequest, "UPDATE_FAILED", "update failed")
	ErrDeleteFailed     = newError(KindBadRequest, "DELETE_FAILED", "delete failed")
	ErrInvalidRequest   = newError(KindBadRequest, "INVALID_REQUEST", "invalid request")
	ErrInvalidDateField = newError(KindBadRequest, "INVALID_DATE_FIELD", "unknown date field")

	ErrIDExist     = newError(KindConflict, "ID_EXIST", "id already exists")
	ErrUserIDExist = newError(KindConflict, "USER_ID_EXIST", "userId already exists")

	ErrNotFound          = newError(KindNotFound, "NOT_FOUND", "no matching record")
	ErrIDNotFound        = newError(KindNotFound, "ID_NOT_FOUND", "id does not exist")
	ErrDateNotFound      = newError(KindNotFound, "DATE_NOT_FOUND", "no record for the given date")
	ErrInvalidMemberInfo = newError(KindNotFound, "INVALID_MEMBER_INFO", "member does not exist")

	ErrPasswordIncorrect = newError(KindUnauthorized, "PASSWORD_INCORRECT", "password does not match")
	ErrIDIncorrect       = newError(KindUnauthorized, "ID_INCORRECT", "id does not match")

	ErrInternal = newError(KindInternal, "INTERNAL_SERVER_ERROR", "internal server error")
)

// KindOf reports the kind of err. Untyped errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// From returns err as *Error, converting untyped errors to ErrInternal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal.Wrap(err)
}

// BadRequest builds an INVALID_REQUEST error with a field specific message.
func BadRequest(msg string) *Error {
	return ErrInvalidRequest.WithMessage(msg)
}
