package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a protocol-level failure that maps directly to an HTTP status.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// From returns the *Error in err's chain, or a generic 500 when there is none.
// The second result reports whether err carried an *Error.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return Internal("internal error"), false
}
