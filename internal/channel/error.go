package channel

import (
	"errors"
	"fmt"
)

// Error codes used by this package. Handlers may use their own.
const (
	CodeError          = "error"
	CodeNotImplemented = "notImplemented"
	CodeBadRequest     = "badRequest"
)

// Error is a handler failure that crosses the channel boundary as an error
// envelope: a code, a human readable message and optional details.
type Error struct {
	Code    string
	Message string
	Details interface{}

	// err is the local cause; it is not encoded.
	err error
}

// NewError creates an Error wrapping cause (which may be nil).
func NewError(code, message string, details interface{}, cause error) *Error {
	return &Error{Code: code, Message: message, Details: details, err: cause}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the local cause.
func (e *Error) Unwrap() error { return e.err }

// AsError converts err into an *Error. Existing *Error values anywhere in the
// chain are returned as-is; anything else gets CodeError.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return &Error{Code: CodeError, Message: err.Error(), err: err}
}
