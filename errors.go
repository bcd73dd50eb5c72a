package workspace

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Error codes understood by automated handlers. The HTTP layer maps each
// code to a status code; services should pick the most specific one.
const (
	EInternal            = "internal error"
	ENotFound            = "not found"
	EConflict            = "conflict"             // action cannot be performed
	EInvalid             = "invalid"              // validation failed
	EUnprocessableEntity = "unprocessable entity" // data type is correct, but out of range
	EUnavailable         = "unavailable"
	EForbidden           = "forbidden"
	EUnauthorized        = "unauthorized"
)

// Error is the error type shared by all workspace services.
//
// Code targets automated handlers so that recovery can occur. Msg is for
// the operator diagnosing the problem. Op and Err chain errors together in
// a logical stack trace.
//
// To create a simple error,
//	&Error{
//	    Code: ENotFound,
//	}
// To show where the error happens, add Op.
//	&Error{
//	    Code: ENotFound,
//	    Op:   "tenant.FindRecord",
//	}
// To show an error with an unpredictable value, add the value in Msg.
//	&Error{
//	    Code: EConflict,
//	    Msg:  fmt.Sprintf("workspace with name %s already exists", name),
//	}
// To wrap another error,
//	&Error{
//	    Code: EInternal,
//	    Err:  err,
//	}
type Error struct {
	Code string
	Msg  string
	Op   string
	Err  error
}

// Error implements the error interface by writing out the recursive messages.
func (e *Error) Error() string {
	if e.Msg != "" && e.Err != nil {
		var b strings.Builder
		b.WriteString(e.Msg)
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
		return b.String()
	} else if e.Msg != "" {
		return e.Msg
	} else if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("<%s>", e.Code)
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of the root error, if available; otherwise
// returns EInternal.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	e, ok := err.(*Error)
	if !ok {
		return EInternal
	}

	if e == nil {
		return ""
	}

	if e.Code != "" {
		return e.Code
	}

	if e.Err != nil {
		return ErrorCode(e.Err)
	}

	return EInternal
}

// ErrorOp returns the op of the error, if available; otherwise returns an
// empty string.
func ErrorOp(err error) string {
	e, ok := err.(*Error)
	if !ok || e == nil {
		return ""
	}

	if e.Op != "" {
		return e.Op
	}

	if e.Err != nil {
		return ErrorOp(e.Err)
	}

	return ""
}

// ErrorMessage returns the human-readable message of the error, if
// available. Otherwise returns a generic message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	e, ok := err.(*Error)
	if !ok {
		return "An internal error has occurred."
	}

	if e == nil {
		return ""
	}

	if e.Msg != "" {
		return e.Msg
	}

	if e.Err != nil {
		return ErrorMessage(e.Err)
	}

	return "An internal error has occurred."
}

// ErrorStatusCode maps an error code to an HTTP status code.
func ErrorStatusCode(code string) int {
	if sc, ok := statusCode[code]; ok {
		return sc
	}
	return http.StatusInternalServerError
}

var statusCode = map[string]int{
	EInternal:            http.StatusInternalServerError,
	EInvalid:             http.StatusBadRequest,
	EUnprocessableEntity: http.StatusUnprocessableEntity,
	EConflict:            http.StatusUnprocessableEntity,
	ENotFound:            http.StatusNotFound,
	EUnavailable:         http.StatusServiceUnavailable,
	EForbidden:           http.StatusForbidden,
	EUnauthorized:        http.StatusUnauthorized,
}

// HTTPErrorHandler is the interface used by handlers to write service
// errors to a response.
type HTTPErrorHandler interface {
	HandleHTTPError(ctx context.Context, err error, w http.ResponseWriter)
}
