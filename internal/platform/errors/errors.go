// Package errors is the structured error type every layer returns
// import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for clients and the runs ledger
// values go over the wire, append only
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic is a panic recovered by middleware
	ErrorCodePanic

	// ErrorCodeUnavailable is a missing or unreachable dependency, retry may succeed
	ErrorCodeUnavailable

	// ErrorCodeInvalidArgument is a bad option value, e.g. a chunk size below 1
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is a request that failed tag validation
	ErrorCodeValidation

	ErrorCodeJSON

	// ErrorCodeDuplicateKey is a unique constraint violation
	ErrorCodeDuplicateKey

	ErrorCodeDB

	// ErrorCodeParse is input csv that cannot be decoded
	ErrorCodeParse

	// ErrorCodeIO is a local storage failure, temp dirs and staged files
	ErrorCodeIO
)

var codeNames = [...]string{
	ErrorCodeUnknown:         "unknown",
	ErrorCodePanic:           "panic",
	ErrorCodeUnavailable:     "unavailable",
	ErrorCodeInvalidArgument: "invalid_argument",
	ErrorCodeValidation:      "validation",
	ErrorCodeJSON:            "json",
	ErrorCodeDuplicateKey:    "duplicate_key",
	ErrorCodeDB:              "db",
	ErrorCodeParse:           "parse",
	ErrorCodeIO:              "io",
}

// String is the snake_case name logs and the runs ledger use
func (c ErrorCode) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

var statusOf = map[ErrorCode]int{
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeParse:           http.StatusBadRequest,
	ErrorCodeDuplicateKey:    http.StatusConflict,
}

// HTTPStatusCode is the response status for c, 500 unless the client is at fault
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusOf[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a coded message with an optional offending field and cause
type Error struct {
	code  ErrorCode
	msg   string
	field string // form or flag name the error is about, may be empty
	orig  error
}

// Wire is what clients see of an Error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig == nil:
		return e.msg
	default:
		return e.msg + ": " + e.orig.Error()
	}
}

func (e *Error) Unwrap() error   { return e.orig }
func (e *Error) Code() ErrorCode { return e.code }
func (e *Error) Field() string   { return e.field }
func (e *Error) Message() string { return e.msg }
func (e *Error) ToWire() Wire    { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom maps any error, foreign errors become unknown with their text
func WireFrom(err error) Wire {
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	if err == nil {
		return Wire{}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root follows Unwrap to the innermost cause, nil for nil
func Root(err error) error {
	for {
		next := stderrs.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// As finds the outermost *Error in err's chain
func As(err error) (e *Error, ok bool) {
	ok = stderrs.As(err, &e)
	return e, ok
}

// CodeOf is the code of err, unknown when err is not ours
func CodeOf(err error) ErrorCode {
	e, ok := As(err)
	if !ok {
		return ErrorCodeUnknown
	}
	return e.code
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is the response status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WithField returns a copy of err naming field, foreign errors pass through
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	named := *e
	named.field = field
	return &named
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap keeps orig as the cause, nil stays nil
func Wrap(orig error, code ErrorCode, msg string) error {
	if orig == nil {
		return nil
	}
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with a formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	if orig == nil {
		return nil
	}
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }
func Parsef(format string, a ...any) error       { return Newf(ErrorCodeParse, format, a...) }
func IOf(format string, a ...any) error          { return Newf(ErrorCodeIO, format, a...) }
func DBf(format string, a ...any) error          { return Newf(ErrorCodeDB, format, a...) }
func JSONErrf(format string, a ...any) error     { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error    { return Newf(ErrorCodePanic, format, a...) }
