// Package result defines the coded error and warning types shared by the
// container, the object graph readers and writers, and the filter layer.
//
// Every fatal failure carries a small negative integer code. Each package
// owns a family of codes so a failure can be traced to the exact read or
// write step without parsing its message:
//
//	err := result.New(-458, "scalar %q holds no value", name)
//	if result.Is(err, -458) { ... }
//
// Link resolution problems are not errors; they are collected as
// [Warnings] so partially resolved graphs stay usable.
package result

import (
	"context"
	"errors"
	"fmt"
)

// Code is a stable, machine-readable failure code. Codes are negative.
type Code int

// CodeCanceled marks an operation stopped by its context.
const CodeCanceled Code = -999

// ErrCanceled matches any canceled outcome with errors.Is.
var ErrCanceled = &Error{Code: CodeCanceled, Message: "operation canceled"}

// Error is a coded failure with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code, so sentinel
// values match any error raised with their code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether any *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}

// GetCode returns the code of the outermost *Error in err's chain, or 0
// when err carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// Canceled converts a context error into a canceled outcome. It returns
// nil when ctx has not been canceled.
func Canceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return Wrap(CodeCanceled, err, "operation canceled")
	}
	return nil
}

// IsCanceled reports whether err is a canceled outcome rather than a
// failure.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
