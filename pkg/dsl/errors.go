package dsl

import (
	"errors"
	"fmt"
)

// Compile error codes. Each code selects a message in the localization catalog.
const (
	CodeEmptyQuery           = 1001
	CodeSyntaxError          = 1002
	CodeUnsupportedStatement = 1003
	CodeInvalidEncoding      = 1004
	CodeFunctionArity        = 1005
)

// CompileError reports a DSL query that could not be normalized or compiled.
type CompileError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying parser error, if any.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Is matches another CompileError by code.
func (e *CompileError) Is(target error) bool {
	var ce *CompileError
	if errors.As(target, &ce) {
		return e.Code == ce.Code
	}
	return false
}

func newCompileError(code int, format string, args ...any) *CompileError {
	return &CompileError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the compile error code from err. ok is false when err carries no code.
func CodeOf(err error) (code int, ok bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Code, true
	}
	return 0, false
}
