package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessCode signals that no error occurred.
	SuccessCode = 0

	// Errors that do not carry a code are reported as internal with a
	// generic message.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

type coder interface {
	ABCICode() uint32
}

// Code returns the code of the root error that given error wraps. Errors
// without a code are internal.
func Code(err error) uint32 {
	if isNilErr(err) {
		return SuccessCode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalCode
		}
		err = c.Cause()
	}
}

// Info returns the code and the log message that are safe to expose to a
// client. Outside of debug mode internal error messages are replaced with a
// generic text.
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}
	code := Code(err)
	if debug {
		return code, fmt.Sprintf("%+v", err)
	}
	if code == internalCode {
		return code, internalLog
	}
	return code, err.Error()
}

// Redact replaces all errors that do not wrap a registered root error, and
// all recovered panics, with a generic internal error.
func Redact(err error) error {
	if ErrPanic.Is(err) || Code(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}
