package apierr

import (
	"errors"
	"fmt"
)

// Failure codes, one per business-failure class. Infrastructure errors are
// never wrapped in an *Error; they propagate as plain errors.
const (
	CodeNotFound         = "not_found"
	CodeRevisionNotFound = "revision_not_found"
	CodeAlreadyExists    = "already_exists"
	CodeParentInactive   = "parent_inactive"
	CodeInvalidArgument  = "invalid_argument"
)

type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

func New(code string, err error) *Error {
	return &Error{Code: code, Err: err}
}

func Newf(code string, format string, args ...interface{}) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

// CodeOf returns the failure code carried by err, or "" when err is not a
// business failure.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
