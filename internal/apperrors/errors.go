package apperrors

import (
	"errors"
	"fmt"
)

// Code is the stable machine-readable identifier of a rejected operation.
type Code string

const (
	CodeInvalidName     Code = "INVALID_NAME"
	CodeInvalidParent   Code = "INVALID_PARENT"
	CodeParentNotFound  Code = "PARENT_NOT_FOUND"
	CodeNotFound        Code = "NOT_FOUND"
	CodeDuplicateFolder Code = "DUPLICATE_FOLDER"
	CodeDuplicateName   Code = "DUPLICATE_NAME"
	CodeDuplicate       Code = "DUPLICATE"
	CodeIsFolder        Code = "IS_FOLDER"
	CodeFolderNotEmpty  Code = "FOLDER_NOT_EMPTY"
	CodeBlobMissing     Code = "BLOB_MISSING"
	CodeCycleDetected   Code = "CYCLE_DETECTED"
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the Code from err, or "" when err carries none.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
