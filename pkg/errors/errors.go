// Package errors defines the coded errors used across foldermgr.
//
// Every failure that crosses a package boundary carries an ErrorCode so
// callers (and tests) can branch on the category without matching message
// text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an error category.
type ErrorCode string

const (
	// General
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnexpected   ErrorCode = "UNEXPECTED"

	// Rules
	ErrSizeFormat         ErrorCode = "SIZE_FORMAT"
	ErrRuleInvalid        ErrorCode = "RULE_INVALID"
	ErrRuleSourceNotFound ErrorCode = "RULE_SOURCE_NOT_FOUND"
	ErrRuleSourceRead     ErrorCode = "RULE_SOURCE_READ"
	ErrSheetNotFound      ErrorCode = "SHEET_NOT_FOUND"

	// Filesystem
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileExists    ErrorCode = "FILE_EXISTS"
	ErrFileMove      ErrorCode = "FILE_MOVE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrDirRead       ErrorCode = "DIR_READ"
	ErrArchiveCreate ErrorCode = "ARCHIVE_CREATE"

	// Configuration
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// FoldermgrError is an error with a code, a message and optional details.
type FoldermgrError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Wrapped error
}

func (e *FoldermgrError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *FoldermgrError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a FoldermgrError with the same code.
func (e *FoldermgrError) Is(target error) bool {
	var other *FoldermgrError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// New creates an error with the given code and message.
func New(code ErrorCode, message string) *FoldermgrError {
	return &FoldermgrError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}
}

// Newf creates an error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *FoldermgrError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err under code. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *FoldermgrError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps err under code with a formatted message. A nil err yields nil.
func Wrapf(err error, code ErrorCode, format string, args ...any) *FoldermgrError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail attaches a single detail and returns the receiver.
func (e *FoldermgrError) WithDetail(key string, value any) *FoldermgrError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// IsErrorCode reports whether any error in err's chain has the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	var fe *FoldermgrError
	for err != nil {
		if !errors.As(err, &fe) {
			return false
		}
		if fe.Code == code {
			return true
		}
		err = fe.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost code in err's chain, or ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	var fe *FoldermgrError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the outermost details in err's chain.
func GetErrorDetails(err error) map[string]any {
	var fe *FoldermgrError
	if errors.As(err, &fe) {
		return fe.Details
	}
	return nil
}
