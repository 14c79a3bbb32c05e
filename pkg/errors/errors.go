package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Pipeline errors
	ErrSourceNotFound  ErrorCode = "SOURCE_NOT_FOUND"
	ErrCompileFailure  ErrorCode = "COMPILE_FAILURE"
	ErrPatchMismatch   ErrorCode = "PATCH_MISMATCH"
	ErrEmptyExtraction ErrorCode = "EMPTY_EXTRACTION"
	ErrRelocationMiss  ErrorCode = "RELOCATION_MISS"
	ErrFetch           ErrorCode = "FETCH"
	ErrManifestParse   ErrorCode = "MANIFEST_PARSE"
	ErrAxesFailed      ErrorCode = "AXES_FAILED"

	// Bundle errors
	ErrBundleLoad   ErrorCode = "BUNDLE_LOAD"
	ErrBundleFormat ErrorCode = "BUNDLE_FORMAT"
	ErrLocked       ErrorCode = "LOCKED"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"

	// Command errors
	ErrCommandExecute ErrorCode = "COMMAND_EXECUTE"
	ErrCommandTimeout ErrorCode = "COMMAND_TIMEOUT"
)

// IconpackError represents a structured error with code and details
type IconpackError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *IconpackError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *IconpackError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *IconpackError) Is(target error) bool {
	var targetErr *IconpackError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new IconpackError with the given code and message
func New(code ErrorCode, message string) *IconpackError {
	return &IconpackError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new IconpackError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *IconpackError {
	return &IconpackError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an IconpackError
func Wrap(err error, code ErrorCode, message string) *IconpackError {
	if err == nil {
		return nil
	}
	return &IconpackError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *IconpackError {
	if err == nil {
		return nil
	}
	return &IconpackError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *IconpackError) WithDetail(key string, value interface{}) *IconpackError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error, any error it wraps, or any error joined
// into it has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		if e, ok := err.(*IconpackError); ok && e.Code == code {
			return true
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				if IsErrorCode(e, code) {
					return true
				}
			}
			return false
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an IconpackError
func GetErrorCode(err error) ErrorCode {
	var iconErr *IconpackError
	if errors.As(err, &iconErr) {
		return iconErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an IconpackError
func GetErrorDetails(err error) map[string]interface{} {
	var iconErr *IconpackError
	if errors.As(err, &iconErr) {
		return iconErr.Details
	}
	return nil
}
