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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"
	ErrInterrupted  ErrorCode = "INTERRUPTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// External tool errors
	ErrToolMissing   ErrorCode = "TOOL_MISSING"
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"
	ErrOutputParse   ErrorCode = "OUTPUT_PARSE"

	// Package manager errors
	ErrUpdateCheck   ErrorCode = "UPDATE_CHECK"
	ErrUpgradeFailed ErrorCode = "UPGRADE_FAILED"
	ErrOrphanRemove  ErrorCode = "ORPHAN_REMOVE"
	ErrCacheClean    ErrorCode = "CACHE_CLEAN"

	// Snapshot errors
	ErrSnapshotCreate ErrorCode = "SNAPSHOT_CREATE"
	ErrSnapshotSpace  ErrorCode = "SNAPSHOT_SPACE"
	ErrSnapshotConfig ErrorCode = "SNAPSHOT_CONFIG"

	// Disk health errors
	ErrDiskScan   ErrorCode = "DISK_SCAN"
	ErrDiskHealth ErrorCode = "DISK_HEALTH"

	// Config file merge errors
	ErrMergeTool   ErrorCode = "MERGE_TOOL"
	ErrMergeFailed ErrorCode = "MERGE_FAILED"

	// Exclusion list errors
	ErrExcludeLoad  ErrorCode = "EXCLUDE_LOAD"
	ErrExcludeWrite ErrorCode = "EXCLUDE_WRITE"

	// News feed errors
	ErrFeedFetch ErrorCode = "FEED_FETCH"
	ErrFeedParse ErrorCode = "FEED_PARSE"
)

// MaintError represents a structured error with code and details
type MaintError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MaintError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MaintError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MaintError) Is(target error) bool {
	var targetErr *MaintError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MaintError with the given code and message
func New(code ErrorCode, message string) *MaintError {
	return &MaintError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MaintError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MaintError {
	return &MaintError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MaintError
func Wrap(err error, code ErrorCode, message string) *MaintError {
	if err == nil {
		return nil
	}
	return &MaintError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MaintError {
	if err == nil {
		return nil
	}
	return &MaintError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MaintError) WithDetail(key string, value interface{}) *MaintError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var maintErr *MaintError
	if errors.As(err, &maintErr) {
		return maintErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MaintError
func GetErrorCode(err error) ErrorCode {
	var maintErr *MaintError
	if errors.As(err, &maintErr) {
		return maintErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MaintError
func GetErrorDetails(err error) map[string]interface{} {
	var maintErr *MaintError
	if errors.As(err, &maintErr) {
		return maintErr.Details
	}
	return nil
}
