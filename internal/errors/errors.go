package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a Folio error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"  // 404
	ErrInvalidContent ErrorCode = "INVALID_CONTENT" // 422
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// FolioError represents a structured error with code, status, and details.
type FolioError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *FolioError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *FolioError {
	return &FolioError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a project or experience id that is not in the catalog.
func NewNotFound(kind string, id int) *FolioError {
	return &FolioError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %d", kind, id),
		Details: map[string]any{"kind": kind, "id": id},
	}
}

// NewFileNotFound creates a 404 error for a missing file on disk.
func NewFileNotFound(path string) *FolioError {
	return &FolioError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewInvalidContent creates a 422 error when the content document fails validation.
// Each issue is one human-readable line.
func NewInvalidContent(issues []string) *FolioError {
	msg := "content document is invalid"
	if len(issues) > 0 {
		msg = fmt.Sprintf("content document is invalid: %s", strings.Join(issues, "; "))
	}
	return &FolioError{
		Code:    ErrInvalidContent,
		Status:  422,
		Message: msg,
		Details: map[string]any{"issues": issues},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *FolioError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &FolioError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if err (or anything it wraps) is a FolioError with the given code.
func Is(err error, code ErrorCode) bool {
	var fErr *FolioError
	if stderrors.As(err, &fErr) {
		return fErr.Code == code
	}
	return false
}

// As returns the FolioError carried by err, converting anything else to an internal error.
func As(err error) *FolioError {
	var fErr *FolioError
	if stderrors.As(err, &fErr) {
		return fErr
	}
	return NewInternal(err)
}
