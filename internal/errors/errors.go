// Package errors provides standardized error handling for the Clair
// application. It defines the error kinds the stores and the organizer
// surface to callers, plus helpers for consistent creation, wrapping, and
// classification.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Store error kinds
	DuplicateName
	NotFound
	ConfigFormat
	Reserved
	// Filesystem error kinds
	FileOperationFailed
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// StoreError represents errors raised by the category and preset stores.
// It carries the category or preset name the operation failed on.
type StoreError struct {
	ApplicationError
	name string
}

// NewStoreError creates a new store error
func NewStoreError(msg string, name string, kind ErrorKind, err error) *StoreError {
	return &StoreError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		name: name,
	}
}

// NewDuplicateName creates a store error for a name collision
func NewDuplicateName(name string) *StoreError {
	return NewStoreError("name already exists", name, DuplicateName, nil)
}

// NewNotFound creates a store error for a missing entry
func NewNotFound(name string) *StoreError {
	return NewStoreError("not found", name, NotFound, nil)
}

// NewReserved creates a store error for an operation on a built-in entry
func NewReserved(name string) *StoreError {
	return NewStoreError("built-in entry cannot be modified", name, Reserved, nil)
}

// NewConfigFormat creates a store error for a malformed configuration file
func NewConfigFormat(msg string, err error) *StoreError {
	return NewStoreError(msg, "", ConfigFormat, err)
}

// Error returns the store error message
func (e *StoreError) Error() string {
	if e.name != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %q: %v", e.msg, e.name, e.err)
		}
		return fmt.Sprintf("%s: %q", e.msg, e.name)
	}
	return e.ApplicationError.Error()
}

// Name returns the category or preset name associated with the error
func (e *StoreError) Name() string {
	return e.name
}

// FileError represents errors related to file operations during a run
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: FileOperationFailed,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

func storeKind(err error, kind ErrorKind) bool {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Kind() == kind
	}
	return false
}

// IsDuplicateName checks if the error is a name collision error
func IsDuplicateName(err error) bool {
	return storeKind(err, DuplicateName)
}

// IsNotFound checks if the error is a missing-entry error
func IsNotFound(err error) bool {
	return storeKind(err, NotFound)
}

// IsConfigFormat checks if the error is a malformed-configuration error
func IsConfigFormat(err error) bool {
	return storeKind(err, ConfigFormat)
}

// IsReserved checks if the error is a built-in-entry error
func IsReserved(err error) bool {
	return storeKind(err, Reserved)
}

// IsFileError checks if the error is a file operation error
func IsFileError(err error) bool {
	var fileErr *FileError
	return errors.As(err, &fileErr)
}
