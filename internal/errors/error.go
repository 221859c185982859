package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryLifecycle  Category = "lifecycle"
	CategoryHost       Category = "host"
	CategoryDocument   Category = "document"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// VtreeError is a structured error with tree location and a suggestion.
type VtreeError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (validation, lifecycle, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Path is the position in the virtual tree, e.g. "div > ul > li[2]".
	Path string

	// Component is the name of the component involved, if any.
	Component string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *VtreeError) Error() string {
	msg := e.Message
	if e.Component != "" {
		msg += " (" + e.Component + ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *VtreeError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a *VtreeError with the same code.
func (e *VtreeError) Is(target error) bool {
	t, ok := target.(*VtreeError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithPath records where in the virtual tree the error happened.
func (e *VtreeError) WithPath(path string) *VtreeError {
	e.Path = path
	return e
}

// WithComponent records the component involved.
func (e *VtreeError) WithComponent(name string) *VtreeError {
	e.Component = name
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *VtreeError) WithSuggestion(s string) *VtreeError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *VtreeError) WithDetail(d string) *VtreeError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with a format string.
func (e *VtreeError) WithDetailf(format string, args ...any) *VtreeError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *VtreeError) Wrap(err error) *VtreeError {
	e.Wrapped = err
	return e
}

// New creates a VtreeError from a registered error code.
func New(code string) *VtreeError {
	template, ok := registry[code]
	if !ok {
		return &VtreeError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &VtreeError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new VtreeError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *VtreeError {
	return &VtreeError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a VtreeError.
// Errors that already are a *VtreeError are returned as is.
func FromError(err error, code string) *VtreeError {
	if err == nil {
		return nil
	}
	var ve *VtreeError
	if stderrors.As(err, &ve) {
		return ve
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err, or any error it wraps, is a *VtreeError with code.
func HasCode(err error, code string) bool {
	return stderrors.Is(err, &VtreeError{Code: code})
}

// CodeOf returns the code of the first *VtreeError in err's chain, or "".
func CodeOf(err error) string {
	var ve *VtreeError
	if stderrors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

// As is errors.As from the standard library, re-exported so callers that
// import this package under the name errors do not need both.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is is errors.Is from the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
