package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime   Category = "runtime"
	CategoryHydration Category = "hydration"
	CategoryRender    Category = "render"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
)

// IslaError is a structured error with suggestions and documentation links.
type IslaError struct {
	// Code is a unique error identifier (e.g., "H001").
	Code string

	// Category is the error type (runtime, hydration, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is code showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *IslaError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *IslaError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *IslaError) WithSuggestion(s string) *IslaError {
	e.Suggestion = s
	return e
}

// WithExample adds a code example to the error.
func (e *IslaError) WithExample(ex string) *IslaError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *IslaError) WithDetail(d string) *IslaError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *IslaError) Wrap(err error) *IslaError {
	e.Wrapped = err
	return e
}

// New creates an IslaError from a registered error code.
func New(code string) *IslaError {
	template, ok := registry[code]
	if !ok {
		return &IslaError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &IslaError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new IslaError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *IslaError {
	return &IslaError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an IslaError with the given code.
func FromError(err error, code string) *IslaError {
	if err == nil {
		return nil
	}
	return New(code).Wrap(err)
}

// CategoryOf returns the category of an error, or empty for foreign errors.
func CategoryOf(err error) Category {
	if ie, ok := err.(*IslaError); ok {
		return ie.Category
	}
	return ""
}
