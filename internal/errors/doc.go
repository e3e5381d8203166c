// Package errors provides structured, actionable error messages for isla.
//
// The errors package implements a diagnostics system that:
//   - Explains what went wrong in plain language
//   - Suggests how to fix issues with code examples
//   - Links to documentation for deeper understanding
//
// # Error Categories
//
// Errors are organized into categories:
//   - runtime: reactive runtime errors (batch misuse, disposed scopes)
//   - hydration: island hydration failures (missing modules, bad state)
//   - render: server-rendering errors (island contract violations)
//   - config: configuration errors
//   - cli: command-line usage errors
//
// # Error Codes
//
// Each registered error has a unique code (e.g., "H001") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("H001").
//	    Wrap(cause).
//	    WithSuggestion("Register the island component before hydrating")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR H001: Island module not registered
//	//
//	//   Hint: Register the island component before hydrating
//	//
//	//   Learn more: https://isla.dev/docs/errors/H001
package errors
