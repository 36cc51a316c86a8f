package patcherrors

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrIO indicates a document or patch file could not be read or written.
	ErrIO = errors.New("i/o error")

	// ErrPatchNotFound indicates a required edit's matcher was not found.
	ErrPatchNotFound = errors.New("patch not found")

	// ErrParse indicates a patch file could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates a structurally invalid patch set.
	ErrValidation = errors.New("validation error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// IOError represents a failure to read or write a file.
type IOError struct {
	// Op is the operation that failed: "read" or "write"
	Op string
	// Path is the file path involved
	Path string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *IOError) Error() string {
	msg := "i/o error"
	if e.Op != "" {
		msg = e.Op + " error"
	}
	if e.Path != "" {
		msg += " on " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// PatchNotFoundError reports a required edit whose matcher is absent.
// When returned by an apply operation the target document was not written.
type PatchNotFoundError struct {
	// EditIndex is the zero-based index of the edit in the patch set
	EditIndex int
	// Name is the edit's label, if any
	Name string
	// Matcher is the text or pattern that was searched for
	Matcher string
	// Path is the document path (empty for in-memory documents)
	Path string
}

// Error returns a human-readable error message.
func (e *PatchNotFoundError) Error() string {
	msg := fmt.Sprintf("patch not found: edit[%d]", e.EditIndex)
	if e.Name != "" {
		msg += fmt.Sprintf(" (%s)", e.Name)
	}
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Matcher != "" {
		msg += ": no match for " + quoteSnippet(e.Matcher)
	}
	return msg
}

// Unwrap returns nil as PatchNotFoundError has no underlying cause.
func (e *PatchNotFoundError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *PatchNotFoundError) Is(target error) bool {
	return target == ErrPatchNotFound
}

// ParseError represents a failure to parse a patch file.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError represents a structural problem in a patch set.
type ValidationError struct {
	// Path is the location in the patch set (e.g., "edits[2].marker")
	Path string
	// Field is the top-level field name with the issue
	Field string
	// Message describes the validation failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " at " + e.Path
	} else if e.Field != "" {
		msg += " in field " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded, e.g. "document_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// maxSnippet bounds how much of a matcher is echoed in error messages.
const maxSnippet = 60

// quoteSnippet quotes s, truncating long multi-line matchers to their
// first line.
func quoteSnippet(s string) string {
	truncated := false
	for i, r := range s {
		if r == '\n' {
			s = s[:i]
			truncated = true
			break
		}
	}
	if len(s) > maxSnippet {
		n := maxSnippet
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n]
		truncated = true
	}
	if truncated {
		return fmt.Sprintf("%q...", s)
	}
	return fmt.Sprintf("%q", s)
}
