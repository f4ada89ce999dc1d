// Package util provides the VLAN range codec, logging, and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the error kinds returned by parsers and generators
var (
	ErrParse            = errors.New("parse error")
	ErrLookup           = errors.New("lookup failed")
	ErrInvariant        = errors.New("invariant violated")
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError reports a malformed token or an unparsable integer.
// Line is 1-based; zero means the error is not tied to an input line.
type ParseError struct {
	Line   int
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Line > 0 {
		msg += fmt.Sprintf(" on line %d", e.Line)
	}
	if e.Token != "" {
		msg += fmt.Sprintf(" at %q", e.Token)
	}
	return msg + ": " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// NewParseError creates a parse error for token
func NewParseError(token, reason string) *ParseError {
	return &ParseError{Token: token, Reason: reason}
}

// AtLine returns a copy of err annotated with a line number. Errors that
// are not *ParseError are returned unchanged.
func AtLine(err error, line int) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Line == 0 {
		annotated := *pe
		annotated.Line = line
		return &annotated
	}
	return err
}

// LookupError represents a reference to something that was never defined,
// e.g. a D-Link VLAN name used before its create statement.
type LookupError struct {
	Kind string
	Name string
	Line int
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	return msg
}

func (e *LookupError) Unwrap() error {
	return ErrLookup
}

// NewLookupError creates a lookup error
func NewLookupError(kind, name string) *LookupError {
	return &LookupError{Kind: kind, Name: name}
}

// InvariantError represents a model invariant broken by the input
type InvariantError struct {
	Subject string
	Reason  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated for %s: %s", e.Subject, e.Reason)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// NewInvariantError creates an invariant error
func NewInvariantError(subject, reason string) *InvariantError {
	return &InvariantError{Subject: subject, Reason: reason}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error from messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
