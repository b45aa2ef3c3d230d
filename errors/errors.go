// Package errors defines the error taxonomy shared by schedpdf packages.
//
// Three kinds of failure are distinguished:
//
//   - ValidationError: a configuration edit or input value was rejected
//     (font size out of range, malformed colour, unknown day). The edit is
//     not applied.
//   - FontLoadError: a custom or named font could not be read or parsed.
//     Exports recover from it locally by falling back to another font and
//     report it as a warning.
//   - RenderError: the PDF engine failed. The export is aborted and no
//     output is written.
//
// Use the Is* helpers or errors.As from the standard library to inspect an
// error chain.
package errors

import (
	"errors"
	"fmt"
)

// ValidationError reports a rejected value.
type ValidationError struct {
	Field  string // what was being set, e.g. "header font size"
	Value  any    // offending value
	Reason string // human-readable constraint
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Validation creates a ValidationError.
func Validation(field string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}

// FontLoadError reports a font that could not be loaded.
type FontLoadError struct {
	Role string // style role the font was requested for, may be empty
	Font string // font name or file name
	Err  error
}

func (e *FontLoadError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("font %q (%s): %v", e.Font, e.Role, e.Err)
	}
	return fmt.Sprintf("font %q: %v", e.Font, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// FontLoad creates a FontLoadError.
func FontLoad(role, font string, err error) *FontLoadError {
	return &FontLoadError{Role: role, Font: font, Err: err}
}

// RenderError reports a failure inside the PDF engine during an operation.
type RenderError struct {
	Op  string // operation name, e.g. "AddPage", "Output"
	Err error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("render %s: unknown error", e.Op)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Render creates a RenderError.
func Render(op string, err error) *RenderError {
	return &RenderError{Op: op, Err: err}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsFontLoad reports whether err wraps a FontLoadError.
func IsFontLoad(err error) bool {
	var e *FontLoadError
	return errors.As(err, &e)
}

// IsRender reports whether err wraps a RenderError.
func IsRender(err error) bool {
	var e *RenderError
	return errors.As(err, &e)
}
