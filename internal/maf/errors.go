package maf

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the input has no header line.
var ErrEmptyInput = errors.New("empty input: missing header line")

// ErrEmptyMatchField is returned when WithMatch is given an empty field name.
var ErrEmptyMatchField = errors.New("match field name must not be empty")

// InputError reports a failure opening or reading the input stream.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("reading input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// OutputError reports a failure creating, writing, or committing the output.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("writing output %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// SchemaFieldMissingError is returned when the header lacks a field the
// pass depends on.
type SchemaFieldMissingError struct {
	Path  string
	Field string
}

func (e *SchemaFieldMissingError) Error() string {
	return fmt.Sprintf("%s: header has no %q field", e.Path, e.Field)
}

// MalformedRowError is returned when a data line does not carry exactly one
// value per schema field.
type MalformedRowError struct {
	Path string
	Line int
	Want int
	Got  int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s:%d: expected %d fields, got %d", e.Path, e.Line, e.Want, e.Got)
}

// IsFormatError reports whether err describes malformed input content
// rather than an I/O failure.
func IsFormatError(err error) bool {
	var (
		missing   *SchemaFieldMissingError
		malformed *MalformedRowError
	)

	return errors.Is(err, ErrEmptyInput) ||
		errors.As(err, &missing) ||
		errors.As(err, &malformed)
}
