package maf

import (
	"bufio"
	"io"
)

// Writer serializes records as tab-delimited lines in schema order.
// Output is buffered; call Flush before closing the underlying writer.
type Writer struct {
	bw     *bufio.Writer
	name   string
	schema *Schema
}

// NewWriter returns a Writer emitting lines for schema to w.
func NewWriter(w io.Writer, schema *Schema, opts ...Option) *Writer {
	o := newOptions("<output>", opts)

	return &Writer{
		bw:     bufio.NewWriter(w),
		name:   o.name,
		schema: schema,
	}
}

// WriteHeader writes the schema's field names as the first line.
func (w *Writer) WriteHeader() error {
	return w.writeLine(w.schema.Header())
}

// Write appends rec as one line.
func (w *Writer) Write(rec Record) error {
	return w.writeLine(rec.String())
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return &OutputError{Path: w.name, Err: err}
	}

	return nil
}

func (w *Writer) writeLine(s string) error {
	if _, err := w.bw.WriteString(s); err != nil {
		return &OutputError{Path: w.name, Err: err}
	}

	if err := w.bw.WriteByte('\n'); err != nil {
		return &OutputError{Path: w.name, Err: err}
	}

	return nil
}
