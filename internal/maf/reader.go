package maf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Reader parses records from a tab-delimited stream. It makes a single
// forward pass and cannot be restarted.
type Reader struct {
	br     *bufio.Reader
	name   string
	schema *Schema
	line   int
	err    error
}

// NewReader consumes the header line of r and returns a Reader positioned at
// the first data line. An input without a header yields ErrEmptyInput.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	o := newOptions("<input>", opts)

	rd := &Reader{
		br:   bufio.NewReader(r),
		name: o.name,
	}

	header, err := rd.readLine()
	if errors.Is(err, io.EOF) || (err == nil && header == "") {
		return nil, fmt.Errorf("%s: %w", rd.name, ErrEmptyInput)
	}

	if err != nil {
		return nil, err
	}

	rd.schema = ParseHeader(header)

	return rd, nil
}

// Schema returns the schema parsed from the header line.
func (r *Reader) Schema() *Schema { return r.schema }

// Line returns the number of physical lines consumed so far.
func (r *Reader) Line() int { return r.line }

// Next returns the next record. It returns io.EOF once the input is
// exhausted; any other error is sticky.
func (r *Reader) Next() (Record, error) {
	if r.err != nil {
		return Record{}, r.err
	}

	for {
		line, err := r.readLine()
		if err != nil {
			r.err = err
			return Record{}, err
		}

		// Blank lines carry no record.
		if line == "" {
			continue
		}

		values := strings.Split(line, Delimiter)
		if len(values) != r.schema.Len() {
			r.err = &MalformedRowError{
				Path: r.name,
				Line: r.line,
				Want: r.schema.Len(),
				Got:  len(values),
			}

			return Record{}, r.err
		}

		return NewRecord(r.schema, values, r.line), nil
	}
}

// All returns a lazy sequence over the remaining records. The sequence stops
// after yielding the first error; io.EOF is not yielded.
func (r *Reader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}

			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// readLine returns the next line without its terminator. A trailing "\r" is
// dropped so CRLF input parses like LF input.
func (r *Reader) readLine() (string, error) {
	s, err := r.br.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", &InputError{Path: r.name, Err: err}
		}

		if s == "" {
			return "", io.EOF
		}
	}

	r.line++

	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")

	return s, nil
}
