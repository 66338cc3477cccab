// Package maf implements a single-pass filter over tab-delimited mutation
// annotation (MAF) files.
//
// The first line of the input names the fields. Every following line is a
// record holding exactly one value per field. Records are read lazily, tested
// against a [Predicate], and written back in schema order, so retained lines
// are reproduced verbatim and in their original relative order.
package maf

import "strings"

// Delimiter separates fields on every line, header included.
const Delimiter = "\t"

// Well-known field and value used by the default predicate.
const (
	FilterField = "FILTER"
	PassValue   = "PASS"
)

// Schema is the ordered list of field names declared by the header line.
// It is immutable once parsed.
type Schema struct {
	fields []string
	index  map[string]int
}

// NewSchema builds a schema from ordered field names. Duplicate names are
// kept positionally; lookup by name resolves to the last column.
func NewSchema(fields []string) *Schema {
	s := &Schema{
		fields: append([]string(nil), fields...),
		index:  make(map[string]int, len(fields)),
	}

	for i, f := range s.fields {
		s.index[f] = i
	}

	return s
}

// ParseHeader splits a header line into a schema.
func ParseHeader(line string) *Schema {
	return NewSchema(strings.Split(line, Delimiter))
}

// Fields returns a copy of the field names in order.
func (s *Schema) Fields() []string {
	return append([]string(nil), s.fields...)
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Index returns the column position of name, or -1.
func (s *Schema) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}

	return -1
}

// Has reports whether name is a field of the schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Header renders the schema as a header line without terminator.
func (s *Schema) Header() string {
	return strings.Join(s.fields, Delimiter)
}
