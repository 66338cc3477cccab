package maf

import "strings"

// Record is one data row: positional values bound to a schema.
type Record struct {
	schema *Schema
	values []string
	line   int
}

// NewRecord binds values to schema. The caller guarantees that len(values)
// equals schema.Len(); the Reader enforces this for parsed input.
func NewRecord(schema *Schema, values []string, line int) Record {
	return Record{schema: schema, values: values, line: line}
}

// Get returns the value of the named field.
func (r Record) Get(name string) (string, bool) {
	i := r.schema.Index(name)
	if i < 0 || i >= len(r.values) {
		return "", false
	}

	return r.values[i], true
}

// Values returns the values in schema order.
func (r Record) Values() []string { return r.values }

// Len returns the number of values.
func (r Record) Len() int { return len(r.values) }

// Line returns the 1-based input line the record was parsed from, or 0 for
// records built in memory.
func (r Record) Line() int { return r.line }

// String serializes the record as a data line without terminator.
func (r Record) String() string {
	return strings.Join(r.values, Delimiter)
}
