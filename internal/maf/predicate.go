package maf

// Predicate decides whether a record is retained.
type Predicate func(Record) bool

// FieldEquals keeps records whose field equals value exactly. Records
// without the field are dropped.
func FieldEquals(field, value string) Predicate {
	return func(rec Record) bool {
		v, ok := rec.Get(field)
		return ok && v == value
	}
}

// PassOnly keeps records that passed the upstream quality filter.
var PassOnly = FieldEquals(FilterField, PassValue)

// RequireField fails when schema does not declare field.
func RequireField(schema *Schema, field, path string) error {
	if !schema.Has(field) {
		return &SchemaFieldMissingError{Path: path, Field: field}
	}

	return nil
}
