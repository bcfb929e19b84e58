package serde

import "fmt"

// Error wraps any failure during schema parsing, encoding, or decoding, and
// registry failures encountered while fetching the schema needed for a
// serialize or deserialize call. It always carries the original cause.
type Error struct {
	Format string // "avro" or "json"
	Op     string // e.g. "serialize", "deserialize", "fetch-schema", "parse-schema"
	Schema string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("serde: %s %s %q: %v", e.Format, e.Op, e.Schema, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a serialization error for the given format and operation.
func NewError(format, op, schema string, err error) *Error {
	return &Error{Format: format, Op: op, Schema: schema, Err: err}
}
