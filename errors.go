// File: specify/errors.go
package specify

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by Provider implementations.
// Both are treated as non-fatal by the resolution engine: the source is
// logged as unresolvable and skipped, and resolution continues.
var (
	// ErrSourceNotFound indicates the source's backing store is absent or
	// unreachable for this schema (e.g. no matching environment variables,
	// a missing configuration file).
	ErrSourceNotFound = errors.New("configuration source not found")

	// ErrSourceMalformed indicates the backing store exists but its content
	// could not be interpreted as a configuration map at all. This is
	// distinct from field-level parse failures, which are reported as
	// *ParseError by the engine.
	ErrSourceMalformed = errors.New("configuration source malformed")
)

// SchemaError reports an invalid schema definition: an unknown parser
// shorthand, a collection shorthand used as a simple parser, an invalid
// field name, or a duplicate field. It is returned by Builder.Build and is
// never produced at Load time.
type SchemaError struct {
	Schema string
	Detail string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %q: %s", e.Schema, e.Detail)
}

// ExplicitValueError reports explicit call-site values naming fields that
// do not exist in the schema. It is raised before any source is queried,
// so a typo in a call site can never be silently ignored.
type ExplicitValueError struct {
	Schema string
	Fields []string
}

// Error implements the error interface.
func (e *ExplicitValueError) Error() string {
	return fmt.Sprintf("schema %q: explicit values name unknown field(s): %s",
		e.Schema, strings.Join(e.Fields, ", "))
}

// MissingFieldsError reports required fields for which no source supplied
// a candidate value. All missing fields are reported in one batch, not
// just the first.
type MissingFieldsError struct {
	Schema string
	Fields []string
}

// Error implements the error interface.
func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("schema %q: missing required field(s): %s",
		e.Schema, strings.Join(e.Fields, ", "))
}

// ParseError reports the first field whose winning candidate was rejected
// by its parser. Resolution aborts on the first parse failure.
type ParseError struct {
	Schema string
	Field  string
	Raw    any
	Reason error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("schema %q: field %q: cannot parse %v: %v",
		e.Schema, e.Field, e.Raw, e.Reason)
}

// Unwrap exposes the parser's own reason for errors.Is / errors.As.
func (e *ParseError) Unwrap() error {
	return e.Reason
}

// ParserContractError reports a user-supplied parser that broke the parser
// contract by panicking instead of returning a value or an error. It
// indicates a bug in the parser, not bad input data.
type ParserContractError struct {
	Schema string
	Field  string
	Panic  any
}

// Error implements the error interface.
func (e *ParserContractError) Error() string {
	return fmt.Sprintf("schema %q: field %q: parser violated its contract: panic: %v",
		e.Schema, e.Field, e.Panic)
}
