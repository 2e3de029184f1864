// File: specify/schema.go
package specify

import (
	"fmt"
	"strings"
)

// field is one immutable field descriptor inside a Schema.
type field struct {
	name       string
	doc        string
	spec       ParserSpec
	parse      ParseFunc
	defaultVal any
	hasDefault bool
	envName    string
}

// Schema is the immutable description of a configuration: its fields,
// their parsers, defaults, required set and per-field metadata. Schemas
// are created once via a Builder and are safe to share between goroutines.
type Schema struct {
	name    string
	fields  map[string]field
	order   []string
	sources []Provider
}

// Name returns the schema's name, used in error messages and as the key
// under which scoped and application-wide settings are looked up.
func (s *Schema) Name() string { return s.name }

// FieldNames returns the field names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// RequiredFields returns the names of fields with no default, in
// declaration order.
func (s *Schema) RequiredFields() []string {
	var required []string
	for _, name := range s.order {
		if !s.fields[name].hasDefault {
			required = append(required, name)
		}
	}
	return required
}

// Defaults returns a copy of the field -> default value mapping.
func (s *Schema) Defaults() map[string]any {
	defaults := make(map[string]any)
	for _, name := range s.order {
		if f := s.fields[name]; f.hasDefault {
			defaults[name] = f.defaultVal
		}
	}
	return defaults
}

// FieldDoc returns the documentation string attached to a field.
func (s *Schema) FieldDoc(name string) (string, bool) {
	f, ok := s.fields[name]
	if !ok {
		return "", false
	}
	return f.doc, true
}

// envNameFor returns the environment lookup name for a field: the
// per-field override when present, otherwise empty.
func (s *Schema) envNameFor(name string) string {
	return s.fields[name].envName
}

// FieldOption configures one field at declaration time.
type FieldOption func(*field)

// Default marks the field optional with the given raw default value. The
// default participates in parsing like any other candidate, so it must
// satisfy the field's parser.
func Default(v any) FieldOption {
	return func(f *field) {
		f.defaultVal = v
		f.hasDefault = true
	}
}

// Doc attaches a documentation string to the field.
func Doc(text string) FieldOption {
	return func(f *field) {
		f.doc = text
	}
}

// EnvName overrides the environment variable name used by environment
// providers for this field.
func EnvName(name string) FieldOption {
	return func(f *field) {
		f.envName = name
	}
}

// Builder assembles a Schema through a fluent interface. Errors are
// accumulated and reported by Build.
type Builder struct {
	name    string
	fields  map[string]field
	order   []string
	sources []Provider
	errs    []string
}

// New starts the definition of a schema with the given name.
func New(name string) *Builder {
	b := &Builder{
		name:   name,
		fields: make(map[string]field),
	}
	if name == "" {
		b.errs = append(b.errs, "schema name cannot be empty")
	}
	return b
}

// Field declares a field with its parser spec and options. A field
// without a Default option is required.
func (b *Builder) Field(name string, spec ParserSpec, opts ...FieldOption) *Builder {
	if !isValidFieldName(name) {
		b.errs = append(b.errs, fmt.Sprintf("invalid field name %q", name))
		return b
	}
	if _, exists := b.fields[name]; exists {
		b.errs = append(b.errs, fmt.Sprintf("duplicate field %q", name))
		return b
	}

	f := field{name: name, spec: spec}
	for _, opt := range opts {
		opt(&f)
	}

	b.fields[name] = f
	b.order = append(b.order, name)
	return b
}

// WithSources sets the schema's default source chain, in ascending
// precedence. It is used when a Load call does not supply its own.
func (b *Builder) WithSources(sources ...Provider) *Builder {
	b.sources = sources
	return b
}

// Build validates the definition, resolves every parser spec against the
// registry, and returns the immutable Schema. Definition problems are
// reported as a *SchemaError.
func (b *Builder) Build() (*Schema, error) {
	errs := append([]string(nil), b.errs...)

	fields := make(map[string]field, len(b.fields))
	for _, name := range b.order {
		f := b.fields[name]
		parse, err := f.spec.compile()
		if err != nil {
			errs = append(errs, fmt.Sprintf("field %q: %v", name, err))
			continue
		}
		f.parse = parse
		fields[name] = f
	}

	if len(errs) > 0 {
		return nil, &SchemaError{Schema: b.name, Detail: strings.Join(errs, "; ")}
	}

	return &Schema{
		name:    b.name,
		fields:  fields,
		order:   append([]string(nil), b.order...),
		sources: append([]Provider(nil), b.sources...),
	}, nil
}

// MustBuild is like Build but panics on error. Intended for package-level
// schema definitions where a bad schema is a programming error.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("schema build failed: %v", err))
	}
	return s
}

// isValidFieldName checks that a field name is a bare lowercase-ish
// identifier usable as a map key across all providers.
func isValidFieldName(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !(isLetter || r == '_') {
			return false
		}
		if !(isLetter || isDigit || r == '_') {
			return false
		}
	}
	return true
}
