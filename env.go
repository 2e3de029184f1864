// File: specify/env.go
package specify

import (
	"os"
	"strings"
)

// EnvTransformFunc converts a schema name and field name to an
// environment variable name.
type EnvTransformFunc func(schemaName, fieldName string) string

// EnvProvider reads raw values from environment variables. The lookup
// name for each field is, in order of preference: the field's EnvName
// metadata, the Transform function, or the default transformation
// PREFIX + UPPER(FIELD).
type EnvProvider struct {
	// Prefix is prepended by the default transformation, e.g. "MYAPP_".
	Prefix string

	// Transform customizes how fields map to variable names. It is not
	// consulted for fields carrying EnvName metadata.
	Transform EnvTransformFunc

	// Whitelist limits which fields are looked up (nil = all).
	Whitelist map[string]bool

	// lookup stubs os.LookupEnv in tests.
	lookup func(string) (string, bool)
}

// FromEnv returns an environment provider with the given prefix.
func FromEnv(prefix string) *EnvProvider {
	return &EnvProvider{Prefix: prefix}
}

// Load implements the Provider interface. Values are returned as raw
// strings; parsing them is the engine's job. If no variable matches any
// field at all, Load reports ErrSourceNotFound.
func (p *EnvProvider) Load(s *Schema) (map[string]any, error) {
	lookup := p.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	found := make(map[string]any)
	for _, name := range s.FieldNames() {
		if p.Whitelist != nil && !p.Whitelist[name] {
			continue
		}

		envVar := s.envNameFor(name)
		if envVar == "" {
			if p.Transform != nil {
				envVar = p.Transform(s.Name(), name)
			} else {
				envVar = p.Prefix + strings.ToUpper(name)
			}
		}

		if value, exists := lookup(envVar); exists {
			found[name] = value
		}
	}

	if len(found) == 0 {
		return nil, ErrSourceNotFound
	}
	return found, nil
}
