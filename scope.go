// File: specify/scope.go
package specify

import "sync"

// Scope is a caller-owned key-value store of per-schema overrides: the
// explicit replacement for ambient process-local state. A Scope is passed
// into Load (directly in LoadOptions.Sources, or via LoadOptions.Scope
// where it doubles as the options-bootstrap source) rather than consulted
// implicitly.
//
// A Scope is safe for concurrent use.
type Scope struct {
	mu     sync.RWMutex
	values map[string]map[string]any // schema name -> field -> raw value
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{values: make(map[string]map[string]any)}
}

// Set stores a raw value for one field of the named schema.
func (sc *Scope) Set(schemaName, fieldName string, value any) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	m, ok := sc.values[schemaName]
	if !ok {
		m = make(map[string]any)
		sc.values[schemaName] = m
	}
	m[fieldName] = value
}

// SetAll stores raw values for several fields of the named schema.
func (sc *Scope) SetAll(schemaName string, values map[string]any) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	m, ok := sc.values[schemaName]
	if !ok {
		m = make(map[string]any, len(values))
		sc.values[schemaName] = m
	}
	for k, v := range values {
		m[k] = v
	}
}

// Delete removes all entries for the named schema.
func (sc *Scope) Delete(schemaName string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	delete(sc.values, schemaName)
}

// Load implements the Provider interface. A scope with no entry for the
// schema reports ErrSourceNotFound.
func (sc *Scope) Load(s *Schema) (map[string]any, error) {
	return sc.get(s.Name())
}

// get returns a copy of the stored map for schemaName.
func (sc *Scope) get(schemaName string) (map[string]any, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	m, ok := sc.values[schemaName]
	if !ok {
		return nil, ErrSourceNotFound
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, nil
}
