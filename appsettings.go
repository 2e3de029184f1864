// File: specify/appsettings.go
package specify

import "sync"

// appSettings is the process-wide settings store: the application-wide
// analogue of a Scope, shared by every goroutine. It is keyed by schema
// name and consulted both as an ordinary source (via AppSettings) and by
// the options bootstrap under the well-known options key.
var appSettings = struct {
	mu     sync.RWMutex
	values map[string]map[string]any
}{
	values: make(map[string]map[string]any),
}

// SetAppSetting stores a process-wide raw value for one field of the
// named schema. Typically called during application startup.
func SetAppSetting(schemaName, fieldName string, value any) {
	appSettings.mu.Lock()
	defer appSettings.mu.Unlock()

	m, ok := appSettings.values[schemaName]
	if !ok {
		m = make(map[string]any)
		appSettings.values[schemaName] = m
	}
	m[fieldName] = value
}

// ClearAppSettings removes all process-wide values for the named schema.
func ClearAppSettings(schemaName string) {
	appSettings.mu.Lock()
	defer appSettings.mu.Unlock()

	delete(appSettings.values, schemaName)
}

// appSettingsFor returns a copy of the stored map for schemaName, or nil
// when the schema has no process-wide entries.
func appSettingsFor(schemaName string) map[string]any {
	appSettings.mu.RLock()
	defer appSettings.mu.RUnlock()

	m, ok := appSettings.values[schemaName]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// appSettingsProvider adapts the store to the Provider interface.
type appSettingsProvider struct{}

// AppSettings returns a Provider reading the process-wide settings store.
func AppSettings() Provider {
	return appSettingsProvider{}
}

// Load implements the Provider interface. A schema with no process-wide
// entries reports ErrSourceNotFound.
func (appSettingsProvider) Load(s *Schema) (map[string]any, error) {
	m := appSettingsFor(s.Name())
	if m == nil {
		return nil, ErrSourceNotFound
	}
	return m, nil
}
