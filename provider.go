// File: specify/provider.go
package specify

// Provider is a configuration source. Load returns the raw values the
// source can supply for the schema's fields. The map may be partial;
// fields it does not mention simply contribute no candidate.
//
// A provider whose backing store is absent or unreachable returns an
// error wrapping ErrSourceNotFound. A provider whose backing store exists
// but cannot be interpreted as a configuration map returns an error
// wrapping ErrSourceMalformed. The engine treats either as a skippable
// warning, never a Load failure.
//
// Providers must tolerate concurrent Load calls; the engine itself never
// retries a source within one resolution.
type Provider interface {
	Load(s *Schema) (map[string]any, error)
}

// Values is the simplest Provider: a fixed field -> raw value map. The
// engine also uses it internally to fold explicit call-site values into
// the source chain as the final, highest-precedence source.
type Values map[string]any

// Load implements the Provider interface.
func (v Values) Load(s *Schema) (map[string]any, error) {
	return v, nil
}
