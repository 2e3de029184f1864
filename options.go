// File: specify/options.go
package specify

import (
	"errors"
	"fmt"
	"log/slog"
)

// OptionsKey is the well-known schema name under which the options
// bootstrap looks for process-wide (SetAppSetting) and scoped (Scope)
// overrides of the engine's own options.
const OptionsKey = "specify.options"

// LoadOptions configures one Load call.
type LoadOptions struct {
	// Sources is the source chain in ascending precedence (later sources
	// win). When nil, the schema's WithSources chain is used; when that
	// is also nil, DefaultSources().
	Sources []Provider

	// Values are explicit call-site values, the highest-precedence
	// source. Field names are validated against the schema before any
	// source is queried.
	Values map[string]any

	// Explain, when true, short-circuits parsing: Load returns a Record
	// exposing the full per-field candidate lists instead of parsed
	// values.
	Explain bool

	// Scope, when set, is consulted by the options bootstrap under
	// OptionsKey and appended to the source chain just below Values.
	Scope *Scope

	// Logger receives unresolvable-source warnings. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// MissingFieldsErrorFunc, when set, maps the *MissingFieldsError
	// before it is returned, letting callers substitute their own error
	// kind.
	MissingFieldsErrorFunc func(error) error

	// ParsingErrorFunc, when set, maps the *ParseError before it is
	// returned.
	ParsingErrorFunc func(error) error
}

// DefaultLoadOptions returns the standard load options.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{}
}

// DefaultSources returns the source chain used when neither the call nor
// the schema specifies one: the process-wide settings store only. No
// environment or file I/O happens unless asked for, and an empty store is
// treated as normal rather than warned about.
func DefaultSources() []Provider {
	return []Provider{optional{AppSettings()}}
}

// optionsSchema describes the engine's own configuration. Resolving it
// through the public path would need its own options first; the engine
// breaks that cycle by resolving this one schema against the hard-coded
// bootstrap chain (see bootstrapProviders).
var optionsSchema = New(OptionsKey).
	Field("explain", Named("boolean"), Default(false),
		Doc("Return raw candidate lists instead of a parsed record.")).
	Field("sources", Simple(parseSourceList), Default(nil),
		Doc("Source chain override, in ascending precedence.")).
	MustBuild()

// parseSourceList accepts nil, a single Provider, []Provider, or []any of
// Providers.
func parseSourceList(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return []Provider(nil), nil
	case []Provider:
		return v, nil
	case Provider:
		return []Provider{v}, nil
	case []any:
		sources := make([]Provider, 0, len(v))
		for _, e := range v {
			p, ok := e.(Provider)
			if !ok {
				return nil, fmt.Errorf("%v (%T) is not a source provider", e, e)
			}
			sources = append(sources, p)
		}
		return sources, nil
	default:
		return nil, fmt.Errorf("%v (%T) is not a list of source providers", raw, raw)
	}
}

// bootstrapProviders is the hard-coded source chain used only when the
// schema being resolved is the options schema itself, in ascending
// precedence: application-wide settings under OptionsKey, then the
// caller's Scope under OptionsKey. Compiled-in defaults sit below both;
// explicit call-site values sit above.
func bootstrapProviders(scope *Scope) []Provider {
	providers := []Provider{optional{AppSettings()}}
	if scope != nil {
		providers = append(providers, optional{scope})
	}
	return providers
}

// optional silences ErrSourceNotFound from a provider by substituting an
// empty map. The bootstrap consults its stores on every Load call, and
// their absence is the normal case, not worth a warning.
type optional struct {
	p Provider
}

// Load implements the Provider interface.
func (o optional) Load(s *Schema) (map[string]any, error) {
	found, err := o.p.Load(s)
	if err != nil {
		if errors.Is(err, ErrSourceNotFound) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	return found, nil
}

// resolveOptions determines the effective options for a Load call by
// resolving the options schema through the regular engine. The inner call
// terminates because resolving the options schema takes the bootstrap
// path instead of recursing.
func resolveOptions(opts LoadOptions) (LoadOptions, error) {
	explicit := make(map[string]any)
	if opts.Explain {
		explicit["explain"] = true
	}
	if opts.Sources != nil {
		explicit["sources"] = opts.Sources
	}

	inner := LoadOptions{
		Values: explicit,
		Scope:  opts.Scope,
		Logger: opts.Logger,
	}
	rec, err := Load(optionsSchema, inner)
	if err != nil {
		return LoadOptions{}, err
	}

	effective := opts
	explain, _ := rec.Get("explain")
	effective.Explain = explain.(bool)
	if sources, _ := rec.Get("sources"); sources != nil {
		if list := sources.([]Provider); list != nil {
			effective.Sources = list
		}
	}
	return effective, nil
}
