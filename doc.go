// File: specify/doc.go

// Package specify provides declarative, multi-source configuration
// resolution for Go applications: declare a typed schema once, then
// resolve concrete values for it by merging configuration sources in a
// defined precedence order, with fail-fast errors on missing required
// fields and malformed values.
//
// Features:
//   - Immutable schemas built through a fluent Builder
//   - Multiple configuration sources with ascending precedence
//   - A catalog of built-in parsers (integer, float, boolean, atom,
//     timeout, list-of-X, mfa, function, ...) plus combinators for
//     collection and alternative parsers
//   - Batched reporting of missing required fields
//   - Explain mode exposing the full per-field candidate lists
//   - Environment, file (TOML/JSON/YAML), scoped and process-wide
//     settings providers
//   - Struct decoding of resolved records via mapstructure
//
// Quick Start:
//
//	var serverSchema = specify.New("myapp.server").
//	    Field("host", specify.Named("string"), specify.Default("localhost")).
//	    Field("port", specify.Named("integer")).
//	    WithSources(specify.FromEnv("MYAPP_")).
//	    MustBuild()
//
//	rec, err := specify.Load(serverSchema, specify.LoadOptions{
//	    Values: map[string]any{"port": 8080},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	host, _ := rec.String("host")
//	port, _ := rec.Int64("port")
//
// Precedence (lowest to highest):
//  1. Schema-level defaults
//  2. Sources, in list order (later sources win)
//  3. Explicit call-site Values
//
// Fields declared without a Default are required; resolving a schema
// whose required fields receive no candidate fails with a
// *MissingFieldsError naming all of them at once.
//
// The engine itself is configured through the same machinery: LoadOptions
// is backed by an options schema resolved against the process-wide
// settings store and the caller's Scope under the well-known OptionsKey,
// with a hard-coded bootstrap path that keeps the self-reference finite.
//
// Thread Safety:
// Schemas and Records are immutable after construction and safe to share.
// Each Load call keeps all mutable state on its own stack; providers are
// required to tolerate concurrent Load calls.
package specify
