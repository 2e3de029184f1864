// File: specify/resolve.go
package specify

import (
	"fmt"
	"log/slog"
	"sort"
)

// Load resolves concrete values for every field of the schema by merging
// the source chain in ascending precedence, parsing the winning candidate
// per field, and returning an immutable Record.
//
// Precedence, lowest to highest: schema defaults < earlier sources <
// later sources < explicit call-site Values.
//
// Unresolvable sources (ErrSourceNotFound / ErrSourceMalformed) are
// logged and skipped. Required fields left without any candidate are
// reported together in one *MissingFieldsError. The first field whose
// winning candidate fails its parser aborts the call with a *ParseError.
func Load(s *Schema, opts LoadOptions) (*Record, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Explicit values naming unknown fields are a hard error, raised
	// before any source is touched.
	if err := validateExplicitValues(s, opts.Values); err != nil {
		return nil, err
	}

	var sources []Provider
	explain := opts.Explain

	if s == optionsSchema {
		// Bootstrap: the options schema resolves against a fixed chain,
		// otherwise finding its options would require resolving it first.
		sources = bootstrapProviders(opts.Scope)
	} else {
		effective, err := resolveOptions(opts)
		if err != nil {
			return nil, err
		}
		explain = effective.Explain

		sources = effective.Sources
		if sources == nil {
			sources = s.sources
		}
		if sources == nil {
			sources = DefaultSources()
		}
		if opts.Scope != nil {
			// Implicit ambient source; a scope without entries for this
			// schema is the normal case, not a warning.
			sources = append(append([]Provider(nil), sources...), optional{opts.Scope})
		}
	}

	if len(opts.Values) > 0 {
		sources = append(append([]Provider(nil), sources...), Values(opts.Values))
	}

	acc := accumulate(s, sources, logger)

	// Explain mode reports the raw accumulator as-is, including empty
	// candidate lists for unsupplied required fields.
	if explain {
		return &Record{schema: s.name, candidates: acc, explained: true}, nil
	}

	if err := checkMissing(s, acc, opts.MissingFieldsErrorFunc); err != nil {
		return nil, err
	}

	values, err := parseWinners(s, acc, opts.ParsingErrorFunc)
	if err != nil {
		return nil, err
	}
	return &Record{schema: s.name, values: values}, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(s *Schema, opts LoadOptions) *Record {
	rec, err := Load(s, opts)
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}
	return rec
}

// Explain resolves the schema in explain mode and returns the per-field
// candidate lists in ascending precedence, skipping parsing entirely.
func Explain(s *Schema, opts LoadOptions) (map[string][]any, error) {
	opts.Explain = true
	rec, err := Load(s, opts)
	if err != nil {
		return nil, err
	}
	return rec.AllCandidates(), nil
}

// validateExplicitValues rejects explicit values for unknown fields.
func validateExplicitValues(s *Schema, values map[string]any) error {
	var unknown []string
	for name := range values {
		if _, ok := s.fields[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &ExplicitValueError{Schema: s.name, Fields: unknown}
}

// accumulate builds the per-field candidate lists: defaults seed optional
// fields with a one-element list, required fields start empty, and each
// source's values are appended in chain order so the last element is the
// highest-precedence candidate.
func accumulate(s *Schema, sources []Provider, logger *slog.Logger) map[string][]any {
	acc := make(map[string][]any, len(s.order))
	for _, name := range s.order {
		if f := s.fields[name]; f.hasDefault {
			acc[name] = []any{f.defaultVal}
		} else {
			acc[name] = []any{}
		}
	}

	for _, source := range sources {
		found, err := source.Load(s)
		if err != nil {
			// Best effort: an unreachable or garbled source must not
			// abort the whole resolution.
			logger.Warn("skipping unresolvable configuration source",
				"schema", s.name,
				"source", fmt.Sprintf("%T", source),
				"reason", err)
			continue
		}
		for _, name := range s.order {
			if value, ok := found[name]; ok {
				acc[name] = append(acc[name], value)
			}
		}
	}
	return acc
}

// checkMissing reports every required field without a candidate, batched.
func checkMissing(s *Schema, acc map[string][]any, wrap func(error) error) error {
	var missing []string
	for _, name := range s.order {
		if len(acc[name]) == 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var err error = &MissingFieldsError{Schema: s.name, Fields: missing}
	if wrap != nil {
		err = wrap(err)
	}
	return err
}

// parseWinners runs each field's highest-precedence candidate through its
// parser. The first failure aborts. A panicking parser breaks the parser
// contract and is reported as a *ParserContractError.
func parseWinners(s *Schema, acc map[string][]any, wrap func(error) error) (map[string]any, error) {
	values := make(map[string]any, len(s.order))
	for _, name := range s.order {
		candidates := acc[name]
		winner := candidates[len(candidates)-1]

		parsed, err := runParser(s, name, winner)
		if err != nil {
			if _, isContract := err.(*ParserContractError); !isContract && wrap != nil {
				err = wrap(err)
			}
			return nil, err
		}
		values[name] = parsed
	}
	return values, nil
}

// runParser invokes one field parser, converting panics into the
// programming-error kind.
func runParser(s *Schema, name string, raw any) (parsed any, err error) {
	defer func() {
		if r := recover(); r != nil {
			parsed = nil
			err = &ParserContractError{Schema: s.name, Field: name, Panic: r}
		}
	}()

	parsed, parseErr := s.fields[name].parse(raw)
	if parseErr != nil {
		return nil, &ParseError{Schema: s.name, Field: name, Raw: raw, Reason: parseErr}
	}
	return parsed, nil
}
