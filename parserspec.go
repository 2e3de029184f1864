// File: specify/parserspec.go
package specify

import "fmt"

// ParserSpec describes how a field's raw candidate is parsed. A spec is
// one of four variants:
//
//   - a named shorthand resolved against the built-in parser catalog,
//   - a simple ParseFunc,
//   - a collection parser paired with an element spec,
//   - a list of alternative specs tried in order.
//
// Specs are resolved into a single ParseFunc at schema definition time;
// unknown shorthands and arity mismatches (a collection shorthand used
// where a simple parser is expected, or vice versa) surface as
// *SchemaError from Builder.Build, never at Load time.
type ParserSpec struct {
	kind     parserKind
	name     string
	fn       ParseFunc
	collName string
	collFn   CollectionParseFunc
	elem     *ParserSpec
	alts     []ParserSpec
}

type parserKind int

const (
	parserNamed parserKind = iota
	parserSimple
	parserCollection
	parserAlternatives
)

// Named refers to a built-in simple parser by shorthand, e.g.
// Named("integer").
func Named(name string) ParserSpec {
	return ParserSpec{kind: parserNamed, name: name}
}

// Simple wraps a parser function directly.
func Simple(fn ParseFunc) ParserSpec {
	return ParserSpec{kind: parserSimple, fn: fn}
}

// List pairs the built-in list collection parser with an element spec.
func List(elem ParserSpec) ParserSpec {
	return NamedCollection("list", elem)
}

// NamedCollection refers to a built-in collection parser by shorthand,
// paired with an element spec.
func NamedCollection(name string, elem ParserSpec) ParserSpec {
	return ParserSpec{kind: parserCollection, collName: name, elem: &elem}
}

// Collection pairs a custom collection parser function with an element
// spec.
func Collection(fn CollectionParseFunc, elem ParserSpec) ParserSpec {
	return ParserSpec{kind: parserCollection, collFn: fn, elem: &elem}
}

// OneOf tries each alternative in order; the first success wins. When all
// alternatives fail the individual reasons are collapsed into a single
// generic failure.
func OneOf(alts ...ParserSpec) ParserSpec {
	return ParserSpec{kind: parserAlternatives, alts: alts}
}

// compile resolves the spec into a single ParseFunc, checking shorthand
// names against the catalogs.
func (p ParserSpec) compile() (ParseFunc, error) {
	switch p.kind {
	case parserNamed:
		fn, ok := builtinParsers[p.name]
		if !ok {
			if _, isColl := builtinCollectionParsers[p.name]; isColl {
				return nil, fmt.Errorf("parser shorthand %q is a collection parser and needs an element parser", p.name)
			}
			return nil, fmt.Errorf("unknown parser shorthand %q", p.name)
		}
		return fn, nil

	case parserSimple:
		if p.fn == nil {
			return nil, fmt.Errorf("nil parser function")
		}
		return p.fn, nil

	case parserCollection:
		collFn := p.collFn
		if collFn == nil {
			fn, ok := builtinCollectionParsers[p.collName]
			if !ok {
				if _, isSimple := builtinParsers[p.collName]; isSimple {
					return nil, fmt.Errorf("parser shorthand %q is not a collection parser", p.collName)
				}
				return nil, fmt.Errorf("unknown collection parser shorthand %q", p.collName)
			}
			collFn = fn
		}
		elemFn, err := p.elem.compile()
		if err != nil {
			return nil, err
		}
		return func(raw any) (any, error) {
			return collFn(raw, elemFn)
		}, nil

	case parserAlternatives:
		if len(p.alts) == 0 {
			return nil, fmt.Errorf("empty list of alternative parsers")
		}
		fns := make([]ParseFunc, len(p.alts))
		for i, alt := range p.alts {
			fn, err := alt.compile()
			if err != nil {
				return nil, err
			}
			fns[i] = fn
		}
		return func(raw any) (any, error) {
			for _, fn := range fns {
				if v, err := fn(raw); err == nil {
					return v, nil
				}
			}
			// Sub-reasons are dropped, matching the documented behavior.
			return nil, fmt.Errorf("no parser accepted the value %v", raw)
		}, nil
	}
	return nil, fmt.Errorf("invalid parser spec")
}
