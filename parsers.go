// File: specify/parsers.go
package specify

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ParseFunc validates and converts one raw candidate value into its typed
// form. A ParseFunc must return either the parsed value and a nil error,
// or a descriptive error naming the offending value. It must not panic.
type ParseFunc func(raw any) (any, error)

// CollectionParseFunc parses a sequence-shaped raw value, applying elem to
// every element. The first element failure aborts the whole parse.
type CollectionParseFunc func(raw any, elem ParseFunc) (any, error)

// ParseInteger accepts any native integer as-is (normalized to int64) and
// text only if the entire text is a base-10 integer. Trailing characters
// are an error, never truncated away.
func ParseInteger(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > uint64(1)<<63-1 {
			return nil, fmt.Errorf("integer %d overflows int64", v)
		}
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid integer", v)
		}
		return i, nil
	default:
		return nil, fmt.Errorf("%v (%T) is not an integer", raw, raw)
	}
}

// ParseFloat accepts a native float as-is, a native integer converted to
// its float equivalent, and text only if the entire text is a float or
// integer.
func ParseFloat(raw any) (any, error) {
	switch v := raw.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid float", v)
		}
		return f, nil
	default:
		if i, err := ParseInteger(raw); err == nil {
			return float64(i.(int64)), nil
		}
		return nil, fmt.Errorf("%v (%T) is not a float", raw, raw)
	}
}

// ParsePositiveInteger composes ParseInteger with a > 0 check.
func ParsePositiveInteger(raw any) (any, error) {
	v, err := ParseInteger(raw)
	if err != nil {
		return nil, err
	}
	if v.(int64) <= 0 {
		return nil, fmt.Errorf("integer %d is not positive", v)
	}
	return v, nil
}

// ParseNonNegativeInteger composes ParseInteger with a >= 0 check.
func ParseNonNegativeInteger(raw any) (any, error) {
	v, err := ParseInteger(raw)
	if err != nil {
		return nil, err
	}
	if v.(int64) < 0 {
		return nil, fmt.Errorf("integer %d is negative", v)
	}
	return v, nil
}

// ParsePositiveFloat composes ParseFloat with a > 0 check.
func ParsePositiveFloat(raw any) (any, error) {
	v, err := ParseFloat(raw)
	if err != nil {
		return nil, err
	}
	if v.(float64) <= 0 {
		return nil, fmt.Errorf("float %v is not positive", v)
	}
	return v, nil
}

// ParseNonNegativeFloat composes ParseFloat with a >= 0 check.
func ParseNonNegativeFloat(raw any) (any, error) {
	v, err := ParseFloat(raw)
	if err != nil {
		return nil, err
	}
	if v.(float64) < 0 {
		return nil, fmt.Errorf("float %v is negative", v)
	}
	return v, nil
}

// ParseString accepts text as-is and stringifies other common kinds.
// Values with no sensible textual representation are an error.
func ParseString(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case Atom:
		return string(v), nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(raw).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(raw).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(raw).Float(), 'f', -1, 64), nil
	default:
		return nil, fmt.Errorf("%v (%T) has no textual representation", raw, raw)
	}
}

// ParseBoolean accepts native booleans as-is and the case-insensitive
// tokens "true" and "false" as text. Anything else is an error; numeric
// truthiness is deliberately not supported.
func ParseBoolean(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a boolean", v)
	case Atom:
		return ParseBoolean(string(v))
	default:
		return nil, fmt.Errorf("%v (%T) is not a boolean", raw, raw)
	}
}

// ParseAtom accepts a native Atom as-is and text only if it names an
// already-interned atom. The existence restriction keeps untrusted
// configuration from growing the atom table.
func ParseAtom(raw any) (any, error) {
	switch v := raw.(type) {
	case Atom:
		return v, nil
	case string:
		a, ok := LookupAtom(strings.TrimSpace(v))
		if !ok {
			return nil, fmt.Errorf("%q does not name an existing atom", v)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%v (%T) is not an atom", raw, raw)
	}
}

// ParseUnsafeAtom is ParseAtom without the existence restriction: unknown
// text is interned as a new atom. Only use on trusted input.
func ParseUnsafeAtom(raw any) (any, error) {
	switch v := raw.(type) {
	case Atom:
		return v, nil
	case string:
		return Intern(strings.TrimSpace(v)), nil
	default:
		return nil, fmt.Errorf("%v (%T) is not an atom", raw, raw)
	}
}

// ParseTerm accepts any value unchanged. Last-resort escape hatch.
func ParseTerm(raw any) (any, error) {
	return raw, nil
}

// ParseTimeout accepts a positive integer (a duration in milliseconds, by
// convention) or the literal Infinity, as atom or text.
func ParseTimeout(raw any) (any, error) {
	switch v := raw.(type) {
	case Atom:
		if v == Infinity {
			return Infinity, nil
		}
		return nil, fmt.Errorf("atom %q is not a valid timeout", v)
	case string:
		if strings.TrimSpace(v) == string(Infinity) {
			return Infinity, nil
		}
	}
	if v, err := ParsePositiveInteger(raw); err == nil {
		return v, nil
	}
	return nil, fmt.Errorf("%v (%T) is not a valid timeout (positive integer or infinity)", raw, raw)
}

// ParseMFA parses a module/function/arity triple and verifies that a
// callable with that exact name and arity is registered. Accepted shapes:
// an MFA value, a {module, function, arity} []any triple, or the textual
// form "module.function/arity".
func ParseMFA(raw any) (any, error) {
	var mfa MFA

	switch v := raw.(type) {
	case MFA:
		mfa = v
	case []any:
		if len(v) != 3 {
			return nil, fmt.Errorf("%v is not a {module, function, arity} triple", raw)
		}
		mod, err := ParseUnsafeAtom(v[0])
		if err != nil {
			return nil, fmt.Errorf("%v is not a {module, function, arity} triple: %v", raw, err)
		}
		fun, err := ParseUnsafeAtom(v[1])
		if err != nil {
			return nil, fmt.Errorf("%v is not a {module, function, arity} triple: %v", raw, err)
		}
		arity, err := ParseNonNegativeInteger(v[2])
		if err != nil {
			return nil, fmt.Errorf("%v is not a {module, function, arity} triple: %v", raw, err)
		}
		mfa = MFA{Module: mod.(Atom), Function: fun.(Atom), Arity: int(arity.(int64))}
	case string:
		parsed, err := parseMFAText(v)
		if err != nil {
			return nil, err
		}
		mfa = parsed
	default:
		return nil, fmt.Errorf("%v (%T) is not an mfa", raw, raw)
	}

	if _, ok := LookupFunction(string(mfa.Module), string(mfa.Function), mfa.Arity); !ok {
		return nil, fmt.Errorf("no function registered as %s", mfa)
	}
	return mfa, nil
}

// parseMFAText parses "module.function/arity".
func parseMFAText(text string) (MFA, error) {
	s := strings.TrimSpace(text)

	name, arityStr, ok := strings.Cut(s, "/")
	if !ok {
		return MFA{}, fmt.Errorf("%q is not of the form module.function/arity", text)
	}
	arity, err := strconv.Atoi(arityStr)
	if err != nil || arity < 0 {
		return MFA{}, fmt.Errorf("%q has an invalid arity", text)
	}

	dot := strings.LastIndex(name, ".")
	if dot <= 0 || dot == len(name)-1 {
		return MFA{}, fmt.Errorf("%q is not of the form module.function/arity", text)
	}
	return MFA{
		Module:   Atom(name[:dot]),
		Function: Atom(name[dot+1:]),
		Arity:    arity,
	}, nil
}

// ParseFunction resolves a callable: a native Go func value is accepted
// as-is; anything else is parsed as an mfa and converted into the
// registered callable.
func ParseFunction(raw any) (any, error) {
	if t := reflect.TypeOf(raw); t != nil && t.Kind() == reflect.Func {
		return raw, nil
	}

	v, err := ParseMFA(raw)
	if err != nil {
		return nil, err
	}
	mfa := v.(MFA)
	fn, _ := LookupFunction(string(mfa.Module), string(mfa.Function), mfa.Arity)
	return fn, nil
}

// ParseList parses a sequence with elem applied to every element. The
// first element failure wins: parsing stops there and the error is
// annotated with the textual representation of the whole list. Textual
// input is first parsed as a list literal (see parseListLiteral).
func ParseList(raw any, elem ParseFunc) (any, error) {
	switch v := raw.(type) {
	case string:
		elems, err := parseListLiteral(v)
		if err != nil {
			return nil, err
		}
		return parseListElements(elems, v, elem)
	case []any:
		return parseListElements(v, fmt.Sprintf("%v", v), elem)
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		elems := make([]any, rv.Len())
		for i := range elems {
			elems[i] = rv.Index(i).Interface()
		}
		return parseListElements(elems, fmt.Sprintf("%v", raw), elem)
	}
	return nil, fmt.Errorf("%v (%T) is not a list", raw, raw)
}

// parseListElements applies elem to every element, short-circuiting on the
// first failure.
func parseListElements(elems []any, rendered string, elem ParseFunc) (any, error) {
	out := make([]any, 0, len(elems))
	for i, e := range elems {
		parsed, err := elem(e)
		if err != nil {
			return nil, fmt.Errorf("element %d of list %s: %w", i, rendered, err)
		}
		out = append(out, parsed)
	}
	return out, nil
}

// builtinParsers is the shorthand catalog for simple (one-argument)
// parsers, resolved at schema definition time.
var builtinParsers = map[string]ParseFunc{
	"integer":             ParseInteger,
	"positive_integer":    ParsePositiveInteger,
	"nonnegative_integer": ParseNonNegativeInteger,
	"float":               ParseFloat,
	"positive_float":      ParsePositiveFloat,
	"nonnegative_float":   ParseNonNegativeFloat,
	"string":              ParseString,
	"boolean":             ParseBoolean,
	"atom":                ParseAtom,
	"unsafe_atom":         ParseUnsafeAtom,
	"term":                ParseTerm,
	"timeout":             ParseTimeout,
	"mfa":                 ParseMFA,
	"function":            ParseFunction,
}

// builtinCollectionParsers is the shorthand catalog for collection
// (two-argument) parsers.
var builtinCollectionParsers = map[string]CollectionParseFunc{
	"list": ParseList,
}
