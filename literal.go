// File: specify/literal.go
package specify

import (
	"fmt"
	"strconv"
	"strings"
)

// parseListLiteral parses the textual form of a list, e.g.
//
//	[1, 2.5, "three", four, true]
//
// Supported element kinds are integers, floats, double-quoted strings,
// booleans and bare words (which become Atom values, without interning).
// Nested lists, tuples, maps or any other syntax are rejected rather than
// guessed at.
func parseListLiteral(text string) ([]any, error) {
	s := strings.TrimSpace(text)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("text %q is not a list literal", text)
	}

	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return []any{}, nil
	}

	parts, err := splitListBody(body)
	if err != nil {
		return nil, fmt.Errorf("text %q is not a valid list literal: %w", text, err)
	}

	elems := make([]any, 0, len(parts))
	for _, part := range parts {
		elem, err := parseListElement(part)
		if err != nil {
			return nil, fmt.Errorf("text %q is not a valid list literal: %w", text, err)
		}
		elems = append(elems, elem)
	}
	return elems, nil
}

// splitListBody splits on top-level commas, honoring double-quoted strings
// with backslash escapes.
func splitListBody(body string) ([]string, error) {
	var parts []string
	var cur strings.Builder
	inString := false
	escaped := false

	for _, r := range body {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case inString && r == '\\':
			cur.WriteRune(r)
			escaped = true
		case r == '"':
			cur.WriteRune(r)
			inString = !inString
		case !inString && r == ',':
			parts = append(parts, cur.String())
			cur.Reset()
		case !inString && (r == '[' || r == ']' || r == '{' || r == '}'):
			return nil, fmt.Errorf("nested literal %q is not supported", string(r))
		default:
			cur.WriteRune(r)
		}
	}
	if inString {
		return nil, fmt.Errorf("unterminated string")
	}
	parts = append(parts, cur.String())
	return parts, nil
}

// parseListElement interprets one comma-separated element.
func parseListElement(part string) (any, error) {
	s := strings.TrimSpace(part)
	if s == "" {
		return nil, fmt.Errorf("empty list element")
	}

	if strings.HasPrefix(s, `"`) {
		str, err := strconv.Unquote(s)
		if err != nil {
			return nil, fmt.Errorf("invalid string element %s", s)
		}
		return str, nil
	}

	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}

	if isBareWord(s) {
		return Atom(s), nil
	}
	return nil, fmt.Errorf("unsupported list element %q", s)
}

// isBareWord reports whether s looks like an unquoted symbol name.
func isBareWord(s string) bool {
	for i, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !(isLetter || r == '_') {
			return false
		}
		if !(isLetter || isDigit || r == '_' || r == '.') {
			return false
		}
	}
	return true
}
