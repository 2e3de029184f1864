// File: specify/record.go
package specify

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Record is the immutable typed output of a successful Load: one parsed
// value per field. A Record produced in explain mode carries the raw
// per-field candidate lists instead.
type Record struct {
	schema     string
	values     map[string]any
	candidates map[string][]any
	explained  bool
}

// Schema returns the name of the schema this record was resolved from.
func (r *Record) Schema() string { return r.schema }

// Explained reports whether the record was produced in explain mode.
func (r *Record) Explained() bool { return r.explained }

// Get returns the parsed value for a field. The second return value is
// false for unknown fields and for records produced in explain mode.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Candidates returns the raw precedence-ordered candidate list for a
// field of an explain-mode record (lowest precedence first).
func (r *Record) Candidates(name string) ([]any, bool) {
	c, ok := r.candidates[name]
	if !ok {
		return nil, false
	}
	out := make([]any, len(c))
	copy(out, c)
	return out, true
}

// AllCandidates returns a copy of the full accumulator of an explain-mode
// record.
func (r *Record) AllCandidates() map[string][]any {
	out := make(map[string][]any, len(r.candidates))
	for name, c := range r.candidates {
		cc := make([]any, len(c))
		copy(cc, c)
		out[name] = cc
	}
	return out
}

// String retrieves a field as a string, converting common types.
func (r *Record) String(name string) (string, error) {
	val, found := r.Get(name)
	if !found {
		return "", fmt.Errorf("field not resolved: %s", name)
	}
	if val == nil {
		return "", nil
	}

	v, err := ParseString(val)
	if err != nil {
		return "", fmt.Errorf("cannot convert field %s: %w", name, err)
	}
	return v.(string), nil
}

// Int64 retrieves a field as an int64, converting numeric types and
// parsable strings.
func (r *Record) Int64(name string) (int64, error) {
	val, found := r.Get(name)
	if !found {
		return 0, fmt.Errorf("field not resolved: %s", name)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > uint64(1)<<63-1 {
			return 0, fmt.Errorf("cannot convert %d to int64 for field %s: overflow", u, name)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return int64(v.Float()), nil
	case reflect.String:
		i, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to int64 for field %s: %w", v.String(), name, err)
		}
		return i, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to int64 for field %s", val, name)
}

// Float64 retrieves a field as a float64.
func (r *Record) Float64(name string) (float64, error) {
	val, found := r.Get(name)
	if !found {
		return 0, fmt.Errorf("field not resolved: %s", name)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to float64 for field %s: %w", v.String(), name, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to float64 for field %s", val, name)
}

// Bool retrieves a field as a bool.
func (r *Record) Bool(name string) (bool, error) {
	val, found := r.Get(name)
	if !found {
		return false, fmt.Errorf("field not resolved: %s", name)
	}

	v, err := ParseBoolean(val)
	if err != nil {
		return false, fmt.Errorf("cannot convert field %s: %w", name, err)
	}
	return v.(bool), nil
}

// Duration retrieves a field as a time.Duration. Integer values are
// interpreted as milliseconds, matching the timeout parser's convention;
// strings use time.ParseDuration.
func (r *Record) Duration(name string) (time.Duration, error) {
	val, found := r.Get(name)
	if !found {
		return 0, fmt.Errorf("field not resolved: %s", name)
	}

	switch v := val.(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to duration for field %s: %w", v, name, err)
		}
		return d, nil
	}

	if i, err := r.Int64(name); err == nil {
		return time.Duration(i) * time.Millisecond, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to duration for field %s", val, name)
}

// Scan decodes the record into the target struct or map pointer, using
// the "config" struct tag. Explain-mode records cannot be scanned.
func (r *Record) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}
	if r.explained {
		return fmt.Errorf("cannot scan an explain-mode record")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			atomToStringHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(r.values); err != nil {
		return fmt.Errorf("failed to scan record %q into %T: %w", r.schema, target, err)
	}
	return nil
}

// atomToStringHookFunc lets Atom-valued fields decode into plain string
// struct fields.
func atomToStringHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f != reflect.TypeOf(Atom("")) || t.Kind() != reflect.String {
			return data, nil
		}
		return string(data.(Atom)), nil
	}
}
