// File: specify/funcreg.go
package specify

import (
	"fmt"
	"reflect"
	"sync"
)

// MFA names a registered callable: a module-like namespace, a function
// name, and the function's arity. It is the parsed output of the mfa
// parser and the textual form "module.function/arity".
type MFA struct {
	Module   Atom
	Function Atom
	Arity    int
}

// String renders the canonical textual form, e.g. "strings.repeat/2".
func (m MFA) String() string {
	return fmt.Sprintf("%s.%s/%d", m.Module, m.Function, m.Arity)
}

// funcKey identifies one registered callable.
type funcKey struct {
	module   string
	function string
	arity    int
}

var funcTable = struct {
	mu sync.RWMutex
	m  map[funcKey]any
}{
	m: make(map[funcKey]any),
}

// RegisterFunction makes fn resolvable by the mfa and function parsers
// under the given module and function names. The arity is taken from fn's
// signature. The module and function names are interned as atoms so that
// textual MFA forms can be parsed safely.
//
// Registration replaces any previous callable with the same name and
// arity. fn must be a function value.
func RegisterFunction(module, function string, fn any) error {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return fmt.Errorf("RegisterFunction requires a function, got %T", fn)
	}

	Intern(module)
	Intern(function)

	funcTable.mu.Lock()
	defer funcTable.mu.Unlock()

	funcTable.m[funcKey{module, function, t.NumIn()}] = fn
	return nil
}

// LookupFunction returns the callable registered under module.function/arity.
func LookupFunction(module, function string, arity int) (any, bool) {
	funcTable.mu.RLock()
	defer funcTable.mu.RUnlock()

	fn, ok := funcTable.m[funcKey{module, function, arity}]
	return fn, ok
}

// unregisterFunction exists for tests; the table is otherwise append-only.
func unregisterFunction(module, function string, arity int) {
	funcTable.mu.Lock()
	defer funcTable.mu.Unlock()

	delete(funcTable.m, funcKey{module, function, arity})
}
