// File: specify/atom.go
package specify

import "sync"

// Atom is an interned symbol. Atoms are the configuration-side analogue of
// enum variants: a small, closed set of names registered once at startup.
//
// The atom parser only accepts text that names an already-interned atom,
// which keeps untrusted configuration from growing the table without bound.
// The unsafe_atom parser interns new names on demand and must only be used
// on trusted input.
type Atom string

// Infinity is the sentinel accepted by the timeout parser.
const Infinity = Atom("infinity")

var atomTable = struct {
	mu  sync.RWMutex
	set map[string]struct{}
}{
	set: map[string]struct{}{
		"infinity": {},
		"true":     {},
		"false":    {},
		"nil":      {},
	},
}

// RegisterAtoms interns the given names. Typically called from init or
// main for every enum variant the application expects in configuration.
func RegisterAtoms(names ...string) {
	atomTable.mu.Lock()
	defer atomTable.mu.Unlock()

	for _, name := range names {
		atomTable.set[name] = struct{}{}
	}
}

// AtomExists reports whether name has been interned.
func AtomExists(name string) bool {
	atomTable.mu.RLock()
	defer atomTable.mu.RUnlock()

	_, ok := atomTable.set[name]
	return ok
}

// LookupAtom returns the interned atom for name, or false if it was never
// registered. It never interns.
func LookupAtom(name string) (Atom, bool) {
	if !AtomExists(name) {
		return "", false
	}
	return Atom(name), true
}

// Intern registers name as an atom if needed and returns it. Only use this
// on trusted input; interned atoms are never released.
func Intern(name string) Atom {
	atomTable.mu.Lock()
	defer atomTable.mu.Unlock()

	atomTable.set[name] = struct{}{}
	return Atom(name)
}
