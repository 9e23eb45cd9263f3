// Package ident implements the bijection between source identifier strings
// and the small 32-bit ids the rest of the compiler uses for equality and
// hashing. It pre-populates a contiguous prefix with well-known identifiers
// so callers can recognize them by id comparison instead of string
// comparison.
package ident

// ID is an interned identifier. The zero value is reserved and never
// returned by GetOrIntern.
type ID uint32

const invalid ID = 0

// Well-known identifiers. Their ids are stable for the lifetime of a Table
// because they are registered in Table construction order, first.
const (
	This ID = iota + 1
	Extern
	Module
	Syscall
	Length
	Ptr
	Result
	// Built-in #version tokens.
	VersionWindows
	VersionLinux
	VersionMacOS
	VersionFreeBSD
	VersionWasm
	// First id available to $-prefixed built-in compiler functions
	// ($sizeof, $alignof, ...). Callers that need to recognize a specific
	// built-in reserve an id in this block at Table-construction time via
	// ReserveBuiltinFunc.
	builtinFuncBase
)

var wellKnown = []string{
	This:           "this",
	Extern:         "extern",
	Module:         "module",
	Syscall:        "syscall",
	Length:         "length",
	Ptr:            "ptr",
	Result:         "result",
	VersionWindows: "windows",
	VersionLinux:   "linux",
	VersionMacOS:   "macos",
	VersionFreeBSD: "freebsd",
	VersionWasm:    "wasm",
}

// Table is the bijection between strings and IDs. The zero Table is not
// usable; construct with New.
type Table struct {
	strings []string       // id -> string, index 0 unused
	byText  map[string]ID  // string -> id
	next    ID
}

// New returns a Table pre-populated with the well-known identifiers above.
func New() *Table {
	t := &Table{
		strings: make([]string, builtinFuncBase),
		byText:  make(map[string]ID, 64),
		next:    builtinFuncBase,
	}
	for id, s := range wellKnown {
		if s == "" {
			continue
		}
		t.strings[id] = s
		t.byText[s] = ID(id)
	}
	return t
}

// GetOrIntern returns the id for s, interning it (copying s into the string
// arena) on first occurrence.
func (t *Table) GetOrIntern(s string) ID {
	if id, ok := t.byText[s]; ok {
		return id
	}
	id := t.next
	t.next++
	// Copy so callers may reuse/mutate the byte slice backing s's substring.
	owned := string(append([]byte(nil), s...))
	t.strings = append(t.strings, owned)
	t.byText[owned] = id
	return id
}

// Lookup returns the id for s without interning; ok is false if s has never
// been interned.
func (t *Table) Lookup(s string) (ID, bool) {
	id, ok := t.byText[s]
	return id, ok
}

// Text returns the string for id. It panics on the reserved zero id.
func (t *Table) Text(id ID) string {
	if id == invalid {
		panic("ident: Text called with the reserved zero id")
	}
	return t.strings[id]
}

// IsBuiltinVersion reports whether id names one of the built-in #version
// identifiers (windows, linux, macos, ...).
func IsBuiltinVersion(id ID) bool {
	return id >= VersionWindows && id <= VersionWasm
}

// Valid reports whether id is a real (non-zero) identifier.
func (id ID) Valid() bool {
	return id != invalid
}
