package ast

import "github.com/cwbudde/corec/internal/ident"

// ScopeKind distinguishes the lexical-scope kinds. ScopeNoScope
// bounds attribute lifetime (`@a { ... }`) without introducing a name
// lookup level: Resolve skips straight past it to Parent.
type ScopeKind uint8

const (
	ScopeGlobal ScopeKind = iota
	ScopeMember
	ScopeLocal
	ScopeNoScope
)

// ScopeID is a handle into Store's scope arena. The zero value denotes "no
// scope".
type ScopeID uint32

const NoScope ScopeID = 0

// Scope is one node of the scope tree: a kind, a parent link, a debug name
// for diagnostics, and the identifier-to-entity map declarations register
// into.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	DebugName string
	idents    map[ident.ID]Index
}

// NewScope allocates a scope and returns its handle.
func (s *Store) NewScope(kind ScopeKind, parent ScopeID, debugName string) ScopeID {
	sc := Scope{Kind: kind, Parent: parent, DebugName: debugName, idents: make(map[ident.ID]Index)}
	s.scopes = append(s.scopes, sc)
	return ScopeID(len(s.scopes)) // 1-based so the zero value means NoScope
}

func (s *Store) scope(id ScopeID) *Scope {
	return &s.scopes[id-1]
}

// Define registers name -> entity in scope id. It returns false without
// mutating anything if name is already defined directly in this scope
// (a duplicate declaration); shadowing an outer scope's
// binding is always allowed.
func (s *Store) Define(id ScopeID, name ident.ID, entity Index) bool {
	sc := s.scope(id)
	if _, exists := sc.idents[name]; exists {
		return false
	}
	sc.idents[name] = entity
	return true
}

// LookupLocal looks up name in scope id only, not its ancestors.
func (s *Store) LookupLocal(id ScopeID, name ident.ID) (Index, bool) {
	e, ok := s.scope(id).idents[name]
	return e, ok
}

// Lookup walks the scope chain from id upward, returning the first match.
func (s *Store) Lookup(id ScopeID, name ident.ID) (Index, bool) {
	for id != NoScope {
		sc := s.scope(id)
		if e, ok := sc.idents[name]; ok {
			return e, true
		}
		id = sc.Parent
	}
	return Undefined, false
}

// ScopeParent returns a scope's parent (NoScope for the root).
func (s *Store) ScopeParent(id ScopeID) ScopeID { return s.scope(id).Parent }

// ScopeKindOf returns a scope's kind.
func (s *Store) ScopeKindOf(id ScopeID) ScopeKind { return s.scope(id).Kind }
