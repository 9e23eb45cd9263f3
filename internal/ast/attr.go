package ast

import "github.com/cwbudde/corec/internal/ident"

// Effect is a bitmask over the recognized attribute effects. Unknown
// attribute identifiers still get an Attribute node (for diagnostics) but
// contribute no bit here.
type Effect uint32

const (
	EffectExternModule Effect = 1 << iota
	EffectExternSyscall
	EffectInline
)

// Attribute is one `@name(args...)` occurrence. Args is a small array of
// expression handles (e.g. the module-name string literal and library-name
// string literal of `@extern(module, "libname")`, or the syscall number of
// `@extern(syscall, 60)`).
type Attribute struct {
	Name   ident.ID
	Args   SmallArray
	Effect Effect
}

// AttributeInfo is the side-structure a declaration's Header.AttrInfo points
// to once FlagHasAttributes is set. It holds the declaration's effective
// attribute set (after immediate/scope/no_scope composition) plus
// the precomputed effect mask used by later passes without re-scanning
// Attrs.
type AttributeInfo struct {
	Attrs      []Attribute
	EffectMask Effect
}

// SetAttrInfo attaches ai to decl's header and sets FlagHasAttributes.
func (s *Store) SetAttrInfo(decl Index, ai *AttributeInfo) {
	n := s.Node(decl)
	n.AttrInfo = ai
	n.SetFlag(FlagHasAttributes)
}

// ExternModule returns the library name id attached via
// `@extern(module, "libname")`, if present.
func (ai *AttributeInfo) ExternModule(s *Store) (ident.ID, bool) {
	if ai == nil || ai.EffectMask&EffectExternModule == 0 {
		return 0, false
	}
	for _, a := range ai.Attrs {
		if a.Effect == EffectExternModule {
			args := s.Items(a.Args)
			if len(args) == 2 {
				return s.Node(args[1]).Name, true
			}
		}
	}
	return 0, false
}

// ExternSyscall returns the numeric syscall id attached via
// `@extern(syscall, <int>)`, if present.
func (ai *AttributeInfo) ExternSyscall(s *Store) (int64, bool) {
	if ai == nil || ai.EffectMask&EffectExternSyscall == 0 {
		return 0, false
	}
	for _, a := range ai.Attrs {
		if a.Effect == EffectExternSyscall {
			args := s.Items(a.Args)
			if len(args) == 2 {
				return s.Node(args[1]).IntVal, true
			}
		}
	}
	return 0, false
}
