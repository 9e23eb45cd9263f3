package ast

import "github.com/cwbudde/corec/internal/ident"

// BasicKind enumerates the basic type variants.
type BasicKind uint16

const (
	BasicNoreturn BasicKind = iota
	BasicVoid
	BasicBool
	BasicNull
	BasicI8
	BasicI16
	BasicI32
	BasicI64
	BasicU8
	BasicU16
	BasicU32
	BasicU64
	BasicF32
	BasicF64
	BasicAliasMeta // the type of an alias declaration used as a value
	BasicTypeMeta  // the type of a type used as a value (`typeof`-like)
)

func (k BasicKind) IsInteger() bool {
	return k >= BasicI8 && k <= BasicU64
}

func (k BasicKind) IsSigned() bool {
	return k >= BasicI8 && k <= BasicI64
}

func (k BasicKind) IsFloat() bool { return k == BasicF32 || k == BasicF64 }

// IsVoidOrNoreturn keeps an explicit decision visible: some source languages
// conflate "void" and "noreturn" under a single predicate; we keep that
// observable behavior under an explicitly named predicate rather than
// silently reusing IsVoid for both (see DESIGN.md).
func (k BasicKind) IsVoidOrNoreturn() bool { return k == BasicVoid || k == BasicNoreturn }

// basicTypeCache memoizes the (at most one) node per BasicKind so repeated
// uses of e.g. `i32` share a single handle, keeping "identical type ASTs
// produce identical IR types" trivially true at the AST layer already.
type basicTypeCache = [BasicTypeMeta + 1]Index

// Basic returns the shared node for kind, allocating it on first use.
func (s *Store) Basic(kind BasicKind) Index {
	if s.basics == nil {
		s.basics = &basicTypeCache{}
	}
	if (*s.basics)[kind].Valid() {
		return (*s.basics)[kind]
	}
	i := s.alloc(KindBasicType, Position{})
	n := s.Node(i)
	n.Sub = uint16(kind)
	n.SetFlag(FlagIsType)
	n.State = TypeCheckDone
	n.Type = i
	n.SetPropState(PropType, Calculated)
	(*s.basics)[kind] = i
	return i
}

func (s *Store) BasicTypeKind(i Index) BasicKind { return BasicKind(s.Node(i).Sub) }

// NewPointerType allocates `T*`.
func (s *Store) NewPointerType(pos Position, elem Index) Index {
	i := s.alloc(KindPointerType, pos)
	n := s.Node(i)
	n.A = elem
	n.SetFlag(FlagIsType)
	return i
}

func (s *Store) PointerElem(i Index) Index { return s.Node(i).A }

// NewSliceType allocates `T[]`.
func (s *Store) NewSliceType(pos Position, elem Index) Index {
	i := s.alloc(KindSliceType, pos)
	n := s.Node(i)
	n.A = elem
	n.SetFlag(FlagIsType)
	return i
}

func (s *Store) SliceElem(i Index) Index { return s.Node(i).A }

// NewArrayType allocates `T[N]`, N an (unevaluated, until required)
// compile-time expression.
func (s *Store) NewArrayType(pos Position, elem, size Index) Index {
	i := s.alloc(KindArrayType, pos)
	n := s.Node(i)
	n.A, n.B = elem, size
	n.SetFlag(FlagIsType)
	return i
}

func (s *Store) ArrayElem(i Index) Index { return s.Node(i).A }
func (s *Store) ArraySize(i Index) Index { return s.Node(i).B }

// NewFuncType allocates a function-signature type: `(params) -> ret`.
func (s *Store) NewFuncType(pos Position, params []Index, ret Index) Index {
	i := s.alloc(KindFuncType, pos)
	n := s.Node(i)
	n.Args = s.NewItems(params...)
	n.A = ret
	n.SetFlag(FlagIsType)
	return i
}

func (s *Store) FuncTypeParams(i Index) []Index { return s.Items(s.Node(i).Args) }
func (s *Store) FuncTypeRet(i Index) Index      { return s.Node(i).A }

// NewNameUseType allocates the still-unresolved `name_use` wrapper a type
// position holds until C7 replaces it in place with the entity it names.
func (s *Store) NewNameUseType(pos Position, name ident.ID) Index {
	i := s.alloc(KindNameUseType, pos)
	n := s.Node(i)
	n.Name = name
	n.SetFlag(FlagIsType)
	return i
}
