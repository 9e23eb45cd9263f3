package ast

import "github.com/cwbudde/corec/internal/ident"

// BinaryOp enumerates binary operators. Values are chosen for readability,
// not density (the Pratt precedence table in the parser maps tokens to
// these, not the reverse).
type BinaryOp uint16

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShl
	OpShr
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpBitAnd
	OpBitXor
	OpBitOr
	OpLogAnd
	OpLogOr
)

// UnaryOp enumerates prefix unary operators.
type UnaryOp uint16

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
	OpPos
)

// NewIdentUse allocates a bare identifier reference. It starts out
// unresolved; C7 either rewrites it in place (alias substitution, implicit
// `this.`) or records the resolved entity via SetResolvedTo.
func (s *Store) NewIdentUse(pos Position, name ident.ID) Index {
	i := s.alloc(KindIdentUse, pos)
	s.Node(i).Name = name
	return i
}

// SetResolvedTo records that i (an IdentUse or NameUseType) names target:
// any other node that already holds i as a child reaches target through
// Store.Resolved(i) rather than needing to be rewritten itself. This is how
// C7 realizes alias substitution, basic-type resolution and ordinary entity
// lookup uniformly, without mutating i's own Kind (which Index.Kind()
// reports from i's handle and can never change).
func (s *Store) SetResolvedTo(i, target Index) {
	s.Node(i).Resolved = target
}

// Resolved follows i's name resolution to the entity or type it names,
// returning i itself if i was never a name use or was never resolved (the
// synthetic `this` IdentUse, or a node read before NameResolveDone).
func (s *Store) Resolved(i Index) Index {
	if t := s.Node(i).Resolved; t.Valid() {
		return t
	}
	return i
}

func (s *Store) NewIntLiteral(pos Position, v int64) Index {
	i := s.alloc(KindIntLiteral, pos)
	s.Node(i).IntVal = v
	return i
}

func (s *Store) NewFloatLiteral(pos Position, v float64) Index {
	i := s.alloc(KindFloatLiteral, pos)
	s.Node(i).FloatVal = v
	return i
}

func (s *Store) NewBoolLiteral(pos Position, v bool) Index {
	i := s.alloc(KindBoolLiteral, pos)
	if v {
		s.Node(i).IntVal = 1
	}
	return i
}

func (s *Store) NewStringLiteral(pos Position, v string) Index {
	i := s.alloc(KindStringLiteral, pos)
	s.Node(i).StrVal = v
	return i
}

func (s *Store) NewNullLiteral(pos Position) Index { return s.alloc(KindNullLiteral, pos) }

func (s *Store) IntLiteralValue(i Index) int64      { return s.Node(i).IntVal }
func (s *Store) FloatLiteralValue(i Index) float64  { return s.Node(i).FloatVal }
func (s *Store) BoolLiteralValue(i Index) bool      { return s.Node(i).IntVal != 0 }
func (s *Store) StringLiteralValue(i Index) string  { return s.Node(i).StrVal }

// NewBinaryExpr allocates `lhs op rhs`.
func (s *Store) NewBinaryExpr(pos Position, op BinaryOp, lhs, rhs Index) Index {
	i := s.alloc(KindBinaryExpr, pos)
	n := s.Node(i)
	n.Sub, n.A, n.B = uint16(op), lhs, rhs
	return i
}

func (s *Store) BinaryOperator(i Index) BinaryOp { return BinaryOp(s.Node(i).Sub) }
func (s *Store) BinaryLHS(i Index) Index         { return s.Node(i).A }
func (s *Store) BinaryRHS(i Index) Index         { return s.Node(i).B }

// NewUnaryExpr allocates `op operand`.
func (s *Store) NewUnaryExpr(pos Position, op UnaryOp, operand Index) Index {
	i := s.alloc(KindUnaryExpr, pos)
	n := s.Node(i)
	n.Sub, n.A = uint16(op), operand
	return i
}

func (s *Store) UnaryOperator(i Index) UnaryOp { return UnaryOp(s.Node(i).Sub) }
func (s *Store) UnaryOperand(i Index) Index    { return s.Node(i).A }

// NewCallExpr allocates `callee(args...)`. A paren-free call lowering (C8)
// produces one of these from a bare name-use; FlagIsMember is not used
// here (member-call lowering rewrites Callee to a MemberExpr first).
func (s *Store) NewCallExpr(pos Position, callee Index, args []Index) Index {
	i := s.alloc(KindCallExpr, pos)
	n := s.Node(i)
	n.A = callee
	n.Args = s.NewItems(args...)
	return i
}

func (s *Store) CallCallee(i Index) Index  { return s.Node(i).A }
func (s *Store) CallArgs(i Index) []Index  { return s.Items(s.Node(i).Args) }

// NewIndexExpr allocates `base[index]`.
func (s *Store) NewIndexExpr(pos Position, base, index Index) Index {
	i := s.alloc(KindIndexExpr, pos)
	n := s.Node(i)
	n.A, n.B = base, index
	n.SetFlag(FlagIsLvalue)
	return i
}

func (s *Store) IndexBase(i Index) Index  { return s.Node(i).A }
func (s *Store) IndexIndex(i Index) Index { return s.Node(i).B }

// NewMemberExpr allocates `base.member`. needsDeref is set by C7's implicit
// `this.` rewrite and by C8 lowering pointer member access.
func (s *Store) NewMemberExpr(pos Position, base Index, member ident.ID, needsDeref bool) Index {
	i := s.alloc(KindMemberExpr, pos)
	n := s.Node(i)
	n.A, n.Name = base, member
	n.SetFlag(FlagIsLvalue)
	if needsDeref {
		n.SetFlag(FlagNeedsDeref)
	}
	return i
}

func (s *Store) MemberBase(i Index) Index       { return s.Node(i).A }
func (s *Store) MemberName(i Index) ident.ID    { return s.Node(i).Name }
func (s *Store) MemberNeedsDeref(i Index) bool  { return s.Node(i).HasFlag(FlagNeedsDeref) }

// NewCastExpr allocates `cast(T) e`, as resolved by C8 into an explicit
// conversion.
func (s *Store) NewCastExpr(pos Position, typeExpr, operand Index) Index {
	i := s.alloc(KindCastExpr, pos)
	n := s.Node(i)
	n.A, n.B = typeExpr, operand
	return i
}

func (s *Store) CastTypeExpr(i Index) Index { return s.Node(i).A }
func (s *Store) CastOperand(i Index) Index  { return s.Node(i).B }

// NewAddrOfExpr allocates `&operand`.
func (s *Store) NewAddrOfExpr(pos Position, operand Index) Index {
	i := s.alloc(KindAddrOfExpr, pos)
	s.Node(i).A = operand
	return i
}

func (s *Store) AddrOfOperand(i Index) Index { return s.Node(i).A }

// NewDerefExpr allocates `*operand`.
func (s *Store) NewDerefExpr(pos Position, operand Index) Index {
	i := s.alloc(KindDerefExpr, pos)
	n := s.Node(i)
	n.A = operand
	n.SetFlag(FlagIsLvalue)
	return i
}

func (s *Store) DerefOperand(i Index) Index { return s.Node(i).A }

// NewAssignExpr allocates an assignment used in expression position
// (`x = y` as a sub-expression, as opposed to AssignStmt).
func (s *Store) NewAssignExpr(pos Position, lhs, rhs Index) Index {
	i := s.alloc(KindAssignExpr, pos)
	n := s.Node(i)
	n.A, n.B = lhs, rhs
	return i
}

func (s *Store) AssignExprLHS(i Index) Index { return s.Node(i).A }
func (s *Store) AssignExprRHS(i Index) Index { return s.Node(i).B }

// NewArrayLiteral allocates `[e0, e1, ...]`.
func (s *Store) NewArrayLiteral(pos Position, elems []Index) Index {
	i := s.alloc(KindArrayLiteral, pos)
	s.Node(i).Args = s.NewItems(elems...)
	return i
}

func (s *Store) ArrayLiteralElems(i Index) []Index { return s.Items(s.Node(i).Args) }

// NewAliasArrayLiteral allocates a compile-time list of alias items, the
// only shape `#foreach`'s iterable operand may resolve to.
func (s *Store) NewAliasArrayLiteral(pos Position, items []Index) Index {
	i := s.alloc(KindAliasArrayLiteral, pos)
	s.Node(i).Args = s.NewItems(items...)
	return i
}

func (s *Store) AliasArrayItems(i Index) []Index { return s.Items(s.Node(i).Args) }

// NewErrorExpr allocates the sentinel error node name/type resolution
// attaches in place of a use that failed to resolve, so downstream passes
// do not cascade into a string of follow-on errors.
func (s *Store) NewErrorExpr(pos Position) Index { return s.alloc(KindErrorExpr, pos) }
