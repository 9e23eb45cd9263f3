package ast

import "github.com/cwbudde/corec/internal/ident"

// CloneExprSubst deep-copies an expression subtree, replacing any IdentUse
// leaf whose name is a key of subst with the given replacement handle
// instead of copying it. This is the expression-level half of the rule that
// clones (template instantiation, #foreach body cloning) are a bulk
// handle-arena operation with a relocation table, scoped to the operators a
// #foreach body actually needs to carry a per-iteration value through
// (identifier references, and the arithmetic built on top of them).
// Literals and every other leaf kind are shared rather than copied, since
// they carry no identity a clone needs to diverge from the original.
func (s *Store) CloneExprSubst(i Index, subst map[ident.ID]Index) Index {
	if !i.Valid() {
		return i
	}
	switch i.Kind() {
	case KindIdentUse:
		if repl, ok := subst[s.Node(i).Name]; ok {
			return repl
		}
		return i
	case KindBinaryExpr:
		lhs := s.CloneExprSubst(s.BinaryLHS(i), subst)
		rhs := s.CloneExprSubst(s.BinaryRHS(i), subst)
		return s.NewBinaryExpr(s.Node(i).Pos, s.BinaryOperator(i), lhs, rhs)
	case KindUnaryExpr:
		operand := s.CloneExprSubst(s.UnaryOperand(i), subst)
		return s.NewUnaryExpr(s.Node(i).Pos, s.UnaryOperator(i), operand)
	default:
		return i
	}
}

// CloneEnumConstDecl instantiates one #foreach iteration's copy of an
// `enum T name = expr;` body item: a fresh EnumConstDecl node under newName,
// sharing the original's type expression (types carry no per-iteration
// identity) and substituting subst into the value expression.
func (s *Store) CloneEnumConstDecl(i Index, newName ident.ID, subst map[ident.ID]Index) Index {
	value := s.CloneExprSubst(s.EnumConstValue(i), subst)
	return s.NewEnumConstDecl(s.Node(i).Pos, s.EnumConstSyntax(i), newName, s.EnumConstTypeExpr(i), value)
}

// CloneVarDecl instantiates one #foreach iteration's copy of a
// `[T] name = init;` body item, the same way CloneEnumConstDecl does for an
// enum constant.
func (s *Store) CloneVarDecl(i Index, newName ident.ID, subst map[ident.ID]Index) Index {
	init := s.CloneExprSubst(s.VarInit(i), subst)
	return s.NewVarDecl(s.Node(i).Pos, newName, s.VarTypeExpr(i), init)
}

// CloneForeachItem instantiates one #foreach iteration's copy of a single
// body item, dispatching to the declaration kinds a #foreach body can
// actually contain (static expansion only ever produces manifest constants
// and locals - never a nested scope-opening declaration). newName renames
// the clone to keep it from colliding with its sibling iterations' copies in
// the enclosing scope; kinds with no name of their own are cloned as-is.
func (s *Store) CloneForeachItem(i Index, newName ident.ID, subst map[ident.ID]Index) Index {
	switch i.Kind() {
	case KindEnumConstDecl:
		return s.CloneEnumConstDecl(i, newName, subst)
	case KindVarDecl:
		return s.CloneVarDecl(i, newName, subst)
	default:
		return s.CloneExprSubst(i, subst)
	}
}
