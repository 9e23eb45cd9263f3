package compiler

import "github.com/cwbudde/corec/internal/ast"

// EvalStaticExpr is the `eval_static_expr(index) -> constant` oracle: a
// black-box collaborator whose full implementation is explicitly out of
// scope (arbitrary compile-time metaprogramming is not part of this
// pipeline). What is implemented here is the narrow, concretely useful
// subset every caller in this compiler actually needs folded: integer/float/
// bool/string literals and `+`/`-`/`*`/unary `-` over integer literals,
// covering array-length expressions and enum constant values. Anything
// outside that subset returns ok=false rather than guessing, the same
// "unknown" outcome a real oracle's caller must already handle.
func EvalStaticExpr(s *ast.Store, e ast.Index) (StaticConstant, bool) {
	if !e.Valid() {
		return StaticConstant{}, false
	}
	switch e.Kind() {
	case ast.KindIntLiteral:
		return StaticConstant{Kind: StaticInt, Int: s.IntLiteralValue(e)}, true
	case ast.KindFloatLiteral:
		return StaticConstant{Kind: StaticFloat, Float: s.FloatLiteralValue(e)}, true
	case ast.KindBoolLiteral:
		return StaticConstant{Kind: StaticBool, Bool: s.BoolLiteralValue(e)}, true
	case ast.KindStringLiteral:
		return StaticConstant{Kind: StaticString, Str: s.StringLiteralValue(e)}, true
	case ast.KindUnaryExpr:
		if s.UnaryOperator(e) == ast.OpNeg {
			if v, ok := EvalStaticExpr(s, s.UnaryOperand(e)); ok && v.Kind == StaticInt {
				return StaticConstant{Kind: StaticInt, Int: -v.Int}, true
			}
		}
		return StaticConstant{}, false
	case ast.KindBinaryExpr:
		lhs, ok1 := EvalStaticExpr(s, s.BinaryLHS(e))
		rhs, ok2 := EvalStaticExpr(s, s.BinaryRHS(e))
		if !ok1 || !ok2 || lhs.Kind != StaticInt || rhs.Kind != StaticInt {
			return StaticConstant{}, false
		}
		switch s.BinaryOperator(e) {
		case ast.OpAdd:
			return StaticConstant{Kind: StaticInt, Int: lhs.Int + rhs.Int}, true
		case ast.OpSub:
			return StaticConstant{Kind: StaticInt, Int: lhs.Int - rhs.Int}, true
		case ast.OpMul:
			return StaticConstant{Kind: StaticInt, Int: lhs.Int * rhs.Int}, true
		}
	}
	return StaticConstant{}, false
}

// StaticConstant is the value eval_static_expr's stub produces: whichever
// one of Int/Float/Bool/Str is meaningful is selected by Kind.
type StaticConstant struct {
	Kind  StaticKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

type StaticKind uint8

const (
	StaticInt StaticKind = iota
	StaticFloat
	StaticBool
	StaticString
)
