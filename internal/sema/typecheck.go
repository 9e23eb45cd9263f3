package sema

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/driver"
	"github.com/cwbudde/corec/internal/ident"
)

// typeCheck is the PropType computer (C8): bottom-up type synthesis. Every
// node kind — not just expressions — sets its own Type field, including
// declarations and type-constructor nodes (whose Type is reflexive: the
// type of a type is itself). That uniformity lets the rest of the compiler
// call d.Require(x, ast.PropType) and read Store.Node(x).Type regardless of
// what x collapsed into during name resolution.
func (a *Analyzer) typeCheck(d *driver.Driver, node ast.Index) error {
	n := a.Store.Node(node)

	// A resolved IdentUse/NameUseType carries no shape of its own: its type
	// is whatever it names. Handling this once, here, means every other
	// case below can assume node is a genuine node of its own Kind.
	if target := n.Resolved; target.Valid() {
		d.Require(target, ast.PropType)
		if node.Kind() == ast.KindIdentUse && target.Kind() == ast.KindFuncDecl &&
			!n.HasFlag(ast.FlagSuppressCallRewrite) {
			n.Type = a.rewriteParenFreeCall(d, node, target)
			return nil
		}
		n.Type = a.Store.Node(target).Type
		return nil
	}

	switch node.Kind() {
	case ast.KindIntLiteral:
		n.Type = a.Store.Basic(ast.BasicI32)
	case ast.KindFloatLiteral:
		n.Type = a.Store.Basic(ast.BasicF64)
	case ast.KindBoolLiteral:
		n.Type = a.Store.Basic(ast.BasicBool)
	case ast.KindStringLiteral:
		n.Type = a.Store.NewPointerType(ast.Position{}, a.Store.Basic(ast.BasicU8))
	case ast.KindNullLiteral:
		n.Type = a.Store.NewPointerType(ast.Position{}, a.Store.Basic(ast.BasicVoid))
	case ast.KindErrorExpr:
		n.Type = a.Store.Basic(ast.BasicVoid)

	case ast.KindBasicType, ast.KindPointerType, ast.KindSliceType, ast.KindArrayType,
		ast.KindFuncType, ast.KindStructDecl, ast.KindUnionDecl, ast.KindEnumTypeDecl:
		n.Type = node // a type expression's type is itself

	case ast.KindModule, ast.KindImport, ast.KindAlias:
		n.Type = a.Store.Basic(ast.BasicVoid)

	case ast.KindIdentUse:
		// only the synthetic `this` ever survives resolution with this kind
		n.Type = a.Store.Basic(ast.BasicVoid)

	case ast.KindVarDecl:
		n.Type = a.typeCheckVarLike(d, node, a.Store.VarTypeExpr(node), a.Store.VarInit(node))

	case ast.KindParamDecl:
		t := a.Store.ParamTypeExpr(node)
		d.Require(t, ast.PropType)
		n.Type = a.Store.Node(t).Type

	case ast.KindFieldDecl:
		t := a.Store.FieldTypeExpr(node)
		d.Require(t, ast.PropType)
		n.Type = a.Store.Node(t).Type

	case ast.KindFuncDecl:
		for _, p := range a.Store.FuncParams(node) {
			d.Require(p, ast.PropType)
		}
		ret := a.Store.FuncRetType(node)
		d.Require(ret, ast.PropType)
		n.Type = a.Store.Node(ret).Type
		if body := a.Store.FuncBody(node); body.Valid() {
			d.Require(body, ast.PropType)
		}

	case ast.KindEnumMember:
		if v := a.Store.EnumMemberValue(node); v.Valid() {
			d.Require(v, ast.PropType)
		}
		n.Type = a.Store.Basic(ast.BasicI32)

	case ast.KindEnumConstDecl:
		switch a.Store.EnumConstSyntax(node) {
		case ast.EnumSyntaxOpaque:
			n.Type = a.Store.Basic(ast.BasicVoid)
		case ast.EnumSyntaxInferred:
			v := a.Store.EnumConstValue(node)
			d.Require(v, ast.PropType)
			n.Type = a.Store.Node(v).Type
		case ast.EnumSyntaxTyped:
			t := a.Store.EnumConstTypeExpr(node)
			d.Require(t, ast.PropType)
			n.Type = a.Store.Node(t).Type
		default:
			n.Type = a.Store.Basic(ast.BasicVoid)
		}

	case ast.KindBlockStmt:
		for _, st := range a.Store.BlockStmts(node) {
			d.Require(st, ast.PropType)
		}
		n.Type = a.Store.Basic(ast.BasicVoid)

	case ast.KindExprStmt:
		d.Require(a.Store.ExprStmtExpr(node), ast.PropType)
		n.Type = a.Store.Basic(ast.BasicVoid)

	case ast.KindIfStmt:
		d.Require(a.Store.IfCond(node), ast.PropType)
		d.Require(a.Store.IfThen(node), ast.PropType)
		if e := a.Store.IfElse(node); e.Valid() {
			d.Require(e, ast.PropType)
		}
		n.Type = a.Store.Basic(ast.BasicVoid)

	case ast.KindWhileStmt:
		d.Require(a.Store.WhileCond(node), ast.PropType)
		d.Require(a.Store.WhileBody(node), ast.PropType)
		n.Type = a.Store.Basic(ast.BasicVoid)

	case ast.KindForStmt:
		if x := a.Store.ForInit(node); x.Valid() {
			d.Require(x, ast.PropType)
		}
		if x := a.Store.ForCond(node); x.Valid() {
			d.Require(x, ast.PropType)
		}
		if x := a.Store.ForPost(node); x.Valid() {
			d.Require(x, ast.PropType)
		}
		d.Require(a.Store.ForBody(node), ast.PropType)
		n.Type = a.Store.Basic(ast.BasicVoid)

	case ast.KindReturnStmt:
		if e := a.Store.ReturnExpr(node); e.Valid() {
			d.Require(e, ast.PropType)
		}
		n.Type = a.Store.Basic(ast.BasicVoid)

	case ast.KindBreakStmt, ast.KindContinueStmt:
		n.Type = a.Store.Basic(ast.BasicVoid)

	case ast.KindAssignStmt:
		lhs, rhs := a.Store.AssignLHS(node), a.Store.AssignRHS(node)
		d.Require(lhs, ast.PropType)
		d.Require(rhs, ast.PropType)
		if !a.Store.Node(a.Store.Resolved(lhs)).HasFlag(ast.FlagIsLvalue) {
			a.Sink.Add(&diag.Report{Code: diag.TypLvalueRequired, Phase: diag.PhaseType,
				Message: "assignment target is not an lvalue"})
		}
		n.Type = a.Store.Basic(ast.BasicVoid)

	case ast.KindAssignExpr:
		lhs, rhs := a.Store.AssignExprLHS(node), a.Store.AssignExprRHS(node)
		d.Require(lhs, ast.PropType)
		d.Require(rhs, ast.PropType)
		if !a.Store.Node(a.Store.Resolved(lhs)).HasFlag(ast.FlagIsLvalue) {
			a.Sink.Add(&diag.Report{Code: diag.TypLvalueRequired, Phase: diag.PhaseType,
				Message: "assignment target is not an lvalue"})
		}
		n.Type = a.Store.Node(lhs).Type

	case ast.KindBinaryExpr:
		n.Type = a.typeCheckBinary(d, node)

	case ast.KindUnaryExpr:
		operand := a.Store.UnaryOperand(node)
		d.Require(operand, ast.PropType)
		if a.Store.UnaryOperator(node) == ast.OpNot {
			n.Type = a.Store.Basic(ast.BasicBool)
		} else {
			n.Type = a.Store.Node(operand).Type
		}

	case ast.KindCallExpr:
		n.Type = a.typeCheckCall(d, node)

	case ast.KindIndexExpr:
		n.Type = a.typeCheckIndex(d, node)

	case ast.KindMemberExpr:
		n.Type = a.typeCheckMember(d, node)

	case ast.KindCastExpr:
		t := a.Store.CastTypeExpr(node)
		d.Require(t, ast.PropType)
		operand := a.Store.CastOperand(node)
		d.Require(operand, ast.PropType)
		toType := a.Store.Node(t).Type
		fromType := a.Store.Node(operand).Type
		if !a.isCastLegal(fromType, toType) {
			a.Sink.Add(&diag.Report{Code: diag.TypInvalidCast, Phase: diag.PhaseType,
				Message: "no checked conversion between these two types"})
		}
		n.Type = toType

	case ast.KindAddrOfExpr:
		operand := a.Store.AddrOfOperand(node)
		a.Store.Node(operand).SetFlag(ast.FlagSuppressCallRewrite)
		d.Require(operand, ast.PropType)
		if !a.Store.Node(a.Store.Resolved(operand)).HasFlag(ast.FlagIsLvalue) {
			a.Sink.Add(&diag.Report{Code: diag.TypAddrOfRvalue, Phase: diag.PhaseType,
				Message: "cannot take the address of a non-lvalue"})
		}
		n.Type = a.Store.NewPointerType(ast.Position{}, a.Store.Node(operand).Type)

	case ast.KindDerefExpr:
		operand := a.Store.DerefOperand(node)
		d.Require(operand, ast.PropType)
		ot := a.Store.Node(operand).Type
		if ot.Kind() == ast.KindPointerType {
			n.Type = a.Store.PointerElem(ot)
		} else {
			a.Sink.Add(&diag.Report{Code: diag.TypMismatch, Phase: diag.PhaseType,
				Message: "dereference of a non-pointer value"})
			n.Type = a.Store.Basic(ast.BasicVoid)
		}

	case ast.KindArrayLiteral:
		elems := a.Store.ArrayLiteralElems(node)
		elemType := a.Store.Basic(ast.BasicVoid)
		for i, e := range elems {
			d.Require(e, ast.PropType)
			if i == 0 {
				elemType = a.Store.Node(e).Type
			}
		}
		n.Type = a.Store.NewArrayType(ast.Position{}, elemType, a.Store.NewIntLiteral(ast.Position{}, int64(len(elems))))

	default:
		n.Type = a.Store.Basic(ast.BasicVoid)
	}
	return nil
}

// typeCheckVarLike computes a var decl's type from an explicit type
// annotation if present, else infers it from the initializer (the
// "contextual parent_type" feeding back into the uninitialized-annotation
// case).
func (a *Analyzer) typeCheckVarLike(d *driver.Driver, node, typeExpr, init ast.Index) ast.Index {
	if init.Valid() {
		d.Require(init, ast.PropType)
	}
	if typeExpr.Valid() {
		d.Require(typeExpr, ast.PropType)
		return a.Store.Node(typeExpr).Type
	}
	if init.Valid() {
		return a.Store.Node(init).Type
	}
	return a.Store.Basic(ast.BasicVoid)
}

// typeCheckBinary synthesizes a binary expression's type: comparisons and
// logical operators always yield bool, everything else keeps the left
// operand's type — strict no-implicit-coercion means a basic-kind
// mismatch on an arithmetic operator is a diagnosed error, not a silent
// promotion.
func (a *Analyzer) typeCheckBinary(d *driver.Driver, node ast.Index) ast.Index {
	lhs, rhs := a.Store.BinaryLHS(node), a.Store.BinaryRHS(node)
	d.Require(lhs, ast.PropType)
	d.Require(rhs, ast.PropType)
	op := a.Store.BinaryOperator(node)

	switch op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpLogAnd, ast.OpLogOr:
		return a.Store.Basic(ast.BasicBool)
	}

	lt, rt := a.Store.Node(lhs).Type, a.Store.Node(rhs).Type
	if lt.Kind() == ast.KindBasicType && rt.Kind() == ast.KindBasicType {
		lk, rk := a.Store.BasicTypeKind(lt), a.Store.BasicTypeKind(rt)
		if lk != rk {
			a.Sink.Add(&diag.Report{Code: diag.TypMismatch, Phase: diag.PhaseType,
				Message: "operands of binary expression have different basic types; no implicit coercion"})
		}
	}
	return lt
}

// typeCheckCall resolves paren-free call lowering's argument-count check
// and synthesizes the call's type from the callee's (post-resolution)
// return type.
func (a *Analyzer) typeCheckCall(d *driver.Driver, node ast.Index) ast.Index {
	callee := a.Store.CallCallee(node)
	a.Store.Node(callee).SetFlag(ast.FlagSuppressCallRewrite)
	d.Require(callee, ast.PropType)
	args := a.Store.CallArgs(node)
	for _, arg := range args {
		d.Require(arg, ast.PropType)
	}
	if target := a.Store.Resolved(callee); target.Kind() == ast.KindFuncDecl {
		params := a.Store.FuncParams(target)
		variadic := len(params) > 0 && a.Store.ParamIsVariadic(params[len(params)-1])
		if len(args) != len(params) && !(variadic && len(args) >= len(params)-1) {
			a.Sink.Add(&diag.Report{Code: diag.TypArgCount, Phase: diag.PhaseType,
				Message: "call argument count does not match function signature"})
		}
	}
	return a.Store.Node(callee).Type
}

// typeCheckIndex handles slice, array and pointer indexing uniformly.
func (a *Analyzer) typeCheckIndex(d *driver.Driver, node ast.Index) ast.Index {
	base := a.Store.IndexBase(node)
	d.Require(base, ast.PropType)
	d.Require(a.Store.IndexIndex(node), ast.PropType)
	bt := a.Store.Node(base).Type
	switch bt.Kind() {
	case ast.KindSliceType:
		return a.Store.SliceElem(bt)
	case ast.KindArrayType:
		return a.Store.ArrayElem(bt)
	case ast.KindPointerType:
		return a.Store.PointerElem(bt)
	}
	a.Sink.Add(&diag.Report{Code: diag.TypMismatch, Phase: diag.PhaseType,
		Message: "indexing a value that is not a slice, array or pointer"})
	return a.Store.Basic(ast.BasicVoid)
}

// typeCheckMember performs member-access lowering: a `.length`/`.ptr` use on
// a slice, static-array or pointer base is synthesized rather than looked up
// (syntheticMemberType); anything else is an access through a struct/union's
// own member scope, treating an access through a pointer as an implicit
// dereference (flagged NeedsDeref for irgen).
func (a *Analyzer) typeCheckMember(d *driver.Driver, node ast.Index) ast.Index {
	base := a.Store.MemberBase(node)
	d.Require(base, ast.PropType)
	baseType := a.Store.Node(base).Type
	name := a.Store.MemberName(node)

	if name == ident.Length || name == ident.Ptr {
		if t, ok := syntheticMemberType(a.Store, baseType, name); ok {
			return t
		}
	}

	structType := baseType
	if structType.Kind() == ast.KindPointerType {
		structType = a.Store.PointerElem(structType)
		a.Store.Node(node).SetFlag(ast.FlagNeedsDeref)
	}

	if structType.Kind() != ast.KindStructDecl && structType.Kind() != ast.KindUnionDecl {
		a.Sink.Add(&diag.Report{Code: diag.TypMismatch, Phase: diag.PhaseType,
			Message: "member access on a value that is not a struct or union"})
		return a.Store.Basic(ast.BasicVoid)
	}

	scope := a.Store.Node(structType).OwnScope
	fieldDecl, ok := a.Store.LookupLocal(scope, name)
	if !ok {
		a.Sink.Add(&diag.Report{Code: diag.NamUndefined, Phase: diag.PhaseName,
			Message: "no such field `" + a.Ids.Text(name) + "`"})
		return a.Store.Basic(ast.BasicVoid)
	}
	d.Require(fieldDecl, ast.PropType)
	return a.Store.Node(fieldDecl).Type
}

// syntheticMemberType resolves `.length`/`.ptr` against a slice, static-array
// or pointer base. A slice or array supports both: length as u64, ptr as a
// pointer to its element type (array's ptr is the usual array-to-pointer
// decay). A bare pointer only supports ptr, returning the pointer itself
// unchanged — it carries no length of its own.
func syntheticMemberType(s *ast.Store, baseType ast.Index, name ident.ID) (ast.Index, bool) {
	switch baseType.Kind() {
	case ast.KindSliceType:
		if name == ident.Length {
			return s.Basic(ast.BasicU64), true
		}
		return s.NewPointerType(ast.Position{}, s.SliceElem(baseType)), true
	case ast.KindArrayType:
		if name == ident.Length {
			return s.Basic(ast.BasicU64), true
		}
		return s.NewPointerType(ast.Position{}, s.ArrayElem(baseType)), true
	case ast.KindPointerType:
		if name == ident.Ptr {
			return baseType, true
		}
	}
	return ast.Undefined, false
}

// rewriteParenFreeCall turns a bare reference to target (a function or
// function template) that was not followed by call syntax into an implicit
// zero-argument call: a fresh callee IdentUse carries the real resolution so
// the synthesized CallExpr's own type-check sees an ordinary call, while
// node's resolution collapses onto that call so every later reader of node
// sees the call's result, not the bare function.
func (a *Analyzer) rewriteParenFreeCall(d *driver.Driver, node, target ast.Index) ast.Index {
	orig := a.Store.Node(node)
	calleeUse := a.Store.NewIdentUse(orig.Pos, orig.Name)
	a.Store.SetResolvedTo(calleeUse, target)
	call := a.Store.NewCallExpr(orig.Pos, calleeUse, nil)
	d.Require(call, ast.PropType)
	a.Store.SetResolvedTo(node, call)
	return a.Store.Node(call).Type
}

// isCastLegal reports whether an explicit cast between from and to is one of
// the checked conversions: integer widening/narrowing, pointer/integer,
// pointer/pointer, slice/pointer, enum/integer. Anything else (e.g. two
// unrelated struct types, float/pointer) is rejected.
func (a *Analyzer) isCastLegal(from, to ast.Index) bool {
	if from == to {
		return true
	}
	fromBasic, fromIsBasic := basicKindOf(a.Store, from)
	toBasic, toIsBasic := basicKindOf(a.Store, to)

	switch {
	case fromIsBasic && toIsBasic:
		return fromBasic.IsInteger() && toBasic.IsInteger()
	case from.Kind() == ast.KindPointerType && to.Kind() == ast.KindPointerType:
		return true
	case from.Kind() == ast.KindPointerType && toIsBasic:
		return toBasic.IsInteger()
	case to.Kind() == ast.KindPointerType && fromIsBasic:
		return fromBasic.IsInteger()
	case from.Kind() == ast.KindSliceType && to.Kind() == ast.KindPointerType:
		return true
	case to.Kind() == ast.KindSliceType && from.Kind() == ast.KindPointerType:
		return true
	case from.Kind() == ast.KindEnumTypeDecl && toIsBasic:
		return toBasic.IsInteger()
	case to.Kind() == ast.KindEnumTypeDecl && fromIsBasic:
		return fromBasic.IsInteger()
	}
	return false
}

func basicKindOf(s *ast.Store, t ast.Index) (ast.BasicKind, bool) {
	if !t.Valid() || t.Kind() != ast.KindBasicType {
		return 0, false
	}
	return s.BasicTypeKind(t), true
}
