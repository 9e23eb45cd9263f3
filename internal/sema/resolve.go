package sema

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/driver"
	"github.com/cwbudde/corec/internal/ident"
)

// resolve is the PropNameResolve computer (C7): it walks a node's children,
// requiring each child's own name resolution, and — for the two node kinds
// that are themselves unresolved name uses (NameUseType, IdentUse) —
// performs the scope-chain lookup and collapses the use node in place into
// its target via Store.SetResolvedTo. The collapse is applied
// uniformly (not just to aliases and basic types): once resolved, a former
// IdentUse/NameUseType handle is indistinguishable from whatever it named,
// so every later pass reads Store.Node(h).Type/Kind directly without a
// second indirection table. See DESIGN.md for why this generalizes the
// narrower "aliases and basic types only" framing.
func (a *Analyzer) resolve(d *driver.Driver, node ast.Index) error {
	switch node.Kind() {
	case ast.KindNameUseType, ast.KindIdentUse:
		return a.resolveNameUse(d, node)
	case ast.KindAlias:
		if t := a.Store.AliasTarget(node); t.Valid() {
			a.propagate(node, t)
			d.Require(t, ast.PropNameResolve)
		}
	case ast.KindVarDecl:
		if t := a.Store.VarTypeExpr(node); t.Valid() {
			a.propagate(node, t)
			d.Require(t, ast.PropNameResolve)
		}
		if v := a.Store.VarInit(node); v.Valid() {
			a.propagate(node, v)
			d.Require(v, ast.PropNameResolve)
		}
	case ast.KindParamDecl:
		if t := a.Store.ParamTypeExpr(node); t.Valid() {
			a.propagate(node, t)
			d.Require(t, ast.PropNameResolve)
		}
		if v := a.Store.ParamDefaultExpr(node); v.Valid() {
			a.propagate(node, v)
			d.Require(v, ast.PropNameResolve)
		}
	case ast.KindFieldDecl:
		t := a.Store.FieldTypeExpr(node)
		a.propagate(node, t)
		d.Require(t, ast.PropNameResolve)
	case ast.KindFuncDecl:
		for _, p := range a.Store.FuncParams(node) {
			a.propagate(node, p)
			d.Require(p, ast.PropNameResolve)
		}
		if ret := a.Store.FuncRetType(node); ret.Valid() {
			a.propagate(node, ret)
			d.Require(ret, ast.PropNameResolve)
		}
		if body := a.Store.FuncBody(node); body.Valid() {
			a.propagate(node, body)
			d.Require(body, ast.PropNameResolve)
		}
	case ast.KindBlockStmt:
		for _, st := range a.Store.BlockStmts(node) {
			a.propagate(node, st)
			d.Require(st, ast.PropNameResolve)
		}
	case ast.KindIfStmt:
		a.requireChild(d, node, a.Store.IfCond(node))
		a.requireChild(d, node, a.Store.IfThen(node))
		a.requireChild(d, node, a.Store.IfElse(node))
	case ast.KindWhileStmt:
		a.requireChild(d, node, a.Store.WhileCond(node))
		a.requireChild(d, node, a.Store.WhileBody(node))
	case ast.KindForStmt:
		a.requireChild(d, node, a.Store.ForInit(node))
		a.requireChild(d, node, a.Store.ForCond(node))
		a.requireChild(d, node, a.Store.ForPost(node))
		a.requireChild(d, node, a.Store.ForBody(node))
	case ast.KindReturnStmt:
		a.requireChild(d, node, a.Store.ReturnExpr(node))
	case ast.KindExprStmt:
		a.requireChild(d, node, a.Store.ExprStmtExpr(node))
	case ast.KindAssignStmt:
		a.requireChild(d, node, a.Store.AssignLHS(node))
		a.requireChild(d, node, a.Store.AssignRHS(node))
	case ast.KindBinaryExpr:
		a.requireChild(d, node, a.Store.BinaryLHS(node))
		a.requireChild(d, node, a.Store.BinaryRHS(node))
	case ast.KindUnaryExpr:
		a.requireChild(d, node, a.Store.UnaryOperand(node))
	case ast.KindCallExpr:
		a.requireChild(d, node, a.Store.CallCallee(node))
		for _, arg := range a.Store.CallArgs(node) {
			a.requireChild(d, node, arg)
		}
	case ast.KindIndexExpr:
		a.requireChild(d, node, a.Store.IndexBase(node))
		a.requireChild(d, node, a.Store.IndexIndex(node))
	case ast.KindMemberExpr:
		a.requireChild(d, node, a.Store.MemberBase(node))
		// The member name itself is resolved during type checking (C8),
		// once the base's type is known.
	case ast.KindCastExpr:
		a.requireChild(d, node, a.Store.CastTypeExpr(node))
		a.requireChild(d, node, a.Store.CastOperand(node))
	case ast.KindAddrOfExpr:
		a.requireChild(d, node, a.Store.AddrOfOperand(node))
	case ast.KindDerefExpr:
		a.requireChild(d, node, a.Store.DerefOperand(node))
	case ast.KindAssignExpr:
		a.requireChild(d, node, a.Store.AssignExprLHS(node))
		a.requireChild(d, node, a.Store.AssignExprRHS(node))
	case ast.KindArrayLiteral:
		for _, e := range a.Store.ArrayLiteralElems(node) {
			a.requireChild(d, node, e)
		}
	case ast.KindPointerType:
		a.requireChild(d, node, a.Store.PointerElem(node))
	case ast.KindSliceType:
		a.requireChild(d, node, a.Store.SliceElem(node))
	case ast.KindArrayType:
		a.requireChild(d, node, a.Store.ArrayElem(node))
		a.requireChild(d, node, a.Store.ArraySize(node))
	case ast.KindFuncType:
		for _, p := range a.Store.FuncTypeParams(node) {
			a.requireChild(d, node, p)
		}
		a.requireChild(d, node, a.Store.FuncTypeRet(node))
	}
	return nil
}

// requireChild propagates node's applicable scope onto child (if child does
// not already have one from registration) and requires its resolution.
func (a *Analyzer) requireChild(d *driver.Driver, node, child ast.Index) {
	if !child.Valid() {
		return
	}
	a.propagate(node, child)
	d.Require(child, ast.PropNameResolve)
}

// propagate gives child the scope it should resolve names from, inheriting
// node's own applicable scope (its OwnScope if it introduces one, else its
// ParentScope) — but only if registration has not already assigned child a
// scope of its own (a local var decl's ParentScope, a nested block's own
// scope).
func (a *Analyzer) propagate(node, child ast.Index) {
	cn := a.Store.Node(child)
	if cn.ParentScope != ast.NoScope {
		return
	}
	pn := a.Store.Node(node)
	scope := pn.ParentScope
	if pn.OwnScope != ast.NoScope {
		scope = pn.OwnScope
	}
	cn.ParentScope = scope
}

func (a *Analyzer) resolveNameUse(d *driver.Driver, node ast.Index) error {
	n := a.Store.Node(node)
	name := n.Name

	if name == ident.This {
		return nil // `this` is an implicit binding, never scope-looked-up
	}
	if kind, ok := basicKindForName(a.Ids, name); ok {
		a.Store.SetResolvedTo(node, a.Store.Basic(kind))
		return nil
	}

	scope := n.ParentScope
	entity, ok := a.Store.Lookup(scope, name)
	if !ok {
		if memberScope, found := a.nearestMemberScope(scope); found {
			if _, ok2 := a.Store.LookupLocal(memberScope, name); ok2 {
				a.rewriteImplicitThis(node, name)
				return nil
			}
		}
		a.Sink.Add(&diag.Report{Code: diag.NamUndefined, Phase: diag.PhaseName,
			Message: "undefined identifier `" + a.Ids.Text(name) + "`"})
		a.Store.SetResolvedTo(node, a.Store.NewErrorExpr(n.Pos))
		return nil
	}

	entity = a.followAlias(d, entity)
	d.Require(entity, ast.PropNameResolve)
	a.Store.SetResolvedTo(node, entity)
	return nil
}

// followAlias chases a chain of aliases (`alias A = B; alias B = i32;`) down
// to the first non-alias entity, requiring each hop's own resolution so a
// hop that is itself a name use has already collapsed before we read its
// alias target.
func (a *Analyzer) followAlias(d *driver.Driver, entity ast.Index) ast.Index {
	for hops := 0; entity.Kind() == ast.KindAlias && hops < 64; hops++ {
		d.Require(entity, ast.PropNameResolve)
		target := a.Store.AliasTarget(entity)
		if !target.Valid() {
			break
		}
		d.Require(target, ast.PropNameResolve)
		entity = target
	}
	return entity
}

func (a *Analyzer) nearestMemberScope(scope ast.ScopeID) (ast.ScopeID, bool) {
	for scope != ast.NoScope {
		if a.Store.ScopeKindOf(scope) == ast.ScopeMember {
			return scope, true
		}
		scope = a.Store.ScopeParent(scope)
	}
	return ast.NoScope, false
}

// rewriteImplicitThis turns a bare `field` reference inside a member scope
// into `this.field` in place. The synthetic `this` IdentUse needs no
// further resolution (resolveNameUse short-circuits on ident.This above).
func (a *Analyzer) rewriteImplicitThis(node ast.Index, name ident.ID) {
	pos := a.Store.Node(node).Pos
	thisUse := a.Store.NewIdentUse(pos, ident.This)
	member := a.Store.NewMemberExpr(pos, thisUse, name, true)
	a.Store.SetResolvedTo(node, member)
}

func basicKindForName(ids *ident.Table, name ident.ID) (ast.BasicKind, bool) {
	switch ids.Text(name) {
	case "void":
		return ast.BasicVoid, true
	case "noreturn":
		return ast.BasicNoreturn, true
	case "bool":
		return ast.BasicBool, true
	case "i8":
		return ast.BasicI8, true
	case "i16":
		return ast.BasicI16, true
	case "i32":
		return ast.BasicI32, true
	case "i64":
		return ast.BasicI64, true
	case "u8":
		return ast.BasicU8, true
	case "u16":
		return ast.BasicU16, true
	case "u32":
		return ast.BasicU32, true
	case "u64":
		return ast.BasicU64, true
	case "f32":
		return ast.BasicF32, true
	case "f64":
		return ast.BasicF64, true
	}
	return 0, false
}
