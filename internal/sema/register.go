// Package sema implements the three name/type passes that sit between
// parsing and IR generation: static expansion + name registration (C6),
// name resolution (C7), and type checking (C8). Each pass is driven
// on-demand through internal/driver rather than as a monolithic walk, so a
// `require_type` deep in one function can trigger registration/resolution
// of a sibling declaration it happens to reference first.
package sema

import (
	"strconv"

	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/driver"
	"github.com/cwbudde/corec/internal/ident"
)

// Options configures the parts of static expansion that depend on the
// invocation rather than the source: which `#version` identifiers are
// enabled, Go build-tag-style conditional compilation driven from outside
// the source file.
type Options struct {
	EnabledVersions map[ident.ID]bool
}

// Analyzer bundles the Store, ident table and driver every pass in this
// package shares, plus the global scope every module registers into.
type Analyzer struct {
	Store   *ast.Store
	Ids     *ident.Table
	Driver  *driver.Driver
	Sink    *diag.Sink
	Opts    Options
	Global  ast.ScopeID
}

// New wires a fresh Analyzer and registers the C6/C7/C8 property computers
// with d, so any `d.Require` call anywhere transitively routes back here.
func New(store *ast.Store, ids *ident.Table, d *driver.Driver, sink *diag.Sink, opts Options) *Analyzer {
	a := &Analyzer{Store: store, Ids: ids, Driver: d, Sink: sink, Opts: opts}
	a.Global = store.NewScope(ast.ScopeGlobal, ast.NoScope, "global")
	d.Register(ast.PropNameRegisterSelf, a.registerSelf)
	d.Register(ast.PropNameRegisterNested, a.registerNested)
	d.Register(ast.PropNameResolve, a.resolve)
	d.Register(ast.PropType, a.typeCheck)
	return a
}

// RegisterModule expands module's static conditionals/foreach items in
// place and defines every resulting top-level declaration's name into the
// global scope. It is the synchronous entry point the compiler's
// loader calls once per file before anything else runs through the driver.
func (a *Analyzer) RegisterModule(mod ast.Index) {
	a.Store.Node(mod).OwnScope = a.Global
	items := a.expandItemList(a.Store.ModuleItems(mod))
	a.Store.SetModuleItems(mod, items)
	for _, it := range items {
		a.defineTopLevel(a.Global, it)
	}
	for _, it := range items {
		a.Driver.Require(it, ast.PropNameRegisterSelf)
	}
}

// expandItemList evaluates every #if/#version/#foreach in items and splices
// the chosen branch in, recursively (a branch may itself contain further
// static conditionals). #assert is checked here too since it requires no
// name resolution. The result contains no more Kind Static* nodes.
func (a *Analyzer) expandItemList(items []ast.Index) []ast.Index {
	var out []ast.Index
	for _, it := range items {
		switch it.Kind() {
		case ast.KindStaticIf:
			cond := a.evalStaticBool(a.Store.StaticIfCond(it))
			branch := a.Store.StaticIfElseItems(it)
			if cond {
				branch = a.Store.StaticIfThenItems(it)
			}
			out = append(out, a.expandItemList(branch)...)
		case ast.KindStaticVersion:
			enabled := a.Opts.EnabledVersions[a.Store.StaticVersionID(it)]
			branch := a.Store.StaticVersionElseItems(it)
			if enabled {
				branch = a.Store.StaticVersionItems(it)
			}
			out = append(out, a.expandItemList(branch)...)
		case ast.KindStaticForeach:
			out = append(out, a.expandForeach(it)...)
		case ast.KindStaticAssert:
			if !a.evalStaticBool(a.Store.StaticAssertCond(it)) {
				a.Sink.Add(&diag.Report{Code: diag.SasFailed, Phase: diag.PhaseExpansion,
					Message: a.Store.StaticAssertMessage(it)})
			}
		default:
			out = append(out, it)
		}
	}
	return out
}

// expandForeach clones body once per element of the foreach's iterable
// (required to be an alias-array literal), substituting keyID
// (the element's 0-based index, as an int literal) and valueID (the element
// itself) into each clone via ast.Store.CloneForeachItem. Each clone is also
// given a freshly synthesized name so that N iterations produce N distinct
// declarations in the enclosing scope rather than N re-definitions of the
// same name.
func (a *Analyzer) expandForeach(it ast.Index) []ast.Index {
	iterable := a.Store.StaticForeachIterable(it)
	if iterable.Kind() != ast.KindAliasArrayLiteral {
		a.Sink.Add(&diag.Report{Code: diag.ExpNotIterable, Phase: diag.PhaseExpansion,
			Message: "#foreach iterable must be an alias array"})
		return nil
	}
	keyID := a.Store.StaticForeachKeyID(it)
	valueID := a.Store.StaticForeachValueID(it)
	elems := a.Store.AliasArrayItems(iterable)
	body := a.Store.StaticForeachBody(it)

	var out []ast.Index
	for idx, elem := range elems {
		subst := map[ident.ID]ast.Index{}
		if keyID.Valid() {
			subst[keyID] = a.Store.NewIntLiteral(a.Store.Node(it).Pos, int64(idx))
		}
		if valueID.Valid() {
			subst[valueID] = elem
		}
		for _, bit := range body {
			clone := a.Store.CloneForeachItem(bit, a.uniqueForeachName(bit, idx), subst)
			out = append(out, a.expandItemList([]ast.Index{clone})...)
		}
	}
	return out
}

// uniqueForeachName synthesizes the i'th clone's name from orig's own name
// plus a suffix, so sibling iterations never collide in defineTopLevel.
// Declaration kinds with no name of their own (it.Kind() has no Name) map to
// ident.ID(0), which Store.Define/defineTopLevel already treat as anonymous.
func (a *Analyzer) uniqueForeachName(orig ast.Index, idx int) ident.ID {
	name := a.Store.Node(orig).Name
	if !name.Valid() {
		return name
	}
	return a.Ids.GetOrIntern(a.Ids.Text(name) + "__" + strconv.Itoa(idx))
}

// evalStaticBool evaluates a compile-time boolean expression. Only the
// small subset static conditionals actually use is supported: boolean
// literals, bare identifiers (true when named in Opts.EnabledVersions),
// `==` between integer literals, and `&&`/`||`/`!` over those; anything
// else is diagnosed as not a compile-time constant.
func (a *Analyzer) evalStaticBool(e ast.Index) bool {
	if !e.Valid() {
		return false
	}
	switch e.Kind() {
	case ast.KindBoolLiteral:
		return a.Store.BoolLiteralValue(e)
	case ast.KindUnaryExpr:
		if a.Store.UnaryOperator(e) == ast.OpNot {
			return !a.evalStaticBool(a.Store.UnaryOperand(e))
		}
	case ast.KindBinaryExpr:
		op := a.Store.BinaryOperator(e)
		lhs, rhs := a.Store.BinaryLHS(e), a.Store.BinaryRHS(e)
		switch op {
		case ast.OpLogAnd:
			return a.evalStaticBool(lhs) && a.evalStaticBool(rhs)
		case ast.OpLogOr:
			return a.evalStaticBool(lhs) || a.evalStaticBool(rhs)
		case ast.OpEq:
			return a.Store.IntLiteralValue(lhs) == a.Store.IntLiteralValue(rhs)
		}
	case ast.KindIdentUse:
		return a.Opts.EnabledVersions[a.Store.Node(e).Name]
	}
	a.Sink.Add(&diag.Report{Code: diag.ExpUnknownVersion, Phase: diag.PhaseExpansion,
		Message: "static condition is not a compile-time constant"})
	return false
}

// defineTopLevel introduces decl's name into scope, diagnosing same-scope
// duplicates (shadowing is allowed across scopes, rejected within
// one) without yet resolving anything about decl's contents.
func (a *Analyzer) defineTopLevel(scope ast.ScopeID, decl ast.Index) {
	name := a.Store.Node(decl).Name
	if !name.Valid() {
		return
	}
	if existing, ok := a.Store.LookupLocal(scope, name); ok && existing != decl {
		a.Sink.Add(&diag.Report{Code: diag.NamDuplicateDecl, Phase: diag.PhaseName,
			Message: "duplicate declaration of `" + a.Ids.Text(name) + "` in this scope"})
		return
	}
	a.Store.Define(scope, name, decl)
	a.Store.Node(decl).ParentScope = scope
}

// registerSelf is the PropNameRegisterSelf computer: it gives declarations
// that open their own scope (struct/union/func/enum body) a ScopeID and
// defines their immediate members into it, without yet recursing into
// nested declarations' own bodies (that is PropNameRegisterNested).
func (a *Analyzer) registerSelf(d *driver.Driver, decl ast.Index) error {
	switch decl.Kind() {
	case ast.KindStructDecl, ast.KindUnionDecl:
		scope := a.Store.NewScope(ast.ScopeMember, a.Store.Node(decl).ParentScope, "struct")
		a.Store.Node(decl).OwnScope = scope
		fields := a.expandItemList(a.Store.StructFields(decl))
		a.Store.SetStructFields(decl, fields)
		for _, f := range fields {
			a.defineTopLevel(scope, f)
		}
	case ast.KindEnumTypeDecl:
		scope := a.Store.NewScope(ast.ScopeMember, a.Store.Node(decl).ParentScope, "enum")
		a.Store.Node(decl).OwnScope = scope
		members := a.expandItemList(a.Store.EnumMembers(decl))
		a.Store.SetEnumMembers(decl, members)
		for _, m := range members {
			a.defineTopLevel(scope, m)
		}
	case ast.KindFuncDecl:
		scope := a.Store.NewScope(ast.ScopeLocal, a.Store.Node(decl).ParentScope, "func")
		a.Store.Node(decl).OwnScope = scope
		for _, p := range a.Store.FuncParams(decl) {
			a.defineTopLevel(scope, p)
		}
		if body := a.Store.FuncBody(decl); body.Valid() {
			a.Store.Node(body).ParentScope = scope
		}
	}
	return nil
}

// registerNested recurses into a declaration's nested declaration lists
// (a struct's fields may themselves need their own registerSelf, a
// function body's local var decls need their names visible to the rest of
// the block) now that every sibling at this level already has a name.
func (a *Analyzer) registerNested(d *driver.Driver, decl ast.Index) error {
	if !d.Require(decl, ast.PropNameRegisterSelf) {
		return errDep
	}
	switch decl.Kind() {
	case ast.KindStructDecl, ast.KindUnionDecl:
		for _, f := range a.Store.StructFields(decl) {
			d.Require(f, ast.PropNameRegisterSelf)
		}
	case ast.KindFuncDecl:
		if body := a.Store.FuncBody(decl); body.Valid() {
			a.registerBlockLocals(a.Store.Node(body).ParentScope, body)
		}
	}
	return nil
}

// registerBlockLocals expands any `#if`/`#version`/`#foreach`/`#assert`
// among block's direct statements (a function body is one of the four
// static-expansion contexts), then walks the resulting direct local var
// decls (and nested blocks) defining each into scope, implementing the
// local lexical-scope tree.
func (a *Analyzer) registerBlockLocals(scope ast.ScopeID, block ast.Index) {
	a.Store.Node(block).ParentScope = scope
	stmts := a.expandItemList(a.Store.BlockStmts(block))
	a.Store.SetBlockStmts(block, stmts)
	for _, st := range stmts {
		switch st.Kind() {
		case ast.KindVarDecl:
			a.defineTopLevel(scope, st)
		case ast.KindBlockStmt:
			inner := a.Store.NewScope(ast.ScopeLocal, scope, "block")
			a.registerBlockLocals(inner, st)
		case ast.KindIfStmt:
			a.registerStmtScope(scope, a.Store.IfThen(st))
			if e := a.Store.IfElse(st); e.Valid() {
				a.registerStmtScope(scope, e)
			}
		case ast.KindWhileStmt:
			a.registerStmtScope(scope, a.Store.WhileBody(st))
		case ast.KindForStmt:
			forScope := a.Store.NewScope(ast.ScopeLocal, scope, "for")
			if init := a.Store.ForInit(st); init.Valid() && init.Kind() == ast.KindVarDecl {
				a.defineTopLevel(forScope, init)
			}
			a.registerStmtScope(forScope, a.Store.ForBody(st))
		}
	}
}

func (a *Analyzer) registerStmtScope(scope ast.ScopeID, st ast.Index) {
	if st.Kind() == ast.KindBlockStmt {
		inner := a.Store.NewScope(ast.ScopeLocal, scope, "block")
		a.registerBlockLocals(inner, st)
		return
	}
	a.Store.Node(st).ParentScope = scope
}

var errDep = depError{}

type depError struct{}

func (depError) Error() string { return "dependency failed" }
