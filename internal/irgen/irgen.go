// Package irgen implements C11: a straightforward tree walk over the
// type-checked AST that emits SSA IR through internal/irbuilder. It is
// driven the same way every other pass in this compiler is — on demand,
// through internal/driver's PropIrGen property — so a function's IR can be
// requested before or after its callees without the caller worrying about
// ordering.
package irgen

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/driver"
	"github.com/cwbudde/corec/internal/ident"
	"github.com/cwbudde/corec/internal/ir"
	"github.com/cwbudde/corec/internal/irbuilder"
)

// Generator owns the Program every generated Function is collected into,
// plus the Store/Ids/Driver/Sink every pass in this compiler shares.
type Generator struct {
	Store   *ast.Store
	Ids     *ident.Table
	Driver  *driver.Driver
	Sink    *diag.Sink
	Program *ir.Program

	stringGlobals map[string]ir.Index
}

// New wires a fresh Generator and registers the PropIrGen computer with d.
func New(store *ast.Store, ids *ident.Table, d *driver.Driver, sink *diag.Sink, prog *ir.Program) *Generator {
	g := &Generator{Store: store, Ids: ids, Driver: d, Sink: sink, Program: prog, stringGlobals: make(map[string]ir.Index)}
	d.Register(ast.PropIrGen, g.genNode)
	return g
}

// genNode is the PropIrGen computer. Only KindFuncDecl does anything;
// every other kind is a no-op so a caller can uniformly
// d.Require(x, ast.PropIrGen) over a whole declaration list without
// filtering it first.
func (g *Generator) genNode(d *driver.Driver, node ast.Index) error {
	if node.Kind() != ast.KindFuncDecl {
		return nil
	}
	return g.genFunc(node)
}

// genFunc builds one ir.Function for decl's body, or does nothing for a
// forward/extern declaration (FuncIsExtern). It defensively drives the
// earlier passes itself (name registration, resolution, type checking) so
// requesting IR generation never depends on a caller having sequenced the
// pipeline correctly first.
func (g *Generator) genFunc(decl ast.Index) error {
	d := g.Driver
	d.Require(decl, ast.PropNameRegisterSelf)
	d.Require(decl, ast.PropNameRegisterNested)
	d.Require(decl, ast.PropNameResolve)
	d.Require(decl, ast.PropType)

	name := g.Ids.Text(g.Store.Node(decl).Name)

	if g.Store.FuncIsExtern(decl) {
		if _, isSyscall := g.Store.Node(decl).AttrInfo.ExternSyscall(g.Store); isSyscall {
			// A syscall has no callable IR entity of its own: lowerCall emits
			// a dedicated OpSyscall at each call site instead, so this
			// declaration never becomes a Program function and never shows
			// up as an external reference.
			d.AdvanceState(decl, ast.IrGenDone)
			return nil
		}
		g.Program.AddFunction(ir.NewExternFunction(decl, name))
		d.AdvanceState(decl, ast.IrGenDone)
		return nil
	}

	fn := ir.NewFunction(decl, name)
	b := irbuilder.New(fn, g.Sink)

	fg := &funcGen{g: g, b: b, fn: fn, decl: decl, retType: g.Store.Node(decl).Type}
	fg.curBlock = fn.Entry()
	b.SealBlock(fn.Entry()) // the entry block never gains a predecessor

	fg.bindParams(decl)

	body := g.Store.FuncBody(decl)
	fg.lowerStmt(body)

	fg.finishFunction()
	b.Finalize()

	g.Program.AddFunction(fn)
	d.AdvanceState(decl, ast.IrGenDone)
	return nil
}

// bindParams gives each parameter its initial SSA/address binding in the
// entry block: a plain vreg (no defining instruction — it is supplied by
// the caller) for scalar and small aggregate parameters, or, for aggregate
// parameters passed by pointer under the isPassByPtr rule, the incoming
// pointer itself as the parameter's address, so member/index access has
// an address to GEP from.
func (fg *funcGen) bindParams(decl ast.Index) {
	for _, p := range fg.g.Store.FuncParams(decl) {
		typ := fg.g.Store.Node(p).Type
		arg := fg.fn.AllocVReg(typ)
		if isPassByPtr(fg.g.Store, typ) {
			fg.setAddr(p, arg) // arg already a pointer to the caller's storage
			continue
		}
		fg.b.WriteVariable(fg.curBlock, p, arg)
	}
}

// finishFunction materializes the single return instruction in the fixed
// exit block, once every return statement in the body has jumped to it.
// Entry→exit is always index 0→1 (ir.NewFunction's invariant), so this is
// the one place a whole function's worth of `return` statements converge,
// letting ReadVariable's phi machinery merge their values for free.
func (fg *funcGen) finishFunction() {
	exit := fg.fn.Exit()
	if !fg.fn.Block(fg.curBlock).IsFinished() {
		// Control fell off the end of the body (implicit void return, or
		// an unreachable tail after the last explicit return): wire it
		// into exit like any other return path.
		fg.b.AddJump(fg.curBlock, exit)
	}
	fg.b.SealBlock(exit)
	if fg.retType.Valid() && fg.retType.Kind() == ast.KindBasicType &&
		fg.g.Store.BasicTypeKind(fg.retType) == ast.BasicNoreturn {
		fg.b.AddUnreachable(exit)
		return
	}
	if isVoidRet(fg.g.Store, fg.retType) {
		fg.b.AddReturn(exit, ir.Undefined)
		return
	}
	val := fg.b.ReadVariable(exit, fg.retVarKey(), fg.retType)
	fg.b.AddReturn(exit, val)
}

func isVoidRet(s *ast.Store, typ ast.Index) bool {
	if !typ.Valid() || typ.Kind() != ast.KindBasicType {
		return false
	}
	return s.BasicTypeKind(typ).IsVoidOrNoreturn()
}
