package irgen

import (
	"testing"

	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/driver"
	"github.com/cwbudde/corec/internal/ident"
	"github.com/cwbudde/corec/internal/ir"
	"github.com/cwbudde/corec/internal/sema"
)

// setup wires a fresh Store/Analyzer/Generator triple the way a real
// compilation does, so a test only needs to build the AST and call
// d.Require(fn, ast.PropIrGen).
func setup() (*ast.Store, *ident.Table, *driver.Driver, *diag.Sink, *sema.Analyzer, *ir.Program) {
	s := ast.NewStore()
	ids := ident.New()
	sink := &diag.Sink{}
	d := driver.New(s, sink)
	an := sema.New(s, ids, d, sink, sema.Options{})
	prog := ir.NewProgram()
	New(s, ids, d, sink, prog)
	return s, ids, d, sink, an, prog
}

// diamond builds:
//
//	func diamond(a i32, b i32) -> i32 {
//	    i32 x;
//	    if (a > b) { x = a; } else { x = b; }
//	    return x;
//	}
//
// x is assigned two different values along the two arms, so reading it back
// at the merge point must produce a genuine two-operand phi — the IR-level
// counterpart of the classic diamond-assignment case.
func TestDiamondAssignmentProducesPhi(t *testing.T) {
	s, ids, d, sink, an, prog := setup()

	i32 := s.Basic(ast.BasicI32)
	aName := ids.GetOrIntern("a")
	bName := ids.GetOrIntern("b")
	xName := ids.GetOrIntern("x")

	paramA := s.NewParamDecl(ast.Position{}, aName, i32, ast.Undefined, false)
	paramB := s.NewParamDecl(ast.Position{}, bName, i32, ast.Undefined, false)
	xDecl := s.NewVarDecl(ast.Position{}, xName, i32, ast.Undefined)

	cond := s.NewBinaryExpr(ast.Position{}, ast.OpGt,
		s.NewIdentUse(ast.Position{}, aName), s.NewIdentUse(ast.Position{}, bName))
	thenAssign := s.NewAssignStmt(ast.Position{},
		s.NewIdentUse(ast.Position{}, xName), s.NewIdentUse(ast.Position{}, aName), 0)
	elseAssign := s.NewAssignStmt(ast.Position{},
		s.NewIdentUse(ast.Position{}, xName), s.NewIdentUse(ast.Position{}, bName), 0)
	ifStmt := s.NewIfStmt(ast.Position{}, cond,
		s.NewBlockStmt(ast.Position{}, []ast.Index{thenAssign}),
		s.NewBlockStmt(ast.Position{}, []ast.Index{elseAssign}))
	ret := s.NewReturnStmt(ast.Position{}, s.NewIdentUse(ast.Position{}, xName))

	body := s.NewBlockStmt(ast.Position{}, []ast.Index{xDecl, ifStmt, ret})
	fn := s.NewFuncDecl(ast.Position{}, ids.GetOrIntern("diamond"),
		[]ast.Index{paramA, paramB}, i32, body, nil, false)

	mod := s.NewModule(ast.Position{}, ids.GetOrIntern("diamond_mod"), []ast.Index{fn})
	an.RegisterModule(mod)

	if !d.Require(fn, ast.PropIrGen) {
		t.Fatalf("PropIrGen failed: %v", sink.Reports())
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports())
	}

	f, ok := prog.FuncByDecl(fn)
	if !ok {
		t.Fatalf("function not registered in program")
	}

	exit := f.Exit()
	instrs := f.Instructions(exit)
	if len(instrs) == 0 {
		t.Fatalf("exit block has no instructions")
	}
	last := instrs[len(instrs)-1]
	if h := f.InstrHeader(last); h.Opcode != ir.OpRetVal {
		t.Fatalf("exit terminator = %v, want OpRetVal", h.Opcode)
	}
	args := f.InstrArgs(last)
	if len(args) != 1 {
		t.Fatalf("want 1 return operand, got %d", len(args))
	}
	val := args[0]
	if val.Kind() != ir.KindVReg {
		t.Fatalf("returned x should be a merged phi vreg, got kind %v", val.Kind())
	}
	v := f.VReg(val)
	if v.Def.Kind() != ir.KindPhi {
		t.Fatalf("x's merge point should be a real phi, def kind = %v", v.Def.Kind())
	}
	p := f.Phi(v.Def)
	if got := len(f.Items(p.Args)); got != 2 {
		t.Fatalf("want 2 phi operands for the if/else merge of x, got %d", got)
	}
}

// loopy builds:
//
//	func loopy(n i32) -> i32 {
//	    i32 x = 7;
//	    i32 i = 0;
//	    while (i < n) {
//	        i = i + x;
//	    }
//	    return x;
//	}
//
// x is never reassigned inside the loop, so the phi the loop header would
// otherwise need for it collapses to the single incoming value everywhere
// it is read — inside the loop body and in the final return.
func TestWhileLoopTrivialPhiCollapsesToConstant(t *testing.T) {
	s, ids, d, sink, an, prog := setup()

	i32 := s.Basic(ast.BasicI32)
	nName := ids.GetOrIntern("n")
	xName := ids.GetOrIntern("x")
	iName := ids.GetOrIntern("i")

	paramN := s.NewParamDecl(ast.Position{}, nName, i32, ast.Undefined, false)
	xDecl := s.NewVarDecl(ast.Position{}, xName, i32, s.NewIntLiteral(ast.Position{}, 7))
	iDecl := s.NewVarDecl(ast.Position{}, iName, i32, s.NewIntLiteral(ast.Position{}, 0))

	cond := s.NewBinaryExpr(ast.Position{}, ast.OpLt,
		s.NewIdentUse(ast.Position{}, iName), s.NewIdentUse(ast.Position{}, nName))
	addIX := s.NewBinaryExpr(ast.Position{}, ast.OpAdd,
		s.NewIdentUse(ast.Position{}, iName), s.NewIdentUse(ast.Position{}, xName))
	assignI := s.NewAssignStmt(ast.Position{}, s.NewIdentUse(ast.Position{}, iName), addIX, 0)
	loopBody := s.NewBlockStmt(ast.Position{}, []ast.Index{assignI})
	whileStmt := s.NewWhileStmt(ast.Position{}, cond, loopBody)
	ret := s.NewReturnStmt(ast.Position{}, s.NewIdentUse(ast.Position{}, xName))

	body := s.NewBlockStmt(ast.Position{}, []ast.Index{xDecl, iDecl, whileStmt, ret})
	fn := s.NewFuncDecl(ast.Position{}, ids.GetOrIntern("loopy"),
		[]ast.Index{paramN}, i32, body, nil, false)

	mod := s.NewModule(ast.Position{}, ids.GetOrIntern("loopy_mod"), []ast.Index{fn})
	an.RegisterModule(mod)

	if !d.Require(fn, ast.PropIrGen) {
		t.Fatalf("PropIrGen failed: %v", sink.Reports())
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports())
	}

	f, ok := prog.FuncByDecl(fn)
	if !ok {
		t.Fatalf("function not registered in program")
	}

	var addArgs []ir.Index
	for _, blk := range f.Blocks() {
		for _, instr := range f.Instructions(blk) {
			if f.InstrHeader(instr).Opcode == ir.OpAdd {
				addArgs = f.InstrArgs(instr)
			}
		}
	}
	if addArgs == nil {
		t.Fatalf("no OpAdd instruction found in loop body")
	}
	xOperand := addArgs[1]
	if xOperand.Kind() != ir.KindConst {
		t.Fatalf("x read inside the loop should have collapsed to the original constant, got kind %v", xOperand.Kind())
	}
	if got := f.Const(xOperand).Int; got != 7 {
		t.Fatalf("x's collapsed constant = %d, want 7", got)
	}

	exit := f.Exit()
	instrs := f.Instructions(exit)
	last := instrs[len(instrs)-1]
	if f.InstrHeader(last).Opcode != ir.OpRetVal {
		t.Fatalf("exit terminator is not OpRetVal")
	}
	retArgs := f.InstrArgs(last)
	if retArgs[0] != xOperand {
		t.Fatalf("returned x (%v) should be the same collapsed constant read in the loop (%v)", retArgs[0], xOperand)
	}
}

// extern declares a bodyless function and a caller that invokes it, checking
// that a call site resolves an @extern declaration's signature through the
// Program just like a defined function's.
func TestCallToExternFunction(t *testing.T) {
	s, ids, d, sink, an, prog := setup()

	i32 := s.Basic(ast.BasicI32)
	pName := ids.GetOrIntern("p")
	externFn := s.NewFuncDecl(ast.Position{}, ids.GetOrIntern("helper"),
		[]ast.Index{s.NewParamDecl(ast.Position{}, pName, i32, ast.Undefined, false)},
		i32, ast.Undefined, nil, false)

	argName := ids.GetOrIntern("v")
	callerParam := s.NewParamDecl(ast.Position{}, argName, i32, ast.Undefined, false)
	call := s.NewCallExpr(ast.Position{}, s.NewIdentUse(ast.Position{}, ids.GetOrIntern("helper")),
		[]ast.Index{s.NewIdentUse(ast.Position{}, argName)})
	ret := s.NewReturnStmt(ast.Position{}, call)
	callerBody := s.NewBlockStmt(ast.Position{}, []ast.Index{ret})
	callerFn := s.NewFuncDecl(ast.Position{}, ids.GetOrIntern("caller"),
		[]ast.Index{callerParam}, i32, callerBody, nil, false)

	mod := s.NewModule(ast.Position{}, ids.GetOrIntern("extern_mod"), []ast.Index{externFn, callerFn})
	an.RegisterModule(mod)

	if !d.Require(callerFn, ast.PropIrGen) {
		t.Fatalf("PropIrGen failed: %v", sink.Reports())
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports())
	}

	externF, ok := prog.FuncByDecl(externFn)
	if !ok || !externF.Extern {
		t.Fatalf("extern function not registered as extern")
	}

	caller, ok := prog.FuncByDecl(callerFn)
	if !ok {
		t.Fatalf("caller function not registered")
	}
	var callInstr ir.Index
	for _, blk := range caller.Blocks() {
		for _, instr := range caller.Instructions(blk) {
			if caller.InstrHeader(instr).Opcode == ir.OpCall {
				callInstr = instr
			}
		}
	}
	if !callInstr.Valid() {
		t.Fatalf("no call instruction emitted for the call to the extern function")
	}
	args := caller.InstrArgs(callInstr)
	if len(args) != 2 {
		t.Fatalf("want callee + 1 argument operand, got %d", len(args))
	}
	wantCallee, ok := prog.FuncIndexByDecl(externFn)
	if !ok {
		t.Fatalf("extern function has no callable index")
	}
	if args[0] != wantCallee {
		t.Fatalf("call callee = %v, want %v", args[0], wantCallee)
	}
}

// syscall declares a bodyless function tagged `@extern(syscall, 60)` and a
// caller that invokes it, checking that the call site lowers to a dedicated
// OpSyscall carrying the immediate 60 rather than an OpCall referencing a
// Program function — the distinction a hello-world syscall-exit program hinges on to
// tell the `linux` branch's `@extern(syscall, ...)` apart from the
// `windows` branch's `@extern(module, ...)`.
func TestCallToSyscallFunctionEmitsDedicatedOpcode(t *testing.T) {
	s, ids, d, sink, an, prog := setup()

	i32 := s.Basic(ast.BasicI32)
	exitFn := s.NewFuncDecl(ast.Position{}, ids.GetOrIntern("exit_group"),
		[]ast.Index{s.NewParamDecl(ast.Position{}, ids.GetOrIntern("code"), i32, ast.Undefined, false)},
		s.Basic(ast.BasicVoid), ast.Undefined, nil, false)
	attrs := []ast.Attribute{{
		Name:   ident.Extern,
		Args:   s.NewItems(s.NewIdentUse(ast.Position{}, ident.Syscall), s.NewIntLiteral(ast.Position{}, 60)),
		Effect: ast.EffectExternSyscall,
	}}
	s.SetAttrInfo(exitFn, &ast.AttributeInfo{Attrs: attrs, EffectMask: ast.EffectExternSyscall})

	call := s.NewCallExpr(ast.Position{}, s.NewIdentUse(ast.Position{}, ids.GetOrIntern("exit_group")),
		[]ast.Index{s.NewIntLiteral(ast.Position{}, 0)})
	callerBody := s.NewBlockStmt(ast.Position{}, []ast.Index{s.NewExprStmt(ast.Position{}, call)})
	callerFn := s.NewFuncDecl(ast.Position{}, ids.GetOrIntern("main"), nil, s.Basic(ast.BasicVoid), callerBody, nil, false)

	mod := s.NewModule(ast.Position{}, ids.GetOrIntern("syscall_mod"), []ast.Index{exitFn, callerFn})
	an.RegisterModule(mod)

	if !d.Require(callerFn, ast.PropIrGen) {
		t.Fatalf("PropIrGen failed: %v", sink.Reports())
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports())
	}

	if _, ok := prog.FuncByDecl(exitFn); ok {
		t.Fatalf("a syscall declaration must never become a Program function (no external reference)")
	}

	caller, ok := prog.FuncByDecl(callerFn)
	if !ok {
		t.Fatalf("caller function not registered")
	}
	var syscallInstr ir.Index
	for _, blk := range caller.Blocks() {
		for _, instr := range caller.Instructions(blk) {
			switch caller.InstrHeader(instr).Opcode {
			case ir.OpCall:
				t.Fatalf("syscall callee must not lower to OpCall")
			case ir.OpSyscall:
				syscallInstr = instr
			}
		}
	}
	if !syscallInstr.Valid() {
		t.Fatalf("no OpSyscall instruction emitted for the call to the syscall-tagged function")
	}
	args := caller.InstrArgs(syscallInstr)
	if len(args) != 2 {
		t.Fatalf("want immediate + 1 argument operand, got %d", len(args))
	}
	if args[0].Kind() != ir.KindConst || caller.Const(args[0]).Int != 60 {
		t.Fatalf("syscall immediate operand = %v, want constant 60", args[0])
	}
}
