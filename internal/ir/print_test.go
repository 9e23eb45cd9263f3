package ir

import (
	"testing"

	"github.com/cwbudde/corec/internal/ast"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestPrintDiamond builds the diamond-shaped function from scratch at the IR
// level (no parser/sema involved) and snapshots its listing, so a future
// change to instruction/phi text formatting shows up as a reviewable diff.
func TestPrintDiamond(t *testing.T) {
	i32 := ast.Index(0) // placeholder type handle; Printer never dereferences it

	f := NewFunction(ast.Undefined, "diamond")
	entry := f.Entry()
	thenB := f.AllocBlock()
	elseB := f.AllocBlock()
	exit := f.Exit()

	a := f.AllocVReg(i32)
	b := f.AllocVReg(i32)

	f.AppendSucc(entry, thenB)
	f.AppendSucc(entry, elseB)
	_, cmp := f.EmitInstr(entry, OpCmp, CondGtS, i32, true, a, b)
	f.EmitInstr(entry, OpBrIf, CondNone, ast.Undefined, false, cmp)
	f.Block(entry).SetFlag(BlockSealed)
	f.Block(entry).SetFlag(BlockFinished)

	f.AppendSucc(thenB, exit)
	f.EmitInstr(thenB, OpJump, CondNone, ast.Undefined, false)
	f.Block(thenB).SetFlag(BlockSealed)
	f.Block(thenB).SetFlag(BlockFinished)

	f.AppendSucc(elseB, exit)
	f.EmitInstr(elseB, OpJump, CondNone, ast.Undefined, false)
	f.Block(elseB).SetFlag(BlockSealed)
	f.Block(elseB).SetFlag(BlockFinished)

	f.AppendPred(exit, thenB)
	f.AppendPred(exit, elseB)
	phi := f.AllocPhi(exit, ast.Undefined, i32)
	f.SetPhiArgs(phi, []Index{a, b})
	f.EmitInstr(exit, OpRetVal, CondNone, ast.Undefined, false, f.Phi(phi).Result)
	f.Block(exit).SetFlag(BlockSealed)
	f.Block(exit).SetFlag(BlockFinished)

	prog := NewProgram()
	prog.AddFunction(f)

	got := NewPrinter(prog).PrintFunction(f)
	snaps.MatchSnapshot(t, got)
}

// TestPrintExternFunction covers the no-body listing shape for a function
// generated from an @extern declaration.
func TestPrintExternFunction(t *testing.T) {
	f := NewExternFunction(ast.Undefined, "helper")
	prog := NewProgram()
	prog.AddFunction(f)

	got := NewPrinter(prog).PrintFunction(f)
	snaps.MatchSnapshot(t, got)
}
