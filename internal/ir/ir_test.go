package ir

import (
	"testing"

	"github.com/cwbudde/corec/internal/ast"
)

func TestNewFunctionEntryExitInvariant(t *testing.T) {
	f := NewFunction(ast.Undefined, "main")
	if f.Entry() != New(KindBasicBlock, 0) {
		t.Fatalf("entry block must be index 0")
	}
	if f.Exit() != New(KindBasicBlock, 1) {
		t.Fatalf("exit block must be index 1")
	}
	if !f.Block(f.Entry()).Empty() {
		t.Fatalf("fresh entry block should be empty")
	}
}

func TestEmitInstrWiresResultAndUsers(t *testing.T) {
	f := NewFunction(ast.Undefined, "f")
	i32 := ast.Index(0) // placeholder type handle, not dereferenced here
	blk := f.AllocBlock()

	c1 := New(KindConst, 0)
	c2 := New(KindConst, 1)
	_, sum := f.EmitInstr(blk, OpAdd, CondNone, i32, true, c1, c2)

	if !sum.Valid() || sum.Kind() != KindVReg {
		t.Fatalf("want a vreg result, got %v", sum)
	}
	instrs := f.Instructions(blk)
	if len(instrs) != 1 {
		t.Fatalf("want 1 instruction in block, got %d", len(instrs))
	}
	if got := f.InstrResult(instrs[0]); got != sum {
		t.Fatalf("InstrResult mismatch: got %v want %v", got, sum)
	}
	args := f.InstrArgs(instrs[0])
	if len(args) != 2 || args[0] != c1 || args[1] != c2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBlockInstructionListOrder(t *testing.T) {
	f := NewFunction(ast.Undefined, "f")
	blk := f.AllocBlock()
	var ids []Index
	for i := 0; i < 3; i++ {
		instr, _ := f.EmitInstr(blk, OpStore, CondNone, ast.Undefined, false)
		ids = append(ids, instr)
	}
	got := f.Instructions(blk)
	if len(got) != 3 {
		t.Fatalf("want 3 instructions, got %d", len(got))
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("instruction order mismatch at %d: got %v want %v", i, got[i], ids[i])
		}
	}
}

func TestMarkVRegRemovedTombstone(t *testing.T) {
	f := NewFunction(ast.Undefined, "f")
	blk := f.AllocBlock()
	_, v := f.EmitInstr(blk, OpAdd, CondNone, ast.Undefined, true, New(KindConst, 0), New(KindConst, 1))
	if f.VReg(v).Removed() {
		t.Fatalf("fresh vreg should not be removed")
	}
	f.MarkVRegRemoved(v)
	if !f.VReg(v).Removed() {
		t.Fatalf("vreg should be tombstoned after MarkVRegRemoved")
	}
	if f.RemovedVRegCount() != 1 {
		t.Fatalf("want removed count 1, got %d", f.RemovedVRegCount())
	}
}
