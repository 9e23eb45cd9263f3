package irbuilder

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/ir"
)

// AddBlockTarget wires a from→to CFG edge, appending to's predecessor list
// and from's successor list. to must not yet be sealed: sealing
// completes every phi against a frozen predecessor count, so a target added
// afterward would leave those phis short an operand.
func (b *Builder) AddBlockTarget(from, to ir.Index) {
	if b.F.Block(to).IsSealed() {
		b.fault(diag.IrbSealedTarget, "cannot add a predecessor to an already-sealed block")
		return
	}
	b.F.AppendSucc(from, to)
	b.F.AppendPred(to, from)
}

func (b *Builder) fault(code diag.Code, msg string) {
	b.Sink.Add(&diag.Report{Code: code, Phase: diag.PhaseIRBuild, Message: msg, Severity: diag.SeverityFatal})
}

// finish asserts !block.IsFinished, marks it finished, and is shared by
// every branch helper below.
func (b *Builder) finish(block ir.Index) bool {
	blk := b.F.Block(block)
	if blk.IsFinished() {
		b.fault(diag.IrbDoubleFinish, "block finished twice")
		return false
	}
	blk.SetFlag(ir.BlockFinished)
	return true
}

// AddJump emits an unconditional jump from block to target and wires the
// CFG edge.
func (b *Builder) AddJump(block, target ir.Index) {
	if !b.finish(block) {
		return
	}
	b.F.EmitInstr(block, ir.OpJump, ir.CondNone, ast.Undefined, false)
	b.AddBlockTarget(block, target)
}

// AddUnaryBranch emits a branch testing cond's truthiness, taking thenTarget
// if truthy and elseTarget otherwise.
func (b *Builder) AddUnaryBranch(block ir.Index, cond ir.Index, thenTarget, elseTarget ir.Index) {
	if !b.finish(block) {
		return
	}
	b.F.EmitInstr(block, ir.OpBrIf, ir.CondNone, ast.Undefined, false, cond)
	b.AddBlockTarget(block, thenTarget)
	b.AddBlockTarget(block, elseTarget)
}

// AddBinBranch emits a fused compare-and-branch on lhs/rhs without
// materializing a separate comparison instruction.
func (b *Builder) AddBinBranch(block ir.Index, condOp ir.Condition, lhs, rhs ir.Index, thenTarget, elseTarget ir.Index) {
	if !b.finish(block) {
		return
	}
	b.F.EmitInstr(block, ir.OpBrCmp, condOp, ast.Undefined, false, lhs, rhs)
	b.AddBlockTarget(block, thenTarget)
	b.AddBlockTarget(block, elseTarget)
}

// AddReturn emits a terminator returning value (or, if !value.Valid(), a
// bare void return). A noreturn function's exit uses AddUnreachable instead.
func (b *Builder) AddReturn(block ir.Index, value ir.Index) {
	if !b.finish(block) {
		return
	}
	if !value.Valid() {
		b.F.EmitInstr(block, ir.OpRet, ir.CondNone, ast.Undefined, false)
		return
	}
	b.F.EmitInstr(block, ir.OpRetVal, ir.CondNone, ast.Undefined, false, value)
}

// AddUnreachable emits the terminator for a noreturn function's exit block.
func (b *Builder) AddUnreachable(block ir.Index) {
	if !b.finish(block) {
		return
	}
	b.F.EmitInstr(block, ir.OpUnreachable, ir.CondNone, ast.Undefined, false)
}
