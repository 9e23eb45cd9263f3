package irgen

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/ir"
	"github.com/cwbudde/corec/internal/irbuilder"
)

// lowerStmt emits IR for one statement, advancing fg.curBlock as control
// flow requires. It is a no-op once fg.curBlock is unreachable-and-already-
// finished (e.g. code following an unconditional return), matching how a
// straight-line tree walk naturally stops contributing once every path out
// of the current block has a terminator.
func (fg *funcGen) lowerStmt(st ast.Index) {
	if !st.Valid() || fg.fn.Block(fg.curBlock).IsFinished() {
		return
	}
	switch st.Kind() {
	case ast.KindBlockStmt:
		for _, inner := range fg.g.Store.BlockStmts(st) {
			fg.lowerStmt(inner)
		}
	case ast.KindVarDecl:
		fg.lowerLocalVarDecl(st)
	case ast.KindExprStmt:
		fg.lowerExpr(fg.g.Store.ExprStmtExpr(st))
	case ast.KindAssignStmt:
		fg.lowerAssignStmt(st)
	case ast.KindIfStmt:
		fg.lowerIf(st)
	case ast.KindWhileStmt:
		fg.lowerWhile(st)
	case ast.KindForStmt:
		fg.lowerFor(st)
	case ast.KindReturnStmt:
		fg.lowerReturn(st)
	case ast.KindBreakStmt:
		if l, ok := fg.currentLoop(); ok {
			fg.b.AddJumpToLabel(fg.curBlock, l.brk)
		}
	case ast.KindContinueStmt:
		if l, ok := fg.currentLoop(); ok {
			fg.b.AddJumpToLabel(fg.curBlock, l.cont)
		}
	}
}

// lowerLocalVarDecl emits a local's initializer and binds it: a plain SSA
// definition for scalar locals, an alloca for aggregates (struct/union/
// array). bindParams splits parameters differently, on isPassByPtr
// (aggregates over 8 bytes).
func (fg *funcGen) lowerLocalVarDecl(decl ast.Index) {
	typ := fg.g.Store.Node(decl).Type
	if isAggregate(fg.g.Store, typ) {
		_, slot := fg.fn.EmitInstr(fg.curBlock, ir.OpAlloca, ir.CondNone, typ, true)
		fg.setAddr(decl, slot)
		if init := fg.g.Store.VarInit(decl); init.Valid() {
			val := fg.rvalue(fg.lowerExpr(init))
			fg.fn.EmitInstr(fg.curBlock, ir.OpStore, ir.CondNone, ast.Undefined, false, slot, val)
		}
		return
	}
	var val ir.Index
	if init := fg.g.Store.VarInit(decl); init.Valid() {
		val = fg.rvalue(fg.lowerExpr(init))
	} else {
		val = fg.fn.AddConst(ir.ConstValue{Type: typ, Kind: ir.ConstZero})
	}
	fg.b.WriteVariable(fg.curBlock, decl, val)
}

func (fg *funcGen) lowerAssignStmt(st ast.Index) {
	lhs := fg.g.Store.AssignLHS(st)
	rhs := fg.g.Store.AssignRHS(st)
	val := fg.rvalue(fg.lowerExpr(rhs))
	fg.storeInto(lhs, val)
}

// storeInto assigns val to the storage lhs denotes: a plain variable
// (param/local) keyed by its declaration, or an address produced by
// indexing/member/deref lowering. An IdentUse target is resolved through
// Store.Resolved first — the same indirection lowerIdentUse reads through —
// so a write and every prior/later read of the same variable share one key
// regardless of which IdentUse occurrence performed them.
func (fg *funcGen) storeInto(lhs ast.Index, val ir.Index) {
	target := lhs
	if lhs.Kind() == ast.KindIdentUse {
		target = fg.g.Store.Resolved(lhs)
	}
	if target.Kind() == ast.KindVarDecl || target.Kind() == ast.KindParamDecl {
		if addr, ok := fg.getAddr(target); ok {
			fg.fn.EmitInstr(fg.curBlock, ir.OpStore, ir.CondNone, ast.Undefined, false, addr, val)
			return
		}
		fg.b.WriteVariable(fg.curBlock, target, val)
		return
	}
	ev := fg.lowerExpr(lhs)
	fg.fn.EmitInstr(fg.curBlock, ir.OpStore, ir.CondNone, ast.Undefined, false, ev.Addr, val)
}

// lowerIf lowers `if (cond) then [else elseStmt]` by branching to freshly
// allocated then/else blocks and merging through a deferred IrLabel, which
// collapses to zero extra blocks when one arm falls straight through and
// to a fresh unreachable block (enterLabelBlock) when both arms terminate.
func (fg *funcGen) lowerIf(st ast.Index) {
	cond := fg.rvalue(fg.lowerExpr(fg.g.Store.IfCond(st)))
	thenBlock := fg.fn.AllocBlock()
	elseBlock := fg.fn.AllocBlock()
	fg.b.AddUnaryBranch(fg.curBlock, cond, thenBlock, elseBlock)
	fg.b.SealBlock(thenBlock)
	fg.b.SealBlock(elseBlock)

	merge := &irbuilder.IrLabel{}

	fg.curBlock = thenBlock
	fg.lowerStmt(fg.g.Store.IfThen(st))
	if !fg.fn.Block(fg.curBlock).IsFinished() {
		fg.b.AddJumpToLabel(fg.curBlock, merge)
	}

	fg.curBlock = elseBlock
	if e := fg.g.Store.IfElse(st); e.Valid() {
		fg.lowerStmt(e)
	}
	if !fg.fn.Block(fg.curBlock).IsFinished() {
		fg.b.AddJumpToLabel(fg.curBlock, merge)
	}

	fg.enterLabelBlock(merge)
}

// enterLabelBlock makes merge's resolved block (or, if it was never
// jumped to, a fresh unreachable block) fg.curBlock, sealing it first.
func (fg *funcGen) enterLabelBlock(l *irbuilder.IrLabel) {
	if l.NumPreds == 0 {
		next := fg.fn.AllocBlock()
		fg.b.SealBlock(next)
		fg.curBlock = next
		return
	}
	fg.b.SealBlock(l.Block)
	fg.curBlock = l.Block
}

// lowerWhile lowers `while (cond) body`. The header block stays unsealed
// until the back edge from the body is wired, exactly as in the
// irbuilder-level diamond/loop tests: this is what makes trivial-phi
// elimination at the header fire when the loop never actually rewrites the
// variable being read after it.
func (fg *funcGen) lowerWhile(st ast.Index) {
	header := fg.fn.AllocBlock()
	fg.b.AddJump(fg.curBlock, header)

	fg.curBlock = header
	cond := fg.rvalue(fg.lowerExpr(fg.g.Store.WhileCond(st)))

	body := fg.fn.AllocBlock()
	exit := fg.fn.AllocBlock()
	fg.b.AddUnaryBranch(header, cond, body, exit)
	fg.b.SealBlock(body)

	brk := &irbuilder.IrLabel{Block: exit, IsAllocated: true}
	cont := &irbuilder.IrLabel{Block: header, IsAllocated: true}
	fg.pushLoop(brk, cont)

	fg.curBlock = body
	fg.lowerStmt(fg.g.Store.WhileBody(st))
	if !fg.fn.Block(fg.curBlock).IsFinished() {
		fg.b.AddJump(fg.curBlock, header)
	}
	fg.popLoop()

	fg.b.SealBlock(header)
	fg.b.SealBlock(exit)
	fg.curBlock = exit
}

// lowerFor lowers `for (init; cond; post) body`, with `continue` routed
// through the post block so post always runs before the condition is
// re-tested, matching C-family for-loop semantics.
func (fg *funcGen) lowerFor(st ast.Index) {
	if init := fg.g.Store.ForInit(st); init.Valid() {
		fg.lowerStmt(init)
	}

	header := fg.fn.AllocBlock()
	fg.b.AddJump(fg.curBlock, header)

	fg.curBlock = header
	var cond ir.Index
	if c := fg.g.Store.ForCond(st); c.Valid() {
		cond = fg.rvalue(fg.lowerExpr(c))
	} else {
		cond = fg.fn.AddConst(ir.ConstValue{Type: fg.g.Store.Basic(ast.BasicBool), Kind: ir.ConstInt, Int: 1})
	}

	body := fg.fn.AllocBlock()
	post := fg.fn.AllocBlock()
	exit := fg.fn.AllocBlock()
	fg.b.AddUnaryBranch(header, cond, body, exit)
	fg.b.SealBlock(body)

	brk := &irbuilder.IrLabel{Block: exit, IsAllocated: true}
	cont := &irbuilder.IrLabel{Block: post, IsAllocated: true}
	fg.pushLoop(brk, cont)

	fg.curBlock = body
	fg.lowerStmt(fg.g.Store.ForBody(st))
	if !fg.fn.Block(fg.curBlock).IsFinished() {
		fg.b.AddJump(fg.curBlock, post)
	}
	fg.popLoop()

	fg.b.SealBlock(post)
	fg.curBlock = post
	if p := fg.g.Store.ForPost(st); p.Valid() {
		fg.lowerExpr(p)
	}
	fg.b.AddJump(fg.curBlock, header)

	fg.b.SealBlock(header)
	fg.b.SealBlock(exit)
	fg.curBlock = exit
}

// lowerReturn writes the return value (if any) to the function's return
// variable and jumps straight to the fixed exit block; finishFunction
// emits the actual ret/retval instruction once every path has converged
// there.
func (fg *funcGen) lowerReturn(st ast.Index) {
	if e := fg.g.Store.ReturnExpr(st); e.Valid() {
		val := fg.rvalue(fg.lowerExpr(e))
		fg.b.WriteVariable(fg.curBlock, fg.retVarKey(), val)
	}
	fg.b.AddJump(fg.curBlock, fg.fn.Exit())
}
