package irgen

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/ir"
)

// lowerExpr emits IR for one expression and returns how to obtain its
// value: already materialized (ExprValue.Val) or address-backed
// (ExprValue.Addr), matching the usual lvalue/value split.
func (fg *funcGen) lowerExpr(node ast.Index) ExprValue {
	switch node.Kind() {
	case ast.KindIntLiteral:
		typ := fg.g.Store.Node(node).Type
		return value(fg.fn.AddConst(ir.ConstValue{Type: typ, Kind: ir.ConstInt, Int: fg.g.Store.IntLiteralValue(node)}))
	case ast.KindFloatLiteral:
		typ := fg.g.Store.Node(node).Type
		return value(fg.fn.AddConst(ir.ConstValue{Type: typ, Kind: ir.ConstFloat, Flt: fg.g.Store.FloatLiteralValue(node)}))
	case ast.KindBoolLiteral:
		i := int64(0)
		if fg.g.Store.BoolLiteralValue(node) {
			i = 1
		}
		return value(fg.fn.AddConst(ir.ConstValue{Type: fg.g.Store.Node(node).Type, Kind: ir.ConstInt, Int: i}))
	case ast.KindStringLiteral:
		return value(fg.g.internString(fg.g.Store, fg.g.Store.StringLiteralValue(node)))
	case ast.KindNullLiteral:
		return value(fg.fn.AddConst(ir.ConstValue{Type: fg.g.Store.Node(node).Type, Kind: ir.ConstZero}))
	case ast.KindIdentUse:
		return fg.lowerIdentUse(node)
	case ast.KindBinaryExpr:
		return fg.lowerBinary(node)
	case ast.KindUnaryExpr:
		return fg.lowerUnary(node)
	case ast.KindCallExpr:
		return fg.lowerCall(node)
	case ast.KindIndexExpr:
		return fg.lowerIndex(node)
	case ast.KindMemberExpr:
		return fg.lowerMember(node)
	case ast.KindCastExpr:
		return fg.lowerCast(node)
	case ast.KindAddrOfExpr:
		return fg.lowerAddrOf(node)
	case ast.KindDerefExpr:
		return fg.lowerDeref(node)
	case ast.KindAssignExpr:
		return fg.lowerAssignExpr(node)
	case ast.KindArrayLiteral:
		return fg.lowerArrayLiteral(node)
	}
	return value(ir.Undefined)
}

// lowerIdentUse reads a resolved name use. The stable key shared by every
// reference to the same declaration is Store.Resolved(node) — the
// declaration handle itself — never node, since two distinct IdentUse
// handles resolved to the same variable are otherwise unrelated Index
// values (name resolution's collapse records the target, it does not unify handles).
func (fg *funcGen) lowerIdentUse(node ast.Index) ExprValue {
	target := fg.g.Store.Resolved(node)
	if target == node {
		// Never resolved: only the synthetic `this` takes this path, and
		// member-function binding is not modeled; fall back to a typed
		// undef so callers still get a value of the right shape.
		return value(fg.fn.AddConst(ir.ConstValue{Type: fg.g.Store.Node(node).Type, Kind: ir.ConstZero}))
	}
	switch target.Kind() {
	case ast.KindVarDecl, ast.KindParamDecl:
		if addr, ok := fg.getAddr(target); ok {
			return address(addr, fg.g.Store.Node(target).Type)
		}
		return value(fg.b.ReadVariable(fg.curBlock, target, fg.g.Store.Node(target).Type))
	case ast.KindEnumMember:
		if v := fg.g.Store.EnumMemberValue(target); v.Valid() {
			return fg.lowerExpr(v)
		}
		return value(fg.fn.AddConst(ir.ConstValue{Type: fg.g.Store.Node(target).Type, Kind: ir.ConstZero}))
	case ast.KindEnumConstDecl:
		if v := fg.g.Store.EnumConstValue(target); v.Valid() {
			return fg.lowerExpr(v)
		}
		return value(fg.fn.AddConst(ir.ConstValue{Type: fg.g.Store.Node(target).Type, Kind: ir.ConstZero}))
	case ast.KindFuncDecl:
		fg.g.Driver.Require(target, ast.PropIrGen)
		if idx, ok := fg.g.Program.FuncIndexByDecl(target); ok {
			return value(idx)
		}
		return value(ir.Undefined)
	}
	// Resolution collapsed node onto a compound expression rather than a
	// plain declaration (implicit `this.field`, a paren-free call): lower
	// that expression directly.
	return fg.lowerExpr(target)
}

func (fg *funcGen) lowerBinary(node ast.Index) ExprValue {
	op := fg.g.Store.BinaryOperator(node)
	if op == ast.OpLogAnd || op == ast.OpLogOr {
		return fg.lowerShortCircuit(node, op)
	}
	lhs := fg.rvalue(fg.lowerExpr(fg.g.Store.BinaryLHS(node)))
	rhs := fg.rvalue(fg.lowerExpr(fg.g.Store.BinaryRHS(node)))
	typ := fg.g.Store.Node(node).Type

	if cond, ok := compareCond(op); ok {
		_, res := fg.fn.EmitInstr(fg.curBlock, ir.OpCmp, cond, typ, true, lhs, rhs)
		return value(res)
	}
	_, res := fg.fn.EmitInstr(fg.curBlock, arithOpcode(op), ir.CondNone, typ, true, lhs, rhs)
	return value(res)
}

func compareCond(op ast.BinaryOp) (ir.Condition, bool) {
	switch op {
	case ast.OpEq:
		return ir.CondEqI, true
	case ast.OpNe:
		return ir.CondNeI, true
	case ast.OpLt:
		return ir.CondLtS, true
	case ast.OpLe:
		return ir.CondLeS, true
	case ast.OpGt:
		return ir.CondGtS, true
	case ast.OpGe:
		return ir.CondGeS, true
	}
	return ir.CondNone, false
}

func arithOpcode(op ast.BinaryOp) ir.Opcode {
	switch op {
	case ast.OpAdd:
		return ir.OpAdd
	case ast.OpSub:
		return ir.OpSub
	case ast.OpMul:
		return ir.OpMul
	case ast.OpDiv:
		return ir.OpSDiv
	case ast.OpMod:
		return ir.OpSRem
	case ast.OpShl:
		return ir.OpShl
	case ast.OpShr:
		return ir.OpAShr
	case ast.OpBitAnd:
		return ir.OpAnd
	case ast.OpBitOr:
		return ir.OpOr
	case ast.OpBitXor:
		return ir.OpXor
	}
	return ir.OpInvalid
}

// lowerShortCircuit lowers `&&`/`||` by branching around the right operand
// entirely when it cannot affect the result, merging the two arrival paths
// by writing the result to a synthetic SSA variable keyed on node's own
// handle (unique to this one occurrence) and reading it back — reusing
// the Braun machinery's phi insertion instead of building one by hand.
func (fg *funcGen) lowerShortCircuit(node ast.Index, op ast.BinaryOp) ExprValue {
	lhs := fg.rvalue(fg.lowerExpr(fg.g.Store.BinaryLHS(node)))
	rhsBlock := fg.fn.AllocBlock()
	shortBlock := fg.fn.AllocBlock()
	boolT := fg.g.Store.Basic(ast.BasicBool)

	if op == ast.OpLogAnd {
		fg.b.AddUnaryBranch(fg.curBlock, lhs, rhsBlock, shortBlock)
	} else {
		fg.b.AddUnaryBranch(fg.curBlock, lhs, shortBlock, rhsBlock)
	}
	fg.b.SealBlock(rhsBlock)
	fg.b.SealBlock(shortBlock)

	fg.curBlock = shortBlock
	short := fg.fn.AddConst(ir.ConstValue{Type: boolT, Kind: ir.ConstInt, Int: boolAsShortCircuit(op)})
	fg.b.WriteVariable(shortBlock, node, short)

	fg.curBlock = rhsBlock
	rhs := fg.rvalue(fg.lowerExpr(fg.g.Store.BinaryRHS(node)))
	fg.b.WriteVariable(fg.curBlock, node, rhs)
	rhsEnd := fg.curBlock

	merge := fg.fn.AllocBlock()
	fg.b.AddJump(rhsEnd, merge)
	fg.b.AddJump(shortBlock, merge)
	fg.b.SealBlock(merge)
	fg.curBlock = merge

	return value(fg.b.ReadVariable(merge, node, boolT))
}

func boolAsShortCircuit(op ast.BinaryOp) int64 {
	if op == ast.OpLogAnd {
		return 0
	}
	return 1
}

func (fg *funcGen) lowerUnary(node ast.Index) ExprValue {
	operand := fg.rvalue(fg.lowerExpr(fg.g.Store.UnaryOperand(node)))
	typ := fg.g.Store.Node(node).Type
	var op ir.Opcode
	switch fg.g.Store.UnaryOperator(node) {
	case ast.OpNeg:
		op = ir.OpNeg
	case ast.OpNot:
		op = ir.OpNot
	case ast.OpBitNot:
		op = ir.OpNot
	case ast.OpPos:
		return value(operand)
	}
	_, res := fg.fn.EmitInstr(fg.curBlock, op, ir.CondNone, typ, true, operand)
	return value(res)
}

// lowerCall lowers both direct calls to a known function and indirect
// calls through a function-pointer value; isPassByPtr arguments are
// materialized to a stack slot and passed by address. A callee
// declared `@extern(syscall, N)` is lowered to a dedicated OpSyscall instead,
// since it has no callable IR value of its own and must not pull in the
// external-reference machinery `@extern(module, ...)` callees do.
func (fg *funcGen) lowerCall(node ast.Index) ExprValue {
	calleeExpr := fg.g.Store.CallCallee(node)
	if num, ok := fg.syscallNumber(calleeExpr); ok {
		return fg.lowerSyscall(node, num)
	}
	callee := fg.rvalue(fg.lowerExpr(calleeExpr))
	args := fg.g.Store.CallArgs(node)
	operands := make([]ir.Index, 0, len(args)+1)
	operands = append(operands, callee)
	for _, a := range args {
		operands = append(operands, fg.lowerCallArg(a))
	}
	typ := fg.g.Store.Node(node).Type
	hasResult := !isVoidRet(fg.g.Store, typ)
	_, res := fg.fn.EmitInstr(fg.curBlock, ir.OpCall, ir.CondNone, typ, hasResult, operands...)
	return value(res)
}

// syscallNumber reports the immediate attached via `@extern(syscall, N)` to
// calleeExpr's resolved declaration, if calleeExpr is a direct reference to
// one.
func (fg *funcGen) syscallNumber(calleeExpr ast.Index) (int64, bool) {
	if calleeExpr.Kind() != ast.KindIdentUse {
		return 0, false
	}
	target := fg.g.Store.Resolved(calleeExpr)
	if target.Kind() != ast.KindFuncDecl {
		return 0, false
	}
	return fg.g.Store.Node(target).AttrInfo.ExternSyscall(fg.g.Store)
}

// lowerSyscall emits the immediate syscall number as the instruction's first
// operand followed by the ordinary call arguments; no KindFunction operand
// is ever materialized for a syscall callee.
func (fg *funcGen) lowerSyscall(node ast.Index, number int64) ExprValue {
	args := fg.g.Store.CallArgs(node)
	operands := make([]ir.Index, 0, len(args)+1)
	numType := fg.g.Store.Basic(ast.BasicI64)
	operands = append(operands, fg.fn.AddConst(ir.ConstValue{Type: numType, Kind: ir.ConstInt, Int: number}))
	for _, a := range args {
		operands = append(operands, fg.lowerCallArg(a))
	}
	typ := fg.g.Store.Node(node).Type
	hasResult := !isVoidRet(fg.g.Store, typ)
	_, res := fg.fn.EmitInstr(fg.curBlock, ir.OpSyscall, ir.CondNone, typ, hasResult, operands...)
	return value(res)
}

func (fg *funcGen) lowerCallArg(arg ast.Index) ir.Index {
	typ := fg.g.Store.Node(arg).Type
	ev := fg.lowerExpr(arg)
	if isPassByPtr(fg.g.Store, typ) {
		if ev.Addr.Valid() {
			return ev.Addr
		}
		_, slot := fg.fn.EmitInstr(fg.curBlock, ir.OpAlloca, ir.CondNone, typ, true)
		fg.fn.EmitInstr(fg.curBlock, ir.OpStore, ir.CondNone, ast.Undefined, false, slot, fg.rvalue(ev))
		return slot
	}
	return fg.rvalue(ev)
}

// lowerIndex computes `base[index]`'s address via OpGEP and leaves
// dereferencing to rvalue, so an index expression used as an assignment
// target reuses the same address.
func (fg *funcGen) lowerIndex(node ast.Index) ExprValue {
	baseEv := fg.lowerExpr(fg.g.Store.IndexBase(node))
	idx := fg.rvalue(fg.lowerExpr(fg.g.Store.IndexIndex(node)))
	elemType := fg.g.Store.Node(node).Type
	baseAddr := fg.addressOf(baseEv)
	_, addr := fg.fn.EmitInstr(fg.curBlock, ir.OpGEP, ir.CondGEPIndex, elemType, true, baseAddr, idx)
	return address(addr, elemType)
}

// lowerMember computes `base.member`'s address via OpGEP, dereferencing
// base first when accessed through a pointer (MemberNeedsDeref, set by
// type checking).
func (fg *funcGen) lowerMember(node ast.Index) ExprValue {
	baseEv := fg.lowerExpr(fg.g.Store.MemberBase(node))
	var baseAddr ir.Index
	if fg.g.Store.MemberNeedsDeref(node) {
		baseAddr = fg.rvalue(baseEv)
	} else {
		baseAddr = fg.addressOf(baseEv)
	}
	elemType := fg.g.Store.Node(node).Type
	_, addr := fg.fn.EmitInstr(fg.curBlock, ir.OpGEP, ir.CondGEPMember, elemType, true, baseAddr)
	return address(addr, elemType)
}

// addressOf forces an ExprValue that is already a plain SSA value
// (a by-pointer aggregate parameter bound directly to an address, or a
// loaded scalar) into something OpGEP can walk from.
func (fg *funcGen) addressOf(ev ExprValue) ir.Index {
	if ev.Addr.Valid() {
		return ev.Addr
	}
	return ev.Val
}

func (fg *funcGen) lowerCast(node ast.Index) ExprValue {
	operand := fg.rvalue(fg.lowerExpr(fg.g.Store.CastOperand(node)))
	typ := fg.g.Store.Node(node).Type
	_, res := fg.fn.EmitInstr(fg.curBlock, ir.OpCast, ir.CondNone, typ, true, operand)
	return value(res)
}

func (fg *funcGen) lowerAddrOf(node ast.Index) ExprValue {
	operand := fg.lowerExpr(fg.g.Store.AddrOfOperand(node))
	return value(fg.addressOf(operand))
}

func (fg *funcGen) lowerDeref(node ast.Index) ExprValue {
	ptr := fg.rvalue(fg.lowerExpr(fg.g.Store.DerefOperand(node)))
	elemType := fg.g.Store.Node(node).Type
	return address(ptr, elemType)
}

func (fg *funcGen) lowerAssignExpr(node ast.Index) ExprValue {
	lhs := fg.g.Store.AssignExprLHS(node)
	rhs := fg.g.Store.AssignExprRHS(node)
	val := fg.rvalue(fg.lowerExpr(rhs))
	fg.storeInto(lhs, val)
	return value(val)
}

func (fg *funcGen) lowerArrayLiteral(node ast.Index) ExprValue {
	typ := fg.g.Store.Node(node).Type
	elems := fg.g.Store.ArrayLiteralElems(node)
	_, slot := fg.fn.EmitInstr(fg.curBlock, ir.OpAlloca, ir.CondNone, typ, true)
	elemType := fg.g.Store.ArrayElem(typ)
	for i, e := range elems {
		v := fg.rvalue(fg.lowerExpr(e))
		idx := fg.fn.AddConst(ir.ConstValue{Type: fg.g.Store.Basic(ast.BasicI64), Kind: ir.ConstInt, Int: int64(i)})
		_, addr := fg.fn.EmitInstr(fg.curBlock, ir.OpGEP, ir.CondGEPIndex, elemType, true, slot, idx)
		fg.fn.EmitInstr(fg.curBlock, ir.OpStore, ir.CondNone, ast.Undefined, false, addr, v)
	}
	return address(slot, typ)
}
