package irgen

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/ir"
	"github.com/cwbudde/corec/internal/irbuilder"
)

// ExprValue is what lowering an expression produces: either an already
// materialized SSA value (Val), or an address to load through (Addr) —
// covering both the "pointer-to-value" lvalue and "gvalue backed by
// a global/stack slot" variants uniformly, since both are just "load this
// address to get the value, store through it to assign".
type ExprValue struct {
	Val  ir.Index
	Addr ir.Index
	// AddrType is the pointee type Addr addresses, needed by rvalue/assign
	// to pick the right load/store width; unused when Addr is invalid.
	AddrType ast.Index
}

func value(v ir.Index) ExprValue { return ExprValue{Val: v} }

func address(addr ir.Index, elemType ast.Index) ExprValue {
	return ExprValue{Addr: addr, AddrType: elemType}
}

// funcGen is the per-function lowering state: the in-progress
// ir.Function/Builder pair, the block currently being appended to, the
// declared return type, address bindings for aggregate locals/params (see
// isPassByPtr), and the break/continue label stack for loop bodies.
type funcGen struct {
	g       *Generator
	b       *irbuilder.Builder
	fn      *ir.Function
	decl    ast.Index
	curBlock ir.Index
	retType ast.Index

	addrs map[ast.Index]ir.Index
	loops []loopLabels
}

type loopLabels struct {
	brk, cont *irbuilder.IrLabel
}

func (fg *funcGen) retVarKey() ast.Index { return fg.decl }

func (fg *funcGen) setAddr(decl ast.Index, addr ir.Index) {
	if fg.addrs == nil {
		fg.addrs = make(map[ast.Index]ir.Index)
	}
	fg.addrs[decl] = addr
}

func (fg *funcGen) getAddr(decl ast.Index) (ir.Index, bool) {
	v, ok := fg.addrs[decl]
	return v, ok
}

func (fg *funcGen) pushLoop(brk, cont *irbuilder.IrLabel) {
	fg.loops = append(fg.loops, loopLabels{brk, cont})
}

func (fg *funcGen) popLoop() {
	fg.loops = fg.loops[:len(fg.loops)-1]
}

func (fg *funcGen) currentLoop() (loopLabels, bool) {
	if len(fg.loops) == 0 {
		return loopLabels{}, false
	}
	return fg.loops[len(fg.loops)-1], true
}

// rvalue materializes ev as a usable SSA operand, emitting a load if ev is
// address-backed.
func (fg *funcGen) rvalue(ev ExprValue) ir.Index {
	if ev.Val.Valid() {
		return ev.Val
	}
	instr, result := fg.fn.EmitInstr(fg.curBlock, ir.OpLoad, ir.CondNone, ev.AddrType, true, ev.Addr)
	_ = instr
	return result
}

// assign stores val through ev's address, or (for a plain SSA-promoted
// scalar local/param) records val as its new current definition.
func (fg *funcGen) assign(ev ExprValue, declKey ast.Index, val ir.Index) {
	if ev.Addr.Valid() {
		fg.fn.EmitInstr(fg.curBlock, ir.OpStore, ir.CondNone, ast.Undefined, false, ev.Addr, val)
		return
	}
	fg.b.WriteVariable(fg.curBlock, declKey, val)
}
