package ir

import (
	"fmt"
	"strings"
)

// Printer renders a Function (or a whole Program) to a human-readable
// listing for debugging and snapshot tests, in the spirit of a bytecode
// disassembler: one line per instruction, prefixed by its block and a
// result name when it defines one.
type Printer struct {
	prog *Program
	b    strings.Builder
}

// NewPrinter returns a Printer bound to prog, used to resolve callee
// function names for OpCall operands.
func NewPrinter(prog *Program) *Printer {
	return &Printer{prog: prog}
}

// PrintProgram renders every function in the program, in Funcs order.
func (p *Printer) PrintProgram() string {
	p.b.Reset()
	for i, f := range p.prog.Funcs {
		if i > 0 {
			p.b.WriteString("\n")
		}
		p.printFunc(f)
	}
	return p.b.String()
}

// PrintFunction renders a single function's listing.
func (p *Printer) PrintFunction(f *Function) string {
	p.b.Reset()
	p.printFunc(f)
	return p.b.String()
}

func (p *Printer) printFunc(f *Function) {
	kind := "func"
	if f.Extern {
		kind = "extern func"
	}
	fmt.Fprintf(&p.b, "== %s %s [isa=%s vregs=%d phis=%d] ==\n", kind, f.Name, f.ISA, f.VRegCount(), f.PhiCount())
	if f.Extern {
		return
	}
	for _, blk := range f.Blocks() {
		p.printBlock(f, blk)
	}
}

func (p *Printer) printBlock(f *Function, blk Index) {
	b := f.Block(blk)
	fmt.Fprintf(&p.b, "%s:", p.blockName(blk))
	if flags := p.blockFlags(b); flags != "" {
		fmt.Fprintf(&p.b, " ; %s", flags)
	}
	p.b.WriteString("\n")

	for _, phi := range f.Phis(blk) {
		p.printPhi(f, phi)
	}
	for _, instr := range f.Instructions(blk) {
		p.printInstr(f, instr)
	}
}

func (p *Printer) blockFlags(b *BasicBlock) string {
	var flags []string
	if b.HasFlag(BlockSealed) {
		flags = append(flags, "sealed")
	}
	if b.HasFlag(BlockFinished) {
		flags = append(flags, "finished")
	}
	if b.HasFlag(BlockLoopHeader) {
		flags = append(flags, "loop-header")
	}
	return strings.Join(flags, ",")
}

func (p *Printer) printPhi(f *Function, phi Index) {
	ph := f.Phi(phi)
	fmt.Fprintf(&p.b, "  %s = phi", p.valueName(ph.Result))
	if ph.Removed {
		p.b.WriteString(" ; removed")
	}
	if ph.Incomplete {
		p.b.WriteString(" <incomplete>\n")
		return
	}
	args := f.Items(ph.Args)
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = p.operand(f, a)
	}
	fmt.Fprintf(&p.b, "(%s)\n", strings.Join(parts, ", "))
}

func (p *Printer) printInstr(f *Function, instr Index) {
	h := f.InstrHeader(instr)
	args := f.InstrArgs(instr)
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = p.operand(f, a)
	}

	p.b.WriteString("  ")
	if h.HasResult() {
		fmt.Fprintf(&p.b, "%s = ", p.valueName(f.InstrResult(instr)))
	}
	p.b.WriteString(opcodeText(h.Opcode))
	if h.Cond != CondNone {
		fmt.Fprintf(&p.b, ".%s", condText(h.Cond))
	}
	if len(parts) > 0 {
		fmt.Fprintf(&p.b, " %s", strings.Join(parts, ", "))
	}
	p.b.WriteString("\n")
}

func (p *Printer) operand(f *Function, v Index) string {
	switch v.Kind() {
	case KindVReg:
		return p.valueName(v)
	case KindConst, KindConstAggregate, KindConstZero:
		return p.constText(f.Const(v))
	case KindBasicBlock:
		return p.blockName(v)
	case KindFunction:
		if p.prog != nil {
			return p.prog.Function(v).Name
		}
		return fmt.Sprintf("func%d", v.Payload())
	case KindGlobal:
		if p.prog != nil {
			return "@" + p.prog.Global(v).Name
		}
		return fmt.Sprintf("global%d", v.Payload())
	default:
		return fmt.Sprintf("?%d:%d", v.Kind(), v.Payload())
	}
}

func (p *Printer) constText(cv *ConstValue) string {
	switch cv.Kind {
	case ConstInt:
		return fmt.Sprintf("%d", cv.Int)
	case ConstFloat:
		return fmt.Sprintf("%g", cv.Flt)
	case ConstBytes:
		return fmt.Sprintf("%q", cv.Str)
	case ConstZero:
		return "zeroinit"
	case ConstAggregate:
		parts := make([]string, len(cv.Elems))
		for i := range cv.Elems {
			parts[i] = p.constText(&cv.Elems[i])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<const?>"
	}
}

func (p *Printer) valueName(v Index) string {
	return fmt.Sprintf("%%%d", v.Payload())
}

func (p *Printer) blockName(b Index) string {
	return fmt.Sprintf("bb%d", b.Payload())
}

func opcodeText(op Opcode) string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpSDiv:
		return "sdiv"
	case OpUDiv:
		return "udiv"
	case OpSRem:
		return "srem"
	case OpURem:
		return "urem"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpXor:
		return "xor"
	case OpShl:
		return "shl"
	case OpAShr:
		return "ashr"
	case OpLShr:
		return "lshr"
	case OpNeg:
		return "neg"
	case OpNot:
		return "not"
	case OpCmp:
		return "cmp"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpAlloca:
		return "alloca"
	case OpGEP:
		return "gep"
	case OpCast:
		return "cast"
	case OpCall:
		return "call"
	case OpSyscall:
		return "syscall"
	case OpJump:
		return "jump"
	case OpBrIf:
		return "br_if"
	case OpBrCmp:
		return "br_cmp"
	case OpRet:
		return "ret"
	case OpRetVal:
		return "ret_val"
	case OpUnreachable:
		return "unreachable"
	default:
		return "op?"
	}
}

func condText(c Condition) string {
	switch c {
	case CondEqI:
		return "eq"
	case CondNeI:
		return "ne"
	case CondLtS:
		return "lt_s"
	case CondLeS:
		return "le_s"
	case CondGtS:
		return "gt_s"
	case CondGeS:
		return "ge_s"
	case CondLtU:
		return "lt_u"
	case CondLeU:
		return "le_u"
	case CondGtU:
		return "gt_u"
	case CondGeU:
		return "ge_u"
	case CondEqF:
		return "eq_f"
	case CondNeF:
		return "ne_f"
	case CondLtF:
		return "lt_f"
	case CondLeF:
		return "le_f"
	case CondGtF:
		return "gt_f"
	case CondGeF:
		return "ge_f"
	case CondGEPMember:
		return "member"
	case CondGEPIndex:
		return "index"
	default:
		return "?"
	}
}
