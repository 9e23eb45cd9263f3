package ir

import (
	"github.com/cwbudde/corec/internal/arena"
	"github.com/cwbudde/corec/internal/ast"
)

// Function owns the eight parallel arenas: instruction headers,
// instruction payload, next/prev instruction links, phis, virtual
// registers, basic blocks, and the shared small-array pool, plus a
// constants arena. Index 0 of
// Blocks is always the entry block, index 1 is always the exit block —
// NewFunction establishes that invariant before returning.
type Function struct {
	Decl ast.Index // the FuncDecl this IR was generated from
	Name string
	// Extern marks a function that has no body in this translation unit
	// (an @extern declaration): its entry/exit blocks exist only to
	// satisfy NewFunction's invariant and carry no instructions. A call
	// site still resolves it through Program.FuncByDecl to learn its
	// signature.
	Extern bool
	// ISA names the instruction set this function's opcodes are drawn
	// from: "generic" for the target-agnostic set C11 emits, or a
	// backend-specific tag once a lowering pass has run. Nothing in this
	// package or irbuilder interprets it.
	ISA string

	headers arena.Arena[InstrHeader]
	payload arena.Arena[Index]
	next    arena.Arena[Index]
	prev    arena.Arena[Index]
	phis    arena.Arena[Phi]
	vregs   arena.Arena[VReg]
	blocks  arena.Arena[BasicBlock]
	small   arena.SmallArrayPool
	consts  arena.Arena[ConstValue]

	removedVRegs int
}

// AddConst interns a constant operand and returns its tagged handle. Kind
// determines which of KindConst/KindConstAggregate/KindConstZero is used,
// keeping the distinction between plain, aggregate and zero constants
// at the handle level even though all three share one backing arena (see
// the deliberate simplification noted on ConstValue).
func (f *Function) AddConst(cv ConstValue) Index {
	off := f.consts.Append(cv)
	switch cv.Kind {
	case ConstZero:
		return New(KindConstZero, off)
	case ConstAggregate:
		return New(KindConstAggregate, off)
	default:
		return New(KindConst, off)
	}
}

// Const dereferences a constant handle, regardless of which of the three
// const-space Kinds it carries.
func (f *Function) Const(i Index) *ConstValue { return f.consts.Ptr(i.Payload()) }

// NewFunction allocates entry (index 0) and exit (index 1) blocks, wired to
// no one yet, matching the usual "Begin" step: the caller (irbuilder)
// still owns sealing entry and finishing exit per the return-type rule.
func NewFunction(decl ast.Index, name string) *Function {
	f := &Function{Decl: decl, Name: name, ISA: "generic"}
	entry := f.AllocBlock()
	exit := f.AllocBlock()
	if entry != New(KindBasicBlock, 0) || exit != New(KindBasicBlock, 1) {
		panic("ir: entry/exit block invariant violated")
	}
	return f
}

// NewExternFunction registers a function with no body: present in a
// Program so call sites can resolve its signature, never walked by the
// builder.
func NewExternFunction(decl ast.Index, name string) *Function {
	f := NewFunction(decl, name)
	f.Extern = true
	return f
}

// Entry and Exit return the fixed entry/exit block handles.
func (f *Function) Entry() Index { return New(KindBasicBlock, 0) }
func (f *Function) Exit() Index  { return New(KindBasicBlock, 1) }

// AllocBlock appends a fresh, unsealed, unfinished basic block whose
// instruction list sentinel points back to itself (Empty() holds until the
// first EmitInstr).
func (f *Function) AllocBlock() Index {
	off := f.blocks.Len()
	h := New(KindBasicBlock, uint32(off))
	f.blocks.Append(BasicBlock{Self: h, FirstInstr: h, LastInstr: h, PrevBlock: Undefined, NextBlock: Undefined})
	if off > 0 {
		prev := New(KindBasicBlock, uint32(off-1))
		f.Block(prev).NextBlock = h
		f.Block(h).PrevBlock = prev
	}
	return h
}

// Block dereferences a basic-block handle.
func (f *Function) Block(i Index) *BasicBlock { return f.blocks.Ptr(i.Payload()) }

// Phi dereferences a phi handle.
func (f *Function) Phi(i Index) *Phi { return f.phis.Ptr(i.Payload()) }

// VReg dereferences a vreg handle.
func (f *Function) VReg(i Index) *VReg { return f.vregs.Ptr(i.Payload()) }

// InstrHeader dereferences an instruction handle's fixed header.
func (f *Function) InstrHeader(i Index) *InstrHeader { return f.headers.Ptr(i.Payload()) }

// Items returns the small-array contents a SmallArray refers to (e.g. a
// block's Succ or Pred list).
func (f *Function) Items(sa SmallArray) []Index {
	raw := f.small.Get(sa)
	out := make([]Index, len(raw))
	for i, v := range raw {
		out[i] = Index(v)
	}
	return out
}

func (f *Function) newItems(items ...Index) SmallArray {
	raw := make([]uint32, len(items))
	for i, v := range items {
		raw[i] = uint32(v)
	}
	return f.small.Append(raw...)
}

func (f *Function) pushItem(sa SmallArray, v Index) SmallArray {
	return f.small.Push(sa, uint32(v))
}

// AppendSucc/AppendPred append a single successor/predecessor edge to
// block's small-array lists. Bidirectional wiring (both calls together) is
// irbuilder's AddBlockTarget's job; these are the raw per-side primitives.
func (f *Function) AppendSucc(block, succ Index) {
	b := f.Block(block)
	b.Succ = f.pushItem(b.Succ, succ)
}

func (f *Function) AppendPred(block, pred Index) {
	b := f.Block(block)
	b.Pred = f.pushItem(b.Pred, pred)
}

// AllocVReg allocates a fresh virtual register of the given type, with def
// filled in by the caller once the defining instruction/phi handle exists
// (see EmitInstr and AllocPhi, which do this internally).
func (f *Function) AllocVReg(typ ast.Index) Index {
	off := f.vregs.Len()
	h := New(KindVReg, uint32(off))
	f.vregs.Append(VReg{Self: h, Type: typ})
	return h
}

// AllocPhi allocates an incomplete phi for variable in block, threading it
// onto the block's phi list and allocating its result vreg.
func (f *Function) AllocPhi(block Index, variable ast.Index, typ ast.Index) Index {
	off := f.phis.Len()
	h := New(KindPhi, uint32(off))
	result := f.AllocVReg(typ)
	f.VReg(result).Def = h

	b := f.Block(block)
	phi := Phi{Block: block, Result: result, Variable: variable, Incomplete: true, PrevPhi: Undefined, NextPhi: b.FirstPhi}
	f.phis.Append(phi)
	if b.FirstPhi.Valid() {
		f.Phi(b.FirstPhi).PrevPhi = h
	}
	b.FirstPhi = h
	return h
}

// SetPhiArgs installs phi's argument list (parallel, by position, to the
// block's predecessor list) and clears Incomplete.
func (f *Function) SetPhiArgs(phi Index, args []Index) {
	p := f.Phi(phi)
	p.Args = f.newItems(args...)
	p.Incomplete = false
}

// AddUser registers user (an Instruction or Phi handle) as referencing val,
// maintaining the "user set" invariant every value kind carries.
func (f *Function) AddUser(val, user Index) {
	if val.Kind() != KindVReg {
		return // only vregs track users; other value kinds need none
	}
	v := f.VReg(val)
	v.Users = f.pushItem(v.Users, user)
}

// EmitInstr appends an instruction to the end of block's instruction list
// and returns its handle (and, if hasResult, the vreg it defines). The
// payload arena slot layout is [optional_result, arg0, arg1, ...].
func (f *Function) EmitInstr(block Index, op Opcode, cond Condition, resultType ast.Index, hasResult bool, args ...Index) (instr Index, result Index) {
	instrIdx := uint32(f.headers.Len())
	instr = New(KindInstruction, instrIdx)

	n := len(args)
	if hasResult {
		n++
	}
	off := f.payload.Reserve(n)

	var flags InstrFlag = InstrIsGeneric
	if hasResult {
		flags |= InstrHasResult
		result = f.AllocVReg(resultType)
		f.VReg(result).Def = instr
		f.payload.Set(off, result)
		for i, a := range args {
			f.payload.Set(off+1+uint32(i), a)
			f.AddUser(a, instr)
		}
	} else {
		for i, a := range args {
			f.payload.Set(off+uint32(i), a)
			f.AddUser(a, instr)
		}
	}

	f.headers.Append(InstrHeader{
		Opcode: op, Cond: cond, Flags: flags,
		PayloadOffset: off, VariadicCount: uint16(len(args)),
	})
	f.next.Append(Undefined)
	f.prev.Append(Undefined)

	f.appendToBlock(block, instr)
	return instr, result
}

// appendToBlock splices instr onto the tail of block's doubly linked
// instruction list, whose termini point back to the block's own handle.
func (f *Function) appendToBlock(block, instr Index) {
	b := f.Block(block)
	last := b.LastInstr
	f.prev.Set(instr.Payload(), last)
	f.next.Set(instr.Payload(), block)
	if last == b.Self {
		b.FirstInstr = instr
	} else {
		f.next.Set(last.Payload(), instr)
	}
	b.LastInstr = instr
}

// InstrArgs returns an instruction's operand slots, excluding the result
// slot if it has one.
func (f *Function) InstrArgs(instr Index) []Index {
	h := f.InstrHeader(instr)
	off := h.PayloadOffset
	if h.HasResult() {
		off++
	}
	out := make([]Index, h.VariadicCount)
	for i := range out {
		out[i] = f.payload.Get(off + uint32(i))
	}
	return out
}

// InstrResult returns an instruction's result vreg, or Undefined if it has
// none.
func (f *Function) InstrResult(instr Index) Index {
	h := f.InstrHeader(instr)
	if !h.HasResult() {
		return Undefined
	}
	return f.payload.Get(h.PayloadOffset)
}

// Instructions iterates block's instruction list in layout order.
func (f *Function) Instructions(block Index) []Index {
	b := f.Block(block)
	var out []Index
	for i := b.FirstInstr; i != b.Self && i.Valid(); i = f.next.Get(i.Payload()) {
		out = append(out, i)
	}
	return out
}

// Phis iterates block's phi list.
func (f *Function) Phis(block Index) []Index {
	var out []Index
	for p := f.Block(block).FirstPhi; p.Valid(); p = f.Phi(p).NextPhi {
		out = append(out, p)
	}
	return out
}

// Blocks iterates every allocated block in layout order starting at entry,
// following NextBlock links.
func (f *Function) Blocks() []Index {
	var out []Index
	for b := f.Entry(); b.Valid(); b = f.Block(b).NextBlock {
		out = append(out, b)
	}
	return out
}

// VRegCount and PhiCount expose arena sizes for tests/printers.
func (f *Function) VRegCount() int { return f.vregs.Len() }
func (f *Function) PhiCount() int  { return f.phis.Len() }

// MarkVRegRemoved tombstones v by the usual removed-marker convention: its
// type is set to the register's own index.
func (f *Function) MarkVRegRemoved(v Index) {
	reg := f.VReg(v)
	if reg.Removed() {
		return
	}
	reg.Type = ast.Index(v)
	f.removedVRegs++
}

// RemovedVRegCount reports how many vregs are currently tombstoned.
func (f *Function) RemovedVRegCount() int { return f.removedVRegs }

// CompactVRegs sweeps out every tombstoned vreg left behind by trivial-phi
// elimination: a left-to-right scan finds holes, a right-to-left scan finds
// live registers to fill them, and each relocated register's def site and
// every user's operand slots are rewritten to its new index. The arena is
// then truncated by the number of holes collected.
//
// Returns the old→new index map for relocated (non-tombstoned) registers, so
// a caller holding its own index (irbuilder's block_var_def) can follow the
// move.
func (f *Function) CompactVRegs() map[Index]Index {
	remap := make(map[Index]Index)
	if f.removedVRegs == 0 {
		return remap
	}

	n := f.vregs.Len()
	lo, hi := 0, n-1
	for {
		for lo < hi && !f.VReg(New(KindVReg, uint32(lo))).Removed() {
			lo++
		}
		for hi > lo && f.VReg(New(KindVReg, uint32(hi))).Removed() {
			hi--
		}
		if lo >= hi {
			break
		}
		oldIdx := New(KindVReg, uint32(hi))
		newIdx := New(KindVReg, uint32(lo))
		f.relocateVReg(oldIdx, newIdx)
		remap[oldIdx] = newIdx
		lo++
		hi--
	}

	live := n - f.removedVRegs
	f.vregs.Truncate(uint32(live))
	f.removedVRegs = 0
	return remap
}

// relocateVReg moves the live register at oldIdx into the tombstoned slot at
// newIdx, fixing up its defining instruction/phi and every user's operands.
func (f *Function) relocateVReg(oldIdx, newIdx Index) {
	moved := *f.VReg(oldIdx)
	moved.Self = newIdx
	*f.VReg(newIdx) = moved

	def := moved.Def
	switch def.Kind() {
	case KindInstruction:
		h := f.InstrHeader(def)
		f.payload.Set(h.PayloadOffset, newIdx)
	case KindPhi:
		f.Phi(def).Result = newIdx
	}

	for _, user := range f.Items(moved.Users) {
		switch user.Kind() {
		case KindInstruction:
			h := f.InstrHeader(user)
			off := h.PayloadOffset
			if h.HasResult() {
				off++
			}
			for i := uint32(0); i < uint32(h.VariadicCount); i++ {
				if f.payload.Get(off+i) == oldIdx {
					f.payload.Set(off+i, newIdx)
				}
			}
		case KindPhi:
			p := f.Phi(user)
			raw := f.small.Get(p.Args)
			for i, v := range raw {
				if Index(v) == oldIdx {
					raw[i] = uint32(newIdx)
				}
			}
		}
	}
}
