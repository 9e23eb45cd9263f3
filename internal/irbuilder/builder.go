// Package irbuilder implements C10: Braun, Buchwald et al.'s algorithm for
// direct SSA construction from unstructured code, on top of the internal/ir
// data model (C9). A Builder wraps one in-construction ir.Function and owns
// the block_var_def map and the branch/label helpers C11 drives the walk
// through.
package irbuilder

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/ir"
)

// Builder is the per-function SSA-construction state.
type Builder struct {
	F    *ir.Function
	Sink *diag.Sink

	// defs is block_var_def: the current definition of variable in block.
	defs map[varKey]ir.Index
}

type varKey struct {
	block    ir.Index
	variable ast.Index
}

// New wraps f for SSA construction, reporting contract violations to sink.
func New(f *ir.Function, sink *diag.Sink) *Builder {
	return &Builder{F: f, Sink: sink, defs: make(map[varKey]ir.Index)}
}

// WriteVariable records value as variable's current definition in block.
func (b *Builder) WriteVariable(block ir.Index, variable ast.Index, value ir.Index) {
	b.defs[varKey{block, variable}] = value
}

// ReadVariable returns variable's current value in block, recursing up the
// CFG (or creating a phi) on a local miss. typ is the variable's static
// type, needed only if a fresh phi must be allocated.
func (b *Builder) ReadVariable(block ir.Index, variable ast.Index, typ ast.Index) ir.Index {
	if v, ok := b.defs[varKey{block, variable}]; ok {
		return v
	}
	return b.readVariableRecursive(block, variable, typ)
}

func (b *Builder) readVariableRecursive(block ir.Index, variable ast.Index, typ ast.Index) ir.Index {
	blk := b.F.Block(block)

	if !blk.IsSealed() {
		// Unsealed: we don't yet know every predecessor, so append an
		// incomplete phi and record it as the current definition; its
		// operands are filled in later, when sealBlock runs.
		phi := b.F.AllocPhi(block, variable, typ)
		val := b.F.Phi(phi).Result
		b.WriteVariable(block, variable, val)
		return val
	}

	preds := b.F.Items(blk.Pred)
	switch len(preds) {
	case 0:
		// No definition reaches this point (unreachable code, or a read
		// before any write in the entry block): there is no value to
		// return. Callers are expected not to reach this for well-formed
		// programs; returning Undefined lets a caller's own diagnostic
		// fire instead of this package asserting blindly.
		return ir.Undefined
	case 1:
		val := b.ReadVariable(preds[0], variable, typ)
		b.WriteVariable(block, variable, val)
		return val
	default:
		phi := b.F.AllocPhi(block, variable, typ)
		val := b.F.Phi(phi).Result
		b.WriteVariable(block, variable, val)
		final := b.AddPhiOperands(block, variable, phi, typ)
		if final != val {
			b.WriteVariable(block, variable, final)
		}
		return final
	}
}

// AddPhiOperands fills phi's argument list from each of block's
// predecessors (recursively reading variable there), registers phi as a
// user of each argument, and attempts trivial-phi elimination.
func (b *Builder) AddPhiOperands(block ir.Index, variable ast.Index, phi ir.Index, typ ast.Index) ir.Index {
	preds := b.F.Items(b.F.Block(block).Pred)
	args := make([]ir.Index, len(preds))
	for i, p := range preds {
		v := b.ReadVariable(p, variable, typ)
		args[i] = v
	}
	b.F.SetPhiArgs(phi, args)
	for _, v := range args {
		b.F.AddUser(v, phi)
	}
	return b.TryRemoveTrivialPhi(phi)
}

// TryRemoveTrivialPhi implements the standard elimination rule: a phi that
// merges exactly one distinct non-self value is redundant. If trivial, it
// rewires every user to the merged value, updates block_var_def entries
// still pointing at it, tombstones its vreg, and recursively retries every
// phi-kind user (removing one trivial phi can make another trivial).
func (b *Builder) TryRemoveTrivialPhi(phi ir.Index) ir.Index {
	p := b.F.Phi(phi)
	if p.Removed {
		return p.Result
	}
	args := b.F.Items(p.Args)

	var same ir.Index = ir.Undefined
	for _, arg := range args {
		if arg == same || arg == p.Result {
			continue
		}
		if same.Valid() {
			return p.Result // merges at least two distinct values: non-trivial
		}
		same = arg
	}
	if !same.Valid() {
		same = ir.Undefined // degenerate: no real predecessor contributed a value
	}

	users := append([]ir.Index(nil), b.F.Items(b.F.VReg(p.Result).Users)...)
	for _, u := range users {
		if u == phi {
			continue
		}
		b.F.ReplaceOperand(u, p.Result, same)
	}
	for k, v := range b.defs {
		if v == p.Result {
			b.defs[k] = same
		}
	}
	b.F.MarkVRegRemoved(p.Result)
	p.Removed = true

	for _, u := range users {
		if u != phi && u.Kind() == ir.KindPhi {
			b.TryRemoveTrivialPhi(u)
		}
	}
	return same
}
