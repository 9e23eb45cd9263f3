// Package ir implements the SSA IR model of C9: a function's eight parallel
// arenas (instruction headers, instruction payload, next/prev instruction
// links, phis, virtual registers, basic blocks, and a shared small-array
// pool), plus a constants arena, addressed by the same 32-bit tagged-handle
// discipline as internal/ast.
// The structural shape mirrors golang.org/x/tools/go/ssa's Function/BasicBlock
// split (a Function owning its blocks, each block a doubly linked instruction
// list) — that package's source is not importable here (an internal package
// of its module), so it serves only as the structural reference the retrieval
// pack notes it as.
package ir

import "github.com/cwbudde/corec/internal/arena"

// Index is the universal IR handle: a 4-bit kind tag over a 28-bit payload,
// the same tagged-handle scheme as internal/ast.Index (which uses a wider
// 8-bit tag for its larger Kind set), but addressing IR arenas instead.
type Index uint32

const (
	kindShift   = 28
	payloadMask = (1 << kindShift) - 1
)

// Undefined is the reserved "no value" handle.
const Undefined Index = 0

// Kind tags which arena (or constant-space) an Index addresses.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBasicBlock
	KindInstruction
	KindPhi
	KindVReg
	KindPReg // physical register: only ever materialized post-register-allocation
	KindConst
	KindConstAggregate
	KindConstZero
	KindType // BasicKind/ast.Index nested reference, see TypeOf
	KindStackSlot
	KindGlobal
	KindFunction
)

// New packs kind and payload into an Index.
func New(kind Kind, payload uint32) Index {
	return Index(uint32(kind)<<kindShift | (payload & payloadMask))
}

// Kind returns the variant tag.
func (i Index) Kind() Kind { return Kind(uint32(i) >> kindShift) }

// Payload returns the arena offset.
func (i Index) Payload() uint32 { return uint32(i) & payloadMask }

// Valid reports whether i is not the reserved zero handle.
func (i Index) Valid() bool { return i != Undefined }

// IsValue reports whether i denotes something that can be used as an SSA
// operand (a "value kind"): vregs, pregs, constants, globals,
// stack slots, function handles. Basic blocks, instructions, phis and types
// are not themselves values.
func (i Index) IsValue() bool {
	switch i.Kind() {
	case KindVReg, KindPReg, KindConst, KindConstAggregate, KindConstZero,
		KindStackSlot, KindGlobal, KindFunction:
		return true
	}
	return false
}

// SmallArray is a handle into a Function's shared small-array pool, used for
// block successor/predecessor lists, phi argument lists and vreg user sets.
type SmallArray = arena.SmallArray
