package ir

import "github.com/cwbudde/corec/internal/ast"

// VReg stores a virtual register's defining instruction or phi, its type,
// and the small set of instructions/phis that use it as an operand. A
// removed vreg (eliminated by try_remove_trivial_phi, or orphaned by the
// finalize compaction sweep) is tombstoned by setting Type to the vreg's
// own Index — the usual removed-marker convention — rather than by deleting
// the slot, since the arena is append-only until finalize runs.
type VReg struct {
	Self Index

	Def   Index // the Instruction or Phi index that defines this vreg
	Type  ast.Index
	Users SmallArray
}

// Removed reports whether this vreg has been tombstoned.
func (v VReg) Removed() bool { return v.Type == ast.Index(v.Self) }
