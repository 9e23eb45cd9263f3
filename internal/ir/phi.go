package ir

import "github.com/cwbudde/corec/internal/ast"

// Phi stores a phi's owning block, its result vreg, the source-level
// variable it merges definitions of, a small-array of argument values
// (parallel, by position, to the block's predecessor list), and prev/next
// links threading every phi in a block into its own linked list (separate
// from the block's ordinary instruction list — phis are always considered
// to execute "at" block entry, before any real instruction).
type Phi struct {
	Block    Index
	Result   Index
	Variable ast.Index // the VarDecl/ParamDecl this phi merges definitions of

	Args SmallArray // len == block's predecessor count once sealed

	PrevPhi Index
	NextPhi Index

	// Incomplete is true from creation until add_phi_operands has filled
	// Args: an unsealed block's phi starts incomplete.
	Incomplete bool
	// Removed marks a phi eliminated by try_remove_trivial_phi; its result
	// vreg is tombstoned the same way (see VReg.Removed).
	Removed bool
}
