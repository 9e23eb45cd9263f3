package ir

// BlockFlag holds a basic block's boolean bits: sealed, finished,
// loop-header, visited.
type BlockFlag uint8

const (
	BlockSealed BlockFlag = 1 << iota
	BlockFinished
	BlockLoopHeader
	BlockVisited
)

// BasicBlock stores the doubly linked instruction list bounds, the block
// layout chain (prev/next, for final linearization order), the first-phi
// handle, successor/predecessor small vectors, and status flags.
//
// FirstInstr/LastInstr point back to the block's own handle when the
// instruction list is empty (a sentinel self-reference), so
// Empty can detect "no instructions yet" without a separate bool.
type BasicBlock struct {
	Self Index

	FirstInstr Index
	LastInstr  Index

	PrevBlock Index
	NextBlock Index

	FirstPhi Index

	Succ SmallArray
	Pred SmallArray

	Flags BlockFlag
}

func (b *BasicBlock) HasFlag(f BlockFlag) bool  { return b.Flags&f != 0 }
func (b *BasicBlock) SetFlag(f BlockFlag)        { b.Flags |= f }
func (b *BasicBlock) IsSealed() bool             { return b.HasFlag(BlockSealed) }
func (b *BasicBlock) IsFinished() bool           { return b.HasFlag(BlockFinished) }
func (b *BasicBlock) Empty() bool                { return b.FirstInstr == b.Self }
