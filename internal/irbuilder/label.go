package irbuilder

import "github.com/cwbudde/corec/internal/ir"

// IrLabel is the bridge between C11's statement walk and the block
// allocator: a deferred merge point that may turn out to need zero, one or
// several real predecessors. Deferring allocation until a second jump site
// appears avoids materializing an empty block for every `if` with no
// `else`, every loop with no early exit, and so on.
type IrLabel struct {
	Block       ir.Index
	NumPreds    int
	IsAllocated bool
}

// AddJumpToLabel threads a jump from `from` to L, deferring real block
// allocation until a second predecessor shows up:
//   - L already allocated: jump straight to its block.
//   - L has zero predecessors so far: `from` becomes L's block outright (no
//     jump instruction is emitted — control simply falls through into it).
//   - L has exactly one predecessor so far and isn't allocated: promote it
//     to a real block, wiring both the original sole predecessor and `from`
//     into it with explicit jumps.
func (b *Builder) AddJumpToLabel(from ir.Index, l *IrLabel) {
	if l.IsAllocated {
		b.AddJump(from, l.Block)
		l.NumPreds++
		return
	}
	if l.NumPreds == 0 {
		l.Block = from
		l.NumPreds = 1
		return
	}

	newBlock := b.F.AllocBlock()
	prevSole := l.Block
	b.AddJump(prevSole, newBlock)
	b.AddJump(from, newBlock)
	l.Block = newBlock
	l.NumPreds = 2
	l.IsAllocated = true
}
