package irbuilder

import "github.com/cwbudde/corec/internal/ir"

// SealBlock marks block's predecessor set as frozen and completes every
// phi that was created in it while unsealed. Already
// sealed blocks are a no-op, matching the idempotence the driver relies on
// elsewhere in this compiler.
func (b *Builder) SealBlock(block ir.Index) {
	blk := b.F.Block(block)
	if blk.IsSealed() {
		return
	}
	for _, phi := range b.F.Phis(block) {
		p := b.F.Phi(phi)
		if !p.Incomplete {
			continue
		}
		typ := b.F.VReg(p.Result).Type
		b.AddPhiOperands(block, p.Variable, phi, typ)
	}
	blk.SetFlag(ir.BlockSealed)
}
