package irbuilder

import "github.com/cwbudde/corec/internal/ir"

// Finalize runs the post-construction compaction sweep over the built
// function, reclaiming the vreg slots trivial-phi elimination tombstoned,
// and follows any relocation back into this builder's block_var_def table
// so it stays usable afterward (irgen calls Finalize only once the whole
// function body has been walked; SealBlock is called during the walk).
func (b *Builder) Finalize() map[ir.Index]ir.Index {
	remap := b.F.CompactVRegs()
	if len(remap) == 0 {
		return remap
	}
	for k, v := range b.defs {
		if nv, ok := remap[v]; ok {
			b.defs[k] = nv
		}
	}
	return remap
}
