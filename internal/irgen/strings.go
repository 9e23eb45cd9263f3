package irgen

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/ir"
)

// internString interns a string-literal's bytes as a module-level global
// and returns its handle, caching by content so identical literal text
// anywhere in a translation unit shares one backing global. A string
// literal's static type is `u8*` (typeCheck's rule); the global itself is
// typed as the fixed-size byte array backing it, and a KindGlobal handle
// is used directly as a value operand — decaying to the address of its
// first byte, the same convention an array-typed local decays under.
func (g *Generator) internString(s *ast.Store, v string) ir.Index {
	if h, ok := g.stringGlobals[v]; ok {
		return h
	}
	u8 := s.Basic(ast.BasicU8)
	arrType := s.NewArrayType(ast.Position{}, u8, s.NewIntLiteral(ast.Position{}, int64(len(v))))
	h := g.Program.AddGlobal(ir.Global{
		Type: arrType,
		Init: ir.ConstValue{Type: arrType, Kind: ir.ConstBytes, Str: v},
	})
	g.stringGlobals[v] = h
	return h
}
