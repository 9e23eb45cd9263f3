package ir

import "github.com/cwbudde/corec/internal/ast"

// Program collects every function generated for a compilation, plus the
// module-level globals (string-literal constants, primarily) shared across
// all of them.
type Program struct {
	Globals []Global
	Funcs   []*Function
}

// NewProgram returns an empty Program.
func NewProgram() *Program { return &Program{} }

// AddGlobal interns a new global and returns its handle.
func (p *Program) AddGlobal(g Global) Index {
	off := len(p.Globals)
	p.Globals = append(p.Globals, g)
	return New(KindGlobal, uint32(off))
}

// Global dereferences a global handle.
func (p *Program) Global(i Index) *Global { return &p.Globals[i.Payload()] }

// AddFunction registers a freshly built function.
func (p *Program) AddFunction(f *Function) Index {
	off := len(p.Funcs)
	p.Funcs = append(p.Funcs, f)
	return New(KindFunction, uint32(off))
}

// Function dereferences a function handle.
func (p *Program) Function(i Index) *Function { return p.Funcs[i.Payload()] }

// FuncByDecl looks up the Function generated for decl, if any.
func (p *Program) FuncByDecl(decl ast.Index) (*Function, bool) {
	for _, f := range p.Funcs {
		if f.Decl == decl {
			return f, true
		}
	}
	return nil, false
}

// FuncIndexByDecl is FuncByDecl returning the callable KindFunction handle
// instead of the *Function itself, for use as a call instruction operand.
func (p *Program) FuncIndexByDecl(decl ast.Index) (Index, bool) {
	for i, f := range p.Funcs {
		if f.Decl == decl {
			return New(KindFunction, uint32(i)), true
		}
	}
	return Undefined, false
}
