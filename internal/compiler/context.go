// Package compiler wires C1-C11 into one compilation: it owns the
// CompilationContext every pass is threaded through rather than reaching for
// hidden singletons, groups source files into modules, and drives the top-level
// loop the entry point to the whole pipeline is defined by: "for each
// module, require type_check_done on all declarations, then require
// ir_gen_done on each function body".
package compiler

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/driver"
	"github.com/cwbudde/corec/internal/ident"
	"github.com/cwbudde/corec/internal/ir"
	"github.com/cwbudde/corec/internal/irgen"
	"github.com/cwbudde/corec/internal/sema"
)

// CompileOptions configures the invocation-dependent parts of a compile that
// do not belong to the source text itself: which `#version` identifiers are
// enabled, and whether type checking (and everything downstream of it) is
// skipped for tooling uses that only need the resolved name graph (e.g. an
// editor's go-to-definition).
type CompileOptions struct {
	EnabledVersions []string
	SkipTypeCheck   bool
}

// CompilationContext is the single explicit value every pass reads from and
// writes into. There are no package-level globals anywhere in C6-C11; a
// second, independent compile can run concurrently by constructing a second
// Context (the driver itself is single-threaded per context).
type CompilationContext struct {
	Store   *ast.Store
	Ids     *ident.Table
	Sink    *diag.Sink
	Driver  *driver.Driver
	Program *ir.Program

	Analyzer *sema.Analyzer
	Gen      *irgen.Generator

	Options CompileOptions
}

// NewContext wires a fresh Store/Driver/Analyzer/Generator/Program tuple,
// registering every PropNameRegisterSelf/PropNameRegisterNested/
// PropNameResolve/PropType/PropIrGen computer with the Driver so a single
// Driver.Require call on a function decl drives the full pipeline.
func NewContext(opts CompileOptions) *CompilationContext {
	store := ast.NewStore()
	ids := ident.New()
	sink := &diag.Sink{}
	d := driver.New(store, sink)
	prog := ir.NewProgram()

	versions := make(map[ident.ID]bool, len(opts.EnabledVersions))
	for _, v := range opts.EnabledVersions {
		versions[ids.GetOrIntern(v)] = true
	}
	semaOpts := sema.Options{EnabledVersions: versions}
	an := sema.New(store, ids, d, sink, semaOpts)
	gen := irgen.New(store, ids, d, sink, prog)

	return &CompilationContext{
		Store: store, Ids: ids, Sink: sink, Driver: d, Program: prog,
		Analyzer: an, Gen: gen, Options: opts,
	}
}
