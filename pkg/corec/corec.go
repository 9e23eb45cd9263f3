// Package corec is the public facade over the compiler pipeline: a small
// functional-options Engine that hides internal/compiler's wiring from an
// embedder that just wants to feed in source text and get diagnostics plus
// an IR listing back.
package corec

import (
	"github.com/cwbudde/corec/internal/compiler"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/ir"
)

// Engine holds the options an embedder configures once, up front, and reuses
// across many Compile calls. Each Compile call constructs a fresh
// compiler.CompilationContext, so concurrent Compile calls on the same
// Engine are independent of one another.
type Engine struct {
	versions      []string
	skipTypeCheck bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithVersion enables a `#version` identifier for every Compile call this
// Engine makes. Call it once per identifier to enable more than one.
func WithVersion(name string) Option {
	return func(e *Engine) { e.versions = append(e.versions, name) }
}

// WithSkipTypeCheck stops a Compile call once names resolve, never reaching
// type checking or IR generation - for tooling uses such as go-to-definition
// that only need the resolved name graph.
func WithSkipTypeCheck() Option {
	return func(e *Engine) { e.skipTypeCheck = true }
}

// New returns an Engine configured by opts.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Source is one input file: a path for diagnostics and its full text.
type Source struct {
	Path string
	Text string
}

// Result is everything a Compile call produces: every diagnostic raised
// (empty on a clean compile), and - unless the Engine was built with
// WithSkipTypeCheck - the generated IR program.
type Result struct {
	Diagnostics []*diag.Report
	Program     *ir.Program
}

// HasErrors reports whether any diagnostic was raised.
func (r *Result) HasErrors() bool { return len(r.Diagnostics) > 0 }

// Compile runs the full pipeline - load, name resolution, type checking and
// (unless skipped) IR generation - over sources and returns everything it
// produced. sources are grouped into modules the same way a `corec`
// invocation with multiple file arguments would be: each file contributes
// its own declared (or derived) module identity, and two files claiming the
// same identity raise a conflict diagnostic rather than silently dropping
// one of them.
func (e *Engine) Compile(sources ...Source) *Result {
	ctx := compiler.NewContext(compiler.CompileOptions{
		EnabledVersions: e.versions,
		SkipTypeCheck:   e.skipTypeCheck,
	})

	files := make([]compiler.SourceFile, len(sources))
	for i, s := range sources {
		files[i] = compiler.SourceFile{Path: s.Path, Text: s.Text}
	}

	modules, _ := compiler.Load(ctx, files)
	if e.skipTypeCheck {
		compiler.TypeCheck(ctx, modules)
	} else {
		compiler.Compile(ctx, modules)
	}

	return &Result{Diagnostics: ctx.Sink.Reports(), Program: ctx.Program}
}
