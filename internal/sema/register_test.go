package sema

import (
	"testing"

	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/driver"
	"github.com/cwbudde/corec/internal/ident"
)

// setup wires a fresh Store/Analyzer pair the way a real compilation does.
func setup(opts Options) (*ast.Store, *ident.Table, *Analyzer, *diag.Sink) {
	s := ast.NewStore()
	ids := ident.New()
	sink := &diag.Sink{}
	d := driver.New(s, sink)
	an := New(s, ids, d, sink, opts)
	return s, ids, an, sink
}

// TestExpandForeachProducesDistinctDeclsPerElement verifies that for
// an alias array of length N, #foreach(i, v; arr) { enum u32 v_id = i; }
// must expand to N distinct enum constant declarations whose values are the
// indices 0..N-1, not N copies of the same handle.
func TestExpandForeachProducesDistinctDeclsPerElement(t *testing.T) {
	s, ids, an, sink := setup(Options{})

	i := ids.GetOrIntern("i")
	v := ids.GetOrIntern("v")
	vID := ids.GetOrIntern("v_id")
	u32 := ids.GetOrIntern("u32")

	const n = 3
	elems := make([]ast.Index, n)
	for idx := range elems {
		elems[idx] = s.NewIdentUse(ast.Position{}, ids.GetOrIntern("elem"))
	}
	iterable := s.NewAliasArrayLiteral(ast.Position{}, elems)

	body := []ast.Index{
		s.NewEnumConstDecl(ast.Position{}, ast.EnumSyntaxTyped, vID,
			s.NewIdentUse(ast.Position{}, u32),
			s.NewIdentUse(ast.Position{}, i)),
	}
	foreach := s.NewStaticForeach(ast.Position{}, i, v, iterable, body)

	mod := s.NewModule(ast.Position{}, ids.GetOrIntern("m"), []ast.Index{foreach})
	an.RegisterModule(mod)

	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports())
	}

	items := s.ModuleItems(mod)
	if len(items) != n {
		t.Fatalf("want %d expanded declarations, got %d", n, len(items))
	}

	seen := map[ast.Index]bool{}
	for idx, it := range items {
		if it.Kind() != ast.KindEnumConstDecl {
			t.Fatalf("item %d: want KindEnumConstDecl, got %v", idx, it.Kind())
		}
		if seen[it] {
			t.Fatalf("item %d: handle %v reused from an earlier iteration", idx, it)
		}
		seen[it] = true

		val := s.EnumConstValue(it)
		if val.Kind() != ast.KindIntLiteral {
			t.Fatalf("item %d: value should be substituted to an int literal, got %v", idx, val.Kind())
		}
		if got := s.IntLiteralValue(val); got != int64(idx) {
			t.Fatalf("item %d: want value %d, got %d", idx, idx, got)
		}
	}
}
