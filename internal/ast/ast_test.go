package ast

import (
	"strings"
	"testing"

	"github.com/cwbudde/corec/internal/ident"
)

func TestIndexPacking(t *testing.T) {
	i := New(KindFuncDecl, 1234)
	if i.Kind() != KindFuncDecl {
		t.Fatalf("kind = %v, want KindFuncDecl", i.Kind())
	}
	if i.Payload() != 1234 {
		t.Fatalf("payload = %d, want 1234", i.Payload())
	}
}

func TestStoreAllocAndMutate(t *testing.T) {
	s := NewStore()
	ids := ident.New()
	x := ids.GetOrIntern("x")
	v := s.NewVarDecl(Position{}, x, s.Basic(BasicI32), s.NewIntLiteral(Position{}, 3))
	if s.Node(v).Name != x {
		t.Fatalf("var name mismatch")
	}
	if s.VarInit(v) == Undefined {
		t.Fatalf("var init should be set")
	}
}

func TestBasicTypeIsSingleton(t *testing.T) {
	s := NewStore()
	a := s.Basic(BasicI32)
	b := s.Basic(BasicI32)
	if a != b {
		t.Fatalf("Basic(BasicI32) not memoized: %v != %v", a, b)
	}
}

func TestReplaceItemsPreservesOrder(t *testing.T) {
	s := NewStore()
	ids := ident.New()
	mkInt := func(v int64) Index { return s.NewIntLiteral(Position{}, v) }
	items := []Index{mkInt(1), mkInt(2), mkInt(3)}
	sa := s.NewItems(items...)
	replaced := s.ReplaceItems(sa, 1, 1, []Index{mkInt(20), mkInt(21)})
	got := s.Items(replaced)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	want := []int64{1, 20, 21, 3}
	for i, w := range want {
		if s.IntLiteralValue(got[i]) != w {
			t.Fatalf("item %d = %d, want %d", i, s.IntLiteralValue(got[i]), w)
		}
	}
	_ = ids
}

func TestScopeDefineAndLookup(t *testing.T) {
	s := NewStore()
	ids := ident.New()
	foo := ids.GetOrIntern("foo")
	global := s.NewScope(ScopeGlobal, NoScope, "global")
	local := s.NewScope(ScopeLocal, global, "block")

	decl := s.NewVarDecl(Position{}, foo, s.Basic(BasicI32), Undefined)
	if !s.Define(global, foo, decl) {
		t.Fatalf("first Define should succeed")
	}
	if s.Define(global, foo, decl) {
		t.Fatalf("duplicate Define should fail")
	}
	if got, ok := s.Lookup(local, foo); !ok || got != decl {
		t.Fatalf("Lookup through parent chain failed: %v, %v", got, ok)
	}
}

func TestPrinterRoundTripShape(t *testing.T) {
	s := NewStore()
	ids := ident.New()
	x := ids.GetOrIntern("x")
	ret := s.NewReturnStmt(Position{}, s.NewIntLiteral(Position{}, 42))
	body := s.NewBlockStmt(Position{}, []Index{ret})
	fn := s.NewFuncDecl(Position{}, x, nil, s.Basic(BasicI32), body, nil, false)
	out := NewPrinter(s, ids).Print(fn)
	if !strings.Contains(out, "return 42;") {
		t.Fatalf("printed output missing return stmt: %s", out)
	}
	if !strings.Contains(out, "i32 x()") {
		t.Fatalf("printed output missing signature: %s", out)
	}
}
