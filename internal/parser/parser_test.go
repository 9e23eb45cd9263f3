package parser

import (
	"testing"

	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/ident"
	"github.com/cwbudde/corec/internal/lexer"
)

func parseSource(t *testing.T, src string) (*ast.Store, *ident.Table, ast.Index, *diag.Sink) {
	t.Helper()
	store := ast.NewStore()
	ids := ident.New()
	var sink diag.Sink
	buf := lexer.Scan(1, src)
	p := New(buf, store, ids, &sink)
	mod := p.ParseModule(ids.GetOrIntern("test"))
	return store, ids, mod, &sink
}

func TestParseFunctionWithBody(t *testing.T) {
	src := `
fn add(a: i32, b: i32) -> i32 {
    return a + b;
}
`
	store, _, mod, sink := parseSource(t, src)
	if sink.HasErrors() {
		for _, r := range sink.Reports() {
			t.Errorf("unexpected diagnostic: %s", r.Error())
		}
	}
	items := store.ModuleItems(mod)
	if len(items) != 1 || items[0].Kind() != ast.KindFuncDecl {
		t.Fatalf("want one FuncDecl item, got %#v", items)
	}
	body := store.FuncBody(items[0])
	if body.Kind() != ast.KindBlockStmt {
		t.Fatalf("want block body, got kind %v", body.Kind())
	}
	stmts := store.BlockStmts(body)
	if len(stmts) != 1 || stmts[0].Kind() != ast.KindReturnStmt {
		t.Fatalf("want single return statement, got %#v", stmts)
	}
}

func TestParsePointerAndSliceTypes(t *testing.T) {
	src := `
struct Buffer {
    data: u8*;
    items: i32[];
    fixed: i32[8];
}
`
	store, _, mod, sink := parseSource(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports())
	}
	items := store.ModuleItems(mod)
	fields := store.StructFields(items[0])
	if len(fields) != 3 {
		t.Fatalf("want 3 fields, got %d", len(fields))
	}
	if k := store.FieldTypeExpr(fields[0]).Kind(); k != ast.KindPointerType {
		t.Fatalf("want pointer type, got %v", k)
	}
	if k := store.FieldTypeExpr(fields[1]).Kind(); k != ast.KindSliceType {
		t.Fatalf("want slice type, got %v", k)
	}
	if k := store.FieldTypeExpr(fields[2]).Kind(); k != ast.KindArrayType {
		t.Fatalf("want array type, got %v", k)
	}
}

func TestParseEnumFourShapes(t *testing.T) {
	src := `
enum Opaque;
enum Inferred = 1 + 2;
enum i32 Typed = 7;
enum Color : i32 {
    Red = 0,
    Green,
    Blue,
}
`
	store, _, mod, sink := parseSource(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports())
	}
	items := store.ModuleItems(mod)
	if len(items) != 4 {
		t.Fatalf("want 4 enum items, got %d", len(items))
	}
	if k := items[0].Kind(); k != ast.KindEnumConstDecl || store.EnumConstSyntax(items[0]) != ast.EnumSyntaxOpaque {
		t.Fatalf("item0: want opaque EnumConstDecl, got kind=%v", k)
	}
	if k := items[1].Kind(); k != ast.KindEnumConstDecl || store.EnumConstSyntax(items[1]) != ast.EnumSyntaxInferred {
		t.Fatalf("item1: want inferred EnumConstDecl, got kind=%v", k)
	}
	if k := items[2].Kind(); k != ast.KindEnumConstDecl || store.EnumConstSyntax(items[2]) != ast.EnumSyntaxTyped {
		t.Fatalf("item2: want typed EnumConstDecl, got kind=%v", k)
	}
	if k := items[3].Kind(); k != ast.KindEnumTypeDecl {
		t.Fatalf("item3: want EnumTypeDecl, got kind=%v", k)
	}
	if members := store.EnumMembers(items[3]); len(members) != 3 {
		t.Fatalf("want 3 enum members, got %d", len(members))
	}
}

func hasAttrNamed(store *ast.Store, ids *ident.Table, decl ast.Index, name string) bool {
	n := store.Node(decl)
	if n.AttrInfo == nil {
		return false
	}
	for _, a := range n.AttrInfo.Attrs {
		if ids.Text(a.Name) == name {
			return true
		}
	}
	return false
}

func TestParseAttributeStackDiscipline(t *testing.T) {
	src := `
@extern(module, "libc") @extern(syscall, 60) fn exit(code: i32) -> noreturn;

fn before() -> i32 { return 0; }

@hot: fn a() -> i32 { return 1; }
fn b() -> i32 { return 2; }

@cold {
    fn c() -> i32 { return 3; }
    fn d() -> i32 { return 4; }
}

fn e() -> i32 { return 5; }
`
	store, ids, mod, sink := parseSource(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports())
	}
	items := store.ModuleItems(mod)
	if len(items) != 7 {
		t.Fatalf("want 7 items, got %d", len(items))
	}
	exitFn, before, a, b, c, d, e := items[0], items[1], items[2], items[3], items[4], items[5], items[6]

	externNode := store.Node(exitFn)
	if !externNode.HasFlag(ast.FlagHasAttributes) {
		t.Fatalf("exit() should carry the immediate @extern attributes")
	}
	if _, ok := externNode.AttrInfo.ExternModule(store); !ok {
		t.Fatalf("expected ExternModule to resolve")
	}
	if _, ok := externNode.AttrInfo.ExternSyscall(store); !ok {
		t.Fatalf("expected ExternSyscall to resolve")
	}

	if hasAttrNamed(store, ids, before, "hot") {
		t.Fatalf("before() precedes `@hot:` and must not carry it")
	}

	// `@hot:` is scope-level: it stays active for every following
	// declaration in the same (module-level) item list.
	for name, decl := range map[string]ast.Index{"a": a, "b": b, "c": c, "d": d, "e": e} {
		if !hasAttrNamed(store, ids, decl, "hot") {
			t.Errorf("%s() should carry the scope-level @hot attribute", name)
		}
	}

	// `@cold { ... }` is a no_scope block: only c() and d() carry it.
	if !hasAttrNamed(store, ids, c, "cold") || !hasAttrNamed(store, ids, d, "cold") {
		t.Fatalf("c() and d() should carry the @cold no_scope attribute")
	}
	if hasAttrNamed(store, ids, e, "cold") {
		t.Fatalf("e() must not carry @cold: the no_scope block closed before it")
	}
}

func TestParseStaticConditionalsAreDeclNodes(t *testing.T) {
	src := `
#version(windows) {
    fn platform_init() -> i32 { return 1; }
} else {
    fn platform_init() -> i32 { return 2; }
}

#if (true) {
    var debugFlag: i32 = 1;
}

#foreach(name; aliasList) {
    alias Wrapped = name;
}

#assert(1 == 1, "sanity");
`
	store, _, mod, sink := parseSource(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports())
	}
	items := store.ModuleItems(mod)
	if len(items) != 4 {
		t.Fatalf("want 4 top-level static-conditional items, got %d", len(items))
	}
	wantKinds := []ast.Kind{ast.KindStaticVersion, ast.KindStaticIf, ast.KindStaticForeach, ast.KindStaticAssert}
	for i, want := range wantKinds {
		if got := items[i].Kind(); got != want {
			t.Errorf("item %d: want %v, got %v", i, want, got)
		}
	}
}
