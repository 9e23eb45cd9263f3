package corec

import "testing"

func TestCompileCleanSourceProducesProgram(t *testing.T) {
	engine := New()
	result := engine.Compile(Source{
		Path: "main.crc",
		Text: "fn add(a: i32, b: i32) -> i32 { return a + b; }\n",
	})

	if result.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if len(result.Program.Funcs) != 1 {
		t.Fatalf("want 1 generated function, got %d", len(result.Program.Funcs))
	}
}

func TestCompileWithSkipTypeCheckStopsBeforeIrGen(t *testing.T) {
	engine := New(WithSkipTypeCheck())
	result := engine.Compile(Source{
		Path: "main.crc",
		Text: "fn add(a: i32, b: i32) -> i32 { return a + b; }\n",
	})

	if result.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if len(result.Program.Funcs) != 0 {
		t.Fatalf("want no IR generated when type checking is skipped, got %d funcs", len(result.Program.Funcs))
	}
}

func TestCompileModuleConflictSurfacesAsDiagnostic(t *testing.T) {
	engine := New()
	result := engine.Compile(
		Source{Path: "a.crc", Text: "module dup;\nfn one() -> i32 { return 1; }\n"},
		Source{Path: "b.crc", Text: "module dup;\nfn two() -> i32 { return 2; }\n"},
	)

	if !result.HasErrors() {
		t.Fatalf("want a module conflict diagnostic")
	}
}
