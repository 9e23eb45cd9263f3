package diag

import "testing"

func TestSinkAccumulatesAndDetectsFatal(t *testing.T) {
	var s Sink
	s.Add(&Report{Code: NamUndefined, Message: "undefined identifier 'foo'"})
	if s.HasFatal() {
		t.Fatalf("no fatal reports added yet")
	}
	s.Add(&Report{Code: IrbSealedTarget, Message: "internal error", Severity: SeverityFatal})
	if !s.HasFatal() {
		t.Fatalf("expected HasFatal true")
	}
	if len(s.Reports()) != 2 {
		t.Fatalf("want 2 reports, got %d", len(s.Reports()))
	}
}

func TestLineCol(t *testing.T) {
	src := "abc\ndef\nghi"
	line, col := LineCol(src, 5) // 'e' in "def"
	if line != 2 || col != 2 {
		t.Fatalf("got line=%d col=%d, want line=2 col=2", line, col)
	}
}

func TestFormatIncludesCaret(t *testing.T) {
	r := &Report{Code: TypMismatch, Message: "type mismatch", Line: 1, Column: 5}
	out := r.Format("i32 x = y;", "test.src", false)
	if out == "" {
		t.Fatalf("expected non-empty output")
	}
}
