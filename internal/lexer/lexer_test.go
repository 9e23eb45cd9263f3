package lexer

import (
	"testing"

	"github.com/cwbudde/corec/internal/token"
)

func kinds(buf *token.Buffer) []token.Kind { return buf.Kinds }

func TestScanBasics(t *testing.T) {
	buf := Scan(0, "i32 x = 3 + y;")
	want := []token.Kind{token.Ident, token.Ident, token.Assign, token.IntLit, token.Plus, token.Ident, token.Semicolon, token.EOF}
	got := kinds(buf)
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestScanDirectivesAndKeywords(t *testing.T) {
	buf := Scan(0, "#version(windows) { fn main() {} }")
	if buf.Kinds[0] != token.HashVersion {
		t.Fatalf("first token = %v, want HashVersion", buf.Kinds[0])
	}
	var sawFn bool
	for _, k := range buf.Kinds {
		if k == token.KwFn {
			sawFn = true
		}
	}
	if !sawFn {
		t.Fatalf("expected KwFn in stream")
	}
}

func TestScanStringAndComment(t *testing.T) {
	buf := Scan(0, `"hello \"world\"" // trailing comment
	42`)
	if buf.Kinds[0] != token.StringLit {
		t.Fatalf("kind = %v, want StringLit", buf.Kinds[0])
	}
	if buf.Kinds[1] != token.IntLit || buf.Text(1) != "42" {
		t.Fatalf("second token = %v %q", buf.Kinds[1], buf.Text(1))
	}
}

func TestScanCompoundOperators(t *testing.T) {
	buf := Scan(0, "x += 1; y <<= 2;")
	if buf.Kinds[1] != token.PlusEq {
		t.Fatalf("expected PlusEq, got %v", buf.Kinds[1])
	}
	if buf.Kinds[5] != token.Shl {
		t.Fatalf("expected Shl (lexed separately from '='), got %v", buf.Kinds[5])
	}
}
