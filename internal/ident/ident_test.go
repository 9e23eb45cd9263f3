package ident

import "testing"

func TestWellKnownIDsStable(t *testing.T) {
	tbl := New()
	if id, ok := tbl.Lookup("this"); !ok || id != This {
		t.Fatalf("this -> %d, %v; want %d, true", id, ok, This)
	}
	if id, ok := tbl.Lookup("windows"); !ok || id != VersionWindows {
		t.Fatalf("windows -> %d, %v; want %d, true", id, ok, VersionWindows)
	}
}

func TestGetOrInternIsBijective(t *testing.T) {
	tbl := New()
	a := tbl.GetOrIntern("foo")
	b := tbl.GetOrIntern("foo")
	c := tbl.GetOrIntern("bar")
	if a != b {
		t.Fatalf("interning the same string twice produced different ids: %d != %d", a, b)
	}
	if a == c {
		t.Fatalf("interning different strings produced the same id")
	}
	if tbl.Text(a) != "foo" || tbl.Text(c) != "bar" {
		t.Fatalf("round trip failed: %q %q", tbl.Text(a), tbl.Text(c))
	}
}

func TestZeroIDReserved(t *testing.T) {
	tbl := New()
	id := tbl.GetOrIntern("anything")
	if id == 0 {
		t.Fatalf("GetOrIntern must never return the reserved zero id")
	}
}

func TestIsBuiltinVersion(t *testing.T) {
	if !IsBuiltinVersion(VersionLinux) {
		t.Fatalf("VersionLinux should be a builtin version id")
	}
	if IsBuiltinVersion(This) {
		t.Fatalf("This must not be classified as a builtin version id")
	}
}
