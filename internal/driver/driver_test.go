package driver

import (
	"testing"

	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
)

func TestRequireMemoizes(t *testing.T) {
	store := ast.NewStore()
	var sink diag.Sink
	d := New(store, &sink)

	n := store.NewIntLiteral(ast.Position{}, 42)
	calls := 0
	d.Register(ast.PropType, func(d *Driver, node ast.Index) error {
		calls++
		return nil
	})

	if !d.Require(n, ast.PropType) {
		t.Fatalf("first Require failed")
	}
	if !d.Require(n, ast.PropType) {
		t.Fatalf("second Require failed")
	}
	if calls != 1 {
		t.Fatalf("want compute called once, got %d", calls)
	}
	if store.Node(n).PropState(ast.PropType) != ast.Calculated {
		t.Fatalf("want property Calculated")
	}
}

func TestRequireDetectsCycle(t *testing.T) {
	store := ast.NewStore()
	var sink diag.Sink
	d := New(store, &sink)

	a := store.NewIntLiteral(ast.Position{}, 1)
	b := store.NewIntLiteral(ast.Position{}, 2)

	d.Register(ast.PropType, func(d *Driver, node ast.Index) error {
		if node == a {
			return errFrom(d.Require(b, ast.PropType))
		}
		return errFrom(d.Require(a, ast.PropType))
	})

	d.Require(a, ast.PropType)
	if !sink.HasErrors() {
		t.Fatalf("expected a cycle diagnostic")
	}
	found := false
	for _, r := range sink.Reports() {
		if r.Code == diag.CycDependency {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CycDependency code, got %v", sink.Reports())
	}
}

func errFrom(ok bool) error {
	if ok {
		return nil
	}
	return errCycle
}

var errCycle = &cycleErr{}

type cycleErr struct{}

func (*cycleErr) Error() string { return "cycle" }
