// Package driver implements the analysis driver of C5: a per-(node,
// property) cycle-detecting call stack that drives the lazy `require_*`
// family the later passes (internal/sema, internal/irgen) are built from.
// Nothing here knows what a property computes; it only tracks who is
// currently computing what, so a re-entrant request becomes a diagnosed
// cycle instead of infinite recursion.
package driver

import (
	"fmt"

	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
)

// ComputeFunc computes one node's property. It is expected to call back
// into Driver.Require for whatever other (node, property) pairs its result
// depends on.
type ComputeFunc func(d *Driver, node ast.Index) error

// Driver owns the per-property registry and the in-flight call stack used
// for cycle detection.
type Driver struct {
	Store *ast.Store
	Sink  *diag.Sink

	computers [5]func(*Driver, ast.Index) error // indexed by ast.Property
	stack     []frame
	// done remembers (node,property) pairs already Calculated so repeated
	// Require calls are O(1) after the first.
	done map[key]struct{}
}

type frame struct {
	node ast.Index
	prop ast.Property
}

type key struct {
	node ast.Index
	prop ast.Property
}

// New returns a Driver over store, reporting diagnostics to sink.
func New(store *ast.Store, sink *diag.Sink) *Driver {
	return &Driver{Store: store, Sink: sink, done: make(map[key]struct{})}
}

// Register installs the function that computes prop for every node, called
// once per property at setup time by internal/sema and internal/irgen.
func (d *Driver) Register(prop ast.Property, fn ComputeFunc) {
	d.computers[prop] = fn
}

// Require ensures node's prop is Calculated, computing it (and anything it
// transitively requires) on demand. A re-entrant Require for a (node, prop)
// pair already on the call stack is a real dependency cycle: it is
// reported once, via CycDependency with the offending stack as Path, and
// the property is left NotCalculated so callers can substitute an error
// sentinel instead of looping forever.
func (d *Driver) Require(node ast.Index, prop ast.Property) bool {
	k := key{node, prop}
	if _, ok := d.done[k]; ok {
		return true
	}
	n := d.Store.Node(node)
	switch n.PropState(prop) {
	case ast.Calculated:
		d.done[k] = struct{}{}
		return true
	case ast.Calculating:
		d.reportCycle(node, prop)
		return false
	}

	for _, f := range d.stack {
		if f.node == node && f.prop == prop {
			d.reportCycle(node, prop)
			return false
		}
	}

	n.SetPropState(prop, ast.Calculating)
	d.stack = append(d.stack, frame{node, prop})

	fn := d.computers[prop]
	var err error
	if fn != nil {
		err = fn(d, node)
	}

	d.stack = d.stack[:len(d.stack)-1]

	if err != nil {
		// Leave the property NotCalculated: a failed computation is not a
		// cycle, but it must not be cached as done either.
		n.SetPropState(prop, ast.NotCalculated)
		return false
	}
	n.SetPropState(prop, ast.Calculated)
	d.done[k] = struct{}{}
	return true
}

func (d *Driver) reportCycle(node ast.Index, prop ast.Property) {
	path := make([]string, 0, len(d.stack)+1)
	for _, f := range d.stack {
		path = append(path, fmt.Sprintf("%s(#%d)", f.prop, f.node.Payload()))
	}
	path = append(path, fmt.Sprintf("%s(#%d)", prop, node.Payload()))
	d.Sink.Add(&diag.Report{
		Code:    diag.CycDependency,
		Phase:   diag.PhaseName,
		Message: fmt.Sprintf("dependency cycle computing %s", prop),
		Path:    path,
	})
}

// AdvanceState bumps node's coarse AnalysisState to at least want, the
// bookkeeping the node lifecycle model needs alongside the fine-grained
// per-property tri-states above (a node can have type_check_done's property
// Calculated property-wise while State lags behind until the driver's
// top-level sweep catches it up).
func (d *Driver) AdvanceState(node ast.Index, want ast.AnalysisState) {
	n := d.Store.Node(node)
	if n.State < want {
		n.State = want
	}
}
