package ir

import "github.com/cwbudde/corec/internal/ast"

// ConstValue is a constant operand's payload. A "small inline" vs. "big
// arena" constant split is a possible encoding optimization this type skips
// in favor of always storing constants in Function.consts (documented in
// DESIGN.md as a deliberate simplification); the distinction this type does
// preserve via Kind is between plain constants and constant-zeros/
// aggregates.
type ConstValue struct {
	Type ast.Index
	Kind ConstKind
	Int  int64
	Flt  float64
	Str  string  // backing bytes for a string-literal global's initializer
	Elems []ConstValue // member values of a constant aggregate (struct/array)
}

// ConstKind distinguishes the const-space variants addressable via
// KindConst/KindConstAggregate/KindConstZero tagged Index values.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBytes
	ConstAggregate
	ConstZero
)

// Global is a module-level read-only datum: string-literal globals from
// C11 are the primary producer, addressed by KindGlobal-tagged Index values
// shared across every function in a Program.
type Global struct {
	Name string
	Type ast.Index
	Init ConstValue
}
