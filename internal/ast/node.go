package ast

import "github.com/cwbudde/corec/internal/ident"

// Position is a source location recovered from the token-index table that
// the (out-of-scope) tokenizer hands the parser alongside the token stream.
type Position struct {
	File   uint32
	Offset uint32
}

// AnalysisState is the per-node lifecycle enum. It advances
// monotonically; nothing in this package ever decreases it except explicit
// cloning (cloning produces a brand new node starting at ParseDone).
type AnalysisState uint8

const (
	ParseDone AnalysisState = iota
	NameRegisterSelfDone
	NameRegisterNestedDone
	NameResolveDone
	TypeCheckDone
	IrGenDone
)

func (s AnalysisState) String() string {
	switch s {
	case ParseDone:
		return "parse_done"
	case NameRegisterSelfDone:
		return "name_register_self_done"
	case NameRegisterNestedDone:
		return "name_register_nested_done"
	case NameResolveDone:
		return "name_resolve_done"
	case TypeCheckDone:
		return "type_check_done"
	case IrGenDone:
		return "ir_gen_done"
	default:
		return "unknown_state"
	}
}

// Property identifies one of the tracked per-node properties with its own
// tri-state, independent of the coarse AnalysisState above. This is what
// lets the analysis driver (C5) detect cycles at the granularity of a
// single property instead of the whole lifecycle.
type Property uint8

const (
	PropNameRegisterSelf Property = iota
	PropNameRegisterNested
	PropNameResolve
	PropType
	PropIrGen
	numProperties
)

func (p Property) String() string {
	switch p {
	case PropNameRegisterSelf:
		return "name_register_self"
	case PropNameRegisterNested:
		return "name_register_nested"
	case PropNameResolve:
		return "name_resolve"
	case PropType:
		return "type"
	case PropIrGen:
		return "ir_gen"
	default:
		return "unknown_property"
	}
}

// TriState is the per-property calculation state.
type TriState uint8

const (
	NotCalculated TriState = iota
	Calculating
	Calculated
)

// Flag is the 16-bit per-node flag word.
type Flag uint16

const (
	FlagIsLvalue Flag = 1 << iota
	FlagIsType
	FlagIsGlobal
	FlagIsMember
	FlagHasAttributes
	FlagIsVariadicParam
	FlagIsUnion
	FlagIsOpaque
	FlagIsInline
	FlagNeedsDeref
	FlagIsTemplate
	// FlagSuppressCallRewrite marks a function/template name-use that must
	// keep naming the callable itself rather than being rewritten into a
	// paren-free call: the operand of `&f`, and the callee slot of an
	// ordinary parenthesized call.
	FlagSuppressCallRewrite
)

// Header is the common prefix every node carries: location, flags, the
// coarse lifecycle state and the fine-grained per-property tri-states.
// AttrInfo is nil unless FlagHasAttributes is set.
type Header struct {
	Pos      Position
	Kind     Kind
	Flags    Flag
	State    AnalysisState
	props    [numProperties]TriState
	AttrInfo *AttributeInfo
}

func (h *Header) HasFlag(f Flag) bool  { return h.Flags&f != 0 }
func (h *Header) SetFlag(f Flag)       { h.Flags |= f }
func (h *Header) ClearFlag(f Flag)     { h.Flags &^= f }
func (h *Header) PropState(p Property) TriState { return h.props[p] }
func (h *Header) SetPropState(p Property, s TriState) { h.props[p] = s }

// Node is the single tagged-union slot type stored in the node arena. Which
// of A, B, C, D, Args, Name, IntVal, FloatVal, StrVal and Sub are meaningful,
// and what they mean, is determined entirely by Kind; accessor methods below
// document the mapping per kind so callers never touch raw fields directly
// outside this package.
type Node struct {
	Header

	// Child handles. Meaning depends on Kind; see per-kind accessors.
	A, B, C, D Index

	// Args is the small-array of child handles for variable-length lists:
	// module items, struct/union fields, function params, call arguments,
	// block statements, enum members, array-literal elements.
	Args SmallArray

	// Args2 is a second small-array slot, used only by kinds that need two
	// independent lists (e.g. a templated FuncDecl's parameters in Args and
	// its template type-parameters in Args2).
	Args2 SmallArray

	Name ident.ID

	IntVal   int64
	FloatVal float64
	StrVal   string

	// Sub carries an operator/sub-kind tag: BinaryExpr/UnaryExpr operator,
	// enum declaration syntactic shape, basic-type tag, etc.
	Sub uint16

	// Type caches the result of the `type` property (PropType) once
	// TypeCheckDone: the handle of the resolved type node this expression,
	// variable, field or parameter carries. Reading it before TypeCheckDone
	// violates the "no node read beyond its state" invariant; callers go
	// through RequireType (C5) rather than this field directly.
	Type Index

	// ParentScope is the lexical scope an identifier-use or name-use-type
	// node resolves names from. OwnScope is the scope a declaration
	// that introduces one (module, struct, function, enum body) owns;
	// Undefined/zero for nodes that do not.
	ParentScope ScopeID
	OwnScope    ScopeID

	// Resolved is set by SetResolvedTo on an IdentUse/NameUseType node once
	// name resolution has looked it up: the handle of the entity or type it
	// names. It is Undefined on every other kind, and on an IdentUse/
	// NameUseType that name resolution never reached (the synthetic `this`
	// short-circuits before setting it). Every pass past name resolution
	// reads through this indirection rather than re-deriving identity from
	// Kind, since Kind itself never changes once a node is allocated.
	Resolved Index
}
