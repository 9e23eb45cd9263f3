// Package ast implements the attributed abstract syntax tree: a closed
// tagged variant set addressed by 32-bit handles into a single append-only
// node arena, plus the small-array arena backing per-node argument/member
// lists.
package ast

import "github.com/cwbudde/corec/internal/arena"

// Index is the universal 32-bit handle into the node arena: an 8-bit kind
// tag (wide enough for every Kind below) packed with a 24-bit payload
// (here, simply the arena offset). The zero value Undefined never denotes
// a real node.
type Index uint32

const (
	kindShift   = 24
	payloadMask = (1 << kindShift) - 1
)

// Undefined is the reserved "no node" handle.
const Undefined Index = 0

// Kind tags the variant a node arena slot holds. It intentionally mirrors
// the grammar's closed declaration/statement/expression/type universe: a
// "downcast" is just a switch on Kind.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Declarations.
	KindModule
	KindImport
	KindAlias
	KindStructDecl
	KindUnionDecl
	KindEnumTypeDecl   // `enum [X] [: T] { ... }`
	KindEnumConstDecl  // `enum X;` / `enum X = expr;` / `enum T X = expr;`
	KindVarDecl
	KindFuncDecl
	KindParamDecl
	KindFieldDecl
	KindEnumMember

	// Static-conditional declaration-position items (expanded away by C6;
	// they never survive past name_register_nested_done).
	KindStaticIf
	KindStaticVersion
	KindStaticForeach
	KindStaticAssert

	// Statements.
	KindBlockStmt
	KindExprStmt
	KindIfStmt
	KindWhileStmt
	KindForStmt
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindAssignStmt

	// Expressions.
	KindIdentUse
	KindIntLiteral
	KindFloatLiteral
	KindBoolLiteral
	KindStringLiteral
	KindNullLiteral
	KindBinaryExpr
	KindUnaryExpr
	KindCallExpr
	KindIndexExpr
	KindMemberExpr
	KindCastExpr
	KindAddrOfExpr
	KindDerefExpr
	KindAssignExpr
	KindArrayLiteral
	KindAliasArrayLiteral
	KindErrorExpr

	// Types.
	KindBasicType
	KindPointerType
	KindSliceType
	KindArrayType
	KindFuncType
	KindNameUseType // unresolved `name_use` wrapper

	// Attributes.
	KindAttribute
)

// New packs kind and payload (an offset into the node arena) into an Index.
func New(kind Kind, payload uint32) Index {
	return Index(uint32(kind)<<kindShift | (payload & payloadMask))
}

// Kind returns the variant tag.
func (i Index) Kind() Kind { return Kind(uint32(i) >> kindShift) }

// Payload returns the arena offset.
func (i Index) Payload() uint32 { return uint32(i) & payloadMask }

// Valid reports whether i is not the reserved zero handle.
func (i Index) Valid() bool { return i != Undefined }

// SmallArray is a handle into the shared small-array arena used for
// parameter lists, struct members, call arguments and the like.
type SmallArray = arena.SmallArray
