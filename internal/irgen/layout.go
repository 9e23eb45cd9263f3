package irgen

import "github.com/cwbudde/corec/internal/ast"

const pointerSize = 8

// basicSize returns a basic type's width in bytes.
func basicSize(k ast.BasicKind) int64 {
	switch k {
	case ast.BasicVoid, ast.BasicNoreturn:
		return 0
	case ast.BasicBool, ast.BasicI8, ast.BasicU8:
		return 1
	case ast.BasicI16, ast.BasicU16:
		return 2
	case ast.BasicI32, ast.BasicU32, ast.BasicF32:
		return 4
	case ast.BasicI64, ast.BasicU64, ast.BasicF64:
		return 8
	case ast.BasicNull, ast.BasicAliasMeta, ast.BasicTypeMeta:
		return pointerSize
	}
	return pointerSize
}

// sizeOf computes a type's size in bytes. Struct/union layout here is
// simplistic field-sum/max with no alignment padding — a deliberate
// simplification over a real ABI, sufficient for the isPassByPtr threshold
// it exists to serve (see DESIGN.md).
func sizeOf(s *ast.Store, typ ast.Index) int64 {
	if !typ.Valid() {
		return 0
	}
	switch typ.Kind() {
	case ast.KindBasicType:
		return basicSize(s.BasicTypeKind(typ))
	case ast.KindPointerType, ast.KindFuncType:
		return pointerSize
	case ast.KindSliceType:
		return pointerSize + 8 // {ptr, length}
	case ast.KindArrayType:
		n := arrayLen(s, typ)
		return sizeOf(s, s.ArrayElem(typ)) * n
	case ast.KindStructDecl:
		var total int64
		for _, f := range s.StructFields(typ) {
			total += sizeOf(s, s.Node(f).Type)
		}
		return total
	case ast.KindUnionDecl:
		var max int64
		for _, f := range s.StructFields(typ) {
			if sz := sizeOf(s, s.Node(f).Type); sz > max {
				max = sz
			}
		}
		return max
	}
	return pointerSize
}

// arrayLen reads an array type's compile-time size expression, which at
// this stage of the pipeline is always an already-folded int literal.
func arrayLen(s *ast.Store, arrType ast.Index) int64 {
	size := s.ArraySize(arrType)
	if !size.Valid() || size.Kind() != ast.KindIntLiteral {
		return 0
	}
	return s.IntLiteralValue(size)
}

// isAggregate reports whether typ is a struct, union or array — the kinds
// the isPassByPtr rule and the SSA-promotion decision in lowerLocalVarDecl
// both key off.
func isAggregate(s *ast.Store, typ ast.Index) bool {
	if !typ.Valid() {
		return false
	}
	switch typ.Kind() {
	case ast.KindStructDecl, ast.KindUnionDecl, ast.KindArrayType:
		return true
	}
	return false
}

// isPassByPtr implements the rule: aggregates larger than 8 bytes are
// passed by pointer rather than by value.
func isPassByPtr(s *ast.Store, typ ast.Index) bool {
	return isAggregate(s, typ) && sizeOf(s, typ) > 8
}
