package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/corec/internal/ident"
)

// Printer renders a subtree as C-like text for human-readable output
// (declarations print as `T name = init;` and `R f(...)`). That is not the
// `var`/`fn` syntax internal/parser reads, so printed output does not parse
// back, and it does not byte-match the original source.
type Printer struct {
	store *Store
	ids   *ident.Table
	b     strings.Builder
	depth int
}

// NewPrinter returns a Printer bound to a store/identifier table pair.
func NewPrinter(store *Store, ids *ident.Table) *Printer {
	return &Printer{store: store, ids: ids}
}

func (p *Printer) name(id ident.ID) string {
	if !id.Valid() {
		return "_"
	}
	return p.ids.Text(id)
}

func (p *Printer) indent() {
	p.b.WriteString(strings.Repeat("  ", p.depth))
}

// Print renders i and everything reachable from it, returning the result.
func (p *Printer) Print(i Index) string {
	p.b.Reset()
	p.depth = 0
	p.node(i)
	return p.b.String()
}

func (p *Printer) node(i Index) {
	if !i.Valid() {
		return
	}
	s := p.store
	switch i.Kind() {
	case KindModule:
		fmt.Fprintf(&p.b, "module %s;\n", p.name(s.Node(i).Name))
		for _, it := range s.ModuleItems(i) {
			p.node(it)
			p.b.WriteString("\n")
		}
	case KindImport:
		fmt.Fprintf(&p.b, "import %s;", p.name(s.Node(i).Name))
	case KindAlias:
		fmt.Fprintf(&p.b, "alias %s = ", p.name(s.Node(i).Name))
		p.node(s.AliasTarget(i))
		p.b.WriteString(";")
	case KindStructDecl, KindUnionDecl:
		kw := "struct"
		if i.Kind() == KindUnionDecl {
			kw = "union"
		}
		fmt.Fprintf(&p.b, "%s %s {\n", kw, p.name(s.Node(i).Name))
		p.depth++
		for _, f := range s.StructFields(i) {
			p.indent()
			p.node(f)
			p.b.WriteString(";\n")
		}
		p.depth--
		p.b.WriteString("}")
	case KindFieldDecl:
		fmt.Fprintf(&p.b, "%s: ", p.name(s.Node(i).Name))
		p.node(s.FieldTypeExpr(i))
	case KindEnumTypeDecl:
		fmt.Fprintf(&p.b, "enum %s {\n", p.name(s.Node(i).Name))
		p.depth++
		for _, m := range s.EnumMembers(i) {
			p.indent()
			p.node(m)
			p.b.WriteString(",\n")
		}
		p.depth--
		p.b.WriteString("}")
	case KindEnumMember:
		p.b.WriteString(p.name(s.Node(i).Name))
		if v := s.EnumMemberValue(i); v.Valid() {
			p.b.WriteString(" = ")
			p.node(v)
		}
	case KindEnumConstDecl:
		fmt.Fprintf(&p.b, "enum %s", p.name(s.Node(i).Name))
		if v := s.EnumConstValue(i); v.Valid() {
			p.b.WriteString(" = ")
			p.node(v)
		}
		p.b.WriteString(";")
	case KindVarDecl:
		if t := s.VarTypeExpr(i); t.Valid() {
			p.node(t)
			p.b.WriteString(" ")
		}
		p.b.WriteString(p.name(s.Node(i).Name))
		if init := s.VarInit(i); init.Valid() {
			p.b.WriteString(" = ")
			p.node(init)
		}
		p.b.WriteString(";")
	case KindFuncDecl:
		p.node(s.FuncRetType(i))
		fmt.Fprintf(&p.b, " %s(", p.name(s.Node(i).Name))
		for idx, prm := range s.FuncParams(i) {
			if idx > 0 {
				p.b.WriteString(", ")
			}
			p.node(prm)
		}
		p.b.WriteString(")")
		if body := s.FuncBody(i); body.Valid() {
			p.b.WriteString(" ")
			p.node(body)
		} else {
			p.b.WriteString(";")
		}
	case KindParamDecl:
		p.node(s.ParamTypeExpr(i))
		fmt.Fprintf(&p.b, " %s", p.name(s.Node(i).Name))
	case KindBlockStmt:
		p.b.WriteString("{\n")
		p.depth++
		for _, st := range s.BlockStmts(i) {
			p.indent()
			p.node(st)
			p.b.WriteString("\n")
		}
		p.depth--
		p.indent()
		p.b.WriteString("}")
	case KindExprStmt:
		p.node(s.ExprStmtExpr(i))
		p.b.WriteString(";")
	case KindIfStmt:
		p.b.WriteString("if (")
		p.node(s.IfCond(i))
		p.b.WriteString(") ")
		p.node(s.IfThen(i))
		if e := s.IfElse(i); e.Valid() {
			p.b.WriteString(" else ")
			p.node(e)
		}
	case KindWhileStmt:
		p.b.WriteString("while (")
		p.node(s.WhileCond(i))
		p.b.WriteString(") ")
		p.node(s.WhileBody(i))
	case KindForStmt:
		p.b.WriteString("for (")
		p.node(s.ForInit(i))
		p.b.WriteString("; ")
		p.node(s.ForCond(i))
		p.b.WriteString("; ")
		p.node(s.ForPost(i))
		p.b.WriteString(") ")
		p.node(s.ForBody(i))
	case KindReturnStmt:
		p.b.WriteString("return")
		if e := s.ReturnExpr(i); e.Valid() {
			p.b.WriteString(" ")
			p.node(e)
		}
		p.b.WriteString(";")
	case KindBreakStmt:
		p.b.WriteString("break;")
	case KindContinueStmt:
		p.b.WriteString("continue;")
	case KindAssignStmt:
		p.node(s.AssignLHS(i))
		p.b.WriteString(" = ")
		p.node(s.AssignRHS(i))
		p.b.WriteString(";")
	case KindIdentUse:
		p.b.WriteString(p.name(s.Node(i).Name))
	case KindIntLiteral:
		fmt.Fprintf(&p.b, "%d", s.IntLiteralValue(i))
	case KindFloatLiteral:
		fmt.Fprintf(&p.b, "%g", s.FloatLiteralValue(i))
	case KindBoolLiteral:
		fmt.Fprintf(&p.b, "%t", s.BoolLiteralValue(i))
	case KindStringLiteral:
		fmt.Fprintf(&p.b, "%q", s.StringLiteralValue(i))
	case KindNullLiteral:
		p.b.WriteString("null")
	case KindBinaryExpr:
		p.b.WriteString("(")
		p.node(s.BinaryLHS(i))
		fmt.Fprintf(&p.b, " %s ", binOpText(s.BinaryOperator(i)))
		p.node(s.BinaryRHS(i))
		p.b.WriteString(")")
	case KindUnaryExpr:
		p.b.WriteString(unOpText(s.UnaryOperator(i)))
		p.node(s.UnaryOperand(i))
	case KindCallExpr:
		p.node(s.CallCallee(i))
		p.b.WriteString("(")
		for idx, a := range s.CallArgs(i) {
			if idx > 0 {
				p.b.WriteString(", ")
			}
			p.node(a)
		}
		p.b.WriteString(")")
	case KindIndexExpr:
		p.node(s.IndexBase(i))
		p.b.WriteString("[")
		p.node(s.IndexIndex(i))
		p.b.WriteString("]")
	case KindMemberExpr:
		p.node(s.MemberBase(i))
		fmt.Fprintf(&p.b, ".%s", p.name(s.MemberName(i)))
	case KindCastExpr:
		p.b.WriteString("cast(")
		p.node(s.CastTypeExpr(i))
		p.b.WriteString(") ")
		p.node(s.CastOperand(i))
	case KindAddrOfExpr:
		p.b.WriteString("&")
		p.node(s.AddrOfOperand(i))
	case KindDerefExpr:
		p.b.WriteString("*")
		p.node(s.DerefOperand(i))
	case KindAssignExpr:
		p.node(s.AssignExprLHS(i))
		p.b.WriteString(" = ")
		p.node(s.AssignExprRHS(i))
	case KindArrayLiteral:
		p.b.WriteString("[")
		for idx, e := range s.ArrayLiteralElems(i) {
			if idx > 0 {
				p.b.WriteString(", ")
			}
			p.node(e)
		}
		p.b.WriteString("]")
	case KindErrorExpr:
		p.b.WriteString("<error>")
	case KindBasicType:
		p.b.WriteString(basicKindText(s.BasicTypeKind(i)))
	case KindPointerType:
		p.node(s.PointerElem(i))
		p.b.WriteString("*")
	case KindSliceType:
		p.node(s.SliceElem(i))
		p.b.WriteString("[]")
	case KindArrayType:
		p.node(s.ArrayElem(i))
		p.b.WriteString("[")
		p.node(s.ArraySize(i))
		p.b.WriteString("]")
	case KindNameUseType:
		p.b.WriteString(p.name(s.Node(i).Name))
	default:
		fmt.Fprintf(&p.b, "<kind %d>", i.Kind())
	}
}

func binOpText(op BinaryOp) string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpBitAnd:
		return "&"
	case OpBitXor:
		return "^"
	case OpBitOr:
		return "|"
	case OpLogAnd:
		return "&&"
	case OpLogOr:
		return "||"
	default:
		return "?"
	}
}

func unOpText(op UnaryOp) string {
	switch op {
	case OpNeg:
		return "-"
	case OpNot:
		return "!"
	case OpBitNot:
		return "~"
	case OpPos:
		return "+"
	default:
		return "?"
	}
}

func basicKindText(k BasicKind) string {
	switch k {
	case BasicNoreturn:
		return "noreturn"
	case BasicVoid:
		return "void"
	case BasicBool:
		return "bool"
	case BasicNull:
		return "null_t"
	case BasicI8:
		return "i8"
	case BasicI16:
		return "i16"
	case BasicI32:
		return "i32"
	case BasicI64:
		return "i64"
	case BasicU8:
		return "u8"
	case BasicU16:
		return "u16"
	case BasicU32:
		return "u32"
	case BasicU64:
		return "u64"
	case BasicF32:
		return "f32"
	case BasicF64:
		return "f64"
	case BasicAliasMeta:
		return "<alias-meta>"
	case BasicTypeMeta:
		return "<type-meta>"
	default:
		return "<basic?>"
	}
}
