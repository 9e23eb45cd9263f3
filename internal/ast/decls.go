package ast

import "github.com/cwbudde/corec/internal/ident"

// EnumSyntax distinguishes the four declaration shapes an enum constant can take.
type EnumSyntax uint16

const (
	EnumSyntaxOpaque    EnumSyntax = iota // `enum X;`
	EnumSyntaxInferred                    // `enum X = expr;`
	EnumSyntaxTyped                       // `enum T X = expr;`
	EnumSyntaxBody                        // `enum [X] [: T] { ... }`
)

// NewModule allocates a module declaration. Items is the module's top-level
// declaration list (subject to static expansion before use).
func (s *Store) NewModule(pos Position, path ident.ID, items []Index) Index {
	i := s.alloc(KindModule, pos)
	n := s.Node(i)
	n.Name = path
	n.Args = s.NewItems(items...)
	n.SetFlag(FlagIsGlobal)
	return i
}

func (s *Store) ModuleItems(i Index) []Index { return s.Items(s.Node(i).Args) }

// SetModuleItems overwrites a module's item list; used by the static
// expansion sweep when the top level itself contains `#if`/`#version`.
func (s *Store) SetModuleItems(i Index, items []Index) {
	s.Node(i).Args = s.NewItems(items...)
}

// NewImport allocates an `import a.b.c;` declaration.
func (s *Store) NewImport(pos Position, path ident.ID) Index {
	i := s.alloc(KindImport, pos)
	s.Node(i).Name = path
	return i
}

// NewAlias allocates `alias Name = Target;`. Target may be a type, an
// expression, or (after #foreach discovers one) an alias-array literal.
func (s *Store) NewAlias(pos Position, name ident.ID, target Index) Index {
	i := s.alloc(KindAlias, pos)
	n := s.Node(i)
	n.Name = name
	n.A = target
	return i
}

func (s *Store) AliasTarget(i Index) Index { return s.Node(i).A }
func (s *Store) SetAliasTarget(i, target Index) { s.Node(i).A = target }

// NewStructDecl allocates a struct or union declaration (Kind selects
// which). fields is the member list, templateParams the (possibly empty)
// template type-parameter list.
func (s *Store) NewStructDecl(kind Kind, pos Position, name ident.ID, fields, templateParams []Index) Index {
	i := s.alloc(kind, pos)
	n := s.Node(i)
	n.Name = name
	n.Args = s.NewItems(fields...)
	n.Args2 = s.NewItems(templateParams...)
	if kind == KindUnionDecl {
		n.SetFlag(FlagIsUnion)
	}
	if len(templateParams) > 0 {
		n.SetFlag(FlagIsTemplate)
	}
	return i
}

func (s *Store) StructFields(i Index) []Index        { return s.Items(s.Node(i).Args) }
func (s *Store) StructTemplateParams(i Index) []Index { return s.Items(s.Node(i).Args2) }

// SetStructFields overwrites a struct/union's field list; used by the
// static expansion sweep when a struct body contains `#if`/`#version`/
// `#foreach`.
func (s *Store) SetStructFields(i Index, fields []Index) {
	s.Node(i).Args = s.NewItems(fields...)
}

// NewFieldDecl allocates one struct/union member: `name: TypeExpr`.
func (s *Store) NewFieldDecl(pos Position, name ident.ID, typeExpr Index) Index {
	i := s.alloc(KindFieldDecl, pos)
	n := s.Node(i)
	n.Name = name
	n.A = typeExpr
	n.SetFlag(FlagIsMember)
	return i
}

func (s *Store) FieldTypeExpr(i Index) Index { return s.Node(i).A }

// NewEnumTypeDecl allocates `enum [X] [: T] { members... }`. name may be
// Undefined (anonymous enum); baseType may be Undefined (default int type).
func (s *Store) NewEnumTypeDecl(pos Position, name ident.ID, baseType Index, members []Index) Index {
	i := s.alloc(KindEnumTypeDecl, pos)
	n := s.Node(i)
	n.Name = name
	n.A = baseType
	n.Args = s.NewItems(members...)
	n.Sub = uint16(EnumSyntaxBody)
	return i
}

func (s *Store) EnumBaseType(i Index) Index  { return s.Node(i).A }
func (s *Store) EnumMembers(i Index) []Index { return s.Items(s.Node(i).Args) }

// SetEnumMembers overwrites a scoped enum's member list; used by the static
// expansion sweep when an enum body contains `#if`/`#version`/`#foreach`.
func (s *Store) SetEnumMembers(i Index, members []Index) {
	s.Node(i).Args = s.NewItems(members...)
}

// NewEnumMember allocates one member of an `enum { ... }` body, optionally
// with an explicit value expression.
func (s *Store) NewEnumMember(pos Position, name ident.ID, value Index) Index {
	i := s.alloc(KindEnumMember, pos)
	n := s.Node(i)
	n.Name = name
	n.A = value
	return i
}

func (s *Store) EnumMemberValue(i Index) Index { return s.Node(i).A }

// NewEnumConstDecl allocates one of the three manifest-constant enum
// shapes: `enum X;`, `enum X = expr;`, `enum T X = expr;`.
func (s *Store) NewEnumConstDecl(pos Position, syntax EnumSyntax, name ident.ID, typeExpr, value Index) Index {
	i := s.alloc(KindEnumConstDecl, pos)
	n := s.Node(i)
	n.Name = name
	n.A = typeExpr
	n.B = value
	n.Sub = uint16(syntax)
	return i
}

func (s *Store) EnumConstSyntax(i Index) EnumSyntax { return EnumSyntax(s.Node(i).Sub) }
func (s *Store) EnumConstTypeExpr(i Index) Index    { return s.Node(i).A }
func (s *Store) EnumConstValue(i Index) Index       { return s.Node(i).B }

// NewVarDecl allocates a variable declaration: `[T] name = init;`. typeExpr
// may be Undefined when the type is to be inferred from init.
func (s *Store) NewVarDecl(pos Position, name ident.ID, typeExpr, init Index) Index {
	i := s.alloc(KindVarDecl, pos)
	n := s.Node(i)
	n.Name = name
	n.A = typeExpr
	n.B = init
	n.SetFlag(FlagIsLvalue)
	return i
}

func (s *Store) VarTypeExpr(i Index) Index { return s.Node(i).A }
func (s *Store) VarInit(i Index) Index     { return s.Node(i).B }

// NewParamDecl allocates one function parameter.
func (s *Store) NewParamDecl(pos Position, name ident.ID, typeExpr, defaultExpr Index, variadic bool) Index {
	i := s.alloc(KindParamDecl, pos)
	n := s.Node(i)
	n.Name = name
	n.A = typeExpr
	n.B = defaultExpr
	n.SetFlag(FlagIsLvalue)
	if variadic {
		n.SetFlag(FlagIsVariadicParam)
	}
	return i
}

func (s *Store) ParamTypeExpr(i Index) Index    { return s.Node(i).A }
func (s *Store) ParamDefaultExpr(i Index) Index { return s.Node(i).B }
func (s *Store) ParamIsVariadic(i Index) bool   { return s.Node(i).HasFlag(FlagIsVariadicParam) }

// NewFuncDecl allocates a function/procedure declaration. body is Undefined
// for a forward/extern declaration.
func (s *Store) NewFuncDecl(pos Position, name ident.ID, params []Index, retType, body Index, templateParams []Index, inline bool) Index {
	i := s.alloc(KindFuncDecl, pos)
	n := s.Node(i)
	n.Name = name
	n.Args = s.NewItems(params...)
	n.Args2 = s.NewItems(templateParams...)
	n.A = retType
	n.B = body
	if inline {
		n.SetFlag(FlagIsInline)
	}
	if len(templateParams) > 0 {
		n.SetFlag(FlagIsTemplate)
	}
	return i
}

func (s *Store) FuncParams(i Index) []Index         { return s.Items(s.Node(i).Args) }
func (s *Store) FuncTemplateParams(i Index) []Index { return s.Items(s.Node(i).Args2) }
func (s *Store) FuncRetType(i Index) Index          { return s.Node(i).A }
func (s *Store) FuncBody(i Index) Index             { return s.Node(i).B }
func (s *Store) FuncIsExtern(i Index) bool          { return !s.Node(i).B.Valid() }

// NewStaticIf allocates a parse-time `#if (cond) { thenItems } else { elseItems }`
// declaration-position item. Expansion happens later, in C6.
func (s *Store) NewStaticIf(pos Position, cond Index, thenItems, elseItems []Index) Index {
	i := s.alloc(KindStaticIf, pos)
	n := s.Node(i)
	n.A = cond
	n.Args = s.NewItems(thenItems...)
	n.Args2 = s.NewItems(elseItems...)
	return i
}

func (s *Store) StaticIfCond(i Index) Index        { return s.Node(i).A }
func (s *Store) StaticIfThenItems(i Index) []Index { return s.Items(s.Node(i).Args) }
func (s *Store) StaticIfElseItems(i Index) []Index { return s.Items(s.Node(i).Args2) }

// NewStaticVersion allocates `#version(ID) { items } else { elseItems }`.
func (s *Store) NewStaticVersion(pos Position, versionID ident.ID, items, elseItems []Index) Index {
	i := s.alloc(KindStaticVersion, pos)
	n := s.Node(i)
	n.Name = versionID
	n.Args = s.NewItems(items...)
	n.Args2 = s.NewItems(elseItems...)
	return i
}

func (s *Store) StaticVersionID(i Index) ident.ID     { return s.Node(i).Name }
func (s *Store) StaticVersionItems(i Index) []Index   { return s.Items(s.Node(i).Args) }
func (s *Store) StaticVersionElseItems(i Index) []Index { return s.Items(s.Node(i).Args2) }

// NewStaticForeach allocates `#foreach(keyId, valueId; iterable) { body }`.
func (s *Store) NewStaticForeach(pos Position, keyID, valueID ident.ID, iterable Index, body []Index) Index {
	i := s.alloc(KindStaticForeach, pos)
	n := s.Node(i)
	n.Name = keyID
	n.IntVal = int64(valueID)
	n.A = iterable
	n.Args = s.NewItems(body...)
	return i
}

func (s *Store) StaticForeachKeyID(i Index) ident.ID   { return s.Node(i).Name }
func (s *Store) StaticForeachValueID(i Index) ident.ID { return ident.ID(s.Node(i).IntVal) }
func (s *Store) StaticForeachIterable(i Index) Index   { return s.Node(i).A }
func (s *Store) StaticForeachBody(i Index) []Index     { return s.Items(s.Node(i).Args) }

// NewStaticAssert allocates `#assert(cond, "message");`.
func (s *Store) NewStaticAssert(pos Position, cond Index, message string) Index {
	i := s.alloc(KindStaticAssert, pos)
	n := s.Node(i)
	n.A = cond
	n.StrVal = message
	return i
}

func (s *Store) StaticAssertCond(i Index) Index     { return s.Node(i).A }
func (s *Store) StaticAssertMessage(i Index) string { return s.Node(i).StrVal }
