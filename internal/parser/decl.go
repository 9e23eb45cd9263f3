package parser

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/ident"
	"github.com/cwbudde/corec/internal/token"
)

// parseItemList parses a declaration-position list until stop, honoring the
// attribute-stack discipline: scope-level (`@a:`) attributes opened
// anywhere in the list are dropped once the list ends.
func (p *Parser) parseItemList(stop token.Kind) []ast.Index {
	base := p.enterItemList()
	var items []ast.Index
	for !p.at(stop) && !p.at(token.EOF) {
		items = append(items, p.parseItemOrAttrBlock()...)
	}
	p.exitItemList(base)
	return items
}

// parseItemOrAttrBlock handles one `@a @b { decls }` no_scope block (which
// contributes every inner declaration to the caller's list, not a wrapper
// node of its own) or exactly one ordinary item.
func (p *Parser) parseItemOrAttrBlock() []ast.Index {
	if p.parseAttributePrefix() {
		p.expect(token.LBrace)
		inner := p.parseItemList(token.RBrace)
		p.expect(token.RBrace)
		p.closeNoScope()
		return inner
	}
	if d := p.parseOneItem(); d.Valid() {
		return []ast.Index{d}
	}
	return nil
}

// parseOneItem parses exactly one declaration (or static-conditional
// declaration-position item) and stamps it with the currently effective
// attribute set.
func (p *Parser) parseOneItem() ast.Index {
	var d ast.Index
	switch p.cur() {
	case token.KwModule:
		d = p.parseModuleDecl()
	case token.KwImport:
		d = p.parseImportDecl()
	case token.KwAlias:
		d = p.parseAliasDecl()
	case token.KwStruct:
		d = p.parseStructOrUnion(ast.KindStructDecl)
	case token.KwUnion:
		d = p.parseStructOrUnion(ast.KindUnionDecl)
	case token.KwEnum:
		d = p.parseEnumDecl()
	case token.KwVar:
		d = p.parseVarDecl()
	case token.KwFn, token.KwInline:
		d = p.parseFuncDecl()
	case token.HashIf, token.HashVersion, token.HashForeach, token.HashAssert:
		d = p.parseStaticDirective(p.parseItemList)
	case token.Semicolon:
		p.advance() // stray `;` between declarations
		return ast.Undefined
	default:
		p.errorf(diag.ParUnexpectedToken, "unexpected token %s %q at declaration position", p.cur(), p.curText())
		p.skipPast(token.Semicolon)
		return ast.Undefined
	}
	if d.Valid() {
		p.attachAttributes(d)
	}
	return d
}

// parseModuleDecl re-parses a `module a.b.c;` line appearing mid-file, which
// the loader (internal/compiler) also recognizes before it begins this
// parse; here it is recorded only to detect a mismatch later, not acted on.
func (p *Parser) parseModuleDecl() ast.Index {
	pos := p.curPos()
	p.advance() // `module`
	path := p.parseDottedPath()
	p.expect(token.Semicolon)
	return p.store.NewModule(pos, path, nil)
}

func (p *Parser) parseImportDecl() ast.Index {
	pos := p.curPos()
	p.advance() // `import`
	path := p.parseDottedPath()
	p.expect(token.Semicolon)
	return p.store.NewImport(pos, path)
}

// parseDottedPath interns `a.b.c` as a single identifier whose text is the
// dotted spelling, matching how the loader keys its module/package tree.
func (p *Parser) parseDottedPath() ident.ID {
	var text string
	text += p.curText()
	p.advance()
	for p.accept(token.Dot) {
		text += "." + p.curText()
		p.advance()
	}
	return p.ids.GetOrIntern(text)
}

func (p *Parser) parseAliasDecl() ast.Index {
	pos := p.curPos()
	p.advance() // `alias`
	name := p.internIdent()
	p.expect(token.Assign)
	target := p.parseAliasTarget()
	p.expect(token.Semicolon)
	return p.store.NewAlias(pos, name, target)
}

// parseAliasTarget parses the right-hand side of `alias Name = ...;`: a type
// expression in the common case, left as an ordinary expression node in
// general so a later `#foreach`-discovered alias-array still fits (static
// expansion and name resolution resolve the distinction, not the parser).
func (p *Parser) parseAliasTarget() ast.Index {
	return p.parseTypeExpr()
}

func (p *Parser) parseStructOrUnion(kind ast.Kind) ast.Index {
	pos := p.curPos()
	p.advance() // `struct`/`union`
	name := p.internIdent()
	templateParams := p.parseOptionalTemplateParams()
	p.expect(token.LBrace)
	fields := p.parseFieldList(token.RBrace)
	p.expect(token.RBrace)
	return p.store.NewStructDecl(kind, pos, name, fields, templateParams)
}

// parseOptionalTemplateParams parses a `<T, U>` template parameter list, or
// returns nil if none is present.
func (p *Parser) parseOptionalTemplateParams() []ast.Index {
	if !p.accept(token.Less) {
		return nil
	}
	var params []ast.Index
	for !p.at(token.Greater) && !p.at(token.EOF) {
		pos := p.curPos()
		name := p.internIdent()
		params = append(params, p.store.NewParamDecl(pos, name, ast.Undefined, ast.Undefined, false))
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.Greater)
	return params
}

// parseFieldList parses a struct/union body's member list, a `bodyList`
// in its own right so `#if`/`#version`/`#foreach` nested inside one struct
// field list recurse back into this same function for their
// branches.
func (p *Parser) parseFieldList(stop token.Kind) []ast.Index {
	var fields []ast.Index
	for !p.at(stop) && !p.at(token.EOF) {
		if isStaticDirective(p.cur()) {
			fields = append(fields, p.parseStaticDirective(p.parseFieldList))
			continue
		}
		pos := p.curPos()
		name := p.internIdent()
		p.expect(token.Colon)
		typeExpr := p.parseTypeExpr()
		p.expect(token.Semicolon)
		fields = append(fields, p.store.NewFieldDecl(pos, name, typeExpr))
	}
	return fields
}

func (p *Parser) parseVarDecl() ast.Index {
	d := p.parseVarDeclNoSemi()
	p.expect(token.Semicolon)
	return d
}

// parseVarDeclNoSemi parses `var name [: T] [= init]` without consuming a trailing
// `;`, so a `for` loop's init clause can reuse it.
func (p *Parser) parseVarDeclNoSemi() ast.Index {
	pos := p.curPos()
	p.advance() // `var`
	name := p.internIdent()
	var typeExpr ast.Index
	if p.accept(token.Colon) {
		typeExpr = p.parseTypeExpr()
	}
	var init ast.Index
	if p.accept(token.Assign) {
		init = p.parseExpr(bpLowest)
	}
	return p.store.NewVarDecl(pos, name, typeExpr, init)
}

func (p *Parser) parseFuncDecl() ast.Index {
	pos := p.curPos()
	inline := p.accept(token.KwInline)
	p.expect(token.KwFn)
	name := p.internIdent()
	templateParams := p.parseOptionalTemplateParams()
	p.expect(token.LParen)
	params := p.parseParamList()
	p.expect(token.RParen)
	ret := p.store.Basic(ast.BasicVoid)
	if p.accept(token.Arrow) {
		ret = p.parseTypeExpr()
	}
	var body ast.Index
	if p.at(token.LBrace) {
		body = p.parseBlockStmt()
	} else {
		p.expect(token.Semicolon) // forward/extern declaration, no body
	}
	return p.store.NewFuncDecl(pos, name, params, ret, body, templateParams, inline)
}

func (p *Parser) parseParamList() []ast.Index {
	var params []ast.Index
	for !p.at(token.RParen) && !p.at(token.EOF) {
		pos := p.curPos()
		variadic := p.accept(token.Dot) && p.accept(token.Dot) && p.accept(token.Dot)
		name := p.internIdent()
		p.expect(token.Colon)
		typeExpr := p.parseTypeExpr()
		var def ast.Index
		if p.accept(token.Assign) {
			def = p.parseExpr(bpLowest)
		}
		params = append(params, p.store.NewParamDecl(pos, name, typeExpr, def, variadic))
		if !p.accept(token.Comma) {
			break
		}
	}
	return params
}
