package parser

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/ident"
	"github.com/cwbudde/corec/internal/token"
)

// parseEnumDecl disambiguates the four declaration shapes an enum
// declaration can take by a small
// amount of lookahead after the `enum` keyword and, where needed, after one
// identifier:
//
//	enum X;             -- opaque manifest constant
//	enum X = expr;      -- inferred manifest constant
//	enum T X = expr;    -- typed manifest constant (two identifiers)
//	enum [X] [: T] { }  -- enum type with a member body
func (p *Parser) parseEnumDecl() ast.Index {
	pos := p.curPos()
	p.advance() // `enum`

	if p.at(token.LBrace) || p.at(token.Colon) {
		return p.parseEnumBody(pos, 0)
	}

	firstPos := p.curPos()
	first := p.internIdent()

	switch p.cur() {
	case token.LBrace, token.Colon:
		return p.parseEnumBody(pos, first)
	case token.Semicolon:
		p.advance()
		return p.store.NewEnumConstDecl(pos, ast.EnumSyntaxOpaque, first, ast.Undefined, ast.Undefined)
	case token.Assign:
		p.advance()
		value := p.parseExpr(bpLowest)
		p.expect(token.Semicolon)
		return p.store.NewEnumConstDecl(pos, ast.EnumSyntaxInferred, first, ast.Undefined, value)
	case token.Ident:
		typeExpr := p.store.NewNameUseType(firstPos, first)
		name := p.internIdent()
		p.expect(token.Assign)
		value := p.parseExpr(bpLowest)
		p.expect(token.Semicolon)
		return p.store.NewEnumConstDecl(pos, ast.EnumSyntaxTyped, name, typeExpr, value)
	default:
		p.errorf(diag.ParUnexpectedToken, "unexpected token %s after `enum %s`", p.cur(), p.ids.Text(first))
		p.skipPast(token.Semicolon)
		return ast.Undefined
	}
}

func (p *Parser) parseEnumBody(pos ast.Position, name ident.ID) ast.Index {
	var baseType ast.Index
	if p.accept(token.Colon) {
		baseType = p.parseTypeExpr()
	}
	p.expect(token.LBrace)
	members := p.parseEnumMemberList(token.RBrace)
	p.expect(token.RBrace)
	return p.store.NewEnumTypeDecl(pos, name, baseType, members)
}

// parseEnumMemberList parses a scoped enum's comma-separated member list, a
// `bodyList` in its own right so `#if`/`#version`/`#foreach` nested inside
// an enum body recurse back into this same function for their
// branches. A static directive needs no trailing comma of its own.
func (p *Parser) parseEnumMemberList(stop token.Kind) []ast.Index {
	var members []ast.Index
	for !p.at(stop) && !p.at(token.EOF) {
		if isStaticDirective(p.cur()) {
			members = append(members, p.parseStaticDirective(p.parseEnumMemberList))
			continue
		}
		mPos := p.curPos()
		mName := p.internIdent()
		var val ast.Index
		if p.accept(token.Assign) {
			val = p.parseExpr(bpLowest)
		}
		members = append(members, p.store.NewEnumMember(mPos, mName, val))
		if !p.accept(token.Comma) {
			break
		}
	}
	return members
}
