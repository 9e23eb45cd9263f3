package parser

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/ident"
	"github.com/cwbudde/corec/internal/token"
)

// bodyList is the shape shared by every list-of-items parser this package
// has (module/struct items, struct fields, enum members, statements): parse
// until stop, returning whatever nodes resulted. Static conditionals are
// parsed once against this interface so `#if`/`#version`/`#foreach` work
// identically in all four declaration/statement/block/enum-body positions — only which concrete
// list parser backs them differs.
type bodyList func(stop token.Kind) []ast.Index

// parseStaticIf parses `#if (cond) { items } [else { items }]` as a single
// declaration-position node; C6 evaluates cond and splices the chosen
// branch into the surrounding list in place. body determines what
// kind of item the branches may contain: top-level/struct/enum items,
// struct fields, enum members, or statements.
func (p *Parser) parseStaticIf(body bodyList) ast.Index {
	pos := p.curPos()
	p.advance() // `#if`
	p.expect(token.LParen)
	cond := p.parseExpr(bpLowest)
	p.expect(token.RParen)
	p.expect(token.LBrace)
	thenItems := body(token.RBrace)
	p.expect(token.RBrace)
	elseItems := p.parseOptionalElseItems(body)
	return p.store.NewStaticIf(pos, cond, thenItems, elseItems)
}

// parseStaticVersion parses `#version(id) { items } [else { items }]`.
func (p *Parser) parseStaticVersion(body bodyList) ast.Index {
	pos := p.curPos()
	p.advance() // `#version`
	p.expect(token.LParen)
	id := p.internIdent()
	p.expect(token.RParen)
	p.expect(token.LBrace)
	items := body(token.RBrace)
	p.expect(token.RBrace)
	elseItems := p.parseOptionalElseItems(body)
	return p.store.NewStaticVersion(pos, id, items, elseItems)
}

func (p *Parser) parseOptionalElseItems(body bodyList) []ast.Index {
	if !p.accept(token.KwElse) {
		return nil
	}
	p.expect(token.LBrace)
	items := body(token.RBrace)
	p.expect(token.RBrace)
	return items
}

// parseStaticForeach parses `#foreach(keyId[, valueId]; iterable) { body }`.
func (p *Parser) parseStaticForeach(body bodyList) ast.Index {
	pos := p.curPos()
	p.advance() // `#foreach`
	p.expect(token.LParen)
	keyID := p.internIdent()
	var valueID ident.ID
	if p.accept(token.Comma) {
		valueID = p.internIdent()
	}
	p.expect(token.Semicolon)
	iterable := p.parseExpr(bpLowest)
	p.expect(token.RParen)
	p.expect(token.LBrace)
	items := body(token.RBrace)
	p.expect(token.RBrace)
	return p.store.NewStaticForeach(pos, keyID, valueID, iterable, items)
}

// parseStaticAssert parses `#assert(cond[, "message"]);`. It has no body of
// its own, so it needs no bodyList parameter and is shared verbatim across
// all four static-expansion positions.
func (p *Parser) parseStaticAssert() ast.Index {
	pos := p.curPos()
	p.advance() // `#assert`
	p.expect(token.LParen)
	cond := p.parseExpr(bpLowest)
	var msg string
	if p.accept(token.Comma) {
		msg = p.stringLitValue()
	}
	p.expect(token.RParen)
	p.expect(token.Semicolon)
	return p.store.NewStaticAssert(pos, cond, msg)
}

// parseStaticDirective dispatches cur's `#if`/`#version`/`#foreach`/`#assert`
// token to the matching parse function, threading body through for the
// first three. Callers check isStaticDirective(p.cur()) first.
func (p *Parser) parseStaticDirective(body bodyList) ast.Index {
	switch p.cur() {
	case token.HashIf:
		return p.parseStaticIf(body)
	case token.HashVersion:
		return p.parseStaticVersion(body)
	case token.HashForeach:
		return p.parseStaticForeach(body)
	default:
		return p.parseStaticAssert()
	}
}

func isStaticDirective(k token.Kind) bool {
	switch k {
	case token.HashIf, token.HashVersion, token.HashForeach, token.HashAssert:
		return true
	default:
		return false
	}
}
