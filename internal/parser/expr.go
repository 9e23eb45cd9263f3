package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/ident"
	"github.com/cwbudde/corec/internal/token"
)

// parseTypeExpr parses a type position: the same Pratt grammar as a value
// expression, but with preferType set so `T*`/`T[]`/`T[N]` parse as pointer/
// slice/array type constructors instead of multiplication/indexing, and a
// bare name parses as a NameUseType rather than an IdentUse (the
// prefer_type disambiguation). It stops before a following `=`, which
// always starts an initializer or default value rather than part of a type.
func (p *Parser) parseTypeExpr() ast.Index {
	save := p.preferType
	p.preferType = true
	t := p.parseExpr(bpAssign)
	p.preferType = save
	return t
}

// parseExpr is the Pratt entry point: parse a prefix term, then keep
// consuming infix/postfix operators whose binding power exceeds minBP.
func (p *Parser) parseExpr(minBP int) ast.Index {
	left := p.parsePrefix()
	for {
		k := p.cur()
		bp, ok := infixBP[k]
		if !ok || bp <= minBP {
			return left
		}
		left = p.parseInfixOrPostfix(left, bp)
	}
}

func (p *Parser) parsePrefix() ast.Index {
	pos := p.curPos()
	switch p.cur() {
	case token.Minus:
		p.advance()
		return p.store.NewUnaryExpr(pos, ast.OpNeg, p.parseExpr(bpPrefix))
	case token.Plus:
		p.advance()
		return p.store.NewUnaryExpr(pos, ast.OpPos, p.parseExpr(bpPrefix))
	case token.Bang:
		p.advance()
		return p.store.NewUnaryExpr(pos, ast.OpNot, p.parseExpr(bpPrefix))
	case token.Tilde:
		p.advance()
		return p.store.NewUnaryExpr(pos, ast.OpBitNot, p.parseExpr(bpPrefix))
	case token.Amp:
		p.advance()
		return p.store.NewAddrOfExpr(pos, p.parseExpr(bpPrefix))
	case token.Star:
		p.advance()
		return p.store.NewDerefExpr(pos, p.parseExpr(bpPrefix))
	case token.LParen:
		p.advance()
		inner := p.withoutPreferType(func() ast.Index { return p.parseExpr(bpLowest) })
		p.expect(token.RParen)
		return inner
	case token.KwCast:
		p.advance()
		p.expect(token.LParen)
		typeExpr := p.parseTypeExpr()
		p.expect(token.RParen)
		return p.store.NewCastExpr(pos, typeExpr, p.parseExpr(bpPrefix))
	case token.KwThis:
		p.advance()
		return p.store.NewIdentUse(pos, ident.This)
	case token.KwFn:
		return p.parseFuncTypeExpr()
	case token.Ident:
		name := p.internIdent()
		if p.preferType {
			return p.store.NewNameUseType(pos, name)
		}
		return p.store.NewIdentUse(pos, name)
	case token.IntLit:
		return p.parseIntLiteral()
	case token.FloatLit:
		return p.parseFloatLiteral()
	case token.StringLit:
		return p.parseStringLiteral()
	case token.KwTrue:
		p.advance()
		return p.store.NewBoolLiteral(pos, true)
	case token.KwFalse:
		p.advance()
		return p.store.NewBoolLiteral(pos, false)
	case token.KwNull:
		p.advance()
		return p.store.NewNullLiteral(pos)
	case token.LBracket:
		p.advance()
		var elems []ast.Index
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			elems = append(elems, p.parseExpr(bpAssign))
			if !p.accept(token.Comma) {
				break
			}
		}
		p.expect(token.RBracket)
		return p.store.NewArrayLiteral(pos, elems)
	default:
		p.errorf(diag.ParUnexpectedToken, "unexpected token %s %q in expression", p.cur(), p.curText())
		p.advance()
		return p.store.NewErrorExpr(pos)
	}
}

// parseInfixOrPostfix consumes one infix or postfix operator starting at
// the current token, given left already parsed and the operator's binding
// power bp.
func (p *Parser) parseInfixOrPostfix(left ast.Index, bp int) ast.Index {
	pos := p.curPos()
	k := p.cur()
	switch k {
	case token.LParen:
		p.advance()
		var args []ast.Index
		p.withoutPreferTypeVoid(func() {
			for !p.at(token.RParen) && !p.at(token.EOF) {
				args = append(args, p.parseExpr(bpAssign))
				if !p.accept(token.Comma) {
					break
				}
			}
		})
		p.expect(token.RParen)
		return p.store.NewCallExpr(pos, left, args)
	case token.LBracket:
		p.advance()
		if p.preferType {
			if p.accept(token.RBracket) {
				return p.store.NewSliceType(pos, left)
			}
			size := p.withoutPreferType(func() ast.Index { return p.parseExpr(bpLowest) })
			p.expect(token.RBracket)
			return p.store.NewArrayType(pos, left, size)
		}
		index := p.parseExpr(bpLowest)
		p.expect(token.RBracket)
		return p.store.NewIndexExpr(pos, left, index)
	case token.Dot:
		p.advance()
		name := p.internIdent()
		return p.store.NewMemberExpr(pos, left, name, false)
	case token.Star:
		p.advance()
		if p.preferType {
			return p.store.NewPointerType(pos, left)
		}
		return p.store.NewBinaryExpr(pos, ast.OpMul, left, p.parseExpr(bp))
	case token.Assign:
		p.advance()
		return p.store.NewAssignExpr(pos, left, p.parseExpr(bpAssign-1))
	default:
		p.advance()
		return p.store.NewBinaryExpr(pos, binOpFor(k), left, p.parseExpr(bp))
	}
}

func (p *Parser) withoutPreferType(f func() ast.Index) ast.Index {
	save := p.preferType
	p.preferType = false
	v := f()
	p.preferType = save
	return v
}

func (p *Parser) withoutPreferTypeVoid(f func()) {
	save := p.preferType
	p.preferType = false
	f()
	p.preferType = save
}

// parseFuncTypeExpr parses `fn(params) -> ret` as a function type node.
// parsePrefix dispatches every `fn` token here, whether or not preferType
// is set.
func (p *Parser) parseFuncTypeExpr() ast.Index {
	pos := p.curPos()
	p.advance() // `fn`
	p.expect(token.LParen)
	var params []ast.Index
	for !p.at(token.RParen) && !p.at(token.EOF) {
		params = append(params, p.parseExpr(bpLowest))
		if !p.accept(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	ret := p.store.Basic(ast.BasicVoid)
	if p.accept(token.Arrow) {
		ret = p.parseExpr(bpLowest)
	}
	return p.store.NewFuncType(pos, params, ret)
}

func binOpFor(k token.Kind) ast.BinaryOp {
	switch k {
	case token.Plus:
		return ast.OpAdd
	case token.Minus:
		return ast.OpSub
	case token.Star:
		return ast.OpMul
	case token.Slash:
		return ast.OpDiv
	case token.Percent:
		return ast.OpMod
	case token.Shl:
		return ast.OpShl
	case token.Shr:
		return ast.OpShr
	case token.Less:
		return ast.OpLt
	case token.LessEq:
		return ast.OpLe
	case token.Greater:
		return ast.OpGt
	case token.GreaterEq:
		return ast.OpGe
	case token.EqEq:
		return ast.OpEq
	case token.NotEq:
		return ast.OpNe
	case token.Amp:
		return ast.OpBitAnd
	case token.Caret:
		return ast.OpBitXor
	case token.Pipe:
		return ast.OpBitOr
	case token.AmpAmp:
		return ast.OpLogAnd
	case token.PipePipe:
		return ast.OpLogOr
	default:
		return ast.OpAdd
	}
}

func (p *Parser) parseIntLiteral() ast.Index {
	pos := p.curPos()
	text := p.curText()
	p.advance()
	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		if u, uerr := strconv.ParseUint(text, 0, 64); uerr == nil {
			v = int64(u)
		} else {
			p.errorf(diag.ParUnexpectedToken, "invalid integer literal %q", text)
		}
	}
	return p.store.NewIntLiteral(pos, v)
}

func (p *Parser) parseFloatLiteral() ast.Index {
	pos := p.curPos()
	text := p.curText()
	p.advance()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.errorf(diag.ParUnexpectedToken, "invalid float literal %q", text)
	}
	return p.store.NewFloatLiteral(pos, v)
}

func (p *Parser) parseStringLiteral() ast.Index {
	pos := p.curPos()
	v := p.stringLitValue()
	return p.store.NewStringLiteral(pos, v)
}

// stringLitValue reads the current string-literal token's text and consumes
// it, stripping the surrounding quotes the tokenizer leaves in place.
func (p *Parser) stringLitValue() string {
	text := p.curText()
	p.advance()
	if unquoted, err := strconv.Unquote(text); err == nil {
		return unquoted
	}
	return strings.Trim(text, `"`)
}
