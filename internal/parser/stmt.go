package parser

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/token"
)

func (p *Parser) parseBlockStmt() ast.Index {
	pos := p.curPos()
	p.expect(token.LBrace)
	stmts := p.parseStmtList(token.RBrace)
	p.expect(token.RBrace)
	return p.store.NewBlockStmt(pos, stmts)
}

func (p *Parser) parseStmtList(stop token.Kind) []ast.Index {
	var stmts []ast.Index
	for !p.at(stop) && !p.at(token.EOF) {
		if st := p.parseStmt(); st.Valid() {
			stmts = append(stmts, st)
		}
	}
	return stmts
}

func (p *Parser) parseStmt() ast.Index {
	switch p.cur() {
	case token.LBrace:
		return p.parseBlockStmt()
	case token.KwVar:
		return p.parseVarDecl()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwBreak:
		pos := p.curPos()
		p.advance()
		p.expect(token.Semicolon)
		return p.store.NewBreakStmt(pos)
	case token.KwContinue:
		pos := p.curPos()
		p.advance()
		p.expect(token.Semicolon)
		return p.store.NewContinueStmt(pos)
	case token.Semicolon:
		p.advance() // empty statement
		return ast.Undefined
	case token.HashIf, token.HashVersion, token.HashForeach, token.HashAssert:
		return p.parseStaticDirective(p.parseStmtList)
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseIfStmt() ast.Index {
	pos := p.curPos()
	p.advance() // `if`
	p.expect(token.LParen)
	cond := p.parseExpr(bpLowest)
	p.expect(token.RParen)
	thenStmt := p.parseStmt()
	var elseStmt ast.Index
	if p.accept(token.KwElse) {
		elseStmt = p.parseStmt()
	}
	return p.store.NewIfStmt(pos, cond, thenStmt, elseStmt)
}

func (p *Parser) parseWhileStmt() ast.Index {
	pos := p.curPos()
	p.advance() // `while`
	p.expect(token.LParen)
	cond := p.parseExpr(bpLowest)
	p.expect(token.RParen)
	body := p.parseStmt()
	return p.store.NewWhileStmt(pos, cond, body)
}

func (p *Parser) parseForStmt() ast.Index {
	pos := p.curPos()
	p.advance() // `for`
	p.expect(token.LParen)
	var init ast.Index
	if !p.at(token.Semicolon) {
		init = p.parseForClause()
	}
	p.expect(token.Semicolon)
	var cond ast.Index
	if !p.at(token.Semicolon) {
		cond = p.parseExpr(bpLowest)
	}
	p.expect(token.Semicolon)
	var post ast.Index
	if !p.at(token.RParen) {
		post = p.parseForClause()
	}
	p.expect(token.RParen)
	body := p.parseStmt()
	return p.store.NewForStmt(pos, init, cond, post, body)
}

// parseForClause parses one `for (init; cond; post)` clause, which is
// either a local variable declaration or an (assignment) expression,
// without consuming the `;`/`)` that follows it.
func (p *Parser) parseForClause() ast.Index {
	if p.at(token.KwVar) {
		return p.parseVarDeclNoSemi()
	}
	return p.parseAssignOrExprNoSemi()
}

func (p *Parser) parseReturnStmt() ast.Index {
	pos := p.curPos()
	p.advance() // `return`
	var expr ast.Index
	if !p.at(token.Semicolon) {
		expr = p.parseExpr(bpLowest)
	}
	p.expect(token.Semicolon)
	return p.store.NewReturnStmt(pos, expr)
}

func (p *Parser) parseExprOrAssignStmt() ast.Index {
	d := p.parseAssignOrExprNoSemi()
	p.expect(token.Semicolon)
	return d
}

// parseAssignOrExprNoSemi parses either a plain/compound assignment or a
// bare expression evaluated for effect, stopping just short of assignment
// operators when parsing the left-hand side (bpAssign) so `=`/`+=`/etc. are
// recognized here rather than folded into the expression grammar — the
// grammar keeps AssignStmt (statement position) and AssignExpr (nested
// expression position, e.g. `while ((n = next()) != null)`) distinct.
func (p *Parser) parseAssignOrExprNoSemi() ast.Index {
	pos := p.curPos()
	lhs := p.parseExpr(bpAssign)
	switch p.cur() {
	case token.Assign:
		p.advance()
		return p.store.NewAssignStmt(pos, lhs, p.parseExpr(bpLowest), 0)
	case token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq:
		op := uint16(p.cur())
		p.advance()
		return p.store.NewAssignStmt(pos, lhs, p.parseExpr(bpLowest), op)
	default:
		return p.store.NewExprStmt(pos, lhs)
	}
}
