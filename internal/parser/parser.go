// Package parser implements the recursive-descent declaration/statement
// grammar and the Pratt expression parser of C4. It consumes a pre-
// tokenized token.Buffer (internal/lexer's output) and produces an
// ast.Store tree; static conditionals (#if/#version/#foreach/#assert) are
// parsed as ordinary declaration nodes — their expansion is deferred
// to C6 (internal/sema).
package parser

import (
	"fmt"

	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/ident"
	"github.com/cwbudde/corec/internal/token"
)

// Binding powers, highest binds tightest. Gaps
// are intentional (the constants need not be dense).
const (
	bpLowest    = 0
	bpAssign    = 30
	bpLogOr     = 70
	bpLogAnd    = 90
	bpBitOr     = 110
	bpBitXor    = 130
	bpBitAnd    = 150
	bpEquality  = 170
	bpCompare   = 190
	bpShift     = 210
	bpAdditive  = 230
	bpMul       = 250
	bpPrefix    = 290
	bpPostfix   = 310
)

var infixBP = map[token.Kind]int{
	token.Assign: bpAssign,
	token.PipePipe: bpLogOr,
	token.AmpAmp: bpLogAnd,
	token.Pipe: bpBitOr,
	token.Caret: bpBitXor,
	token.Amp: bpBitAnd,
	token.EqEq: bpEquality, token.NotEq: bpEquality,
	token.Less: bpCompare, token.Greater: bpCompare, token.LessEq: bpCompare, token.GreaterEq: bpCompare,
	token.Shl: bpShift, token.Shr: bpShift,
	token.Plus: bpAdditive, token.Minus: bpAdditive,
	token.Star: bpMul, token.Slash: bpMul, token.Percent: bpMul,
	token.LParen: bpPostfix, token.LBracket: bpPostfix, token.Dot: bpPostfix,
}

// Parser holds all mutable state for one parse. It is not reentrant.
type Parser struct {
	buf   *token.Buffer
	pos   int
	store *ast.Store
	ids   *ident.Table
	sink  *diag.Sink

	// preferType disambiguates `T*`/`T[]` (postfix type constructors) from
	// `a*b` (multiplication) and `arr[i]` (index).
	preferType bool

	activeGroups     []attrGroup
	pendingImmediate []ast.Attribute
}

// New returns a Parser over buf, writing nodes into store and diagnostics
// into sink.
func New(buf *token.Buffer, store *ast.Store, ids *ident.Table, sink *diag.Sink) *Parser {
	return &Parser{buf: buf, store: store, ids: ids, sink: sink}
}

func (p *Parser) cur() token.Kind    { return p.buf.Kinds[p.pos] }
func (p *Parser) curText() string    { return p.buf.Text(p.pos) }
func (p *Parser) curPos() ast.Position { return ast.Position{File: p.buf.File, Offset: p.buf.Offset(p.pos)} }

func (p *Parser) peek(n int) token.Kind {
	i := p.pos + n
	if i >= p.buf.Len() {
		return token.EOF
	}
	return p.buf.Kinds[i]
}

func (p *Parser) advance() int {
	i := p.pos
	if p.pos < p.buf.Len()-1 {
		p.pos++
	}
	return i
}

func (p *Parser) at(k token.Kind) bool { return p.cur() == k }

func (p *Parser) accept(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes k or records a diagnostic and resynchronizes via
// skipPast: recoverable errors continue parsing.
func (p *Parser) expect(k token.Kind) int {
	if p.at(k) {
		return p.advance()
	}
	p.errorf(diag.ParExpected, "expected %s, got %s %q", k, p.cur(), p.curText())
	return p.pos
}

func (p *Parser) errorf(code diag.Code, format string, args ...any) {
	r := &diag.Report{Code: code, Phase: diag.PhaseParse, Offset: p.buf.Offset(p.pos), File: p.buf.File}
	r.Message = fmt.Sprintf(format, args...)
	line, col := diag.LineCol(p.buf.Source, r.Offset)
	r.Line, r.Column = line, col
	p.sink.Add(r)
}

// skipPast advances until it finds stop or EOF, used to resynchronize after
// a parse error so one bad declaration does not swallow the rest of the
// file.
func (p *Parser) skipPast(stop token.Kind) {
	for !p.at(stop) && !p.at(token.EOF) {
		p.advance()
	}
	if p.at(stop) {
		p.advance()
	}
}

func (p *Parser) internIdent() ident.ID {
	text := p.curText()
	p.advance()
	return p.ids.GetOrIntern(text)
}

// ParseModule parses one file's worth of top-level items into a Module
// declaration node, under the given dotted module path. A file may omit
// `module a.b;`; callers that need the path for the module/package conflict
// check pass it in explicitly instead.
func (p *Parser) ParseModule(path ident.ID) ast.Index {
	pos := p.curPos()
	items := p.parseItemList(token.EOF)
	return p.store.NewModule(pos, path, items)
}
