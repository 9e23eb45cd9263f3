package parser

import (
	"github.com/cwbudde/corec/internal/ast"
	"github.com/cwbudde/corec/internal/diag"
	"github.com/cwbudde/corec/internal/ident"
	"github.com/cwbudde/corec/internal/token"
)

// attrGroupKind distinguishes the three shapes of the attribute stack
// discipline.
type attrGroupKind uint8

const (
	attrScope   attrGroupKind = iota // `@a @b : decls...` — active until the enclosing item list ends
	attrNoScope                      // `@a @b { decls }` — active only inside the braces
)

type attrGroup struct {
	attrs []ast.Attribute
	kind  attrGroupKind
}

// parseAttributePrefix parses zero or more `@name(args...)` occurrences
// followed by either `:` (scope-level), `{` (no_scope block, handled by the
// caller as its own item list), or neither (immediate, attaches to exactly
// the next declaration). It returns true when it opened a no_scope block
// the caller must now parse as an item list and close with closeNoScope.
func (p *Parser) parseAttributePrefix() (openedNoScope bool) {
	var attrs []ast.Attribute
	for p.at(token.At) {
		attrs = append(attrs, p.parseOneAttribute())
	}
	if len(attrs) == 0 {
		return false
	}
	switch {
	case p.accept(token.Colon):
		p.activeGroups = append(p.activeGroups, attrGroup{attrs: attrs, kind: attrScope})
	case p.at(token.LBrace):
		p.activeGroups = append(p.activeGroups, attrGroup{attrs: attrs, kind: attrNoScope})
		return true
	default:
		p.pendingImmediate = append(p.pendingImmediate, attrs...)
	}
	return false
}

func (p *Parser) parseOneAttribute() ast.Attribute {
	p.expect(token.At)
	name := p.internIdent()
	var args []ast.Index
	if p.accept(token.LParen) {
		for !p.at(token.RParen) && !p.at(token.EOF) {
			args = append(args, p.parseAttrArg())
			if !p.accept(token.Comma) {
				break
			}
		}
		p.expect(token.RParen)
	}
	return ast.Attribute{Name: name, Args: p.store.NewItems(args...), Effect: effectFor(p.ids, name, args, p.store)}
}

// parseAttrArg parses a single attribute argument: a bare identifier (e.g.
// `module`, `syscall`) is represented as an IdentUse so ExternModule/
// ExternSyscall can read it back uniformly with literal arguments.
func (p *Parser) parseAttrArg() ast.Index {
	pos := p.curPos()
	switch p.cur() {
	case token.Ident, token.KwModule:
		return p.store.NewIdentUse(pos, p.internIdent())
	case token.IntLit:
		return p.parseIntLiteral()
	case token.StringLit:
		lit := p.parseStringLiteral()
		// ExternModule reads a library name back as the literal's Name.
		p.store.Node(lit).Name = p.ids.GetOrIntern(p.store.Node(lit).StrVal)
		return lit
	default:
		p.errorf(diag.ParUnexpectedToken, "unexpected token %s in attribute argument", p.cur())
		p.advance()
		return p.store.NewErrorExpr(pos)
	}
}

func effectFor(ids *ident.Table, name ident.ID, args []ast.Index, s *ast.Store) ast.Effect {
	switch name {
	case ident.Extern:
		if len(args) > 0 {
			switch s.Node(args[0]).Name {
			case ident.Module:
				return ast.EffectExternModule
			case ident.Syscall:
				return ast.EffectExternSyscall
			}
		}
	default:
		if ids.Text(name) == "inline" {
			return ast.EffectInline
		}
	}
	return 0
}

// closeNoScope pops the most recently opened no_scope group once its `{ }`
// body has been fully parsed, dropping its attributes (they are dropped on
// scope exit).
func (p *Parser) closeNoScope() {
	if n := len(p.activeGroups); n > 0 {
		p.activeGroups = p.activeGroups[:n-1]
	}
}

// enterItemList returns the base length callers must pass to exitItemList
// once a module/struct/function/block/no_scope body's declaration list has
// been fully parsed, so scope-level (`:`) attributes opened inside it are
// dropped at its end rather than leaking into sibling lists.
func (p *Parser) enterItemList() int { return len(p.activeGroups) }

func (p *Parser) exitItemList(base int) {
	if base < len(p.activeGroups) {
		p.activeGroups = p.activeGroups[:base]
	}
}

// effectiveAttributes flattens every currently active scope/no_scope group
// plus any pending immediate attributes into the set that attaches to the
// declaration about to be built, then clears the immediate ones (they apply
// to exactly one declaration).
func (p *Parser) effectiveAttributes() []ast.Attribute {
	if len(p.activeGroups) == 0 && len(p.pendingImmediate) == 0 {
		return nil
	}
	var out []ast.Attribute
	for _, g := range p.activeGroups {
		out = append(out, g.attrs...)
	}
	out = append(out, p.pendingImmediate...)
	p.pendingImmediate = nil
	return out
}

// attachAttributes snapshots the effective attribute set onto decl's header,
// if any are active, precomputing the effect mask so later passes (the
// `@extern` lowering in C11, the inliner's use of `@inline`) need not rescan.
func (p *Parser) attachAttributes(decl ast.Index) {
	attrs := p.effectiveAttributes()
	if len(attrs) == 0 {
		return
	}
	info := &ast.AttributeInfo{Attrs: attrs}
	for _, a := range attrs {
		info.EffectMask |= a.Effect
	}
	p.store.SetAttrInfo(decl, info)
}
