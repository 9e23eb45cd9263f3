// Package token defines the pre-tokenized buffer format the parser
// consumes. The lexical tokenizer itself lives in internal/lexer; this
// package states only the
// minimal contract the parser needs: one Kind per token, a parallel start
// offset, and a way to recover the token's source text and position.
package token

// Kind tags one lexical token.
type Kind uint8

const (
	EOF Kind = iota
	Ident
	IntLit
	FloatLit
	StringLit

	// Keywords.
	KwModule
	KwImport
	KwAlias
	KwStruct
	KwUnion
	KwEnum
	KwFn
	KwVar
	KwIf
	KwElse
	KwWhile
	KwFor
	KwReturn
	KwBreak
	KwContinue
	KwTrue
	KwFalse
	KwNull
	KwCast
	KwInline
	KwThis

	// Directives (always introduced by `#`).
	HashIf
	HashVersion
	HashForeach
	HashAssert

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	Dot
	At
	Arrow

	// Operators.
	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	Bang
	Less
	Greater
	LessEq
	GreaterEq
	EqEq
	NotEq
	AmpAmp
	PipePipe
	Shl
	Shr
	PlusEq
	MinusEq
	StarEq
	SlashEq

	Illegal
)

var names = map[Kind]string{
	EOF: "EOF", Ident: "ident", IntLit: "int", FloatLit: "float", StringLit: "string",
	KwModule: "module", KwImport: "import", KwAlias: "alias", KwStruct: "struct",
	KwUnion: "union", KwEnum: "enum", KwFn: "fn", KwVar: "var", KwIf: "if", KwElse: "else",
	KwWhile: "while", KwFor: "for", KwReturn: "return", KwBreak: "break", KwContinue: "continue",
	KwTrue: "true", KwFalse: "false", KwNull: "null", KwCast: "cast", KwInline: "inline", KwThis: "this",
	HashIf: "#if", HashVersion: "#version", HashForeach: "#foreach", HashAssert: "#assert",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Comma: ",", Semicolon: ";", Colon: ":", Dot: ".", At: "@", Arrow: "->",
	Assign: "=", Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", Bang: "!",
	Less: "<", Greater: ">", LessEq: "<=", GreaterEq: ">=", EqEq: "==", NotEq: "!=",
	AmpAmp: "&&", PipePipe: "||", Shl: "<<", Shr: ">>",
	PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=",
	Illegal: "illegal",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// Keywords maps reserved identifier spellings to their keyword Kind.
var Keywords = map[string]Kind{
	"module": KwModule, "import": KwImport, "alias": KwAlias, "struct": KwStruct,
	"union": KwUnion, "enum": KwEnum, "fn": KwFn, "var": KwVar, "if": KwIf, "else": KwElse,
	"while": KwWhile, "for": KwFor, "return": KwReturn, "break": KwBreak, "continue": KwContinue,
	"true": KwTrue, "false": KwFalse, "null": KwNull, "cast": KwCast, "inline": KwInline, "this": KwThis,
}

// Directives maps the identifier following `#` to its directive Kind.
var Directives = map[string]Kind{
	"if": HashIf, "version": HashVersion, "foreach": HashForeach, "assert": HashAssert,
}

// Buffer is the pre-tokenized input the parser consumes: parallel Kind and
// start-offset slices plus the backing source text, exactly the "one u8 per
// token + parallel offset table + per-file first-token index" contract
// (the per-file first-token index is the caller's responsibility when
// concatenating multiple files' buffers; a single-file Buffer's first token
// is always index 0).
type Buffer struct {
	File   uint32
	Source string
	Kinds  []Kind
	Starts []uint32
	Ends   []uint32
}

// Len returns the number of tokens, including the trailing EOF.
func (b *Buffer) Len() int { return len(b.Kinds) }

// Text returns the source text of token i.
func (b *Buffer) Text(i int) string {
	return b.Source[b.Starts[i]:b.Ends[i]]
}

// Offset returns the byte offset of token i, the position a diagnostic
// anchors to.
func (b *Buffer) Offset(i int) uint32 { return b.Starts[i] }
