package lang

import (
	"github.com/ardnew/doji/text"
)

// TokenKind identifies the lexical class of a [Token].
type TokenKind uint8

// Token kinds.
const (
	TokenInt TokenKind = iota
	TokenFloat
	TokenIdent

	TokenNil
	TokenTrue
	TokenFalse
	TokenFn
	TokenIf
	TokenFor
	TokenWhile

	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenColon
	TokenPeriod
	TokenComma

	TokenPlus
	TokenPlusEq
	TokenMinus
	TokenMinusEq
	TokenStar
	TokenStarEq
	TokenSlash
	TokenSlashEq
	TokenPercent
	TokenPercentEq
	TokenEq
	TokenEqEq
	TokenGt
	TokenGtEq
	TokenLt
	TokenLtEq
	TokenBang
	TokenBangEq
	TokenAndAnd
	TokenOrOr
	TokenAmp
	TokenBar
	TokenCaret
	TokenTilde

	TokenEOF

	tokenKindCount
)

var tokenKindName = [tokenKindCount]string{
	TokenInt:       "int",
	TokenFloat:     "float",
	TokenIdent:     "ident",
	TokenNil:       "nil",
	TokenTrue:      "true",
	TokenFalse:     "false",
	TokenFn:        "fn",
	TokenIf:        "if",
	TokenFor:       "for",
	TokenWhile:     "while",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenLBracket:  "[",
	TokenRBracket:  "]",
	TokenSemicolon: ";",
	TokenColon:     ":",
	TokenPeriod:    ".",
	TokenComma:     ",",
	TokenPlus:      "+",
	TokenPlusEq:    "+=",
	TokenMinus:     "-",
	TokenMinusEq:   "-=",
	TokenStar:      "*",
	TokenStarEq:    "*=",
	TokenSlash:     "/",
	TokenSlashEq:   "/=",
	TokenPercent:   "%",
	TokenPercentEq: "%=",
	TokenEq:        "=",
	TokenEqEq:      "==",
	TokenGt:        ">",
	TokenGtEq:      ">=",
	TokenLt:        "<",
	TokenLtEq:      "<=",
	TokenBang:      "!",
	TokenBangEq:    "!=",
	TokenAndAnd:    "&&",
	TokenOrOr:      "||",
	TokenAmp:       "&",
	TokenBar:       "|",
	TokenCaret:     "^",
	TokenTilde:     "~",
	TokenEOF:       "EOF",
}

func (k TokenKind) String() string {
	if k < tokenKindCount {
		return tokenKindName[k]
	}

	return "invalid"
}

// Display writes the display name of k.
func (k TokenKind) Display(b *text.Builder) {
	_, _ = b.WriteString(k.String())
}

// IsKeyword reports whether k is a reserved word.
func (k TokenKind) IsKeyword() bool { return k >= TokenNil && k <= TokenWhile }

// keywords maps each reserved word to its token kind. A word is a keyword
// only if the whole identifier matches.
var keywords = map[string]TokenKind{
	"nil":   TokenNil,
	"true":  TokenTrue,
	"false": TokenFalse,
	"fn":    TokenFn,
	"if":    TokenIf,
	"for":   TokenFor,
	"while": TokenWhile,
}

// Keywords returns the reserved words in declaration order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for k := TokenNil; k <= TokenWhile; k++ {
		words = append(words, k.String())
	}

	return words
}

// punct describes a punctuation character that forms a token alone or,
// when followed by next, a two-character token.
type punct struct {
	single TokenKind
	next   byte
	double TokenKind
}

// puncts is the longest-match punctuation table, indexed by first byte.
var puncts = [256]*punct{
	'(': {single: TokenLParen},
	')': {single: TokenRParen},
	'{': {single: TokenLBrace},
	'}': {single: TokenRBrace},
	'[': {single: TokenLBracket},
	']': {single: TokenRBracket},
	';': {single: TokenSemicolon},
	':': {single: TokenColon},
	'.': {single: TokenPeriod},
	',': {single: TokenComma},
	'~': {single: TokenTilde},
	'^': {single: TokenCaret},
	'+': {single: TokenPlus, next: '=', double: TokenPlusEq},
	'-': {single: TokenMinus, next: '=', double: TokenMinusEq},
	'*': {single: TokenStar, next: '=', double: TokenStarEq},
	'/': {single: TokenSlash, next: '=', double: TokenSlashEq},
	'%': {single: TokenPercent, next: '=', double: TokenPercentEq},
	'=': {single: TokenEq, next: '=', double: TokenEqEq},
	'>': {single: TokenGt, next: '=', double: TokenGtEq},
	'<': {single: TokenLt, next: '=', double: TokenLtEq},
	'!': {single: TokenBang, next: '=', double: TokenBangEq},
	'&': {single: TokenAmp, next: '&', double: TokenAndAnd},
	'|': {single: TokenBar, next: '|', double: TokenOrOr},
}

// Token is one lexical unit. It carries no decoded value: the span is its
// only payload.
type Token struct {
	Kind     TokenKind
	Span     Span
	Location Location // of the first byte
}

// Text returns the source bytes of t.
func (t Token) Text(src []byte) string { return t.Span.Text(src) }
