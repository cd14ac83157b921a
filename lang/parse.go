package lang

import (
	"strconv"

	"github.com/ardnew/doji/alloc"
	"github.com/ardnew/doji/text"
)

// Parser builds a syntax tree from the tokens of one [Scanner] using
// precedence climbing.
//
// A Parser holds at most one [Diagnostic]. The first error, whether raised
// by the scanner or the parser, halts parsing and is reported by
// [Parser.Diagnostic].
type Parser struct {
	alloc *alloc.Allocator
	scan  *Scanner
	arena *Arena
	cfg   config

	tok    Token
	filled bool

	depth int
	diag  *Diagnostic
}

// NewParser returns a parser over src. Every node, diagnostic, and scratch
// buffer is charged to the parser's [Arena], which draws from a.
func NewParser(a *alloc.Allocator, path string, src []byte, opts ...Option) *Parser {
	arena := NewArena(a)

	return &Parser{
		alloc: arena.Allocator(),
		scan:  NewScanner(arena.Allocator(), path, src),
		arena: arena,
		cfg:   makeConfig(opts...),
	}
}

// Arena returns the arena owning the nodes built by p.
func (p *Parser) Arena() *Arena { return p.arena }

// Diagnostic returns the pending diagnostic, or nil.
func (p *Parser) Diagnostic() *Diagnostic { return p.diag }

// Parse parses the whole source as a program of exactly one expression
// statement, optionally terminated by ';'. It returns nil if a diagnostic
// was raised.
func (p *Parser) Parse() *Program {
	prog, err := p.parseProgram()
	if err != nil {
		return nil
	}

	return prog
}

func (p *Parser) parseProgram() (*Program, error) {
	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind == TokenSemicolon {
		p.advance()
	}

	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}

	span := Span{Len: len(p.scan.Source())}

	return p.arena.NewProgram(span, p.arena.NewExprStmt(expr)), nil
}

// parseExpr parses an expression whose operators all bind at least as
// tightly as minBP.
func (p *Parser) parseExpr(minBP int) (Expr, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	p.depth++
	defer func() { p.depth-- }()

	if p.depth > p.cfg.maxDepth {
		return nil, p.failDepth(tok)
	}

	var left Expr

	if bp, op := prefixBindingPower(tok.Kind); bp != noBinding {
		p.advance()

		if op == UnaryNeg {
			left, err = p.parseMinInt(tok)
			if err != nil {
				return nil, err
			}
		}

		if left == nil {
			operand, err := p.parseExpr(bp)
			if err != nil {
				return nil, err
			}

			left = p.arena.NewUnary(tok.Span.Join(operand.Span()), op, operand)
		}
	} else {
		left, err = p.parsePrimary()
		if err != nil {
			return nil, err
		}
	}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case TokenEOF, TokenSemicolon, TokenRBrace:
			return left, nil
		}

		if bp := postfixBindingPower(tok.Kind); bp != noBinding {
			if bp < minBP {
				return left, nil
			}

			left, err = p.parsePostfix(left)
			if err != nil {
				return nil, err
			}

			continue
		}

		lbp, rbp, op := infixBindingPower(tok.Kind)
		if lbp == noBinding || lbp < minBP {
			return left, nil
		}

		p.advance()

		right, err := p.parseExpr(rbp)
		if err != nil {
			return nil, err
		}

		left = p.arena.NewBinary(op, left, right)
	}
}

// parseMinInt folds a negated 9223372036854775808 into one int literal,
// since the magnitude alone does not fit in an int64. It returns nil for any
// other operand, leaving the caller to parse a unary negation.
func (p *Parser) parseMinInt(minus Token) (Expr, error) {
	tok, err := p.peek()
	if err != nil || tok.Kind != TokenInt {
		return nil, err
	}

	digits := tok.Text(p.scan.Source())
	if _, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return nil, nil
	}

	v, err := strconv.ParseInt("-"+digits, 10, 64)
	if err != nil {
		return nil, nil //nolint:nilerr // parsePrimary reports the range error
	}

	p.advance()

	next, err := p.peek()
	if err != nil {
		return nil, err
	}

	// A postfix operator binds the literal before the negation does.
	if postfixBindingPower(next.Kind) != noBinding {
		return nil, p.failRange(tok)
	}

	return p.arena.NewInt(minus.Span.Join(tok.Span), v), nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok, err := p.advance()
	if err != nil {
		return nil, err
	}

	src := p.scan.Source()

	switch tok.Kind {
	case TokenInt:
		v, err := strconv.ParseInt(tok.Text(src), 10, 64)
		if err != nil {
			return nil, p.failRange(tok)
		}

		return p.arena.NewInt(tok.Span, v), nil

	case TokenFloat:
		v, err := strconv.ParseFloat(tok.Text(src), 64)
		if err != nil {
			return nil, p.failRange(tok)
		}

		return p.arena.NewFloat(tok.Span, v), nil

	case TokenTrue, TokenFalse:
		return p.arena.NewBool(tok.Span, tok.Kind == TokenTrue), nil

	case TokenNil:
		return p.arena.NewNil(tok.Span), nil

	case TokenIdent:
		return p.arena.NewIdent(tok.Span, src[tok.Span.Start:tok.Span.End()]), nil

	case TokenLParen:
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}

		return expr, nil

	case TokenLBracket:
		return p.parseList(tok)

	case TokenLBrace:
		return p.parseMap(tok)

	default:
		return nil, p.unexpected(tok, nil)
	}
}

// parseList parses the remainder of a list literal after its opening '['.
func (p *Parser) parseList(open Token) (Expr, error) {
	items := alloc.NewVector[Expr](p.alloc, 0)

	end, err := p.parseSequence(TokenRBracket, func() error {
		item, err := p.parseExpr(0)
		if err != nil {
			return err
		}

		items.Push(item)

		return nil
	})
	if err != nil {
		return nil, err
	}

	list := p.arena.NewList(open.Span.Join(end.Span), items.Slice()...)
	items.Destroy()

	return list, nil
}

// parseMap parses the remainder of a map literal after its opening '{'.
func (p *Parser) parseMap(open Token) (Expr, error) {
	entries := alloc.NewVector[MapEntry](p.alloc, 0)

	end, err := p.parseSequence(TokenRBrace, func() error {
		key, err := p.parseExpr(0)
		if err != nil {
			return err
		}

		if _, err := p.expect(TokenColon); err != nil {
			return err
		}

		value, err := p.parseExpr(0)
		if err != nil {
			return err
		}

		entries.Push(MapEntry{Key: key, Value: value})

		return nil
	})
	if err != nil {
		return nil, err
	}

	m := p.arena.NewMap(open.Span.Join(end.Span), entries.Slice()...)
	entries.Destroy()

	return m, nil
}

// parsePostfix applies the postfix form introduced by the next token to
// left.
func (p *Parser) parsePostfix(left Expr) (Expr, error) {
	tok, err := p.advance()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case TokenPeriod:
		name, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}

		src := p.scan.Source()
		ident := p.arena.NewIdent(name.Span, src[name.Span.Start:name.Span.End()])

		return p.arena.NewMember(left.Span().Join(name.Span), left, ident), nil

	case TokenLParen:
		args := alloc.NewVector[Expr](p.alloc, 0)

		end, err := p.parseSequence(TokenRParen, func() error {
			arg, err := p.parseExpr(0)
			if err != nil {
				return err
			}

			args.Push(arg)

			return nil
		})
		if err != nil {
			return nil, err
		}

		call := p.arena.NewCall(left.Span().Join(end.Span), left, args.Slice()...)
		args.Destroy()

		return call, nil

	case TokenLBracket:
		key, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}

		end, err := p.expect(TokenRBracket)
		if err != nil {
			return nil, err
		}

		return p.arena.NewIndex(left.Span().Join(end.Span), left, key), nil

	default:
		return nil, p.unexpected(tok, nil)
	}
}

// parseSequence calls item for each element of a comma-separated sequence
// terminated by closer, allowing a trailing comma. It returns the closing
// token.
func (p *Parser) parseSequence(closer TokenKind, item func() error) (Token, error) {
	for {
		tok, err := p.peek()
		if err != nil {
			return tok, err
		}

		if tok.Kind == closer {
			return p.advance()
		}

		if err := item(); err != nil {
			return tok, err
		}

		tok, err = p.peek()
		if err != nil {
			return tok, err
		}

		if tok.Kind != TokenComma {
			return p.expect(closer)
		}

		p.advance()
	}
}

// peek returns the lookahead token, pulling it from the scanner if needed.
// A scanner diagnostic is forwarded verbatim.
func (p *Parser) peek() (Token, error) {
	if p.diag != nil {
		return p.tok, p.diag
	}

	if !p.filled {
		p.tok = p.scan.Next()
		p.filled = true
	}

	if d := p.scan.Diagnostic(); d != nil {
		p.diag = d

		return p.tok, d
	}

	return p.tok, nil
}

// advance consumes and returns the lookahead token.
func (p *Parser) advance() (Token, error) {
	tok, err := p.peek()
	if err == nil {
		p.filled = false
	}

	return tok, err
}

// expect consumes the lookahead token, raising a diagnostic unless it is of
// kind want.
func (p *Parser) expect(want TokenKind) (Token, error) {
	tok, err := p.advance()
	if err != nil {
		return tok, err
	}

	if tok.Kind != want {
		return tok, p.unexpected(tok, &want)
	}

	return tok, nil
}

// unexpected raises "unexpected <tok>" or "unexpected <tok>, expected
// <want>".
func (p *Parser) unexpected(tok Token, want *TokenKind) error {
	b := text.NewBuilder(p.alloc, 0)
	_, _ = b.WriteString("unexpected ")
	tok.Kind.Display(b)

	if want != nil {
		_, _ = b.WriteString(", expected ")
		want.Display(b)
	}

	return p.fail(tok, b)
}

func (p *Parser) failDepth(tok Token) error {
	b := text.NewBuilder(p.alloc, 0)
	_, _ = b.WriteString("expression nesting exceeds ")
	b.WriteInt(int64(p.cfg.maxDepth))

	return p.fail(tok, b)
}

func (p *Parser) failRange(tok Token) error {
	b := text.NewBuilder(p.alloc, 0)
	tok.Kind.Display(b)
	_, _ = b.WriteString(" literal out of range")

	return p.fail(tok, b)
}

// fail raises a syntax error at tok with the message accumulated in b.
func (p *Parser) fail(tok Token, b *text.Builder) error {
	msg := b.String()
	b.Destroy()

	p.diag = newDiagnostic(p.alloc, p.diag, SyntaxError, tok.Location, tok.Span, msg)

	return p.diag
}
