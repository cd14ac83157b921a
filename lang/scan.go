package lang

import (
	"iter"
	"unicode/utf8"

	"github.com/ardnew/doji/alloc"
	"github.com/ardnew/doji/text"
)

// Scanner turns a source buffer into a stream of tokens, one per call to
// [Scanner.Next].
//
// A Scanner holds at most one [Diagnostic]. Once it is set, every further
// call to Next returns an EOF token at the failure point.
type Scanner struct {
	alloc *alloc.Allocator
	src   []byte
	pos   int
	loc   Location
	diag  *Diagnostic
}

// NewScanner returns a scanner over src. The path is used only to label
// locations. All diagnostics are charged against a.
func NewScanner(a *alloc.Allocator, path string, src []byte) *Scanner {
	return &Scanner{
		alloc: a,
		src:   src,
		loc:   Location{Path: path, Line: 1, Column: 1},
	}
}

// Diagnostic returns the pending diagnostic, or nil.
func (s *Scanner) Diagnostic() *Diagnostic { return s.diag }

// Location returns the location of the next unread byte.
func (s *Scanner) Location() Location { return s.loc }

// Source returns the buffer being scanned.
func (s *Scanner) Source() []byte { return s.src }

// Next returns the next token. At end of input it returns an EOF token with
// an empty span at len(src), and keeps doing so on every later call.
func (s *Scanner) Next() Token {
	if s.diag != nil {
		return s.eof()
	}

	s.skipWhitespace()

	start, loc := s.pos, s.loc

	if s.pos >= len(s.src) {
		return s.eof()
	}

	c := s.peek()

	switch {
	case isDigit(c):
		return s.number(start, loc)
	case isAlpha(c):
		return s.ident(start, loc)
	}

	if p := puncts[c]; p != nil {
		s.advance()

		if p.next != 0 && s.pos < len(s.src) && s.peek() == p.next {
			s.advance()

			return s.token(p.double, start, loc)
		}

		return s.token(p.single, start, loc)
	}

	s.fail(loc, TokenEOF.String())

	return s.eof()
}

// All returns an iterator over the remaining tokens, ending with (and
// including) the first EOF token. Check [Scanner.Diagnostic] afterwards.
func (s *Scanner) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := s.Next()
			if !yield(tok) || tok.Kind == TokenEOF {
				return
			}
		}
	}
}

func (s *Scanner) number(start int, loc Location) Token {
	kind := TokenInt

	for s.pos < len(s.src) {
		c := s.peek()
		if isDigit(c) {
			s.advance()

			continue
		}

		if c != '.' {
			break
		}

		if kind == TokenFloat {
			s.fail(s.loc, "digit")

			return s.eof()
		}

		// Only a '.' directly followed by a digit continues the literal.
		if s.pos+1 >= len(s.src) {
			s.advance()
			s.failEOF(s.loc, "digit")

			return s.eof()
		}

		if next := s.src[s.pos+1]; !isDigit(next) {
			s.advance()
			s.fail(s.loc, "digit")

			return s.eof()
		}

		kind = TokenFloat

		s.advance()
	}

	return s.token(kind, start, loc)
}

func (s *Scanner) ident(start int, loc Location) Token {
	for s.pos < len(s.src) && isAlnum(s.peek()) {
		s.advance()
	}

	if kind, ok := keywords[string(s.src[start:s.pos])]; ok {
		return s.token(kind, start, loc)
	}

	return s.token(TokenIdent, start, loc)
}

func (s *Scanner) token(kind TokenKind, start int, loc Location) Token {
	return Token{
		Kind:     kind,
		Span:     Span{Start: start, Len: s.pos - start},
		Location: loc,
	}
}

func (s *Scanner) eof() Token {
	return Token{
		Kind:     TokenEOF,
		Span:     Span{Start: s.pos},
		Location: s.loc,
	}
}

func (s *Scanner) peek() byte { return s.src[s.pos] }

func (s *Scanner) advance() {
	c := s.src[s.pos]
	s.pos++

	if c == '\n' {
		s.loc.Line++
		s.loc.Column = 1
	} else {
		s.loc.Column++
	}
}

func (s *Scanner) skipWhitespace() {
	for s.pos < len(s.src) && isWhitespace(s.peek()) {
		s.advance()
	}
}

// fail records "unexpected char 'c', expected 'want'" for the character at
// the current position. Bytes that are not valid UTF-8 are written as \xNN.
func (s *Scanner) fail(loc Location, want string) {
	const hex = "0123456789abcdef"

	r, size := utf8.DecodeRune(s.src[s.pos:])

	b := text.NewBuilder(s.alloc, 0)
	_, _ = b.WriteString("unexpected char '")

	if r == utf8.RuneError && size <= 1 {
		c := s.src[s.pos]
		_, _ = b.WriteString(`\x`)
		_ = b.WriteByte(hex[c>>4])
		_ = b.WriteByte(hex[c&0x0f])
	} else {
		_, _ = b.Write(s.src[s.pos : s.pos+size])
	}

	_, _ = b.WriteString("', expected '")
	_, _ = b.WriteString(want)
	_ = b.WriteByte('\'')

	msg := b.String()
	b.Destroy()

	s.setDiagnostic(loc, Span{Start: s.pos, Len: size}, msg)
}

// failEOF records "unexpected EOF, expected 'want'".
func (s *Scanner) failEOF(loc Location, want string) {
	b := text.NewBuilder(s.alloc, 0)
	_, _ = b.WriteString("unexpected ")
	TokenEOF.Display(b)
	_, _ = b.WriteString(", expected '")
	_, _ = b.WriteString(want)
	_ = b.WriteByte('\'')

	msg := b.String()
	b.Destroy()

	s.setDiagnostic(loc, Span{Start: s.pos}, msg)
}

func (s *Scanner) setDiagnostic(loc Location, span Span, msg string) {
	s.diag = newDiagnostic(s.alloc, s.diag, LexicalError, loc, span, msg)
}

// newDiagnostic allocates a diagnostic, releasing prev first.
func newDiagnostic(
	a *alloc.Allocator,
	prev *Diagnostic,
	kind DiagnosticKind,
	loc Location,
	span Span,
	msg string,
) *Diagnostic {
	if prev != nil {
		a.Free(alloc.SizeOf[Diagnostic](1) + len(prev.Message))
	}

	d := alloc.NewValue[Diagnostic](a)
	a.Alloc(len(msg))

	d.Kind = kind
	d.Location = loc
	d.Span = span
	d.Message = msg

	return d
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
