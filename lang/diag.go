package lang

import (
	"log/slog"

	"github.com/ardnew/doji/text"
)

// DiagnosticKind classifies a [Diagnostic].
type DiagnosticKind uint8

const (
	// LexicalError means no valid token could start or continue at the
	// reported location.
	LexicalError DiagnosticKind = iota
	// SyntaxError means a valid token appeared where the grammar does not
	// allow it.
	SyntaxError
)

func (k DiagnosticKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	default:
		return "error"
	}
}

// Diagnostic is a single source-located error message.
//
// A scanner and a parser each hold at most one diagnostic. The first one
// raised halts progress; later calls propagate it.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"     yaml:"kind"`
	Location Location       `json:"location" yaml:"location"`
	Span     Span           `json:"span"     yaml:"span"`
	Message  string         `json:"message"  yaml:"message"`
}

// Display writes d as "path:line:col: message".
func (d *Diagnostic) Display(b *text.Builder) {
	d.Location.Display(b)
	_, _ = b.WriteString(": ")
	_, _ = b.WriteString(d.Message)
}

func (d *Diagnostic) String() string {
	b := text.NewBuilder(nil, 0)
	d.Display(b)

	return b.String()
}

// Error implements the error interface.
func (d *Diagnostic) Error() string { return d.String() }

// Is reports whether target is [ErrParse], so that errors.Is(err, ErrParse)
// holds for every diagnostic.
func (d *Diagnostic) Is(target error) bool { return target == ErrParse }

// LogValue implements slog.LogValuer.
func (d *Diagnostic) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", d.Kind.String()),
		slog.Any("location", d.Location),
		slog.Any("span", d.Span),
		slog.String("message", d.Message),
	)
}
