package lang

import (
	"log/slog"

	"github.com/ardnew/doji/text"
)

// Span is a half-open byte range [Start, Start+Len) into one source buffer.
// Spans from different buffers must not be compared.
type Span struct {
	Start int `json:"start" yaml:"start"`
	Len   int `json:"len"   yaml:"len"`
}

// End returns the offset one past the last byte of s.
func (s Span) End() int { return s.Start + s.Len }

// IsEmpty reports whether s covers no bytes.
func (s Span) IsEmpty() bool { return s.Len == 0 }

// Join returns the smallest span covering both s and t.
func (s Span) Join(t Span) Span {
	start := min(s.Start, t.Start)

	return Span{Start: start, Len: max(s.End(), t.End()) - start}
}

// Text returns the bytes of src covered by s, clamped to the bounds of src.
func (s Span) Text(src []byte) string {
	start := min(max(s.Start, 0), len(src))
	end := min(max(s.End(), start), len(src))

	return string(src[start:end])
}

// Display writes s as "start..end".
func (s Span) Display(b *text.Builder) {
	b.WriteUint(uint64(s.Start))
	_, _ = b.WriteString("..")
	b.WriteUint(uint64(s.End()))
}

func (s Span) String() string {
	b := text.NewBuilder(nil, 0)
	s.Display(b)

	return b.String()
}

// LogValue implements slog.LogValuer.
func (s Span) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("start", s.Start),
		slog.Int("len", s.Len),
	)
}

// Location is a 1-based line and column within a named source.
type Location struct {
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Line   int    `json:"line"           yaml:"line"`
	Column int    `json:"column"         yaml:"column"`
}

// Display writes l as "path:line:col".
func (l Location) Display(b *text.Builder) {
	_, _ = b.WriteString(l.Path)
	_ = b.WriteByte(':')
	b.WriteUint(uint64(l.Line))
	_ = b.WriteByte(':')
	b.WriteUint(uint64(l.Column))
}

func (l Location) String() string {
	b := text.NewBuilder(nil, 0)
	l.Display(b)

	return b.String()
}

// LogValue implements slog.LogValuer.
func (l Location) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", l.Path),
		slog.Int("line", l.Line),
		slog.Int("column", l.Column),
	)
}
