package lang

import (
	"errors"
	"log/slog"
	"testing"
)

func TestSpan(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Span
		join  Span
		empty bool
	}{
		{"disjoint", Span{0, 2}, Span{5, 3}, Span{0, 8}, false},
		{"reversed", Span{5, 3}, Span{0, 2}, Span{0, 8}, false},
		{"nested", Span{0, 10}, Span{3, 2}, Span{0, 10}, false},
		{"empty", Span{4, 0}, Span{4, 0}, Span{4, 0}, true},
		{"empty at end", Span{0, 4}, Span{4, 0}, Span{0, 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Join(tt.b); got != tt.join {
				t.Errorf("Join = %v, want %v", got, tt.join)
			}

			if got := tt.a.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty = %v, want %v", got, tt.empty)
			}
		})
	}
}

func TestSpan_Text(t *testing.T) {
	src := []byte("hello world")

	tests := []struct {
		span Span
		want string
	}{
		{Span{0, 5}, "hello"},
		{Span{6, 5}, "world"},
		{Span{11, 0}, ""},
		{Span{6, 50}, "world"},
		{Span{50, 2}, ""},
		{Span{-3, 5}, "he"},
	}

	for _, tt := range tests {
		if got := tt.span.Text(src); got != tt.want {
			t.Errorf("%v.Text = %q, want %q", tt.span, got, tt.want)
		}
	}
}

func TestSpan_String(t *testing.T) {
	if got := (Span{2, 3}).String(); got != "2..5" {
		t.Errorf("String = %q, want %q", got, "2..5")
	}

	v := (Span{2, 3}).LogValue()
	if v.Kind() != slog.KindGroup || len(v.Group()) != 2 {
		t.Errorf("LogValue = %v", v)
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{Location{Path: "main.doji", Line: 3, Column: 14}, "main.doji:3:14"},
		{Location{Line: 1, Column: 1}, ":1:1"},
	}

	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}

func TestDiagnostic(t *testing.T) {
	d := &Diagnostic{
		Kind:     SyntaxError,
		Location: Location{Path: "main.doji", Line: 1, Column: 7},
		Span:     Span{6, 0},
		Message:  "unexpected EOF, expected )",
	}

	if got, want := d.Error(), "main.doji:1:7: unexpected EOF, expected )"; got != want {
		t.Errorf("Error = %q, want %q", got, want)
	}

	var err error = d
	if !errors.Is(err, ErrParse) {
		t.Error("diagnostic does not match ErrParse")
	}

	if errors.Is(err, ErrReadInput) {
		t.Error("diagnostic matches ErrReadInput")
	}

	attrs := d.LogValue().Group()
	if len(attrs) != 4 || attrs[0].Value.String() != "syntax error" {
		t.Errorf("LogValue = %v", attrs)
	}
}

func TestDiagnosticKind_String(t *testing.T) {
	tests := []struct {
		kind DiagnosticKind
		want string
	}{
		{LexicalError, "lexical error"},
		{SyntaxError, "syntax error"},
		{DiagnosticKind(9), "error"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}

func TestTokenKind(t *testing.T) {
	for k := range tokenKindCount {
		if k.String() == "" {
			t.Errorf("token kind %d has no display name", k)
		}

		if _, kw := keywords[k.String()]; k.IsKeyword() != kw {
			t.Errorf("%v: IsKeyword = %v", k, k.IsKeyword())
		}
	}

	if got := tokenKindCount.String(); got != "invalid" {
		t.Errorf("String = %q, want invalid", got)
	}

	want := []string{"nil", "true", "false", "fn", "if", "for", "while"}

	got := Keywords()
	if len(got) != len(want) {
		t.Fatalf("Keywords = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keywords[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
