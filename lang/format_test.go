package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestProgram_Format(t *testing.T) {
	res := mustParse(t, "1 + x")

	tests := []struct {
		name   string
		indent int
		want   string
	}{
		{"sexpr", 0, "(+ 1 x)\n"},
		{
			"outline", 2,
			"program 0..5\n" +
				"  expr_stmt 0..5\n" +
				"    binary + 0..5\n" +
				"      int 1 0..1\n" +
				"      ident x 4..5\n",
		},
		{
			"outline wide", 4,
			"program 0..5\n" +
				"    expr_stmt 0..5\n" +
				"        binary + 0..5\n" +
				"            int 1 0..1\n" +
				"            ident x 4..5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := res.Program.Format(context.Background(), &buf, tt.indent); err != nil {
				t.Fatalf("Format error: %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Format =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestPrint_Details(t *testing.T) {
	res := mustParse(t, "{a: 2.5}.a(nil)")

	var buf bytes.Buffer
	if err := Print(&buf, res.Program, 1); err != nil {
		t.Fatalf("Print error: %v", err)
	}

	want := []string{
		"program 0..15",
		" expr_stmt 0..15",
		"  call 0..15",
		"   member 0..10",
		"    map 0..8",
		"     ident a 1..2",
		"     float 2.5 4..7",
		"    ident a 9..10",
		"   nil nil 11..14",
	}

	if got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("Print =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestToMap(t *testing.T) {
	res := mustParse(t, "-f(1, true)[k]")

	m := ToMap(res.Program)
	if m["type"] != "program" {
		t.Fatalf("type = %v", m["type"])
	}

	stmts, ok := m["stmts"].([]any)
	if !ok || len(stmts) != 1 {
		t.Fatalf("stmts = %#v", m["stmts"])
	}

	unary := stmts[0].(map[string]any)["expr"].(map[string]any)
	if unary["type"] != "unary" || unary["op"] != "-" {
		t.Errorf("unary = %v", unary)
	}

	index := unary["operand"].(map[string]any)
	if index["type"] != "index" {
		t.Errorf("index type = %v", index["type"])
	}

	call := index["object"].(map[string]any)
	args := call["args"].([]any)

	if got := args[0].(map[string]any)["value"]; got != int64(1) {
		t.Errorf("first arg = %#v, want int64(1)", got)
	}

	if got := args[1].(map[string]any)["value"]; got != true {
		t.Errorf("second arg = %#v, want true", got)
	}

	if ToMap(nil) != nil {
		t.Error("ToMap(nil) != nil")
	}
}

func TestProgram_FormatJSON(t *testing.T) {
	res := mustParse(t, "[a, 1.5]")

	for _, indent := range []int{0, 2} {
		var buf bytes.Buffer
		if err := res.Program.FormatJSON(context.Background(), &buf, indent); err != nil {
			t.Fatalf("FormatJSON(%d) error: %v", indent, err)
		}

		if multiline := strings.Count(buf.String(), "\n") > 1; multiline != (indent > 0) {
			t.Errorf("FormatJSON(%d) multiline = %v", indent, multiline)
		}

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
		}

		list := decoded["stmts"].([]any)[0].(map[string]any)["expr"].(map[string]any)
		if list["type"] != "list" {
			t.Errorf("type = %v, want list", list["type"])
		}

		items := list["items"].([]any)
		if got := items[1].(map[string]any)["value"]; got != 1.5 {
			t.Errorf("second item = %v, want 1.5", got)
		}

		span := list["span"].(map[string]any)
		if span["start"] != float64(0) || span["len"] != float64(8) {
			t.Errorf("span = %v", span)
		}
	}
}

func TestProgram_FormatYAML(t *testing.T) {
	res := mustParse(t, "a && b")

	tests := []struct {
		name   string
		indent int
		flow   bool
	}{
		{"flow", 0, true},
		{"block", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := res.Program.FormatYAML(context.Background(), &buf, tt.indent); err != nil {
				t.Fatalf("FormatYAML error: %v", err)
			}

			if got := strings.HasPrefix(buf.String(), "{"); got != tt.flow {
				t.Errorf("flow = %v, want %v:\n%s", got, tt.flow, buf.String())
			}

			var decoded map[string]any
			if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
			}

			if decoded["type"] != "program" {
				t.Errorf("type = %v, want program", decoded["type"])
			}

			expr := decoded["stmts"].([]any)[0].(map[string]any)["expr"].(map[string]any)
			if expr["op"] != "&&" {
				t.Errorf("op = %v, want &&", expr["op"])
			}
		})
	}
}

func TestKind(t *testing.T) {
	ar := NewArena(nil)
	t.Cleanup(ar.Release)

	tests := []struct {
		node Node
		want string
	}{
		{ar.NewNil(Span{}), "nil"},
		{ar.NewBool(Span{}, true), "bool"},
		{ar.NewInt(Span{}, 1), "int"},
		{ar.NewFloat(Span{}, 1), "float"},
		{ar.NewString(Span{}, "s"), "string"},
		{ar.NewIdent(Span{}, []byte("x")), "ident"},
		{ar.NewList(Span{}), "list"},
		{ar.NewMap(Span{}), "map"},
		{ar.NewBlock(Span{}, false), "block"},
		{ar.NewBoolCond(ar.NewNil(Span{})), "bool_cond"},
		{ar.NewIdentPattern(Span{}, []byte("p")), "ident_pattern"},
		{nil, "unknown"},
	}

	for _, tt := range tests {
		if got := Kind(tt.node); got != tt.want {
			t.Errorf("Kind(%T) = %q, want %q", tt.node, got, tt.want)
		}
	}
}
