package lang

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/doji/text"
)

// Display writes node as a parenthesized prefix expression, for example
// "(+ 1 (* 2 3))". Statements of a program are separated by newlines.
func Display(b *text.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		_, _ = b.WriteString("()")

	case *Program:
		for i, s := range n.Stmts {
			if i > 0 {
				_ = b.WriteByte('\n')
			}

			Display(b, s)
		}

	case *ExprStmt:
		Display(b, n.Expr)

	case *Literal:
		displayLiteral(b, n)

	case *Ident:
		_, _ = b.WriteString(n.Name)

	case *IdentPattern:
		_, _ = b.WriteString(n.Name)

	case *BoolCond:
		Display(b, n.Expr)

	case *Unary:
		displayList(b, n.Op.String(), n.Operand)

	case *Binary:
		displayList(b, n.Op.String(), n.Left, n.Right)

	case *List:
		displayList(b, "list", exprNodes(n.Items)...)

	case *Map:
		_, _ = b.WriteString("(map")

		for _, e := range n.Entries {
			_ = b.WriteByte(' ')
			displayList(b, "", e.Key, e.Value)
		}

		_ = b.WriteByte(')')

	case *Call:
		displayList(b, "call", append([]Node{n.Callee}, exprNodes(n.Args)...)...)

	case *Member:
		displayList(b, ".", n.Object, nodeOf(n.Name))

	case *Index:
		displayList(b, "index", n.Object, n.Key)

	case *Block:
		head := "block"
		if n.HasValue {
			head = "block-value"
		}

		displayList(b, head, stmtNodes(n.Stmts)...)

	case *If:
		if n.Else == nil {
			displayList(b, "if", n.Cond, n.Then)
		} else {
			displayList(b, "if", n.Cond, n.Then, n.Else)
		}

	case *While:
		displayList(b, "while", n.Cond, n.Body)

	case *For:
		displayList(b, "for", nodeOf(n.Binding), n.Body)

	case *PatCond:
		displayList(b, "match", n.Pattern, n.Value)
	}
}

// String returns the prefix-expression rendering of p.
func (p *Program) String() string {
	b := text.NewBuilder(nil, 0)
	Display(b, p)

	return b.String()
}

func displayList(b *text.Builder, head string, nodes ...Node) {
	_ = b.WriteByte('(')
	_, _ = b.WriteString(head)

	for i, n := range nodes {
		if head != "" || i > 0 {
			_ = b.WriteByte(' ')
		}

		Display(b, n)
	}

	_ = b.WriteByte(')')
}

func displayLiteral(b *text.Builder, l *Literal) {
	switch l.Kind {
	case LiteralNil:
		_, _ = b.WriteString("nil")
	case LiteralBool:
		_, _ = b.WriteString(strconv.FormatBool(l.Bool))
	case LiteralInt:
		b.WriteInt(l.Int)
	case LiteralFloat:
		b.WriteFloat(l.Float)
	case LiteralString:
		_, _ = b.WriteString(strconv.Quote(l.Str))
	}
}

// Kind returns the short lower-case name of the node's variant.
func Kind(node Node) string {
	switch n := node.(type) {
	case *Program:
		return "program"
	case *ExprStmt:
		return "expr_stmt"
	case *Literal:
		return n.Kind.String()
	case *Ident:
		return "ident"
	case *List:
		return "list"
	case *Map:
		return "map"
	case *Unary:
		return "unary"
	case *Binary:
		return "binary"
	case *Block:
		return "block"
	case *Call:
		return "call"
	case *Member:
		return "member"
	case *Index:
		return "index"
	case *If:
		return "if"
	case *While:
		return "while"
	case *For:
		return "for"
	case *BoolCond:
		return "bool_cond"
	case *PatCond:
		return "pat_cond"
	case *IdentPattern:
		return "ident_pattern"
	default:
		return "unknown"
	}
}

// Print writes an indented outline of node, one node per line with its
// kind, detail, and span.
func Print(w io.Writer, node Node, indent int) error {
	b := text.NewBuilder(nil, 0)
	printTree(b, node, max(indent, 1), 0)

	_, err := io.WriteString(w, b.String())

	return err
}

func printTree(b *text.Builder, node Node, indent, depth int) {
	b.Indent(depth * indent)
	_, _ = b.WriteString(Kind(node))

	if detail := nodeDetail(node); detail != "" {
		_ = b.WriteByte(' ')
		_, _ = b.WriteString(detail)
	}

	_ = b.WriteByte(' ')
	node.Span().Display(b)
	_ = b.WriteByte('\n')

	for child := range Children(node) {
		printTree(b, child, indent, depth+1)
	}
}

func nodeDetail(node Node) string {
	switch n := node.(type) {
	case *Literal:
		b := text.NewBuilder(nil, 0)
		displayLiteral(b, n)

		return b.String()
	case *Ident:
		return n.Name
	case *IdentPattern:
		return n.Name
	case *Unary:
		return n.Op.String()
	case *Binary:
		return n.Op.String()
	case *Block:
		if n.HasValue {
			return "value"
		}
	}

	return ""
}

// ToMap converts node into plain maps, slices, and scalars suitable for
// generic encoders.
func ToMap(node Node) map[string]any {
	if node == nil {
		return nil
	}

	m := map[string]any{
		"type": Kind(node),
		"span": map[string]any{
			"start": node.Span().Start,
			"len":   node.Span().Len,
		},
	}

	switch n := node.(type) {
	case *Program:
		m["stmts"] = mapNodes(stmtNodes(n.Stmts))
	case *ExprStmt:
		m["expr"] = ToMap(n.Expr)
	case *Literal:
		m["value"] = n.Value()
	case *Ident:
		m["name"] = n.Name
	case *IdentPattern:
		m["name"] = n.Name
	case *List:
		m["items"] = mapNodes(exprNodes(n.Items))
	case *Map:
		entries := make([]any, len(n.Entries))
		for i, e := range n.Entries {
			entries[i] = map[string]any{"key": ToMap(e.Key), "value": ToMap(e.Value)}
		}

		m["entries"] = entries
	case *Unary:
		m["op"] = n.Op.String()
		m["operand"] = ToMap(n.Operand)
	case *Binary:
		m["op"] = n.Op.String()
		m["left"] = ToMap(n.Left)
		m["right"] = ToMap(n.Right)
	case *Block:
		m["stmts"] = mapNodes(stmtNodes(n.Stmts))
		m["has_value"] = n.HasValue
	case *Call:
		m["callee"] = ToMap(n.Callee)
		m["args"] = mapNodes(exprNodes(n.Args))
	case *Member:
		m["object"] = ToMap(n.Object)
		m["name"] = n.Name.Name
	case *Index:
		m["object"] = ToMap(n.Object)
		m["key"] = ToMap(n.Key)
	case *If:
		m["cond"] = ToMap(n.Cond)
		m["then"] = ToMap(n.Then)

		if n.Else != nil {
			m["else"] = ToMap(n.Else)
		}
	case *While:
		m["cond"] = ToMap(n.Cond)
		m["body"] = ToMap(n.Body)
	case *For:
		m["binding"] = n.Binding.Name
		m["body"] = ToMap(n.Body)
	case *BoolCond:
		m["expr"] = ToMap(n.Expr)
	case *PatCond:
		m["pattern"] = ToMap(n.Pattern)
		m["value"] = ToMap(n.Value)
	}

	return m
}

func mapNodes(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = ToMap(n)
	}

	return out
}

// Format writes the program as a prefix expression. With a positive
// indent it writes the indented outline produced by [Print] instead.
func (p *Program) Format(_ context.Context, w io.Writer, indent int) error {
	if indent > 0 {
		return Print(w, p, indent)
	}

	_, err := io.WriteString(w, p.String()+"\n")

	return err
}

// FormatJSON writes the program as JSON to the writer.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(ToMap(p), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ToMap(p))
	}

	if err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", "json"))
	}

	_, err = w.Write(append(jsonData, '\n'))

	return err
}

// FormatYAML writes the program as YAML to the writer.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, ToMap(p), opts...)
	if err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", "yaml"))
	}

	_, err = w.Write(yamlData)

	return err
}
