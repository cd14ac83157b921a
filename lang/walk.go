package lang

import (
	"iter"
)

// Walk traverses the tree rooted at node in depth-first order, calling fn
// for each node. If fn returns false, Walk does not descend into that
// node's children.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	for child := range Children(node) {
		Walk(child, fn)
	}
}

// Children returns an iterator over the direct children of node in source
// order. Nil children, such as a missing else branch, are skipped.
func Children(node Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, child := range children(node) {
			if child != nil && !yield(child) {
				return
			}
		}
	}
}

func children(node Node) []Node {
	switch n := node.(type) {
	case *Program:
		return stmtNodes(n.Stmts)

	case *ExprStmt:
		return []Node{n.Expr}

	case *List:
		return exprNodes(n.Items)

	case *Map:
		out := make([]Node, 0, 2*len(n.Entries))
		for _, e := range n.Entries {
			out = append(out, e.Key, e.Value)
		}

		return out

	case *Unary:
		return []Node{n.Operand}

	case *Binary:
		return []Node{n.Left, n.Right}

	case *Block:
		return stmtNodes(n.Stmts)

	case *Call:
		return append([]Node{n.Callee}, exprNodes(n.Args)...)

	case *Member:
		return []Node{n.Object, nodeOf(n.Name)}

	case *Index:
		return []Node{n.Object, n.Key}

	case *If:
		return []Node{n.Cond, n.Then, n.Else}

	case *While:
		return []Node{n.Cond, n.Body}

	case *For:
		return []Node{nodeOf(n.Binding), n.Body}

	case *BoolCond:
		return []Node{n.Expr}

	case *PatCond:
		return []Node{n.Pattern, n.Value}

	default: // *Literal, *Ident, *IdentPattern
		return nil
	}
}

func exprNodes(exprs []Expr) []Node {
	out := make([]Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}

	return out
}

func stmtNodes(stmts []Stmt) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}

	return out
}

// nodeOf avoids storing a typed nil pointer in a Node interface.
func nodeOf(id *Ident) Node {
	if id == nil {
		return nil
	}

	return id
}
