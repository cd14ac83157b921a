package lang

import (
	"github.com/ardnew/doji/alloc"
)

// chunkNodes is the number of nodes in each slab chunk.
const chunkNodes = 32

type slab[T any] struct{ chunk []T }

// Arena owns every node of one syntax tree, along with any scratch memory
// used to build it. Nodes are carved from per-type chunks, and every byte is
// counted by the arena's own [alloc.Tracker] so that [Arena.Release] returns
// all of them at once. A tree must not be used after its arena is released.
type Arena struct {
	alloc   *alloc.Allocator
	tracker *alloc.Tracker
	nodes   int
	chunks  int

	programs  slab[Program]
	stmts     slab[ExprStmt]
	literals  slab[Literal]
	idents    slab[Ident]
	lists     slab[List]
	maps      slab[Map]
	unaries   slab[Unary]
	binaries  slab[Binary]
	blocks    slab[Block]
	calls     slab[Call]
	members   slab[Member]
	indexes   slab[Index]
	ifs       slab[If]
	whiles    slab[While]
	fors      slab[For]
	boolConds slab[BoolCond]
	patConds  slab[PatCond]
	patterns  slab[IdentPattern]
}

// NewArena returns an empty arena drawing from a's provider.
func NewArena(a *alloc.Allocator) *Arena {
	scoped, tracker := a.Scoped()

	return &Arena{alloc: scoped, tracker: tracker}
}

// Allocator returns the allocator charging the arena. Memory obtained from
// it is returned by [Arena.Release] unless freed earlier.
func (ar *Arena) Allocator() *alloc.Allocator { return ar.alloc }

// Nodes returns the number of nodes allocated.
func (ar *Arena) Nodes() int { return ar.nodes }

// Chunks returns the number of slab chunks allocated.
func (ar *Arena) Chunks() int { return ar.chunks }

// Bytes returns the number of bytes currently held by the arena.
func (ar *Arena) Bytes() int { return ar.tracker.Outstanding() }

// Release returns every byte held by the arena to its provider.
func (ar *Arena) Release() {
	ar.tracker.ReleaseAll()

	*ar = Arena{alloc: ar.alloc, tracker: ar.tracker}
}

func take[T any](ar *Arena, s *slab[T]) *T {
	if len(s.chunk) == cap(s.chunk) {
		s.chunk = alloc.Make[T](ar.alloc, 0, chunkNodes)
		ar.chunks++
	}

	s.chunk = s.chunk[:len(s.chunk)+1]
	ar.nodes++

	return &s.chunk[len(s.chunk)-1]
}

// own returns s as an arena-owned slice.
func own[T any](ar *Arena, s []T) []T {
	if len(s) == 0 {
		return nil
	}

	out := alloc.Make[T](ar.alloc, len(s), len(s))
	copy(out, s)

	return out
}

// str returns an arena-charged copy of b.
func (ar *Arena) str(b []byte) string {
	ar.alloc.Alloc(len(b))

	return string(b)
}

// NewProgram returns a program node.
func (ar *Arena) NewProgram(span Span, stmts ...Stmt) *Program {
	n := take(ar, &ar.programs)
	n.span = span
	n.Stmts = own(ar, stmts)

	return n
}

// NewExprStmt returns an expression statement spanning expr.
func (ar *Arena) NewExprStmt(expr Expr) *ExprStmt {
	n := take(ar, &ar.stmts)
	n.span = expr.Span()
	n.Expr = expr

	return n
}

// NewNil returns a nil literal.
func (ar *Arena) NewNil(span Span) *Literal {
	n := take(ar, &ar.literals)
	n.span = span
	n.Kind = LiteralNil

	return n
}

// NewBool returns a boolean literal.
func (ar *Arena) NewBool(span Span, v bool) *Literal {
	n := take(ar, &ar.literals)
	n.span = span
	n.Kind = LiteralBool
	n.Bool = v

	return n
}

// NewInt returns an integer literal.
func (ar *Arena) NewInt(span Span, v int64) *Literal {
	n := take(ar, &ar.literals)
	n.span = span
	n.Kind = LiteralInt
	n.Int = v

	return n
}

// NewFloat returns a floating-point literal.
func (ar *Arena) NewFloat(span Span, v float64) *Literal {
	n := take(ar, &ar.literals)
	n.span = span
	n.Kind = LiteralFloat
	n.Float = v

	return n
}

// NewString returns a string literal.
func (ar *Arena) NewString(span Span, v string) *Literal {
	n := take(ar, &ar.literals)
	n.span = span
	n.Kind = LiteralString
	n.Str = ar.str([]byte(v))

	return n
}

// NewIdent returns an identifier.
func (ar *Arena) NewIdent(span Span, name []byte) *Ident {
	n := take(ar, &ar.idents)
	n.span = span
	n.Name = ar.str(name)

	return n
}

// NewList returns a list literal.
func (ar *Arena) NewList(span Span, items ...Expr) *List {
	n := take(ar, &ar.lists)
	n.span = span
	n.Items = own(ar, items)

	return n
}

// NewMap returns a map literal.
func (ar *Arena) NewMap(span Span, entries ...MapEntry) *Map {
	n := take(ar, &ar.maps)
	n.span = span
	n.Entries = own(ar, entries)

	return n
}

// NewUnary returns a prefix operation.
func (ar *Arena) NewUnary(span Span, op UnaryOp, operand Expr) *Unary {
	n := take(ar, &ar.unaries)
	n.span = span
	n.Op = op
	n.Operand = operand

	return n
}

// NewBinary returns an infix operation spanning both operands.
func (ar *Arena) NewBinary(op BinaryOp, left, right Expr) *Binary {
	n := take(ar, &ar.binaries)
	n.span = left.Span().Join(right.Span())
	n.Op = op
	n.Left = left
	n.Right = right

	return n
}

// NewBlock returns a block.
func (ar *Arena) NewBlock(span Span, hasValue bool, stmts ...Stmt) *Block {
	n := take(ar, &ar.blocks)
	n.span = span
	n.Stmts = own(ar, stmts)
	n.HasValue = hasValue

	return n
}

// NewCall returns a call.
func (ar *Arena) NewCall(span Span, callee Expr, args ...Expr) *Call {
	n := take(ar, &ar.calls)
	n.span = span
	n.Callee = callee
	n.Args = own(ar, args)

	return n
}

// NewMember returns a member selection.
func (ar *Arena) NewMember(span Span, object Expr, name *Ident) *Member {
	n := take(ar, &ar.members)
	n.span = span
	n.Object = object
	n.Name = name

	return n
}

// NewIndex returns an index selection.
func (ar *Arena) NewIndex(span Span, object, key Expr) *Index {
	n := take(ar, &ar.indexes)
	n.span = span
	n.Object = object
	n.Key = key

	return n
}

// NewIf returns a conditional. otherwise may be nil.
func (ar *Arena) NewIf(span Span, cond Cond, then, otherwise Expr) *If {
	n := take(ar, &ar.ifs)
	n.span = span
	n.Cond = cond
	n.Then = then
	n.Else = otherwise

	return n
}

// NewWhile returns a while loop.
func (ar *Arena) NewWhile(span Span, cond Cond, body Expr) *While {
	n := take(ar, &ar.whiles)
	n.span = span
	n.Cond = cond
	n.Body = body

	return n
}

// NewFor returns a for loop.
func (ar *Arena) NewFor(span Span, binding *Ident, body Expr) *For {
	n := take(ar, &ar.fors)
	n.span = span
	n.Binding = binding
	n.Body = body

	return n
}

// NewBoolCond returns a boolean condition.
func (ar *Arena) NewBoolCond(expr Expr) *BoolCond {
	n := take(ar, &ar.boolConds)
	n.span = expr.Span()
	n.Expr = expr

	return n
}

// NewPatCond returns a pattern-match condition.
func (ar *Arena) NewPatCond(pattern Pattern, value Expr) *PatCond {
	n := take(ar, &ar.patConds)
	n.span = pattern.Span().Join(value.Span())
	n.Pattern = pattern
	n.Value = value

	return n
}

// NewIdentPattern returns a binding pattern.
func (ar *Arena) NewIdentPattern(span Span, name []byte) *IdentPattern {
	n := take(ar, &ar.patterns)
	n.span = span
	n.Name = ar.str(name)

	return n
}
