package lang

// Node is implemented by every syntax tree node.
type Node interface {
	Span() Span
	node()
}

// Expr is an expression node: one of [*Literal], [*Ident], [*List], [*Map],
// [*Unary], [*Binary], [*Block], [*Call], [*Member], [*Index], [*If],
// [*While], or [*For].
type Expr interface {
	Node
	expr()
}

// Stmt is a statement node. [*ExprStmt] is the only variant.
type Stmt interface {
	Node
	stmt()
}

// Cond is the condition of an [If] or [While]: either [*BoolCond] or
// [*PatCond].
type Cond interface {
	Node
	cond()
}

// Pattern is the left side of a [PatCond]. [*IdentPattern] is the only
// variant.
type Pattern interface {
	Node
	pattern()
}

type base struct{ span Span }

func (b *base) Span() Span { return b.span }

func (*base) node() {}

// Program is an ordered sequence of statements.
type Program struct {
	base

	Stmts []Stmt
}

// ExprStmt is a statement consisting of a single expression.
type ExprStmt struct {
	base

	Expr Expr
}

func (*ExprStmt) stmt() {}

// LiteralKind identifies the type of a [Literal].
type LiteralKind uint8

// Literal kinds.
const (
	LiteralNil LiteralKind = iota
	LiteralBool
	LiteralInt
	LiteralFloat
	LiteralString
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNil:
		return "nil"
	case LiteralBool:
		return "bool"
	case LiteralInt:
		return "int"
	case LiteralFloat:
		return "float"
	case LiteralString:
		return "string"
	default:
		return "invalid"
	}
}

// Literal is a constant value decoded from its source span. Only the field
// selected by Kind is meaningful.
type Literal struct {
	base

	Kind  LiteralKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
}

// Value returns the decoded value as nil, bool, int64, float64, or string.
func (l *Literal) Value() any {
	switch l.Kind {
	case LiteralBool:
		return l.Bool
	case LiteralInt:
		return l.Int
	case LiteralFloat:
		return l.Float
	case LiteralString:
		return l.Str
	default:
		return nil
	}
}

// Ident is a reference to a name.
type Ident struct {
	base

	Name string
}

// List is an ordered sequence of element expressions.
type List struct {
	base

	Items []Expr
}

// MapEntry is one key/value pair of a [Map].
type MapEntry struct {
	Key   Expr
	Value Expr
}

// Map is an ordered sequence of key/value expression pairs.
type Map struct {
	base

	Entries []MapEntry
}

// UnaryOp is a prefix operator.
type UnaryOp uint8

// Unary operators.
const (
	UnaryNeg    UnaryOp = iota // -
	UnaryNot                   // !
	UnaryBitNot                // ~
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	case UnaryBitNot:
		return "~"
	default:
		return "?"
	}
}

// Unary applies a prefix operator to one operand.
type Unary struct {
	base

	Op      UnaryOp
	Operand Expr
}

// BinaryOp is an infix operator.
type BinaryOp uint8

// Binary operators.
const (
	BinaryAdd    BinaryOp = iota // +
	BinarySub                    // -
	BinaryMul                    // *
	BinaryDiv                    // /
	BinaryRem                    // %
	BinaryEq                     // ==
	BinaryNotEq                  // !=
	BinaryGt                     // >
	BinaryGtEq                   // >=
	BinaryLt                     // <
	BinaryLtEq                   // <=
	BinaryAnd                    // &&
	BinaryOr                     // ||
	BinaryBitAnd                 // &
	BinaryBitOr                  // |
	BinaryBitXor                 // ^

	binaryOpCount
)

var binaryOpName = [binaryOpCount]string{
	BinaryAdd:    "+",
	BinarySub:    "-",
	BinaryMul:    "*",
	BinaryDiv:    "/",
	BinaryRem:    "%",
	BinaryEq:     "==",
	BinaryNotEq:  "!=",
	BinaryGt:     ">",
	BinaryGtEq:   ">=",
	BinaryLt:     "<",
	BinaryLtEq:   "<=",
	BinaryAnd:    "&&",
	BinaryOr:     "||",
	BinaryBitAnd: "&",
	BinaryBitOr:  "|",
	BinaryBitXor: "^",
}

func (op BinaryOp) String() string {
	if op < binaryOpCount {
		return binaryOpName[op]
	}

	return "?"
}

// Binary applies an infix operator to two operands.
type Binary struct {
	base

	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Block is a sequence of statements. If HasValue is set, the value of the
// last statement is the value of the block.
type Block struct {
	base

	Stmts    []Stmt
	HasValue bool
}

// Call applies a callee to an ordered argument list.
type Call struct {
	base

	Callee Expr
	Args   []Expr
}

// Member selects a named field of an object: object.name.
type Member struct {
	base

	Object Expr
	Name   *Ident
}

// Index selects an element of an object by key: object[key].
type Index struct {
	base

	Object Expr
	Key    Expr
}

// If evaluates Then when Cond holds, otherwise Else. Else may be nil.
type If struct {
	base

	Cond Cond
	Then Expr
	Else Expr
}

// While evaluates Body for as long as Cond holds.
type While struct {
	base

	Cond Cond
	Body Expr
}

// For evaluates Body with Binding bound on each iteration.
type For struct {
	base

	Binding *Ident
	Body    Expr
}

// BoolCond is a condition that holds when Expr is true.
type BoolCond struct {
	base

	Expr Expr
}

// PatCond is a condition that holds when Value matches Pattern.
type PatCond struct {
	base

	Pattern Pattern
	Value   Expr
}

// IdentPattern matches any value and binds it to Name.
type IdentPattern struct {
	base

	Name string
}

func (*Literal) expr() {}
func (*Ident) expr()   {}
func (*List) expr()    {}
func (*Map) expr()     {}
func (*Unary) expr()   {}
func (*Binary) expr()  {}
func (*Block) expr()   {}
func (*Call) expr()    {}
func (*Member) expr()  {}
func (*Index) expr()   {}
func (*If) expr()      {}
func (*While) expr()   {}
func (*For) expr()     {}

func (*BoolCond) cond() {}
func (*PatCond) cond()  {}

func (*IdentPattern) pattern() {}
