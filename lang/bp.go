package lang

// Binding powers. Higher binds tighter; noBinding marks a token that is not
// an operator in that position.
const (
	noBinding = -1
	prefixBP  = 19
)

type infixBinding struct {
	left, right int
	op          BinaryOp
}

// infixTable gives left < right for every operator so that operators of
// equal precedence associate left to right.
var infixTable = map[TokenKind]infixBinding{
	TokenOrOr:    {1, 2, BinaryOr},
	TokenAndAnd:  {3, 4, BinaryAnd},
	TokenEqEq:    {5, 6, BinaryEq},
	TokenBangEq:  {5, 6, BinaryNotEq},
	TokenLt:      {7, 8, BinaryLt},
	TokenLtEq:    {7, 8, BinaryLtEq},
	TokenGt:      {7, 8, BinaryGt},
	TokenGtEq:    {7, 8, BinaryGtEq},
	TokenBar:     {9, 10, BinaryBitOr},
	TokenCaret:   {11, 12, BinaryBitXor},
	TokenAmp:     {13, 14, BinaryBitAnd},
	TokenPlus:    {15, 16, BinaryAdd},
	TokenMinus:   {15, 16, BinarySub},
	TokenStar:    {17, 18, BinaryMul},
	TokenSlash:   {17, 18, BinaryDiv},
	TokenPercent: {17, 18, BinaryRem},
}

var postfixTable = map[TokenKind]int{
	TokenPeriod:   20,
	TokenLParen:   21,
	TokenLBracket: 22,
}

func prefixBindingPower(k TokenKind) (int, UnaryOp) {
	switch k {
	case TokenMinus:
		return prefixBP, UnaryNeg
	case TokenBang:
		return prefixBP, UnaryNot
	case TokenTilde:
		return prefixBP, UnaryBitNot
	default:
		return noBinding, 0
	}
}

func infixBindingPower(k TokenKind) (left, right int, op BinaryOp) {
	b, ok := infixTable[k]
	if !ok {
		return noBinding, noBinding, 0
	}

	return b.left, b.right, b.op
}

func postfixBindingPower(k TokenKind) int {
	if bp, ok := postfixTable[k]; ok {
		return bp
	}

	return noBinding
}
