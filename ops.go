package ibex

// operator is an entry in the precedence table.
type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// unary indicates a prefix operator taking one operand.
	unary bool
}

// yields reports whether an operator already on the stack must be applied
// before incoming is pushed.
func (top operator) yields(incoming operator) bool {
	if top.prec != incoming.prec {
		return top.prec > incoming.prec
	}
	return !incoming.right
}

var optable = map[TokenKind]operator{
	TokenUnaryPlus:  {7, true, true},
	TokenUnaryMinus: {7, true, true},
	TokenNot:        {7, true, true},

	TokenPow: {8, true, false},

	TokenTimes: {5, false, false},
	TokenDiv:   {5, false, false},

	TokenPlus:  {4, false, false},
	TokenMinus: {4, false, false},

	TokenEq:  {3, false, false},
	TokenNeq: {3, false, false},
	TokenLt:  {3, false, false},
	TokenLeq: {3, false, false},
	TokenGt:  {3, false, false},
	TokenGeq: {3, false, false},

	TokenAnd: {2, false, false},
	TokenOr:  {1, false, false},
}
