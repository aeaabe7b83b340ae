package ibex

import "strconv"

// ErrorKind classifies the failures of translating or evaluating an
// expression.
type ErrorKind uint8

const (
	// MismatchedParens means grouping was unbalanced.
	MismatchedParens ErrorKind = iota + 1
	// UnexpectedToken means a token the translator cannot place, such as an
	// unrecognized character.
	UnexpectedToken
	// UnknownSymbol means an identifier named neither a variable nor a
	// function.
	UnknownSymbol
	// StackUnderflow means an operator or call lacked operands.
	StackUnderflow
	// MalformedPostfix means a postfix sequence did not reduce to exactly one
	// value.
	MalformedPostfix
	// InvalidArity means a function was called with an argument count it
	// does not accept.
	InvalidArity
)

func (k ErrorKind) String() string {
	switch k {
	case MismatchedParens:
		return "MismatchedParens"
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnknownSymbol:
		return "UnknownSymbol"
	case StackUnderflow:
		return "StackUnderflow"
	case MalformedPostfix:
		return "MalformedPostfix"
	case InvalidArity:
		return "InvalidArity"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// InputError is an error caused by the expression being translated or
// evaluated. Every error from Translate and Evaluate, other than errors
// returned by a Func, implements InputError.
type InputError interface {
	error
	// Kind returns the class of the error.
	Kind() ErrorKind
}

// ParenError is an error indicating an unmatched parenthesis.
type ParenError struct {
	// Token is the paren with no partner.
	Token Token
}

func (err *ParenError) Error() string {
	if err.Token.kind == TokenRParen {
		return "close paren with no open paren"
	}
	return "open paren with no close paren"
}

func (err *ParenError) Kind() ErrorKind {
	return MismatchedParens
}

// TokenError is an error indicating a token that is not part of the
// expression grammar.
type TokenError struct {
	// Token is the offending token.
	Token Token
}

func (err *TokenError) Error() string {
	return "unexpected token " + strconv.Quote(err.Token.text)
}

func (err *TokenError) Kind() ErrorKind {
	return UnexpectedToken
}

// NameError is an error from a lookup for a name that is neither a variable
// nor a function in the evaluation environment.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable or function: " + strconv.Quote(err.Name)
}

func (err *NameError) Kind() ErrorKind {
	return UnknownSymbol
}

// UnderflowError is an error indicating an operator or function call with
// fewer operands available than it needs.
type UnderflowError struct {
	// Token is the operator or function name.
	Token Token
	// Want is the number of operands needed.
	Want int
	// Have is the number of operands that were on the stack.
	Have int
}

func (err *UnderflowError) Error() string {
	return strconv.Quote(err.Token.text) + " needs " + strconv.Itoa(err.Want) + " operands but has " + strconv.Itoa(err.Have)
}

func (err *UnderflowError) Kind() ErrorKind {
	return StackUnderflow
}

// PostfixError is an error indicating a postfix sequence that is not a
// well-formed program.
type PostfixError struct {
	// Token is the token that cannot be evaluated. It is the zero Token if the
	// sequence was consumed but left the wrong number of values.
	Token Token
	// Depth is the number of values on the stack when the error occurred.
	Depth int
}

func (err *PostfixError) Error() string {
	if err.Token != (Token{}) {
		return "cannot evaluate " + err.Token.kind.String() + " token " + strconv.Quote(err.Token.text)
	}
	return "expression left " + strconv.Itoa(err.Depth) + " values instead of 1"
}

func (err *PostfixError) Kind() ErrorKind {
	return MalformedPostfix
}

// ArityError is an error indicating a function call with the wrong number of
// arguments.
type ArityError struct {
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
}

func (err *ArityError) Error() string {
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Len) + " arguments"
}

func (err *ArityError) Kind() ErrorKind {
	return InvalidArity
}

var (
	_ InputError = (*ParenError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*UnderflowError)(nil)
	_ InputError = (*PostfixError)(nil)
	_ InputError = (*ArityError)(nil)
)
