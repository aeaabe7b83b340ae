package ibex

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Evaluate executes a postfix token sequence, as produced by Translate, with
// a stack machine. Identifiers resolve first to variables, then to functions.
// The result is an error if any name is missing, any operator lacks operands,
// or the sequence does not leave exactly one value.
//
// Arithmetic follows IEEE 754; in particular, division by zero is not an
// error. Comparisons and logical operators produce 1 for true and 0 for
// false, and logical operators treat any nonzero operand as true.
func Evaluate(postfix []Token, vars Variables, funcs Functions) (float64, error) {
	stack := make([]float64, 0, 8)
	for _, tok := range postfix {
		switch {
		case tok.kind == TokenInt, tok.kind == TokenFloat:
			v, err := parsenum(tok.text)
			if err != nil {
				return 0, &PostfixError{Token: tok, Depth: len(stack)}
			}
			stack = append(stack, v)
		case tok.kind == TokenIdent:
			if v, ok := vars[tok.text]; ok {
				stack = append(stack, v)
				continue
			}
			fn := funcs[tok.text]
			if fn == nil {
				return 0, &NameError{Name: tok.text}
			}
			n := int(tok.args)
			if len(stack) < n {
				return 0, &UnderflowError{Token: tok, Want: n, Have: len(stack)}
			}
			if !fn.CanCall(n) {
				return 0, &ArityError{Func: tok.text, Len: n}
			}
			// The last n values on the stack are the arguments in source
			// order. Copy them so the function can't alias the stack.
			k := len(stack) - n
			args := make([]float64, n)
			copy(args, stack[k:])
			r, err := fn.Call(args)
			if err != nil {
				return 0, err
			}
			stack = append(stack[:k], r)
		case tok.kind.IsBinary():
			if len(stack) < 2 {
				return 0, &UnderflowError{Token: tok, Want: 2, Have: len(stack)}
			}
			r := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			l := &stack[len(stack)-1]
			*l = binary(tok.kind, *l, r)
		case tok.kind.IsUnary():
			if len(stack) < 1 {
				return 0, &UnderflowError{Token: tok, Want: 1, Have: 0}
			}
			v := &stack[len(stack)-1]
			*v = unary(tok.kind, *v)
		default:
			return 0, &PostfixError{Token: tok, Depth: len(stack)}
		}
	}
	if len(stack) != 1 {
		return 0, &PostfixError{Depth: len(stack)}
	}
	return stack[0], nil
}

// parsenum parses a numeric literal. Literals too large to represent become
// infinities.
func parsenum(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return v, nil
}

func binary(k TokenKind, l, r float64) float64 {
	switch k {
	case TokenPlus:
		return l + r
	case TokenMinus:
		return l - r
	case TokenTimes:
		return l * r
	case TokenDiv:
		return l / r
	case TokenPow:
		return math.Pow(l, r)
	case TokenEq:
		return truth(l == r)
	case TokenNeq:
		return truth(l != r)
	case TokenLt:
		return truth(l < r)
	case TokenLeq:
		return truth(l <= r)
	case TokenGt:
		return truth(l > r)
	case TokenGeq:
		return truth(l >= r)
	case TokenAnd:
		return truth(l != 0 && r != 0)
	case TokenOr:
		return truth(l != 0 || r != 0)
	default:
		panic("ibex: invalid binary operator " + k.String())
	}
}

func unary(k TokenKind, v float64) float64 {
	switch k {
	case TokenUnaryPlus:
		return v
	case TokenUnaryMinus:
		return -v
	case TokenNot:
		return truth(v == 0)
	default:
		panic("ibex: invalid unary operator " + k.String())
	}
}

func truth(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Program is a compiled expression that can be evaluated many times with
// different environments.
type Program struct {
	// postfix is the translated token sequence.
	postfix []Token
	// names is the list of variable names used in the expression.
	names []string
}

// Compile tokenizes and translates an expression.
func Compile(text string) (*Program, error) {
	toks := Tokenize(text)
	postfix, err := Translate(toks)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	p := Program{postfix: postfix}
	for i, tok := range toks {
		if tok.kind != TokenIdent || seen[tok.text] {
			continue
		}
		if i+1 < len(toks) && toks[i+1].kind == TokenLParen {
			continue
		}
		seen[tok.text] = true
		p.names = append(p.names, tok.text)
	}
	slices.Sort(p.names)
	return &p, nil
}

// Eval evaluates the program in an environment.
func (p *Program) Eval(env *Env) (float64, error) {
	return Evaluate(p.postfix, env.Vars, env.Funcs)
}

// Eval is a shortcut for p.Eval(env).
func (env *Env) Eval(p *Program) (float64, error) {
	return p.Eval(env)
}

// Vars returns the sorted names of the variables the program refers to. Names
// used as function calls are not included.
func (p *Program) Vars() []string {
	return append(([]string)(nil), p.names...)
}

// Postfix returns a copy of the program's postfix token sequence.
func (p *Program) Postfix() []Token {
	return append(([]Token)(nil), p.postfix...)
}

// String renders the program in reverse Polish notation. Prefix operators
// appear as u+, u-, and !, and function calls as name[n].
func (p *Program) String() string {
	var b strings.Builder
	for i, tok := range p.postfix {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch tok.kind {
		case TokenUnaryPlus, TokenUnaryMinus:
			b.WriteByte('u')
			b.WriteString(tok.text)
		case TokenIdent:
			b.WriteString(tok.text)
			if tok.args > 0 || !p.isvar(tok.text) {
				b.WriteByte('[')
				b.WriteString(strconv.FormatUint(uint64(tok.args), 10))
				b.WriteByte(']')
			}
		default:
			b.WriteString(tok.text)
		}
	}
	return b.String()
}

// isvar reports whether name is used as a variable in the program.
func (p *Program) isvar(name string) bool {
	for _, v := range p.names {
		if v == name {
			return true
		}
	}
	return false
}

// EvalString is a shortcut to compile an expression and evaluate it in a new
// environment holding the default constants and functions plus any options.
func EvalString(text string, opts ...EnvOption) (float64, error) {
	p, err := Compile(text)
	if err != nil {
		return 0, err
	}
	return p.Eval(NewEnv(opts...))
}
