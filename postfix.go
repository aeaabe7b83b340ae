package ibex

// Translate converts a sequence of infix tokens into postfix order using the
// shunting-yard algorithm. Each function name in the result is stamped with
// the number of arguments in its call. Translate does not modify tokens.
//
// A function call is an identifier immediately followed by a left paren. Any
// other identifier is a variable reference.
func Translate(tokens []Token) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	// ops holds pending operators, left parens, and function names. A function
	// name is always directly beneath the left paren that opens its call.
	var ops []Token
	// nargs holds one argument count per open function call.
	var nargs []uint
	next := func(i int) TokenKind {
		if i+1 < len(tokens) {
			return tokens[i+1].kind
		}
		return TokenEnd
	}
	for i, tok := range tokens {
		switch tok.kind {
		case TokenInt, TokenFloat:
			out = append(out, tok)
		case TokenIdent:
			if next(i) == TokenLParen {
				ops = append(ops, tok)
			} else {
				out = append(out, tok)
			}
		case TokenLParen:
			ops = append(ops, tok)
			if iscall(ops) {
				if next(i) == TokenRParen {
					nargs = append(nargs, 0)
				} else {
					nargs = append(nargs, 1)
				}
			}
		case TokenComma:
			// The innermost open call counts the argument even when the
			// comma sits inside a plain group, as in max((1, 2)). A comma
			// outside any call only leaves extra values for Evaluate to
			// reject.
			ops, out = unwind(ops, out)
			if len(nargs) > 0 {
				nargs[len(nargs)-1]++
			}
		case TokenRParen:
			ops, out = unwind(ops, out)
			if len(ops) == 0 {
				return nil, &ParenError{Token: tok}
			}
			call := iscall(ops)
			ops = ops[:len(ops)-1]
			if call {
				fn := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				out = append(out, fn.withArgs(nargs[len(nargs)-1]))
				nargs = nargs[:len(nargs)-1]
			}
		case TokenEnd:
			// do nothing
		default:
			op, ok := optable[tok.kind]
			if !ok {
				return nil, &TokenError{Token: tok}
			}
			for len(ops) > 0 {
				top, ok := optable[ops[len(ops)-1].kind]
				if !ok || !top.yields(op) {
					break
				}
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		}
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		if _, ok := optable[top.kind]; !ok {
			return nil, &ParenError{Token: top}
		}
		out = append(out, top)
		ops = ops[:len(ops)-1]
	}
	return out, nil
}

// unwind moves operators from the stack to the output until a left paren is
// on top of the stack or the stack is empty.
func unwind(ops, out []Token) ([]Token, []Token) {
	for len(ops) > 0 && ops[len(ops)-1].kind != TokenLParen {
		out = append(out, ops[len(ops)-1])
		ops = ops[:len(ops)-1]
	}
	return ops, out
}

// iscall reports whether the top of the operator stack is the left paren of a
// function call.
func iscall(ops []Token) bool {
	n := len(ops)
	return n >= 2 && ops[n-1].kind == TokenLParen && ops[n-2].kind == TokenIdent
}
