package ibex

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical unit of an expression. Tokens are values; two tokens are
// equal under == exactly when their kinds, texts, and argument counts match.
type Token struct {
	kind TokenKind
	text string
	args uint
}

// NewToken creates a token with an argument count of zero.
func NewToken(kind TokenKind, text string) Token {
	return Token{kind: kind, text: text}
}

// Kind returns the token's kind.
func (t Token) Kind() TokenKind {
	return t.kind
}

// Text returns the exact source text that produced the token.
func (t Token) Text() string {
	return t.text
}

// Args returns the number of arguments of a function call. It is only
// meaningful for identifiers in a translated postfix sequence.
func (t Token) Args() uint {
	return t.args
}

// withArgs returns a copy of t stamped with an argument count.
func (t Token) withArgs(n uint) Token {
	t.args = n
	return t
}

func (t Token) String() string {
	s := t.kind.String() + ":" + t.text
	if t.args != 0 {
		s += "[" + strconv.FormatUint(uint64(t.args), 10) + "]"
	}
	return s
}

// TokenKind is the tag of a token.
type TokenKind uint8

const (
	// TokenUnknown is any character the lexer does not recognize.
	TokenUnknown TokenKind = iota
	// TokenEnd marks the end of input. Tokenize never produces it, but the
	// translator accepts and ignores it.
	TokenEnd

	TokenInt
	TokenFloat
	// TokenIdent is a variable or function name.
	TokenIdent

	TokenComma
	TokenLParen
	TokenRParen

	TokenPlus
	TokenMinus
	TokenTimes
	TokenDiv
	TokenPow

	TokenUnaryPlus
	TokenUnaryMinus
	TokenNot

	TokenAnd
	TokenOr

	TokenEq
	TokenNeq
	TokenLt
	TokenLeq
	TokenGt
	TokenGeq
)

var kindnames = [...]string{
	TokenUnknown:    "Unknown",
	TokenEnd:        "End",
	TokenInt:        "Int",
	TokenFloat:      "Float",
	TokenIdent:      "Ident",
	TokenComma:      "Comma",
	TokenLParen:     "LParen",
	TokenRParen:     "RParen",
	TokenPlus:       "Plus",
	TokenMinus:      "Minus",
	TokenTimes:      "Times",
	TokenDiv:        "Div",
	TokenPow:        "Pow",
	TokenUnaryPlus:  "UnaryPlus",
	TokenUnaryMinus: "UnaryMinus",
	TokenNot:        "Not",
	TokenAnd:        "And",
	TokenOr:         "Or",
	TokenEq:         "Eq",
	TokenNeq:        "Neq",
	TokenLt:         "Lt",
	TokenLeq:        "Leq",
	TokenGt:         "Gt",
	TokenGeq:        "Geq",
}

func (k TokenKind) String() string {
	if int(k) < len(kindnames) {
		return kindnames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// IsBinary reports whether k is a binary operator.
func (k TokenKind) IsBinary() bool {
	op, ok := optable[k]
	return ok && !op.unary
}

// IsUnary reports whether k is a prefix unary operator.
func (k TokenKind) IsUnary() bool {
	op, ok := optable[k]
	return ok && op.unary
}

type lexer struct {
	src  string
	pos  int
	toks []Token
}

// Tokenize scans text into tokens. It never fails; characters it does not
// understand become TokenUnknown tokens, which Translate rejects.
func Tokenize(text string) []Token {
	l := lexer{src: text}
	for l.pos < len(l.src) {
		l.next()
	}
	return l.toks
}

// peek returns the rune at the current position and its width, or 0 at the
// end of input.
func (l *lexer) peek() (rune, int) {
	if l.pos >= len(l.src) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.src[l.pos:])
}

func (l *lexer) emit(kind TokenKind, start int) {
	l.toks = append(l.toks, Token{kind: kind, text: l.src[start:l.pos]})
}

// unaryContext reports whether a + or - at the current position is prefix.
func (l *lexer) unaryContext() bool {
	if len(l.toks) == 0 {
		return true
	}
	switch k := l.toks[len(l.toks)-1].kind; k {
	case TokenLParen, TokenComma:
		return true
	default:
		return k.IsUnary() || k.IsBinary()
	}
}

// next scans one token, or skips one whitespace rune.
func (l *lexer) next() {
	start := l.pos
	r, sz := l.peek()
	switch {
	case unicode.IsSpace(r):
		l.pos += sz
		return
	case isdigit(r):
		l.emit(l.scanNum(), start)
		return
	case r == '_', unicode.IsLetter(r):
		l.scanIdent()
		l.emit(TokenIdent, start)
		return
	}
	l.pos += sz
	switch r {
	case ',':
		l.emit(TokenComma, start)
	case '(':
		l.emit(TokenLParen, start)
	case ')':
		l.emit(TokenRParen, start)
	case '*':
		l.emit(TokenTimes, start)
	case '/':
		l.emit(TokenDiv, start)
	case '^':
		l.emit(TokenPow, start)
	case '+':
		if l.unaryContext() {
			l.emit(TokenUnaryPlus, start)
		} else {
			l.emit(TokenPlus, start)
		}
	case '-':
		if l.unaryContext() {
			l.emit(TokenUnaryMinus, start)
		} else {
			l.emit(TokenMinus, start)
		}
	case '!':
		l.emit(l.pair('=', TokenNeq, TokenNot), start)
	case '<':
		l.emit(l.pair('=', TokenLeq, TokenLt), start)
	case '>':
		l.emit(l.pair('=', TokenGeq, TokenGt), start)
	case '=':
		l.emit(l.pair('=', TokenEq, TokenUnknown), start)
	case '|':
		l.emit(l.pair('|', TokenOr, TokenUnknown), start)
	case '&':
		l.emit(l.pair('&', TokenAnd, TokenUnknown), start)
	default:
		l.emit(TokenUnknown, start)
	}
}

// pair consumes second if it is the next rune and returns two. Otherwise it
// consumes nothing and returns one.
func (l *lexer) pair(second rune, two, one TokenKind) TokenKind {
	if r, sz := l.peek(); r == second && sz > 0 {
		l.pos += sz
		return two
	}
	return one
}

// scanNum scans a decimal literal with an optional fraction and exponent.
// The exponent is only consumed if at least one digit follows it.
func (l *lexer) scanNum() TokenKind {
	kind := TokenInt
	l.digits()
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		l.digits()
		kind = TokenFloat
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		k := l.pos + 1
		if k < len(l.src) && (l.src[k] == '+' || l.src[k] == '-') {
			k++
		}
		if k < len(l.src) && isdigit(rune(l.src[k])) {
			l.pos = k
			l.digits()
			kind = TokenFloat
		}
	}
	return kind
}

func (l *lexer) digits() {
	for l.pos < len(l.src) && isdigit(rune(l.src[l.pos])) {
		l.pos++
	}
}

func (l *lexer) scanIdent() {
	for {
		r, sz := l.peek()
		if sz == 0 || !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return
		}
		l.pos += sz
	}
}

func isdigit(r rune) bool {
	return '0' <= r && r <= '9'
}
