package main

import "strings"

// TokenType is the type of token (identifier, operator, literal, etc.).
type TokenType string

// Definition of token types
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + literals
	IDENT TokenType = "IDENT" // main, foo, _bar
	INT   TokenType = "INT"   // 12345
	FLOAT TokenType = "FLOAT" // 3.25

	// Operators
	ASSIGN TokenType = "="
	PLUS   TokenType = "+"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"

	// Keywords
	KW_INT   TokenType = "KW_INT"
	KW_FLOAT TokenType = "KW_FLOAT"
	KW_VOID  TokenType = "KW_VOID"
	RETURN   TokenType = "RETURN"
)

var keywords = map[string]TokenType{
	"int":    KW_INT,
	"float":  KW_FLOAT,
	"void":   KW_VOID,
	"return": RETURN,
}

// Lexer scans source text one token at a time.
//
// The input must end with a 0 byte; the lexer relies on it to stop without
// bounds checks.
type Lexer struct {
	input []byte
	pos   int
	line  int

	CurrTokenType TokenType
	CurrLiteral   string
	CurrLine      int // 1-based line of the current token
	CurrStart     int // byte offset of the current token
}

// NewLexer creates a lexer over the given input (must end with a 0 byte).
// Call NextToken to load the first token.
func NewLexer(input []byte) *Lexer {
	if len(input) == 0 || input[len(input)-1] != 0 {
		input = append(input[:len(input):len(input)], 0)
	}
	return &Lexer{input: input, line: 1}
}

// NextToken scans the next token into CurrTokenType, CurrLiteral and CurrLine.
// Call repeatedly until CurrTokenType == EOF.
func (l *Lexer) NextToken() {
	l.skipWhitespaceAndComments()

	c := l.input[l.pos]
	l.CurrLine = l.line
	l.CurrStart = l.pos

	switch {
	case c == 0:
		l.CurrTokenType = EOF
		l.CurrLiteral = ""
	case c == '=':
		l.single(ASSIGN)
	case c == '+':
		l.single(PLUS)
	case c == ',':
		l.single(COMMA)
	case c == ';':
		l.single(SEMICOLON)
	case c == '(':
		l.single(LPAREN)
	case c == ')':
		l.single(RPAREN)
	case c == '{':
		l.single(LBRACE)
	case c == '}':
		l.single(RBRACE)
	case isLetter(c):
		lit := l.readIdentifier()
		if kw, ok := keywords[lit]; ok {
			l.CurrTokenType = kw
		} else {
			l.CurrTokenType = IDENT
		}
		l.CurrLiteral = lit
	case isDigit(c):
		l.CurrTokenType, l.CurrLiteral = l.readNumber()
	default:
		l.single(ILLEGAL)
	}
}

// PeekToken returns the next token type without advancing the lexer.
func (l *Lexer) PeekToken() TokenType {
	savedPos, savedLine := l.pos, l.line
	savedType, savedLiteral := l.CurrTokenType, l.CurrLiteral
	savedCurrLine, savedCurrStart := l.CurrLine, l.CurrStart

	l.NextToken()
	next := l.CurrTokenType

	l.pos, l.line = savedPos, savedLine
	l.CurrTokenType, l.CurrLiteral = savedType, savedLiteral
	l.CurrLine, l.CurrStart = savedCurrLine, savedCurrStart
	return next
}

// Text returns the source between two byte offsets with runs of whitespace
// collapsed to single spaces.
func (l *Lexer) Text(start, end int) string {
	return strings.Join(strings.Fields(string(l.input[start:end])), " ")
}

func (l *Lexer) single(t TokenType) {
	l.CurrTokenType = t
	l.CurrLiteral = string(l.input[l.pos])
	l.pos++
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		c := l.input[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.input[l.pos+1] == '/':
			l.skipLineComment()
		case c == '/' && l.input[l.pos+1] == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for l.input[l.pos] != '\n' && l.input[l.pos] != 0 {
		l.pos++
	}
}

func (l *Lexer) skipBlockComment() {
	l.pos += 2 // skip /*
	for l.input[l.pos] != 0 && !(l.input[l.pos] == '*' && l.input[l.pos+1] == '/') {
		if l.input[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	if l.input[l.pos] == '*' {
		l.pos += 2 // skip */
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.input[l.pos]) || isDigit(l.input[l.pos]) {
		l.pos++
	}
	return string(l.input[start:l.pos])
}

// readNumber reads an unsigned numeral. A dot followed by at least one digit
// makes it a FLOAT; a bare trailing dot is left for the next token.
func (l *Lexer) readNumber() (TokenType, string) {
	start := l.pos
	for isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.input[l.pos] == '.' && isDigit(l.input[l.pos+1]) {
		l.pos++
		for isDigit(l.input[l.pos]) {
			l.pos++
		}
		return FLOAT, string(l.input[start:l.pos])
	}
	return INT, string(l.input[start:l.pos])
}
