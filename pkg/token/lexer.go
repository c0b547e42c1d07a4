package token

// Lexer tokenizes SQL input.
type Lexer struct {
	input string
	pos   int // offset of the next unread byte
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize returns every token in input, comments included.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.Next()
		if tok.Kind == EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Code returns the tokens of input without comments.
func Code(input string) []Token {
	all := Tokenize(input)
	out := all[:0]
	for _, t := range all {
		if t.Kind != COMMENT {
			out = append(out, t)
		}
	}
	return out
}

// Next returns the next token, skipping whitespace.
func (l *Lexer) Next() Token {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return Token{Kind: EOF, Offset: len(l.input)}
	}

	start := l.pos
	ch := l.input[l.pos]
	next := l.peek(1)

	switch {
	case ch == '-' && next == '-', ch == '#':
		l.skipLine()
		return l.token(COMMENT, start, false)
	case ch == '/' && next == '*':
		closed := l.skipBlockComment()
		return l.token(COMMENT, start, !closed)
	case ch == '\'':
		closed := l.skipQuoted('\'', '\'')
		return l.token(STRING, start, !closed)
	case ch == '"' || ch == '`':
		closed := l.skipQuoted(ch, ch)
		return l.token(QUOTED, start, !closed)
	case ch == '[':
		if l.bracketIdentifier() {
			closed := l.skipQuoted('[', ']')
			return l.token(QUOTED, start, !closed)
		}
		l.pos++
		return l.token(PUNCT, start, false)
	case isDigit(ch) || (ch == '.' && isDigit(next)):
		l.skipNumber()
		return l.token(NUMBER, start, false)
	case isWordStart(ch):
		l.skipWord()
		return l.token(WORD, start, false)
	case ch == '?':
		l.pos++
		return l.token(PARAM, start, false)
	case ch == '$' && isDigit(next):
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
		return l.token(PARAM, start, false)
	case (ch == ':' || ch == '@') && isWordStart(next):
		l.pos++
		l.skipWord()
		return l.token(PARAM, start, false)
	case ch == '@' && next == '@':
		l.pos += 2
		l.skipWord()
		return l.token(PARAM, start, false)
	}

	for _, op := range operators {
		if len(l.input)-l.pos >= len(op) && l.input[l.pos:l.pos+len(op)] == op {
			l.pos += len(op)
			return l.token(PUNCT, start, false)
		}
	}
	if isPunct(ch) {
		l.pos++
		return l.token(PUNCT, start, false)
	}
	l.pos++
	return l.token(ILLEGAL, start, false)
}

// operators lists multi-byte operators, longest first.
var operators = []string{"->>", "<=>", "<=", ">=", "<>", "!=", "||", "::", ":=", "=>", "->"}

func (l *Lexer) token(kind Kind, start int, open bool) Token {
	return Token{Kind: kind, Text: l.input[start:l.pos], Offset: start, Open: open}
}

func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) skipLine() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
}

func (l *Lexer) skipBlockComment() bool {
	l.pos += 2
	for l.pos < len(l.input) {
		if l.input[l.pos] == '*' && l.peek(1) == '/' {
			l.pos += 2
			return true
		}
		l.pos++
	}
	return false
}

// skipQuoted consumes a quoted run where a doubled closing quote escapes
// itself. Single-quoted strings also honor backslash escapes.
func (l *Lexer) skipQuoted(open, closeCh byte) bool {
	l.pos++
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == '\\' && open == '\'':
			l.pos += 2
			continue
		case ch == closeCh && l.peek(1) == closeCh:
			l.pos += 2
			continue
		case ch == closeCh:
			l.pos++
			return true
		}
		l.pos++
	}
	l.pos = len(l.input)
	return false
}

// bracketIdentifier reports whether '[' opens an identifier rather than an
// array subscript: the bracket must close on the same line around a word.
func (l *Lexer) bracketIdentifier() bool {
	for i := l.pos + 1; i < len(l.input); i++ {
		switch ch := l.input[i]; {
		case ch == ']':
			return i > l.pos+1 && isWordStart(l.input[l.pos+1])
		case ch == '\n' || ch == '[':
			return false
		case !isWordByte(ch) && ch != ' ':
			return false
		}
	}
	return false
}

func (l *Lexer) skipNumber() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case isDigit(ch) || ch == '.':
			l.pos++
		case (ch == 'e' || ch == 'E') && (isDigit(l.peek(1)) || ((l.peek(1) == '+' || l.peek(1) == '-') && isDigit(l.peek(2)))):
			l.pos += 2
		default:
			return
		}
	}
}

func (l *Lexer) skipWord() {
	for l.pos < len(l.input) && (isWordByte(l.input[l.pos]) || l.input[l.pos] == '$') {
		l.pos++
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isWordStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch >= 0x80
}

func isWordByte(ch byte) bool {
	return isWordStart(ch) || isDigit(ch)
}

func isPunct(ch byte) bool {
	switch ch {
	case '(', ')', ',', ';', '.', '*', '+', '-', '/', '%', '=', '<', '>', '!', '|', '&', '^', '~', ':', '[', ']', '{', '}', '$', '@':
		return true
	}
	return false
}

// IsWordByte reports whether ch can appear inside an unquoted identifier.
func IsWordByte(ch byte) bool {
	return isWordByte(ch)
}
