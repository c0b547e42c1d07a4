package token

import "strings"

// Mask returns input with string literals and comments replaced by spaces.
// Line breaks inside them are kept, so offsets and line numbers are
// unchanged. Quoted identifiers are left intact.
func Mask(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	last := 0
	for _, t := range Tokenize(input) {
		if t.Kind != STRING && t.Kind != COMMENT {
			continue
		}
		b.WriteString(input[last:t.Offset])
		blank(&b, t.Text)
		last = t.End()
	}
	b.WriteString(input[last:])
	return b.String()
}

// Blank returns s with every byte except line breaks replaced by a space.
func Blank(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	blank(&b, s)
	return b.String()
}

func blank(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			b.WriteByte(s[i])
		} else {
			b.WriteByte(' ')
		}
	}
}

// Split divides tokens into statements at semicolons. The semicolons
// themselves are dropped; empty statements are skipped.
func Split(tokens []Token) [][]Token {
	var out [][]Token
	start := 0
	for i, t := range tokens {
		if t.IsPunct(";") {
			if i > start {
				out = append(out, tokens[start:i])
			}
			start = i + 1
		}
	}
	if start < len(tokens) {
		out = append(out, tokens[start:])
	}
	return out
}

// Matching returns the index of the token closing the parenthesis at open,
// or -1 when it is never closed.
func Matching(tokens []Token, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch {
		case tokens[i].IsPunct("("):
			depth++
		case tokens[i].IsPunct(")"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
