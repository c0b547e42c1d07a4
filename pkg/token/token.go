// Package token provides a small, forgiving SQL lexer.
//
// It never fails: unterminated strings, quoted identifiers and block
// comments extend to the end of the input and are marked Open. Offsets are
// byte offsets into the input, so tokens can be used to rewrite text without
// moving anything.
package token

import (
	"fmt"
	"strings"
)

// Kind identifies the lexical class of a token.
type Kind int

// Token kinds.
const (
	EOF     Kind = iota
	WORD         // identifiers and keywords
	QUOTED       // "ident", `ident`, [ident]
	STRING       // 'literal'
	NUMBER       // 123, 4.5, 1e10
	PARAM        // ?, $1, :name, @name
	PUNCT        // operators and punctuation
	COMMENT      // -- line, # line, /* block */
	ILLEGAL
)

var kindNames = map[Kind]string{
	EOF:     "EOF",
	WORD:    "WORD",
	QUOTED:  "QUOTED",
	STRING:  "STRING",
	NUMBER:  "NUMBER",
	PARAM:   "PARAM",
	PUNCT:   "PUNCT",
	COMMENT: "COMMENT",
	ILLEGAL: "ILLEGAL",
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a lexical token with its byte offset in the input.
type Token struct {
	Kind   Kind
	Text   string // raw text including quotes and comment delimiters
	Offset int
	Open   bool // unterminated string, quoted identifier or block comment
}

// End returns the offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// Is reports whether the token is the given keyword, case-insensitively.
func (t Token) Is(keyword string) bool {
	return t.Kind == WORD && strings.EqualFold(t.Text, keyword)
}

// IsPunct reports whether the token is the given punctuation.
func (t Token) IsPunct(p string) bool {
	return t.Kind == PUNCT && t.Text == p
}

// IsIdent reports whether the token can name a table or column.
func (t Token) IsIdent() bool {
	return t.Kind == WORD || t.Kind == QUOTED
}

// Value returns the identifier the token names: quoted identifiers are
// unwrapped and doubled closing quotes collapsed.
func (t Token) Value() string {
	if t.Kind != QUOTED || len(t.Text) == 0 {
		return t.Text
	}
	open := t.Text[0]
	closeCh := open
	if open == '[' {
		closeCh = ']'
	}
	inner := t.Text[1:]
	if !t.Open && len(inner) > 0 {
		inner = inner[:len(inner)-1]
	}
	return strings.ReplaceAll(inner, string([]byte{closeCh, closeCh}), string(closeCh))
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Text, t.Offset)
}
