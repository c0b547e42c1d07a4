package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []Kind
		texts []string
	}{
		{
			name:  "select",
			input: "SELECT id, name FROM users",
			kinds: []Kind{WORD, WORD, PUNCT, WORD, WORD, WORD},
			texts: []string{"SELECT", "id", ",", "name", "FROM", "users"},
		},
		{
			name:  "quoted and strings",
			input: "SELECT \"my col\" FROM `t` WHERE a = 'it''s'",
			kinds: []Kind{WORD, QUOTED, WORD, QUOTED, WORD, WORD, PUNCT, STRING},
			texts: []string{"SELECT", `"my col"`, "FROM", "`t`", "WHERE", "a", "=", "'it''s'"},
		},
		{
			name:  "params",
			input: "a = ? AND b = $2 AND c = :name AND d = @p",
			kinds: []Kind{WORD, PUNCT, PARAM, WORD, WORD, PUNCT, PARAM, WORD, WORD, PUNCT, PARAM, WORD, WORD, PUNCT, PARAM},
		},
		{
			name:  "cast and numbers",
			input: "x::numeric(10,2) + 1.5e3",
			kinds: []Kind{WORD, PUNCT, WORD, PUNCT, NUMBER, PUNCT, NUMBER, PUNCT, PUNCT, NUMBER},
			texts: []string{"x", "::", "numeric", "(", "10", ",", "2", ")", "+", "1.5e3"},
		},
		{
			name:  "comments",
			input: "SELECT 1 -- trailing\n/* block */ # hash",
			kinds: []Kind{WORD, NUMBER, COMMENT, COMMENT, COMMENT},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			assert.Equal(t, tt.kinds, kinds(tokens))
			if tt.texts != nil {
				assert.Equal(t, tt.texts, texts(tokens))
			}
		})
	}
}

func TestTokenize_Unterminated(t *testing.T) {
	tokens := Tokenize("SELECT 'abc")
	require.Len(t, tokens, 2)
	assert.Equal(t, STRING, tokens[1].Kind)
	assert.True(t, tokens[1].Open)
	assert.Equal(t, "'abc", tokens[1].Text)

	tokens = Tokenize("/* never closed")
	require.Len(t, tokens, 1)
	assert.True(t, tokens[0].Open)
}

func TestToken_Value(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"my ""col"""`, `my "col"`},
		{"`order`", "order"},
		{"[Order Details]", "Order Details"},
		{"plain", "plain"},
		{`"open`, "open"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			require.Len(t, tokens, 1)
			assert.Equal(t, tt.want, tokens[0].Value())
		})
	}
}

func TestToken_Offsets(t *testing.T) {
	input := "SELECT  a\nFROM b"
	for _, tok := range Tokenize(input) {
		assert.Equal(t, tok.Text, input[tok.Offset:tok.End()])
	}
}

func TestMask(t *testing.T) {
	input := "SELECT 'from x' FROM t -- where\nWHERE a = 1"
	masked := Mask(input)

	assert.Len(t, masked, len(input))
	assert.NotContains(t, masked, "from x")
	assert.NotContains(t, masked, "where\n")
	assert.Contains(t, masked, "FROM t")
	assert.Contains(t, masked, "\nWHERE a = 1")
}

func TestSplit(t *testing.T) {
	stmts := Split(Code("SELECT 1; ; SELECT 2;"))
	require.Len(t, stmts, 2)
	assert.Equal(t, "1", stmts[0][1].Text)
	assert.Equal(t, "2", stmts[1][1].Text)
}

func TestMatching(t *testing.T) {
	tokens := Code("f(a, (b), c) x")
	assert.Equal(t, 9, Matching(tokens, 1))
	assert.Equal(t, -1, Matching(Code("f(a, (b)"), 1))
}
