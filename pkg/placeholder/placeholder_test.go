package placeholder

import (
	"testing"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasVariables(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"SELECT * FROM $(table)", true},
		{"SELECT $(a), $(b)", true},
		{"SELECT * FROM users", false},
		{"SELECT $( FROM users", false},
		{"SELECT $() FROM users", false},
		{"SELECT ${a} FROM users", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, HasVariables(tt.text))
		})
	}
}

func TestEscape(t *testing.T) {
	escaped, vars := Escape("SELECT * FROM $(table) WHERE id = $(id)")

	assert.Equal(t, "SELECT * FROM placeholder_0 WHERE id = placeholder_1", escaped)
	require.Equal(t, 2, vars.Len())

	orig, ok := vars.Lookup("placeholder_0")
	assert.True(t, ok)
	assert.Equal(t, "$(table)", orig)

	occ := vars.Occurrences()
	assert.Equal(t, 14, occ[0].Offset)
	assert.Equal(t, "$(id)", occ[1].Original)
}

func TestEscape_NoVariablesIsIdentity(t *testing.T) {
	for _, text := range []string{"", "SELECT 1", "SELECT '$(' FROM t", "placeholder_3"} {
		escaped, vars := Escape(text)
		assert.Equal(t, text, escaped)
		assert.Equal(t, 0, vars.Len())
	}
}

func TestRevert_RoundTrip(t *testing.T) {
	texts := []string{
		"",
		"SELECT * FROM users",
		"SELECT $(a) FROM $(b)",
		"SELECT $(a), $(a) FROM t",
		"SELECT placeholder_0, $(x) FROM t",
		"SELECT $(a)\nFROM $(db).users\nWHERE x = $(v1)$(v2)",
		"$(a)$(b)$(c)$(d)$(e)$(f)$(g)$(h)$(i)$(j)$(k)$(l)",
		"SELECT $(unterminated FROM t",
	}

	for _, text := range texts {
		escaped, vars := Escape(text)
		assert.Equal(t, text, Revert(escaped, vars), "round trip of %q", text)
	}
}

func TestRevert_ForeignText(t *testing.T) {
	_, vars := Escape("SELECT $(col) FROM $(tbl)")

	assert.Equal(t, "syntax error near '$(tbl)'", Revert("syntax error near 'placeholder_1'", vars))
	assert.Equal(t, "no tokens here", Revert("no tokens here", vars))
	assert.Equal(t, "placeholder_9 stays", Revert("placeholder_9 stays", vars))
}

func TestAdjustErrorPositions(t *testing.T) {
	original := "SELECT $(column_name), x FROM t\nWHERE $(v) = 1 AND"
	escaped, vars := Escape(original)
	require.Equal(t, "SELECT placeholder_0, x FROM t\nWHERE placeholder_1 = 1 AND", escaped)

	at := func(line, col int) *core.Range {
		r := core.Range{Start: core.Position{Line: line, Column: col}, End: core.Position{Line: line, Column: col + 4}}
		return &r
	}

	errs := []core.Diagnostic{
		{Message: "unexpected FROM", Location: at(0, 24)},
		{Message: "at token", Location: at(0, 7)},
		{Message: "trailing AND near placeholder_1", Location: at(1, 24)},
		{Message: "no position"},
	}

	got := AdjustErrorPositions(errs, original, escaped, vars)
	require.Len(t, got, 4)

	// $(column_name) is one byte longer than placeholder_0.
	assert.Equal(t, 25, got[0].Location.Start.Column)
	assert.Equal(t, 29, got[0].Location.End.Column)

	// A token starting at the reported column does not shift it.
	assert.Equal(t, 7, got[1].Location.Start.Column)
	assert.Equal(t, 12, got[1].Location.End.Column)

	// $(v) is nine bytes shorter than placeholder_1; line 0 tokens are ignored.
	assert.Equal(t, 15, got[2].Location.Start.Column)
	assert.Equal(t, "trailing AND near $(v)", got[2].Message)

	assert.Nil(t, got[3].Location)

	assert.Equal(t, 24, errs[0].Location.Start.Column, "input must not be modified")
}

func TestAdjustErrorPositions_NoVariables(t *testing.T) {
	r := core.Range{}
	errs := []core.Diagnostic{{Message: "x", Location: &r}}

	got := AdjustErrorPositions(errs, "SELECT", "SELECT", VariableMap{})
	assert.Equal(t, errs, got)
}
