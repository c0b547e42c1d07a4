// Package placeholder escapes embedded $(name) variables so SQL containing
// them can go through a grammar engine, and maps results back to the
// original text afterwards.
package placeholder

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlassist/pkg/core"
)

// TokenPrefix is the prefix of every synthetic token produced by Escape.
const TokenPrefix = "placeholder_"

var (
	variablePattern = regexp.MustCompile(`\$\([^)]+\)`)
	tokenPattern    = regexp.MustCompile(`\b` + TokenPrefix + `\d+\b`)
)

// Occurrence records one substituted variable.
type Occurrence struct {
	Token    string // Synthetic token, e.g. placeholder_0
	Original string // Original text, e.g. $(tenant)
	Offset   int    // Byte offset of Token in the escaped text
}

// Delta is the length change caused by reverting this occurrence.
func (o Occurrence) Delta() int {
	return len(o.Original) - len(o.Token)
}

// VariableMap maps synthetic tokens back to the variables they replaced.
// It is produced by one Escape call and only meaningful for that call's output.
// The zero value is an empty map.
type VariableMap struct {
	escaped     string
	tokens      map[string]string
	occurrences []Occurrence
}

// Len returns the number of substituted variables.
func (m VariableMap) Len() int {
	return len(m.occurrences)
}

// Lookup returns the original text for a synthetic token.
func (m VariableMap) Lookup(token string) (string, bool) {
	orig, ok := m.tokens[token]
	return orig, ok
}

// Occurrences returns the substitutions in left-to-right order.
func (m VariableMap) Occurrences() []Occurrence {
	out := make([]Occurrence, len(m.occurrences))
	copy(out, m.occurrences)
	return out
}

// HasVariables reports whether text contains at least one $(name) variable.
func HasVariables(text string) bool {
	return variablePattern.MatchString(text)
}

// Escape replaces each variable, left to right, with placeholder_N where N is
// the 0-based occurrence index. Text without variables is returned unchanged
// together with an empty map.
func Escape(text string) (string, VariableMap) {
	matches := variablePattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text, VariableMap{}
	}

	m := VariableMap{
		tokens:      make(map[string]string, len(matches)),
		occurrences: make([]Occurrence, 0, len(matches)),
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for i, loc := range matches {
		b.WriteString(text[last:loc[0]])
		token := TokenPrefix + strconv.Itoa(i)
		original := text[loc[0]:loc[1]]
		m.occurrences = append(m.occurrences, Occurrence{
			Token:    token,
			Original: original,
			Offset:   b.Len(),
		})
		m.tokens[token] = original
		b.WriteString(token)
		last = loc[1]
	}
	b.WriteString(text[last:])

	m.escaped = b.String()
	return m.escaped, m
}

// Revert substitutes synthetic tokens back to their original variables.
// When text is exactly the output of the Escape call that produced m, the
// recorded offsets are used, so literal "placeholder_N" words already present
// in the input survive the round trip. Any other text has known tokens
// replaced wherever they appear; unknown tokens are left alone.
func Revert(text string, m VariableMap) string {
	if m.Len() == 0 {
		return text
	}
	if text == m.escaped {
		var b strings.Builder
		b.Grow(len(text))
		last := 0
		for _, occ := range m.occurrences {
			b.WriteString(text[last:occ.Offset])
			b.WriteString(occ.Original)
			last = occ.Offset + len(occ.Token)
		}
		b.WriteString(text[last:])
		return b.String()
	}
	return tokenPattern.ReplaceAllStringFunc(text, func(tok string) string {
		if orig, ok := m.tokens[tok]; ok {
			return orig
		}
		return tok
	})
}

// tokenPosition is an occurrence located by line and column in the escaped text.
type tokenPosition struct {
	line, column int
	delta        int
}

func locate(escaped string, m VariableMap) []tokenPosition {
	var out []tokenPosition
	if escaped == m.escaped {
		for _, occ := range m.occurrences {
			pos := core.OffsetToPosition(escaped, occ.Offset)
			out = append(out, tokenPosition{line: pos.Line, column: pos.Column, delta: occ.Delta()})
		}
		return out
	}
	for _, loc := range tokenPattern.FindAllStringIndex(escaped, -1) {
		tok := escaped[loc[0]:loc[1]]
		orig, ok := m.tokens[tok]
		if !ok {
			continue
		}
		pos := core.OffsetToPosition(escaped, loc[0])
		out = append(out, tokenPosition{line: pos.Line, column: pos.Column, delta: len(orig) - len(tok)})
	}
	return out
}

// AdjustErrorPositions maps diagnostics computed against escaped text back to
// the original text. For every located diagnostic, each synthetic token on the
// same line that starts before the reported column shifts that column by the
// token's length delta. Start and end are adjusted independently. Diagnostics
// without a location keep their position. Tokens quoted inside messages are
// reverted as well. The input slice is not modified.
func AdjustErrorPositions(errs []core.Diagnostic, original, escaped string, m VariableMap) []core.Diagnostic {
	if len(errs) == 0 {
		return errs
	}
	out := make([]core.Diagnostic, len(errs))
	copy(out, errs)
	if m.Len() == 0 {
		return out
	}

	tokens := locate(escaped, m)
	for i := range out {
		out[i].Message = Revert(out[i].Message, m)
		if out[i].Location == nil {
			continue
		}
		r := *out[i].Location
		r.Start = shift(r.Start, tokens, original)
		r.End = shift(r.End, tokens, original)
		out[i].Location = &r
	}
	return out
}

func shift(pos core.Position, tokens []tokenPosition, original string) core.Position {
	col := pos.Column
	for _, tok := range tokens {
		if tok.line == pos.Line && tok.column < pos.Column {
			col += tok.delta
		}
	}
	if col < 0 {
		col = 0
	}
	// Clamp to the original line so a position never points past its end.
	lineStart := core.PositionToOffset(original, core.Position{Line: pos.Line})
	lineEnd := core.PositionToOffset(original, core.Position{Line: pos.Line, Column: len(original)})
	if limit := lineEnd - lineStart; col > limit {
		col = limit
	}
	return core.Position{Line: pos.Line, Column: col}
}
