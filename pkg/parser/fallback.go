package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/token"
)

// notAnAlias lists words that may follow a table name without aliasing it.
var notAnAlias = map[string]bool{
	"WHERE": true, "JOIN": true, "INNER": true, "LEFT": true, "RIGHT": true, "FULL": true,
	"OUTER": true, "CROSS": true, "NATURAL": true, "STRAIGHT_JOIN": true, "ON": true,
	"USING": true, "GROUP": true, "ORDER": true, "LIMIT": true, "HAVING": true, "UNION": true,
	"EXCEPT": true, "INTERSECT": true, "MINUS": true, "WINDOW": true, "QUALIFY": true,
	"OFFSET": true, "FETCH": true, "SET": true, "VALUES": true, "LATERAL": true, "FOR": true,
	"LOCK": true, "WITH": true, "SELECT": true, "RETURNING": true, "PIVOT": true,
	"UNPIVOT": true, "SAMPLE": true, "TABLESAMPLE": true, "USE": true, "FORCE": true,
	"IGNORE": true, "PARTITION": true, "AS": true, "INTO": true, "SEMI": true, "ANTI": true,
	"ASOF": true, "POSITIONAL": true, "APPLY": true, "OUTPUT": true,
}

// TableSpan is a table reference found in text, with the byte offsets of
// its possibly qualified name.
type TableSpan struct {
	core.TableReference
	Start int
	End   int
}

// ExtractTableRefs finds table references after FROM and JOIN keywords,
// including comma-separated FROM lists, without a grammar. It works on
// incomplete and invalid text. Subqueries and table functions are skipped.
func ExtractTableRefs(text string) []core.TableReference {
	spans := LocateTableRefs(text)
	if len(spans) == 0 {
		return nil
	}
	refs := make([]core.TableReference, len(spans))
	for i, s := range spans {
		refs[i] = s.TableReference
	}
	return refs
}

// LocateTableRefs is ExtractTableRefs with positions.
func LocateTableRefs(text string) []TableSpan {
	tokens := token.Code(text)
	var (
		spans []TableSpan
		// one entry per open parenthesis: true when it opens a subquery
		parens []bool
	)

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch {
		case t.IsPunct("("):
			parens = append(parens, i+1 < len(tokens) && (tokens[i+1].Is("SELECT") || tokens[i+1].Is("WITH")))
			continue
		case t.IsPunct(")"):
			if len(parens) > 0 {
				parens = parens[:len(parens)-1]
			}
			continue
		case !t.Is("FROM") && !t.Is("JOIN"):
			continue
		}
		// EXTRACT(YEAR FROM d), TRIM(x FROM y)
		if len(parens) > 0 && !parens[len(parens)-1] {
			continue
		}
		j := i + 1
		for {
			span, next, ok := readTableItem(tokens, j)
			if ok {
				spans = append(spans, span)
			}
			if !t.Is("FROM") || next >= len(tokens) || !tokens[next].IsPunct(",") {
				break
			}
			j = next + 1
		}
	}
	return spans
}

// readTableItem reads "[db.]name [[AS] alias]" or "(subquery) [[AS] alias]"
// at tokens[i]. It returns the index just past the item.
func readTableItem(tokens []token.Token, i int) (TableSpan, int, bool) {
	if i >= len(tokens) {
		return TableSpan{}, i, false
	}

	if tokens[i].IsPunct("(") {
		end := token.Matching(tokens, i)
		if end < 0 {
			return TableSpan{}, len(tokens), false
		}
		_, next := readAlias(tokens, end+1)
		return TableSpan{}, next, false
	}

	if !tokens[i].IsIdent() || (tokens[i].Kind == token.WORD && notAnAlias[strings.ToUpper(tokens[i].Text)]) {
		return TableSpan{}, i, false
	}

	parts := []string{tokens[i].Value()}
	j := i + 1
	for j+1 < len(tokens) && tokens[j].IsPunct(".") && tokens[j+1].IsIdent() {
		parts = append(parts, tokens[j+1].Value())
		j += 2
	}

	// name(...) is a table function.
	if j < len(tokens) && tokens[j].IsPunct("(") {
		end := token.Matching(tokens, j)
		if end < 0 {
			return TableSpan{}, len(tokens), false
		}
		_, next := readAlias(tokens, end+1)
		return TableSpan{}, next, false
	}

	span := TableSpan{
		TableReference: core.TableReference{Name: parts[len(parts)-1]},
		Start:          tokens[i].Offset,
		End:            tokens[j-1].End(),
	}
	if len(parts) > 1 {
		span.Database = parts[len(parts)-2]
	}
	span.Alias, j = readAlias(tokens, j)
	return span, j, true
}

func readAlias(tokens []token.Token, i int) (string, int) {
	if i < len(tokens) && tokens[i].Is("AS") {
		if i+1 < len(tokens) && tokens[i+1].IsIdent() {
			return tokens[i+1].Value(), i + 2
		}
		return "", i + 1
	}
	if i < len(tokens) && tokens[i].IsIdent() {
		if tokens[i].Kind == token.WORD && notAnAlias[strings.ToUpper(tokens[i].Text)] {
			return "", i
		}
		return tokens[i].Value(), i + 1
	}
	return "", i
}

// mergeRefs appends the extra references whose case-folded (name, alias)
// is not already present. Duplicates within base are dropped too.
func mergeRefs(base, extra []core.TableReference) []core.TableReference {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]core.TableReference, 0, len(base)+len(extra))
	for _, list := range [][]core.TableReference{base, extra} {
		for _, ref := range list {
			if seen[ref.Key()] {
				continue
			}
			seen[ref.Key()] = true
			out = append(out, ref)
		}
	}
	return out
}

// markCTEs flags references to CTE names and attaches their columns.
func markCTEs(refs []core.TableReference, ctes []CTE) {
	if len(ctes) == 0 {
		return
	}
	byName := make(map[string]CTE, len(ctes))
	for _, c := range ctes {
		byName[strings.ToLower(c.Name)] = c
	}
	for i := range refs {
		if refs[i].Database != "" {
			continue
		}
		if c, ok := byName[strings.ToLower(refs[i].Name)]; ok {
			refs[i].IsCTE = true
			refs[i].CTEColumns = c.Columns
		}
	}
}
