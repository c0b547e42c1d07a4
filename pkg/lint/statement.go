package lint

import (
	"strings"

	"github.com/leapstack-labs/sqlassist/pkg/parser"
	"github.com/leapstack-labs/sqlassist/pkg/token"
)

// Statement is the outline of one statement of a text, read from tokens
// without the grammar engine. Flags describe the statement's own clauses;
// subqueries and CTE bodies do not set them.
type Statement struct {
	Text   string
	Start  int
	End    int
	Tokens []token.Token

	// Kind is the leading verb, upper-cased. A WITH prefix is skipped.
	Kind   string
	Tables []parser.TableSpan // offsets into the whole text

	HasWhere   bool
	HasLimit   bool
	HasOrderBy bool
	HasGroupBy bool
	Joins      int

	// From is the first top-level FROM, Star the first top-level select-list
	// star. Nil when absent.
	From *token.Token
	Star *token.Token
}

// Statements splits text at semicolons and outlines every statement.
func Statements(text string) []Statement {
	var out []Statement
	for _, toks := range token.Split(token.Code(text)) {
		out = append(out, outline(text, toks))
	}
	return out
}

func outline(text string, toks []token.Token) Statement {
	start, end := toks[0].Offset, toks[len(toks)-1].End()
	st := Statement{
		Text:   text[start:end],
		Start:  start,
		End:    end,
		Tokens: toks,
	}

	for _, span := range parser.LocateTableRefs(st.Text) {
		span.Start += start
		span.End += start
		st.Tables = append(st.Tables, span)
	}

	depth := 0
	for i, t := range toks {
		switch {
		case t.IsPunct("("):
			depth++
			continue
		case t.IsPunct(")"):
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth > 0 {
			continue
		}

		if t.Kind == token.WORD && (st.Kind == "" || st.Kind == "WITH") && isVerb(t) {
			st.Kind = strings.ToUpper(t.Text)
		}

		switch {
		case t.Is("FROM"):
			if st.From == nil {
				from := t
				st.From = &from
			}
		case t.Is("WHERE"):
			st.HasWhere = true
		case t.Is("LIMIT"), t.Is("TOP"), t.Is("FETCH"):
			st.HasLimit = true
		case t.Is("JOIN"):
			st.Joins++
		case t.Is("BY") && i > 0:
			switch {
			case toks[i-1].Is("ORDER"):
				st.HasOrderBy = true
			case toks[i-1].Is("GROUP"):
				st.HasGroupBy = true
			}
		case t.IsPunct("*") && st.Star == nil && i > 0 && startsSelectItem(toks[i-1]):
			star := t
			st.Star = &star
		}
	}
	return st
}

var verbs = map[string]bool{
	"WITH": true, "SELECT": true, "INSERT": true, "UPDATE": true,
	"DELETE": true, "MERGE": true, "REPLACE": true, "CREATE": true,
	"ALTER": true, "DROP": true, "TRUNCATE": true, "EXPLAIN": true,
	"SHOW": true, "DESCRIBE": true, "USE": true, "SET": true,
}

func isVerb(t token.Token) bool {
	return verbs[strings.ToUpper(t.Text)]
}

// startsSelectItem reports whether a star after prev is a whole select item
// rather than multiplication.
func startsSelectItem(prev token.Token) bool {
	return prev.Is("SELECT") || prev.Is("DISTINCT") || prev.Is("ALL") || prev.IsPunct(",")
}
