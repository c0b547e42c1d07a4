package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlassist/pkg/token"
)

// CTE is a common table expression declared in a WITH clause.
type CTE struct {
	Name    string
	Columns []string // declared list, or names derived from the body's select list
	Start   int      // offset of the body, just past "("
	End     int      // offset of the closing ")", or the end of the statement
	Closed  bool
}

// withClause is the WITH prefix of one statement.
type withClause struct {
	Start int // offset of WITH
	Main  int // offset of the statement the clause prefixes; -1 when unfinished
	CTEs  []CTE
}

// DiscoverCTEs returns the CTEs declared in text, in declaration order.
func DiscoverCTEs(text string) []CTE {
	var out []CTE
	for _, stmt := range token.Split(token.Code(text)) {
		if clause, ok := scanWith(stmt); ok {
			out = append(out, clause.CTEs...)
		}
	}
	return out
}

// scanWith reads "WITH [RECURSIVE] name [(cols)] AS [[NOT] MATERIALIZED] (body), ..."
// at the start of stmt. It stops quietly at the first thing it does not
// understand, keeping what it found so far.
func scanWith(stmt []token.Token) (withClause, bool) {
	clause := withClause{Main: -1}
	if len(stmt) == 0 || !stmt[0].Is("WITH") {
		return clause, false
	}
	clause.Start = stmt[0].Offset

	i := 1
	if i < len(stmt) && stmt[i].Is("RECURSIVE") {
		i++
	}
	for i < len(stmt) && stmt[i].IsIdent() {
		cte := CTE{Name: stmt[i].Value()}
		i++

		if i < len(stmt) && stmt[i].IsPunct("(") {
			end := token.Matching(stmt, i)
			if end < 0 {
				end = len(stmt)
			}
			for _, t := range stmt[i+1 : end] {
				if t.IsIdent() {
					cte.Columns = append(cte.Columns, t.Value())
				}
			}
			i = end + 1
		}

		if i >= len(stmt) || !stmt[i].Is("AS") {
			clause.CTEs = append(clause.CTEs, cte)
			return clause, true
		}
		i++
		if i < len(stmt) && stmt[i].Is("NOT") {
			i++
		}
		if i < len(stmt) && stmt[i].Is("MATERIALIZED") {
			i++
		}
		if i >= len(stmt) || !stmt[i].IsPunct("(") {
			clause.CTEs = append(clause.CTEs, cte)
			return clause, true
		}

		open := i
		end := token.Matching(stmt, open)
		cte.Start = stmt[open].End()
		if end < 0 {
			cte.End = stmt[len(stmt)-1].End()
			clause.CTEs = append(clause.CTEs, cte)
			return clause, true
		}
		cte.End = stmt[end].Offset
		cte.Closed = true
		if len(cte.Columns) == 0 {
			cte.Columns = selectColumns(stmt[open+1 : end])
		}
		clause.CTEs = append(clause.CTEs, cte)

		i = end + 1
		if i < len(stmt) && stmt[i].IsPunct(",") {
			i++
			continue
		}
		if i < len(stmt) {
			clause.Main = stmt[i].Offset
		}
		return clause, true
	}
	return clause, true
}

// selectColumns derives output column names from the first select list in
// tokens. Items without a recognizable name (*, bare expressions) are skipped.
func selectColumns(tokens []token.Token) []string {
	start := -1
	depth := 0
	for i, t := range tokens {
		switch {
		case t.IsPunct("("):
			depth++
		case t.IsPunct(")"):
			depth--
		case depth == 0 && t.Is("SELECT"):
			start = i + 1
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return nil
	}

	var (
		cols []string
		item []token.Token
	)
	flush := func() {
		if name := itemName(item); name != "" {
			cols = append(cols, name)
		}
		item = item[:0]
	}

	depth = 0
	for _, t := range tokens[start:] {
		switch {
		case t.IsPunct("("):
			depth++
		case t.IsPunct(")"):
			depth--
		}
		if depth == 0 && (t.Is("FROM") || t.Is("UNION") || t.Is("WHERE")) {
			break
		}
		if depth == 0 && t.IsPunct(",") {
			flush()
			continue
		}
		item = append(item, t)
	}
	flush()
	return cols
}

func itemName(item []token.Token) string {
	n := len(item)
	if n == 0 {
		return ""
	}
	last := item[n-1]
	if !last.IsIdent() || (last.Kind == token.WORD && notAName[strings.ToUpper(last.Text)]) {
		return ""
	}
	if n == 1 {
		return last.Value()
	}
	prev := item[n-2]
	switch {
	case prev.Is("AS"), prev.IsPunct("."), prev.IsPunct(")"):
		return last.Value()
	case prev.IsIdent(), prev.Kind == token.STRING, prev.Kind == token.NUMBER:
		return last.Value()
	}
	return ""
}

var notAName = map[string]bool{
	"END": true, "NULL": true, "TRUE": true, "FALSE": true, "DISTINCT": true, "ALL": true,
}
