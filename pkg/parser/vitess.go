package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xwb1989/sqlparser"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
	"github.com/leapstack-labs/sqlassist/pkg/token"
)

// Script is the tree produced by VitessEngine: the statements of the input
// plus the bodies of any CTEs declared in WITH clauses.
type Script struct {
	CTEs       []*CTEStatement
	Statements []sqlparser.Statement
}

// CTEStatement is a parsed CTE body.
type CTEStatement struct {
	Name    string
	Columns []string
	Body    sqlparser.Statement
}

// VitessEngine parses SQL with the vitess MySQL grammar. Other dialects are
// rewritten into that grammar first; every rewrite keeps byte offsets, so
// error positions refer to the caller's text.
type VitessEngine struct {
	dialect *dialect.Dialect
}

// NewVitessEngine creates an engine for d. A nil dialect means the default.
func NewVitessEngine(d *dialect.Dialect) *VitessEngine {
	if d == nil {
		d = dialect.Default()
	}
	return &VitessEngine{dialect: d}
}

// unit is one independently parsed piece of the input: a statement, or a
// CTE body. text has the input's full length with everything outside the
// piece blanked.
type unit struct {
	text string
	cte  *CTE
}

// Parse parses every statement in sql. A partial Script is returned
// alongside the first error.
func (e *VitessEngine) Parse(sql string) (any, error) {
	script := &Script{}
	var firstErr error
	for _, u := range e.units(sql) {
		stmt, err := sqlparser.Parse(u.text)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if u.cte != nil {
			script.CTEs = append(script.CTEs, &CTEStatement{Name: u.cte.Name, Columns: u.cte.Columns, Body: stmt})
			continue
		}
		script.Statements = append(script.Statements, stmt)
	}
	return script, firstErr
}

// Validate returns one error per statement or CTE body that fails to parse.
func (e *VitessEngine) Validate(sql string) []EngineError {
	var errs []EngineError
	for _, u := range e.units(sql) {
		if _, err := sqlparser.Parse(u.text); err != nil {
			errs = append(errs, toEngineError(err, u.text))
		}
	}
	return errs
}

func (e *VitessEngine) units(sql string) []unit {
	text := e.rewrite(sql)
	var units []unit
	for _, stmt := range token.Split(token.Code(text)) {
		start, end := stmt[0].Offset, stmt[len(stmt)-1].End()
		if clause, ok := scanWith(stmt); ok && clause.Main >= 0 {
			for i := range clause.CTEs {
				cte := clause.CTEs[i]
				units = append(units, unit{text: isolate(text, cte.Start, cte.End), cte: &cte})
			}
			start = clause.Main
		}
		units = append(units, unit{text: isolate(text, start, end)})
	}
	return units
}

// rewrite maps dialect syntax the MySQL grammar lacks onto equivalents of
// the same byte length.
func (e *VitessEngine) rewrite(sql string) string {
	b := []byte(sql)
	tokens := token.Code(sql)
	doubleQuoted := e.dialect.Identifiers.Quote == `"`

	for i, t := range tokens {
		switch {
		case t.Kind == token.QUOTED && !t.Open && !strings.Contains(t.Text, "`") &&
			(t.Text[0] == '[' || (t.Text[0] == '"' && doubleQuoted)):
			b[t.Offset] = '`'
			b[t.End()-1] = '`'
		case t.Kind == token.PARAM && e.bindParam(t.Text):
			fill(b, t.Offset, t.End(), "?")
		case t.IsPunct("::") && e.dialect.SupportsCastOperator():
			fill(b, t.Offset, castEnd(tokens, i), "")
		case t.Is("ILIKE") && e.dialect.SupportsIlike():
			copy(b[t.Offset:], " LIKE")
		}
	}
	return string(b)
}

// bindParam reports whether a PARAM token is a bind parameter the grammar
// cannot read. MySQL user variables (@name, @@name) are left alone unless
// the dialect binds parameters with @.
func (e *VitessEngine) bindParam(text string) bool {
	switch {
	case text == "?":
		return false
	case strings.HasPrefix(text, "@@"):
		return false
	case strings.HasPrefix(text, "@"):
		return e.dialect.Placeholder == dialect.PlaceholderAt
	}
	return true
}

// castTypeWords continue a multi-word type name after a cast operator.
var castTypeWords = map[string]bool{
	"PRECISION": true, "VARYING": true, "WITH": true, "WITHOUT": true, "TIME": true, "ZONE": true,
}

// castEnd returns the offset just past the type of the cast at tokens[i].
func castEnd(tokens []token.Token, i int) int {
	end := tokens[i].End()
	j := i + 1
	if j >= len(tokens) || !tokens[j].IsIdent() {
		return end
	}
	end = tokens[j].End()
	j++
	for j < len(tokens) && tokens[j].Kind == token.WORD && castTypeWords[strings.ToUpper(tokens[j].Text)] {
		end = tokens[j].End()
		j++
	}
	if j < len(tokens) && tokens[j].IsPunct("(") {
		if m := token.Matching(tokens, j); m >= 0 {
			end = tokens[m].End()
			j = m + 1
		}
	}
	for j+1 < len(tokens) && tokens[j].IsPunct("[") && tokens[j+1].IsPunct("]") {
		end = tokens[j+1].End()
		j += 2
	}
	return end
}

// fill overwrites b[start:end] with s padded by spaces.
func fill(b []byte, start, end int, s string) {
	for i := start; i < end; i++ {
		if k := i - start; k < len(s) {
			b[i] = s[k]
		} else {
			b[i] = ' '
		}
	}
}

// isolate blanks everything in text outside [start, end), keeping line breaks.
func isolate(text string, start, end int) string {
	return token.Blank(text[:start]) + text[start:end] + token.Blank(text[end:])
}

// vitessError matches "syntax error at position 27 near 'frm'".
var vitessError = regexp.MustCompile(`(?s)^(.*) at position (\d+)(?: near '(.*)')?$`)

func toEngineError(err error, text string) EngineError {
	m := vitessError.FindStringSubmatch(err.Error())
	if m == nil {
		return EngineError{Message: err.Error()}
	}

	pos, _ := strconv.Atoi(m[2])
	end := min(max(pos-1, 0), len(text))
	start := max(end-len(m[3]), 0)
	s := core.OffsetToPosition(text, start)
	f := core.OffsetToPosition(text, end)

	msg := m[1]
	if m[3] != "" {
		msg += " near '" + m[3] + "'"
	}
	return EngineError{
		Message:     msg,
		StartLine:   s.Line + 1,
		StartColumn: s.Column + 1,
		EndLine:     f.Line + 1,
		EndColumn:   f.Column + 1,
	}
}
