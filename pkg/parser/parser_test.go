package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlassist/internal/testutil"
	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
	_ "github.com/leapstack-labs/sqlassist/pkg/dialects/all"
)

// fakeEngine returns canned results.
type fakeEngine struct {
	tree  any
	err   error
	errs  []EngineError
	panic any
	seen  []string
}

func (f *fakeEngine) Parse(sql string) (any, error) {
	f.seen = append(f.seen, sql)
	if f.panic != nil {
		panic(f.panic)
	}
	return f.tree, f.err
}

func (f *fakeEngine) Validate(sql string) []EngineError {
	if f.panic != nil {
		panic(f.panic)
	}
	return f.errs
}

func withEngine(e Engine) EngineFactory {
	return func(*dialect.Dialect) Engine { return e }
}

func names(refs []core.TableReference) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Name
		if r.Alias != "" {
			out[i] += " " + r.Alias
		}
	}
	return out
}

func TestParse_SimpleSelect(t *testing.T) {
	p := New(Options{Logger: testutil.NewTestLogger(t)})
	res := p.Parse("SELECT * FROM users")

	assert.True(t, res.Success)
	assert.Empty(t, res.Errors)
	require.Len(t, res.TableRefs, 1)
	assert.Equal(t, "users", res.TableRefs[0].Name)
	assert.NotNil(t, res.AST)
}

func TestParse_ImplicitDual(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{name: "constant select", sql: "SELECT 1", want: []string{}},
		{name: "function call", sql: "SELECT NOW()", want: []string{}},
		{name: "subquery without from", sql: "SELECT a FROM users WHERE id IN (SELECT 1)", want: []string{"users"}},
		{name: "explicit dual", sql: "SELECT 1 FROM dual", want: []string{"dual"}},
	}

	p := New(Options{Logger: testutil.NewTestLogger(t)})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := p.Parse(tt.sql)

			assert.True(t, res.Success)
			assert.Equal(t, tt.want, names(res.TableRefs))
			if len(tt.want) == 0 {
				assert.NotContains(t, res.Aliases, "dual")
			}
		})
	}
}

func TestParse_JoinAliases(t *testing.T) {
	p := New(Options{})
	res := p.Parse("SELECT u.id, o.total FROM users u JOIN orders o ON u.id = o.user_id")

	assert.True(t, res.Success)
	assert.Equal(t, []string{"users u", "orders o"}, names(res.TableRefs))
	require.Contains(t, res.Aliases, "u")
	assert.Equal(t, "users", res.Aliases["u"].Name)
	assert.Equal(t, "orders", res.Aliases["o"].Name)
	assert.Equal(t, "orders", res.Aliases["orders"].Name)
}

func TestParse_SyntaxErrorPosition(t *testing.T) {
	p := New(Options{})
	res := p.Parse("SELECT * FORM users")

	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	e := res.Errors[0]
	assert.Equal(t, core.ErrorTypeSyntax, e.Type)
	assert.Equal(t, core.SeverityError, e.Severity)
	assert.Contains(t, e.Message, "FORM")
	require.NotNil(t, e.Location)
	assert.Equal(t, core.Position{Line: 0, Column: 9}, e.Location.Start)
	assert.Equal(t, core.Position{Line: 0, Column: 13}, e.Location.End)
}

func TestParse_MultipleStatements(t *testing.T) {
	p := New(Options{})
	res := p.Parse("SELECT 1;\nSELEC 2")

	require.Len(t, res.Errors, 1)
	require.NotNil(t, res.Errors[0].Location)
	assert.Equal(t, 1, res.Errors[0].Location.Start.Line)
	assert.Equal(t, 0, res.Errors[0].Location.Start.Column)
}

func TestParse_EmptyText(t *testing.T) {
	p := New(Options{})
	for _, text := range []string{"", "   \n", "-- just a comment"} {
		res := p.Parse(text)
		assert.True(t, res.Success, "%q", text)
		assert.Empty(t, res.TableRefs)
	}
}

func TestParse_Variables(t *testing.T) {
	p := New(Options{EnableVariables: true})
	res := p.Parse("SELECT * FROM $(schema).users u WHERE u.id = 1")

	assert.True(t, res.Success)
	require.Len(t, res.TableRefs, 1)
	assert.Equal(t, "users", res.TableRefs[0].Name)
	assert.Equal(t, "$(schema)", res.TableRefs[0].Database)
	assert.Equal(t, "u", res.TableRefs[0].Alias)
}

func TestParse_VariablesDisabled(t *testing.T) {
	engine := &fakeEngine{}
	p := New(Options{NewEngine: withEngine(engine)})
	p.Parse("SELECT $(col) FROM t")

	require.Len(t, engine.seen, 1)
	assert.Equal(t, "SELECT $(col) FROM t", engine.seen[0])
}

func TestParse_VariableErrorPositions(t *testing.T) {
	engine := &fakeEngine{
		err: errors.New("syntax error"),
		errs: []EngineError{{
			Message:   "syntax error near 'placeholder_0'",
			StartLine: 1, StartColumn: 26,
			EndLine: 1, EndColumn: 27,
		}},
	}
	p := New(Options{EnableVariables: true, NewEngine: withEngine(engine)})
	res := p.Parse("SELECT $(col) FRM t")

	require.Len(t, engine.seen, 1)
	assert.Equal(t, "SELECT placeholder_0 FRM t", engine.seen[0])

	require.Len(t, res.Errors, 1)
	e := res.Errors[0]
	assert.Equal(t, "syntax error near '$(col)'", e.Message)
	require.NotNil(t, e.Location)
	assert.Equal(t, core.Position{Line: 0, Column: 18}, e.Location.Start)
	assert.Equal(t, core.Position{Line: 0, Column: 19}, e.Location.End)
}

func TestParse_EngineErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		in   EngineError
		want *core.Range
	}{
		{
			name: "full range",
			in:   EngineError{Message: "x", StartLine: 2, StartColumn: 3, EndLine: 2, EndColumn: 7},
			want: &core.Range{Start: core.Position{Line: 1, Column: 2}, End: core.Position{Line: 1, Column: 6}},
		},
		{
			name: "missing end takes start",
			in:   EngineError{Message: "x", StartLine: 1, StartColumn: 5},
			want: &core.Range{Start: core.Position{Line: 0, Column: 4}, End: core.Position{Line: 0, Column: 4}},
		},
		{
			name: "no position",
			in:   EngineError{Message: "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(Options{NewEngine: withEngine(&fakeEngine{errs: []EngineError{tt.in}})})
			res := p.Parse("SELECT 1")
			require.Len(t, res.Errors, 1)
			assert.Equal(t, tt.want, res.Errors[0].Location)
			assert.False(t, res.Success)
		})
	}
}

func TestParse_ParseErrorWithoutValidateErrors(t *testing.T) {
	p := New(Options{NewEngine: withEngine(&fakeEngine{err: errors.New("boom")})})
	res := p.Parse("SELECT 1")

	require.Len(t, res.Errors, 1)
	assert.Equal(t, "boom", res.Errors[0].Message)
	assert.Nil(t, res.Errors[0].Location)
}

func TestParse_EnginePanic(t *testing.T) {
	p := New(Options{
		Logger:    testutil.NewTestLogger(t),
		NewEngine: withEngine(&fakeEngine{panic: "grammar exploded"}),
	})

	var res ParseResult
	require.NotPanics(t, func() {
		res = p.Parse("SELECT * FROM users u")
	})
	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, core.ErrorTypeSyntax, res.Errors[0].Type)
	assert.Contains(t, res.Errors[0].Message, "grammar exploded")
	assert.Equal(t, []string{"users u"}, names(res.TableRefs))
	assert.Equal(t, "users", res.Aliases["u"].Name)
}

func TestParse_FallbackMergesRefs(t *testing.T) {
	tree := map[string]any{
		"type": "select",
		"from": []any{
			map[string]any{"type": "table", "name": "users", "alias": "u"},
		},
	}
	p := New(Options{NewEngine: withEngine(&fakeEngine{tree: tree})})
	res := p.Parse("SELECT * FROM USERS U, orders o JOIN items ON")

	assert.Equal(t, []string{"users u", "orders o", "items"}, names(res.TableRefs))
}

func TestParse_CyclicTree(t *testing.T) {
	root := map[string]any{"type": "select"}
	table := map[string]any{"type": "table", "name": "events", "db": "analytics", "Parent": root}
	root["from"] = []any{table}
	root["self"] = root

	p := New(Options{NewEngine: withEngine(&fakeEngine{tree: root})})

	var res ParseResult
	require.NotPanics(t, func() {
		res = p.Parse("")
	})
	require.Len(t, res.TableRefs, 1)
	assert.Equal(t, "events", res.TableRefs[0].Name)
	assert.Equal(t, "analytics", res.TableRefs[0].Database)
}

func TestParse_CTE(t *testing.T) {
	p := New(Options{})
	res := p.Parse("WITH recent AS (SELECT id, name FROM users) SELECT r.id FROM recent r")

	assert.True(t, res.Success, "%v", res.Errors)
	assert.Equal(t, []string{"users", "recent r"}, names(res.TableRefs))

	recent := res.Aliases["r"]
	require.NotNil(t, recent)
	assert.True(t, recent.IsCTE)
	assert.Equal(t, []string{"id", "name"}, recent.CTEColumns)
	assert.False(t, res.Aliases["users"].IsCTE)
}

func TestParse_Dialects(t *testing.T) {
	tests := []struct {
		dialect string
		sql     string
		success bool
	}{
		{"mysql", "SELECT `u`.`id` FROM `users` u WHERE u.id = ?", true},
		{"mysql", "SELECT * FROM users WHERE name ILIKE 'a%'", false},
		{"postgresql", `SELECT "u"."id" FROM "users" u WHERE u.created_at > $1::timestamp`, true},
		{"postgres", "SELECT * FROM users WHERE name ILIKE 'a%'", true},
		{"snowflake", "SELECT * FROM users WHERE id = :id", true},
		{"bigquery", "SELECT * FROM `proj.users` WHERE id = @id", true},
		{"sqlite", `SELECT "id" FROM users`, true},
	}
	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.sql, func(t *testing.T) {
			p := New(Options{Dialect: tt.dialect})
			res := p.Parse(tt.sql)
			assert.Equal(t, tt.success, res.Success, "%v", res.Errors)
		})
	}
}

func TestNew_UnknownDialectFallsBack(t *testing.T) {
	p := New(Options{Dialect: "oracle", Logger: testutil.NewTestLogger(t)})
	assert.Equal(t, dialect.DefaultName, p.Dialect().Name)

	p = New(Options{Dialect: "pg"})
	assert.Equal(t, "postgresql", p.Dialect().Name)
}

func TestValidate(t *testing.T) {
	p := New(Options{})
	assert.True(t, p.Validate("SELECT id FROM users WHERE id = 1"))
	assert.False(t, p.Validate("SELECT FROM WHERE"))
}
