package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlassist/internal/testutil"
	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlassist/pkg/lint"
	"github.com/leapstack-labs/sqlassist/pkg/lint/rules"
)

func codes(errs []core.ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestSchemaReference(t *testing.T) {
	schema := testutil.SampleCatalog()

	tests := []struct {
		name     string
		sql      string
		wantMsgs []string
	}{
		{name: "known table", sql: "SELECT * FROM users"},
		{name: "known qualified table", sql: "SELECT * FROM shop.orders o JOIN analytics.events e ON e.user_id = o.user_id"},
		{name: "case-insensitive match", sql: "SELECT * FROM USERS"},
		{name: "unknown table", sql: "SELECT * FROM nonexistent", wantMsgs: []string{"Table 'nonexistent' not found in schema"}},
		{name: "unknown join table", sql: "SELECT * FROM users u JOIN payments p ON p.user_id = u.id", wantMsgs: []string{"Table 'payments' not found in schema"}},
		{name: "table in wrong database", sql: "SELECT * FROM analytics.users", wantMsgs: []string{"Table 'analytics.users' not found in schema"}},
		{name: "unknown database falls back to any", sql: "SELECT * FROM warehouse.users"},
		{name: "cte names are exempt", sql: "WITH recent AS (SELECT id FROM users) SELECT * FROM recent"},
		{name: "variable table is skipped", sql: "SELECT * FROM $(table)"},
		{name: "variable database is ignored", sql: "SELECT * FROM $(schema).users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := rules.SchemaReference{}.Validate(tt.sql, nil, schema)

			var msgs []string
			for _, e := range errs {
				assert.Equal(t, core.ErrorTypeSemantic, e.Type)
				assert.Equal(t, "unknown-table", e.Code)
				msgs = append(msgs, e.Message)
			}
			assert.Equal(t, tt.wantMsgs, msgs)
		})
	}
}

func TestSchemaReference_SuggestionAndLocation(t *testing.T) {
	sql := "SELECT *\nFROM userz"

	errs := rules.SchemaReference{}.Validate(sql, nil, testutil.SampleCatalog())

	require.Len(t, errs, 1)
	assert.Equal(t, "Did you mean 'users'?", errs[0].Suggestion)
	require.NotNil(t, errs[0].Location)
	assert.Equal(t, core.Position{Line: 1, Column: 5}, errs[0].Location.Start)
	assert.Equal(t, core.Position{Line: 1, Column: 10}, errs[0].Location.End)
}

func TestSchemaReference_LocationAfterVariable(t *testing.T) {
	sql := "SELECT $(cols) FROM nope"

	errs := rules.SchemaReference{}.Validate(sql, nil, testutil.SampleCatalog())

	require.Len(t, errs, 1)
	require.NotNil(t, errs[0].Location)
	assert.Equal(t, core.Position{Line: 0, Column: 20}, errs[0].Location.Start)
}

func TestSchemaReference_NoSchema(t *testing.T) {
	assert.Empty(t, rules.SchemaReference{}.Validate("SELECT * FROM anything", nil, nil))
}

func TestPerformance(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{name: "select star full scan", sql: "SELECT * FROM users", want: []string{"select-star", "full-scan"}},
		{name: "select star with where", sql: "SELECT * FROM users WHERE id = 1", want: []string{"select-star"}},
		{name: "limit silences both", sql: "SELECT * FROM users LIMIT 10", want: []string{}},
		{name: "columns without where", sql: "SELECT id FROM users", want: []string{"full-scan"}},
		{name: "filtered columns", sql: "SELECT id FROM users WHERE id = 1", want: []string{}},
		{name: "no from", sql: "SELECT 1", want: []string{}},
		{name: "per statement", sql: "SELECT id FROM users LIMIT 1; SELECT * FROM orders WHERE id = 2", want: []string{"select-star"}},
		{name: "distinct star", sql: "SELECT DISTINCT * FROM orders WHERE total > 0", want: []string{"select-star"}},
	}

	r, err := rules.NewPerformance(nil)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := r.Validate(tt.sql, nil, nil)
			assert.Equal(t, tt.want, codes(errs))
			for _, e := range errs {
				assert.Equal(t, core.SeverityWarning, e.Severity)
				assert.Contains(t, e.Message, "LIMIT")
			}
		})
	}
}

func TestPerformance_PatternsSkipLiterals(t *testing.T) {
	r, err := rules.NewPerformance(map[string]any{
		"full_scan": false,
		"patterns": []any{
			map[string]any{
				"name":     "leading-wildcard",
				"pattern":  `(?i)LIKE\s+'%`,
				"message":  "Leading wildcard defeats indexes",
				"severity": "info",
			},
		},
	})
	require.NoError(t, err)

	errs := r.Validate("SELECT id FROM users WHERE username LIKE '%bob'", nil, nil)

	assert.Empty(t, errs, "string literals are blanked before matching")
}

func TestPerformance_PatternOverCode(t *testing.T) {
	r, err := rules.NewPerformance(map[string]any{
		"select_star": "false",
		"full_scan":   "false",
		"patterns": []any{
			map[string]any{"name": "order-by-rand", "pattern": `(?i)ORDER\s+BY\s+RAND\(\)`},
		},
	})
	require.NoError(t, err)

	errs := r.Validate("SELECT * FROM users ORDER BY rand()", nil, nil)

	require.Len(t, errs, 1)
	assert.Equal(t, "order-by-rand", errs[0].Code)
	assert.Equal(t, core.SeverityWarning, errs[0].Severity)
	assert.Equal(t, "Matched pattern 'order-by-rand'", errs[0].Message)
	assert.Equal(t, 20, errs[0].Location.Start.Column)
}

func TestPerformance_BadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]any
	}{
		{name: "bad regexp", opts: map[string]any{"patterns": []any{map[string]any{"name": "x", "pattern": "("}}}},
		{name: "bad severity", opts: map[string]any{"patterns": []any{map[string]any{"name": "x", "pattern": "a", "severity": "fatal"}}}},
		{name: "unknown key", opts: map[string]any{"selectstar": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.NewPerformance(tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestNaming(t *testing.T) {
	r, err := rules.NewNaming(mysql.MySQL, nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{name: "snake case aliases", sql: "SELECT created_at AS created FROM users AS u", want: []string{}},
		{name: "camel case column alias", sql: "SELECT created_at AS createdAt FROM users", want: []string{"alias-case"}},
		{name: "bare table alias", sql: "SELECT * FROM users Usr", want: []string{"alias-case"}},
		{name: "reserved alias", sql: "SELECT id AS key FROM users", want: []string{"reserved-alias"}},
		{name: "quoted aliases are left alone", sql: "SELECT id AS `Key` FROM users AS \"U\"", want: []string{}},
		{name: "cast types are not aliases", sql: "SELECT CAST(id AS CHAR) AS id_text FROM users", want: []string{}},
		{name: "cte body is not an alias", sql: "WITH recent AS (SELECT id FROM users) SELECT * FROM recent r", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := r.Validate(tt.sql, nil, nil)
			assert.Equal(t, tt.want, codes(errs))
			for _, e := range errs {
				assert.Equal(t, core.SeverityInfo, e.Severity)
			}
		})
	}
}

func TestNaming_Suggestion(t *testing.T) {
	r, err := rules.NewNaming(nil, nil)
	require.NoError(t, err)

	errs := r.Validate("SELECT created_at AS createdAt FROM users", nil, nil)

	require.Len(t, errs, 1)
	assert.Equal(t, "Alias 'createdAt' does not follow the naming convention", errs[0].Message)
	assert.Equal(t, "Use 'created_at'", errs[0].Suggestion)
}

func TestNaming_Options(t *testing.T) {
	r, err := rules.NewNaming(mysql.MySQL, map[string]any{
		"pattern":  `^[a-z][a-zA-Z0-9]*$`,
		"reserved": false,
	})
	require.NoError(t, err)

	assert.Empty(t, r.Validate("SELECT created_at AS createdAt, id AS key FROM users", nil, nil))

	_, err = rules.NewNaming(nil, map[string]any{"pattern": "["})
	assert.Error(t, err)
}

func TestBlockedWords(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]any
		sql  string
		want int
	}{
		{name: "default delete", sql: "DELETE FROM users WHERE id = 1", want: 1},
		{name: "drop and truncate", sql: "DROP TABLE a; TRUNCATE b", want: 2},
		{name: "inside strings and comments", sql: "SELECT 'drop' FROM t -- delete", want: 0},
		{name: "column containing word", sql: "SELECT deleted_at FROM users", want: 0},
		{name: "custom words replace defaults", opts: map[string]any{"words": "grant"}, sql: "GRANT ALL ON t TO x; DROP TABLE t", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := rules.NewBlockedWords(tt.opts)
			require.NoError(t, err)
			assert.Len(t, r.Validate(tt.sql, nil, nil), tt.want)
		})
	}
}

func TestUniqueAlias(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want int
	}{
		{name: "unique", sql: "SELECT * FROM users u JOIN orders o ON u.id = o.user_id", want: 0},
		{name: "duplicate", sql: "SELECT * FROM users u JOIN orders U ON u.id = U.user_id", want: 1},
		{name: "separate statements", sql: "SELECT * FROM users u; SELECT * FROM orders u", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := rules.UniqueAlias{}.Validate(tt.sql, nil, nil)
			require.Len(t, errs, tt.want)
			for _, e := range errs {
				assert.Equal(t, "duplicate-alias", e.Code)
			}
		})
	}
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{
		rules.SchemaReferenceName,
		rules.PerformanceName,
		rules.NamingName,
		rules.BlockedWordsName,
		rules.UniqueAliasName,
	} {
		t.Run(name, func(t *testing.T) {
			def, ok := lint.Lookup(name)
			require.True(t, ok)
			assert.NotEmpty(t, def.Description)

			r, err := lint.Build(name, mysql.MySQL, nil)
			require.NoError(t, err)
			assert.Equal(t, name, r.Name())
		})
	}
}
