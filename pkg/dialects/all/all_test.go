package all_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlassist/pkg/dialect"
	_ "github.com/leapstack-labs/sqlassist/pkg/dialects/all"
)

func TestRegistry_BuiltinDialects(t *testing.T) {
	names := dialect.List()
	for _, want := range []string{
		"ansi", "bigquery", "databricks", "duckdb", "mariadb",
		"mysql", "postgresql", "redshift", "snowflake", "sqlite",
	} {
		assert.Contains(t, names, want)
	}
}

func TestRegistry_Aliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"postgres", "postgresql"},
		{"pg", "postgresql"},
		{"PG", "postgresql"},
		{"sqlite3", "sqlite"},
		{"spark", "databricks"},
		{"MySQL", "mysql"},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			d, ok := dialect.Get(tt.alias)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.Name)
		})
	}
}

func TestDefault_IsMySQL(t *testing.T) {
	assert.Equal(t, "mysql", dialect.Default().Name)

	d, ok := dialect.Resolve("oracle")
	assert.False(t, ok)
	assert.Equal(t, "mysql", d.Name)
}

func TestDialects_Vocabulary(t *testing.T) {
	tests := []struct {
		dialect   string
		function  string
		aggregate bool
		keyword   string
	}{
		{"mysql", "GROUP_CONCAT", true, "SELECT"},
		{"mysql", "ifnull", false, "STRAIGHT_JOIN"},
		{"mariadb", "JSON_DETAILED", false, "RETURNING"},
		{"postgresql", "STRING_AGG", true, "ILIKE"},
		{"redshift", "LISTAGG", true, "QUALIFY"},
		{"snowflake", "IFF", false, "QUALIFY"},
		{"duckdb", "ARG_MAX", true, "EXCLUDE"},
		{"databricks", "COLLECT_LIST", true, "RLIKE"},
		{"sqlite", "TOTAL", true, "PRAGMA"},
		{"bigquery", "COUNTIF", true, "UNNEST"},
		{"ansi", "COUNT", true, "FETCH"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.function, func(t *testing.T) {
			d, ok := dialect.Get(tt.dialect)
			require.True(t, ok)

			_, known := d.Function(tt.function)
			assert.True(t, known)
			assert.Equal(t, tt.aggregate, d.IsAggregate(tt.function))
			assert.Contains(t, d.Keywords(), tt.keyword)
		})
	}
}

func TestDialects_Identifiers(t *testing.T) {
	tests := []struct {
		dialect    string
		quoted     string
		normalized string
		param      string
	}{
		{"mysql", "`select`", "Users", "?"},
		{"postgresql", `"select"`, "users", "$2"},
		{"snowflake", `"select"`, "USERS", ":p2"},
		{"bigquery", "`select`", "users", "@p2"},
		{"sqlite", `"select"`, "users", "?"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			d, ok := dialect.Get(tt.dialect)
			require.True(t, ok)
			assert.Equal(t, tt.quoted, d.QuoteIdentifierIfNeeded("select"))
			assert.Equal(t, "users", d.QuoteIdentifierIfNeeded("users"))
			assert.Equal(t, tt.normalized, d.NormalizeName("Users"))
			assert.Equal(t, tt.param, d.FormatPlaceholder(2))
		})
	}
}
