// Package snowflake provides the Snowflake dialect definition.
package snowflake

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// Config is the Snowflake dialect configuration.
var Config = &dialect.Config{
	Name:          "snowflake",
	Description:   "Snowflake",
	DefaultSchema: "PUBLIC",
	Placeholder:   dialect.PlaceholderColon,
	Identifiers: dialect.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: dialect.NormUppercase,
	},
	SupportsCastOperator: true,
	SupportsIlike:        true,
	SupportsQualify:      true,
	Keywords: []string{
		"FLATTEN", "LATERAL", "SAMPLE", "TABLESAMPLE", "PIVOT", "UNPIVOT", "MATCH_RECOGNIZE",
		"CLONE", "STAGE", "WAREHOUSE", "RLIKE", "REGEXP",
	},
	DataTypes: []string{
		"NUMBER", "INT", "FLOAT", "VARCHAR", "STRING", "TEXT", "BINARY", "BOOLEAN",
		"DATE", "TIME", "TIMESTAMP_NTZ", "TIMESTAMP_LTZ", "TIMESTAMP_TZ",
		"VARIANT", "OBJECT", "ARRAY", "GEOGRAPHY",
	},
}

var functions = []dialect.Function{
	{Name: "IFF", Signature: "IFF(cond, then, else) -> any", Description: "Inline conditional", Category: dialect.CategoryConditional, Snippet: "IFF($1, $2, $3)"},
	{Name: "NVL", Signature: "NVL(expr, alt) -> same", Description: "Return alt when expr is NULL", Category: dialect.CategoryConditional, Snippet: "NVL($1, $2)"},
	{Name: "ZEROIFNULL", Signature: "ZEROIFNULL(expr) -> number", Description: "Zero when NULL", Category: dialect.CategoryConditional},
	{Name: "DATEADD", Signature: "DATEADD(part, n, date) -> timestamp", Description: "Add to a date part", Category: dialect.CategoryDate, Snippet: "DATEADD($1, $2, $3)"},
	{Name: "DATEDIFF", Signature: "DATEDIFF(part, a, b) -> number", Description: "Difference in date parts", Category: dialect.CategoryDate, Snippet: "DATEDIFF($1, $2, $3)"},
	{Name: "DATE_TRUNC", Signature: "DATE_TRUNC(part, date) -> timestamp", Description: "Truncate to precision", Category: dialect.CategoryDate, Snippet: "DATE_TRUNC('$1', $2)"},
	{Name: "TO_VARIANT", Signature: "TO_VARIANT(expr) -> variant", Description: "Convert to VARIANT", Category: dialect.CategoryConversion},
	{Name: "PARSE_JSON", Signature: "PARSE_JSON(text) -> variant", Description: "Parse JSON text", Category: dialect.CategoryJSON},
	{Name: "FLATTEN", Signature: "FLATTEN(INPUT => expr) -> table", Description: "Explode a VARIANT, OBJECT or ARRAY", Category: dialect.CategoryTable, Snippet: "FLATTEN(INPUT => $1)"},
	{Name: "LISTAGG", Signature: "LISTAGG(expr, sep) -> varchar", Description: "Concatenate group values", Category: dialect.CategoryAggregate, Aggregate: true, Snippet: "LISTAGG($1, '$2')"},
	{Name: "ARRAY_AGG", Signature: "ARRAY_AGG(expr) -> array", Description: "Aggregate values into an array", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "OBJECT_CONSTRUCT", Signature: "OBJECT_CONSTRUCT(k, v, ...) -> object", Description: "Build an OBJECT", Category: dialect.CategoryJSON},
}

var reserved = []string{
	"account", "all", "alter", "and", "any", "as", "between", "by", "case", "cast", "check",
	"column", "connect", "connection", "constraint", "create", "cross", "current",
	"current_date", "current_time", "current_timestamp", "current_user", "database",
	"delete", "distinct", "drop", "else", "exists", "false", "following", "for", "from",
	"full", "grant", "group", "gscluster", "having", "ilike", "in", "increment", "inner",
	"insert", "intersect", "into", "is", "issue", "join", "lateral", "left", "like",
	"localtime", "localtimestamp", "minus", "natural", "not", "null", "of", "on", "or",
	"order", "organization", "qualify", "regexp", "revoke", "right", "rlike", "row", "rows",
	"sample", "schema", "select", "set", "some", "start", "table", "tablesample", "then",
	"to", "trigger", "true", "try_cast", "union", "unique", "update", "using", "values",
	"view", "when", "whenever", "where", "with",
}
