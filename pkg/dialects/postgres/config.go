// Package postgres provides the PostgreSQL and Redshift dialect definitions.
package postgres

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// Config is the PostgreSQL dialect configuration.
var Config = &dialect.Config{
	Name:          "postgresql",
	Description:   "PostgreSQL 12+",
	Aliases:       []string{"postgres", "pg"},
	DefaultSchema: "public",
	Placeholder:   dialect.PlaceholderDollar,
	Identifiers: dialect.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: dialect.NormLowercase,
	},
	SupportsCastOperator: true,
	SupportsIlike:        true,
	Keywords: []string{
		"RETURNING", "LATERAL", "FILTER", "WINDOW", "OVER", "PARTITION", "CONFLICT",
		"DO", "NOTHING", "SIMILAR", "ANALYZE", "VACUUM", "MATERIALIZED",
	},
	DataTypes: []string{
		"SMALLINT", "INTEGER", "BIGINT", "SERIAL", "BIGSERIAL", "NUMERIC", "REAL",
		"DOUBLE PRECISION", "TEXT", "VARCHAR", "CHAR", "BYTEA", "BOOLEAN", "DATE",
		"TIME", "TIMESTAMP", "TIMESTAMPTZ", "INTERVAL", "UUID", "JSON", "JSONB", "INET",
	},
}

// RedshiftConfig is the Amazon Redshift dialect configuration.
var RedshiftConfig = &dialect.Config{
	Name:                 "redshift",
	Description:          "Amazon Redshift",
	DefaultSchema:        "public",
	Placeholder:          dialect.PlaceholderDollar,
	Identifiers:          Config.Identifiers,
	SupportsCastOperator: true,
	SupportsIlike:        true,
	SupportsQualify:      true,
	Keywords:             []string{"DISTKEY", "SORTKEY", "DISTSTYLE", "ENCODE", "UNLOAD", "COPY"},
	DataTypes: []string{
		"SMALLINT", "INTEGER", "BIGINT", "DECIMAL", "REAL", "DOUBLE PRECISION",
		"BOOLEAN", "CHAR", "VARCHAR", "DATE", "TIMESTAMP", "TIMESTAMPTZ", "SUPER",
	},
}

var postgresFunctions = []dialect.Function{
	{Name: "NOW", Signature: "NOW() -> timestamptz", Description: "Current transaction timestamp", Category: dialect.CategoryDate, Snippet: "NOW()"},
	{Name: "DATE_TRUNC", Signature: "DATE_TRUNC(field, source) -> timestamp", Description: "Truncate to precision", Category: dialect.CategoryDate, Snippet: "DATE_TRUNC('$1', $2)"},
	{Name: "TO_CHAR", Signature: "TO_CHAR(value, format) -> text", Description: "Format a value as text", Category: dialect.CategoryConversion, Snippet: "TO_CHAR($1, '$2')"},
	{Name: "AGE", Signature: "AGE(ts [, ts]) -> interval", Description: "Interval between timestamps", Category: dialect.CategoryDate},
	{Name: "STRING_AGG", Signature: "STRING_AGG(expr, sep) -> text", Description: "Concatenate group values", Category: dialect.CategoryAggregate, Aggregate: true, Snippet: "STRING_AGG($1, '$2')"},
	{Name: "ARRAY_AGG", Signature: "ARRAY_AGG(expr) -> array", Description: "Aggregate values into an array", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "BOOL_AND", Signature: "BOOL_AND(expr) -> boolean", Description: "True if all values are true", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "BOOL_OR", Signature: "BOOL_OR(expr) -> boolean", Description: "True if any value is true", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "JSONB_BUILD_OBJECT", Signature: "JSONB_BUILD_OBJECT(k, v, ...) -> jsonb", Description: "Build a JSONB object", Category: dialect.CategoryJSON},
	{Name: "JSONB_AGG", Signature: "JSONB_AGG(expr) -> jsonb", Description: "Aggregate values into a JSONB array", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "GENERATE_SERIES", Signature: "GENERATE_SERIES(start, stop [, step]) -> setof", Description: "Series of values", Category: dialect.CategoryTable, Snippet: "GENERATE_SERIES($1, $2)"},
	{Name: "UNNEST", Signature: "UNNEST(array) -> setof", Description: "Expand an array to rows", Category: dialect.CategoryArray},
	{Name: "REGEXP_REPLACE", Signature: "REGEXP_REPLACE(s, pattern, repl) -> text", Description: "Replace regex matches", Category: dialect.CategoryString, Snippet: "REGEXP_REPLACE($1, '$2', '$3')"},
}

var redshiftFunctions = []dialect.Function{
	{Name: "GETDATE", Signature: "GETDATE() -> timestamp", Description: "Current timestamp", Category: dialect.CategoryDate, Snippet: "GETDATE()"},
	{Name: "DATEADD", Signature: "DATEADD(part, n, date) -> timestamp", Description: "Add to a date part", Category: dialect.CategoryDate, Snippet: "DATEADD($1, $2, $3)"},
	{Name: "DATEDIFF", Signature: "DATEDIFF(part, a, b) -> bigint", Description: "Difference in date parts", Category: dialect.CategoryDate, Snippet: "DATEDIFF($1, $2, $3)"},
	{Name: "LISTAGG", Signature: "LISTAGG(expr, sep) -> varchar", Description: "Concatenate group values", Category: dialect.CategoryAggregate, Aggregate: true, Snippet: "LISTAGG($1, '$2')"},
	{Name: "NVL", Signature: "NVL(expr, alt) -> same", Description: "Return alt when expr is NULL", Category: dialect.CategoryConditional, Snippet: "NVL($1, $2)"},
	{Name: "JSON_EXTRACT_PATH_TEXT", Signature: "JSON_EXTRACT_PATH_TEXT(json, key...) -> varchar", Description: "Extract a JSON path as text", Category: dialect.CategoryJSON},
}

var reserved = []string{
	"all", "analyse", "analyze", "and", "any", "array", "as", "asc", "asymmetric", "both",
	"case", "cast", "check", "collate", "column", "constraint", "create", "current_date",
	"current_time", "current_timestamp", "current_user", "default", "deferrable", "desc",
	"distinct", "do", "else", "end", "except", "false", "fetch", "for", "foreign", "from",
	"grant", "group", "having", "in", "initially", "intersect", "into", "lateral",
	"leading", "limit", "localtime", "not", "null", "offset", "on", "only", "or", "order",
	"placing", "primary", "references", "returning", "select", "session_user", "some",
	"symmetric", "table", "then", "to", "trailing", "true", "union", "unique", "user",
	"using", "variadic", "when", "where", "window", "with",
}
