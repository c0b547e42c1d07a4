// Package duckdb provides the DuckDB dialect definition.
package duckdb

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// Config is the DuckDB dialect configuration.
var Config = &dialect.Config{
	Name:          "duckdb",
	Description:   "DuckDB",
	DefaultSchema: "main",
	Placeholder:   dialect.PlaceholderDollar,
	Identifiers: dialect.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: dialect.NormCaseInsensitive,
	},
	SupportsCastOperator: true,
	SupportsIlike:        true,
	SupportsQualify:      true,
	Keywords: []string{
		"EXCLUDE", "REPLACE", "COLUMNS", "PIVOT", "UNPIVOT", "ASOF", "POSITIONAL",
		"ANTI", "SEMI", "SUMMARIZE", "DESCRIBE", "ATTACH", "COPY",
	},
	DataTypes: []string{
		"TINYINT", "SMALLINT", "INTEGER", "BIGINT", "HUGEINT", "UBIGINT", "DOUBLE", "DECIMAL",
		"VARCHAR", "BLOB", "BOOLEAN", "DATE", "TIME", "TIMESTAMP", "TIMESTAMPTZ",
		"INTERVAL", "UUID", "JSON", "LIST", "STRUCT", "MAP",
	},
}

var functions = []dialect.Function{
	{Name: "READ_CSV_AUTO", Signature: "READ_CSV_AUTO(path) -> table", Description: "Read a CSV file with inferred schema", Category: dialect.CategoryTable, Snippet: "READ_CSV_AUTO('$1')"},
	{Name: "READ_PARQUET", Signature: "READ_PARQUET(path) -> table", Description: "Read Parquet files", Category: dialect.CategoryTable, Snippet: "READ_PARQUET('$1')"},
	{Name: "READ_JSON_AUTO", Signature: "READ_JSON_AUTO(path) -> table", Description: "Read JSON with inferred schema", Category: dialect.CategoryTable, Snippet: "READ_JSON_AUTO('$1')"},
	{Name: "STRFTIME", Signature: "STRFTIME(ts, format) -> varchar", Description: "Format a timestamp", Category: dialect.CategoryDate, Snippet: "STRFTIME($1, '$2')"},
	{Name: "DATE_TRUNC", Signature: "DATE_TRUNC(part, date) -> timestamp", Description: "Truncate to precision", Category: dialect.CategoryDate, Snippet: "DATE_TRUNC('$1', $2)"},
	{Name: "DATE_DIFF", Signature: "DATE_DIFF(part, a, b) -> bigint", Description: "Difference in date parts", Category: dialect.CategoryDate, Snippet: "DATE_DIFF('$1', $2, $3)"},
	{Name: "LIST_VALUE", Signature: "LIST_VALUE(v, ...) -> list", Description: "Build a list", Category: dialect.CategoryArray},
	{Name: "UNNEST", Signature: "UNNEST(list) -> setof", Description: "Expand a list to rows", Category: dialect.CategoryArray},
	{Name: "STRING_AGG", Signature: "STRING_AGG(expr, sep) -> varchar", Description: "Concatenate group values", Category: dialect.CategoryAggregate, Aggregate: true, Snippet: "STRING_AGG($1, '$2')"},
	{Name: "LIST", Signature: "LIST(expr) -> list", Description: "Aggregate values into a list", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "ARG_MAX", Signature: "ARG_MAX(arg, val) -> any", Description: "Value of arg at the maximum of val", Category: dialect.CategoryAggregate, Aggregate: true, Snippet: "ARG_MAX($1, $2)"},
	{Name: "ARG_MIN", Signature: "ARG_MIN(arg, val) -> any", Description: "Value of arg at the minimum of val", Category: dialect.CategoryAggregate, Aggregate: true, Snippet: "ARG_MIN($1, $2)"},
}

var reserved = []string{
	"all", "analyse", "analyze", "and", "any", "array", "as", "asc", "asymmetric", "both",
	"case", "cast", "check", "collate", "column", "constraint", "create", "default",
	"deferrable", "desc", "describe", "distinct", "do", "else", "end", "except", "false",
	"fetch", "for", "foreign", "from", "group", "having", "in", "initially", "intersect",
	"into", "lateral", "leading", "limit", "not", "null", "offset", "on", "only", "or",
	"order", "pivot", "placing", "primary", "qualify", "references", "returning", "select",
	"show", "some", "summarize", "symmetric", "table", "then", "to", "trailing", "true",
	"union", "unique", "unpivot", "using", "variadic", "when", "where", "window", "with",
}
