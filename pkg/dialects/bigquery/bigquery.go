// Package bigquery provides the Google BigQuery (GoogleSQL) dialect definition.
package bigquery

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// Config is the BigQuery dialect configuration.
var Config = &dialect.Config{
	Name:        "bigquery",
	Description: "Google BigQuery",
	Placeholder: dialect.PlaceholderAt,
	Identifiers: dialect.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "\\`",
		Normalization: dialect.NormCaseInsensitive,
	},
	SupportsQualify: true,
	Keywords: []string{
		"STRUCT", "ARRAY", "UNNEST", "SAFE_CAST", "EXCEPT", "REPLACE", "PIVOT", "UNPIVOT",
		"TABLESAMPLE", "WINDOW", "OVER", "PARTITION",
	},
	DataTypes: []string{
		"INT64", "NUMERIC", "BIGNUMERIC", "FLOAT64", "BOOL", "STRING", "BYTES", "DATE",
		"DATETIME", "TIME", "TIMESTAMP", "INTERVAL", "GEOGRAPHY", "JSON", "ARRAY", "STRUCT",
	},
}

var functions = []dialect.Function{
	{Name: "SAFE_CAST", Signature: "SAFE_CAST(expr AS type) -> type", Description: "Cast returning NULL on failure", Category: dialect.CategoryConversion, Snippet: "SAFE_CAST($1 AS $2)"},
	{Name: "SAFE_DIVIDE", Signature: "SAFE_DIVIDE(x, y) -> float64", Description: "Division returning NULL on error", Category: dialect.CategoryNumeric, Snippet: "SAFE_DIVIDE($1, $2)"},
	{Name: "IFNULL", Signature: "IFNULL(expr, alt) -> same", Description: "Return alt when expr is NULL", Category: dialect.CategoryConditional, Snippet: "IFNULL($1, $2)"},
	{Name: "IF", Signature: "IF(cond, then, else) -> any", Description: "Inline conditional", Category: dialect.CategoryConditional, Snippet: "IF($1, $2, $3)"},
	{Name: "DATE_TRUNC", Signature: "DATE_TRUNC(date, part) -> date", Description: "Truncate to precision", Category: dialect.CategoryDate, Snippet: "DATE_TRUNC($1, $2)"},
	{Name: "DATE_DIFF", Signature: "DATE_DIFF(a, b, part) -> int64", Description: "Difference in date parts", Category: dialect.CategoryDate, Snippet: "DATE_DIFF($1, $2, $3)"},
	{Name: "FORMAT_TIMESTAMP", Signature: "FORMAT_TIMESTAMP(fmt, ts) -> string", Description: "Format a timestamp", Category: dialect.CategoryDate, Snippet: "FORMAT_TIMESTAMP('$1', $2)"},
	{Name: "GENERATE_DATE_ARRAY", Signature: "GENERATE_DATE_ARRAY(start, end) -> array", Description: "Array of dates", Category: dialect.CategoryArray, Snippet: "GENERATE_DATE_ARRAY($1, $2)"},
	{Name: "JSON_VALUE", Signature: "JSON_VALUE(json, path) -> string", Description: "Extract a JSON scalar", Category: dialect.CategoryJSON, Snippet: "JSON_VALUE($1, '$2')"},
	{Name: "ARRAY_AGG", Signature: "ARRAY_AGG(expr) -> array", Description: "Aggregate values into an array", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "STRING_AGG", Signature: "STRING_AGG(expr, sep) -> string", Description: "Concatenate group values", Category: dialect.CategoryAggregate, Aggregate: true, Snippet: "STRING_AGG($1, '$2')"},
	{Name: "COUNTIF", Signature: "COUNTIF(cond) -> int64", Description: "Count rows matching a condition", Category: dialect.CategoryAggregate, Aggregate: true},
}

// BigQuery is the BigQuery dialect instance.
var BigQuery = dialect.New(Config).
	Functions(dialect.StandardFunctions...).
	Functions(functions...).
	Aggregates("APPROX_COUNT_DISTINCT", "ANY_VALUE", "LOGICAL_AND", "LOGICAL_OR").
	WithReservedWords(
		"all", "and", "any", "array", "as", "asc", "assert_rows_modified", "at", "between",
		"by", "case", "cast", "collate", "contains", "create", "cross", "cube", "current",
		"default", "define", "desc", "distinct", "else", "end", "enum", "escape", "except",
		"exclude", "exists", "extract", "false", "fetch", "following", "for", "from", "full",
		"group", "grouping", "groups", "hash", "having", "if", "ignore", "in", "inner",
		"intersect", "interval", "into", "is", "join", "lateral", "left", "like", "limit",
		"lookup", "merge", "natural", "new", "no", "not", "null", "nulls", "of", "on", "or",
		"order", "outer", "over", "partition", "preceding", "proto", "qualify", "range",
		"recursive", "respect", "right", "rollup", "rows", "select", "set", "some", "struct",
		"tablesample", "then", "to", "treat", "true", "unbounded", "union", "unnest",
		"using", "when", "where", "window", "with", "within",
	).
	Build()

func init() {
	dialect.Register(BigQuery)
}
