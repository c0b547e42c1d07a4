// Package databricks provides the Databricks SQL dialect definition.
package databricks

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// Config is the Databricks SQL dialect configuration.
var Config = &dialect.Config{
	Name:          "databricks",
	Description:   "Databricks SQL / Spark SQL",
	Aliases:       []string{"spark"},
	DefaultSchema: "default",
	Placeholder:   dialect.PlaceholderColon,
	Identifiers: dialect.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: dialect.NormCaseInsensitive,
	},
	SupportsCastOperator: true,
	SupportsIlike:        true,
	SupportsQualify:      true,
	Keywords: []string{
		"LATERAL VIEW", "EXPLODE", "CLUSTER", "DISTRIBUTE", "SORT", "TABLESAMPLE",
		"PIVOT", "UNPIVOT", "RLIKE", "REGEXP", "ANTI", "SEMI", "OPTIMIZE", "ZORDER",
	},
	DataTypes: []string{
		"TINYINT", "SMALLINT", "INT", "BIGINT", "FLOAT", "DOUBLE", "DECIMAL", "STRING",
		"BINARY", "BOOLEAN", "DATE", "TIMESTAMP", "TIMESTAMP_NTZ", "ARRAY", "MAP", "STRUCT",
	},
}

var functions = []dialect.Function{
	{Name: "EXPLODE", Signature: "EXPLODE(array|map) -> setof", Description: "Expand to rows", Category: dialect.CategoryArray},
	{Name: "COLLECT_LIST", Signature: "COLLECT_LIST(expr) -> array", Description: "Aggregate values into an array", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "COLLECT_SET", Signature: "COLLECT_SET(expr) -> array", Description: "Aggregate distinct values into an array", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "DATE_FORMAT", Signature: "DATE_FORMAT(ts, fmt) -> string", Description: "Format a timestamp", Category: dialect.CategoryDate, Snippet: "DATE_FORMAT($1, '$2')"},
	{Name: "DATEDIFF", Signature: "DATEDIFF(end, start) -> int", Description: "Days between two dates", Category: dialect.CategoryDate, Snippet: "DATEDIFF($1, $2)"},
	{Name: "DATE_ADD", Signature: "DATE_ADD(date, n) -> date", Description: "Add days to a date", Category: dialect.CategoryDate, Snippet: "DATE_ADD($1, $2)"},
	{Name: "NVL", Signature: "NVL(expr, alt) -> same", Description: "Return alt when expr is NULL", Category: dialect.CategoryConditional, Snippet: "NVL($1, $2)"},
	{Name: "GET_JSON_OBJECT", Signature: "GET_JSON_OBJECT(json, path) -> string", Description: "Extract a JSON path", Category: dialect.CategoryJSON, Snippet: "GET_JSON_OBJECT($1, '$2')"},
	{Name: "FROM_JSON", Signature: "FROM_JSON(json, schema) -> struct", Description: "Parse JSON with a schema", Category: dialect.CategoryJSON, Snippet: "FROM_JSON($1, '$2')"},
	{Name: "CURRENT_CATALOG", Signature: "CURRENT_CATALOG() -> string", Description: "Current Unity Catalog", Category: dialect.CategoryUtility, Snippet: "CURRENT_CATALOG()"},
}

var reserved = []string{
	"all", "alter", "and", "anti", "any", "array", "as", "at", "authorization", "between",
	"both", "by", "case", "cast", "check", "collate", "column", "commit", "constraint",
	"create", "cross", "cube", "current", "current_date", "current_time",
	"current_timestamp", "current_user", "delete", "describe", "distinct", "drop", "else",
	"end", "escape", "except", "exists", "external", "false", "fetch", "filter", "for",
	"foreign", "from", "full", "function", "global", "grant", "group", "grouping",
	"having", "in", "inner", "insert", "intersect", "interval", "into", "is", "join",
	"lateral", "leading", "left", "like", "local", "minus", "natural", "no", "not", "null",
	"of", "on", "only", "or", "order", "out", "outer", "overlaps", "partition", "position",
	"primary", "range", "references", "revoke", "right", "rollback", "rollup", "row",
	"rows", "select", "semi", "session_user", "set", "some", "start", "table",
	"tablesample", "then", "time", "to", "trailing", "true", "truncate", "union", "unique",
	"unknown", "update", "user", "using", "values", "when", "where", "window", "with",
}
