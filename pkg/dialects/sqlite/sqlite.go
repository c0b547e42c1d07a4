// Package sqlite provides the SQLite dialect definition.
package sqlite

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// Config is the SQLite dialect configuration.
var Config = &dialect.Config{
	Name:          "sqlite",
	Description:   "SQLite 3",
	Aliases:       []string{"sqlite3"},
	DefaultSchema: "main",
	Placeholder:   dialect.PlaceholderQuestion,
	Identifiers: dialect.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: dialect.NormCaseInsensitive,
	},
	Keywords: []string{
		"AUTOINCREMENT", "GLOB", "PRAGMA", "VACUUM", "ATTACH", "DETACH", "REPLACE",
		"CONFLICT", "ABORT", "FAIL", "IGNORE", "ROWID", "WITHOUT", "RETURNING",
	},
	DataTypes: []string{"INTEGER", "REAL", "TEXT", "BLOB", "NUMERIC"},
}

var functions = []dialect.Function{
	{Name: "IFNULL", Signature: "IFNULL(expr, alt) -> same", Description: "Return alt when expr is NULL", Category: dialect.CategoryConditional, Snippet: "IFNULL($1, $2)"},
	{Name: "IIF", Signature: "IIF(cond, then, else) -> any", Description: "Inline conditional", Category: dialect.CategoryConditional, Snippet: "IIF($1, $2, $3)"},
	{Name: "DATETIME", Signature: "DATETIME(time, modifier...) -> text", Description: "Date and time as text", Category: dialect.CategoryDate, Snippet: "DATETIME('$1')"},
	{Name: "STRFTIME", Signature: "STRFTIME(format, time) -> text", Description: "Format a date", Category: dialect.CategoryDate, Snippet: "STRFTIME('$1', $2)"},
	{Name: "JULIANDAY", Signature: "JULIANDAY(time) -> real", Description: "Julian day number", Category: dialect.CategoryDate},
	{Name: "GROUP_CONCAT", Signature: "GROUP_CONCAT(expr [, sep]) -> text", Description: "Concatenate group values", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "TOTAL", Signature: "TOTAL(expr) -> real", Description: "Floating point sum", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "JSON_EXTRACT", Signature: "JSON_EXTRACT(json, path) -> any", Description: "Extract a JSON path", Category: dialect.CategoryJSON, Snippet: "JSON_EXTRACT($1, '$2')"},
	{Name: "TYPEOF", Signature: "TYPEOF(expr) -> text", Description: "Storage class of a value", Category: dialect.CategoryUtility},
	{Name: "PRINTF", Signature: "PRINTF(format, ...) -> text", Description: "Formatted string", Category: dialect.CategoryString, Snippet: "PRINTF('$1', $2)"},
}

// SQLite is the SQLite dialect instance.
var SQLite = dialect.New(Config).
	Functions(dialect.StandardFunctions...).
	Functions(functions...).
	WithReservedWords(
		"abort", "action", "add", "after", "all", "alter", "and", "as", "asc", "attach",
		"autoincrement", "before", "begin", "between", "by", "cascade", "case", "cast",
		"check", "collate", "column", "commit", "conflict", "constraint", "create", "cross",
		"default", "delete", "desc", "detach", "distinct", "drop", "else", "end", "escape",
		"except", "exists", "foreign", "from", "full", "glob", "group", "having", "in",
		"index", "inner", "insert", "intersect", "into", "is", "isnull", "join", "key",
		"left", "like", "limit", "match", "natural", "not", "notnull", "null", "on", "or",
		"order", "outer", "pragma", "primary", "references", "regexp", "replace", "right",
		"select", "set", "table", "then", "to", "transaction", "union", "unique", "update",
		"using", "vacuum", "values", "view", "when", "where", "with",
	).
	Build()

func init() {
	dialect.Register(SQLite)
}
