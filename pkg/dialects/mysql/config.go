// Package mysql provides the MySQL and MariaDB dialect definitions.
// MySQL is the default dialect when none is configured.
package mysql

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// Config is the MySQL dialect configuration.
var Config = &dialect.Config{
	Name:        "mysql",
	Description: "MySQL 8",
	Placeholder: dialect.PlaceholderQuestion,
	Identifiers: dialect.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: dialect.NormCaseSensitive,
	},
	Keywords: []string{
		"AUTO_INCREMENT", "DUPLICATE", "ENGINE", "FORCE", "IGNORE", "INDEX",
		"REPLACE", "SHOW", "STRAIGHT_JOIN", "USE", "DESCRIBE", "EXPLAIN", "REGEXP", "RLIKE",
	},
	DataTypes: []string{
		"TINYINT", "SMALLINT", "MEDIUMINT", "INT", "BIGINT", "DECIMAL", "FLOAT", "DOUBLE",
		"BIT", "CHAR", "VARCHAR", "TINYTEXT", "TEXT", "MEDIUMTEXT", "LONGTEXT",
		"BINARY", "VARBINARY", "BLOB", "LONGBLOB", "ENUM", "SET", "JSON",
		"DATE", "DATETIME", "TIMESTAMP", "TIME", "YEAR",
	},
}

// MariaDBConfig is the MariaDB dialect configuration.
var MariaDBConfig = &dialect.Config{
	Name:        "mariadb",
	Description: "MariaDB 10/11",
	Placeholder: dialect.PlaceholderQuestion,
	Identifiers: Config.Identifiers,
	Keywords:    append(append([]string(nil), Config.Keywords...), "RETURNING", "SEQUENCE"),
	DataTypes:   append(append([]string(nil), Config.DataTypes...), "INET6", "UUID"),
}

var mysqlFunctions = []dialect.Function{
	{Name: "IFNULL", Signature: "IFNULL(expr, alt) -> same", Description: "Return alt when expr is NULL", Category: dialect.CategoryConditional, Snippet: "IFNULL($1, $2)"},
	{Name: "IF", Signature: "IF(cond, then, else) -> any", Description: "Inline conditional", Category: dialect.CategoryConditional, Snippet: "IF($1, $2, $3)"},
	{Name: "GROUP_CONCAT", Signature: "GROUP_CONCAT(expr [SEPARATOR sep]) -> text", Description: "Concatenate group values", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "DATE_FORMAT", Signature: "DATE_FORMAT(date, format) -> varchar", Description: "Format a date", Category: dialect.CategoryDate, Snippet: "DATE_FORMAT($1, '$2')"},
	{Name: "NOW", Signature: "NOW() -> datetime", Description: "Current date and time", Category: dialect.CategoryDate, Snippet: "NOW()"},
	{Name: "CURDATE", Signature: "CURDATE() -> date", Description: "Current date", Category: dialect.CategoryDate, Snippet: "CURDATE()"},
	{Name: "DATEDIFF", Signature: "DATEDIFF(a, b) -> int", Description: "Days between two dates", Category: dialect.CategoryDate, Snippet: "DATEDIFF($1, $2)"},
	{Name: "DATE_ADD", Signature: "DATE_ADD(date, INTERVAL n unit) -> date", Description: "Add an interval", Category: dialect.CategoryDate, Snippet: "DATE_ADD($1, INTERVAL $2)"},
	{Name: "UNIX_TIMESTAMP", Signature: "UNIX_TIMESTAMP([date]) -> bigint", Description: "Seconds since the epoch", Category: dialect.CategoryDate},
	{Name: "JSON_EXTRACT", Signature: "JSON_EXTRACT(doc, path) -> json", Description: "Extract data from a JSON document", Category: dialect.CategoryJSON, Snippet: "JSON_EXTRACT($1, '$2')"},
	{Name: "JSON_OBJECT", Signature: "JSON_OBJECT(k, v, ...) -> json", Description: "Build a JSON object", Category: dialect.CategoryJSON},
	{Name: "JSON_ARRAYAGG", Signature: "JSON_ARRAYAGG(expr) -> json", Description: "Aggregate values into a JSON array", Category: dialect.CategoryAggregate, Aggregate: true},
	{Name: "CONCAT_WS", Signature: "CONCAT_WS(sep, s1, s2, ...) -> varchar", Description: "Concatenate with separator", Category: dialect.CategoryString, Snippet: "CONCAT_WS('$1', $2)"},
	{Name: "LOCATE", Signature: "LOCATE(substr, str) -> int", Description: "Position of substring", Category: dialect.CategoryString, Snippet: "LOCATE($1, $2)"},
}

var reserved = []string{
	"accessible", "add", "all", "alter", "analyze", "and", "as", "asc", "before", "between",
	"both", "by", "call", "case", "change", "check", "column", "condition", "constraint",
	"create", "cross", "database", "databases", "default", "delete", "desc", "describe",
	"distinct", "div", "drop", "else", "exists", "explain", "false", "for", "force",
	"foreign", "from", "group", "having", "if", "ignore", "in", "index", "inner", "insert",
	"interval", "into", "is", "join", "key", "keys", "kill", "left", "like", "limit",
	"lock", "match", "mod", "natural", "not", "null", "on", "option", "or", "order",
	"outer", "primary", "range", "references", "regexp", "rename", "replace", "right",
	"rlike", "schema", "select", "set", "show", "table", "then", "to", "true", "union",
	"unique", "update", "usage", "use", "using", "values", "when", "where", "with",
}
