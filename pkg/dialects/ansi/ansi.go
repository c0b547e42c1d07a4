// Package ansi provides the ANSI SQL dialect: the standard function core
// with double-quoted identifiers and no vendor extensions.
package ansi

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// Config is the ANSI dialect configuration.
var Config = &dialect.Config{
	Name:        "ansi",
	Description: "ANSI SQL",
	Identifiers: dialect.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: dialect.NormUppercase,
	},
	Placeholder: dialect.PlaceholderQuestion,
	Keywords:    []string{"FETCH", "FIRST", "ROWS", "ONLY", "OFFSET", "LATERAL", "WINDOW", "OVER", "PARTITION"},
	DataTypes: []string{
		"INTEGER", "SMALLINT", "BIGINT", "DECIMAL", "NUMERIC", "REAL", "DOUBLE PRECISION",
		"CHAR", "VARCHAR", "BOOLEAN", "DATE", "TIME", "TIMESTAMP", "INTERVAL",
	},
}

// ANSI is the ANSI dialect instance.
var ANSI = dialect.New(Config).
	Functions(dialect.StandardFunctions...).
	WithReservedWords(
		"all", "and", "as", "between", "by", "case", "cast", "create", "cross", "delete",
		"distinct", "else", "end", "except", "exists", "false", "from", "full", "group",
		"having", "in", "inner", "insert", "intersect", "into", "is", "join", "left",
		"like", "not", "null", "on", "or", "order", "outer", "right", "select", "table",
		"then", "true", "union", "update", "using", "values", "when", "where", "with",
	).
	Build()

func init() {
	dialect.Register(ANSI)
}
