package duckdb

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// DuckDB is the DuckDB dialect instance.
var DuckDB = dialect.New(Config).
	Functions(dialect.StandardFunctions...).
	Functions(functions...).
	Aggregates("MEDIAN", "MODE", "QUANTILE_CONT", "APPROX_COUNT_DISTINCT", "BOOL_AND", "BOOL_OR").
	WithReservedWords(reserved...).
	Build()

func init() {
	dialect.Register(DuckDB)
}
