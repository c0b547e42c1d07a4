package databricks

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// Databricks is the Databricks dialect instance.
var Databricks = dialect.New(Config).
	Functions(dialect.StandardFunctions...).
	Functions(functions...).
	Aggregates("APPROX_COUNT_DISTINCT", "PERCENTILE", "FIRST", "LAST", "ANY_VALUE").
	WithReservedWords(reserved...).
	Build()

func init() {
	dialect.Register(Databricks)
}
