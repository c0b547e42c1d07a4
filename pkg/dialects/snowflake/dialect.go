package snowflake

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// Snowflake is the Snowflake dialect instance.
var Snowflake = dialect.New(Config).
	Functions(dialect.StandardFunctions...).
	Functions(functions...).
	Aggregates("MEDIAN", "APPROX_COUNT_DISTINCT", "ANY_VALUE").
	WithReservedWords(reserved...).
	Build()

func init() {
	dialect.Register(Snowflake)
}
