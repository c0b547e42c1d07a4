package postgres

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// Postgres is the PostgreSQL dialect instance.
var Postgres = dialect.New(Config).
	Functions(dialect.StandardFunctions...).
	Functions(postgresFunctions...).
	WithReservedWords(reserved...).
	Build()

// Redshift is the Amazon Redshift dialect instance.
var Redshift = dialect.New(RedshiftConfig).
	Functions(dialect.StandardFunctions...).
	Functions(redshiftFunctions...).
	Aggregates("MEDIAN").
	WithReservedWords(reserved...).
	Build()

func init() {
	dialect.Register(Postgres)
	dialect.Register(Redshift)
}
