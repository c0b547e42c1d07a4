package mysql

import "github.com/leapstack-labs/sqlassist/pkg/dialect"

// MySQL is the MySQL dialect instance.
var MySQL = dialect.New(Config).
	Functions(dialect.StandardFunctions...).
	Functions(mysqlFunctions...).
	WithReservedWords(reserved...).
	Build()

// MariaDB is the MariaDB dialect instance.
var MariaDB = dialect.New(MariaDBConfig).
	Functions(dialect.StandardFunctions...).
	Functions(mysqlFunctions...).
	Functions(dialect.Function{
		Name: "JSON_DETAILED", Signature: "JSON_DETAILED(doc) -> text",
		Description: "Pretty-print a JSON document", Category: dialect.CategoryJSON,
	}).
	WithReservedWords(reserved...).
	Build()

func init() {
	dialect.Register(MySQL)
	dialect.Register(MariaDB)
}
