package introspect

import (
	"github.com/go-sql-driver/mysql"
)

func init() {
	Register(MySQL)
}

// MySQL reads every non-system database through information_schema,
// or only the database named in the DSN.
var MySQL = Driver{
	Name:      "mysql",
	Aliases:   []string{"mariadb"},
	SQLDriver: "mysql",
	ColumnsQuery: `
		SELECT
			TABLE_SCHEMA,
			TABLE_NAME,
			COLUMN_NAME,
			DATA_TYPE,
			IS_NULLABLE,
			COLUMN_DEFAULT,
			ORDINAL_POSITION,
			CASE WHEN COLUMN_KEY = 'PRI' THEN 1 ELSE 0 END,
			COLUMN_COMMENT
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA NOT IN ('mysql', 'information_schema', 'performance_schema', 'sys')
			AND (? = '' OR TABLE_SCHEMA = ?)
		ORDER BY TABLE_SCHEMA, TABLE_NAME, ORDINAL_POSITION
	`,
	ForeignKeysQuery: `
		SELECT
			TABLE_SCHEMA,
			TABLE_NAME,
			COLUMN_NAME,
			REFERENCED_TABLE_NAME,
			REFERENCED_COLUMN_NAME
		FROM information_schema.KEY_COLUMN_USAGE
		WHERE REFERENCED_TABLE_NAME IS NOT NULL
			AND (? = '' OR TABLE_SCHEMA = ?)
		ORDER BY TABLE_SCHEMA, TABLE_NAME, ORDINAL_POSITION
	`,
	Args: func(database string) []any { return []any{database, database} },
	DefaultDatabase: func(dsn string) string {
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return ""
		}
		return cfg.DBName
	},
	CheckDSN: func(dsn string) error {
		_, err := mysql.ParseDSN(dsn)
		return err
	},
}
