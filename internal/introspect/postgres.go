package introspect

import (
	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

func init() {
	Register(Postgres)
}

// Postgres reads every non-system schema through information_schema.
var Postgres = Driver{
	Name:      "postgres",
	Aliases:   []string{"postgresql", "pg", "pgx"},
	SQLDriver: "pgx",
	ColumnsQuery: `
		SELECT
			c.table_schema,
			c.table_name,
			c.column_name,
			c.data_type,
			c.is_nullable,
			c.column_default,
			c.ordinal_position,
			CASE WHEN kcu.column_name IS NULL THEN 0 ELSE 1 END,
			col_description(format('%I.%I', c.table_schema, c.table_name)::regclass, c.ordinal_position)
		FROM information_schema.columns c
		LEFT JOIN information_schema.table_constraints tc
			ON tc.table_schema = c.table_schema
			AND tc.table_name = c.table_name
			AND tc.constraint_type = 'PRIMARY KEY'
		LEFT JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = tc.constraint_name
			AND kcu.table_schema = c.table_schema
			AND kcu.table_name = c.table_name
			AND kcu.column_name = c.column_name
		WHERE c.table_schema NOT IN ('pg_catalog', 'information_schema')
			AND ($1 = '' OR c.table_schema = $1)
		ORDER BY c.table_schema, c.table_name, c.ordinal_position
	`,
	ForeignKeysQuery: `
		SELECT
			kcu.table_schema,
			kcu.table_name,
			kcu.column_name,
			ccu.table_name,
			ccu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = tc.constraint_name
			AND kcu.table_schema = tc.table_schema
		JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.constraint_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
			AND ($1 = '' OR tc.table_schema = $1)
		ORDER BY kcu.table_schema, kcu.table_name, kcu.ordinal_position
	`,
	Args: func(database string) []any { return []any{database} },
	CheckDSN: func(dsn string) error {
		_, err := pgx.ParseConfig(dsn)
		return err
	},
}
