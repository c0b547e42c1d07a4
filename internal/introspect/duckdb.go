package introspect

import (
	_ "github.com/marcboeker/go-duckdb" // registers the "duckdb" database/sql driver
)

func init() {
	Register(DuckDB)
}

// DuckDB reads user tables through the duckdb_columns and
// duckdb_constraints table functions. Schemas map to databases.
var DuckDB = Driver{
	Name:      "duckdb",
	SQLDriver: "duckdb",
	ColumnsQuery: `
		SELECT
			c.schema_name,
			c.table_name,
			c.column_name,
			c.data_type,
			CASE WHEN c.is_nullable THEN 'YES' ELSE 'NO' END,
			c.column_default,
			c.column_index,
			CASE WHEN EXISTS (
				SELECT 1 FROM duckdb_constraints() k
				WHERE k.constraint_type = 'PRIMARY KEY'
					AND k.schema_name = c.schema_name
					AND k.table_name = c.table_name
					AND list_contains(k.constraint_column_names, c.column_name)
			) THEN 1 ELSE 0 END,
			c.comment
		FROM duckdb_columns() c
		WHERE NOT c.internal
			AND ($1 = '' OR c.schema_name = $1)
		ORDER BY c.schema_name, c.table_name, c.column_index
	`,
	ForeignKeysQuery: `
		SELECT
			k.schema_name,
			k.table_name,
			unnest(k.constraint_column_names),
			k.referenced_table,
			unnest(k.referenced_column_names)
		FROM duckdb_constraints() k
		WHERE k.constraint_type = 'FOREIGN KEY'
			AND ($1 = '' OR k.schema_name = $1)
		ORDER BY k.schema_name, k.table_name
	`,
	Args: func(database string) []any { return []any{database} },
}
