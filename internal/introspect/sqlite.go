package introspect

import (
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

func init() {
	Register(SQLite)
}

// SQLite reads the tables and views of the main database. The database
// filter only renames it.
var SQLite = Driver{
	Name:      "sqlite",
	Aliases:   []string{"sqlite3"},
	SQLDriver: "sqlite",
	ColumnsQuery: `
		SELECT
			CASE WHEN ? = '' THEN 'main' ELSE ? END,
			m.name,
			p.name,
			p.type,
			CASE WHEN p."notnull" = 1 OR p.pk > 0 THEN 'NO' ELSE 'YES' END,
			p.dflt_value,
			p.cid + 1,
			CASE WHEN p.pk > 0 THEN 1 ELSE 0 END,
			NULL
		FROM sqlite_master m
		JOIN pragma_table_info(m.name) p
		WHERE m.type IN ('table', 'view')
			AND m.name NOT LIKE 'sqlite_%'
		ORDER BY m.name, p.cid
	`,
	ForeignKeysQuery: `
		SELECT
			CASE WHEN ? = '' THEN 'main' ELSE ? END,
			m.name,
			f."from",
			f."table",
			f."to"
		FROM sqlite_master m
		JOIN pragma_foreign_key_list(m.name) f
		WHERE m.type = 'table'
		ORDER BY m.name, f.id, f.seq
	`,
	Args: func(database string) []any { return []any{database, database} },
}
