// Package all registers every built-in dialect. Import it for side effects.
package all

import (
	_ "github.com/leapstack-labs/sqlassist/pkg/dialects/ansi"       // ANSI
	_ "github.com/leapstack-labs/sqlassist/pkg/dialects/bigquery"   // BigQuery
	_ "github.com/leapstack-labs/sqlassist/pkg/dialects/databricks" // Databricks
	_ "github.com/leapstack-labs/sqlassist/pkg/dialects/duckdb"     // DuckDB
	_ "github.com/leapstack-labs/sqlassist/pkg/dialects/mysql"      // MySQL, MariaDB
	_ "github.com/leapstack-labs/sqlassist/pkg/dialects/postgres"   // PostgreSQL, Redshift
	_ "github.com/leapstack-labs/sqlassist/pkg/dialects/snowflake"  // Snowflake
	_ "github.com/leapstack-labs/sqlassist/pkg/dialects/sqlite"     // SQLite
)
