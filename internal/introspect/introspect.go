// Package introspect reads table and column metadata from a live database
// into a catalog.Schema.
//
// Drivers register themselves from init functions, like database/sql
// drivers. Each one knows how to open a connection and which catalog
// queries describe its tables.
package introspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlassist/pkg/catalog"
)

// ErrUnsupportedDriver is returned for driver names nothing registered.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Config selects a database to read.
type Config struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
	// Database limits the read to one database (schema). Empty reads every
	// user database, or the one named in the DSN when the driver has one.
	Database string `koanf:"name"`
}

// Driver describes how to read one kind of database.
//
// ColumnsQuery must return, in order: database, table, column, data type,
// is_nullable ("YES"/"NO"), default (nullable), ordinal, is_primary (0/1)
// and comment (nullable). ForeignKeysQuery, when set, returns database,
// table, column, referenced table and referenced column.
type Driver struct {
	Name      string
	Aliases   []string
	SQLDriver string

	ColumnsQuery     string
	ForeignKeysQuery string
	// Args binds the database filter to the queries' parameters.
	Args func(database string) []any
	// DefaultDatabase derives the database filter from the DSN.
	DefaultDatabase func(dsn string) string
	// CheckDSN rejects malformed DSNs before connecting.
	CheckDSN func(dsn string) error
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Driver)
	aliases    = make(map[string]string)
)

// Register adds a driver. Called by driver files in their init functions.
func Register(d Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[d.Name] = d
	for _, a := range d.Aliases {
		aliases[a] = d.Name
	}
}

// Lookup returns a driver by name or alias, case-insensitively.
func Lookup(name string) (Driver, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	d, ok := registry[key]
	if !ok {
		return Driver{}, fmt.Errorf("%w %q (available: %s)", ErrUnsupportedDriver, name, strings.Join(drivers(), ", "))
	}
	return d, nil
}

// Drivers returns the registered driver names, sorted.
func Drivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return drivers()
}

func drivers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load connects to the configured database, reads its schema and closes
// the connection.
func Load(ctx context.Context, cfg Config, logger *slog.Logger) (*catalog.Schema, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d, err := Lookup(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%s: dsn is required", d.Name)
	}
	if d.CheckDSN != nil {
		if err := d.CheckDSN(cfg.DSN); err != nil {
			return nil, fmt.Errorf("%s: invalid dsn: %w", d.Name, err)
		}
	}

	database := cfg.Database
	if database == "" && d.DefaultDatabase != nil {
		database = d.DefaultDatabase(cfg.DSN)
	}

	logger.Debug("connecting", slog.String("driver", d.Name), slog.String("database", database))
	db, err := sql.Open(d.SQLDriver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", d.Name, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping %s: %w", d.Name, err)
	}

	s, err := Read(ctx, db, d, database)
	if err != nil {
		return nil, err
	}
	logger.Debug("schema loaded", slog.String("driver", d.Name), slog.Int("databases", len(s.Databases)))
	return s, nil
}

// Read runs the driver's catalog queries on db.
func Read(ctx context.Context, db *sql.DB, d Driver, database string) (*catalog.Schema, error) {
	var args []any
	if d.Args != nil {
		args = d.Args(database)
	}

	s := catalog.NewSchema()
	if err := readColumns(ctx, db, d.ColumnsQuery, args, s); err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}
	if d.ForeignKeysQuery != "" {
		if err := readForeignKeys(ctx, db, d.ForeignKeysQuery, args, s); err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
	}
	return s, nil
}

func readColumns(ctx context.Context, db *sql.DB, query string, args []any, s *catalog.Schema) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			database, table, column, typ, nullable string
			def, comment                           sql.NullString
			ordinal, primary                       int
		)
		if err := rows.Scan(&database, &table, &column, &typ, &nullable, &def, &ordinal, &primary, &comment); err != nil {
			return fmt.Errorf("failed to scan column metadata: %w", err)
		}

		t := s.AddDatabase(database).AddTable(table)
		t.Columns[column] = &catalog.Column{
			Type:         strings.ToLower(typ),
			Nullable:     strings.EqualFold(nullable, "YES"),
			DefaultValue: def.String,
			Ordinal:      ordinal,
			Comment:      comment.String,
		}
		if primary != 0 {
			t.WithPrimaryKey(column)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating column metadata: %w", err)
	}
	return nil
}

func readForeignKeys(ctx context.Context, db *sql.DB, query string, args []any, s *catalog.Schema) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			database, table, column, refTable string
			refColumn                         sql.NullString
		)
		if err := rows.Scan(&database, &table, &column, &refTable, &refColumn); err != nil {
			return fmt.Errorf("failed to scan foreign key: %w", err)
		}
		owner, ok := s.Databases[database]
		if !ok {
			continue
		}
		if t, ok := owner.Tables[table]; ok {
			t.WithForeignKey(column, refTable, refColumn.String)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating foreign keys: %w", err)
	}
	return nil
}
