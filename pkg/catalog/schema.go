// Package catalog holds database schema metadata and answers the lookups
// completion and validation need: databases, tables and columns by name,
// case-insensitively and across databases.
//
// Schemas can be built in code, loaded from JSON or YAML files, or read
// from a live database (see internal/introspect).
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Schema is a set of databases.
type Schema struct {
	Databases map[string]*Database `json:"databases" yaml:"databases"`
}

// Database is a named group of tables (a schema in PostgreSQL terms).
type Database struct {
	Name    string            `json:"name" yaml:"name"`
	Tables  map[string]*Table `json:"tables" yaml:"tables"`
	Comment string            `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Table is a table or view.
type Table struct {
	Name        string             `json:"name" yaml:"name"`
	Columns     map[string]*Column `json:"columns" yaml:"columns"`
	Comment     string             `json:"comment,omitempty" yaml:"comment,omitempty"`
	PrimaryKeys []string           `json:"primaryKeys,omitempty" yaml:"primaryKeys,omitempty"`
	ForeignKeys []ForeignKey       `json:"foreignKeys,omitempty" yaml:"foreignKeys,omitempty"`
	Indexes     []Index            `json:"indexes,omitempty" yaml:"indexes,omitempty"`
}

// Column describes a column. Its name is the key it is stored under.
type Column struct {
	Type          string     `json:"type" yaml:"type"`
	Nullable      bool       `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	PrimaryKey    bool       `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
	ForeignKey    *ColumnRef `json:"foreignKey,omitempty" yaml:"foreignKey,omitempty"`
	Length        int        `json:"length,omitempty" yaml:"length,omitempty"`
	Precision     int        `json:"precision,omitempty" yaml:"precision,omitempty"`
	Scale         int        `json:"scale,omitempty" yaml:"scale,omitempty"`
	EnumValues    []string   `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`
	Comment       string     `json:"comment,omitempty" yaml:"comment,omitempty"`
	Unique        bool       `json:"unique,omitempty" yaml:"unique,omitempty"`
	AutoIncrement bool       `json:"autoIncrement,omitempty" yaml:"autoIncrement,omitempty"`
	DefaultValue  string     `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	// Ordinal is the 1-based definition position; 0 when unknown.
	Ordinal int `json:"ordinal,omitempty" yaml:"ordinal,omitempty"`
}

// ColumnRef points at a column of another table.
type ColumnRef struct {
	Table  string `json:"table" yaml:"table"`
	Column string `json:"column" yaml:"column"`
}

// ForeignKey is a table-level foreign key constraint.
type ForeignKey struct {
	Name              string   `json:"name,omitempty" yaml:"name,omitempty"`
	Columns           []string `json:"columns" yaml:"columns"`
	ReferencedTable   string   `json:"referencedTable" yaml:"referencedTable"`
	ReferencedColumns []string `json:"referencedColumns" yaml:"referencedColumns"`
}

// Index is a table index.
type Index struct {
	Name    string   `json:"name" yaml:"name"`
	Columns []string `json:"columns" yaml:"columns"`
	Unique  bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
}

// TypeString renders the column type with its length or precision, e.g.
// varchar(255) or decimal(10,2).
func (c *Column) TypeString() string {
	if c == nil {
		return ""
	}
	t := c.Type
	if strings.Contains(t, "(") {
		return t
	}
	switch {
	case c.Precision > 0 && c.Scale > 0:
		return fmt.Sprintf("%s(%d,%d)", t, c.Precision, c.Scale)
	case c.Precision > 0:
		return fmt.Sprintf("%s(%d)", t, c.Precision)
	case c.Length > 0:
		return fmt.Sprintf("%s(%d)", t, c.Length)
	}
	return t
}

// Detail is the one-line description shown next to a column: its type,
// followed by the comment when there is one.
func (c *Column) Detail() string {
	if c == nil {
		return ""
	}
	if c.Comment == "" {
		return c.TypeString()
	}
	return c.TypeString() + " - " + c.Comment
}

// DatabaseNames returns the database keys, sorted.
func (s *Schema) DatabaseNames() []string {
	if s == nil {
		return nil
	}
	return sortedKeys(s.Databases)
}

// TableNames returns the table keys, sorted.
func (d *Database) TableNames() []string {
	if d == nil {
		return nil
	}
	return sortedKeys(d.Tables)
}

// ColumnNames returns the column keys ordered by ordinal, then name.
// Columns without an ordinal sort after those with one.
func (t *Table) ColumnNames() []string {
	if t == nil {
		return nil
	}
	names := sortedKeys(t.Columns)
	sort.SliceStable(names, func(i, j int) bool {
		a, b := t.Columns[names[i]].ordinal(), t.Columns[names[j]].ordinal()
		return a < b
	})
	return names
}

func (c *Column) ordinal() int {
	if c == nil || c.Ordinal <= 0 {
		return int(^uint(0) >> 1)
	}
	return c.Ordinal
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalize fills in names from map keys and drops nil entries.
func (s *Schema) normalize() {
	if s.Databases == nil {
		s.Databases = make(map[string]*Database)
	}
	for dbName, db := range s.Databases {
		if db == nil {
			delete(s.Databases, dbName)
			continue
		}
		if db.Name == "" {
			db.Name = dbName
		}
		for tName, t := range db.Tables {
			if t == nil {
				delete(db.Tables, tName)
				continue
			}
			if t.Name == "" {
				t.Name = tName
			}
			for cName, c := range t.Columns {
				if c == nil {
					delete(t.Columns, cName)
				}
			}
			for _, pk := range t.PrimaryKeys {
				if c, ok := t.Columns[pk]; ok {
					c.PrimaryKey = true
				}
			}
		}
	}
}
