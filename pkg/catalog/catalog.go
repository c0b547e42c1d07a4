package catalog

import (
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/text/cases"
)

// ItemKind classifies a search hit.
type ItemKind string

// Item kinds.
const (
	KindDatabase ItemKind = "database"
	KindTable    ItemKind = "table"
	KindColumn   ItemKind = "column"
)

// kindOrder ranks kinds in search results.
var kindOrder = map[ItemKind]int{KindDatabase: 0, KindTable: 1, KindColumn: 2}

// TableInfo is a table together with the database holding it.
type TableInfo struct {
	Name     string
	Database string
	Table    *Table
}

// ColumnWithName is a column together with its name and table.
type ColumnWithName struct {
	Name     string
	Table    string
	Database string
	*Column
}

// SchemaItem is one search hit.
type SchemaItem struct {
	Kind     ItemKind `json:"kind"`
	Name     string   `json:"name"`
	Database string   `json:"database,omitempty"`
	Table    string   `json:"table,omitempty"`
	Detail   string   `json:"detail,omitempty"`
}

// SearchOptions narrows a search.
type SearchOptions struct {
	Type     ItemKind // empty for all kinds
	Database string   // empty for all databases
	Limit    int      // 0 for no limit
}

// SearchIndex accelerates Search. It is rebuilt from every registered
// schema. Search returns ok=false to fall back to a full scan.
type SearchIndex interface {
	Build(s *Schema)
	Search(query string, opts SearchOptions) (items []SchemaItem, ok bool)
}

// Options configures a Catalog.
type Options struct {
	// CaseSensitive disables the case-folded second lookup pass.
	CaseSensitive bool
	Index         SearchIndex
}

// Catalog answers schema lookups against the most recently registered
// schema. Reads never block; RegisterSchema swaps the whole snapshot.
type Catalog struct {
	opts   Options
	schema atomic.Pointer[Schema]
}

// New creates an empty Catalog.
func New(opts Options) *Catalog {
	c := &Catalog{opts: opts}
	c.schema.Store(NewSchema())
	return c
}

// RegisterSchema replaces the catalog contents with s. A nil schema clears
// the catalog. The catalog takes ownership of s.
func (c *Catalog) RegisterSchema(s *Schema) {
	if s == nil {
		s = NewSchema()
	}
	s.normalize()
	if c.opts.Index != nil {
		c.opts.Index.Build(s)
	}
	c.schema.Store(s)
}

// Schema returns the current snapshot. Callers must not modify it.
func (c *Catalog) Schema() *Schema {
	return c.schema.Load()
}

// fold normalizes a name for comparison.
func (c *Catalog) fold(s string) string {
	if c.opts.CaseSensitive {
		return s
	}
	return cases.Fold().String(s)
}

// GetDatabase returns the named database.
func (c *Catalog) GetDatabase(name string) (*Database, bool) {
	s := c.schema.Load()
	if db, ok := s.Databases[name]; ok {
		return db, true
	}
	if c.opts.CaseSensitive {
		return nil, false
	}
	want := c.fold(name)
	for _, key := range s.DatabaseNames() {
		if c.fold(key) == want {
			return s.Databases[key], true
		}
	}
	return nil, false
}

// databases returns the databases to search: the named one, or all of
// them in name order when database is empty.
func (c *Catalog) databases(database string) []*Database {
	if database != "" {
		if db, ok := c.GetDatabase(database); ok {
			return []*Database{db}
		}
		return nil
	}
	s := c.schema.Load()
	out := make([]*Database, 0, len(s.Databases))
	for _, name := range s.DatabaseNames() {
		out = append(out, s.Databases[name])
	}
	return out
}

// GetTable returns the named table. An empty database searches every
// database; exact matches anywhere win over case-folded ones.
func (c *Catalog) GetTable(name, database string) (*Table, bool) {
	info, ok := c.lookupTable(name, database)
	return info.Table, ok
}

// LookupTable is GetTable that also reports which database matched.
func (c *Catalog) LookupTable(name, database string) (TableInfo, bool) {
	return c.lookupTable(name, database)
}

func (c *Catalog) lookupTable(name, database string) (TableInfo, bool) {
	dbs := c.databases(database)
	for _, db := range dbs {
		if t, ok := db.Tables[name]; ok {
			return TableInfo{Name: t.Name, Database: db.Name, Table: t}, true
		}
	}
	if c.opts.CaseSensitive {
		return TableInfo{}, false
	}
	want := c.fold(name)
	for _, db := range dbs {
		for _, key := range db.TableNames() {
			if c.fold(key) == want {
				t := db.Tables[key]
				return TableInfo{Name: t.Name, Database: db.Name, Table: t}, true
			}
		}
	}
	return TableInfo{}, false
}

// GetColumns returns the columns of the named table ordered by ordinal,
// then name. Unknown tables yield nil.
func (c *Catalog) GetColumns(table, database string) []ColumnWithName {
	info, ok := c.lookupTable(table, database)
	if !ok {
		return nil
	}
	names := info.Table.ColumnNames()
	out := make([]ColumnWithName, 0, len(names))
	for _, name := range names {
		out = append(out, ColumnWithName{
			Name:     name,
			Table:    info.Name,
			Database: info.Database,
			Column:   info.Table.Columns[name],
		})
	}
	return out
}

// GetAllTables lists the tables of database, or of every database when it
// is empty, ordered by database then table name.
func (c *Catalog) GetAllTables(database string) []TableInfo {
	var out []TableInfo
	for _, db := range c.databases(database) {
		for _, name := range db.TableNames() {
			t := db.Tables[name]
			out = append(out, TableInfo{Name: t.Name, Database: db.Name, Table: t})
		}
	}
	return out
}

// Search finds databases, tables and columns whose name contains query.
// Prefix matches come first, then kinds in database, table, column order.
func (c *Catalog) Search(query string, opts SearchOptions) []SchemaItem {
	if c.opts.Index != nil {
		if items, ok := c.opts.Index.Search(query, opts); ok {
			return limit(items, opts.Limit)
		}
	}

	q := c.fold(strings.TrimSpace(query))
	type hit struct {
		item   SchemaItem
		prefix bool
	}
	var hits []hit
	match := func(name string) (bool, bool) {
		n := c.fold(name)
		return strings.Contains(n, q), strings.HasPrefix(n, q)
	}
	want := func(k ItemKind) bool { return opts.Type == "" || opts.Type == k }

	for _, db := range c.databases(opts.Database) {
		if want(KindDatabase) {
			if ok, prefix := match(db.Name); ok {
				hits = append(hits, hit{SchemaItem{Kind: KindDatabase, Name: db.Name, Detail: db.Comment}, prefix})
			}
		}
		for _, tName := range db.TableNames() {
			t := db.Tables[tName]
			if want(KindTable) {
				if ok, prefix := match(t.Name); ok {
					hits = append(hits, hit{SchemaItem{Kind: KindTable, Name: t.Name, Database: db.Name, Detail: t.Comment}, prefix})
				}
			}
			if !want(KindColumn) {
				continue
			}
			for _, cName := range t.ColumnNames() {
				if ok, prefix := match(cName); ok {
					hits = append(hits, hit{SchemaItem{
						Kind:     KindColumn,
						Name:     cName,
						Database: db.Name,
						Table:    t.Name,
						Detail:   t.Columns[cName].Detail(),
					}, prefix})
				}
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].prefix != hits[j].prefix {
			return hits[i].prefix
		}
		return kindOrder[hits[i].item.Kind] < kindOrder[hits[j].item.Kind]
	})

	items := make([]SchemaItem, len(hits))
	for i, h := range hits {
		items[i] = h.item
	}
	return limit(items, opts.Limit)
}

func limit(items []SchemaItem, n int) []SchemaItem {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
