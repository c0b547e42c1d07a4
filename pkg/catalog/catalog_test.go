package catalog_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlassist/internal/testutil"
	"github.com/leapstack-labs/sqlassist/pkg/catalog"
)

func columnNames(cols []catalog.ColumnWithName) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

func TestCatalog_GetTable(t *testing.T) {
	c := testutil.SampleCatalog()

	tests := []struct {
		name     string
		table    string
		database string
		found    bool
		wantDB   string
	}{
		{"exact", "users", "shop", true, "shop"},
		{"any database", "events", "", true, "analytics"},
		{"case folded", "USERS", "", true, "shop"},
		{"case folded database", "Users", "SHOP", true, "shop"},
		{"wrong database", "users", "analytics", false, ""},
		{"unknown", "nonexistent", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := c.LookupTable(tt.table, tt.database)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.wantDB, info.Database)

			_, ok = c.GetTable(tt.table, tt.database)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestCatalog_CaseSensitive(t *testing.T) {
	c := catalog.New(catalog.Options{CaseSensitive: true})
	c.RegisterSchema(testutil.SampleSchema())

	_, ok := c.GetTable("users", "")
	assert.True(t, ok)
	_, ok = c.GetTable("USERS", "")
	assert.False(t, ok)
	_, ok = c.GetDatabase("Shop")
	assert.False(t, ok)
}

func TestCatalog_GetColumns(t *testing.T) {
	c := testutil.SampleCatalog()

	cols := c.GetColumns("users", "")
	assert.Equal(t, []string{"id", "username", "user_email", "created_at"}, columnNames(cols))
	assert.Equal(t, "users", cols[0].Table)
	assert.Equal(t, "shop", cols[0].Database)
	assert.True(t, cols[0].PrimaryKey)

	assert.Nil(t, c.GetColumns("nonexistent", ""))
}

func TestCatalog_ColumnsWithoutOrdinal(t *testing.T) {
	s := catalog.NewSchema()
	tbl := s.AddDatabase("db").AddTable("t")
	tbl.Columns["zeta"] = &catalog.Column{Type: "int"}
	tbl.Columns["alpha"] = &catalog.Column{Type: "int"}
	tbl.Columns["second"] = &catalog.Column{Type: "int", Ordinal: 2}
	tbl.Columns["first"] = &catalog.Column{Type: "int", Ordinal: 1}

	c := catalog.New(catalog.Options{})
	c.RegisterSchema(s)
	assert.Equal(t, []string{"first", "second", "alpha", "zeta"}, columnNames(c.GetColumns("t", "db")))
}

func TestCatalog_GetAllTables(t *testing.T) {
	c := testutil.SampleCatalog()

	var names []string
	for _, info := range c.GetAllTables("") {
		names = append(names, info.Database+"."+info.Name)
	}
	assert.Equal(t, []string{"analytics.events", "shop.order_items", "shop.orders", "shop.users"}, names)

	assert.Len(t, c.GetAllTables("shop"), 3)
	assert.Empty(t, c.GetAllTables("missing"))
}

func TestCatalog_Search(t *testing.T) {
	c := testutil.SampleCatalog()

	tests := []struct {
		name  string
		query string
		opts  catalog.SearchOptions
		want  []string
	}{
		{
			name:  "prefix before contains",
			query: "user",
			opts:  catalog.SearchOptions{Database: "shop"},
			want:  []string{"table:users", "column:user_id", "column:username", "column:user_email"},
		},
		{
			name:  "contains after prefix",
			query: "id",
			opts:  catalog.SearchOptions{Type: catalog.KindColumn, Database: "shop"},
			want:  []string{"column:id", "column:id", "column:order_id", "column:user_id"},
		},
		{
			name:  "tables only",
			query: "ORDER",
			opts:  catalog.SearchOptions{Type: catalog.KindTable},
			want:  []string{"table:order_items", "table:orders"},
		},
		{
			name:  "limit",
			query: "id",
			opts:  catalog.SearchOptions{Type: catalog.KindColumn, Limit: 2},
			want:  []string{"column:id", "column:id"},
		},
		{
			name:  "database",
			query: "anal",
			opts:  catalog.SearchOptions{},
			want:  []string{"database:analytics"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, item := range c.Search(tt.query, tt.opts) {
				got = append(got, string(item.Kind)+":"+item.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_SearchColumnDetail(t *testing.T) {
	s := catalog.NewSchema()
	s.AddDatabase("db").AddTable("t").Columns["email"] = &catalog.Column{Type: "varchar", Length: 255, Comment: "login"}
	c := catalog.New(catalog.Options{})
	c.RegisterSchema(s)

	items := c.Search("email", catalog.SearchOptions{})
	require.Len(t, items, 1)
	assert.Equal(t, "varchar(255) - login", items[0].Detail)
	assert.Equal(t, "t", items[0].Table)
}

type fakeIndex struct {
	built int
	items []catalog.SchemaItem
}

var _ catalog.SearchIndex = (*fakeIndex)(nil)

func (f *fakeIndex) Build(*catalog.Schema) { f.built++ }

func (f *fakeIndex) Search(string, catalog.SearchOptions) ([]catalog.SchemaItem, bool) {
	return f.items, f.items != nil
}

func TestCatalog_Index(t *testing.T) {
	idx := &fakeIndex{}
	c := catalog.New(catalog.Options{Index: idx})
	c.RegisterSchema(testutil.SampleSchema())
	assert.Equal(t, 1, idx.built)

	// falls back to a scan when the index declines
	assert.NotEmpty(t, c.Search("users", catalog.SearchOptions{Type: catalog.KindTable}))

	idx.items = []catalog.SchemaItem{{Kind: catalog.KindTable, Name: "a"}, {Kind: catalog.KindTable, Name: "b"}}
	got := c.Search("anything", catalog.SearchOptions{Limit: 1})
	assert.Equal(t, []catalog.SchemaItem{{Kind: catalog.KindTable, Name: "a"}}, got)
}

func TestCatalog_TableIndexesWithSearchIndex(t *testing.T) {
	s := catalog.NewSchema()
	tbl := s.AddDatabase("shop").AddTable("users").AddColumn("email", "varchar")
	tbl.Indexes = append(tbl.Indexes, catalog.Index{Name: "users_email", Columns: []string{"email"}, Unique: true})

	idx := &fakeIndex{}
	c := catalog.New(catalog.Options{Index: idx})
	c.RegisterSchema(s)

	got, ok := c.GetTable("users", "shop")
	require.True(t, ok)
	require.Len(t, got.Indexes, 1)
	assert.True(t, got.Indexes[0].Unique)
	assert.Equal(t, 1, idx.built)
}

func TestCatalog_RegisterReplaces(t *testing.T) {
	c := testutil.SampleCatalog()

	next := catalog.NewSchema()
	next.AddDatabase("other").AddTable("things").AddColumn("id", "int")
	c.RegisterSchema(next)

	_, ok := c.GetTable("users", "")
	assert.False(t, ok)
	_, ok = c.GetTable("things", "")
	assert.True(t, ok)

	c.RegisterSchema(nil)
	assert.Empty(t, c.GetAllTables(""))
}

func TestCatalog_ConcurrentReads(t *testing.T) {
	c := testutil.SampleCatalog()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = c.GetTable("users", "")
				_ = c.Search("id", catalog.SearchOptions{})
			}
		}()
	}
	for i := 0; i < 10; i++ {
		c.RegisterSchema(testutil.SampleSchema())
	}
	wg.Wait()
}
