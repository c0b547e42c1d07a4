package complete

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlassist/internal/testutil"
	"github.com/leapstack-labs/sqlassist/pkg/catalog"
	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/cursor"
	_ "github.com/leapstack-labs/sqlassist/pkg/dialects/all"
	"github.com/leapstack-labs/sqlassist/pkg/parser"
)

func newEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	opts.Logger = testutil.NewTestLogger(t)
	return New(parser.New(parser.Options{Logger: opts.Logger}), opts)
}

func usersCatalog() *catalog.Catalog {
	s := catalog.NewSchema()
	s.AddDatabase("app").AddTable("users").
		AddColumn("id", "int").
		AddColumn("username", "varchar")
	c := catalog.New(catalog.Options{})
	c.RegisterSchema(s)
	return c
}

func labels(items []Completion) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func indexOf(items []Completion, label string) int {
	for i, it := range items {
		if it.Label == label {
			return i
		}
	}
	return -1
}

func countKind(items []Completion, kind Kind) int {
	n := 0
	for _, it := range items {
		if it.Kind == kind {
			n++
		}
	}
	return n
}

func TestComplete_AfterDotWithKnownRefs(t *testing.T) {
	e := newEngine(t, DefaultOptions())
	ctx := cursor.Context{
		Kind:            cursor.SelectList,
		Position:        core.Position{Line: 0, Column: 9},
		AvailableTables: []core.TableReference{{Name: "users", Alias: "u"}},
		AfterDot:        true,
		DotPrefix:       "u",
	}

	items := e.Complete(ctx, usersCatalog())

	assert.Equal(t, []string{"id", "username"}, labels(items))
	assert.Equal(t, 2, countKind(items, KindColumn))
	assert.Zero(t, countKind(items, KindKeyword))
	for _, it := range items {
		assert.Equal(t, PriorityDottedColumn, it.SortPriority)
		assert.Empty(t, it.InsertText)
	}
}

func TestGetSuggestions_AfterDot(t *testing.T) {
	e := newEngine(t, DefaultOptions())
	items := e.GetSuggestions("SELECT u. FROM users u", core.Position{Line: 0, Column: 9}, usersCatalog())

	assert.Equal(t, []string{"id", "username"}, labels(items))
	assert.Zero(t, countKind(items, KindKeyword))
	assert.Zero(t, countKind(items, KindFunction))
}

func TestGetSuggestions_FuzzyRanking(t *testing.T) {
	e := newEngine(t, DefaultOptions())
	text := "SELECT use FROM users"
	items := e.GetSuggestions(text, core.Position{Line: 0, Column: 10}, testutil.SampleCatalog())

	username, email := indexOf(items, "username"), indexOf(items, "user_email")
	require.GreaterOrEqual(t, username, 0)
	require.GreaterOrEqual(t, email, 0)
	assert.Less(t, username, email)

	assert.Equal(t, "users.username", items[username].InsertText)
	assert.InDelta(t, 0.9, items[username].Score, 1e-9)
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].Score, items[i].Score)
	}
}

func TestGetSuggestions_FromClause(t *testing.T) {
	e := newEngine(t, Options{Enabled: true})
	items := e.GetSuggestions("SELECT * FROM ", core.Position{Line: 0, Column: 14}, testutil.SampleCatalog())

	require.NotEmpty(t, items)
	// tables rank first with no typed prefix
	assert.Equal(t, []string{"events", "order_items", "orders", "users"}, labels(items[:4]))
	assert.Equal(t, "analytics", items[0].Detail)
	assert.Zero(t, countKind(items, KindColumn))
	assert.Zero(t, countKind(items, KindFunction))
}

func TestGetSuggestions_PrefixWithoutFuzzy(t *testing.T) {
	e := newEngine(t, Options{Enabled: true})
	items := e.GetSuggestions("SELECT * FROM us", core.Position{Line: 0, Column: 16}, testutil.SampleCatalog())

	require.NotEmpty(t, items)
	assert.Equal(t, "users", items[0].Label)
	assert.Equal(t, KindTable, items[0].Kind)
	for _, it := range items {
		assert.True(t, strings.HasPrefix(strings.ToLower(it.Label), "us"), it.Label)
	}
}

func TestGetSuggestions_CaseSensitivePrefix(t *testing.T) {
	e := newEngine(t, Options{Enabled: true, CaseSensitive: true})
	items := e.GetSuggestions("SELECT * FROM US", core.Position{Line: 0, Column: 16}, testutil.SampleCatalog())

	assert.Equal(t, -1, indexOf(items, "users"))
	assert.GreaterOrEqual(t, indexOf(items, "USING"), 0)
}

func TestGetSuggestions_MaxSuggestions(t *testing.T) {
	for _, limit := range []int{1, 3, 10} {
		opts := DefaultOptions()
		opts.MaxSuggestions = limit
		e := newEngine(t, opts)

		items := e.GetSuggestions("SELECT ", core.Position{Line: 0, Column: 7}, testutil.SampleCatalog())
		assert.Len(t, items, limit)
	}
}

func TestGetSuggestions_Disabled(t *testing.T) {
	e := newEngine(t, Options{Enabled: false, MaxSuggestions: 10})
	for _, text := range []string{"", "SELECT ", "SELECT u. FROM users u"} {
		assert.Empty(t, e.GetSuggestions(text, core.OffsetToPosition(text, len(text)), testutil.SampleCatalog()))
	}
	assert.Empty(t, e.Complete(cursor.Context{Kind: cursor.SelectList}, nil))
}

func TestGetSuggestions_MinCharacters(t *testing.T) {
	opts := DefaultOptions()
	opts.MinCharacters = 2
	e := newEngine(t, opts)
	cat := testutil.SampleCatalog()

	assert.Empty(t, e.GetSuggestions("SELECT u", core.Position{Line: 0, Column: 8}, cat))
	assert.NotEmpty(t, e.GetSuggestions("SELECT us", core.Position{Line: 0, Column: 9}, cat))

	// after a dot the gate does not apply
	items := e.GetSuggestions("SELECT users.", core.Position{Line: 0, Column: 13}, cat)
	assert.Equal(t, []string{"created_at", "id", "user_email", "username"}, labels(items))
}

func TestGetSuggestions_CTE(t *testing.T) {
	e := newEngine(t, DefaultOptions())
	cat := testutil.SampleCatalog()

	text := "WITH recent AS (SELECT id, name FROM users) SELECT r. FROM recent r"
	pos := core.OffsetToPosition(text, strings.Index(text, "r. ")+2)
	items := e.GetSuggestions(text, pos, cat)
	assert.Equal(t, []string{"id", "name"}, labels(items))
	assert.Equal(t, "cte recent", items[0].Detail)

	text = "WITH recent AS (SELECT id FROM users) SELECT * FROM recent r JOIN "
	items = e.GetSuggestions(text, core.OffsetToPosition(text, len(text)), cat)
	i := indexOf(items, "recent")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, KindTable, items[i].Kind)
	assert.Equal(t, "cte", items[i].Detail)
}

func TestGetSuggestions_NilSchema(t *testing.T) {
	e := newEngine(t, DefaultOptions())
	items := e.GetSuggestions("SELECT ", core.Position{Line: 0, Column: 7}, nil)

	assert.NotEmpty(t, items)
	assert.Zero(t, countKind(items, KindColumn))
}

type panicProvider struct{}

func (panicProvider) Name() string { return "panic" }

func (panicProvider) CanProvide(cursor.Context) bool { return true }

func (panicProvider) Provide(cursor.Context, Schema) []Completion {
	panic("provider exploded")
}

func TestGetSuggestions_ProviderPanic(t *testing.T) {
	e := newEngine(t, DefaultOptions())
	e.AddProvider(panicProvider{})

	var items []Completion
	require.NotPanics(t, func() {
		items = e.GetSuggestions("SELECT ", core.Position{Line: 0, Column: 7}, testutil.SampleCatalog())
	})
	assert.Empty(t, items)
}

func TestEngine_Providers(t *testing.T) {
	e := newEngine(t, DefaultOptions())

	var names []string
	for _, p := range e.Providers() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"column", "table", "keyword", "function"}, names)

	assert.True(t, e.RemoveProvider("keyword"))
	assert.False(t, e.RemoveProvider("keyword"))
	assert.Len(t, e.Providers(), 3)

	items := e.GetSuggestions("SELECT ", core.Position{Line: 0, Column: 7}, testutil.SampleCatalog())
	assert.Zero(t, countKind(items, KindKeyword))
}

func TestStaticProvider(t *testing.T) {
	e := newEngine(t, DefaultOptions())
	e.AddProvider(NewStaticProvider("snippets", []Completion{
		{Label: "sfw", InsertText: "SELECT * FROM $1 WHERE $2", Detail: "select from where"},
	}, cursor.Unknown))

	items := e.GetSuggestions("sf", core.Position{Line: 0, Column: 2}, nil)
	i := indexOf(items, "sfw")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, KindSnippet, items[i].Kind)
	assert.Equal(t, PriorityContextual, items[i].SortPriority)

	// not offered outside its contexts
	items = e.GetSuggestions("SELECT sf", core.Position{Line: 0, Column: 9}, nil)
	assert.Equal(t, -1, indexOf(items, "sfw"))
}

func TestKeywordProvider_ContextFirst(t *testing.T) {
	e := newEngine(t, DefaultOptions())
	items := e.GetSuggestions("SELECT ", core.Position{Line: 0, Column: 7}, nil)

	i := indexOf(items, "DISTINCT")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, PriorityContextual, items[i].SortPriority)

	n := 0
	for _, it := range items {
		if it.Label == "DISTINCT" {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestFunctionProvider_Snippets(t *testing.T) {
	e := newEngine(t, DefaultOptions())
	items := e.GetSuggestions("SELECT cou", core.Position{Line: 0, Column: 10}, nil)

	i := indexOf(items, "COUNT")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, KindFunction, items[i].Kind)
	assert.Equal(t, "COUNT($1)", items[i].InsertText)
	assert.Equal(t, PriorityFunction, items[i].SortPriority)
}
