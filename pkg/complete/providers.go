package complete

import (
	"slices"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/cursor"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
)

// Default priorities. Lower sorts first.
const (
	PriorityDottedColumn = 0
	PriorityTable        = 1
	PriorityColumn       = 2
	PriorityContextual   = 3
	PriorityFunction     = 4
	PriorityKeyword      = 5
)

// ColumnProvider suggests columns. After "qualifier." it lists the columns
// of the table or CTE the qualifier names; elsewhere it lists the columns
// of every table in the statement, qualified for insertion.
type ColumnProvider struct{}

// NewColumnProvider creates a ColumnProvider.
func NewColumnProvider() *ColumnProvider { return &ColumnProvider{} }

// Name implements Provider.
func (*ColumnProvider) Name() string { return "column" }

// CanProvide implements Provider.
func (*ColumnProvider) CanProvide(ctx cursor.Context) bool {
	if ctx.AfterDot {
		return true
	}
	switch ctx.Kind {
	case cursor.SelectList, cursor.WhereClause, cursor.GroupBy, cursor.OrderBy, cursor.HavingClause:
		return true
	}
	return false
}

// Provide implements Provider.
func (p *ColumnProvider) Provide(ctx cursor.Context, schema Schema) []Completion {
	if ctx.AfterDot {
		ref, ok := cursor.ResolveAlias(ctx.DotPrefix, ctx.AvailableTables)
		if !ok {
			// an unaliased table name typed before its FROM clause
			ref = &core.TableReference{Name: ctx.DotPrefix}
		}
		return p.columns(*ref, schema, "", PriorityDottedColumn)
	}

	var out []Completion
	for _, ref := range ctx.AvailableTables {
		out = append(out, p.columns(ref, schema, ref.Qualifier(), PriorityColumn)...)
	}
	return out
}

// columns lists the columns of ref. A non-empty qualifier is prepended to
// the insert text.
func (*ColumnProvider) columns(ref core.TableReference, schema Schema, qualifier string, priority int) []Completion {
	insert := func(col string) string {
		if qualifier == "" {
			return ""
		}
		return qualifier + "." + col
	}

	if ref.IsCTE {
		out := make([]Completion, 0, len(ref.CTEColumns))
		for _, col := range ref.CTEColumns {
			out = append(out, Completion{
				Label:         col,
				Kind:          KindColumn,
				Detail:        "cte " + ref.Name,
				Documentation: ref.Name + "." + col,
				InsertText:    insert(col),
				SortPriority:  priority,
			})
		}
		return out
	}

	if schema == nil {
		return nil
	}
	cols := schema.GetColumns(ref.Name, ref.Database)
	if len(cols) == 0 && ref.Database != "" {
		// unknown or templated database qualifier
		cols = schema.GetColumns(ref.Name, "")
	}
	out := make([]Completion, 0, len(cols))
	for _, col := range cols {
		out = append(out, Completion{
			Label:         col.Name,
			Kind:          KindColumn,
			Detail:        col.Detail(),
			Documentation: col.Table + "." + col.Name,
			InsertText:    insert(col.Name),
			SortPriority:  priority,
			Metadata: map[string]any{
				"table":    col.Table,
				"database": col.Database,
			},
		})
	}
	return out
}

// TableProvider suggests catalog tables, and CTEs of the statement, in
// FROM and JOIN clauses.
type TableProvider struct{}

// NewTableProvider creates a TableProvider.
func NewTableProvider() *TableProvider { return &TableProvider{} }

// Name implements Provider.
func (*TableProvider) Name() string { return "table" }

// CanProvide implements Provider.
func (*TableProvider) CanProvide(ctx cursor.Context) bool {
	return !ctx.AfterDot && (ctx.Kind == cursor.FromClause || ctx.Kind == cursor.JoinClause)
}

// Provide implements Provider.
func (*TableProvider) Provide(ctx cursor.Context, schema Schema) []Completion {
	var out []Completion
	for _, ref := range ctx.AvailableTables {
		if ref.IsCTE {
			out = append(out, Completion{
				Label:        ref.Name,
				Kind:         KindTable,
				Detail:       "cte",
				SortPriority: PriorityTable,
			})
		}
	}
	if schema == nil {
		return out
	}
	for _, t := range schema.GetAllTables("") {
		out = append(out, Completion{
			Label:         t.Name,
			Kind:          KindTable,
			Detail:        t.Database,
			Documentation: t.Table.Comment,
			SortPriority:  PriorityTable,
			Metadata:      map[string]any{"database": t.Database},
		})
	}
	return out
}

// contextKeywords are suggested ahead of the general vocabulary.
var contextKeywords = map[cursor.Kind][]string{
	cursor.SelectList:   {"DISTINCT", "AS", "FROM", "CASE"},
	cursor.FromClause:   {"AS", "JOIN", "LEFT JOIN", "INNER JOIN", "WHERE", "GROUP BY", "ORDER BY", "LIMIT"},
	cursor.JoinClause:   {"ON", "USING", "AS"},
	cursor.WhereClause:  {"AND", "OR", "NOT", "IN", "LIKE", "BETWEEN", "IS NULL", "IS NOT NULL", "EXISTS", "GROUP BY", "ORDER BY", "LIMIT"},
	cursor.GroupBy:      {"HAVING", "ORDER BY", "LIMIT"},
	cursor.HavingClause: {"AND", "OR", "ORDER BY", "LIMIT"},
	cursor.OrderBy:      {"ASC", "DESC", "NULLS FIRST", "NULLS LAST", "LIMIT"},
	cursor.Function:     {"DISTINCT", "AS", "CASE"},
	cursor.Unknown:      {"SELECT", "WITH", "INSERT INTO", "UPDATE", "DELETE FROM"},
}

// KeywordProvider suggests the dialect's keywords, with the ones that
// usually follow the current clause ranked higher.
type KeywordProvider struct {
	vocabulary []string
	contextual map[cursor.Kind][]string
}

// NewKeywordProvider creates a KeywordProvider for d.
func NewKeywordProvider(d *dialect.Dialect) *KeywordProvider {
	p := &KeywordProvider{
		vocabulary: d.Keywords(),
		contextual: make(map[cursor.Kind][]string, len(contextKeywords)),
	}
	for kind, kws := range contextKeywords {
		p.contextual[kind] = slices.Clone(kws)
	}
	if d.SupportsIlike() {
		p.contextual[cursor.WhereClause] = append(p.contextual[cursor.WhereClause], "ILIKE")
	}
	if d.SupportsQualify() {
		p.contextual[cursor.GroupBy] = append(p.contextual[cursor.GroupBy], "QUALIFY")
		p.contextual[cursor.WhereClause] = append(p.contextual[cursor.WhereClause], "QUALIFY")
	}
	return p
}

// Name implements Provider.
func (*KeywordProvider) Name() string { return "keyword" }

// CanProvide implements Provider.
func (*KeywordProvider) CanProvide(ctx cursor.Context) bool {
	return !ctx.AfterDot
}

// Provide implements Provider.
func (p *KeywordProvider) Provide(ctx cursor.Context, _ Schema) []Completion {
	ctxKws := p.contextual[ctx.Kind]
	out := make([]Completion, 0, len(ctxKws)+len(p.vocabulary))
	for _, kw := range ctxKws {
		out = append(out, Completion{Label: kw, Kind: KindKeyword, SortPriority: PriorityContextual})
	}
	for _, kw := range p.vocabulary {
		out = append(out, Completion{Label: kw, Kind: KindKeyword, SortPriority: PriorityKeyword})
	}
	return out
}

// FunctionProvider suggests the dialect's functions as snippets.
type FunctionProvider struct {
	functions []dialect.Function
}

// NewFunctionProvider creates a FunctionProvider for d.
func NewFunctionProvider(d *dialect.Dialect) *FunctionProvider {
	return &FunctionProvider{functions: d.Functions()}
}

// Name implements Provider.
func (*FunctionProvider) Name() string { return "function" }

// CanProvide implements Provider.
func (*FunctionProvider) CanProvide(ctx cursor.Context) bool {
	if ctx.AfterDot {
		return false
	}
	switch ctx.Kind {
	case cursor.SelectList, cursor.WhereClause, cursor.HavingClause, cursor.OrderBy, cursor.Function:
		return true
	}
	return false
}

// Provide implements Provider.
func (p *FunctionProvider) Provide(cursor.Context, Schema) []Completion {
	out := make([]Completion, 0, len(p.functions))
	for _, fn := range p.functions {
		insert := fn.Snippet
		if insert == "" {
			insert = fn.Name + "($1)"
		}
		out = append(out, Completion{
			Label:         fn.Name,
			Kind:          KindFunction,
			Detail:        fn.Signature,
			Documentation: fn.Description,
			InsertText:    insert,
			SortPriority:  PriorityFunction,
			Metadata: map[string]any{
				"category":  string(fn.Category),
				"aggregate": fn.Aggregate,
			},
		})
	}
	return out
}

// StaticProvider suggests a fixed list of items, typically snippets from
// configuration.
type StaticProvider struct {
	name  string
	items []Completion
	kinds []cursor.Kind
}

// NewStaticProvider creates a provider returning items in the given
// contexts, or in every context when kinds is empty. It never fires after
// a dot. Items without a kind become snippets; items without a priority
// get PriorityContextual.
func NewStaticProvider(name string, items []Completion, kinds ...cursor.Kind) *StaticProvider {
	cp := make([]Completion, len(items))
	for i, it := range items {
		if it.Kind == "" {
			it.Kind = KindSnippet
		}
		if it.SortPriority == 0 {
			it.SortPriority = PriorityContextual
		}
		cp[i] = it
	}
	return &StaticProvider{name: name, items: cp, kinds: kinds}
}

// Name implements Provider.
func (p *StaticProvider) Name() string { return p.name }

// CanProvide implements Provider.
func (p *StaticProvider) CanProvide(ctx cursor.Context) bool {
	if ctx.AfterDot {
		return false
	}
	return len(p.kinds) == 0 || slices.Contains(p.kinds, ctx.Kind)
}

// Provide implements Provider.
func (p *StaticProvider) Provide(cursor.Context, Schema) []Completion {
	return slices.Clone(p.items)
}
