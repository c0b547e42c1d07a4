// Package complete produces ranked completion suggestions for a cursor
// position in SQL text.
//
// An Engine parses the text, classifies the cursor with package cursor,
// asks every Provider that accepts the context for candidates, then
// de-duplicates, ranks and truncates them. Providers are plain values
// implementing two methods and can be added or removed at runtime.
package complete

import (
	"log/slog"

	"github.com/leapstack-labs/sqlassist/pkg/catalog"
	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/cursor"
	"github.com/leapstack-labs/sqlassist/pkg/parser"
)

// Kind is the kind of a completion item.
type Kind string

// Completion kinds.
const (
	KindTable    Kind = "table"
	KindColumn   Kind = "column"
	KindKeyword  Kind = "keyword"
	KindFunction Kind = "function"
	KindAlias    Kind = "alias"
	KindDatabase Kind = "database"
	KindSnippet  Kind = "snippet"
	KindCustom   Kind = "custom"
)

// Completion is a single suggestion.
type Completion struct {
	Label         string `json:"label"`
	Kind          Kind   `json:"type"`
	Detail        string `json:"detail,omitempty"`
	Documentation string `json:"documentation,omitempty"`
	InsertText    string `json:"insertText,omitempty"`
	// SortPriority orders items of equal score; lower sorts first.
	SortPriority int    `json:"sortPriority"`
	FilterText   string `json:"filterText,omitempty"`
	// Score is set by ranking only.
	Score    float64        `json:"score,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// text returns the string matched against the typed prefix.
func (c Completion) text() string {
	if c.FilterText != "" {
		return c.FilterText
	}
	return c.Label
}

// Schema is the catalog view providers read. *catalog.Catalog implements it.
type Schema interface {
	GetAllTables(database string) []catalog.TableInfo
	GetColumns(table, database string) []catalog.ColumnWithName
}

// Provider contributes completions for the contexts it accepts.
type Provider interface {
	Name() string
	CanProvide(ctx cursor.Context) bool
	Provide(ctx cursor.Context, schema Schema) []Completion
}

// Options configures an Engine.
type Options struct {
	Enabled bool
	// MaxSuggestions caps the result; 0 means no cap.
	MaxSuggestions int
	// MinCharacters suppresses suggestions until the current word is this
	// long. It does not apply after a dot.
	MinCharacters int
	CaseSensitive bool
	FuzzyMatch    bool
	Logger        *slog.Logger
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Enabled:        true,
		MaxSuggestions: 50,
		FuzzyMatch:     true,
	}
}

// Engine computes completions.
type Engine struct {
	parser    *parser.Parser
	opts      Options
	logger    *slog.Logger
	providers []Provider
}

// New creates an Engine with the default column, table, keyword and
// function providers for the parser's dialect.
func New(p *parser.Parser, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := p.Dialect()
	return &Engine{
		parser: p,
		opts:   opts,
		logger: logger,
		providers: []Provider{
			NewColumnProvider(),
			NewTableProvider(),
			NewKeywordProvider(d),
			NewFunctionProvider(d),
		},
	}
}

// AddProvider appends a provider. Providers run in registration order.
func (e *Engine) AddProvider(p Provider) {
	e.providers = append(e.providers, p)
}

// RemoveProvider removes every provider with the given name and reports
// whether any was removed.
func (e *Engine) RemoveProvider(name string) bool {
	kept := e.providers[:0]
	for _, p := range e.providers {
		if p.Name() != name {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(e.providers)
	clear(e.providers[len(kept):])
	e.providers = kept
	return removed
}

// Providers returns the registered providers in order.
func (e *Engine) Providers() []Provider {
	return append([]Provider(nil), e.providers...)
}

// Options returns the engine options.
func (e *Engine) Options() Options {
	return e.opts
}

// GetSuggestions returns ranked completions for pos in text. It never
// panics; internal failures are logged and yield no suggestions.
func (e *Engine) GetSuggestions(text string, pos core.Position, schema Schema) (items []Completion) {
	if !e.opts.Enabled {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("completion failed", "panic", r)
			items = nil
		}
	}()

	res := e.parser.Parse(text)
	return e.Complete(cursor.Detect(text, pos, res.TableRefs), schema)
}

// Complete runs the providers against an already classified context.
func (e *Engine) Complete(ctx cursor.Context, schema Schema) (items []Completion) {
	if !e.opts.Enabled {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("completion failed", "panic", r, "context", ctx.Kind)
			items = nil
		}
	}()

	if e.opts.MinCharacters > 0 && !ctx.AfterDot && len(ctx.CurrentToken) < e.opts.MinCharacters {
		return nil
	}

	var all []Completion
	for _, p := range e.providers {
		if !p.CanProvide(ctx) {
			continue
		}
		got := p.Provide(ctx, schema)
		e.logger.Debug("provider", "name", p.Name(), "items", len(got))
		all = append(all, got...)
	}

	items = rank(dedupe(all), ctx.CurrentToken, e.opts.FuzzyMatch, e.opts.CaseSensitive)
	if e.opts.MaxSuggestions > 0 && len(items) > e.opts.MaxSuggestions {
		items = items[:e.opts.MaxSuggestions]
	}
	e.logger.Debug("completed",
		"context", ctx.Kind,
		"token", ctx.CurrentToken,
		"candidates", len(all),
		"items", len(items))
	return items
}

// dedupe keeps one item per kind, label and insert text, preferring the
// lowest SortPriority.
func dedupe(items []Completion) []Completion {
	type key struct {
		kind          Kind
		label, insert string
	}
	index := make(map[key]int, len(items))
	out := make([]Completion, 0, len(items))
	for _, it := range items {
		k := key{it.Kind, it.Label, it.InsertText}
		if i, ok := index[k]; ok {
			if it.SortPriority < out[i].SortPriority {
				out[i] = it
			}
			continue
		}
		index[k] = len(out)
		out = append(out, it)
	}
	return out
}
