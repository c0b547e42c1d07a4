package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlassist/internal/cli/output"
	"github.com/leapstack-labs/sqlassist/pkg/complete"
	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/cursor"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
	_ "github.com/leapstack-labs/sqlassist/pkg/dialects/all" // register dialects
	"github.com/leapstack-labs/sqlassist/pkg/lint"
	"github.com/leapstack-labs/sqlassist/pkg/parser"
)

var snippetContexts = map[string]cursor.Kind{}

func init() {
	for _, k := range []cursor.Kind{
		cursor.SelectList, cursor.FromClause, cursor.WhereClause, cursor.JoinClause,
		cursor.GroupBy, cursor.OrderBy, cursor.HavingClause, cursor.Function, cursor.Unknown,
	} {
		snippetContexts[string(k)] = k
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := dialect.Get(c.Dialect); !ok && c.Dialect != "" {
		errs = append(errs, fmt.Errorf("unknown dialect %q (available: %v)", c.Dialect, dialect.List()))
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		errs = append(errs, err)
	}
	if c.Completion.MaxSuggestions < 0 {
		errs = append(errs, errors.New("completion.max_suggestions must not be negative"))
	}
	if c.Completion.MinCharacters < 0 {
		errs = append(errs, errors.New("completion.min_characters must not be negative"))
	}
	for i, s := range c.Completion.Snippets {
		if s.Label == "" {
			errs = append(errs, fmt.Errorf("completion.snippets[%d]: label is required", i))
		}
		for _, name := range s.Contexts {
			if _, ok := snippetContexts[name]; !ok {
				errs = append(errs, fmt.Errorf("completion.snippets[%d]: unknown context %q", i, name))
			}
		}
	}
	for name, rc := range c.Lint.Rules {
		if rc.Severity == "" {
			continue
		}
		if _, ok := core.ParseSeverity(rc.Severity); !ok {
			errs = append(errs, fmt.Errorf("lint.rules.%s: invalid severity %q", name, rc.Severity))
		}
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, errors.New("watch.debounce must not be negative"))
	}
	if c.Database.Driver != "" && c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required when database.driver is set"))
	}

	return errors.Join(errs...)
}

// ParserOptions returns the parser settings.
func (c *Config) ParserOptions(logger *slog.Logger) parser.Options {
	return parser.Options{
		Dialect:         c.Dialect,
		EnableVariables: c.Variables,
		Logger:          logger,
	}
}

// CompletionOptions returns the completion engine settings.
func (c *Config) CompletionOptions(logger *slog.Logger) complete.Options {
	return complete.Options{
		Enabled:        c.Completion.Enabled,
		MaxSuggestions: c.Completion.MaxSuggestions,
		MinCharacters:  c.Completion.MinCharacters,
		CaseSensitive:  c.Completion.CaseSensitive,
		FuzzyMatch:     c.Completion.Fuzzy,
		Logger:         logger,
	}
}

// SnippetProviders groups configured snippets by their contexts, one
// static provider per distinct context list.
func (c *Config) SnippetProviders() []*complete.StaticProvider {
	var (
		out   []*complete.StaticProvider
		index = map[string]int{}
		items [][]complete.Completion
		kinds [][]cursor.Kind
	)
	for _, s := range c.Completion.Snippets {
		key := fmt.Sprint(s.Contexts)
		i, ok := index[key]
		if !ok {
			i = len(items)
			index[key] = i
			items = append(items, nil)
			var ks []cursor.Kind
			for _, name := range s.Contexts {
				ks = append(ks, snippetContexts[name])
			}
			kinds = append(kinds, ks)
		}
		items[i] = append(items[i], complete.Completion{
			Label:      s.Label,
			Kind:       complete.KindSnippet,
			Detail:     s.Detail,
			InsertText: s.InsertText,
		})
	}
	for i := range items {
		out = append(out, complete.NewStaticProvider(fmt.Sprintf("snippets-%d", i), items[i], kinds[i]...))
	}
	return out
}

// LintConfig converts the rule settings for the validation service.
func (c *Config) LintConfig() *lint.Config {
	cfg := lint.NewConfig()
	for name, rc := range c.Lint.Rules {
		if rc.Enabled != nil && !*rc.Enabled {
			cfg.Disable(name)
		}
		if sev, ok := core.ParseSeverity(rc.Severity); ok && rc.Severity != "" {
			cfg.SetSeverity(name, sev)
		}
		if len(rc.Options) > 0 {
			cfg.SetOptions(name, rc.Options)
		}
	}
	return cfg
}
