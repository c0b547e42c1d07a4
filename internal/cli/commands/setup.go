package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlassist/internal/cli/config"
	"github.com/leapstack-labs/sqlassist/internal/cli/output"
	"github.com/leapstack-labs/sqlassist/internal/introspect"
	"github.com/leapstack-labs/sqlassist/pkg/catalog"
	"github.com/leapstack-labs/sqlassist/pkg/complete"
	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/lint"
	"github.com/leapstack-labs/sqlassist/pkg/lint/exprrule"
	_ "github.com/leapstack-labs/sqlassist/pkg/lint/rules" // register built-in rules
	"github.com/leapstack-labs/sqlassist/pkg/parser"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer

	Parser    *parser.Parser
	Completer *complete.Engine
	Linter    *lint.Service
	// Catalog is nil when neither a schema file nor a database is configured.
	Catalog *catalog.Catalog
}

// NewCommandContext creates a CommandContext with the schema loaded and
// the completion and validation services built.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cc := NewCommandContextWithoutSchema(cmd)

	s, err := loadSchema(cmd.Context(), cc.Cfg, cc.Logger)
	if err != nil {
		return nil, err
	}
	if s != nil {
		cc.Catalog = catalog.New(catalog.Options{CaseSensitive: cc.Cfg.Completion.CaseSensitive})
		cc.Catalog.RegisterSchema(s)
	}

	if err := cc.SetDialect(cc.Cfg.Dialect); err != nil {
		return nil, err
	}
	return cc, nil
}

// NewCommandContextWithoutSchema creates a CommandContext with only the
// configuration, logger and renderer. Useful for commands that only list
// metadata.
func NewCommandContextWithoutSchema(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// SetDialect rebuilds the parser and the services for another dialect.
func (c *CommandContext) SetDialect(name string) error {
	opts := c.Cfg.ParserOptions(c.Logger)
	opts.Dialect = name
	p := parser.New(opts)

	completer := complete.New(p, c.Cfg.CompletionOptions(c.Logger))
	for _, sp := range c.Cfg.SnippetProviders() {
		completer.AddProvider(sp)
	}

	linter, err := buildLinter(p, c.Cfg, c.Logger)
	if err != nil {
		return err
	}

	c.Parser, c.Completer, c.Linter = p, completer, linter
	return nil
}

// LintSchema returns the catalog as a lint.Schema, or nil.
func (c *CommandContext) LintSchema() lint.Schema {
	if c.Catalog == nil {
		return nil
	}
	return c.Catalog
}

// CompletionSchema returns the catalog as a complete.Schema, or nil.
func (c *CommandContext) CompletionSchema() complete.Schema {
	if c.Catalog == nil {
		return nil
	}
	return c.Catalog
}

// getConfig returns the current configuration, or the defaults when no
// configuration has been loaded (commands run outside the root command).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Dialect:      config.DefaultDialect,
		OutputFormat: config.DefaultOutput,
		Completion: config.CompletionConfig{
			Enabled:        true,
			MaxSuggestions: config.DefaultMaxSuggestions,
			Fuzzy:          true,
		},
		Watch: config.WatchConfig{Debounce: config.DefaultDebounce},
	}
}

// loadSchema reads the schema from the configured database, or from the
// schema file. Returns nil when neither is configured.
func loadSchema(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*catalog.Schema, error) {
	if cfg.Database.Driver != "" {
		s, err := introspect.Load(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to introspect database: %w", err)
		}
		return s, nil
	}
	if cfg.Schema != "" {
		s, err := catalog.LoadFile(cfg.Schema)
		if err != nil {
			return nil, fmt.Errorf("failed to load schema: %w", err)
		}
		logger.Debug("schema loaded", slog.String("path", cfg.Schema), slog.Int("databases", len(s.Databases)))
		return s, nil
	}
	return nil, nil
}

// buildLinter creates the validation service with the built-in rules and
// the configured expression rules.
func buildLinter(p *parser.Parser, cfg *config.Config, logger *slog.Logger) (*lint.Service, error) {
	lintCfg := cfg.LintConfig()
	svc := lint.New(p, lint.Options{Config: lintCfg, Logger: logger})

	var errs []error
	if err := svc.UseRegistered(); err != nil {
		errs = append(errs, err)
	}

	custom, err := exprrule.CompileAll(cfg.Lint.Custom)
	if err != nil {
		errs = append(errs, fmt.Errorf("lint.custom: %w", err))
	}
	if cfg.Lint.RulesFile != "" {
		fromFile, err := exprrule.LoadFile(cfg.Lint.RulesFile)
		if err != nil {
			errs = append(errs, err)
		}
		custom = append(custom, fromFile...)
	}
	for _, r := range custom {
		svc.AddRuleEntry(lint.RuleEntry{Rule: r, Enabled: !lintCfg.IsDisabled(r.Name()), Type: r.Type()})
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid lint rules: %w", err)
	}
	return svc, nil
}

// readInput returns the text of a file argument. An empty name or "-"
// reads standard input.
func readInput(cmd *cobra.Command, name string) (string, string, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(name) //nolint:gosec // path comes from the command line
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return name, string(data), nil
}

// cursorPosition converts 1-based --line/--col flags to a 0-based
// position. Zero values select the end of the text.
func cursorPosition(text string, line, col int) (core.Position, error) {
	if line < 0 || col < 0 {
		return core.Position{}, fmt.Errorf("line and column are 1-based, got %d:%d", line, col)
	}
	if line == 0 {
		return core.OffsetToPosition(text, len(text)), nil
	}
	lines := strings.Split(text, "\n")
	if line > len(lines) {
		return core.Position{}, fmt.Errorf("line %d is past the end of the input (%d lines)", line, len(lines))
	}
	if col == 0 {
		return core.Position{Line: line - 1, Column: len(lines[line-1])}, nil
	}
	return core.Position{Line: line - 1, Column: col - 1}, nil
}
