// Package config loads the sqlassist CLI configuration.
//
// Values come from, lowest precedence first: built-in defaults,
// sqlassist.yaml (or .yml), SQLASSIST_* environment variables and
// command-line flags.
package config

import (
	"time"

	"github.com/leapstack-labs/sqlassist/internal/introspect"
	"github.com/leapstack-labs/sqlassist/pkg/lint/exprrule"
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect string `koanf:"dialect"`
	// Variables enables $(name) placeholder handling.
	Variables bool `koanf:"variables"`
	// Schema is a JSON or YAML schema file.
	Schema       string            `koanf:"schema"`
	Database     introspect.Config `koanf:"database"`
	Verbose      bool              `koanf:"verbose"`
	OutputFormat string            `koanf:"output"`
	Completion   CompletionConfig  `koanf:"completion"`
	Lint         LintConfig        `koanf:"lint"`
	Watch        WatchConfig       `koanf:"watch"`

	// ConfigDir is the directory of the config file, or the working
	// directory when none was found. Relative paths resolve against it.
	ConfigDir string `koanf:"-"`
}

// CompletionConfig configures the completion engine.
type CompletionConfig struct {
	Enabled        bool      `koanf:"enabled"`
	MaxSuggestions int       `koanf:"max_suggestions"`
	MinCharacters  int       `koanf:"min_characters"`
	CaseSensitive  bool      `koanf:"case_sensitive"`
	Fuzzy          bool      `koanf:"fuzzy"`
	Snippets       []Snippet `koanf:"snippets"`
}

// Snippet is a fixed completion item.
type Snippet struct {
	Label      string `koanf:"label"`
	InsertText string `koanf:"insert_text"`
	Detail     string `koanf:"detail"`
	// Contexts limits the snippet to clause kinds such as where_clause.
	// Empty offers it everywhere.
	Contexts []string `koanf:"contexts"`
}

// LintConfig configures validation rules.
type LintConfig struct {
	Rules map[string]RuleConfig `koanf:"rules"`
	// Custom rules are expression rules defined inline.
	Custom []exprrule.Definition `koanf:"custom"`
	// RulesFile is a YAML file of further expression rules.
	RulesFile string `koanf:"rules_file"`
}

// RuleConfig holds the settings of one rule.
type RuleConfig struct {
	// Enabled defaults to true when unset.
	Enabled  *bool          `koanf:"enabled"`
	Severity string         `koanf:"severity"`
	Options  map[string]any `koanf:"options"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Default configuration values.
const (
	DefaultDialect        = "mysql"
	DefaultOutput         = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultMaxSuggestions = 50
	DefaultDebounce       = 300 * time.Millisecond
)

// ConfigNames are the file names searched for, in order.
var ConfigNames = []string{"sqlassist.yaml", "sqlassist.yml"}
