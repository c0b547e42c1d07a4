package lint

import "github.com/leapstack-labs/sqlassist/pkg/core"

// Config controls which rules run, their severity and their options.
// Rules are keyed by name.
type Config struct {
	// DisabledRules contains rule names registered as disabled
	DisabledRules map[string]bool

	// SeverityOverrides replaces the severity of every finding of a rule
	// or validator
	SeverityOverrides map[string]core.Severity

	// RuleOptions holds rule-specific settings, decoded by each rule
	RuleOptions map[string]map[string]any
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// IsDisabled returns true if the rule should be registered disabled.
func (c *Config) IsDisabled(name string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[name]
}

// Severity returns the override for a rule, if any.
func (c *Config) Severity(name string) (core.Severity, bool) {
	if c == nil {
		return 0, false
	}
	sev, ok := c.SeverityOverrides[name]
	return sev, ok
}

// Options returns the settings for a rule; nil when none are configured.
func (c *Config) Options(name string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[name]
}

// Disable disables a rule by name.
func (c *Config) Disable(name string) *Config {
	c.DisabledRules[name] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(name string, severity core.Severity) *Config {
	c.SeverityOverrides[name] = severity
	return c
}

// SetOptions replaces the settings of a rule.
func (c *Config) SetOptions(name string, opts map[string]any) *Config {
	c.RuleOptions[name] = opts
	return c
}
