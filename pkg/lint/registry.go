package lint

import (
	"fmt"
	"sync"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
)

// RuleDef describes a rule that can be instantiated by name.
type RuleDef struct {
	Name        string
	Description string
	// Type is the default diagnostic type of the rule's findings.
	Type     core.ErrorType
	Severity core.Severity
	// ConfigKeys lists the option keys the rule accepts.
	ConfigKeys []string
	// New builds the rule for a dialect with its decoded-on-demand options.
	New func(d *dialect.Dialect, opts map[string]any) (Rule, error)

	Rationale   string
	BadExample  string
	GoodExample string
}

// RuleInfo is rule metadata for tooling.
type RuleInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        core.ErrorType `json:"type"`
	Severity    core.Severity  `json:"severity"`
	ConfigKeys  []string       `json:"config_keys,omitempty"`
	Rationale   string         `json:"rationale,omitempty"`
	BadExample  string         `json:"bad_example,omitempty"`
	GoodExample string         `json:"good_example,omitempty"`
}

// Info returns the metadata of the definition.
func (d RuleDef) Info() RuleInfo {
	return RuleInfo{
		Name:        d.Name,
		Description: d.Description,
		Type:        d.Type,
		Severity:    d.Severity,
		ConfigKeys:  d.ConfigKeys,
		Rationale:   d.Rationale,
		BadExample:  d.BadExample,
		GoodExample: d.GoodExample,
	}
}

var (
	registryMu sync.RWMutex
	registry   []RuleDef // registration order
)

// Register adds a rule definition to the global registry, replacing any
// definition with the same name. Call this from init functions in rule
// packages.
func Register(def RuleDef) {
	registryMu.Lock()
	defer registryMu.Unlock()
	for i, d := range registry {
		if d.Name == def.Name {
			registry[i] = def
			return
		}
	}
	registry = append(registry, def)
}

// Registered returns every registered definition in registration order.
func Registered() []RuleDef {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return append([]RuleDef(nil), registry...)
}

// Lookup returns the definition with the given name.
func Lookup(name string) (RuleDef, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, d := range registry {
		if d.Name == name {
			return d, true
		}
	}
	return RuleDef{}, false
}

// Build instantiates a registered rule.
func Build(name string, d *dialect.Dialect, opts map[string]any) (Rule, error) {
	def, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown rule %q", name)
	}
	r, err := def.New(d, opts)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", name, err)
	}
	return r, nil
}
