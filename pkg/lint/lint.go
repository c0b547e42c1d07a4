package lint

import (
	"github.com/leapstack-labs/sqlassist/pkg/catalog"
	"github.com/leapstack-labs/sqlassist/pkg/core"
)

// Schema is the catalog view validators and rules read.
// *catalog.Catalog implements it.
type Schema interface {
	GetDatabase(name string) (*catalog.Database, bool)
	GetTable(name, database string) (*catalog.Table, bool)
	GetAllTables(database string) []catalog.TableInfo
}

// Validator checks a parsed text. ast is the parser's opaque tree and may
// be nil when parsing failed.
type Validator interface {
	Name() string
	Validate(text string, ast any, schema Schema) []core.ValidationError
}

// Rule checks a text given the diagnostics found before it ran. Rules
// must not modify existing.
type Rule interface {
	Name() string
	Validate(text string, existing []core.ValidationError, schema Schema) []core.ValidationError
}

// RuleEntry is a registered rule with its switches.
type RuleEntry struct {
	Rule    Rule
	Enabled bool
	// Type is assigned to findings that leave Type unset. Empty means
	// core.ErrorTypeCustom.
	Type core.ErrorType
}

// Name returns the rule name.
func (e RuleEntry) Name() string {
	return e.Rule.Name()
}

// Result is the outcome of a validation.
type Result struct {
	Valid  bool                   `json:"valid"`
	Errors []core.ValidationError `json:"errors"`
}

// Count returns the number of diagnostics at each severity.
func (r Result) Count() map[core.Severity]int {
	out := make(map[core.Severity]int, 3)
	for _, e := range r.Errors {
		out[e.Severity]++
	}
	return out
}
