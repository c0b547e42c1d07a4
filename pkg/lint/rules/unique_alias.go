package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
	"github.com/leapstack-labs/sqlassist/pkg/lint"
)

// UniqueAliasName is the name of the duplicate table alias rule.
const UniqueAliasName = "unique-alias"

func init() {
	lint.Register(UniqueAliasDef)
}

// UniqueAliasDef reports table aliases used twice in one statement.
var UniqueAliasDef = lint.RuleDef{
	Name:        UniqueAliasName,
	Description: "Table aliases should be unique within a query.",
	Type:        core.ErrorTypeSemantic,
	Severity:    core.SeverityError,
	New: func(*dialect.Dialect, map[string]any) (lint.Rule, error) {
		return UniqueAlias{}, nil
	},
	Rationale:   "A repeated alias makes every qualified column behind it ambiguous.",
	BadExample:  "SELECT * FROM users u JOIN orders u ON u.id = u.user_id",
	GoodExample: "SELECT * FROM users u JOIN orders o ON u.id = o.user_id",
}

// UniqueAlias reports the second and later uses of a table alias within a
// statement. Aliases compare case-insensitively.
type UniqueAlias struct{}

// Name implements lint.Rule.
func (UniqueAlias) Name() string { return UniqueAliasName }

// Validate implements lint.Rule.
func (UniqueAlias) Validate(text string, _ []core.ValidationError, _ lint.Schema) []core.ValidationError {
	var out []core.ValidationError
	for _, st := range lint.Statements(text) {
		seen := make(map[string]int) // alias -> count
		for _, span := range st.Tables {
			if span.Alias == "" {
				continue
			}
			key := strings.ToLower(span.Alias)
			seen[key]++
			if seen[key] < 2 {
				continue
			}
			d := core.ValidationError{
				Message:  fmt.Sprintf("Table alias '%s' is used %d times; aliases must be unique", span.Alias, seen[key]),
				Severity: core.SeverityError,
				Type:     core.ErrorTypeSemantic,
				Code:     "duplicate-alias",
			}
			out = append(out, d.At(core.RangeFromOffsets(text, span.Start, span.End)))
		}
	}
	return out
}
