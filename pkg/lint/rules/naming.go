package rules

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
	"github.com/leapstack-labs/sqlassist/pkg/lint"
	"github.com/leapstack-labs/sqlassist/pkg/parser"
	"github.com/leapstack-labs/sqlassist/pkg/token"
)

// NamingName is the name of the alias naming rule.
const NamingName = "naming"

const defaultNamingPattern = `^[a-z_][a-z0-9_]*$`

func init() {
	lint.Register(NamingDef)
}

// NamingDef checks column and table aliases against a naming convention.
var NamingDef = lint.RuleDef{
	Name:        NamingName,
	Description: "Aliases should be snake_case and should not be reserved words.",
	Type:        core.ErrorTypeCustom,
	Severity:    core.SeverityInfo,
	ConfigKeys:  []string{"pattern", "reserved"},
	New: func(d *dialect.Dialect, opts map[string]any) (lint.Rule, error) {
		return NewNaming(d, opts)
	},
	Rationale:   "Mixed-case aliases need quoting in some engines and reserved words break on others.",
	BadExample:  "SELECT created_at AS createdAt FROM users AS key",
	GoodExample: "SELECT created_at AS created FROM users AS u",
}

// NamingOptions are the settings of the naming rule.
type NamingOptions struct {
	// Pattern unquoted aliases must match.
	Pattern string `mapstructure:"pattern"`
	// Reserved reports aliases that are reserved words of the dialect.
	Reserved bool `mapstructure:"reserved"`
}

// Naming reports unquoted aliases that break the naming convention. It
// works on tokens, so it is a heuristic and can miss aliases.
type Naming struct {
	dialect  *dialect.Dialect
	pattern  *regexp.Regexp
	reserved bool
}

// NewNaming builds the rule for d. A nil dialect means the default one.
func NewNaming(d *dialect.Dialect, opts map[string]any) (*Naming, error) {
	o := NamingOptions{Pattern: defaultNamingPattern, Reserved: true}
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return nil, err
	}
	re, err := regexp.Compile(o.Pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}
	if d == nil {
		d = dialect.Default()
	}
	return &Naming{dialect: d, pattern: re, reserved: o.Reserved}, nil
}

// Name implements lint.Rule.
func (*Naming) Name() string { return NamingName }

// Validate implements lint.Rule.
func (r *Naming) Validate(text string, _ []core.ValidationError, _ lint.Schema) []core.ValidationError {
	var out []core.ValidationError
	for _, t := range aliasTokens(text) {
		if t.Kind != token.WORD {
			continue
		}
		var d core.ValidationError
		switch {
		case r.reserved && r.dialect.IsReservedWord(t.Text):
			d = core.ValidationError{
				Message:    fmt.Sprintf("Alias '%s' is a reserved word", t.Text),
				Code:       "reserved-alias",
				Suggestion: "Choose another alias or quote it",
			}
		case !r.pattern.MatchString(t.Text):
			d = core.ValidationError{
				Message:    fmt.Sprintf("Alias '%s' does not follow the naming convention", t.Text),
				Code:       "alias-case",
				Suggestion: fmt.Sprintf("Use '%s'", snakeCase(t.Text)),
			}
		default:
			continue
		}
		d.Severity = core.SeverityInfo
		out = append(out, d.At(core.RangeFromOffsets(text, t.Offset, t.End())))
	}
	return out
}

// notAliasAfterAs lists words that follow AS without being an alias.
var notAliasAfterAs = map[string]bool{
	"SELECT": true, "WITH": true, "VALUES": true, "NOT": true, "MATERIALIZED": true,
}

// castWords open parentheses where AS names a type.
var castWords = map[string]bool{
	"CAST": true, "TRY_CAST": true, "SAFE_CAST": true, "CONVERT": true,
}

// aliasTokens returns the alias tokens of text in order: the word after
// each AS outside a cast, and the bare alias of each table reference.
func aliasTokens(text string) []token.Token {
	tokens := token.Code(text)
	seen := make(map[int]bool)
	var out []token.Token
	add := func(t token.Token) {
		if !seen[t.Offset] {
			seen[t.Offset] = true
			out = append(out, t)
		}
	}

	var casts []bool
	for i, t := range tokens {
		switch {
		case t.IsPunct("("):
			casts = append(casts, i > 0 && castWords[strings.ToUpper(tokens[i-1].Text)])
		case t.IsPunct(")"):
			if len(casts) > 0 {
				casts = casts[:len(casts)-1]
			}
		case t.Is("AS"):
			if len(casts) > 0 && casts[len(casts)-1] {
				continue
			}
			if i+1 >= len(tokens) || !tokens[i+1].IsIdent() {
				continue
			}
			next := tokens[i+1]
			if next.Kind == token.WORD && notAliasAfterAs[strings.ToUpper(next.Text)] {
				continue
			}
			add(next)
		}
	}

	for _, span := range parser.LocateTableRefs(text) {
		if span.Alias == "" {
			continue
		}
		for _, t := range tokens {
			if t.Offset < span.End || t.Is("AS") {
				continue
			}
			if t.IsIdent() && t.Value() == span.Alias {
				add(t)
			}
			break
		}
	}

	slices.SortFunc(out, func(a, b token.Token) int { return a.Offset - b.Offset })
	return out
}

// snakeCase converts camelCase and PascalCase to snake_case.
func snakeCase(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 && s[i-1] != '_' && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
