package rules

import (
	"fmt"
	"regexp"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
	"github.com/leapstack-labs/sqlassist/pkg/lint"
	"github.com/leapstack-labs/sqlassist/pkg/token"
)

// PerformanceName is the name of the performance heuristics rule.
const PerformanceName = "performance"

func init() {
	lint.Register(PerformanceDef)
}

// PerformanceDef warns about statements likely to read too much.
var PerformanceDef = lint.RuleDef{
	Name:        PerformanceName,
	Description: "Warn about SELECT * and unbounded reads without LIMIT.",
	Type:        core.ErrorTypeCustom,
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"select_star", "full_scan", "patterns"},
	New: func(_ *dialect.Dialect, opts map[string]any) (lint.Rule, error) {
		return NewPerformance(opts)
	},
	Rationale:   "Unbounded reads move every row over the wire; interactive queries rarely need that.",
	BadExample:  "SELECT * FROM orders",
	GoodExample: "SELECT id, total FROM orders WHERE status = 'open' LIMIT 100",
}

// PerformanceOptions are the settings of the performance rule.
type PerformanceOptions struct {
	SelectStar bool           `mapstructure:"select_star"`
	FullScan   bool           `mapstructure:"full_scan"`
	Patterns   []PatternCheck `mapstructure:"patterns"`
}

// PatternCheck flags every match of a regular expression. The pattern runs
// over the text with strings and comments blanked out.
type PatternCheck struct {
	Name    string `mapstructure:"name"`
	Pattern string `mapstructure:"pattern"`
	Message string `mapstructure:"message"`
	// Severity defaults to warning.
	Severity string `mapstructure:"severity"`
}

type compiledPattern struct {
	name     string
	re       *regexp.Regexp
	message  string
	severity core.Severity
}

// Performance implements the performance heuristics.
type Performance struct {
	opts     PerformanceOptions
	patterns []compiledPattern
}

// NewPerformance builds the rule from its settings. Both built-in checks
// are on unless switched off.
func NewPerformance(opts map[string]any) (*Performance, error) {
	o := PerformanceOptions{SelectStar: true, FullScan: true}
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return nil, err
	}

	r := &Performance{opts: o}
	for i, p := range o.Patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %d (%s): %w", i, p.Name, err)
		}
		sev := core.SeverityWarning
		if p.Severity != "" {
			var ok bool
			if sev, ok = core.ParseSeverity(p.Severity); !ok {
				return nil, fmt.Errorf("pattern %d (%s): invalid severity %q", i, p.Name, p.Severity)
			}
		}
		msg := p.Message
		if msg == "" {
			msg = fmt.Sprintf("Matched pattern '%s'", p.Name)
		}
		r.patterns = append(r.patterns, compiledPattern{name: p.Name, re: re, message: msg, severity: sev})
	}
	return r, nil
}

// Name implements lint.Rule.
func (*Performance) Name() string { return PerformanceName }

// Validate implements lint.Rule.
func (r *Performance) Validate(text string, _ []core.ValidationError, _ lint.Schema) []core.ValidationError {
	var out []core.ValidationError
	for _, st := range lint.Statements(text) {
		if st.HasLimit {
			continue
		}
		if r.opts.SelectStar && st.Star != nil {
			out = append(out, warnAt(text, *st.Star, core.ValidationError{
				Message:    "SELECT * without LIMIT may return every column of every row",
				Code:       "select-star",
				Suggestion: "List the columns you need or add a LIMIT clause",
			}))
		}
		if r.opts.FullScan && st.From != nil && !st.HasWhere {
			out = append(out, warnAt(text, *st.From, core.ValidationError{
				Message:    "FROM without WHERE or LIMIT reads the whole table",
				Code:       "full-scan",
				Suggestion: "Filter with WHERE or bound the result with LIMIT",
			}))
		}
	}

	if len(r.patterns) > 0 {
		masked := token.Mask(text)
		for _, p := range r.patterns {
			for _, m := range p.re.FindAllStringIndex(masked, -1) {
				d := core.ValidationError{
					Message:  p.message,
					Severity: p.severity,
					Code:     p.name,
				}
				out = append(out, d.At(core.RangeFromOffsets(text, m[0], m[1])))
			}
		}
	}
	return out
}

func warnAt(text string, t token.Token, d core.ValidationError) core.ValidationError {
	d.Severity = core.SeverityWarning
	return d.At(core.RangeFromOffsets(text, t.Offset, t.End()))
}
