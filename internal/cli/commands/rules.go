package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlassist/internal/cli/output"
	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/lint"
	"github.com/leapstack-labs/sqlassist/pkg/lint/exprrule"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Type    string // Filter by type: syntax, semantic, custom
	Verbose bool   // Show full documentation
}

// RuleRow is one rule as listed by the rules command.
type RuleRow struct {
	lint.RuleInfo
	Enabled bool `json:"enabled"`
	// Source is "builtin" or "expression".
	Source string `json:"source"`
	When   string `json:"when,omitempty"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-name]",
		Short: "List available validation rules",
		Long: `List the built-in validation rules and the expression rules from the
configuration, with their severity and whether they are enabled.

Use --verbose to see full documentation including examples.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  sqlassist rules

  # Show details for a specific rule
  sqlassist rules performance

  # List semantic rules only
  sqlassist rules --type semantic

  # Output as JSON
  sqlassist rules -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, r, err := collectRules(cmd)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				return showRule(r, rows, args[0])
			}
			return listRules(r, filterRules(rows, opts.Type), opts.Verbose)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "", "Filter by type: syntax, semantic, custom")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")

	return cmd
}

// collectRules lists the rules of a linter built from the configuration,
// so enabled flags and severities reflect it.
func collectRules(cmd *cobra.Command) ([]RuleRow, *output.Renderer, error) {
	cc := NewCommandContextWithoutSchema(cmd)
	if err := cc.SetDialect(cc.Cfg.Dialect); err != nil {
		return nil, nil, err
	}
	lintCfg := cc.Cfg.LintConfig()

	var rows []RuleRow
	for _, e := range cc.Linter.Rules() {
		row := RuleRow{Enabled: e.Enabled}
		if def, ok := lint.Lookup(e.Name()); ok {
			row.RuleInfo = def.Info()
			row.Source = "builtin"
		} else {
			row.RuleInfo = lint.RuleInfo{Name: e.Name(), Type: e.Type, Severity: core.SeverityWarning}
			row.Source = "expression"
			if xr, ok := e.Rule.(*exprrule.Rule); ok {
				def := xr.Definition()
				row.When = def.When
				row.Description = def.Message
				if sev, ok := core.ParseSeverity(def.Severity); ok {
					row.Severity = sev
				}
			}
		}
		if row.Type == "" {
			row.Type = core.ErrorTypeCustom
		}
		if sev, ok := lintCfg.Severity(e.Name()); ok {
			row.Severity = sev
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Source != rows[j].Source {
			return rows[i].Source < rows[j].Source
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, cc.Renderer, nil
}

func filterRules(rows []RuleRow, typ string) []RuleRow {
	if typ == "" {
		return rows
	}
	var out []RuleRow
	for _, r := range rows {
		if string(r.Type) == typ {
			out = append(out, r)
		}
	}
	return out
}

func listRules(r *output.Renderer, rows []RuleRow, verbose bool) error {
	if rows == nil {
		rows = []RuleRow{}
	}
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rows)
	case output.ModeMarkdown:
		r.Println("# Validation Rules")
		r.Println("")
	default:
		r.Println(r.Styles().Header1.Render(fmt.Sprintf("Validation Rules (%d)", len(rows))))
	}

	table := make([][]string, 0, len(rows))
	for _, rule := range rows {
		state := "on"
		if !rule.Enabled {
			state = "off"
		}
		table = append(table, []string{rule.Name, string(rule.Type), rule.Severity.String(), state, rule.Description})
	}
	r.Table([]string{"Name", "Type", "Severity", "Enabled", "Description"}, table)

	if verbose {
		for _, rule := range rows {
			if rule.Rationale == "" {
				continue
			}
			r.Printf("%s: %s\n", rule.Name, truncateOneLine(rule.Rationale, 100))
		}
	}

	if r.EffectiveMode() != output.ModeMarkdown {
		r.Println(r.Styles().Muted.Render("Use 'sqlassist rules <rule-name>' for detailed documentation"))
	}
	return nil
}

func showRule(r *output.Renderer, rows []RuleRow, name string) error {
	var rule *RuleRow
	for i := range rows {
		if strings.EqualFold(rows[i].Name, name) {
			rule = &rows[i]
			break
		}
	}
	if rule == nil {
		return fmt.Errorf("rule %q not found", name)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeMarkdown:
		return showRuleMarkdown(r, rule)
	default:
		return showRuleText(r, rule)
	}
}

func showRuleText(r *output.Renderer, rule *RuleRow) error {
	styles := r.Styles()

	r.Println(styles.Header1.Render(rule.Name))
	if rule.Description != "" {
		r.Println(rule.Description)
	}
	r.Println("")
	r.Printf("  Type:     %s\n", rule.Type)
	r.Printf("  Severity: %s\n", styles.Severity(rule.Severity).Render(rule.Severity.String()))
	r.Printf("  Enabled:  %t\n", rule.Enabled)
	r.Printf("  Source:   %s\n", rule.Source)
	if len(rule.ConfigKeys) > 0 {
		r.Printf("  Options:  %s\n", strings.Join(rule.ConfigKeys, ", "))
	}
	if rule.When != "" {
		r.Printf("  When:     %s\n", styles.Code.Render(rule.When))
	}

	if rule.Rationale != "" {
		r.Println("")
		r.Println(styles.Header2.Render("Rationale"))
		r.Println(rule.Rationale)
	}
	if rule.BadExample != "" {
		r.Println("")
		r.Println(styles.Error.Render("Anti-pattern"))
		r.Println(styles.Code.Render(rule.BadExample))
	}
	if rule.GoodExample != "" {
		r.Println("")
		r.Println(styles.Success.Render("Preferred"))
		r.Println(styles.Code.Render(rule.GoodExample))
	}
	return nil
}

func showRuleMarkdown(r *output.Renderer, rule *RuleRow) error {
	r.Printf("# %s\n\n", rule.Name)
	if rule.Description != "" {
		r.Printf("%s\n\n", rule.Description)
	}
	r.KeyValue("Type", string(rule.Type))
	r.KeyValue("Severity", rule.Severity.String())
	r.KeyValue("Enabled", fmt.Sprint(rule.Enabled))
	r.KeyValue("Source", rule.Source)
	if len(rule.ConfigKeys) > 0 {
		r.KeyValue("Options", strings.Join(rule.ConfigKeys, ", "))
	}
	if rule.When != "" {
		r.KeyValue("When", "`"+rule.When+"`")
	}

	if rule.Rationale != "" {
		r.Printf("\n## Rationale\n\n%s\n", rule.Rationale)
	}
	if rule.BadExample != "" {
		r.Printf("\n## Anti-pattern\n\n```sql\n%s\n```\n", rule.BadExample)
	}
	if rule.GoodExample != "" {
		r.Printf("\n## Preferred\n\n```sql\n%s\n```\n", rule.GoodExample)
	}
	return nil
}

// truncateOneLine collapses s to its first line, cut to max runes.
func truncateOneLine(s string, maxLen int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
