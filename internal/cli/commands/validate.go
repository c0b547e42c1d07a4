package commands

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlassist/internal/cli/output"
	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/lint"
)

// ErrValidationFailed is returned when any file has error-severity
// diagnostics, so the process exits non-zero.
var ErrValidationFailed = errors.New("validation failed")

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Severity string   // Minimum severity: error, warning, info
	Disable  []string // Rules to disable
	Jobs     int      // Files validated in parallel
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:     "validate [files...]",
		Aliases: []string{"lint"},
		Short:   "Check SQL files for syntax and rule violations",
		Long: `Validate SQL files against the grammar of the configured dialect, the
schema and the enabled lint rules.

Syntax errors, unknown tables, performance and naming issues, and custom
expression rules are reported per file. Reads standard input when no file
is given. Exits with a non-zero status when any error is found.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Validate files against a schema
  sqlassist validate --schema schema.yaml queries/*.sql

  # Validate against a live database
  sqlassist validate --driver postgres --dsn "$DATABASE_URL" report.sql

  # Only report errors
  sqlassist validate --severity error query.sql

  # Disable a rule
  sqlassist validate --disable naming query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Severity, "severity", "info", "Minimum severity: error, warning, info")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rules to disable")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", runtime.NumCPU(), "Files validated in parallel")

	return cmd
}

// FileResult is the validation outcome of one input.
type FileResult struct {
	Path   string                 `json:"path"`
	Valid  bool                   `json:"valid"`
	Errors []core.ValidationError `json:"errors"`
}

// ValidateSummary counts diagnostics across files.
type ValidateSummary struct {
	Files    int `json:"files"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// ValidateOutput is the JSON output of the validate command.
type ValidateOutput struct {
	Files   []FileResult    `json:"files"`
	Summary ValidateSummary `json:"summary"`
}

func runValidate(cmd *cobra.Command, paths []string, opts *ValidateOptions) error {
	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q", opts.Severity)
	}

	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	for _, name := range opts.Disable {
		cc.Linter.SetRuleEnabled(strings.TrimSpace(name), false)
	}

	if len(paths) == 0 {
		paths = []string{"-"}
	}
	results, err := validateFiles(cmd, cc, paths, opts.Jobs)
	if err != nil {
		return err
	}

	results = filterBySeverity(results, threshold)
	summary := summarize(results)
	renderValidateResults(cc.Renderer, results, summary)

	if summary.Errors > 0 {
		return ErrValidationFailed
	}
	return nil
}

// validateFiles validates every path concurrently. Results keep the
// order of paths.
func validateFiles(cmd *cobra.Command, cc *CommandContext, paths []string, jobs int) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	schema := cc.LintSchema()

	g, ctx := errgroup.WithContext(cmd.Context())
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name, text, err := readInput(cmd, p)
			if err != nil {
				return err
			}
			res := cc.Linter.Validate(text, schema)
			cc.Logger.Debug("validated", "path", name, "errors", len(res.Errors))
			results[i] = FileResult{Path: name, Valid: res.Valid, Errors: res.Errors}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func filterBySeverity(results []FileResult, threshold core.Severity) []FileResult {
	out := make([]FileResult, len(results))
	for i, r := range results {
		out[i] = FileResult{Path: r.Path, Valid: r.Valid, Errors: []core.ValidationError{}}
		for _, e := range r.Errors {
			if e.Severity <= threshold {
				out[i].Errors = append(out[i].Errors, e)
			}
		}
	}
	return out
}

func summarize(results []FileResult) ValidateSummary {
	s := ValidateSummary{Files: len(results)}
	for _, r := range results {
		c := lint.Result{Errors: r.Errors}.Count()
		s.Errors += c[core.SeverityError]
		s.Warnings += c[core.SeverityWarning]
		s.Info += c[core.SeverityInfo]
	}
	return s
}

func renderValidateResults(r *output.Renderer, results []FileResult, summary ValidateSummary) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(ValidateOutput{Files: results, Summary: summary})
		return
	}

	if summary.Errors+summary.Warnings+summary.Info == 0 {
		r.Success(fmt.Sprintf("No issues found in %d files", summary.Files))
		return
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	styles := r.Styles()
	for _, res := range results {
		if len(res.Errors) == 0 {
			continue
		}
		if markdown {
			r.Printf("## %s\n\n", res.Path)
		} else {
			r.Println(styles.Path.Render(res.Path))
		}
		for _, e := range res.Errors {
			r.Println(formatDiagnostic(r, e))
		}
		r.Println("")
	}

	parts := []string{fmt.Sprintf("%d errors", summary.Errors), fmt.Sprintf("%d warnings", summary.Warnings)}
	if summary.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", summary.Info))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(parts, ", "), summary.Files)
}

// formatDiagnostic renders one diagnostic line with a 1-based location.
func formatDiagnostic(r *output.Renderer, e core.ValidationError) string {
	loc := "-"
	if e.Location != nil {
		loc = e.Location.Start.String()
	}
	source := e.Rule
	if source == "" {
		source = string(e.Type)
	}
	msg := e.Message
	if e.Suggestion != "" {
		msg += " (" + e.Suggestion + ")"
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		return fmt.Sprintf("- `%s` **%s** %s: %s", loc, e.Severity, source, msg)
	}
	styles := r.Styles()
	return fmt.Sprintf("  %s  %s  %s  %s",
		styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
		styles.Severity(e.Severity).Render(fmt.Sprintf("%-7s", e.Severity)),
		styles.Bold.Render(source),
		msg,
	)
}
