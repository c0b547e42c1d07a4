package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlassist/internal/cli/output"
	"github.com/leapstack-labs/sqlassist/pkg/complete"
	"github.com/leapstack-labs/sqlassist/pkg/core"
)

// CompleteOptions holds options for the complete command.
type CompleteOptions struct {
	Line int
	Col  int
}

// NewCompleteCommand creates the complete command.
func NewCompleteCommand() *cobra.Command {
	opts := &CompleteOptions{}
	cmd := &cobra.Command{
		Use:   "complete [file]",
		Short: "Suggest completions at a cursor position",
		Long: `Print ranked completion suggestions for a cursor position in a SQL file.

The cursor is given with --line and --col, both 1-based. Without them the
cursor sits at the end of the input. Reads standard input when the file is
omitted or "-".

Suggestions use the configured schema (--schema or --driver/--dsn) for
table and column names.`,
		Example: `  # Complete at the end of a file
  sqlassist complete query.sql --schema schema.yaml

  # Complete at line 3, column 12
  sqlassist complete query.sql --line 3 --col 12

  # From standard input, as JSON
  echo "SELECT u. FROM users u" | sqlassist complete --col 10 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			return runComplete(cmd, name, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Line, "line", "l", 0, "Cursor line, 1-based (default: last line)")
	cmd.Flags().IntVarP(&opts.Col, "col", "c", 0, "Cursor column, 1-based (default: end of line)")
	cmd.Flags().Int("max-results", 0, "Maximum number of suggestions (default from config)")

	return cmd
}

// CompleteOutput is the JSON output of the complete command.
type CompleteOutput struct {
	Position    core.Position         `json:"position"`
	Completions []complete.Completion `json:"completions"`
}

func runComplete(cmd *cobra.Command, name string, opts *CompleteOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	_, text, err := readInput(cmd, name)
	if err != nil {
		return err
	}
	if opts.Line == 0 && opts.Col > 0 {
		opts.Line = 1
	}
	pos, err := cursorPosition(text, opts.Line, opts.Col)
	if err != nil {
		return err
	}

	items := cc.Completer.GetSuggestions(text, pos, cc.CompletionSchema())
	if items == nil {
		items = []complete.Completion{}
	}
	renderCompletions(cc.Renderer, pos, items)
	return nil
}

func renderCompletions(r *output.Renderer, pos core.Position, items []complete.Completion) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(CompleteOutput{Position: pos, Completions: items})
		return
	}

	if len(items) == 0 {
		r.Println(r.Styles().Muted.Render("No suggestions"))
		return
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		insert := it.InsertText
		if insert == it.Label {
			insert = ""
		}
		rows = append(rows, []string{
			it.Label,
			string(it.Kind),
			it.Detail,
			insert,
			strconv.FormatFloat(it.Score, 'f', 2, 64),
		})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Printf("## Completions at %s\n\n", pos)
	}
	r.Table([]string{"Label", "Kind", "Detail", "Insert", "Score"}, rows)
	if r.EffectiveMode() != output.ModeMarkdown {
		r.Println(r.Styles().Muted.Render(fmt.Sprintf("%d suggestions at %s", len(items), pos)))
	}
}
