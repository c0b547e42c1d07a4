package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlassist/internal/cli/output"
	"github.com/leapstack-labs/sqlassist/pkg/cursor"
)

// NewContextCommand creates the context command.
func NewContextCommand() *cobra.Command {
	opts := &CompleteOptions{}
	cmd := &cobra.Command{
		Use:   "context [file]",
		Short: "Show the syntactic context at a cursor position",
		Long: `Classify the cursor position in a SQL file: the clause it sits in, the
partial word before it, a qualifier typed before a dot and the tables in
scope. This is what completion providers see.

The cursor is given with --line and --col, both 1-based. Without them the
cursor sits at the end of the input.`,
		Example: `  # Context at the end of standard input
  echo "SELECT u. FROM users u" | sqlassist context --col 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			return runContext(cmd, name, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Line, "line", "l", 0, "Cursor line, 1-based (default: last line)")
	cmd.Flags().IntVarP(&opts.Col, "col", "c", 0, "Cursor column, 1-based (default: end of line)")

	return cmd
}

func runContext(cmd *cobra.Command, name string, opts *CompleteOptions) error {
	cc := NewCommandContextWithoutSchema(cmd)
	if err := cc.SetDialect(cc.Cfg.Dialect); err != nil {
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

	res := cc.Parser.Parse(text)
	ctx := cursor.Detect(text, pos, res.TableRefs)
	renderContext(cc.Renderer, ctx)
	return nil
}

func renderContext(r *output.Renderer, ctx cursor.Context) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(ctx)
		return
	}

	r.Header("Cursor " + ctx.Position.String())
	r.KeyValue("Context", string(ctx.Kind))
	r.KeyValue("Current token", quoteOrDash(ctx.CurrentToken))
	r.KeyValue("Previous token", quoteOrDash(ctx.PreviousToken))
	if ctx.AfterDot {
		r.KeyValue("Qualifier", ctx.DotPrefix)
	}

	tables := make([]string, 0, len(ctx.AvailableTables))
	for _, ref := range ctx.AvailableTables {
		s := ref.Name
		if ref.Alias != "" {
			s += " AS " + ref.Alias
		}
		tables = append(tables, s)
	}
	if len(tables) == 0 {
		tables = append(tables, "-")
	}
	r.KeyValue("Tables", strings.Join(tables, ", "))
}

func quoteOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return `"` + s + `"`
}
