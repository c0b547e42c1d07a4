package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlassist/internal/cli/output"
	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/parser"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse SQL and show table references",
		Long: `Parse SQL with the configured dialect and print the outcome: syntax
errors, the tables and CTEs each statement references, and the alias map.

Reads standard input when the file is omitted or "-". Exits with a
non-zero status when the text does not parse.`,
		Example: `  # Parse a file
  sqlassist parse query.sql

  # Parse standard input with another dialect
  echo "SELECT * FROM t" | sqlassist parse --dialect postgres

  # Machine-readable result
  sqlassist parse query.sql -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			return runParse(cmd, name)
		},
	}
	return cmd
}

func runParse(cmd *cobra.Command, name string) error {
	cc := NewCommandContextWithoutSchema(cmd)
	if err := cc.SetDialect(cc.Cfg.Dialect); err != nil {
		return err
	}

	display, text, err := readInput(cmd, name)
	if err != nil {
		return err
	}
	res := cc.Parser.Parse(text)
	if res.Errors == nil {
		res.Errors = []core.ParseError{}
	}
	if res.TableRefs == nil {
		res.TableRefs = []core.TableReference{}
	}
	cc.Logger.Debug("parsed", "path", display, "dialect", cc.Parser.Dialect().Name, "success", res.Success)

	renderParseResult(cc.Renderer, display, res)
	if !res.Success {
		return fmt.Errorf("%s: parse failed with %d errors", display, len(res.Errors))
	}
	return nil
}

func renderParseResult(r *output.Renderer, name string, res parser.ParseResult) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(res)
		return
	}

	styles := r.Styles()
	r.Header(name)
	if res.Success {
		r.Success("Parsed successfully")
	} else {
		for _, e := range res.Errors {
			r.Println(formatDiagnostic(r, e))
		}
	}

	if len(res.TableRefs) > 0 {
		r.Println("")
		rows := make([][]string, 0, len(res.TableRefs))
		for _, ref := range res.TableRefs {
			cte := ""
			if ref.IsCTE {
				cte = "yes"
			}
			rows = append(rows, []string{ref.Name, ref.Database, ref.Alias, cte})
		}
		r.Table([]string{"Table", "Database", "Alias", "CTE"}, rows)
	}

	if len(res.Aliases) > 0 {
		keys := make([]string, 0, len(res.Aliases))
		for k := range res.Aliases {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if r.EffectiveMode() == output.ModeMarkdown {
			r.Println("## Aliases")
			r.Println("")
		} else {
			r.Println(styles.Header2.Render("Aliases"))
		}
		for _, k := range keys {
			r.KeyValue(k, res.Aliases[k].Name)
		}
	}
}
