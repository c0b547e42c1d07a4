package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sqlassist/internal/cli/output"
	"github.com/leapstack-labs/sqlassist/pkg/catalog"
)

// ErrNoSchema is returned by schema commands when neither a schema file
// nor a database is configured.
var ErrNoSchema = errors.New("no schema configured (use --schema or --driver and --dsn)")

// NewSchemaCommand creates the schema command group.
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect the configured schema",
		Long: `Inspect the schema used for validation and completion. The schema comes
from a JSON or YAML file (--schema) or from a live database (--driver and
--dsn).`,
	}

	cmd.AddCommand(newSchemaShowCommand())
	cmd.AddCommand(newSchemaSearchCommand())
	cmd.AddCommand(newSchemaDumpCommand())

	return cmd
}

func newSchemaShowCommand() *cobra.Command {
	var database string
	cmd := &cobra.Command{
		Use:   "show [table]",
		Short: "List tables, or the columns of one table",
		Example: `  # All tables
  sqlassist schema show --schema schema.yaml

  # Columns of a table
  sqlassist schema show users --database shop`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := schemaContext(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return showTable(cc.Renderer, cc.Catalog, args[0], database)
			}
			return showTables(cc.Renderer, cc.Catalog, database)
		},
	}
	cmd.Flags().StringVar(&database, "database", "", "Restrict to one database")
	return cmd
}

func newSchemaSearchCommand() *cobra.Command {
	var (
		kind     string
		database string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find databases, tables and columns by name",
		Example: `  # Anything named like "user"
  sqlassist schema search user

  # Columns only, at most 5
  sqlassist schema search id --type column --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch catalog.ItemKind(kind) {
			case "", catalog.KindDatabase, catalog.KindTable, catalog.KindColumn:
			default:
				return fmt.Errorf("invalid type %q (expected database, table or column)", kind)
			}
			cc, err := schemaContext(cmd)
			if err != nil {
				return err
			}
			items := cc.Catalog.Search(args[0], catalog.SearchOptions{
				Type:     catalog.ItemKind(kind),
				Database: database,
				Limit:    limit,
			})
			renderSearch(cc.Renderer, items)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "type", "", "Restrict to one kind: database, table, column")
	cmd.Flags().StringVar(&database, "database", "", "Restrict to one database")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results (0 for all)")
	return cmd
}

func newSchemaDumpCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the schema as a YAML or JSON schema file",
		Long: `Write the loaded schema in the schema file format. Combined with --driver
and --dsn this snapshots a live database into a file usable with --schema.`,
		Example: `  sqlassist schema dump --driver postgres --dsn "$DATABASE_URL" > schema.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := schemaContext(cmd)
			if err != nil {
				return err
			}
			switch strings.ToLower(format) {
			case "json":
				return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeJSON).JSON(cc.Catalog.Schema())
			case "yaml", "yml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(cc.Catalog.Schema()); err != nil {
					return fmt.Errorf("failed to encode schema: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("invalid format %q (expected yaml or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml, json")
	return cmd
}

func schemaContext(cmd *cobra.Command) (*CommandContext, error) {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return nil, err
	}
	if cc.Catalog == nil {
		return nil, ErrNoSchema
	}
	return cc, nil
}

func showTables(r *output.Renderer, c *catalog.Catalog, database string) error {
	tables := c.GetAllTables(database)
	if r.EffectiveMode() == output.ModeJSON {
		if database == "" {
			return r.JSON(c.Schema())
		}
		db, _ := c.GetDatabase(database)
		return r.JSON(db)
	}

	if len(tables) == 0 {
		r.Println(r.Styles().Muted.Render("No tables"))
		return nil
	}
	rows := make([][]string, 0, len(tables))
	for _, t := range tables {
		rows = append(rows, []string{t.Database, t.Name, strconv.Itoa(len(t.Table.Columns)), t.Table.Comment})
	}
	r.Header("Tables")
	r.Table([]string{"Database", "Table", "Columns", "Comment"}, rows)
	return nil
}

func showTable(r *output.Renderer, c *catalog.Catalog, name, database string) error {
	info, ok := c.LookupTable(name, database)
	if !ok {
		return fmt.Errorf("table %q not found", name)
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(info.Table)
	}

	r.Header(info.Database + "." + info.Name)
	if info.Table.Comment != "" {
		r.Println(info.Table.Comment)
		r.Println("")
	}
	rows := make([][]string, 0, len(info.Table.Columns))
	for _, col := range c.GetColumns(info.Name, info.Database) {
		rows = append(rows, []string{col.Name, col.TypeString(), nullable(col.Column), columnKey(col.Column), col.Comment})
	}
	r.Table([]string{"Column", "Type", "Null", "Key", "Comment"}, rows)

	for _, fk := range info.Table.ForeignKeys {
		r.KeyValue("Foreign key", fmt.Sprintf("(%s) -> %s(%s)",
			strings.Join(fk.Columns, ", "), fk.ReferencedTable, strings.Join(fk.ReferencedColumns, ", ")))
	}
	for _, idx := range info.Table.Indexes {
		label := "Index"
		if idx.Unique {
			label = "Unique index"
		}
		r.KeyValue(label, fmt.Sprintf("%s (%s)", idx.Name, strings.Join(idx.Columns, ", ")))
	}
	return nil
}

func nullable(c *catalog.Column) string {
	if c.Nullable {
		return "yes"
	}
	return "no"
}

func columnKey(c *catalog.Column) string {
	switch {
	case c.PrimaryKey:
		return "PK"
	case c.ForeignKey != nil:
		return "FK " + c.ForeignKey.Table + "." + c.ForeignKey.Column
	case c.Unique:
		return "UQ"
	}
	return ""
}

func renderSearch(r *output.Renderer, items []catalog.SchemaItem) {
	if items == nil {
		items = []catalog.SchemaItem{}
	}
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(items)
		return
	}
	if len(items) == 0 {
		r.Println(r.Styles().Muted.Render("No matches"))
		return
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{string(it.Kind), it.Name, it.Database, it.Table, it.Detail})
	}
	r.Table([]string{"Kind", "Name", "Database", "Table", "Detail"}, rows)
}
