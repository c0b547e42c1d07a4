package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlassist/internal/cli/output"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
)

// DialectInfo describes a registered dialect.
type DialectInfo struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Aliases       []string `json:"aliases,omitempty"`
	Quote         string   `json:"quote"`
	Placeholder   string   `json:"placeholder"`
	DefaultSchema string   `json:"default_schema,omitempty"`
	Keywords      int      `json:"keywords"`
	Functions     int      `json:"functions"`
	Default       bool     `json:"default"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List supported SQL dialects",
		Long: `List the SQL dialects that can be selected with --dialect or the
dialect configuration key, with their aliases and identifier quoting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContextWithoutSchema(cmd)
			renderDialects(cc.Renderer, collectDialects())
			return nil
		},
	}
}

func collectDialects() []DialectInfo {
	all := dialect.All()
	out := make([]DialectInfo, 0, len(all))
	for _, d := range all {
		out = append(out, DialectInfo{
			Name:          d.Name,
			Description:   d.Description,
			Aliases:       d.Aliases,
			Quote:         d.Identifiers.Quote + d.Identifiers.QuoteEnd,
			Placeholder:   d.FormatPlaceholder(1),
			DefaultSchema: d.DefaultSchema,
			Keywords:      len(d.Keywords()),
			Functions:     len(d.Functions()),
			Default:       d.Name == dialect.DefaultName,
		})
	}
	return out
}

func renderDialects(r *output.Renderer, dialects []DialectInfo) {
	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(dialects)
		return
	}

	rows := make([][]string, 0, len(dialects))
	for _, d := range dialects {
		name := d.Name
		if d.Default {
			name += " (default)"
		}
		rows = append(rows, []string{
			name,
			strings.Join(d.Aliases, ", "),
			d.Quote,
			d.Placeholder,
			d.DefaultSchema,
			strconv.Itoa(d.Functions),
		})
	}
	r.Header("Dialects")
	r.Table([]string{"Name", "Aliases", "Quote", "Placeholder", "Default Schema", "Functions"}, rows)
}
