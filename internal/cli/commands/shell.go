package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlassist/pkg/complete"
	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
)

const (
	shellPrompt     = "sqlassist> "
	shellContPrompt = "       ...> "
	historyFileName = ".sqlassist_history"
)

// NewShellCommand creates the interactive shell command.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "shell",
		Aliases: []string{"repl"},
		Short:   "Interactive SQL checking shell with tab completion",
		Long: `Start an interactive shell. Each statement ending with a semicolon is
validated against the configured schema and rules, and its table
references are shown. Tab completes tables, columns, keywords and
functions for the current context.

Dot commands inspect the schema or switch dialects; type .help for a list.`,
		Example: `  sqlassist shell --schema schema.yaml --dialect postgres`,
		Args:    cobra.NoArgs,
		RunE:    runShell,
	}
}

// shell is one interactive session. buf holds the statement typed so far.
type shell struct {
	cc  *CommandContext
	out io.Writer
	buf strings.Builder
}

func runShell(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	sh := &shell{cc: cc, out: cmd.OutOrStdout()}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     historyPath(),
		AutoComplete:    sh,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(sh.out, "sqlassist shell (dialect: %s)\n", cc.Parser.Dialect().Name)
	_, _ = fmt.Fprintln(sh.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(sh.out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			sh.buf.Reset()
			rl.SetPrompt(shellPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if sh.handleLine(line) {
			break
		}
		if sh.buf.Len() > 0 {
			rl.SetPrompt(shellContPrompt)
		} else {
			rl.SetPrompt(shellPrompt)
		}
	}
	return nil
}

// historyPath returns the history file in the home directory, or "" to
// keep history in memory only.
func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFileName)
}

// handleLine processes one input line and reports whether the session
// should end.
func (s *shell) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if s.buf.Len() == 0 && strings.HasPrefix(line, ".") {
		return s.dotCommand(line)
	}

	// Accumulate multi-line SQL until semicolon
	s.buf.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		s.buf.WriteString("\n")
		return false
	}
	text := s.buf.String()
	s.buf.Reset()

	s.check(text)
	_, _ = fmt.Fprintln(s.out)
	return false
}

// check validates a statement and prints its diagnostics and references.
func (s *shell) check(text string) {
	r := s.cc.Renderer
	res := s.cc.Linter.Validate(text, s.cc.LintSchema())
	if len(res.Errors) == 0 {
		r.Success("OK")
	}
	for _, e := range res.Errors {
		r.Println(formatDiagnostic(r, e))
	}

	parsed := s.cc.Parser.Parse(text)
	if len(parsed.TableRefs) == 0 {
		return
	}
	names := make([]string, 0, len(parsed.TableRefs))
	for _, ref := range parsed.TableRefs {
		n := ref.Name
		if ref.Alias != "" {
			n += " AS " + ref.Alias
		}
		names = append(names, n)
	}
	r.Println(r.Styles().Muted.Render("tables: " + strings.Join(names, ", ")))
}

func (s *shell) dotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	r := s.cc.Renderer

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printShellHelp(s.out)

	case ".tables":
		if s.cc.Catalog == nil {
			r.Warning(ErrNoSchema.Error())
			return false
		}
		if err := showTables(r, s.cc.Catalog, ""); err != nil {
			r.Error(err.Error())
		}

	case ".schema":
		if s.cc.Catalog == nil {
			r.Warning(ErrNoSchema.Error())
			return false
		}
		var err error
		if len(parts) < 2 {
			err = showTables(r, s.cc.Catalog, "")
		} else {
			err = showTable(r, s.cc.Catalog, parts[1], "")
		}
		if err != nil {
			r.Error(err.Error())
		}

	case ".dialect":
		if len(parts) < 2 {
			r.Printf("%s (available: %s)\n", s.cc.Parser.Dialect().Name, strings.Join(dialect.List(), ", "))
			return false
		}
		if _, ok := dialect.Get(parts[1]); !ok {
			r.Error(fmt.Sprintf("unknown dialect %q", parts[1]))
			return false
		}
		if err := s.cc.SetDialect(parts[1]); err != nil {
			r.Error(err.Error())
			return false
		}
		r.Success("dialect: " + s.cc.Parser.Dialect().Name)

	case ".clear":
		_, _ = fmt.Fprint(s.out, "\033[H\033[2J")

	default:
		r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", command))
	}
	return false
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .tables           List all tables
  .schema [table]   Show a table's columns, or all tables
  .dialect [name]   Show or switch the SQL dialect
  .clear            Clear the screen
  .quit / .exit     Exit the shell

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completes tables, columns, keywords and functions
`
	_, _ = fmt.Fprintln(w, help)
}

// Do implements readline.AutoCompleter. Candidates are the suffixes of
// suggestions extending the word before the cursor; the statement typed
// on previous lines is part of the completion context.
func (s *shell) Do(line []rune, pos int) ([][]rune, int) {
	before := string(line[:pos])
	word := trailingIdent(before)

	if s.buf.Len() == 0 && strings.HasPrefix(strings.TrimSpace(before), ".") {
		return completeDotCommand(before)
	}

	text := s.buf.String() + before
	cursorPos := core.OffsetToPosition(text, len(text))
	items := s.cc.Completer.GetSuggestions(text, cursorPos, s.cc.CompletionSchema())
	return completionSuffixes(items, word), len([]rune(word))
}

// completionSuffixes keeps items whose insert text extends word,
// case-insensitively, and returns the remaining runes of each.
func completionSuffixes(items []complete.Completion, word string) [][]rune {
	var out [][]rune
	seen := map[string]bool{}
	n := len([]rune(word))
	for _, it := range items {
		insert := it.InsertText
		if insert == "" {
			insert = it.Label
		}
		runes := []rune(insert)
		if len(runes) < n || !strings.EqualFold(string(runes[:n]), word) {
			continue
		}
		suffix := string(runes[n:])
		if seen[suffix] {
			continue
		}
		seen[suffix] = true
		out = append(out, []rune(suffix))
	}
	return out
}

var dotCommands = []string{".help", ".tables", ".schema", ".dialect", ".clear", ".quit", ".exit"}

// completeDotCommand completes a dot command name, or the dialect
// argument of .dialect.
func completeDotCommand(before string) ([][]rune, int) {
	fields := strings.Fields(before)
	word := trailingIdent(before)
	var candidates []string
	switch {
	case len(fields) >= 1 && fields[0] == ".dialect" && (len(fields) > 1 || strings.HasSuffix(before, " ")):
		candidates = dialect.List()
	case len(fields) <= 1 && !strings.HasSuffix(before, " "):
		candidates = dotCommands
		word = strings.TrimSpace(before)
	}

	var out [][]rune
	for _, c := range candidates {
		if strings.HasPrefix(c, word) {
			out = append(out, []rune(c[len(word):]))
		}
	}
	return out, len([]rune(word))
}

// trailingIdent returns the identifier characters immediately before the
// end of s.
func trailingIdent(s string) string {
	runes := []rune(s)
	i := len(runes)
	for i > 0 {
		r := runes[i-1]
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i--
	}
	return string(runes[i:])
}
