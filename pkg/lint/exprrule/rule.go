package exprrule

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/lint"
)

// Definition is a rule described by an expr-lang condition.
type Definition struct {
	Name string `yaml:"name" mapstructure:"name"`
	// When is a boolean expression over the statement environment.
	When    string `yaml:"when" mapstructure:"when"`
	Message string `yaml:"message" mapstructure:"message"`
	// Severity is error, warning or info; warning when empty.
	Severity string `yaml:"severity,omitempty" mapstructure:"severity"`
	// Type is semantic or custom; custom when empty.
	Type       string `yaml:"type,omitempty" mapstructure:"type"`
	Code       string `yaml:"code,omitempty" mapstructure:"code"`
	Suggestion string `yaml:"suggestion,omitempty" mapstructure:"suggestion"`
}

// Rule is a compiled Definition. It implements lint.Rule.
type Rule struct {
	def      Definition
	program  *vm.Program
	severity core.Severity
	typ      core.ErrorType
}

// functions are added to every environment. Names must not collide with
// expr operators such as contains and matches, which cannot be called.
var functions = map[string]any{
	"hasPrefix": strings.HasPrefix,
	"hasSuffix": strings.HasSuffix,
	"toLower":   strings.ToLower,
	"toUpper":   strings.ToUpper,
}

// Compile checks a definition and compiles its condition.
func Compile(def Definition) (*Rule, error) {
	if def.Name == "" {
		return nil, errors.New("rule name is required")
	}
	if strings.TrimSpace(def.When) == "" {
		return nil, fmt.Errorf("rule %q: when is required", def.Name)
	}

	r := &Rule{def: def, severity: core.SeverityWarning, typ: core.ErrorTypeCustom}
	if def.Severity != "" {
		sev, ok := core.ParseSeverity(def.Severity)
		if !ok {
			return nil, fmt.Errorf("rule %q: invalid severity %q", def.Name, def.Severity)
		}
		r.severity = sev
	}
	switch core.ErrorType(strings.ToLower(def.Type)) {
	case "", core.ErrorTypeCustom:
	case core.ErrorTypeSemantic:
		r.typ = core.ErrorTypeSemantic
	default:
		return nil, fmt.Errorf("rule %q: invalid type %q", def.Name, def.Type)
	}

	program, err := expr.Compile(def.When,
		expr.Env(newEnv("", lint.Statement{}, nil, nil)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("rule %q condition: %w", def.Name, err)
	}
	r.program = program
	return r, nil
}

// CompileAll compiles every definition, reporting all failures at once.
func CompileAll(defs []Definition) ([]*Rule, error) {
	var (
		rules []*Rule
		errs  []error
	)
	for _, def := range defs {
		r, err := Compile(def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules = append(rules, r)
	}
	return rules, errors.Join(errs...)
}

// Name implements lint.Rule.
func (r *Rule) Name() string { return r.def.Name }

// Type returns the diagnostic type of the rule's findings.
func (r *Rule) Type() core.ErrorType { return r.typ }

// Definition returns the source definition.
func (r *Rule) Definition() Definition { return r.def }

// Validate implements lint.Rule. A condition failing at run time is
// reported as a warning on the statement instead of a finding.
func (r *Rule) Validate(text string, existing []core.ValidationError, schema lint.Schema) []core.ValidationError {
	var out []core.ValidationError
	for _, st := range lint.Statements(text) {
		env := newEnv(text, st, existing, schema)
		loc := core.RangeFromOffsets(text, st.Start, st.End)

		result, err := expr.Run(r.program, env)
		if err != nil {
			d := core.ValidationError{
				Message:  fmt.Sprintf("Rule '%s' failed: %v", r.def.Name, err),
				Severity: core.SeverityWarning,
				Type:     core.ErrorTypeCustom,
				Code:     "rule-error",
			}
			out = append(out, d.At(loc))
			continue
		}
		if hit, _ := result.(bool); !hit {
			continue
		}

		d := core.ValidationError{
			Message:    formatMessage(r.message(), env),
			Severity:   r.severity,
			Type:       r.typ,
			Code:       r.def.Code,
			Suggestion: formatMessage(r.def.Suggestion, env),
		}
		out = append(out, d.At(loc))
	}
	return out
}

func (r *Rule) message() string {
	if r.def.Message != "" {
		return r.def.Message
	}
	return fmt.Sprintf("Statement matches rule '%s'", r.def.Name)
}

func newEnv(text string, st lint.Statement, existing []core.ValidationError, schema lint.Schema) map[string]any {
	tables := make([]string, 0, len(st.Tables))
	aliases := make([]string, 0, len(st.Tables))
	unknown := make([]string, 0)
	for _, span := range st.Tables {
		tables = append(tables, span.Name)
		if span.Alias != "" {
			aliases = append(aliases, span.Alias)
		}
		if schema != nil {
			if _, ok := schema.GetTable(span.Name, ""); !ok {
				unknown = append(unknown, span.Name)
			}
		}
	}
	table := ""
	if len(tables) > 0 {
		table = tables[0]
	}

	env := map[string]any{
		"text":         text,
		"statement":    st.Text,
		"kind":         st.Kind,
		"tables":       tables,
		"table":        table,
		"aliases":      aliases,
		"unknown":      unknown,
		"has_where":    st.HasWhere,
		"has_limit":    st.HasLimit,
		"has_order_by": st.HasOrderBy,
		"has_group_by": st.HasGroupBy,
		"has_join":     st.Joins > 0,
		"select_star":  st.Star != nil,
		"joins":        st.Joins,
		"existing":     len(existing),
	}
	maps.Copy(env, functions)
	return env
}

// formatMessage substitutes $TABLE and $KIND.
func formatMessage(msg string, env map[string]any) string {
	if msg == "" {
		return ""
	}
	return strings.NewReplacer(
		"$TABLE", env["table"].(string),
		"$KIND", env["kind"].(string),
	).Replace(msg)
}
