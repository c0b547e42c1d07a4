// Package parser adapts a grammar engine to the needs of an editor: it
// never fails, always reports diagnostics in 0-based positions of the text
// the caller typed, and recovers table references from text the grammar
// rejects.
//
// # Usage
//
//	p := parser.New(parser.Options{Dialect: "postgresql", EnableVariables: true})
//	res := p.Parse("SELECT * FROM $(schema).users u")
//	res.TableRefs // [{Name: users, Alias: u, ...}]
//
// The default engine wraps the vitess MySQL grammar. Other engines plug in
// through Options.NewEngine.
package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
	"github.com/leapstack-labs/sqlassist/pkg/placeholder"
)

// Options configures a Parser.
type Options struct {
	// Dialect name or alias; empty or unknown selects the default dialect.
	Dialect string
	// EnableVariables escapes $(name) placeholders before parsing.
	EnableVariables bool
	Logger          *slog.Logger
	// NewEngine overrides the grammar engine. Defaults to DefaultEngine.
	NewEngine EngineFactory
}

// ParseResult is the normalized outcome of a parse.
type ParseResult struct {
	Success   bool                  `json:"success"`
	AST       any                   `json:"-"`
	Errors    []core.ParseError     `json:"errors"`
	TableRefs []core.TableReference `json:"tableRefs"`
	Aliases   core.AliasMap         `json:"aliases"`
}

// Parser parses SQL text for one dialect. It is safe for concurrent use
// when its engine is.
type Parser struct {
	dialect   *dialect.Dialect
	engine    Engine
	variables bool
	logger    *slog.Logger
}

// New creates a Parser.
func New(opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	d, ok := dialect.Resolve(opts.Dialect)
	if !ok && opts.Dialect != "" {
		logger.Warn("unknown dialect, using default", "dialect", opts.Dialect, "default", d.Name)
	}

	factory := opts.NewEngine
	if factory == nil {
		factory = DefaultEngine
	}

	return &Parser{
		dialect:   d,
		engine:    factory(d),
		variables: opts.EnableVariables,
		logger:    logger,
	}
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

// VariablesEnabled reports whether $(name) placeholders are escaped.
func (p *Parser) VariablesEnabled() bool {
	return p.variables
}

// Parse parses text. It never panics: engine failures become a single
// syntax diagnostic.
func (p *Parser) Parse(text string) (result ParseResult) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("grammar engine panicked", "panic", r)
			result = p.failed(text, fmt.Sprintf("internal parser error: %v", r))
		}
	}()

	source := text
	var vars placeholder.VariableMap
	escaped := p.variables && placeholder.HasVariables(text)
	if escaped {
		source, vars = placeholder.Escape(text)
	}

	errs := convertErrors(p.engine.Validate(source))
	ast, err := p.engine.Parse(source)
	if err != nil && len(errs) == 0 {
		errs = append(errs, core.Diagnostic{
			Message:  err.Error(),
			Severity: core.SeverityError,
			Type:     core.ErrorTypeSyntax,
		})
	}
	if escaped {
		errs = placeholder.AdjustErrorPositions(errs, text, source, vars)
	}

	refs := CollectTableRefs(ast)
	if escaped {
		for i := range refs {
			refs[i].Name = placeholder.Revert(refs[i].Name, vars)
			refs[i].Database = placeholder.Revert(refs[i].Database, vars)
			refs[i].Alias = placeholder.Revert(refs[i].Alias, vars)
		}
	}
	typed := ExtractTableRefs(text)
	refs = mergeRefs(dropImplicitDual(refs, typed), typed)
	markCTEs(refs, DiscoverCTEs(text))

	p.logger.Debug("parsed",
		"dialect", p.dialect.Name,
		"errors", len(errs),
		"table_refs", len(refs),
		"escaped", escaped)

	return ParseResult{
		Success:   len(errs) == 0,
		AST:       ast,
		Errors:    errs,
		TableRefs: refs,
		Aliases:   core.BuildAliasMap(refs),
	}
}

// dropImplicitDual removes the dual table the engine puts behind a
// FROM-less SELECT. As many unqualified dual references survive as the
// text itself names.
func dropImplicitDual(refs, typed []core.TableReference) []core.TableReference {
	keep := 0
	for _, r := range typed {
		if isDual(r) {
			keep++
		}
	}
	out := refs[:0]
	for _, r := range refs {
		if isDual(r) {
			if keep == 0 {
				continue
			}
			keep--
		}
		out = append(out, r)
	}
	return out
}

func isDual(r core.TableReference) bool {
	return r.Database == "" && strings.EqualFold(r.Name, "dual")
}

// Validate reports whether text parses without errors.
func (p *Parser) Validate(text string) bool {
	return p.Parse(text).Success
}

// failed builds the result for an engine that could not be run. Table
// references are still recovered from the text.
func (p *Parser) failed(text, message string) (result ParseResult) {
	result = ParseResult{
		Errors: []core.ParseError{{
			Message:  message,
			Severity: core.SeverityError,
			Type:     core.ErrorTypeSyntax,
		}},
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("table reference recovery panicked", "panic", r)
		}
	}()
	refs := ExtractTableRefs(text)
	markCTEs(refs, DiscoverCTEs(text))
	result.TableRefs = refs
	result.Aliases = core.BuildAliasMap(refs)
	return result
}

// convertErrors maps 1-based engine errors to 0-based diagnostics. A
// missing end takes the start; a missing start leaves the location unset.
func convertErrors(in []EngineError) []core.Diagnostic {
	if len(in) == 0 {
		return nil
	}
	out := make([]core.Diagnostic, 0, len(in))
	for _, e := range in {
		d := core.Diagnostic{
			Message:  e.Message,
			Severity: core.SeverityError,
			Type:     core.ErrorTypeSyntax,
		}
		if e.StartLine > 0 {
			start := core.Position{Line: e.StartLine - 1, Column: max(e.StartColumn-1, 0)}
			end := start
			if e.EndLine > 0 {
				end = core.Position{Line: e.EndLine - 1, Column: max(e.EndColumn-1, 0)}
			}
			r := core.NewRange(start, end)
			d.Location = &r
		}
		out = append(out, d)
	}
	return out
}
