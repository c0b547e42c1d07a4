package lint

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/parser"
)

// Options configures a Service.
type Options struct {
	Config *Config
	Logger *slog.Logger
}

// Service validates SQL text with a parser, validators and rules.
// Registration methods are not safe for concurrent use with Validate.
type Service struct {
	parser     *parser.Parser
	config     *Config
	logger     *slog.Logger
	validators []Validator
	rules      []RuleEntry
}

// New creates a Service with no validators or rules.
func New(p *parser.Parser, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Service{parser: p, config: cfg, logger: logger}
}

// UseRegistered adds every registered rule, in registration order, built
// for the parser's dialect with options from the config. Rules the config
// disables are added disabled.
func (s *Service) UseRegistered() error {
	var errs []error
	for _, def := range Registered() {
		r, err := def.New(s.parser.Dialect(), s.config.Options(def.Name))
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %s: %w", def.Name, err))
			continue
		}
		s.AddRuleEntry(RuleEntry{Rule: r, Enabled: !s.config.IsDisabled(def.Name), Type: def.Type})
	}
	return errors.Join(errs...)
}

// AddValidator appends a validator.
func (s *Service) AddValidator(v Validator) {
	s.validators = append(s.validators, v)
}

// RemoveValidator removes validators by name and reports whether any was
// removed.
func (s *Service) RemoveValidator(name string) bool {
	n := len(s.validators)
	s.validators = slices.DeleteFunc(s.validators, func(v Validator) bool { return v.Name() == name })
	return len(s.validators) != n
}

// Validators returns the registered validators in order.
func (s *Service) Validators() []Validator {
	return slices.Clone(s.validators)
}

// AddRule appends an enabled rule whose untyped findings get typ.
func (s *Service) AddRule(r Rule, typ core.ErrorType) {
	s.AddRuleEntry(RuleEntry{Rule: r, Enabled: !s.config.IsDisabled(r.Name()), Type: typ})
}

// AddRuleEntry appends a rule entry as given.
func (s *Service) AddRuleEntry(e RuleEntry) {
	s.rules = append(s.rules, e)
}

// RemoveRule removes rules by name and reports whether any was removed.
func (s *Service) RemoveRule(name string) bool {
	n := len(s.rules)
	s.rules = slices.DeleteFunc(s.rules, func(e RuleEntry) bool { return e.Name() == name })
	return len(s.rules) != n
}

// SetRuleEnabled switches rules by name and reports whether any matched.
func (s *Service) SetRuleEnabled(name string, enabled bool) bool {
	found := false
	for i := range s.rules {
		if s.rules[i].Name() == name {
			s.rules[i].Enabled = enabled
			found = true
		}
	}
	return found
}

// Rules returns the registered rule entries in order.
func (s *Service) Rules() []RuleEntry {
	return slices.Clone(s.rules)
}

// Validate parses text and runs every validator and enabled rule.
// It never panics.
func (s *Service) Validate(text string, schema Schema) Result {
	res := s.parser.Parse(text)

	errs := make([]core.ValidationError, 0, len(res.Errors))
	for _, e := range res.Errors {
		e.Type = core.ErrorTypeSyntax
		errs = append(errs, e)
	}

	for _, v := range s.validators {
		found := s.runValidator(v, text, res.AST, schema)
		errs = append(errs, s.finish(v.Name(), "", found)...)
	}

	for _, entry := range s.rules {
		if !entry.Enabled {
			continue
		}
		found := s.runRule(entry.Rule, text, slices.Clone(errs), schema)
		errs = append(errs, s.finish(entry.Name(), entry.Type, found)...)
	}

	s.logger.Debug("validated",
		"errors", len(errs),
		"validators", len(s.validators),
		"rules", len(s.rules))

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func (s *Service) runValidator(v Validator, text string, ast any, schema Schema) (out []core.ValidationError) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("validator panicked", "validator", v.Name(), "panic", r)
			out = nil
		}
	}()
	return v.Validate(text, ast, schema)
}

func (s *Service) runRule(r Rule, text string, existing []core.ValidationError, schema Schema) (out []core.ValidationError) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("rule panicked", "rule", r.Name(), "panic", rec)
			out = nil
		}
	}()
	return r.Validate(text, existing, schema)
}

// finish stamps findings with their producer, defaults their type and
// applies severity overrides.
func (s *Service) finish(name string, typ core.ErrorType, found []core.ValidationError) []core.ValidationError {
	if typ == "" {
		typ = core.ErrorTypeCustom
	}
	sev, override := s.config.Severity(name)
	for i := range found {
		if found[i].Type == "" {
			found[i].Type = typ
		}
		if found[i].Rule == "" {
			found[i].Rule = name
		}
		if override {
			found[i].Severity = sev
		}
	}
	return found
}
