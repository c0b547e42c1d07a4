package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
	"github.com/leapstack-labs/sqlassist/pkg/lint"
	"github.com/leapstack-labs/sqlassist/pkg/token"
)

// BlockedWordsName is the name of the blocked keyword rule.
const BlockedWordsName = "blocked-words"

func init() {
	lint.Register(BlockedWordsDef)
}

// BlockedWordsDef warns about dangerous SQL keywords.
var BlockedWordsDef = lint.RuleDef{
	Name:        BlockedWordsName,
	Description: "Block dangerous SQL keywords like DELETE, DROP, TRUNCATE.",
	Type:        core.ErrorTypeCustom,
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"words"},
	New: func(_ *dialect.Dialect, opts map[string]any) (lint.Rule, error) {
		return NewBlockedWords(opts)
	},
	Rationale:   "Destructive statements typed into an editor are easy to run by accident.",
	BadExample:  "DROP TABLE users",
	GoodExample: "SELECT id FROM users",
}

// Default blocked words
var defaultBlockedWords = []string{"DELETE", "DROP", "TRUNCATE"}

// BlockedWordsOptions are the settings of the blocked-words rule.
type BlockedWordsOptions struct {
	Words []string `mapstructure:"words"`
}

// BlockedWords reports every use of a blocked keyword outside strings,
// comments and quoted identifiers.
type BlockedWords struct {
	words map[string]bool
}

// NewBlockedWords builds the rule; words replace the defaults when given.
func NewBlockedWords(opts map[string]any) (*BlockedWords, error) {
	var o BlockedWordsOptions
	if err := lint.DecodeOptions(opts, &o); err != nil {
		return nil, err
	}
	if o.Words == nil {
		o.Words = defaultBlockedWords
	}
	r := &BlockedWords{words: make(map[string]bool, len(o.Words))}
	for _, w := range o.Words {
		if w = strings.TrimSpace(w); w != "" {
			r.words[strings.ToUpper(w)] = true
		}
	}
	return r, nil
}

// Name implements lint.Rule.
func (*BlockedWords) Name() string { return BlockedWordsName }

// Validate implements lint.Rule.
func (r *BlockedWords) Validate(text string, _ []core.ValidationError, _ lint.Schema) []core.ValidationError {
	var out []core.ValidationError
	for _, t := range token.Code(text) {
		if t.Kind != token.WORD {
			continue
		}
		word := strings.ToUpper(t.Text)
		if !r.words[word] {
			continue
		}
		d := core.ValidationError{
			Message:  fmt.Sprintf("Use of blocked word '%s' detected", word),
			Severity: core.SeverityWarning,
			Code:     "blocked-word",
		}
		out = append(out, d.At(core.RangeFromOffsets(text, t.Offset, t.End())))
	}
	return out
}
