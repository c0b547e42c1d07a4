package core

import "fmt"

// ErrorType classifies where a diagnostic came from.
type ErrorType string

// Diagnostic origins. The zero value means "not set".
const (
	// ErrorTypeSyntax marks text the grammar engine rejected.
	ErrorTypeSyntax ErrorType = "syntax"
	// ErrorTypeSemantic marks schema-reference or custom semantic violations.
	ErrorTypeSemantic ErrorType = "semantic"
	// ErrorTypeCustom marks style and heuristic findings.
	ErrorTypeCustom ErrorType = "custom"
)

// Diagnostic is a single problem found in a SQL text.
type Diagnostic struct {
	Message    string    `json:"message"`
	Severity   Severity  `json:"severity"`
	Location   *Range    `json:"location,omitempty"`
	Type       ErrorType `json:"type,omitempty"`
	Code       string    `json:"code,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	Rule       string    `json:"rule,omitempty"` // Name of the validator or rule that produced it
}

// ParseError is a diagnostic produced by the grammar adapter.
type ParseError = Diagnostic

// ValidationError is a diagnostic produced by the validation service.
type ValidationError = Diagnostic

// At returns a copy of d located at r.
func (d Diagnostic) At(r Range) Diagnostic {
	d.Location = &r
	return d
}

// String formats the diagnostic as "line:col: severity: message".
func (d Diagnostic) String() string {
	if d.Location == nil {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Location.Start, d.Severity, d.Message)
}
