package parser

import (
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
)

// Engine is the grammar engine behind a Parser. Implementations are treated
// as black boxes: they may return any tree shape, and may panic.
type Engine interface {
	// Parse returns the syntax tree of sql, or the first error.
	Parse(sql string) (any, error)
	// Validate returns every syntax error in sql.
	Validate(sql string) []EngineError
}

// EngineError is a grammar error as reported by an Engine.
// Lines and columns are 1-based; zero means the position is unknown.
type EngineError struct {
	Message     string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// EngineFactory builds an Engine for a dialect.
type EngineFactory func(d *dialect.Dialect) Engine

// DefaultEngine returns the vitess-backed engine for d.
func DefaultEngine(d *dialect.Dialect) Engine {
	return NewVitessEngine(d)
}
