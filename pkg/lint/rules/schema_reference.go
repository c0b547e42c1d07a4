package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/dialect"
	"github.com/leapstack-labs/sqlassist/pkg/lint"
	"github.com/leapstack-labs/sqlassist/pkg/parser"
	"github.com/leapstack-labs/sqlassist/pkg/placeholder"
)

// SchemaReferenceName is the name of the unknown-table rule.
const SchemaReferenceName = "schema-reference"

func init() {
	lint.Register(SchemaReferenceDef)
}

// SchemaReferenceDef flags tables that are missing from the schema.
var SchemaReferenceDef = lint.RuleDef{
	Name:        SchemaReferenceName,
	Description: "Tables named after FROM and JOIN must exist in the schema.",
	Type:        core.ErrorTypeSemantic,
	Severity:    core.SeverityError,
	New: func(*dialect.Dialect, map[string]any) (lint.Rule, error) {
		return SchemaReference{}, nil
	},
	Rationale:   "A misspelled or missing table fails at execution time; catching it while typing is cheaper.",
	BadExample:  "SELECT * FROM userz",
	GoodExample: "SELECT * FROM users",
}

// SchemaReference reports table references the schema does not know.
// CTE names and names built from $(variables) are skipped. Without a
// schema it reports nothing.
type SchemaReference struct{}

// Name implements lint.Rule.
func (SchemaReference) Name() string { return SchemaReferenceName }

// Validate implements lint.Rule.
func (SchemaReference) Validate(text string, _ []core.ValidationError, schema lint.Schema) []core.ValidationError {
	if schema == nil {
		return nil
	}

	escaped, vars := placeholder.Escape(text)
	ctes := make(map[string]bool)
	for _, c := range parser.DiscoverCTEs(escaped) {
		ctes[strings.ToLower(c.Name)] = true
	}

	var out []core.ValidationError
	for _, span := range parser.LocateTableRefs(escaped) {
		name := placeholder.Revert(span.Name, vars)
		if placeholder.HasVariables(name) {
			continue
		}
		db := placeholder.Revert(span.Database, vars)
		if placeholder.HasVariables(db) {
			db = ""
		}
		if db == "" && ctes[strings.ToLower(name)] {
			continue
		}
		if tableExists(schema, name, db) {
			continue
		}

		qualified := name
		if db != "" {
			qualified = db + "." + name
		}
		diag := core.ValidationError{
			Message:  fmt.Sprintf("Table '%s' not found in schema", qualified),
			Severity: core.SeverityError,
			Type:     core.ErrorTypeSemantic,
			Code:     "unknown-table",
		}
		if s, ok := suggestSimilar(name, tableNames(schema, db), maxEdits(name)); ok {
			diag.Suggestion = fmt.Sprintf("Did you mean '%s'?", s)
		}
		out = append(out, diag.At(core.RangeFromOffsets(escaped, span.Start, span.End)))
	}
	return placeholder.AdjustErrorPositions(out, text, escaped, vars)
}

// tableExists looks name up in db when the schema knows db, and in every
// database otherwise.
func tableExists(schema lint.Schema, name, db string) bool {
	if db != "" {
		if _, ok := schema.GetDatabase(db); ok {
			_, found := schema.GetTable(name, db)
			return found
		}
	}
	_, found := schema.GetTable(name, "")
	return found
}

func tableNames(schema lint.Schema, db string) []string {
	if db != "" {
		if _, ok := schema.GetDatabase(db); !ok {
			db = ""
		}
	}
	tables := schema.GetAllTables(db)
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}
