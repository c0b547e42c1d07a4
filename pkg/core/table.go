package core

import "strings"

// TableReference is a table, view or CTE mentioned by a statement.
// References are rebuilt on every parse and never persisted.
type TableReference struct {
	Name       string   `json:"name"`
	Database   string   `json:"database,omitempty"`
	Alias      string   `json:"alias,omitempty"`
	IsCTE      bool     `json:"isCTE,omitempty"`
	CTEColumns []string `json:"cteColumns,omitempty"`
}

// Qualifier returns the alias when present, otherwise the bare name.
func (r TableReference) Qualifier() string {
	if r.Alias != "" {
		return r.Alias
	}
	return r.Name
}

// Key identifies a reference by case-folded (name, alias).
func (r TableReference) Key() string {
	return strings.ToLower(r.Name) + "\x00" + strings.ToLower(r.Alias)
}

// AliasMap maps an alias or bare table name, case as typed, to its reference.
type AliasMap map[string]*TableReference

// BuildAliasMap folds refs in order; the last write wins per key.
// Both the alias and the name of each reference are registered.
func BuildAliasMap(refs []TableReference) AliasMap {
	m := make(AliasMap, len(refs)*2)
	for i := range refs {
		ref := &refs[i]
		if ref.Alias != "" {
			m[ref.Alias] = ref
		}
		if ref.Name != "" {
			m[ref.Name] = ref
		}
	}
	return m
}
