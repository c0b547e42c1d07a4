package parser

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlassist/pkg/core"
)

// maxWalkDepth bounds recursion on trees deeper than any real query.
const maxWalkDepth = 256

// backReferenceFields point from a node to its ancestors or to shared
// metadata. Following them only revisits nodes.
var backReferenceFields = map[string]bool{
	"Parent":   true,
	"Metadata": true,
	"Scope":    true,
	"Outer":    true,
	"Owner":    true,
	"Root":     true,
}

// qualifierFields hold table names used to qualify columns or stars, not
// table references.
var qualifierFields = map[string]bool{
	"Qualifier": true,
	"TableName": true,
	"Targets":   true,
}

// walker collects table references from an engine tree of unknown shape.
// Struct trees are recognized by field names; map trees (as produced by
// JSON-style engines) by "type", "name", "alias" and "db" keys.
type walker struct {
	refs    []core.TableReference
	visited map[uintptr]bool
}

// CollectTableRefs walks tree depth-first and returns every table reference
// found, in order of appearance. Cycles are tolerated.
func CollectTableRefs(tree any) []core.TableReference {
	if tree == nil {
		return nil
	}
	w := &walker{visited: make(map[uintptr]bool)}
	w.walk(reflect.ValueOf(tree), "", 0)
	return w.refs
}

func (w *walker) walk(v reflect.Value, field string, depth int) {
	if depth > maxWalkDepth || !v.IsValid() {
		return
	}

	switch v.Kind() {
	case reflect.Interface:
		if !v.IsNil() {
			w.walk(v.Elem(), field, depth+1)
		}

	case reflect.Pointer:
		if v.IsNil() || w.seen(v.Pointer()) {
			return
		}
		w.walk(v.Elem(), field, depth+1)

	case reflect.Map:
		if v.IsNil() || w.seen(v.Pointer()) {
			return
		}
		if ref, ok := mapTableRef(v); ok {
			w.refs = append(w.refs, ref)
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			if k.Kind() == reflect.String && backReferenceFields[k.String()] {
				continue
			}
			w.walk(v.MapIndex(k), field, depth+1)
		}

	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return
		}
		for i := 0; i < v.Len(); i++ {
			w.walk(v.Index(i), field, depth+1)
		}

	case reflect.Struct:
		if isTableName(v) {
			if !qualifierFields[field] {
				if ref, ok := structTableRef(v); ok {
					w.refs = append(w.refs, ref)
				}
			}
			return
		}
		if ref, ok := aliasedTableRef(v); ok {
			w.refs = append(w.refs, ref)
			return
		}
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() || backReferenceFields[sf.Name] {
				continue
			}
			w.walk(v.Field(i), sf.Name, depth+1)
		}

	default:
	}
}

func (w *walker) seen(p uintptr) bool {
	if w.visited[p] {
		return true
	}
	w.visited[p] = true
	return false
}

// isTableName reports whether v is a table-name node: a struct type named
// *TableName with a Name field.
func isTableName(v reflect.Value) bool {
	if v.Kind() != reflect.Struct || !strings.HasSuffix(v.Type().Name(), "TableName") {
		return false
	}
	_, ok := v.Type().FieldByName("Name")
	return ok
}

func structTableRef(v reflect.Value) (core.TableReference, bool) {
	name := stringField(v, "Name")
	if name == "" {
		return core.TableReference{}, false
	}
	return core.TableReference{
		Name:     name,
		Database: firstNonEmpty(stringField(v, "Qualifier"), stringField(v, "Schema"), stringField(v, "Database")),
	}, true
}

// aliasedTableRef recognizes {Expr: <table name>, As: <alias>} nodes.
func aliasedTableRef(v reflect.Value) (core.TableReference, bool) {
	expr := v.FieldByName("Expr")
	if !expr.IsValid() {
		return core.TableReference{}, false
	}
	if _, ok := v.Type().FieldByName("As"); !ok {
		return core.TableReference{}, false
	}
	for expr.Kind() == reflect.Interface || expr.Kind() == reflect.Pointer {
		if expr.IsNil() {
			return core.TableReference{}, false
		}
		expr = expr.Elem()
	}
	if !isTableName(expr) {
		return core.TableReference{}, false
	}
	ref, ok := structTableRef(expr)
	if !ok {
		return ref, false
	}
	ref.Alias = stringField(v, "As")
	return ref, true
}

// mapTableRef recognizes {"type": "table", "name": ..., "alias": ..., "db": ...}.
func mapTableRef(v reflect.Value) (core.TableReference, bool) {
	if v.Type().Key().Kind() != reflect.String {
		return core.TableReference{}, false
	}
	get := func(key string) string {
		e := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !e.IsValid() {
			return ""
		}
		return stringOf(e)
	}

	switch strings.ToLower(get("type")) {
	case "table", "table_ref", "tableref", "tablename":
	default:
		return core.TableReference{}, false
	}
	name := firstNonEmpty(get("name"), get("table"))
	if name == "" {
		return core.TableReference{}, false
	}
	return core.TableReference{
		Name:     name,
		Alias:    firstNonEmpty(get("alias"), get("as")),
		Database: firstNonEmpty(get("db"), get("database"), get("schema")),
	}, true
}

func stringField(v reflect.Value, name string) string {
	f := v.FieldByName(name)
	if !f.IsValid() {
		return ""
	}
	return stringOf(f)
}

// stringOf renders strings, Stringers and nested table names; anything
// else is empty.
func stringOf(v reflect.Value) string {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	if v.CanInterface() {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String()
		}
	}
	if isTableName(v) {
		return stringField(v, "Name")
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}
