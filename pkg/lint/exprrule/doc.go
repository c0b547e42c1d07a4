// Package exprrule builds lint rules from expr-lang conditions.
//
// A Definition names a boolean expression evaluated once per statement.
// When it holds, the rule reports the definition's message over the
// statement. Definitions are usually loaded from YAML:
//
//	rules:
//	  - name: no-unbounded-delete
//	    when: kind == "DELETE" && !has_where
//	    message: DELETE on $TABLE has no WHERE clause
//	    severity: error
//
// The environment exposes:
//
//	text          whole input
//	statement     current statement text
//	kind          leading verb, e.g. "SELECT"
//	tables        referenced table names
//	table         first referenced table, or ""
//	aliases       table aliases
//	unknown       tables missing from the schema (empty without one)
//	has_where, has_limit, has_order_by, has_group_by, has_join, select_star
//	joins         number of JOINs
//	existing      number of diagnostics found before the rule ran
//
// plus the functions hasPrefix, hasSuffix, toLower and toUpper. Text tests
// use expr's own operators and builtins:
//
//	table matches "^tmp_"            regular expression
//	not (table matches "^tmp_")
//	lower(statement) contains "sleep("
//	table startsWith "stg_"
package exprrule
