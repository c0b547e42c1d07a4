// Package dialect provides SQL dialect configuration: identifier rules,
// keyword and function vocabularies, and the global dialect registry.
//
// Concrete dialects are registered from pkg/dialects/*/ packages.
package dialect

import (
	"sort"
	"strconv"
	"strings"
)

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL table names on Linux).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (BigQuery, DuckDB).
	NormCaseInsensitive
)

// PlaceholderStyle defines how query parameters are written.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (MySQL, SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. (PostgreSQL, Redshift, DuckDB).
	PlaceholderDollar
	// PlaceholderColon uses :name (Snowflake bindings, Oracle).
	PlaceholderColon
	// PlaceholderAt uses @name (BigQuery named parameters).
	PlaceholderAt
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}

// Config is the pure-data description of a dialect.
// Builder reads feature flags and wires the matching keywords.
type Config struct {
	Name          string
	Description   string
	Aliases       []string
	Identifiers   IdentifierConfig
	DefaultSchema string
	Placeholder   PlaceholderStyle

	SupportsCastOperator bool // expr::type
	SupportsIlike        bool
	SupportsQualify      bool

	Keywords  []string
	DataTypes []string
}

// Dialect is a built, immutable dialect definition.
type Dialect struct {
	Name          string
	Description   string
	Aliases       []string
	Identifiers   IdentifierConfig
	DefaultSchema string
	Placeholder   PlaceholderStyle

	castOperator bool
	ilike        bool
	qualify      bool

	keywords      map[string]struct{}
	reservedWords map[string]struct{}
	dataTypes     []string
	functions     map[string]Function
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case NormUppercase:
		return strings.ToUpper(name)
	case NormLowercase, NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// SupportsCastOperator reports whether expr::type casts are valid.
func (d *Dialect) SupportsCastOperator() bool { return d.castOperator }

// SupportsIlike reports whether ILIKE is an operator.
func (d *Dialect) SupportsIlike() bool { return d.ilike }

// SupportsQualify reports whether QUALIFY is a clause.
func (d *Dialect) SupportsQualify() bool { return d.qualify }

// Keywords returns the standard keywords plus dialect extensions, sorted.
func (d *Dialect) Keywords() []string {
	seen := make(map[string]struct{}, len(StandardKeywords)+len(d.keywords))
	out := make([]string, 0, len(seen))
	add := func(kw string) {
		kw = strings.ToUpper(kw)
		if _, ok := seen[kw]; ok {
			return
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	for _, kw := range StandardKeywords {
		add(kw)
	}
	for kw := range d.keywords {
		add(kw)
	}
	sort.Strings(out)
	return out
}

// DataTypes returns the dialect's data type names.
func (d *Dialect) DataTypes() []string {
	return d.dataTypes
}

// Functions returns the function catalog sorted by name.
func (d *Dialect) Functions() []Function {
	out := make([]Function, 0, len(d.functions))
	for _, f := range d.functions {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Function looks up a function by name, case-insensitively.
func (d *Dialect) Function(name string) (Function, bool) {
	f, ok := d.functions[strings.ToUpper(name)]
	return f, ok
}

// IsAggregate returns true if the function is an aggregate function.
func (d *Dialect) IsAggregate(name string) bool {
	f, ok := d.Function(name)
	return ok && f.Aggregate
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case PlaceholderColon:
		return ":p" + strconv.Itoa(index)
	case PlaceholderAt:
		return "@p" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToLower(word)]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier only if it's a reserved word.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

// Unquote strips one level of identifier quoting, accepting the dialect's
// own quotes as well as backticks and double quotes.
func (d *Dialect) Unquote(ident string) string {
	pairs := [][2]string{
		{d.Identifiers.Quote, d.Identifiers.QuoteEnd},
		{"`", "`"},
		{`"`, `"`},
		{"[", "]"},
	}
	for _, p := range pairs {
		if p[0] == "" || len(ident) < len(p[0])+len(p[1]) {
			continue
		}
		if strings.HasPrefix(ident, p[0]) && strings.HasSuffix(ident, p[1]) {
			inner := ident[len(p[0]) : len(ident)-len(p[1])]
			if p[0] == d.Identifiers.Quote && d.Identifiers.Escape != "" {
				inner = strings.ReplaceAll(inner, d.Identifiers.Escape, d.Identifiers.QuoteEnd)
			}
			return inner
		}
	}
	return ident
}
