package dialect

import "strings"

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
	config  *Config // Optional config for auto-wiring features
}

// NewDialect creates a new dialect builder with ANSI defaults.
func NewDialect(name string) *Builder {
	return New(&Config{
		Name: name,
		Identifiers: IdentifierConfig{
			Quote:         `"`,
			QuoteEnd:      `"`,
			Escape:        `""`,
			Normalization: NormLowercase,
		},
	})
}

// New creates a dialect builder from a Config.
// Feature flags are wired when Build is called.
func New(cfg *Config) *Builder {
	return &Builder{
		config: cfg,
		dialect: &Dialect{
			Name:          strings.ToLower(cfg.Name),
			Description:   cfg.Description,
			Aliases:       append([]string(nil), cfg.Aliases...),
			Identifiers:   cfg.Identifiers,
			DefaultSchema: cfg.DefaultSchema,
			Placeholder:   cfg.Placeholder,
			keywords:      make(map[string]struct{}),
			reservedWords: make(map[string]struct{}),
			functions:     make(map[string]Function),
		},
	}
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm NormalizationStrategy) *Builder {
	b.dialect.Identifiers = IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// Aliases registers additional names the dialect can be selected by.
func (b *Builder) Aliases(names ...string) *Builder {
	b.dialect.Aliases = append(b.dialect.Aliases, names...)
	return b
}

// Functions adds functions to the catalog, replacing same-named entries.
func (b *Builder) Functions(fns ...Function) *Builder {
	for _, f := range fns {
		f.Name = strings.ToUpper(f.Name)
		if f.Snippet == "" {
			f.Snippet = f.Name + "($1)"
		}
		b.dialect.functions[f.Name] = f
	}
	return b
}

// Aggregates marks functions as aggregates, adding bare entries for unknown names.
func (b *Builder) Aggregates(names ...string) *Builder {
	for _, name := range names {
		key := strings.ToUpper(name)
		f, ok := b.dialect.functions[key]
		if !ok {
			f = Function{Name: key, Signature: key + "(expr)", Category: CategoryAggregate, Snippet: key + "($1)"}
		}
		f.Aggregate = true
		b.dialect.functions[key] = f
	}
	return b
}

// WithKeywords registers dialect-specific keywords offered by completion.
func (b *Builder) WithKeywords(kws ...string) *Builder {
	for _, kw := range kws {
		b.dialect.keywords[strings.ToUpper(kw)] = struct{}{}
	}
	return b
}

// WithDataTypes registers the dialect's data types.
func (b *Builder) WithDataTypes(types ...string) *Builder {
	b.dialect.dataTypes = append(b.dialect.dataTypes, types...)
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets the query parameter style.
func (b *Builder) PlaceholderStyle(style PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToLower(w)] = struct{}{}
	}
	return b
}

// Build returns the constructed dialect, wiring config feature flags.
func (b *Builder) Build() *Dialect {
	cfg := b.config
	if cfg == nil {
		return b.dialect
	}

	b.WithKeywords(cfg.Keywords...)
	b.WithDataTypes(cfg.DataTypes...)

	if cfg.SupportsCastOperator {
		b.dialect.castOperator = true
	}
	if cfg.SupportsIlike {
		b.dialect.ilike = true
		b.WithKeywords("ILIKE")
	}
	if cfg.SupportsQualify {
		b.dialect.qualify = true
		b.WithKeywords("QUALIFY")
	}

	return b.dialect
}
