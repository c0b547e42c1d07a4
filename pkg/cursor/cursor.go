// Package cursor classifies the position of an editor cursor inside SQL
// text: which clause it sits in, the word being typed, and whether it
// follows a "qualifier." prefix.
//
// Detection is purely lexical. It works on incomplete statements, which is
// what an editor sends while the user is typing.
package cursor

import (
	"strings"

	"github.com/leapstack-labs/sqlassist/pkg/core"
	"github.com/leapstack-labs/sqlassist/pkg/token"
)

// Kind is the syntactic context at the cursor.
type Kind string

// Context kinds.
const (
	SelectList   Kind = "select_list"
	FromClause   Kind = "from_clause"
	WhereClause  Kind = "where_clause"
	JoinClause   Kind = "join_clause"
	GroupBy      Kind = "group_by"
	OrderBy      Kind = "order_by"
	HavingClause Kind = "having_clause"
	Function     Kind = "function"
	Unknown      Kind = "unknown"
)

// Context describes the cursor position.
type Context struct {
	Kind            Kind                  `json:"type"`
	Position        core.Position         `json:"position"`
	AvailableTables []core.TableReference `json:"availableTables"`
	// CurrentToken is the partial word immediately before the cursor.
	CurrentToken string `json:"currentToken"`
	// PreviousToken is the whitespace-delimited token before CurrentToken.
	// It is empty when AfterDot is set.
	PreviousToken string `json:"previousToken,omitempty"`
	AfterDot      bool   `json:"afterDot"`
	DotPrefix     string `json:"dotPrefix,omitempty"`
}

// Detect classifies the cursor at pos in text. refs are the table
// references of the current parse and are reported as AvailableTables.
func Detect(text string, pos core.Position, refs []core.TableReference) Context {
	before := text[:core.PositionToOffset(text, pos)]

	ctx := Context{
		Kind:            Unknown,
		Position:        pos,
		AvailableTables: refs,
		CurrentToken:    trailingWord(before),
	}

	tokens := token.Code(before)
	if prefix, ok := dotPrefix(before, tokens, ctx.CurrentToken); ok {
		ctx.AfterDot = true
		ctx.DotPrefix = prefix
	} else {
		ctx.PreviousToken = previousToken(before[:len(before)-len(ctx.CurrentToken)])
	}

	ctx.Kind = classify(scope(tokens))
	return ctx
}

// ResolveAlias finds the reference whose alias or name equals name,
// case-insensitively. The first match in refs wins.
func ResolveAlias(name string, refs []core.TableReference) (*core.TableReference, bool) {
	if name == "" {
		return nil, false
	}
	for i := range refs {
		if strings.EqualFold(refs[i].Alias, name) || strings.EqualFold(refs[i].Name, name) {
			return &refs[i], true
		}
	}
	return nil, false
}

// trailingWord returns the run of word characters ending s.
func trailingWord(s string) string {
	i := len(s)
	for i > 0 && token.IsWordByte(s[i-1]) {
		i--
	}
	return s[i:]
}

// previousToken returns the last whitespace-delimited field of s.
func previousToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// dotPrefix matches "qualifier." or "qualifier.partial" at the end of
// before, with no whitespace around the dot.
func dotPrefix(before string, tokens []token.Token, current string) (string, bool) {
	n := len(tokens)
	if current != "" {
		// the partial word is the last token
		n--
	}
	if n < 2 {
		return "", false
	}
	dot, qual := tokens[n-1], tokens[n-2]
	if !dot.IsPunct(".") || !qual.IsIdent() || qual.Open {
		return "", false
	}
	if qual.End() != dot.Offset || dot.End() != len(before)-len(current) {
		return "", false
	}
	return qual.Value(), true
}

// scope returns the tokens of the statement and subquery enclosing the
// cursor: everything after the last semicolon and after the innermost
// unclosed "(SELECT" or "(WITH".
func scope(tokens []token.Token) []token.Token {
	start := 0
	var opens []int // token index of each unclosed "("
	for i, t := range tokens {
		switch {
		case t.IsPunct(";"):
			start = i + 1
			opens = opens[:0]
		case t.IsPunct("("):
			opens = append(opens, i)
		case t.IsPunct(")"):
			if len(opens) > 0 {
				opens = opens[:len(opens)-1]
			}
		}
	}
	for j := len(opens) - 1; j >= 0; j-- {
		i := opens[j]
		if i+1 < len(tokens) && (tokens[i+1].Is("SELECT") || tokens[i+1].Is("WITH")) {
			if i+1 > start {
				start = i + 1
			}
			break
		}
	}
	return tokens[start:]
}

// clauses records which clause keywords appear in a scope.
type clauses struct {
	selectKw, from, join, joinOn, where, groupBy, orderBy, having bool
	depth                                                        int
}

func scan(tokens []token.Token) clauses {
	var c clauses
	lastJoin := -1
	for i, t := range tokens {
		nextIsBy := i+1 < len(tokens) && tokens[i+1].Is("BY")
		switch {
		case t.IsPunct("("):
			c.depth++
		case t.IsPunct(")"):
			if c.depth > 0 {
				c.depth--
			}
		case t.Kind != token.WORD:
		case t.Is("SELECT"):
			c.selectKw = true
		case t.Is("FROM"):
			c.from = true
		case t.Is("JOIN"):
			c.join = true
			lastJoin = i
			c.joinOn = false
		case t.Is("ON"):
			if lastJoin >= 0 {
				c.joinOn = true
			}
		case t.Is("WHERE"):
			c.where = true
		case t.Is("GROUP") && nextIsBy:
			c.groupBy = true
		case t.Is("ORDER") && nextIsBy:
			c.orderBy = true
		case t.Is("HAVING"):
			c.having = true
		}
	}
	return c
}

// classify applies clause precedence: having, order by, group by, where
// (including JOIN ... ON), join, from, select, then open parentheses.
func classify(tokens []token.Token) Kind {
	c := scan(tokens)
	switch {
	case c.having:
		return HavingClause
	case c.orderBy:
		return OrderBy
	case c.groupBy:
		return GroupBy
	case c.where, c.join && c.joinOn:
		return WhereClause
	case c.join:
		return JoinClause
	case c.from:
		return FromClause
	case c.selectKw:
		return SelectList
	case c.depth > 0:
		return Function
	default:
		return Unknown
	}
}
