package store

import (
	"fmt"
	"strings"
)

// ─── SET clause builder ──────────────────────────────────────────────────────

// setBuilder accumulates "column = $N" fragments for a partial UPDATE.
// Placeholders are numbered from 1 in call order and Args returns the values
// in the same order, so a caller can append the row identifier at Next()
// without renumbering. Column names must be compile-time literals: callers
// translate their typed update structs field by field, and no external key
// ever reaches column-name interpolation.
type setBuilder struct {
	frags []string
	args  []any
}

// Set appends one assignment fragment for column and records its value.
func (b *setBuilder) Set(column string, value any) {
	b.args = append(b.args, value)
	b.frags = append(b.frags, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// Empty reports whether no column was set.
func (b *setBuilder) Empty() bool { return len(b.frags) == 0 }

// Clause returns the comma-joined assignment list.
func (b *setBuilder) Clause() string { return strings.Join(b.frags, ", ") }

// Args returns the recorded values in assignment order.
func (b *setBuilder) Args() []any { return b.args }

// Next returns the placeholder index for the next parameter a caller appends.
func (b *setBuilder) Next() int { return len(b.args) + 1 }

// ─── WHERE clause builder ────────────────────────────────────────────────────

// condBuilder accumulates AND-joined predicates with positional placeholders
// assigned in add order. Predicate order is fixed by the caller and matters:
// placeholder indices are assigned by position.
type condBuilder struct {
	conds []string
	args  []any
}

// Add appends a predicate whose placeholder is written as the expr's $%d verb.
func (b *condBuilder) Add(expr string, value any) {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf(expr, len(b.args)))
}

// AddExpr appends a predicate that carries no parameter.
func (b *condBuilder) AddExpr(expr string) { b.conds = append(b.conds, expr) }

// Where returns " WHERE …" joining all predicates, or "" when none were added.
func (b *condBuilder) Where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args returns the recorded values in predicate order.
func (b *condBuilder) Args() []any { return b.args }

// escapeLike escapes LIKE wildcards so user input matches as a literal
// substring. Postgres treats backslash as the default LIKE escape character.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
