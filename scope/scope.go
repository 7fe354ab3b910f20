// Package scope holds reusable query fragments.
package scope

import "strings"

// Applier is implemented by query builders to receive scope fragments.
// It lives here so that orm can import scope without a cycle.
type Applier interface {
	ApplyWhere(clause string, args []any)
	ApplyOrderBy(clause string)
	ApplyLimit(n int)
	ApplyOffset(n int)
}

type scopeKind int

const (
	kindWhere scopeKind = iota
	kindOrderBy
	kindLimit
	kindOffset
)

// Scope is a single query condition fragment.
// Scopes are immutable and safe to reuse across queries.
type Scope struct {
	kind   scopeKind
	clause string
	args   []any
	n      int
}

// Apply dispatches this Scope to the given Applier.
func (s Scope) Apply(a Applier) {
	switch s.kind {
	case kindWhere:
		a.ApplyWhere(s.clause, s.args)
	case kindOrderBy:
		a.ApplyOrderBy(s.clause)
	case kindLimit:
		a.ApplyLimit(s.n)
	case kindOffset:
		a.ApplyOffset(s.n)
	}
}

// Where returns a Scope that adds a WHERE clause fragment.
//
//	scope.Where("age > ?", 1)
func Where(clause string, args ...any) Scope {
	return Scope{kind: kindWhere, clause: clause, args: args}
}

// Eq returns a WHERE scope comparing column to a single value.
//
//	scope.Eq("dog_id", 1)  // → WHERE dog_id = ?
func Eq(column string, value any) Scope {
	return Where(column+" = ?", value)
}

// In returns a WHERE scope with an IN clause, one placeholder per value.
// An empty slice matches nothing.
//
//	scope.In("id", []int64{1, 2, 3})  // → WHERE id IN (?, ?, ?)
func In[T any](column string, values []T) Scope {
	if len(values) == 0 {
		return Where("1 = 0")
	}
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return Where(column+" IN ("+strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")+")", args...)
}

// OrderBy returns a Scope that appends to the ORDER BY clause.
func OrderBy(clause string) Scope {
	return Scope{kind: kindOrderBy, clause: clause}
}

func Limit(n int) Scope {
	return Scope{kind: kindLimit, n: n}
}

func Offset(n int) Scope {
	return Scope{kind: kindOffset, n: n}
}

// Scopes is a named slice of Scope, useful for conditionally building
// up a set of scopes.
type Scopes []Scope

// Append adds scopes and returns a new Scopes. The receiver is not modified.
func (ss Scopes) Append(scopes ...Scope) Scopes {
	return append(append(Scopes(nil), ss...), scopes...)
}

// Combine creates a Scopes from the given scopes.
func Combine(scopes ...Scope) Scopes {
	return Scopes(scopes)
}
