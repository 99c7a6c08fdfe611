// Package property implements the property query language used to select
// between algorithm implementations offered by different providers.
//
// A query is a comma-separated list of clauses. Each clause is one of
// "key=value", "key!=value", or a bare "key" (shorthand for "key=yes").
// Keys are case-insensitive. The boolean literals yes/no/true/false are
// compared case-insensitively; any other value is compared case-sensitively.
// A key that an implementation does not declare is treated as if it were
// declared with the value "no".
package property

import (
	"fmt"
	"strings"
)

// Comparator is the relation a clause applies between the queried value and
// the declared value.
type Comparator int

const (
	// Equals requires the declared value to equal the clause value.
	Equals Comparator = iota

	// NotEquals requires the declared value to differ from the clause value.
	NotEquals
)

// Clause is a single compiled (key, comparator, value) term of a query.
type Clause struct {
	Key   string // lower-cased
	Cmp   Comparator
	Value string
}

// Query is a compiled property query. It is immutable once parsed.
type Query struct {
	clauses []Clause
}

// SyntaxError describes a malformed property query string.
type SyntaxError struct {
	Query  string // the full query string
	Clause string // the offending clause
	Msg    string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Clause != "" {
		return fmt.Sprintf("property query %q: clause %q: %s", e.Query, e.Clause, e.Msg)
	}
	return fmt.Sprintf("property query %q: %s", e.Query, e.Msg)
}

// Parse compiles a property query string. An empty string compiles to a
// query that matches every property definition. On malformed input the
// returned error is a *SyntaxError.
func Parse(query string) (*Query, error) {
	q := &Query{}
	if strings.TrimSpace(query) == "" {
		return q, nil
	}

	for _, raw := range strings.Split(query, ",") {
		clause := strings.TrimSpace(raw)
		if clause == "" {
			return nil, &SyntaxError{Query: query, Clause: raw, Msg: "empty clause"}
		}

		key, cmp, value, err := splitClause(clause)
		if err != nil {
			return nil, &SyntaxError{Query: query, Clause: clause, Msg: err.Error()}
		}
		q.clauses = append(q.clauses, Clause{Key: key, Cmp: cmp, Value: value})
	}
	return q, nil
}

// splitClause breaks one clause into its key, comparator and value.
func splitClause(clause string) (key string, cmp Comparator, value string, err error) {
	switch {
	case strings.Contains(clause, "!="):
		parts := strings.SplitN(clause, "!=", 2)
		key, value, cmp = parts[0], parts[1], NotEquals
	case strings.Contains(clause, "="):
		parts := strings.SplitN(clause, "=", 2)
		key, value, cmp = parts[0], parts[1], Equals
	default:
		// Bare key is shorthand for key=yes.
		key, value, cmp = clause, "yes", Equals
	}

	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	if key == "" {
		return "", 0, "", fmt.Errorf("missing key")
	}
	if value == "" {
		return "", 0, "", fmt.Errorf("missing value")
	}
	if strings.ContainsAny(key, "=!,") {
		return "", 0, "", fmt.Errorf("invalid key %q", key)
	}
	if strings.ContainsAny(value, "=!,") {
		return "", 0, "", fmt.Errorf("invalid value %q", value)
	}

	return strings.ToLower(key), cmp, value, nil
}

// Clauses returns the compiled clauses in query order.
func (q *Query) Clauses() []Clause {
	out := make([]Clause, len(q.clauses))
	copy(out, q.clauses)
	return out
}

// Len returns the number of clauses.
func (q *Query) Len() int { return len(q.clauses) }

// String returns the canonical textual form of the query. Parsing the
// result yields an equivalent query, and equal queries produce equal
// strings, so the form is usable as a cache key component.
func (q *Query) String() string {
	var b strings.Builder
	for i, c := range q.clauses {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.Key)
		if c.Cmp == NotEquals {
			b.WriteString("!=")
		} else {
			b.WriteByte('=')
		}
		b.WriteString(c.Value)
	}
	return b.String()
}

// Match reports whether the property definition satisfies every clause of
// the query. It is a pure function of the query and the definition.
func (q *Query) Match(def *Properties) bool {
	for _, c := range q.clauses {
		declared := "no"
		if def != nil {
			if v, ok := def.Get(c.Key); ok {
				declared = v
			}
		}

		equal := valuesEqual(c.Value, declared)
		if c.Cmp == Equals && !equal {
			return false
		}
		if c.Cmp == NotEquals && equal {
			return false
		}
	}
	return true
}

// Merge combines a caller query with a context's default query. Default
// clauses apply only for keys the caller did not mention; caller clauses
// always take precedence for the same key. The caller's clause order is
// preserved, followed by the surviving defaults in their own order.
func Merge(caller, defaults *Query) *Query {
	if defaults == nil || defaults.Len() == 0 {
		return caller
	}
	if caller == nil {
		caller = &Query{}
	}

	seen := make(map[string]bool, len(caller.clauses))
	for _, c := range caller.clauses {
		seen[c.Key] = true
	}

	merged := &Query{clauses: make([]Clause, 0, len(caller.clauses)+len(defaults.clauses))}
	merged.clauses = append(merged.clauses, caller.clauses...)
	for _, c := range defaults.clauses {
		if !seen[c.Key] {
			merged.clauses = append(merged.clauses, c)
		}
	}
	return merged
}

// valuesEqual compares a query value against a declared value. Boolean
// literals compare as booleans regardless of case or spelling; anything
// else compares case-sensitively.
func valuesEqual(a, b string) bool {
	ab, aok := boolValue(a)
	bb, bok := boolValue(b)
	if aok && bok {
		return ab == bb
	}
	return a == b
}

// boolValue maps yes/true and no/false (any case) onto booleans.
func boolValue(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "yes", "true":
		return true, true
	case "no", "false":
		return false, true
	}
	return false, false
}
