package property

import (
	"fmt"
	"sort"
	"strings"
)

// Properties is a parsed property definition: the immutable key/value
// attributes an implementation declares about itself, e.g.
// "provider=default,fips=yes". Keys are stored lower-cased.
type Properties struct {
	values map[string]string
}

// ParseDefinition compiles a property definition string. Definitions use
// the same clause syntax as queries but only allow "key=value" and bare
// "key" clauses; "!=" has no meaning in a declaration. On malformed input
// the returned error is a *SyntaxError.
func ParseDefinition(def string) (*Properties, error) {
	p := &Properties{values: make(map[string]string)}
	if strings.TrimSpace(def) == "" {
		return p, nil
	}

	for _, raw := range strings.Split(def, ",") {
		clause := strings.TrimSpace(raw)
		if clause == "" {
			return nil, &SyntaxError{Query: def, Clause: raw, Msg: "empty clause"}
		}

		key, cmp, value, err := splitClause(clause)
		if err != nil {
			return nil, &SyntaxError{Query: def, Clause: clause, Msg: err.Error()}
		}
		if cmp != Equals {
			return nil, &SyntaxError{Query: def, Clause: clause, Msg: "inequality not allowed in a definition"}
		}
		p.values[key] = value
	}
	return p, nil
}

// Get returns the declared value for a key. Lookup is case-insensitive.
func (p *Properties) Get(key string) (string, bool) {
	if p == nil || p.values == nil {
		return "", false
	}
	v, ok := p.values[strings.ToLower(key)]
	return v, ok
}

// SetDefault declares a value for a key unless the key is already declared.
// The registry uses this to inject the implicit provider name property.
func (p *Properties) SetDefault(key, value string) {
	key = strings.ToLower(key)
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.values[key] = value
	}
}

// Len returns the number of declared keys.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.values)
}

// String returns the definition in canonical form with keys sorted.
func (p *Properties) String() string {
	if p == nil || len(p.values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%s", k, p.values[k])
	}
	return b.String()
}
