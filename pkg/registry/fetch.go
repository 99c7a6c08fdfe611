package registry

import (
	"fmt"

	"github.com/remiblancher/qprov/pkg/property"
)

// Fetch resolves an implementation for the operation, identifier and
// property query, and returns a bound method handle. The caller owns one
// reference on the returned method and must Release it.
//
// The effective property query is the caller's query with the context's
// default properties applied as a per-key fallback. Providers are walked
// in registration order; within each provider's response, the first record
// whose alias set contains the canonical identifier and whose property
// definition satisfies the effective query wins. Registration order is
// the tie-break between providers, not any declared priority.
//
// Repeated fetches with identical arguments against an unchanged provider
// set resolve to the same provider and an equivalent dispatch table; cache
// hits return the same shared handle.
//
// Failure modes: *property.SyntaxError for a malformed query (via
// errors.As), ErrNotFound when nothing matches, ErrIncompleteDispatch
// when the winning record lacks a mandatory dispatch function.
func (c *Context) Fetch(op Operation, name, propQuery string) (*Method, error) {
	if CanonicalName(name) == "" {
		return nil, &FetchError{Op: op, Name: name, Query: propQuery, Err: ErrNoIdentifier}
	}

	caller, err := property.Parse(propQuery)
	if err != nil {
		// Malformed queries surface to the caller; they are never
		// downgraded to a no-match result.
		return nil, &FetchError{Op: op, Name: name, Query: propQuery, Err: err}
	}
	canonical := CanonicalName(name)

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil, &FetchError{Op: op, Name: name, Query: propQuery, Err: ErrClosed}
	}
	effective := property.Merge(caller, c.defaults)
	key := cacheKey{op: op, name: canonical, props: effective.String()}
	if m, ok := c.cache[key]; ok {
		m.retain()
		c.mu.RUnlock()
		return m, nil
	}
	snapshot := make([]*Provider, len(c.providers))
	copy(snapshot, c.providers)
	// Hold a walk reference on every snapshotted provider before giving
	// up the lock: a concurrent Unload may drop the membership reference
	// mid-walk, and teardown must not run while the walk can still call
	// into the provider or bind a method to it.
	for _, p := range snapshot {
		p.ref()
	}
	c.mu.RUnlock()
	defer releaseSnapshot(snapshot)

	for _, p := range snapshot {
		records, noStore, err := p.queryOperation(op)
		if err != nil {
			// One provider's failure must not hide the others.
			continue
		}

		for _, rec := range records {
			if !aliasMatch(rec.Names, canonical) {
				continue
			}
			def, err := property.ParseDefinition(rec.Properties)
			if err != nil {
				// A record with an unparsable declaration is skipped.
				continue
			}
			def.SetDefault("provider", p.name)
			if !effective.Match(def) {
				continue
			}

			// First match wins. A mandatory dispatch gap fails the
			// fetch here rather than on first use.
			if missing := rec.Dispatch.Missing(MandatoryFuncs(op)...); len(missing) > 0 {
				return nil, &FetchError{
					Op: op, Name: name, Query: effective.String(),
					Err: fmt.Errorf("%w: provider %q record %q missing function ids %v",
						ErrIncompleteDispatch, p.name, rec.Names, missing),
				}
			}

			m := newMethod(op, canonical, p, rec, def)
			if noStore {
				return m, nil
			}
			return c.cacheInsert(key, m, p), nil
		}
	}

	return nil, &FetchError{Op: op, Name: name, Query: effective.String(), Err: ErrNotFound}
}

// cacheInsert stores a freshly built method under key and returns the
// handle to hand to the caller. If a concurrent fetch already inserted an
// equivalent method, the existing shared handle wins and the new one is
// released. Methods are never cached into a context that closed, or for a
// provider that was unloaded, between the provider walk and the insert.
func (c *Context) cacheInsert(key cacheKey, m *Method, p *Provider) *Method {
	c.mu.Lock()
	if c.closed || !c.memberLocked(p) {
		c.mu.Unlock()
		return m
	}
	if existing, ok := c.cache[key]; ok {
		existing.retain()
		c.mu.Unlock()
		m.Release()
		return existing
	}
	c.cache[key] = m.retain() // the cache holds its own reference
	c.mu.Unlock()
	return m
}
