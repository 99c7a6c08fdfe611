package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/remiblancher/qprov/pkg/property"
)

// Context is a library context: the unit of isolation for fetch
// operations. It owns an ordered set of loaded providers, a default
// property query applied as a per-key fallback to every fetch, and a
// method cache. All operations are safe for concurrent use.
type Context struct {
	mu        sync.RWMutex
	providers []*Provider
	defaults  *property.Query
	cache     map[cacheKey]*Method
	closed    bool
}

// cacheKey identifies one cache slot: operation, canonical identifier and
// the effective property query in canonical form.
type cacheKey struct {
	op    Operation
	name  string
	props string
}

// New creates an empty library context with no providers loaded and no
// default properties.
func New() *Context {
	return &Context{cache: make(map[cacheKey]*Method)}
}

// Process-wide default context, created lazily on first use. Callers that
// want isolation create their own contexts with New; the default instance
// is only the zero-argument convenience path over the same type.
var (
	defaultOnce sync.Once
	defaultCtx  *Context
)

// Default returns the process-wide default context, creating it on first
// use. It is torn down at most once, by an explicit Close.
func Default() *Context {
	defaultOnce.Do(func() { defaultCtx = New() })
	return defaultCtx
}

// LoadBuiltin activates a registered built-in provider in this context.
// params carries optional provider-specific load parameters and may be
// nil. A load failure never affects already-loaded providers.
func (c *Context) LoadBuiltin(name string, params map[string]string) error {
	init, ok := builtinInit(name)
	if !ok {
		return fmt.Errorf("%w: unknown built-in provider %q", ErrLoad, name)
	}
	return c.load(name, params, init)
}

// load runs init and registers the resulting provider. The init entry
// point runs outside the context lock: it executes third-party code and
// may call back into the context (e.g. to read default properties).
func (c *Context) load(name string, params map[string]string, init InitFunc) error {
	c.mu.RLock()
	closed, dup := c.closed, c.hasProviderLocked(name)
	c.mu.RUnlock()
	if closed {
		return fmt.Errorf("%w: load %q", ErrClosed, name)
	}
	if dup {
		return fmt.Errorf("%w: provider %q already loaded", ErrLoad, name)
	}

	p, err := newProvider(c, name, params, init)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		p.unref()
		return fmt.Errorf("%w: load %q", ErrClosed, name)
	}
	if c.hasProviderLocked(name) {
		c.mu.Unlock()
		p.unref()
		return fmt.Errorf("%w: provider %q already loaded", ErrLoad, name)
	}
	c.providers = append(c.providers, p)
	c.mu.Unlock()
	return nil
}

// hasProviderLocked reports whether a provider with the name is loaded.
// Caller holds c.mu.
func (c *Context) hasProviderLocked(name string) bool {
	for _, p := range c.providers {
		if p.name == name {
			return true
		}
	}
	return false
}

// snapshotProviders returns the ordered provider list with one walk
// reference held on each entry. The references keep a concurrently
// unloaded provider's teardown from running while a walk is still
// calling into it; the caller must hand the snapshot back to
// releaseSnapshot when the walk is done.
func (c *Context) snapshotProviders() []*Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make([]*Provider, len(c.providers))
	copy(snapshot, c.providers)
	for _, p := range snapshot {
		p.ref()
	}
	return snapshot
}

// releaseSnapshot drops the walk references taken by snapshotProviders.
// For a provider unloaded during the walk this may be the last reference
// and runs its teardown.
func releaseSnapshot(snapshot []*Provider) {
	for _, p := range snapshot {
		p.unref()
	}
}

// memberLocked reports whether prov itself (not merely a same-named
// provider) is still a member of the context. Caller holds c.mu.
func (c *Context) memberLocked(prov *Provider) bool {
	for _, p := range c.providers {
		if p == prov {
			return true
		}
	}
	return false
}

// Unload removes a provider from the context. Methods already fetched
// from it stay valid for their holders, but new fetches no longer see the
// provider and its cached methods are evicted. If handles are still
// outstanding the returned error wraps ErrInUse; the provider is
// unavailable regardless, and its resources are released when the last
// handle drops.
func (c *Context) Unload(name string) error {
	c.mu.Lock()
	var prov *Provider
	for i, p := range c.providers {
		if p.name == name {
			prov = p
			c.providers = append(c.providers[:i], c.providers[i+1:]...)
			break
		}
	}
	if prov == nil {
		c.mu.Unlock()
		return fmt.Errorf("unload: provider %q not loaded", name)
	}

	evicted := c.evictProviderLocked(prov)
	c.mu.Unlock()

	for _, m := range evicted {
		m.Release()
	}
	prov.unref() // registry membership reference

	if prov.refs.Load() > 0 {
		return fmt.Errorf("%w: provider %q", ErrInUse, name)
	}
	return nil
}

// evictProviderLocked removes every cached method owned by prov and
// returns them for release outside the lock. Caller holds c.mu.
func (c *Context) evictProviderLocked(prov *Provider) []*Method {
	var evicted []*Method
	for k, m := range c.cache {
		if m.prov == prov {
			delete(c.cache, k)
			evicted = append(evicted, m)
		}
	}
	return evicted
}

// SetDefaultProperties sets the context's default property query. Default
// clauses act as a fallback for keys a fetch caller did not specify. A
// malformed query surfaces as a *property.SyntaxError. The method cache
// is flushed: cached entries were keyed under the previous defaults.
func (c *Context) SetDefaultProperties(query string) error {
	q, err := property.Parse(query)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.defaults = q
	flushed := c.flushCacheLocked()
	c.mu.Unlock()

	for _, m := range flushed {
		m.Release()
	}
	return nil
}

// DefaultProperties returns the default property query in canonical form.
func (c *Context) DefaultProperties() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.defaults == nil {
		return ""
	}
	return c.defaults.String()
}

// flushCacheLocked empties the method cache and returns the removed
// methods for release outside the lock. Caller holds c.mu.
func (c *Context) flushCacheLocked() []*Method {
	flushed := make([]*Method, 0, len(c.cache))
	for k, m := range c.cache {
		delete(c.cache, k)
		flushed = append(flushed, m)
	}
	return flushed
}

// Close tears down the context: the cache is flushed and every provider
// is unloaded. Methods still held by callers stay valid until released.
// Close reports ErrInUse if any provider remains referenced. Subsequent
// operations on the context fail with ErrClosed.
func (c *Context) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	providers := c.providers
	c.providers = nil
	flushed := c.flushCacheLocked()
	c.mu.Unlock()

	for _, m := range flushed {
		m.Release()
	}

	var errs []error
	for _, p := range providers {
		p.unref()
		if p.refs.Load() > 0 {
			errs = append(errs, fmt.Errorf("%w: provider %q", ErrInUse, p.name))
		}
	}
	return errors.Join(errs...)
}

// ProviderInfo describes one loaded provider for listing tools.
type ProviderInfo struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
}

// Providers lists the loaded providers in registration order.
func (c *Context) Providers() []ProviderInfo {
	snapshot := c.snapshotProviders()
	defer releaseSnapshot(snapshot)

	out := make([]ProviderInfo, 0, len(snapshot))
	for _, p := range snapshot {
		out = append(out, ProviderInfo{Name: p.name, Params: p.Params()})
	}
	return out
}

// AlgorithmInfo describes one offered algorithm record for listing tools.
type AlgorithmInfo struct {
	Provider   string   `json:"provider"`
	Names      []string `json:"names"`
	Properties string   `json:"properties,omitempty"`
}

// Algorithms lists every record offered for an operation, walking
// providers in registration order. Providers whose query fails are
// skipped; a broken provider must not hide the others.
func (c *Context) Algorithms(op Operation) []AlgorithmInfo {
	snapshot := c.snapshotProviders()
	defer releaseSnapshot(snapshot)

	var out []AlgorithmInfo
	for _, p := range snapshot {
		records, _, err := p.queryOperation(op)
		if err != nil {
			continue
		}
		for _, rec := range records {
			out = append(out, AlgorithmInfo{
				Provider:   p.name,
				Names:      rec.Aliases(),
				Properties: rec.Properties,
			})
		}
	}
	return out
}
