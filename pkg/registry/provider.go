package registry

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/remiblancher/qprov/pkg/dispatch"
)

// Version is the core library version reported to providers through the
// core dispatch table.
const Version = "1.0.0"

// Algorithm is one record a provider returns for an operation query: a
// name field that may carry pipe-separated aliases, the implementation's
// declared property definition, and the operation's dispatch table.
type Algorithm struct {
	Names      string
	Properties string
	Dispatch   dispatch.Table
}

// Aliases returns the record's expanded canonical alias set.
func (a Algorithm) Aliases() []string {
	return expandAliases(a.Names)
}

// CoreHandle is the handle the registry passes to a provider's init entry
// point. It identifies the provider being loaded and carries any
// load-time parameters from configuration.
type CoreHandle struct {
	// Name is the identifier the provider is being loaded under.
	Name string

	// Params carries provider-specific load parameters (module paths,
	// token labels, ...). May be nil.
	Params map[string]string

	ctx *Context
}

// Context returns the library context the provider is being loaded into.
func (h *CoreHandle) Context() *Context { return h.ctx }

// InitFunc is the provider initialization entry point. It receives the
// core handle and the library's core dispatch table, and returns the
// provider's base dispatch table and its opaque provider context. The
// opaque context is never inspected by the registry; it is threaded back
// into every call into the provider and released via the provider's
// teardown function on unload.
//
// A dynamically loaded module exports this as a symbol named
// "ProviderInit"; built-in providers register it via RegisterBuiltin.
type InitFunc func(handle *CoreHandle, core dispatch.Table) (dispatch.Table, any, error)

// Typed signatures for the provider base dispatch table.
type (
	// TeardownFunc releases the provider's opaque context.
	TeardownFunc func(provCtx any)

	// QueryOperationFunc lists the algorithm records the provider offers
	// for one operation. The noStore result indicates the returned
	// records may not be cached by the registry for this query.
	QueryOperationFunc func(provCtx any, op Operation) (records []Algorithm, noStore bool, err error)

	// GetParamsFunc reports descriptive provider parameters.
	GetParamsFunc func(provCtx any) map[string]string
)

// Provider is one loaded implementation unit. A Provider belongs to
// exactly one Context. It carries its own reference count, separate from
// the context's membership reference, so "unloaded but still referenced
// by outstanding method handles" is a representable state: teardown runs
// only when the last reference drops.
type Provider struct {
	name     string
	provCtx  any
	teardown TeardownFunc
	query    QueryOperationFunc
	params   GetParamsFunc

	refs atomic.Int64
}

// newProvider runs a provider's init entry point and resolves its base
// dispatch table. The returned provider holds one reference (the
// registry's membership reference).
func newProvider(ctx *Context, name string, params map[string]string, init InitFunc) (*Provider, error) {
	handle := &CoreHandle{Name: name, Params: params, ctx: ctx}
	core := dispatch.New(
		dispatch.Entry{ID: dispatch.CoreVersion, Fn: dispatch.CoreVersionFunc(func() string {
			return Version
		})},
		dispatch.Entry{ID: dispatch.CoreDefaultProperties, Fn: dispatch.CoreDefaultPropertiesFunc(func() string {
			return ctx.DefaultProperties()
		})},
	)

	table, provCtx, err := init(handle, core)
	if err != nil {
		return nil, fmt.Errorf("%w: provider %q: %v", ErrLoad, name, err)
	}

	p := &Provider{name: name, provCtx: provCtx}

	fn, ok := table.Get(dispatch.ProvQueryOperation)
	if !ok {
		return nil, fmt.Errorf("%w: provider %q: no query-operation function", ErrLoad, name)
	}
	p.query, ok = fn.(QueryOperationFunc)
	if !ok {
		return nil, fmt.Errorf("%w: provider %q: query-operation has wrong type %T", ErrLoad, name, fn)
	}

	if fn, ok := table.Get(dispatch.ProvTeardown); ok {
		if p.teardown, ok = fn.(TeardownFunc); !ok {
			return nil, fmt.Errorf("%w: provider %q: teardown has wrong type %T", ErrLoad, name, fn)
		}
	}
	if fn, ok := table.Get(dispatch.ProvGetParams); ok {
		if p.params, ok = fn.(GetParamsFunc); !ok {
			return nil, fmt.Errorf("%w: provider %q: get-params has wrong type %T", ErrLoad, name, fn)
		}
	}

	p.refs.Store(1)
	return p, nil
}

// Name returns the identifier the provider was loaded under.
func (p *Provider) Name() string { return p.name }

// Params returns the provider's descriptive parameters, or nil if the
// provider does not publish any.
func (p *Provider) Params() map[string]string {
	if p.params == nil {
		return nil
	}
	return p.params(p.provCtx)
}

// queryOperation delegates to the provider's query-operation function.
func (p *Provider) queryOperation(op Operation) ([]Algorithm, bool, error) {
	return p.query(p.provCtx, op)
}

// ref takes an additional reference on the provider.
func (p *Provider) ref() { p.refs.Add(1) }

// unref drops a reference. The provider's teardown function runs when the
// last reference is released.
func (p *Provider) unref() {
	if p.refs.Add(-1) == 0 && p.teardown != nil {
		p.teardown(p.provCtx)
	}
}

// Built-in provider registration. Built-ins share the dynamic providers'
// representation: the same init entry point, resolved at activation time.
var builtins = struct {
	mu sync.RWMutex
	m  map[string]InitFunc
}{m: make(map[string]InitFunc)}

// RegisterBuiltin registers a built-in provider init entry point under a
// name. Built-in provider packages call this from their init function;
// activating the provider in a context is a separate, explicit step
// (Context.LoadBuiltin). Re-registering a name replaces the previous
// entry point.
func RegisterBuiltin(name string, init InitFunc) {
	builtins.mu.Lock()
	defer builtins.mu.Unlock()
	builtins.m[name] = init
}

// builtinInit looks up a registered built-in init entry point.
func builtinInit(name string) (InitFunc, bool) {
	builtins.mu.RLock()
	defer builtins.mu.RUnlock()
	init, ok := builtins.m[name]
	return init, ok
}

// Builtins returns the names of all registered built-in providers.
func Builtins() []string {
	builtins.mu.RLock()
	defer builtins.mu.RUnlock()
	names := make([]string, 0, len(builtins.m))
	for name := range builtins.m {
		names = append(names, name)
	}
	return names
}
