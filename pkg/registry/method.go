package registry

import (
	"sync/atomic"

	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/property"
)

// Method is a fetched implementation handle: the matched record's dispatch
// table bound to its owning provider's opaque context. Methods are
// reference-counted and shared between the context's cache and every
// caller holding a fetched handle. A held Method stays valid even if it is
// evicted from the cache or its provider is unloaded; the provider's
// resources outlive every handle referencing them.
type Method struct {
	op    Operation
	name  string // canonical identifier the fetch resolved
	prov  *Provider
	table dispatch.Table
	props *property.Properties

	refs atomic.Int64
}

// newMethod builds a method holding one caller reference and one provider
// reference.
func newMethod(op Operation, name string, prov *Provider, rec Algorithm, props *property.Properties) *Method {
	m := &Method{
		op:    op,
		name:  name,
		prov:  prov,
		table: rec.Dispatch,
		props: props,
	}
	m.refs.Store(1)
	prov.ref()
	return m
}

// retain takes an additional shared reference and returns the method.
func (m *Method) retain() *Method {
	m.refs.Add(1)
	return m
}

// Release drops the caller's reference. When the last reference is
// released the method lets go of its provider, which may in turn run the
// provider's teardown if the provider was already unloaded. Calling any
// method on a released handle is a bug.
func (m *Method) Release() {
	if m.refs.Add(-1) == 0 {
		m.prov.unref()
	}
}

// Operation returns the operation the method was fetched for.
func (m *Method) Operation() Operation { return m.op }

// Name returns the canonical identifier the fetch resolved.
func (m *Method) Name() string { return m.name }

// Provider returns the owning provider's identifier.
func (m *Method) Provider() string { return m.prov.name }

// ProviderContext returns the owning provider's opaque context. It is
// passed back into dispatch functions that require it.
func (m *Method) ProviderContext() any { return m.prov.provCtx }

// Table returns the record's dispatch table.
func (m *Method) Table() dispatch.Table { return m.table }

// Func returns the dispatch function registered for id.
func (m *Method) Func(id dispatch.FuncID) (any, bool) {
	return m.table.Get(id)
}

// Properties returns the record's declared property definition, including
// the implicit provider name key.
func (m *Method) Properties() *property.Properties { return m.props }
