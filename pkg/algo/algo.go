// Package algo provides typed front-ends over fetched algorithm
// implementations: digests, AEAD ciphers, MACs, KDFs, KEMs, signatures
// and serializers. Each front-end fetches a method from a library
// context, resolves the operation's dispatch functions eagerly, and
// exposes Go-natural methods over the provider's implementation.
//
// This is the calling API layer of the registry design: any implicit
// default-algorithm policy belongs here, never in the fetch engine.
package algo

import (
	"fmt"

	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// resolve extracts the dispatch function for id from a fetched method and
// asserts it to its documented signature type. A type mismatch means the
// provider published a broken table; that surfaces as
// registry.ErrIncompleteDispatch, like a missing mandatory id.
func resolve[T any](m *registry.Method, id dispatch.FuncID) (T, error) {
	var zero T
	fn, ok := m.Func(id)
	if !ok {
		return zero, fmt.Errorf("%w: %s %q from provider %q: no function id %d",
			registry.ErrIncompleteDispatch, m.Operation(), m.Name(), m.Provider(), id)
	}
	typed, ok := fn.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s %q from provider %q: function id %d has type %T",
			registry.ErrIncompleteDispatch, m.Operation(), m.Name(), m.Provider(), id, fn)
	}
	return typed, nil
}

// optional extracts an optional dispatch function; absence is not an error.
func optional[T any](m *registry.Method, id dispatch.FuncID) (T, bool) {
	var zero T
	fn, ok := m.Func(id)
	if !ok {
		return zero, false
	}
	typed, ok := fn.(T)
	return typed, ok
}
