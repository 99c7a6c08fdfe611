package algo

import (
	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// KDF is a key derivation function bound to a fetched implementation.
type KDF struct {
	m      *registry.Method
	derive dispatch.KDFDeriveFunc
}

// NewKDF fetches a KDF implementation by name and property query.
func NewKDF(ctx *registry.Context, name, properties string) (*KDF, error) {
	m, err := ctx.Fetch(registry.OpKDF, name, properties)
	if err != nil {
		return nil, err
	}

	k := &KDF{m: m}
	if k.derive, err = resolve[dispatch.KDFDeriveFunc](m, dispatch.KDFDerive); err != nil {
		m.Release()
		return nil, err
	}
	return k, nil
}

// Derive produces length bytes of key material. Parameter keys are
// documented on dispatch.KDFDeriveFunc.
func (k *KDF) Derive(params map[string]any, length int) ([]byte, error) {
	return k.derive(params, length)
}

// Provider returns the identifier of the provider that won the fetch.
func (k *KDF) Provider() string { return k.m.Provider() }

// Close releases the underlying method handle.
func (k *KDF) Close() { k.m.Release() }
