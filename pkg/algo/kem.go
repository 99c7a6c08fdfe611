package algo

import (
	"fmt"

	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// KEM is a key encapsulation mechanism bound to a fetched implementation.
// Keys cross the boundary in their algorithm-defined byte encoding.
type KEM struct {
	m      *registry.Method
	keygen dispatch.KEMGenerateFunc // optional
	encap  dispatch.KEMEncapsulateFunc
	decap  dispatch.KEMDecapsulateFunc
}

// NewKEM fetches a key-exchange implementation by name and property query.
func NewKEM(ctx *registry.Context, name, properties string) (*KEM, error) {
	m, err := ctx.Fetch(registry.OpKeyExch, name, properties)
	if err != nil {
		return nil, err
	}

	k := &KEM{m: m}
	if k.encap, err = resolve[dispatch.KEMEncapsulateFunc](m, dispatch.KEMEncapsulate); err != nil {
		m.Release()
		return nil, err
	}
	if k.decap, err = resolve[dispatch.KEMDecapsulateFunc](m, dispatch.KEMDecapsulate); err != nil {
		m.Release()
		return nil, err
	}
	k.keygen, _ = optional[dispatch.KEMGenerateFunc](m, dispatch.KEMGenerate)
	return k, nil
}

// GenerateKeyPair generates an encoded key pair, if the implementation
// supports key generation.
func (k *KEM) GenerateKeyPair() (pub, priv []byte, err error) {
	if k.keygen == nil {
		return nil, nil, fmt.Errorf("keyexch %q from provider %q does not support key generation",
			k.m.Name(), k.m.Provider())
	}
	return k.keygen()
}

// Encapsulate generates a shared secret and its ciphertext for pub.
func (k *KEM) Encapsulate(pub []byte) (ciphertext, shared []byte, err error) {
	return k.encap(pub)
}

// Decapsulate recovers the shared secret from a ciphertext.
func (k *KEM) Decapsulate(priv, ciphertext []byte) ([]byte, error) {
	return k.decap(priv, ciphertext)
}

// Provider returns the identifier of the provider that won the fetch.
func (k *KEM) Provider() string { return k.m.Provider() }

// Close releases the underlying method handle.
func (k *KEM) Close() { k.m.Release() }
