package algo

import (
	"fmt"

	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// Signature is a signature scheme bound to a fetched implementation.
// Keys cross the boundary in their algorithm-defined byte encoding.
type Signature struct {
	m      *registry.Method
	keygen dispatch.SignatureKeyGenFunc // optional
	sign   dispatch.SignatureSignFunc
	verify dispatch.SignatureVerifyFunc
}

// NewSignature fetches a signature implementation by name and property
// query.
func NewSignature(ctx *registry.Context, name, properties string) (*Signature, error) {
	m, err := ctx.Fetch(registry.OpSignature, name, properties)
	if err != nil {
		return nil, err
	}

	s := &Signature{m: m}
	if s.sign, err = resolve[dispatch.SignatureSignFunc](m, dispatch.SignatureSign); err != nil {
		m.Release()
		return nil, err
	}
	if s.verify, err = resolve[dispatch.SignatureVerifyFunc](m, dispatch.SignatureVerify); err != nil {
		m.Release()
		return nil, err
	}
	s.keygen, _ = optional[dispatch.SignatureKeyGenFunc](m, dispatch.SignatureKeyGen)
	return s, nil
}

// GenerateKeyPair generates an encoded key pair, if supported.
func (s *Signature) GenerateKeyPair() (pub, priv []byte, err error) {
	if s.keygen == nil {
		return nil, nil, fmt.Errorf("signature %q from provider %q does not support key generation",
			s.m.Name(), s.m.Provider())
	}
	return s.keygen()
}

// Sign signs message with the encoded private key.
func (s *Signature) Sign(priv, message []byte) ([]byte, error) {
	return s.sign(priv, message)
}

// Verify verifies signature over message with the encoded public key.
func (s *Signature) Verify(pub, message, signature []byte) error {
	return s.verify(pub, message, signature)
}

// Provider returns the identifier of the provider that won the fetch.
func (s *Signature) Provider() string { return s.m.Provider() }

// Close releases the underlying method handle.
func (s *Signature) Close() { s.m.Release() }
