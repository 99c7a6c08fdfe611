package algbuild

import (
	"fmt"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/sign"

	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// KEMScheme builds a key-exchange record over a circl kem.Scheme. Keys
// and ciphertexts cross the dispatch boundary in the scheme's binary
// encoding.
func KEMScheme(names, properties string, scheme kem.Scheme) registry.Algorithm {
	return registry.Algorithm{
		Names:      names,
		Properties: properties,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.KEMGenerate, Fn: dispatch.KEMGenerateFunc(func() ([]byte, []byte, error) {
				pk, sk, err := scheme.GenerateKeyPair()
				if err != nil {
					return nil, nil, err
				}
				pub, err := pk.MarshalBinary()
				if err != nil {
					return nil, nil, err
				}
				priv, err := sk.MarshalBinary()
				if err != nil {
					return nil, nil, err
				}
				return pub, priv, nil
			})},
			dispatch.Entry{ID: dispatch.KEMEncapsulate, Fn: dispatch.KEMEncapsulateFunc(func(pub []byte) ([]byte, []byte, error) {
				pk, err := scheme.UnmarshalBinaryPublicKey(pub)
				if err != nil {
					return nil, nil, fmt.Errorf("invalid public key: %w", err)
				}
				return scheme.Encapsulate(pk)
			})},
			dispatch.Entry{ID: dispatch.KEMDecapsulate, Fn: dispatch.KEMDecapsulateFunc(func(priv, ciphertext []byte) ([]byte, error) {
				sk, err := scheme.UnmarshalBinaryPrivateKey(priv)
				if err != nil {
					return nil, fmt.Errorf("invalid private key: %w", err)
				}
				return scheme.Decapsulate(sk, ciphertext)
			})},
		),
	}
}

// SignScheme builds a signature record over a circl sign.Scheme.
func SignScheme(names, properties string, scheme sign.Scheme) registry.Algorithm {
	return registry.Algorithm{
		Names:      names,
		Properties: properties,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.SignatureKeyGen, Fn: dispatch.SignatureKeyGenFunc(func() ([]byte, []byte, error) {
				pk, sk, err := scheme.GenerateKey()
				if err != nil {
					return nil, nil, err
				}
				pub, err := pk.MarshalBinary()
				if err != nil {
					return nil, nil, err
				}
				priv, err := sk.MarshalBinary()
				if err != nil {
					return nil, nil, err
				}
				return pub, priv, nil
			})},
			dispatch.Entry{ID: dispatch.SignatureSign, Fn: dispatch.SignatureSignFunc(func(priv, message []byte) ([]byte, error) {
				sk, err := scheme.UnmarshalBinaryPrivateKey(priv)
				if err != nil {
					return nil, fmt.Errorf("invalid private key: %w", err)
				}
				return scheme.Sign(sk, message, nil), nil
			})},
			dispatch.Entry{ID: dispatch.SignatureVerify, Fn: dispatch.SignatureVerifyFunc(func(pub, message, signature []byte) error {
				pk, err := scheme.UnmarshalBinaryPublicKey(pub)
				if err != nil {
					return fmt.Errorf("invalid public key: %w", err)
				}
				if !scheme.Verify(pk, message, signature, nil) {
					return fmt.Errorf("signature verification failed")
				}
				return nil
			})},
		),
	}
}
