package defaultprov

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

var signatureAlgorithms = []registry.Algorithm{
	ed25519Signature(),
}

func ed25519Signature() registry.Algorithm {
	return registry.Algorithm{
		Names:      "ED25519",
		Properties: props,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.SignatureKeyGen, Fn: dispatch.SignatureKeyGenFunc(func() ([]byte, []byte, error) {
				pub, priv, err := ed25519.GenerateKey(rand.Reader)
				if err != nil {
					return nil, nil, err
				}
				return pub, priv, nil
			})},
			dispatch.Entry{ID: dispatch.SignatureSign, Fn: dispatch.SignatureSignFunc(func(priv, message []byte) ([]byte, error) {
				if len(priv) != ed25519.PrivateKeySize {
					return nil, fmt.Errorf("invalid private key length %d", len(priv))
				}
				return ed25519.Sign(ed25519.PrivateKey(priv), message), nil
			})},
			dispatch.Entry{ID: dispatch.SignatureVerify, Fn: dispatch.SignatureVerifyFunc(func(pub, message, signature []byte) error {
				if len(pub) != ed25519.PublicKeySize {
					return fmt.Errorf("invalid public key length %d", len(pub))
				}
				if !ed25519.Verify(ed25519.PublicKey(pub), message, signature) {
					return fmt.Errorf("signature verification failed")
				}
				return nil
			})},
		),
	}
}
