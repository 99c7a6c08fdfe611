package defaultprov

import (
	"crypto/rand"
	"fmt"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	"golang.org/x/crypto/curve25519"

	"github.com/remiblancher/qprov/internal/providers/algbuild"
	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

var kemAlgorithms = []registry.Algorithm{
	algbuild.KEMScheme("ML-KEM-768|MLKEM768", props, mlkem768.Scheme()),
	x25519KEM(),
}

// x25519KEM models ephemeral X25519 Diffie-Hellman as a KEM: the
// ciphertext is the ephemeral public key, the shared secret is the raw
// X25519 output.
func x25519KEM() registry.Algorithm {
	return registry.Algorithm{
		Names:      "DHKEM-X25519|X25519-KEM",
		Properties: props,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.KEMGenerate, Fn: dispatch.KEMGenerateFunc(func() ([]byte, []byte, error) {
				priv := make([]byte, curve25519.ScalarSize)
				if _, err := rand.Read(priv); err != nil {
					return nil, nil, err
				}
				pub, err := curve25519.X25519(priv, curve25519.Basepoint)
				if err != nil {
					return nil, nil, err
				}
				return pub, priv, nil
			})},
			dispatch.Entry{ID: dispatch.KEMEncapsulate, Fn: dispatch.KEMEncapsulateFunc(func(pub []byte) ([]byte, []byte, error) {
				if len(pub) != curve25519.PointSize {
					return nil, nil, fmt.Errorf("invalid public key length %d", len(pub))
				}
				ephPriv := make([]byte, curve25519.ScalarSize)
				if _, err := rand.Read(ephPriv); err != nil {
					return nil, nil, err
				}
				ephPub, err := curve25519.X25519(ephPriv, curve25519.Basepoint)
				if err != nil {
					return nil, nil, err
				}
				shared, err := curve25519.X25519(ephPriv, pub)
				if err != nil {
					return nil, nil, err
				}
				return ephPub, shared, nil
			})},
			dispatch.Entry{ID: dispatch.KEMDecapsulate, Fn: dispatch.KEMDecapsulateFunc(func(priv, ciphertext []byte) ([]byte, error) {
				if len(priv) != curve25519.ScalarSize {
					return nil, fmt.Errorf("invalid private key length %d", len(priv))
				}
				return curve25519.X25519(priv, ciphertext)
			})},
		),
	}
}
