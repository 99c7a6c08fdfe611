// Package algbuild provides record builders shared by the built-in
// providers: it turns ordinary Go primitives (hash constructors, AEAD
// constructors, MAC constructors) into algorithm records carrying fully
// populated dispatch tables.
package algbuild

import (
	"crypto/cipher"
	"crypto/hmac"
	"fmt"
	"hash"

	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// Digest builds a digest record over a hash.Hash constructor.
func Digest(names, properties string, newHash func() hash.Hash) registry.Algorithm {
	probe := newHash()
	size, blockSize := probe.Size(), probe.BlockSize()

	return registry.Algorithm{
		Names:      names,
		Properties: properties,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.DigestNewCtx, Fn: dispatch.DigestNewCtxFunc(func() any {
				return newHash()
			})},
			dispatch.Entry{ID: dispatch.DigestUpdate, Fn: dispatch.DigestUpdateFunc(func(ctx any, p []byte) error {
				ctx.(hash.Hash).Write(p)
				return nil
			})},
			dispatch.Entry{ID: dispatch.DigestFinal, Fn: dispatch.DigestFinalFunc(func(ctx any) ([]byte, error) {
				return ctx.(hash.Hash).Sum(nil), nil
			})},
			dispatch.Entry{ID: dispatch.DigestSize, Fn: dispatch.DigestSizeFunc(func() int {
				return size
			})},
			dispatch.Entry{ID: dispatch.DigestBlockSize, Fn: dispatch.DigestBlockSizeFunc(func() int {
				return blockSize
			})},
		),
	}
}

// AEAD builds an authenticated cipher record over a cipher.AEAD
// constructor taking the key.
func AEAD(names, properties string, keySize int, newAEAD func(key []byte) (cipher.AEAD, error)) registry.Algorithm {
	return registry.Algorithm{
		Names:      names,
		Properties: properties,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.CipherNewCtx, Fn: dispatch.CipherNewCtxFunc(func(key []byte) (any, error) {
				if len(key) != keySize {
					return nil, fmt.Errorf("invalid key length %d, want %d", len(key), keySize)
				}
				return newAEAD(key)
			})},
			dispatch.Entry{ID: dispatch.CipherSeal, Fn: dispatch.CipherSealFunc(func(ctx any, nonce, plaintext, additional []byte) ([]byte, error) {
				aead := ctx.(cipher.AEAD)
				if len(nonce) != aead.NonceSize() {
					return nil, fmt.Errorf("invalid nonce length %d, want %d", len(nonce), aead.NonceSize())
				}
				return aead.Seal(nil, nonce, plaintext, additional), nil
			})},
			dispatch.Entry{ID: dispatch.CipherOpen, Fn: dispatch.CipherOpenFunc(func(ctx any, nonce, ciphertext, additional []byte) ([]byte, error) {
				aead := ctx.(cipher.AEAD)
				if len(nonce) != aead.NonceSize() {
					return nil, fmt.Errorf("invalid nonce length %d, want %d", len(nonce), aead.NonceSize())
				}
				return aead.Open(nil, nonce, ciphertext, additional)
			})},
			dispatch.Entry{ID: dispatch.CipherKeySize, Fn: dispatch.CipherKeySizeFunc(func() int {
				return keySize
			})},
			dispatch.Entry{ID: dispatch.CipherNonceSize, Fn: dispatch.CipherNonceSizeFunc(func() int {
				probe, err := newAEAD(make([]byte, keySize))
				if err != nil {
					return 0
				}
				return probe.NonceSize()
			})},
			dispatch.Entry{ID: dispatch.CipherOverhead, Fn: dispatch.CipherOverheadFunc(func() int {
				probe, err := newAEAD(make([]byte, keySize))
				if err != nil {
					return 0
				}
				return probe.Overhead()
			})},
		),
	}
}

// HMAC builds a MAC record computing HMAC over the given hash.
func HMAC(names, properties string, newHash func() hash.Hash) registry.Algorithm {
	size := newHash().Size()

	return registry.Algorithm{
		Names:      names,
		Properties: properties,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.MACNewCtx, Fn: dispatch.MACNewCtxFunc(func(key []byte) (any, error) {
				if len(key) == 0 {
					return nil, fmt.Errorf("empty MAC key")
				}
				return hmac.New(newHash, key), nil
			})},
			dispatch.Entry{ID: dispatch.MACUpdate, Fn: dispatch.MACUpdateFunc(func(ctx any, p []byte) error {
				ctx.(hash.Hash).Write(p)
				return nil
			})},
			dispatch.Entry{ID: dispatch.MACFinal, Fn: dispatch.MACFinalFunc(func(ctx any) ([]byte, error) {
				return ctx.(hash.Hash).Sum(nil), nil
			})},
			dispatch.Entry{ID: dispatch.MACSize, Fn: dispatch.MACSizeFunc(func() int {
				return size
			})},
		),
	}
}

// KDF builds a KDF record from a derive function.
func KDF(names, properties string, derive dispatch.KDFDeriveFunc) registry.Algorithm {
	return registry.Algorithm{
		Names:      names,
		Properties: properties,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.KDFDerive, Fn: derive},
		),
	}
}

// BytesParam extracts a []byte KDF parameter; absent keys yield nil.
func BytesParam(params map[string]any, key string) []byte {
	if v, ok := params[key].([]byte); ok {
		return v
	}
	return nil
}

// IntParam extracts an int KDF parameter, falling back to def.
func IntParam(params map[string]any, key string, def int) int {
	if v, ok := params[key].(int); ok {
		return v
	}
	return def
}
