package fipsprov

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/remiblancher/qprov/internal/providers/algbuild"
	"github.com/remiblancher/qprov/pkg/registry"
)

var cipherAlgorithms = []registry.Algorithm{
	algbuild.AEAD("AES-128-GCM|AES128GCM", props, 16, newAESGCM),
	algbuild.AEAD("AES-256-GCM|AES256GCM", props, 32, newAESGCM),
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

var kdfAlgorithms = []registry.Algorithm{
	algbuild.KDF("HKDF-SHA2-256|HKDF-SHA256|HKDF", props, deriveHKDF),
}

func deriveHKDF(params map[string]any, length int) ([]byte, error) {
	secret := algbuild.BytesParam(params, "secret")
	if len(secret) == 0 {
		return nil, fmt.Errorf("hkdf: missing secret")
	}
	salt := algbuild.BytesParam(params, "salt")
	info := algbuild.BytesParam(params, "info")

	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, info), out); err != nil {
		return nil, fmt.Errorf("hkdf: %w", err)
	}
	return out, nil
}
