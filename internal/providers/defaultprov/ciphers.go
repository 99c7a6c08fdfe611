package defaultprov

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/remiblancher/qprov/internal/providers/algbuild"
	"github.com/remiblancher/qprov/pkg/registry"
)

var cipherAlgorithms = []registry.Algorithm{
	algbuild.AEAD("AES-128-GCM|AES128GCM", props, 16, newAESGCM),
	algbuild.AEAD("AES-256-GCM|AES256GCM", props, 32, newAESGCM),
	algbuild.AEAD("CHACHA20-POLY1305|CHACHA20POLY1305", props, chacha20poly1305.KeySize, chacha20poly1305.New),
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
