package legacyprov

import (
	"bytes"
	"crypto/cipher"
	"crypto/des"
	"crypto/rc4"
	"fmt"

	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// Legacy ciphers are not AEADs. RC4 ignores the nonce; 3DES-CBC uses the
// nonce as its IV. Both ignore the additional-data argument and provide
// no authentication.
var cipherAlgorithms = []registry.Algorithm{
	rc4Cipher(),
	tripleDESCipher(),
}

func rc4Cipher() registry.Algorithm {
	return registry.Algorithm{
		Names:      "RC4|ARCFOUR",
		Properties: props,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.CipherNewCtx, Fn: dispatch.CipherNewCtxFunc(func(key []byte) (any, error) {
				if _, err := rc4.NewCipher(key); err != nil {
					return nil, err
				}
				// RC4 keystream state is consumed by use; keep the key
				// and build a fresh cipher per call.
				return append([]byte(nil), key...), nil
			})},
			dispatch.Entry{ID: dispatch.CipherSeal, Fn: dispatch.CipherSealFunc(rc4Apply)},
			dispatch.Entry{ID: dispatch.CipherOpen, Fn: dispatch.CipherOpenFunc(rc4Apply)},
		),
	}
}

// rc4Apply encrypts and decrypts alike: RC4 is a symmetric XOR stream.
func rc4Apply(ctx any, _, data, _ []byte) ([]byte, error) {
	c, err := rc4.NewCipher(ctx.([]byte))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	c.XORKeyStream(out, data)
	return out, nil
}

func tripleDESCipher() registry.Algorithm {
	return registry.Algorithm{
		Names:      "DES-EDE3-CBC|3DES-CBC|DES3",
		Properties: props,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.CipherNewCtx, Fn: dispatch.CipherNewCtxFunc(func(key []byte) (any, error) {
				return des.NewTripleDESCipher(key)
			})},
			dispatch.Entry{ID: dispatch.CipherSeal, Fn: dispatch.CipherSealFunc(func(ctx any, nonce, plaintext, _ []byte) ([]byte, error) {
				block := ctx.(cipher.Block)
				if len(nonce) != block.BlockSize() {
					return nil, fmt.Errorf("invalid IV length %d, want %d", len(nonce), block.BlockSize())
				}
				padded := padPKCS7(plaintext, block.BlockSize())
				out := make([]byte, len(padded))
				cipher.NewCBCEncrypter(block, nonce).CryptBlocks(out, padded)
				return out, nil
			})},
			dispatch.Entry{ID: dispatch.CipherOpen, Fn: dispatch.CipherOpenFunc(func(ctx any, nonce, ciphertext, _ []byte) ([]byte, error) {
				block := ctx.(cipher.Block)
				if len(nonce) != block.BlockSize() {
					return nil, fmt.Errorf("invalid IV length %d, want %d", len(nonce), block.BlockSize())
				}
				if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
					return nil, fmt.Errorf("invalid ciphertext length %d", len(ciphertext))
				}
				out := make([]byte, len(ciphertext))
				cipher.NewCBCDecrypter(block, nonce).CryptBlocks(out, ciphertext)
				return unpadPKCS7(out, block.BlockSize())
			})},
			dispatch.Entry{ID: dispatch.CipherKeySize, Fn: dispatch.CipherKeySizeFunc(func() int { return 24 })},
			dispatch.Entry{ID: dispatch.CipherNonceSize, Fn: dispatch.CipherNonceSizeFunc(func() int { return des.BlockSize })},
		),
	}
}

func padPKCS7(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(append([]byte(nil), data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
