package algo

import (
	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// Cipher is an authenticated cipher bound to a fetched implementation
// and a key. Safe for concurrent use if the provider's state is.
type Cipher struct {
	m     *registry.Method
	seal  dispatch.CipherSealFunc
	open  dispatch.CipherOpenFunc
	state any
}

// NewCipher fetches a cipher implementation and binds it to key.
func NewCipher(ctx *registry.Context, name, properties string, key []byte) (*Cipher, error) {
	m, err := ctx.Fetch(registry.OpCipher, name, properties)
	if err != nil {
		return nil, err
	}

	newCtx, err := resolve[dispatch.CipherNewCtxFunc](m, dispatch.CipherNewCtx)
	if err != nil {
		m.Release()
		return nil, err
	}
	c := &Cipher{m: m}
	if c.seal, err = resolve[dispatch.CipherSealFunc](m, dispatch.CipherSeal); err != nil {
		m.Release()
		return nil, err
	}
	if c.open, err = resolve[dispatch.CipherOpenFunc](m, dispatch.CipherOpen); err != nil {
		m.Release()
		return nil, err
	}
	if c.state, err = newCtx(key); err != nil {
		m.Release()
		return nil, err
	}
	return c, nil
}

// Seal encrypts and authenticates plaintext, authenticating additional
// alongside it.
func (c *Cipher) Seal(nonce, plaintext, additional []byte) ([]byte, error) {
	return c.seal(c.state, nonce, plaintext, additional)
}

// Open decrypts and verifies ciphertext.
func (c *Cipher) Open(nonce, ciphertext, additional []byte) ([]byte, error) {
	return c.open(c.state, nonce, ciphertext, additional)
}

// KeySize returns the key length in bytes, or 0 if not declared.
func (c *Cipher) KeySize() int {
	if fn, ok := optional[dispatch.CipherKeySizeFunc](c.m, dispatch.CipherKeySize); ok {
		return fn()
	}
	return 0
}

// NonceSize returns the nonce length in bytes, or 0 if not declared.
func (c *Cipher) NonceSize() int {
	if fn, ok := optional[dispatch.CipherNonceSizeFunc](c.m, dispatch.CipherNonceSize); ok {
		return fn()
	}
	return 0
}

// Provider returns the identifier of the provider that won the fetch.
func (c *Cipher) Provider() string { return c.m.Provider() }

// Close releases the underlying method handle.
func (c *Cipher) Close() { c.m.Release() }
