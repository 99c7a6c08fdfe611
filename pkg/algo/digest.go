package algo

import (
	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// Digest is a streaming digest bound to a fetched implementation.
// It implements io.Writer. Not safe for concurrent use.
type Digest struct {
	m      *registry.Method
	newCtx dispatch.DigestNewCtxFunc
	update dispatch.DigestUpdateFunc
	final  dispatch.DigestFinalFunc
	state  any
}

// NewDigest fetches a digest implementation by name and property query
// from the context and initializes a streaming state.
func NewDigest(ctx *registry.Context, name, properties string) (*Digest, error) {
	m, err := ctx.Fetch(registry.OpDigest, name, properties)
	if err != nil {
		return nil, err
	}

	d := &Digest{m: m}
	if d.newCtx, err = resolve[dispatch.DigestNewCtxFunc](m, dispatch.DigestNewCtx); err != nil {
		m.Release()
		return nil, err
	}
	if d.update, err = resolve[dispatch.DigestUpdateFunc](m, dispatch.DigestUpdate); err != nil {
		m.Release()
		return nil, err
	}
	if d.final, err = resolve[dispatch.DigestFinalFunc](m, dispatch.DigestFinal); err != nil {
		m.Release()
		return nil, err
	}
	d.state = d.newCtx()
	return d, nil
}

// Write absorbs data into the digest state.
func (d *Digest) Write(p []byte) (int, error) {
	if err := d.update(d.state, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sum finalizes the digest, returns the result, and resets the state so
// the Digest can be reused.
func (d *Digest) Sum() ([]byte, error) {
	out, err := d.final(d.state)
	if err != nil {
		return nil, err
	}
	d.state = d.newCtx()
	return out, nil
}

// Size returns the digest output length in bytes, or 0 if the provider
// does not declare it.
func (d *Digest) Size() int {
	if fn, ok := optional[dispatch.DigestSizeFunc](d.m, dispatch.DigestSize); ok {
		return fn()
	}
	return 0
}

// BlockSize returns the digest block size in bytes, or 0 if the provider
// does not declare it.
func (d *Digest) BlockSize() int {
	if fn, ok := optional[dispatch.DigestBlockSizeFunc](d.m, dispatch.DigestBlockSize); ok {
		return fn()
	}
	return 0
}

// Provider returns the identifier of the provider that won the fetch.
func (d *Digest) Provider() string { return d.m.Provider() }

// Close releases the underlying method handle.
func (d *Digest) Close() { d.m.Release() }
