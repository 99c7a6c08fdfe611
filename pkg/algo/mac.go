package algo

import (
	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// MAC is a streaming message authentication code bound to a fetched
// implementation and a key. Implements io.Writer. Not safe for
// concurrent use.
type MAC struct {
	m      *registry.Method
	newCtx dispatch.MACNewCtxFunc
	update dispatch.MACUpdateFunc
	final  dispatch.MACFinalFunc
	key    []byte
	state  any
}

// NewMAC fetches a MAC implementation and binds it to key.
func NewMAC(ctx *registry.Context, name, properties string, key []byte) (*MAC, error) {
	m, err := ctx.Fetch(registry.OpMAC, name, properties)
	if err != nil {
		return nil, err
	}

	mac := &MAC{m: m, key: key}
	if mac.newCtx, err = resolve[dispatch.MACNewCtxFunc](m, dispatch.MACNewCtx); err != nil {
		m.Release()
		return nil, err
	}
	if mac.update, err = resolve[dispatch.MACUpdateFunc](m, dispatch.MACUpdate); err != nil {
		m.Release()
		return nil, err
	}
	if mac.final, err = resolve[dispatch.MACFinalFunc](m, dispatch.MACFinal); err != nil {
		m.Release()
		return nil, err
	}
	if mac.state, err = mac.newCtx(key); err != nil {
		m.Release()
		return nil, err
	}
	return mac, nil
}

// Write absorbs data into the MAC state.
func (m *MAC) Write(p []byte) (int, error) {
	if err := m.update(m.state, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sum finalizes the tag and resets the state for reuse with the same key.
func (m *MAC) Sum() ([]byte, error) {
	out, err := m.final(m.state)
	if err != nil {
		return nil, err
	}
	if m.state, err = m.newCtx(m.key); err != nil {
		return nil, err
	}
	return out, nil
}

// Size returns the tag length in bytes, or 0 if not declared.
func (m *MAC) Size() int {
	if fn, ok := optional[dispatch.MACSizeFunc](m.m, dispatch.MACSize); ok {
		return fn()
	}
	return 0
}

// Provider returns the identifier of the provider that won the fetch.
func (m *MAC) Provider() string { return m.m.Provider() }

// Close releases the underlying method handle.
func (m *MAC) Close() { m.m.Release() }
