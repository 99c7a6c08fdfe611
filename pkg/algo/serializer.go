package algo

import (
	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// Serializer is an encoding scheme bound to a fetched implementation.
type Serializer struct {
	m      *registry.Method
	encode dispatch.SerializerEncodeFunc
	decode dispatch.SerializerDecodeFunc
}

// NewSerializer fetches a serializer implementation by name and property
// query.
func NewSerializer(ctx *registry.Context, name, properties string) (*Serializer, error) {
	m, err := ctx.Fetch(registry.OpSerializer, name, properties)
	if err != nil {
		return nil, err
	}

	s := &Serializer{m: m}
	if s.encode, err = resolve[dispatch.SerializerEncodeFunc](m, dispatch.SerializerEncode); err != nil {
		m.Release()
		return nil, err
	}
	if s.decode, err = resolve[dispatch.SerializerDecodeFunc](m, dispatch.SerializerDecode); err != nil {
		m.Release()
		return nil, err
	}
	return s, nil
}

// Encode serializes v.
func (s *Serializer) Encode(v any) ([]byte, error) {
	return s.encode(v)
}

// Decode deserializes data into v.
func (s *Serializer) Decode(data []byte, v any) error {
	return s.decode(data, v)
}

// Provider returns the identifier of the provider that won the fetch.
func (s *Serializer) Provider() string { return s.m.Provider() }

// Close releases the underlying method handle.
func (s *Serializer) Close() { s.m.Release() }
