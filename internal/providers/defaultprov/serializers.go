package defaultprov

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"

	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

var serializerAlgorithms = []registry.Algorithm{
	cborSerializer(),
	jsonSerializer(),
}

// cborSerializer encodes with deterministic (canonical) CBOR so equal
// values always serialize to equal bytes.
func cborSerializer() registry.Algorithm {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}

	return registry.Algorithm{
		Names:      "CBOR",
		Properties: props,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.SerializerEncode, Fn: dispatch.SerializerEncodeFunc(func(v any) ([]byte, error) {
				return encMode.Marshal(v)
			})},
			dispatch.Entry{ID: dispatch.SerializerDecode, Fn: dispatch.SerializerDecodeFunc(func(data []byte, v any) error {
				return cbor.Unmarshal(data, v)
			})},
		),
	}
}

func jsonSerializer() registry.Algorithm {
	return registry.Algorithm{
		Names:      "JSON",
		Properties: props,
		Dispatch: dispatch.New(
			dispatch.Entry{ID: dispatch.SerializerEncode, Fn: dispatch.SerializerEncodeFunc(func(v any) ([]byte, error) {
				return json.Marshal(v)
			})},
			dispatch.Entry{ID: dispatch.SerializerDecode, Fn: dispatch.SerializerDecodeFunc(func(data []byte, v any) error {
				return json.Unmarshal(data, v)
			})},
		),
	}
}
