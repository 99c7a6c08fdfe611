// Package defaultprov implements the built-in "default" provider: the
// general-purpose algorithm collection a context normally runs on. All
// records declare default=yes so callers can steer between the default
// and more specialized providers with a property query.
package defaultprov

import (
	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// Name is the identifier the provider is registered under.
const Name = "default"

// props is the property definition every record declares. The registry
// injects provider=default implicitly.
const props = "default=yes"

func init() {
	registry.RegisterBuiltin(Name, Init)
}

// providerContext is the provider's opaque context. The registry never
// inspects it; it only threads it back into provider calls.
type providerContext struct {
	coreVersion string
}

// Init is the provider init entry point.
func Init(handle *registry.CoreHandle, core dispatch.Table) (dispatch.Table, any, error) {
	pc := &providerContext{}
	if fn, ok := core.Get(dispatch.CoreVersion); ok {
		if version, ok := fn.(dispatch.CoreVersionFunc); ok {
			pc.coreVersion = version()
		}
	}

	table := dispatch.New(
		dispatch.Entry{ID: dispatch.ProvTeardown, Fn: registry.TeardownFunc(func(any) {})},
		dispatch.Entry{ID: dispatch.ProvQueryOperation, Fn: registry.QueryOperationFunc(queryOperation)},
		dispatch.Entry{ID: dispatch.ProvGetParams, Fn: registry.GetParamsFunc(getParams)},
	)
	return table, pc, nil
}

// queryOperation lists the provider's records for one operation. All
// records are cacheable.
func queryOperation(_ any, op registry.Operation) ([]registry.Algorithm, bool, error) {
	switch op {
	case registry.OpDigest:
		return digestAlgorithms, false, nil
	case registry.OpCipher:
		return cipherAlgorithms, false, nil
	case registry.OpMAC:
		return macAlgorithms, false, nil
	case registry.OpKDF:
		return kdfAlgorithms, false, nil
	case registry.OpKeyExch:
		return kemAlgorithms, false, nil
	case registry.OpSignature:
		return signatureAlgorithms, false, nil
	case registry.OpSerializer:
		return serializerAlgorithms, false, nil
	}
	return nil, false, nil
}

// getParams reports descriptive provider parameters.
func getParams(provCtx any) map[string]string {
	pc := provCtx.(*providerContext)
	return map[string]string{
		"name":         Name,
		"version":      registry.Version,
		"core-version": pc.coreVersion,
	}
}
