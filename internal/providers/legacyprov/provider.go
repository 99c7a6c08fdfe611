// Package legacyprov implements the built-in "legacy" provider: obsolete
// algorithms kept only for interoperability with old data. Nothing here
// should be picked up by accident, so every record declares legacy=yes
// and a context that never sets legacy properties still resolves them
// only by explicit name.
package legacyprov

import (
	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// Name is the identifier the provider is registered under.
const Name = "legacy"

const props = "legacy=yes"

func init() {
	registry.RegisterBuiltin(Name, Init)
}

type providerContext struct{}

// Init is the provider init entry point.
func Init(handle *registry.CoreHandle, core dispatch.Table) (dispatch.Table, any, error) {
	table := dispatch.New(
		dispatch.Entry{ID: dispatch.ProvTeardown, Fn: registry.TeardownFunc(func(any) {})},
		dispatch.Entry{ID: dispatch.ProvQueryOperation, Fn: registry.QueryOperationFunc(queryOperation)},
		dispatch.Entry{ID: dispatch.ProvGetParams, Fn: registry.GetParamsFunc(func(any) map[string]string {
			return map[string]string{"name": Name, "version": registry.Version}
		})},
	)
	return table, &providerContext{}, nil
}

// queryOperation lists the provider's records. Weak cipher records are
// flagged no-store: the registry must not cache method handles for them,
// so every use goes through a fresh resolution.
func queryOperation(_ any, op registry.Operation) ([]registry.Algorithm, bool, error) {
	switch op {
	case registry.OpDigest:
		return digestAlgorithms, false, nil
	case registry.OpCipher:
		return cipherAlgorithms, true, nil
	}
	return nil, false, nil
}
