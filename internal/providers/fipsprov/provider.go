// Package fipsprov implements the built-in "fips" provider: the subset of
// algorithms drawn from FIPS-approved standards, including the NIST
// post-quantum families ML-KEM (FIPS 203) and ML-DSA (FIPS 204). Every
// record declares fips=yes, so a context can be pinned to approved
// implementations with SetDefaultProperties("fips=yes").
package fipsprov

import (
	"crypto/sha256"
	"crypto/sha512"

	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"

	"github.com/remiblancher/qprov/internal/providers/algbuild"
	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

// Name is the identifier the provider is registered under.
const Name = "fips"

const props = "fips=yes"

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
			return map[string]string{"name": Name, "version": registry.Version, "status": "approved-algorithms-only"}
		})},
	)
	return table, &providerContext{}, nil
}

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
	}
	return nil, false, nil
}

var digestAlgorithms = []registry.Algorithm{
	algbuild.Digest("SHA2-256|SHA-256|SHA256", props, sha256.New),
	algbuild.Digest("SHA2-384|SHA-384|SHA384", props, sha512.New384),
	algbuild.Digest("SHA2-512|SHA-512|SHA512", props, sha512.New),
}

var macAlgorithms = []registry.Algorithm{
	algbuild.HMAC("HMAC-SHA2-256|HMAC-SHA256", props, sha256.New),
	algbuild.HMAC("HMAC-SHA2-384|HMAC-SHA384", props, sha512.New384),
}

var kemAlgorithms = []registry.Algorithm{
	algbuild.KEMScheme("ML-KEM-768|MLKEM768", props, mlkem768.Scheme()),
	algbuild.KEMScheme("ML-KEM-1024|MLKEM1024", props, mlkem1024.Scheme()),
}

var signatureAlgorithms = []registry.Algorithm{
	algbuild.SignScheme("ML-DSA-65|MLDSA65", props, mldsa65.Scheme()),
}
