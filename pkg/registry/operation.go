// Package registry implements the algorithm provider registry: the library
// context that owns loaded providers, and the fetch engine that resolves an
// (operation, identifier, property query) triple to a bound implementation
// handle. The registry never implements algorithm semantics itself; it only
// selects a provider record and hands out its dispatch table.
package registry

import (
	"fmt"
	"strings"

	"github.com/remiblancher/qprov/pkg/dispatch"
)

// Operation identifies a category of cryptographic capability. The numeric
// values are part of the provider ABI and must stay stable across versions:
// provider modules are compiled and loaded independently of the core.
type Operation int

const (
	OpDigest     Operation = 1
	OpCipher     Operation = 2
	OpMAC        Operation = 3
	OpKDF        Operation = 4
	OpKeyExch    Operation = 5
	OpSignature  Operation = 6
	OpSerializer Operation = 7
)

// operationNames maps operations to their textual names.
var operationNames = map[Operation]string{
	OpDigest:     "digest",
	OpCipher:     "cipher",
	OpMAC:        "mac",
	OpKDF:        "kdf",
	OpKeyExch:    "keyexch",
	OpSignature:  "signature",
	OpSerializer: "serializer",
}

// String returns the operation's textual name.
func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return fmt.Sprintf("operation(%d)", int(op))
}

// IsValid reports whether op is a known operation.
func (op Operation) IsValid() bool {
	_, ok := operationNames[op]
	return ok
}

// ParseOperation parses a textual operation name as used by the CLI and
// the introspection API.
func ParseOperation(s string) (Operation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for op, name := range operationNames {
		if name == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operation: %q", s)
}

// Operations returns all known operations in stable numeric order.
func Operations() []Operation {
	return []Operation{OpDigest, OpCipher, OpMAC, OpKDF, OpKeyExch, OpSignature, OpSerializer}
}

// mandatoryFuncs lists the dispatch function ids a record must provide for
// each operation. The fetch engine resolves these eagerly and fails the
// fetch if any is missing, so a broken provider surfaces at fetch time
// rather than on first use.
var mandatoryFuncs = map[Operation][]dispatch.FuncID{
	OpDigest:     {dispatch.DigestNewCtx, dispatch.DigestUpdate, dispatch.DigestFinal},
	OpCipher:     {dispatch.CipherNewCtx, dispatch.CipherSeal, dispatch.CipherOpen},
	OpMAC:        {dispatch.MACNewCtx, dispatch.MACUpdate, dispatch.MACFinal},
	OpKDF:        {dispatch.KDFDerive},
	OpKeyExch:    {dispatch.KEMEncapsulate, dispatch.KEMDecapsulate},
	OpSignature:  {dispatch.SignatureSign, dispatch.SignatureVerify},
	OpSerializer: {dispatch.SerializerEncode, dispatch.SerializerDecode},
}

// MandatoryFuncs returns the mandatory dispatch function ids for op.
func MandatoryFuncs(op Operation) []dispatch.FuncID {
	ids := mandatoryFuncs[op]
	out := make([]dispatch.FuncID, len(ids))
	copy(out, ids)
	return out
}
