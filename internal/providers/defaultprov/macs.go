package defaultprov

import (
	"crypto/sha256"
	"crypto/sha512"

	"github.com/remiblancher/qprov/internal/providers/algbuild"
	"github.com/remiblancher/qprov/pkg/registry"
)

var macAlgorithms = []registry.Algorithm{
	algbuild.HMAC("HMAC-SHA2-256|HMAC-SHA256", props, sha256.New),
	algbuild.HMAC("HMAC-SHA2-384|HMAC-SHA384", props, sha512.New384),
	algbuild.HMAC("HMAC-SHA2-512|HMAC-SHA512", props, sha512.New),
}
