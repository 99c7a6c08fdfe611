package defaultprov

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"

	"github.com/remiblancher/qprov/internal/providers/algbuild"
	"github.com/remiblancher/qprov/pkg/registry"
)

var digestAlgorithms = []registry.Algorithm{
	algbuild.Digest("SHA2-224|SHA-224|SHA224", props, sha256.New224),
	algbuild.Digest("SHA2-256|SHA-256|SHA256", props, sha256.New),
	algbuild.Digest("SHA2-384|SHA-384|SHA384", props, sha512.New384),
	algbuild.Digest("SHA2-512|SHA-512|SHA512", props, sha512.New),
	algbuild.Digest("SHA3-256", props, func() hash.Hash { return sha3.New256() }),
	algbuild.Digest("SHA3-512", props, func() hash.Hash { return sha3.New512() }),
	algbuild.Digest("SHAKE-128|SHAKE128", props, func() hash.Hash { return sha3.NewShake128() }),
	algbuild.Digest("SHAKE-256|SHAKE256", props, func() hash.Hash { return sha3.NewShake256() }),
	algbuild.Digest("BLAKE2B-512|BLAKE2B512", props, mustBlake2b),
	algbuild.Digest("BLAKE2S-256|BLAKE2S256", props, mustBlake2s),
}

// Unkeyed BLAKE2 construction cannot fail.
func mustBlake2b() hash.Hash {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	return h
}

func mustBlake2s() hash.Hash {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic(err)
	}
	return h
}
