package legacyprov

import (
	"crypto/md5"
	"crypto/sha1"

	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"

	"github.com/remiblancher/qprov/internal/providers/algbuild"
	"github.com/remiblancher/qprov/pkg/registry"
)

var digestAlgorithms = []registry.Algorithm{
	algbuild.Digest("MD4", props, md4.New),
	algbuild.Digest("MD5", props, md5.New),
	algbuild.Digest("SHA1|SHA-1", props, sha1.New),
	algbuild.Digest("RIPEMD-160|RIPEMD160|RMD160", props, ripemd160.New),
}
