package defaultprov

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"

	"github.com/remiblancher/qprov/internal/providers/algbuild"
	"github.com/remiblancher/qprov/pkg/registry"
)

var kdfAlgorithms = []registry.Algorithm{
	algbuild.KDF("HKDF-SHA2-256|HKDF-SHA256|HKDF", props, deriveHKDF),
	algbuild.KDF("PBKDF2-SHA2-256|PBKDF2-SHA256|PBKDF2", props, derivePBKDF2),
	algbuild.KDF("ARGON2ID|ARGON2", props, deriveArgon2id),
}

func deriveHKDF(params map[string]any, length int) ([]byte, error) {
	secret := algbuild.BytesParam(params, "secret")
	if len(secret) == 0 {
		return nil, fmt.Errorf("hkdf: missing secret")
	}
	salt := algbuild.BytesParam(params, "salt")
	info := algbuild.BytesParam(params, "info")

	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, info), out); err != nil {
		return nil, fmt.Errorf("hkdf: %w", err)
	}
	return out, nil
}

func derivePBKDF2(params map[string]any, length int) ([]byte, error) {
	password := algbuild.BytesParam(params, "password")
	if len(password) == 0 {
		return nil, fmt.Errorf("pbkdf2: missing password")
	}
	salt := algbuild.BytesParam(params, "salt")
	iterations := algbuild.IntParam(params, "iterations", 600000)
	return pbkdf2.Key(password, salt, iterations, length, sha256.New), nil
}

func deriveArgon2id(params map[string]any, length int) ([]byte, error) {
	password := algbuild.BytesParam(params, "password")
	if len(password) == 0 {
		return nil, fmt.Errorf("argon2id: missing password")
	}
	salt := algbuild.BytesParam(params, "salt")
	time := algbuild.IntParam(params, "time", 1)
	memory := algbuild.IntParam(params, "memory", 64*1024)
	threads := algbuild.IntParam(params, "threads", 4)
	return argon2.IDKey(password, salt, uint32(time), uint32(memory), uint8(threads), uint32(length)), nil
}
