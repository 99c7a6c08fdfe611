package algo_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"testing"

	"golang.org/x/crypto/hkdf"

	"github.com/remiblancher/qprov/pkg/algo"
	"github.com/remiblancher/qprov/pkg/registry"

	_ "github.com/remiblancher/qprov/internal/providers/defaultprov"
	_ "github.com/remiblancher/qprov/internal/providers/fipsprov"
	_ "github.com/remiblancher/qprov/internal/providers/legacyprov"
)

// newContext builds a context with the default and legacy providers
// loaded, in that order.
func newContext(t *testing.T) *registry.Context {
	t.Helper()
	ctx := registry.New()
	t.Cleanup(func() { ctx.Close() })
	for _, name := range []string{"default", "legacy", "fips"} {
		if err := ctx.LoadBuiltin(name, nil); err != nil {
			t.Fatalf("LoadBuiltin(%q): %v", name, err)
		}
	}
	return ctx
}

func TestDigestMatchesStdlib(t *testing.T) {
	ctx := newContext(t)

	d, err := algo.NewDigest(ctx, "SHA2-256", "")
	if err != nil {
		t.Fatalf("NewDigest: %v", err)
	}
	defer d.Close()

	msg := []byte("the quick brown fox")
	if _, err := d.Write(msg); err != nil {
		t.Fatalf("Write: %v", err)
	}
	sum, err := d.Sum()
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}

	want := sha256.Sum256(msg)
	if !bytes.Equal(sum, want[:]) {
		t.Errorf("digest = %x, want %x", sum, want)
	}
	if d.Size() != sha256.Size || d.BlockSize() != sha256.BlockSize {
		t.Errorf("Size/BlockSize = %d/%d", d.Size(), d.BlockSize())
	}
	if d.Provider() != "default" {
		t.Errorf("provider = %q", d.Provider())
	}
}

func TestDigestSumResets(t *testing.T) {
	ctx := newContext(t)

	d, err := algo.NewDigest(ctx, "SHA2-256", "")
	if err != nil {
		t.Fatalf("NewDigest: %v", err)
	}
	defer d.Close()

	io.WriteString(d, "first")
	first, err := d.Sum()
	if err != nil {
		t.Fatal(err)
	}

	io.WriteString(d, "first")
	second, err := d.Sum()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Sum did not reset the streaming state")
	}
}

func TestDigestLegacyProvider(t *testing.T) {
	ctx := newContext(t)

	d, err := algo.NewDigest(ctx, "MD5", "")
	if err != nil {
		t.Fatalf("NewDigest: %v", err)
	}
	defer d.Close()

	msg := []byte("interop data")
	d.Write(msg)
	sum, err := d.Sum()
	if err != nil {
		t.Fatal(err)
	}
	want := md5.Sum(msg)
	if !bytes.Equal(sum, want[:]) {
		t.Errorf("md5 = %x, want %x", sum, want)
	}
	if d.Provider() != "legacy" {
		t.Errorf("provider = %q", d.Provider())
	}
}

func TestDigestProviderSelection(t *testing.T) {
	ctx := newContext(t)

	d, err := algo.NewDigest(ctx, "SHA2-256", "fips=yes")
	if err != nil {
		t.Fatalf("NewDigest: %v", err)
	}
	defer d.Close()
	if d.Provider() != "fips" {
		t.Errorf("provider = %q, want fips", d.Provider())
	}
}

func TestCipherRoundtrip(t *testing.T) {
	ctx := newContext(t)

	for _, name := range []string{"AES-256-GCM", "CHACHA20-POLY1305"} {
		t.Run(name, func(t *testing.T) {
			key := make([]byte, 32)
			rand.Read(key)

			c, err := algo.NewCipher(ctx, name, "", key)
			if err != nil {
				t.Fatalf("NewCipher: %v", err)
			}
			defer c.Close()

			if c.KeySize() != 32 {
				t.Errorf("KeySize = %d", c.KeySize())
			}
			nonce := make([]byte, c.NonceSize())
			rand.Read(nonce)

			plaintext := []byte("attack at dawn")
			additional := []byte("header")

			ct, err := c.Seal(nonce, plaintext, additional)
			if err != nil {
				t.Fatalf("Seal: %v", err)
			}
			got, err := c.Open(nonce, ct, additional)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if !bytes.Equal(got, plaintext) {
				t.Errorf("roundtrip = %q", got)
			}

			// Tampering must fail authentication.
			ct[0] ^= 0xff
			if _, err := c.Open(nonce, ct, additional); err == nil {
				t.Error("Open accepted tampered ciphertext")
			}
		})
	}
}

func TestCipherLegacy3DESRoundtrip(t *testing.T) {
	ctx := newContext(t)

	key := make([]byte, 24)
	rand.Read(key)

	c, err := algo.NewCipher(ctx, "DES-EDE3-CBC", "", key)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	defer c.Close()

	iv := make([]byte, c.NonceSize())
	rand.Read(iv)

	plaintext := []byte("legacy payload of uneven length.")
	ct, err := c.Seal(iv, plaintext, nil)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	got, err := c.Open(iv, ct, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("roundtrip = %q", got)
	}
}

func TestMACMatchesStdlib(t *testing.T) {
	ctx := newContext(t)

	key := []byte("mac key")
	m, err := algo.NewMAC(ctx, "HMAC-SHA2-256", "", key)
	if err != nil {
		t.Fatalf("NewMAC: %v", err)
	}
	defer m.Close()

	msg := []byte("authenticated message")
	m.Write(msg)
	tag, err := m.Sum()
	if err != nil {
		t.Fatal(err)
	}

	ref := hmac.New(sha256.New, key)
	ref.Write(msg)
	if !hmac.Equal(tag, ref.Sum(nil)) {
		t.Error("tag mismatch with crypto/hmac")
	}
	if m.Size() != sha256.Size {
		t.Errorf("Size = %d", m.Size())
	}

	// Sum reset keeps the key bound.
	m.Write(msg)
	tag2, err := m.Sum()
	if err != nil {
		t.Fatal(err)
	}
	if !hmac.Equal(tag, tag2) {
		t.Error("Sum did not reset with the same key")
	}
}

func TestKDFMatchesHKDF(t *testing.T) {
	ctx := newContext(t)

	k, err := algo.NewKDF(ctx, "HKDF-SHA2-256", "")
	if err != nil {
		t.Fatalf("NewKDF: %v", err)
	}
	defer k.Close()

	secret := []byte("input keying material")
	salt := []byte("salt")
	info := []byte("context info")

	got, err := k.Derive(map[string]any{
		"secret": secret,
		"salt":   salt,
		"info":   info,
	}, 42)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	want := make([]byte, 42)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, info), want); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("derived key mismatch with x/crypto/hkdf")
	}
}

func TestKDFArgon2Deterministic(t *testing.T) {
	ctx := newContext(t)

	k, err := algo.NewKDF(ctx, "ARGON2ID", "")
	if err != nil {
		t.Fatalf("NewKDF: %v", err)
	}
	defer k.Close()

	params := map[string]any{
		"password": []byte("hunter2"),
		"salt":     []byte("somesalt"),
		"time":     1,
		"memory":   8 * 1024,
		"threads":  1,
	}
	a, err := k.Derive(params, 32)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	b, err := k.Derive(params, 32)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("argon2id not deterministic for fixed parameters")
	}
}

func TestKEMRoundtrip(t *testing.T) {
	ctx := newContext(t)

	for _, name := range []string{"ML-KEM-768", "DHKEM-X25519"} {
		t.Run(name, func(t *testing.T) {
			k, err := algo.NewKEM(ctx, name, "")
			if err != nil {
				t.Fatalf("NewKEM: %v", err)
			}
			defer k.Close()

			pub, priv, err := k.GenerateKeyPair()
			if err != nil {
				t.Fatalf("GenerateKeyPair: %v", err)
			}
			ct, shared, err := k.Encapsulate(pub)
			if err != nil {
				t.Fatalf("Encapsulate: %v", err)
			}
			got, err := k.Decapsulate(priv, ct)
			if err != nil {
				t.Fatalf("Decapsulate: %v", err)
			}
			if !bytes.Equal(got, shared) {
				t.Error("shared secret mismatch")
			}
			if len(shared) == 0 {
				t.Error("empty shared secret")
			}
		})
	}
}

func TestSignatureRoundtrip(t *testing.T) {
	ctx := newContext(t)

	for _, tc := range []struct {
		name  string
		query string
	}{
		{"ED25519", ""},
		{"ML-DSA-65", "fips=yes"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, err := algo.NewSignature(ctx, tc.name, tc.query)
			if err != nil {
				t.Fatalf("NewSignature: %v", err)
			}
			defer s.Close()

			pub, priv, err := s.GenerateKeyPair()
			if err != nil {
				t.Fatalf("GenerateKeyPair: %v", err)
			}
			msg := []byte("message to sign")
			sig, err := s.Sign(priv, msg)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}
			if err := s.Verify(pub, msg, sig); err != nil {
				t.Errorf("Verify: %v", err)
			}
			if err := s.Verify(pub, []byte("another message"), sig); err == nil {
				t.Error("Verify accepted a forged message")
			}
		})
	}
}

func TestSerializerRoundtrip(t *testing.T) {
	ctx := newContext(t)

	type payload struct {
		Name  string `json:"name" cbor:"name"`
		Count int    `json:"count" cbor:"count"`
	}

	for _, name := range []string{"CBOR", "JSON"} {
		t.Run(name, func(t *testing.T) {
			s, err := algo.NewSerializer(ctx, name, "")
			if err != nil {
				t.Fatalf("NewSerializer: %v", err)
			}
			defer s.Close()

			in := payload{Name: "qprov", Count: 7}
			data, err := s.Encode(in)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			var out payload
			if err := s.Decode(data, &out); err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if out != in {
				t.Errorf("roundtrip = %+v, want %+v", out, in)
			}
		})
	}
}

func TestFetchErrorSurfaces(t *testing.T) {
	ctx := newContext(t)

	if _, err := algo.NewDigest(ctx, "NO-SUCH-HASH", ""); err == nil {
		t.Error("NewDigest resolved an unknown algorithm")
	}
	if _, err := algo.NewDigest(ctx, "SHA2-256", "fips=="); err == nil {
		t.Error("NewDigest accepted a malformed property query")
	}
}
