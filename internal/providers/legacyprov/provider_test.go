package legacyprov

import (
	"testing"

	"github.com/remiblancher/qprov/pkg/registry"
)

func TestDigestsCacheable(t *testing.T) {
	records, noStore, err := queryOperation(nil, registry.OpDigest)
	if err != nil {
		t.Fatal(err)
	}
	if noStore {
		t.Error("digest records flagged no-store")
	}
	if len(records) == 0 {
		t.Error("no digest records")
	}
}

func TestCiphersNotCacheable(t *testing.T) {
	records, noStore, err := queryOperation(nil, registry.OpCipher)
	if err != nil {
		t.Fatal(err)
	}
	if !noStore {
		t.Error("weak cipher records must be flagged no-store")
	}
	for _, rec := range records {
		missing := rec.Dispatch.Missing(registry.MandatoryFuncs(registry.OpCipher)...)
		if len(missing) > 0 {
			t.Errorf("%s: missing mandatory funcs %v", rec.Names, missing)
		}
	}
}

func TestUnsupportedOperationsEmpty(t *testing.T) {
	for _, op := range []registry.Operation{
		registry.OpMAC, registry.OpKDF, registry.OpKeyExch,
		registry.OpSignature, registry.OpSerializer,
	} {
		records, _, err := queryOperation(nil, op)
		if err != nil {
			t.Fatalf("%s: %v", op, err)
		}
		if len(records) != 0 {
			t.Errorf("%s: unexpected records", op)
		}
	}
}

func TestNoStoreBypassesCache(t *testing.T) {
	ctx := registry.New()
	defer ctx.Close()
	if err := ctx.LoadBuiltin(Name, nil); err != nil {
		t.Fatalf("LoadBuiltin: %v", err)
	}

	m1, err := ctx.Fetch(registry.OpCipher, "RC4", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer m1.Release()
	m2, err := ctx.Fetch(registry.OpCipher, "RC4", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer m2.Release()
	if m1 == m2 {
		t.Error("no-store cipher fetch returned a cached handle")
	}

	d1, err := ctx.Fetch(registry.OpDigest, "MD5", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer d1.Release()
	d2, err := ctx.Fetch(registry.OpDigest, "MD5", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer d2.Release()
	if d1 != d2 {
		t.Error("cacheable digest fetch was not shared")
	}
}
