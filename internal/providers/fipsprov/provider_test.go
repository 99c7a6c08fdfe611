package fipsprov

import (
	"strings"
	"testing"

	"github.com/remiblancher/qprov/pkg/registry"
)

func TestEveryRecordDeclaresFIPS(t *testing.T) {
	for _, op := range registry.Operations() {
		records, _, err := queryOperation(nil, op)
		if err != nil {
			t.Fatalf("%s: %v", op, err)
		}
		for _, rec := range records {
			if !strings.Contains(rec.Properties, "fips=yes") {
				t.Errorf("%s %s: properties = %q", op, rec.Names, rec.Properties)
			}
		}
	}
}

func TestNoSerializerRecords(t *testing.T) {
	records, _, err := queryOperation(nil, registry.OpSerializer)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("unexpected serializer records: %v", records)
	}
}

func TestPostQuantumPresent(t *testing.T) {
	kems, _, _ := queryOperation(nil, registry.OpKeyExch)
	sigs, _, _ := queryOperation(nil, registry.OpSignature)

	if !hasName(kems, "ML-KEM-768") || !hasName(kems, "ML-KEM-1024") {
		t.Errorf("missing ML-KEM records: %v", names(kems))
	}
	if !hasName(sigs, "ML-DSA-65") {
		t.Errorf("missing ML-DSA records: %v", names(sigs))
	}
}

func hasName(records []registry.Algorithm, name string) bool {
	for _, rec := range records {
		for _, alias := range rec.Aliases() {
			if alias == name {
				return true
			}
		}
	}
	return false
}

func names(records []registry.Algorithm) []string {
	var out []string
	for _, rec := range records {
		out = append(out, rec.Names)
	}
	return out
}
