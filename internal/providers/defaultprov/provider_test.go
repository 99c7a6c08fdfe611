package defaultprov

import (
	"testing"

	"github.com/remiblancher/qprov/pkg/registry"
)

func TestProviderLoads(t *testing.T) {
	ctx := registry.New()
	defer ctx.Close()

	if err := ctx.LoadBuiltin(Name, nil); err != nil {
		t.Fatalf("LoadBuiltin: %v", err)
	}
	provs := ctx.Providers()
	if len(provs) != 1 || provs[0].Name != Name {
		t.Fatalf("Providers = %+v", provs)
	}
	if provs[0].Params["version"] != registry.Version {
		t.Errorf("params = %+v", provs[0].Params)
	}
}

func TestQueryOperationCoverage(t *testing.T) {
	// Every operation has at least one record; nothing is flagged
	// no-store.
	for _, op := range registry.Operations() {
		records, noStore, err := queryOperation(nil, op)
		if err != nil {
			t.Fatalf("%s: %v", op, err)
		}
		if len(records) == 0 {
			t.Errorf("%s: no records", op)
		}
		if noStore {
			t.Errorf("%s: unexpectedly flagged no-store", op)
		}
	}
}

func TestRecordsDeclareProperties(t *testing.T) {
	for _, op := range registry.Operations() {
		records, _, _ := queryOperation(nil, op)
		for _, rec := range records {
			if rec.Properties != props {
				t.Errorf("%s %s: properties = %q", op, rec.Names, rec.Properties)
			}
			if len(rec.Aliases()) == 0 {
				t.Errorf("%s: record without names", op)
			}
			missing := rec.Dispatch.Missing(registry.MandatoryFuncs(op)...)
			if len(missing) > 0 {
				t.Errorf("%s %s: missing mandatory funcs %v", op, rec.Names, missing)
			}
		}
	}
}
