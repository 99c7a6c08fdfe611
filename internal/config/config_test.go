package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/remiblancher/qprov/pkg/dispatch"
	"github.com/remiblancher/qprov/pkg/registry"
)

const sampleYAML = `
default_properties: "fips=yes"
providers:
  - name: alpha
  - name: beta
    activate: false
  - name: gamma
    params:
      module: /usr/lib/softhsm/libsofthsm2.so
      token: test
      pin_env: QPROV_PIN
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.DefaultProperties != "fips=yes" {
		t.Errorf("default_properties = %q", cfg.DefaultProperties)
	}
	if len(cfg.Providers) != 3 {
		t.Fatalf("got %d providers, want 3", len(cfg.Providers))
	}
	if cfg.Providers[0].Name != "alpha" || !cfg.Providers[0].active() {
		t.Errorf("alpha entry wrong: %+v", cfg.Providers[0])
	}
	if cfg.Providers[1].active() {
		t.Error("beta should be inactive")
	}
	if got := cfg.Providers[2].Params["pin_env"]; got != "QPROV_PIN" {
		t.Errorf("gamma pin_env = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"malformed", "providers: [unclosed", "parse YAML"},
		{"empty entry", "providers:\n  - params: {}\n", "name or module required"},
		{"duplicate", "providers:\n  - name: a\n  - name: a\n", "listed twice"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Parse error = %v, want substring %q", err, tc.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qprov.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Providers) != 3 {
		t.Errorf("got %d providers, want 3", len(cfg.Providers))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}

// testInit is a minimal provider init entry point for Apply tests.
func testInit(_ *registry.CoreHandle, _ dispatch.Table) (dispatch.Table, any, error) {
	table := dispatch.New(
		dispatch.Entry{ID: dispatch.ProvQueryOperation, Fn: registry.QueryOperationFunc(
			func(any, registry.Operation) ([]registry.Algorithm, bool, error) {
				return nil, false, nil
			},
		)},
	)
	return table, nil, nil
}

func TestApply(t *testing.T) {
	registry.RegisterBuiltin("cfg-active", testInit)
	registry.RegisterBuiltin("cfg-skipped", testInit)

	cfg, err := Parse([]byte(`
default_properties: "default=yes"
providers:
  - name: cfg-active
  - name: cfg-skipped
    activate: false
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	ctx := registry.New()
	defer ctx.Close()
	if err := cfg.Apply(ctx); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := ctx.DefaultProperties(); got != "default=yes" {
		t.Errorf("DefaultProperties = %q", got)
	}
	provs := ctx.Providers()
	if len(provs) != 1 || provs[0].Name != "cfg-active" {
		t.Errorf("Providers = %+v, want only cfg-active", provs)
	}
}

func TestApplyUnknownBuiltin(t *testing.T) {
	cfg := &Config{Providers: []ProviderConfig{{Name: "cfg-no-such"}}}
	ctx := registry.New()
	defer ctx.Close()
	err := cfg.Apply(ctx)
	if !errors.Is(err, registry.ErrLoad) {
		t.Errorf("Apply error = %v, want ErrLoad", err)
	}
}

func TestApplyBadDefaults(t *testing.T) {
	cfg := &Config{DefaultProperties: "fips=="}
	ctx := registry.New()
	defer ctx.Close()
	if err := cfg.Apply(ctx); err == nil {
		t.Error("Apply accepted malformed default properties")
	}
}
