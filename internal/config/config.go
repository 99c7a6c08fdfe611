// Package config loads library-context configuration from YAML: which
// providers to activate, their load parameters, and the context's default
// property query.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/remiblancher/qprov/pkg/registry"
)

// Config is the YAML representation of a context configuration.
type Config struct {
	// DefaultProperties is the context-wide default property query, merged
	// into every fetch. Empty means no defaults.
	DefaultProperties string `yaml:"default_properties,omitempty"`

	// Providers lists the providers to set up, in activation order.
	Providers []ProviderConfig `yaml:"providers,omitempty"`
}

// ProviderConfig describes one provider entry.
type ProviderConfig struct {
	// Name is the identifier to activate the provider under. For built-in
	// providers it selects the registered entry point.
	Name string `yaml:"name"`

	// Module is the path to a dynamically loadable provider module. Empty
	// means the provider is a built-in.
	Module string `yaml:"module,omitempty"`

	// Activate controls whether the provider is loaded. Entries default to
	// active; set "activate: false" to keep an entry without loading it.
	Activate *bool `yaml:"activate,omitempty"`

	// Params carries provider-specific load parameters (PKCS#11 module
	// paths, token labels, ...).
	Params map[string]string `yaml:"params,omitempty"`
}

// active reports whether the entry should be loaded.
func (pc ProviderConfig) active() bool {
	return pc.Activate == nil || *pc.Activate
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, pc := range c.Providers {
		if pc.Name == "" && pc.Module == "" {
			return fmt.Errorf("provider %d: name or module required", i)
		}
		name := pc.Name
		if name == "" {
			name = pc.Module
		}
		if seen[name] {
			return fmt.Errorf("provider %q listed twice", name)
		}
		seen[name] = true
	}
	return nil
}

// Apply configures a library context: sets default properties and loads
// every active provider entry, built-ins by name and modules by path.
func (c *Config) Apply(ctx *registry.Context) error {
	if c.DefaultProperties != "" {
		if err := ctx.SetDefaultProperties(c.DefaultProperties); err != nil {
			return fmt.Errorf("default properties: %w", err)
		}
	}
	for _, pc := range c.Providers {
		if !pc.active() {
			continue
		}
		var err error
		if pc.Module != "" {
			params := make(map[string]string, len(pc.Params)+1)
			for k, v := range pc.Params {
				params[k] = v
			}
			if pc.Name != "" {
				params["name"] = pc.Name
			}
			err = ctx.LoadModule(pc.Module, params)
		} else {
			err = ctx.LoadBuiltin(pc.Name, pc.Params)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
