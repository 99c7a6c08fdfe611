// Command qprov is the CLI tool for the qprov algorithm provider registry.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/remiblancher/qprov/internal/config"
	"github.com/remiblancher/qprov/pkg/registry"

	// Built-in providers register themselves at import time.
	_ "github.com/remiblancher/qprov/internal/providers/defaultprov"
	_ "github.com/remiblancher/qprov/internal/providers/fipsprov"
	_ "github.com/remiblancher/qprov/internal/providers/hsmprov"
	_ "github.com/remiblancher/qprov/internal/providers/legacyprov"
)

// Build-time variables (injected by GoReleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	configPath  string
	propQuery   string
	providerSet []string
)

// libCtx is the library context commands operate on, built by the root
// command's PersistentPreRunE.
var libCtx *registry.Context

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "qprov",
	Short: "qprov - pluggable cryptographic algorithm registry",
	Long: `qprov manages a registry of cryptographic algorithm providers and
resolves algorithm implementations through property queries.

Implementations are grouped into providers. A fetch names an operation
(digest, cipher, mac, kdf, keyexch, signature, serializer), an algorithm
identifier, and an optional property query such as "fips=yes" or
"provider=legacy"; the registry returns the first matching
implementation in provider registration order.

Built-in providers:
  default  mainstream algorithms (SHA-2/3, AES-GCM, HMAC, HKDF, ML-KEM, Ed25519, ...)
  legacy   obsolete algorithms for interoperability (MD5, SHA-1, RC4, 3DES, ...)
  fips     FIPS-approved algorithms only, including ML-KEM and ML-DSA
  hsm      PKCS#11 digest offload (requires CGO and load parameters)

Examples:
  # List loaded providers and their algorithms
  qprov providers
  qprov algorithms --op digest

  # Resolve an implementation without using it
  qprov fetch --op digest SHA2-256 --propquery "fips=yes"

  # Hash a file through the registry
  qprov digest --algorithm SHA2-256 file.txt

  # Serve the introspection REST API
  qprov serve --addr :8330`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			configPath = os.Getenv("QPROV_CONFIG")
		}

		libCtx = registry.New()
		if configPath != "" {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Apply(libCtx); err != nil {
				return err
			}
		} else {
			for _, name := range providerSet {
				if err := libCtx.LoadBuiltin(name, nil); err != nil {
					return err
				}
			}
		}

		if propQuery != "" {
			if err := libCtx.SetDefaultProperties(propQuery); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		err := libCtx.Close()
		if errors.Is(err, registry.ErrInUse) {
			// Outstanding handles at exit are released with the process.
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to context configuration file (or set QPROV_CONFIG env var)")
	rootCmd.PersistentFlags().StringVar(&propQuery, "propquery", "",
		"Default property query applied to every fetch (e.g. \"fips=yes\")")
	rootCmd.PersistentFlags().StringSliceVar(&providerSet, "provider", []string{"default", "legacy"},
		"Built-in providers to activate (ignored when --config is set)")
}
