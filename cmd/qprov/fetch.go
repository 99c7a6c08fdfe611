package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remiblancher/qprov/pkg/registry"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <algorithm>",
	Short: "Resolve an algorithm implementation",
	Long: `Resolve an algorithm implementation and report which provider won,
without using it. This is the dry-run diagnostic for property queries.

Examples:
  # Which SHA-256 wins by default?
  qprov fetch --op digest SHA2-256

  # Force the FIPS provider
  qprov fetch --op digest SHA2-256 --query "fips=yes"

  # Anything but the default provider
  qprov fetch --op digest SHA2-256 --query "provider!=default"`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

var (
	fetchOp    string
	fetchQuery string
)

func init() {
	fetchCmd.Flags().StringVar(&fetchOp, "op", "digest",
		"Operation to fetch for (digest, cipher, mac, kdf, keyexch, signature, serializer)")
	fetchCmd.Flags().StringVar(&fetchQuery, "query", "",
		"Property query (e.g. \"fips=yes,provider!=legacy\")")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	op, err := registry.ParseOperation(fetchOp)
	if err != nil {
		return err
	}

	m, err := libCtx.Fetch(op, args[0], fetchQuery)
	if err != nil {
		return err
	}
	defer m.Release()

	fmt.Printf("Operation:  %s\n", m.Operation())
	fmt.Printf("Algorithm:  %s\n", m.Name())
	fmt.Printf("Provider:   %s\n", m.Provider())
	fmt.Printf("Properties: %s\n", m.Properties())
	return nil
}
