package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/remiblancher/qprov/pkg/registry"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List loaded providers",
	Long: `List the providers loaded in the library context, in registration
order, with the parameters they publish.

Examples:
  # List the default provider set
  qprov providers

  # List providers from a configuration file
  qprov providers --config qprov.yaml`,
	RunE: runProviders,
}

var providersShowBuiltins bool

func init() {
	providersCmd.Flags().BoolVar(&providersShowBuiltins, "builtins", false,
		"List registered built-in providers instead of loaded ones")
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	if providersShowBuiltins {
		names := registry.Builtins()
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	provs := libCtx.Providers()
	if len(provs) == 0 {
		fmt.Println("No providers loaded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARAMS")
	for _, p := range provs {
		fmt.Fprintf(w, "%s\t%s\n", p.Name, formatParams(p.Params))
	}
	return w.Flush()
}

func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
	}
	return strings.Join(pairs, " ")
}
