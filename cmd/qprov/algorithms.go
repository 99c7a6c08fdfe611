package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/remiblancher/qprov/pkg/registry"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List offered algorithms",
	Long: `List the algorithm records offered by the loaded providers, walking
providers in registration order.

Examples:
  # List everything
  qprov algorithms

  # List digests only
  qprov algorithms --op digest`,
	RunE: runAlgorithms,
}

var algorithmsOp string

func init() {
	algorithmsCmd.Flags().StringVar(&algorithmsOp, "op", "",
		"Restrict to one operation (digest, cipher, mac, kdf, keyexch, signature, serializer)")
	rootCmd.AddCommand(algorithmsCmd)
}

func runAlgorithms(cmd *cobra.Command, args []string) error {
	ops := registry.Operations()
	if algorithmsOp != "" {
		op, err := registry.ParseOperation(algorithmsOp)
		if err != nil {
			return err
		}
		ops = []registry.Operation{op}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION\tPROVIDER\tNAMES\tPROPERTIES")
	for _, op := range ops {
		for _, rec := range libCtx.Algorithms(op) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				op, rec.Provider, strings.Join(rec.Names, ", "), rec.Properties)
		}
	}
	return w.Flush()
}
