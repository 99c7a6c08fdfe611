package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/remiblancher/qprov/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the introspection REST API",
	Long: `Start the REST API exposing the library context: provider and
algorithm listings and a dry-run fetch endpoint.

Environment variables:
  QPROV_ADDR  Listen address (overridden by --addr)

Examples:
  # Serve the default provider set
  qprov serve --addr :8330

  # Serve a configured context
  qprov serve --config qprov.yaml`,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"Listen address (default :8330)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := api.DefaultServerConfig()
	if serveAddr == "" {
		serveAddr = os.Getenv("QPROV_ADDR")
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	return api.NewServer(cfg, libCtx).Start()
}
