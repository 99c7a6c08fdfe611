package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/remiblancher/qprov/pkg/algo"
)

var digestCmd = &cobra.Command{
	Use:   "digest [file...]",
	Short: "Hash files through the registry",
	Long: `Hash files (or stdin when no file is given) with an algorithm
resolved through the registry. Output format follows sha256sum: one
"<hex digest>  <file>" line per input.

Examples:
  # Hash a file with the winning SHA-256
  qprov digest --algorithm SHA2-256 file.txt

  # Hash stdin with legacy MD5
  cat file.txt | qprov digest --algorithm MD5

  # Pin the provider
  qprov digest --algorithm SHA2-256 --query "provider=fips" file.txt`,
	RunE: runDigest,
}

var (
	digestAlgorithm string
	digestQuery     string
)

func init() {
	digestCmd.Flags().StringVar(&digestAlgorithm, "algorithm", "SHA2-256",
		"Digest algorithm identifier")
	digestCmd.Flags().StringVar(&digestQuery, "query", "",
		"Property query (e.g. \"provider=legacy\")")
	rootCmd.AddCommand(digestCmd)
}

func runDigest(cmd *cobra.Command, args []string) error {
	d, err := algo.NewDigest(libCtx, digestAlgorithm, digestQuery)
	if err != nil {
		return err
	}
	defer d.Close()

	if len(args) == 0 {
		return digestOne(d, os.Stdin, "-")
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = digestOne(d, f, path)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// digestOne hashes one input. Sum resets the digest state, so a single
// handle serves every input in turn.
func digestOne(d *algo.Digest, r io.Reader, label string) error {
	if _, err := io.Copy(d, r); err != nil {
		return fmt.Errorf("read %s: %w", label, err)
	}
	sum, err := d.Sum()
	if err != nil {
		return fmt.Errorf("digest %s: %w", label, err)
	}
	fmt.Printf("%s  %s\n", hex.EncodeToString(sum), label)
	return nil
}
