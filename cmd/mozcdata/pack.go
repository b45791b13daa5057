package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/mozcdata/compress"
	"github.com/arloliu/mozcdata/dataset"
)

var packCodec string

func init() {
	rootCmd.AddCommand(newPackCmd())
}

func newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack <input> <output>",
		Short: "Validate a dataset and write it as a compressed envelope",
		Long: `The pack command validates the input dataset, compresses the whole
buffer with the chosen codec and verifies that the output loads back to the
same bytes before writing it. The --codec flag describes the input; --to
selects the output codec.

Example:
  mozcdata pack mozc.data mozc.data.zst --to zstd
  mozcdata pack mozc.data.zst mozc.data --codec zstd --to none`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(args)
		},
	}

	cmd.Flags().StringVar(&packCodec, "to", "zstd", "Output compression: none, zstd, s2, lz4")

	return cmd
}

func runPack(args []string) error {
	in, out := args[0], args[1]

	to, err := parseCodec(packCodec)
	if err != nil {
		return err
	}

	c, err := openContainer(in)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	codec, err := compress.GetCodec(to)
	if err != nil {
		return err
	}

	packed, err := codec.Compress(c.Bytes())
	if err != nil {
		return fmt.Errorf("failed to compress dataset: %w", err)
	}

	check, err := dataset.LoadCompressed(packed, to, expectedMagic(), dataset.WithLogger(newLogger()))
	if err != nil {
		return fmt.Errorf("packed dataset does not load: %w", err)
	}
	if !bytes.Equal(check.Bytes(), c.Bytes()) {
		return fmt.Errorf("packed dataset does not round-trip")
	}

	if err := os.WriteFile(out, packed, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	ratio := 0.0
	if c.Size() > 0 {
		ratio = float64(len(packed)) / float64(c.Size())
	}
	printInfo("Packed %s -> %s\n", in, out)
	printInfo("  Codec: %s\n", to)
	printInfo("  Size: %d -> %d bytes (%.1f%%)\n", c.Size(), len(packed), ratio*100)

	return nil
}
