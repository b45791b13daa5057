package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/mozcdata/datamanager"
	"github.com/arloliu/mozcdata/dataset"
	"github.com/arloliu/mozcdata/format"
	"github.com/arloliu/mozcdata/internal/logging"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	magicFlag string
	codecFlag string
)

var rootCmd = &cobra.Command{
	Use:   "mozcdata",
	Short: "Inspect and verify input method dataset files",
	Long: `mozcdata inspects the read-only dataset an input method engine embeds.
It validates the container layout, dumps the section directory, queries the
segmenter and lookup tables, and packs datasets into compressed envelopes.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logs")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&magicFlag, "magic", "", "Expected magic marker (default: build-configured marker)")
	rootCmd.PersistentFlags().
		StringVar(&codecFlag, "codec", "none", "Envelope compression of input files: none, zstd, s2, lz4")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

func newLogger() *slog.Logger {
	if verbose {
		return logging.NewTextLogger(slog.LevelDebug)
	}

	return logging.Discard()
}

func expectedMagic() []byte {
	if magicFlag == "" {
		return datamanager.MagicNumber()
	}

	return []byte(magicFlag)
}

func parseCodec(name string) (format.CompressionType, error) {
	ct, ok := format.ParseCompressionType(name)
	if !ok {
		return 0, fmt.Errorf("unknown codec %q (want none, zstd, s2 or lz4)", name)
	}

	return ct, nil
}

// openContainer reads path and validates it as a dataset container.
func openContainer(path string) (*dataset.Container, error) {
	ct, err := parseCodec(codecFlag)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	printVerbose("Loading %s (%d bytes, codec %s)\n", path, len(data), ct)

	return dataset.LoadCompressed(data, ct, expectedMagic(), dataset.WithLogger(newLogger()))
}

// openManager reads path and builds the full data manager on top of it.
func openManager(path string) (*datamanager.Manager, error) {
	ct, err := parseCodec(codecFlag)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	printVerbose("Loading %s (%d bytes, codec %s)\n", path, len(data), ct)

	return datamanager.New(data,
		datamanager.WithMagic(expectedMagic()),
		datamanager.WithCompression(ct),
		datamanager.WithLogger(newLogger()),
	)
}
