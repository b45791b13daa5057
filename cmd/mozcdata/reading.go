package main

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/mozcdata/reading"
)

func init() {
	rootCmd.AddCommand(newReadingCmd())
}

func newReadingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reading <key>...",
		Short: "Convert hiragana conversion keys to display readings",
		Long: `The reading command converts each key to the halfwidth katakana reading
shown to the host system. Keys whose reading cannot be represented print an
empty line.

Example:
  mozcdata reading きょうは`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReading(args)
		},
	}

	return cmd
}

type readingResult struct {
	Key     string `json:"key"`
	Reading string `json:"reading"`
}

func runReading(args []string) error {
	results := make([]readingResult, 0, len(args))
	for _, key := range args {
		results = append(results, readingResult{Key: key, Reading: reading.KeyToReading(key)})
	}

	if jsonOut {
		return printJSON(results)
	}

	for _, r := range results {
		if verbose {
			printInfo("%s\t%s\n", r.Key, r.Reading)
		} else {
			printInfo("%s\n", r.Reading)
		}
	}

	return nil
}
