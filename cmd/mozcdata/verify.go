package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <dataset>...",
		Short: "Fully load one or more datasets and report failures",
		Long: `The verify command loads every given dataset through the data manager,
which checks the container layout, the checksum and the consistency of
related sections. Files are verified in parallel.

Example:
  mozcdata verify oss.data chromeos.data android.data`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}

	return cmd
}

type verifyResult struct {
	File  string `json:"file"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func runVerify(args []string) error {
	results := make([]verifyResult, len(args))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range args {
		g.Go(func() error {
			results[i] = verifyResult{File: path, OK: true}
			if _, err := openManager(path); err != nil {
				results[i].OK = false
				results[i].Error = err.Error()

				return fmt.Errorf("%s: %w", path, err)
			}

			return nil
		})
	}
	// every file is verified even after a failure; Wait reports the first one
	waitErr := g.Wait()

	if jsonOut {
		if err := printJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.OK {
				printInfo("  ✓ %s\n", r.File)
			} else {
				printInfo("  ✗ %s: %s\n", r.File, r.Error)
			}
		}
	}

	if waitErr != nil {
		failed := 0
		for _, r := range results {
			if !r.OK {
				failed++
			}
		}

		return fmt.Errorf("%d of %d dataset(s) failed verification, first: %w", failed, len(results), waitErr)
	}

	return nil
}
