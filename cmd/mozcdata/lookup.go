package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/mozcdata/datamanager"
)

var lookupPrefix bool

func init() {
	rootCmd.AddCommand(newLookupCmd())
}

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <dataset> <table> <key>",
		Short: "Look up a key in one of the dataset tables",
		Long: `The lookup command searches one dataset table for a key.

Tables:
  suffix      suffix dictionary, by reading (supports --prefix)
  symbol      symbol rewriter, by reading
  counter     counter suffix words (supports --prefix)
  correction  reading corrections, by value or misreading

Example:
  mozcdata lookup mozc.data suffix が --prefix
  mozcdata lookup mozc.data symbol やじるし`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(args)
		},
	}

	cmd.Flags().BoolVar(&lookupPrefix, "prefix", false, "Match keys starting with the given key")

	return cmd
}

type lookupRow map[string]any

func runLookup(args []string) error {
	table := strings.ToLower(args[1])
	key := []byte(args[2])

	dm, err := openManager(args[0])
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	var rows []lookupRow
	switch table {
	case "suffix":
		rows = lookupSuffix(dm.SuffixDictionary(), key)
	case "symbol":
		for _, e := range dm.SymbolRewriter().Lookup(key) {
			rows = append(rows, lookupRow{
				"key":         string(e.Key),
				"value":       string(e.Value),
				"description": string(e.Description),
			})
		}
	case "counter":
		c := dm.CounterSuffixes()
		if (lookupPrefix && c.HasPrefix(key)) || (!lookupPrefix && c.Contains(key)) {
			rows = append(rows, lookupRow{"key": string(key)})
		}
	case "correction":
		for _, rc := range dm.ReadingCorrections().All() {
			if bytes.Equal(rc.Value, key) || bytes.Equal(rc.Error, key) {
				rows = append(rows, lookupRow{
					"value":      string(rc.Value),
					"error":      string(rc.Error),
					"correction": string(rc.Correction),
				})
			}
		}
	default:
		return fmt.Errorf("unknown table %q (want suffix, symbol, counter or correction)", args[1])
	}

	if len(rows) == 0 {
		return fmt.Errorf("key %q not found in %s table", args[2], table)
	}

	if jsonOut {
		return printJSON(rows)
	}

	for _, row := range rows {
		switch table {
		case "suffix":
			printInfo("%s\t%s\tlid=%d rid=%d cost=%d\n", row["key"], row["value"], row["lid"], row["rid"], row["cost"])
		case "symbol":
			printInfo("%s\t%s\t%s\n", row["key"], row["value"], row["description"])
		case "counter":
			printInfo("%s\n", row["key"])
		case "correction":
			printInfo("%s\t%s -> %s\n", row["value"], row["error"], row["correction"])
		}
	}

	return nil
}

func lookupSuffix(d datamanager.SuffixDictionary, key []byte) []lookupRow {
	var entries []datamanager.SuffixEntry
	if lookupPrefix {
		entries = d.PrefixLookup(key)
	} else {
		entries = d.Lookup(key)
	}

	rows := make([]lookupRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, lookupRow{
			"key":   string(e.Key),
			"value": string(e.Value),
			"lid":   e.LID,
			"rid":   e.RID,
			"cost":  e.Cost,
		})
	}

	return rows
}
