package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newBoundaryCmd())
}

func newBoundaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boundary <dataset> <left-id> <right-id>",
		Short: "Query the segment boundary matrix",
		Long: `The boundary command reports whether a segment boundary is allowed
between a token with the given right ID and a token with the given left ID,
together with the compressed groups both IDs map to.

Example:
  mozcdata boundary mozc.data 12 340`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoundary(args)
		},
	}

	return cmd
}

type boundaryResult struct {
	Left        int   `json:"left"`
	Right       int   `json:"right"`
	Boundary    bool  `json:"boundary"`
	LeftGroup   int   `json:"left_group"`
	RightGroup  int   `json:"right_group"`
	LeftPrefix  int16 `json:"left_prefix_penalty"`
	RightSuffix int16 `json:"right_suffix_penalty"`
}

func runBoundary(args []string) error {
	left, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid left ID %q: %w", args[1], err)
	}
	right, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid right ID %q: %w", args[2], err)
	}

	dm, err := openManager(args[0])
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	seg := dm.Segmenter()
	m := seg.Matrix()
	if left < 0 || left >= m.LeftIDs() {
		return fmt.Errorf("left ID %d out of range [0, %d)", left, m.LeftIDs())
	}
	if right < 0 || right >= m.RightIDs() {
		return fmt.Errorf("right ID %d out of range [0, %d)", right, m.RightIDs())
	}

	res := boundaryResult{
		Left:       left,
		Right:      right,
		Boundary:   seg.IsBoundary(left, right),
		LeftGroup:  m.LeftGroup(left),
		RightGroup: m.RightGroup(right),
	}
	res.LeftPrefix, _ = seg.Boundary(left)
	_, res.RightSuffix = seg.Boundary(right)

	if jsonOut {
		return printJSON(res)
	}

	printInfo("boundary(%d, %d) = %t\n", res.Left, res.Right, res.Boundary)
	printVerbose("  left group %d of %d, right group %d of %d\n",
		res.LeftGroup, m.LeftGroups(), res.RightGroup, m.RightGroups())
	printVerbose("  penalties: left prefix %d, right suffix %d\n", res.LeftPrefix, res.RightSuffix)

	return nil
}
