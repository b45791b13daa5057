package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/mozcdata/endian"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <dataset>",
		Short: "Validate a dataset and print its section directory",
		Long: `The info command validates a dataset container and displays its
footer metadata and every section descriptor in buffer order.

Example:
  mozcdata info mozc.data
  mozcdata info mozc.data.zst --codec zstd --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}

	return cmd
}

type sectionInfo struct {
	ID     uint16 `json:"id"`
	Name   string `json:"name"`
	Shape  string `json:"shape"`
	Stride uint32 `json:"stride"`
	Offset uint32 `json:"offset"`
	Length uint32 `json:"length"`
}

type datasetInfo struct {
	File     string        `json:"file"`
	Size     int           `json:"size"`
	Version  uint16        `json:"version"`
	Endian   string        `json:"endian"`
	Checksum string        `json:"checksum"`
	Sections []sectionInfo `json:"sections"`
	Absent   []string      `json:"absent,omitempty"`
}

func runInfo(args []string) error {
	path := args[0]

	c, err := openContainer(path)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	info := datasetInfo{
		File:     path,
		Size:     c.Size(),
		Version:  c.Version(),
		Endian:   endian.Name(c.Engine()),
		Checksum: fmt.Sprintf("%016x", c.Checksum()),
	}
	for _, d := range c.Directory() {
		info.Sections = append(info.Sections, sectionInfo{
			ID:     uint16(d.ID),
			Name:   d.ID.String(),
			Shape:  d.Shape.String(),
			Stride: d.Stride,
			Offset: d.Offset,
			Length: d.Length,
		})
	}
	for _, spec := range c.Layout().Specs() {
		if _, ok := c.Lookup(spec.ID); !ok {
			info.Absent = append(info.Absent, spec.ID.String())
		}
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nDataset Information:\n")
	printInfo("  File: %s\n", info.File)
	printInfo("  Size: %d bytes\n", info.Size)
	printInfo("  Version: %d\n", info.Version)
	printInfo("  Endian: %s\n", info.Endian)
	printInfo("  Checksum: %s\n", info.Checksum)

	printInfo("\nSections (%d):\n", len(info.Sections))
	printInfo("  %4s  %-28s %-18s %6s %10s %10s\n", "ID", "NAME", "SHAPE", "STRIDE", "OFFSET", "LENGTH")
	for _, s := range info.Sections {
		printInfo("  %4d  %-28s %-18s %6d %10d %10d\n", s.ID, s.Name, s.Shape, s.Stride, s.Offset, s.Length)
	}

	for _, name := range info.Absent {
		printInfo("  (absent) %s\n", name)
	}

	return nil
}
