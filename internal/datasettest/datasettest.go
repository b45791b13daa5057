// Package datasettest builds small, complete datasets for tests outside the
// dataset package.
package datasettest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mozcdata/boundary"
	"github.com/arloliu/mozcdata/dataset"
	"github.com/arloliu/mozcdata/format"
)

// Magic is the marker Build uses unless told otherwise.
var Magic = []byte("\xEFMOZC\r\n")

// Matrix is the segmenter permission table of every built dataset.
var Matrix = [][]bool{
	{true, false, true},
	{false, false, false},
	{true, false, true},
	{true, true, true},
}

// CounterSuffixes are the counter words of every built dataset.
var CounterSuffixes = []string{"個", "冊", "本", "本目"}

// Build returns a complete format version 1 dataset with usage data.
func Build(tb testing.TB, magic []byte, opts ...dataset.BuilderOption) []byte {
	tb.Helper()

	b, err := dataset.NewBuilder(opts...)
	require.NoError(tb, err)
	engine := b.Engine()

	u16 := func(values ...uint16) []byte {
		out := make([]byte, 0, 2*len(values))
		for _, v := range values {
			out = engine.AppendUint16(out, v)
		}

		return out
	}
	u32 := func(values ...uint32) []byte {
		out := make([]byte, 0, 4*len(values))
		for _, v := range values {
			out = engine.AppendUint32(out, v)
		}

		return out
	}

	table, err := boundary.Compress(Matrix)
	require.NoError(tb, err)

	steps := []error{
		b.AddRaw(format.SectionPosGroup, []byte{0, 1, 2, 3}),
		b.AddRaw(format.SectionConnector, []byte("connector")),
		b.AddRaw(format.SectionSystemDictionary, []byte("dictionary")),
		b.AddMatrix(format.SectionSegmenterMatrix, table),
		b.AddStructs(format.SectionSegmenterBoundary, u16(1, 2, 3, 4, 5, 6, 7, 8)),
		b.AddSortedStrings(format.SectionSuffixKeys, []string{"か", "がる", "さ"}),
		b.AddStrings(format.SectionSuffixValues, []string{"か", "がる", "さ"}),
		b.AddStructs(format.SectionSuffixTokens, u16(
			11, 11, 200, 0,
			12, 12, 300, 0,
			14, 14, 400, 0,
		)),
		b.AddStrings(format.SectionReadingCorrections, []string{"雰囲気", "ふいんき", "ふんいき"}),
		b.AddRaw(format.SectionCollocation, []byte("collocation")),
		b.AddRaw(format.SectionCollocationSuppression, []byte("suppression")),
		b.AddRaw(format.SectionSuggestionFilter, []byte("suggestion")),
		b.AddSortedStrings(format.SectionSymbolRewriter, []string{
			"ほし", "☆", "白星",
			"やじるし", "→", "右",
		}),
		b.AddSortedStrings(format.SectionCounterSuffix, CounterSuffixes),
		b.AddStrings(format.SectionUsageBaseConjugationSuffix, []string{"る", "る"}),
		b.AddStrings(format.SectionUsageConjugationSuffix, []string{"る", "る", "た", "た"}),
		b.AddStructs(format.SectionUsageConjugationIndex, u32(0, 2)),
		b.AddStructs(format.SectionUsageItems, u32(1, 1, 2, 0, 3)),
		b.AddStrings(format.SectionUsageStrings, []string{"", "みる", "見る", "目で見る"}),
	}
	for _, err := range steps {
		require.NoError(tb, err)
	}

	data, err := b.Finish(magic)
	require.NoError(tb, err)

	return data
}
