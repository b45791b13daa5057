package datamanager

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mozcdata/boundary"
	"github.com/arloliu/mozcdata/dataset"
	"github.com/arloliu/mozcdata/format"
)

// fixture describes a small but complete dataset. Tests tweak one field to
// produce inconsistent datasets.
type fixture struct {
	opts         []dataset.BuilderOption
	matrix       [][]bool
	boundaries   []uint16 // prefix, suffix penalty per POS ID
	suffixKeys   []string
	suffixValues []string
	suffixTokens []uint16 // lid, rid, cost, reserved per entry
	corrections  []string
	symbols      []string
	counters     []string

	usage        bool
	baseConj     []string
	conjugations []string
	conjIndex    []uint32
	usageItems   []uint32 // id, key, value, conjugation, meaning per item
	usageStrings []string
}

func newFixture() *fixture {
	return &fixture{
		matrix: [][]bool{
			{true, false, true},
			{false, false, false},
			{true, false, true},
			{true, true, true},
		},
		boundaries:   []uint16{1, 2, 3, 4, 5, 6, 0xfffe, 8},
		suffixKeys:   []string{"", "か", "がる", "がる", "さ"},
		suffixValues: []string{"", "か", "がる", "ガル", "さ"},
		suffixTokens: []uint16{
			10, 10, 100, 0,
			11, 11, 200, 0,
			12, 12, 300, 0,
			12, 13, 310, 0,
			14, 14, 400, 0,
		},
		corrections: []string{
			"雰囲気", "ふいんき", "ふんいき",
			"手数", "てすう", "てかず",
		},
		symbols: []string{
			"→", "矢印", "やじるし",
			"ほし", "☆", "白星",
			"やじるし", "→", "右",
			"やじるし", "←", "左",
		},
		counters: []string{"個", "冊", "本", "本目"},

		usage:        true,
		baseConj:     []string{"る", "る", "る", "る"},
		conjugations: []string{"る", "る", "た", "た", "る", "る", "ない", "ない"},
		conjIndex:    []uint32{0, 2, 4},
		usageItems: []uint32{
			1, 1, 2, 0, 3,
			2, 4, 5, 1, 6,
		},
		usageStrings: []string{"", "みる", "見る", "目で見る", "たべる", "食べる", "口に入れる"},
	}
}

func (f *fixture) build(t testing.TB, magic []byte) []byte {
	t.Helper()

	b, err := dataset.NewBuilder(f.opts...)
	require.NoError(t, err)
	engine := b.Engine()

	u16 := func(values []uint16) []byte {
		out := make([]byte, 0, 2*len(values))
		for _, v := range values {
			out = engine.AppendUint16(out, v)
		}

		return out
	}
	u32 := func(values []uint32) []byte {
		out := make([]byte, 0, 4*len(values))
		for _, v := range values {
			out = engine.AppendUint32(out, v)
		}

		return out
	}

	table, err := boundary.Compress(f.matrix)
	require.NoError(t, err)

	require.NoError(t, b.AddRaw(format.SectionPosGroup, []byte{0, 1, 2, 3}))
	require.NoError(t, b.AddRaw(format.SectionConnector, []byte("connector")))
	require.NoError(t, b.AddRaw(format.SectionSystemDictionary, []byte("dictionary")))
	require.NoError(t, b.AddMatrix(format.SectionSegmenterMatrix, table))
	require.NoError(t, b.AddStructs(format.SectionSegmenterBoundary, u16(f.boundaries)))
	require.NoError(t, b.AddSortedStrings(format.SectionSuffixKeys, f.suffixKeys))
	require.NoError(t, b.AddStrings(format.SectionSuffixValues, f.suffixValues))
	require.NoError(t, b.AddStructs(format.SectionSuffixTokens, u16(f.suffixTokens)))
	require.NoError(t, b.AddStrings(format.SectionReadingCorrections, f.corrections))
	require.NoError(t, b.AddRaw(format.SectionCollocation, []byte("collocation")))
	require.NoError(t, b.AddRaw(format.SectionCollocationSuppression, []byte("suppression")))
	require.NoError(t, b.AddRaw(format.SectionSuggestionFilter, []byte("suggestion")))
	require.NoError(t, b.AddSortedStrings(format.SectionSymbolRewriter, f.symbols))
	require.NoError(t, b.AddSortedStrings(format.SectionCounterSuffix, f.counters))

	if f.usage {
		require.NoError(t, b.AddStrings(format.SectionUsageBaseConjugationSuffix, f.baseConj))
		require.NoError(t, b.AddStrings(format.SectionUsageConjugationSuffix, f.conjugations))
		require.NoError(t, b.AddStructs(format.SectionUsageConjugationIndex, u32(f.conjIndex)))
		require.NoError(t, b.AddStructs(format.SectionUsageItems, u32(f.usageItems)))
		require.NoError(t, b.AddStrings(format.SectionUsageStrings, f.usageStrings))
	}

	data, err := b.Finish(magic)
	require.NoError(t, err)

	return data
}
