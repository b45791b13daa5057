package dataset

import (
	"encoding/binary"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mozcdata/boundary"
	"github.com/arloliu/mozcdata/endian"
	"github.com/arloliu/mozcdata/format"
	"github.com/arloliu/mozcdata/internal/hash"
	"github.com/arloliu/mozcdata/section"
)

var testMagic = []byte("\xEFMOZC\r\n")

var (
	fixtureSuffixKeys   = []string{"", "か", "がる", "がる", "さ"}
	fixtureCounterWords = []string{"個", "冊", "本", "本目"}
	fixtureSymbols      = []string{
		"→", "矢印", "やじるし",
		"☆", "記号", "ほし",
		"〒", "郵便", "ゆうびん",
	}
)

var fixtureTable = [][]bool{
	{true, false, true},
	{false, false, false},
	{true, false, true},
	{true, true, true},
}

func appendStructs(engine endian.EndianEngine, values ...uint16) []byte {
	out := make([]byte, 0, 2*len(values))
	for _, v := range values {
		out = engine.AppendUint16(out, v)
	}

	return out
}

func appendUint32s(engine endian.EndianEngine, values ...uint32) []byte {
	out := make([]byte, 0, 4*len(values))
	for _, v := range values {
		out = engine.AppendUint32(out, v)
	}

	return out
}

type fixtureConfig struct {
	opts      []BuilderOption
	skipUsage bool
	skip      []format.SectionID
}

func (c fixtureConfig) skips(id format.SectionID) bool {
	if c.skipUsage && id >= format.SectionUsageBaseConjugationSuffix && id <= format.SectionUsageStrings {
		return true
	}

	return slices.Contains(c.skip, id)
}

// buildFixture assembles a complete format version 1 dataset.
func buildFixture(t testing.TB, cfg fixtureConfig) []byte {
	t.Helper()

	b, err := NewBuilder(cfg.opts...)
	require.NoError(t, err)
	engine := b.Engine()

	table, err := boundary.Compress(fixtureTable)
	require.NoError(t, err)

	add := func(id format.SectionID, fn func() error) {
		if !cfg.skips(id) {
			require.NoError(t, fn(), id.String())
		}
	}

	add(format.SectionPosGroup, func() error { return b.AddRaw(format.SectionPosGroup, []byte{0, 1, 1, 2}) })
	add(format.SectionConnector, func() error { return b.AddRaw(format.SectionConnector, []byte("connector-matrix")) })
	add(format.SectionSystemDictionary, func() error {
		return b.AddRaw(format.SectionSystemDictionary, []byte("system-dictionary"))
	})
	add(format.SectionSegmenterMatrix, func() error { return b.AddMatrix(format.SectionSegmenterMatrix, table) })
	// prefix/suffix penalties for each of the four left IDs
	add(format.SectionSegmenterBoundary, func() error {
		return b.AddStructs(format.SectionSegmenterBoundary, appendStructs(engine, 1, 2, 3, 4, 5, 6, 7, 8))
	})
	add(format.SectionSuffixKeys, func() error { return b.AddSortedStrings(format.SectionSuffixKeys, fixtureSuffixKeys) })
	add(format.SectionSuffixValues, func() error {
		return b.AddStrings(format.SectionSuffixValues, []string{"", "か", "がる", "ガル", "さ"})
	})
	add(format.SectionSuffixTokens, func() error {
		return b.AddStructs(format.SectionSuffixTokens, appendStructs(engine,
			10, 10, 100, 0,
			11, 11, 200, 0,
			12, 12, 300, 0,
			12, 13, 310, 0,
			14, 14, 400, 0,
		))
	})
	add(format.SectionReadingCorrections, func() error {
		return b.AddStrings(format.SectionReadingCorrections, []string{
			"アンイ", "あんい", "やすい",
			"ジュンプウマンパン", "じゅんぷうまんぱん", "じゅんぷうまんぽ",
		})
	})
	add(format.SectionCollocation, func() error { return b.AddRaw(format.SectionCollocation, []byte("collocation")) })
	add(format.SectionCollocationSuppression, func() error {
		return b.AddRaw(format.SectionCollocationSuppression, []byte("suppression"))
	})
	add(format.SectionSuggestionFilter, func() error { return b.AddRaw(format.SectionSuggestionFilter, []byte("filter")) })
	add(format.SectionSymbolRewriter, func() error { return b.AddSortedStrings(format.SectionSymbolRewriter, fixtureSymbols) })
	add(format.SectionCounterSuffix, func() error {
		return b.AddSortedStrings(format.SectionCounterSuffix, fixtureCounterWords)
	})
	add(format.SectionUsageBaseConjugationSuffix, func() error {
		return b.AddStrings(format.SectionUsageBaseConjugationSuffix, []string{"る", "る"})
	})
	add(format.SectionUsageConjugationSuffix, func() error {
		return b.AddStrings(format.SectionUsageConjugationSuffix, []string{"る", "る", "た", "た"})
	})
	add(format.SectionUsageConjugationIndex, func() error {
		return b.AddStructs(format.SectionUsageConjugationIndex, appendUint32s(engine, 0, 2))
	})
	add(format.SectionUsageItems, func() error { return b.AddStructs(format.SectionUsageItems, make([]byte, 20)) })
	add(format.SectionUsageStrings, func() error { return b.AddStrings(format.SectionUsageStrings, []string{"", "見る"}) })

	data, err := b.Finish(testMagic)
	require.NoError(t, err)

	return data
}

func clone(data []byte) []byte {
	return append([]byte(nil), data...)
}

// reseal recomputes the footer checksum after a test mutated the buffer.
func reseal(data []byte) {
	flags := binary.LittleEndian.Uint16(data[len(data)-section.FooterSize:])
	engine := endian.ForBigEndian(flags&section.EndiannessMask != 0)
	engine.PutUint64(data[len(data)-section.ChecksumSize:], hash.Checksum(data[:len(data)-section.ChecksumSize]))
}

// descriptorAt returns the byte offset of the descriptor of id.
func descriptorAt(t testing.TB, data []byte, id format.SectionID) int {
	t.Helper()

	footer, err := section.ParseFooter(data)
	require.NoError(t, err)
	engine := footer.Flag.GetEndianEngine()

	for i := range int(footer.DescriptorCount) {
		off := int(footer.DirectoryOffset) + i*section.DescriptorSize
		if format.SectionID(engine.Uint16(data[off:off+2])) == id {
			return off
		}
	}
	t.Fatalf("section %s not in directory", id)

	return -1
}
