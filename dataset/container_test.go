package dataset

import (
	"bytes"
	"errors"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mozcdata/compress"
	"github.com/arloliu/mozcdata/endian"
	"github.com/arloliu/mozcdata/errs"
	"github.com/arloliu/mozcdata/format"
	"github.com/arloliu/mozcdata/section"
	"github.com/arloliu/mozcdata/sorted"
)

func requireContractViolation(t *testing.T, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")

		var cv *errs.ContractViolation
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.As(err, &cv), "panic value %v is not a ContractViolation", r)
	}()

	fn()
}

func TestLoad_Valid(t *testing.T) {
	tests := []struct {
		name   string
		opts   []BuilderOption
		engine endian.EndianEngine
	}{
		{"little endian", nil, endian.GetLittleEndianEngine()},
		{"big endian", []BuilderOption{WithBigEndian()}, endian.GetBigEndianEngine()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildFixture(t, fixtureConfig{opts: tt.opts})

			c, err := Load(data, testMagic)
			require.NoError(t, err)
			require.Equal(t, len(data), c.Size())
			require.Equal(t, uint16(section.FormatVersion1), c.Version())
			require.Equal(t, endian.IsBigEndian(tt.engine), endian.IsBigEndian(c.Engine()))
			require.Len(t, c.Directory(), section.LayoutV1().Len())

			for _, spec := range section.LayoutV1().Specs() {
				v := c.Section(spec.ID)
				require.Equal(t, spec.ID, v.ID())
				require.Equal(t, spec.Shape, v.Shape())
				require.True(t, v.Present(), spec.ID.String())
			}

			for _, d := range c.Directory() {
				require.LessOrEqual(t, d.End(), uint64(len(data)))
				require.Zero(t, d.Offset%section.Alignment)
			}

			require.Equal(t, "connector-matrix", string(c.Section(format.SectionConnector).Bytes()))

			boundaries := c.Section(format.SectionSegmenterBoundary)
			require.Equal(t, 4, boundaries.Len())
			require.Equal(t, uint16(3), boundaries.Uint16(1, 0))
			require.Equal(t, uint16(4), boundaries.Uint16(1, 2))

			m := c.Section(format.SectionSegmenterMatrix).Matrix()
			for l, row := range fixtureTable {
				for r, want := range row {
					require.Equal(t, want, m.Query(l, r))
				}
			}

			keys := c.Section(format.SectionSuffixKeys).Strings()
			lo, hi := sorted.FindAll(keys.Keys(), []byte("がる"))
			require.Equal(t, 2, lo)
			require.Equal(t, 4, hi)
		})
	}
}

func TestLoad_ViewsAliasBuffer(t *testing.T) {
	data := buildFixture(t, fixtureConfig{})
	c, err := Load(data, testMagic)
	require.NoError(t, err)

	raw := c.Section(format.SectionSystemDictionary).Bytes()
	require.NotEmpty(t, raw)

	start := uintptr(0)
	for i := range data {
		if &data[i] == &raw[0] {
			start = uintptr(i)
			break
		}
	}
	require.NotZero(t, start, "view does not point into the loaded buffer")
	require.Equal(t, len(raw), cap(raw))
}

func TestLoad_MagicBitFlip(t *testing.T) {
	data := buildFixture(t, fixtureConfig{})

	for bit := range len(testMagic) * 8 {
		t.Run(strconv.Itoa(bit), func(t *testing.T) {
			flipped := clone(data)
			flipped[bit/8] ^= 1 << (bit % 8)

			_, err := Load(flipped, testMagic)
			require.ErrorIs(t, err, errs.ErrIntegrity)
			require.ErrorIs(t, err, errs.ErrMagicMismatch)
		})
	}
}

func TestLoad_ShortBuffer(t *testing.T) {
	_, err := Load(testMagic[:3], testMagic)
	require.ErrorIs(t, err, errs.ErrMagicMismatch)

	_, err = Load(nil, testMagic)
	require.ErrorIs(t, err, errs.ErrIntegrity)

	_, err = Load(append(clone(testMagic), 0, 0), testMagic)
	require.ErrorIs(t, err, errs.ErrTruncated)
	require.ErrorIs(t, err, errs.ErrFormat)
}

func TestLoad_Checksum(t *testing.T) {
	data := buildFixture(t, fixtureConfig{})
	c, err := Load(data, testMagic)
	require.NoError(t, err)

	off := c.Directory()[0].Offset
	corrupted := clone(data)
	corrupted[off] ^= 0xff

	_, err = Load(corrupted, testMagic)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	require.ErrorIs(t, err, errs.ErrIntegrity)

	_, err = Load(corrupted, testMagic, WithChecksum(false))
	require.NoError(t, err)
}

func TestLoad_FormatErrors(t *testing.T) {
	base := buildFixture(t, fixtureConfig{})
	engine := endian.GetLittleEndianEngine()

	tests := []struct {
		name    string
		mutate  func(data []byte) []byte
		wantErr error
	}{
		{
			name: "unsupported version",
			mutate: func(data []byte) []byte {
				engine.PutUint16(data[len(data)-section.FooterSize+2:], 2)
				return data
			},
			wantErr: errs.ErrUnsupportedVersion,
		},
		{
			name: "reserved footer flag",
			mutate: func(data []byte) []byte {
				data[len(data)-section.FooterSize] |= 0x80
				return data
			},
			wantErr: errs.ErrInvalidFooter,
		},
		{
			name: "directory offset",
			mutate: func(data []byte) []byte {
				off := len(data) - section.FooterSize + 8
				engine.PutUint64(data[off:], engine.Uint64(data[off:])+8)
				return data
			},
			wantErr: errs.ErrInvalidFooter,
		},
		{
			name: "section beyond directory",
			mutate: func(data []byte) []byte {
				off := descriptorAt(t, data, format.SectionPosGroup)
				engine.PutUint32(data[off+12:], uint32(len(data)))
				return data
			},
			wantErr: errs.ErrSectionOutOfBounds,
		},
		{
			name: "section over magic",
			mutate: func(data []byte) []byte {
				off := descriptorAt(t, data, format.SectionPosGroup)
				engine.PutUint32(data[off+8:], 0)
				return data
			},
			wantErr: errs.ErrSectionOutOfBounds,
		},
		{
			name: "overlapping sections",
			mutate: func(data []byte) []byte {
				pos := descriptorAt(t, data, format.SectionPosGroup)
				conn := descriptorAt(t, data, format.SectionConnector)
				copy(data[conn+8:conn+12], data[pos+8:pos+12])
				return data
			},
			wantErr: errs.ErrInvalidDescriptor,
		},
		{
			name: "misaligned section",
			mutate: func(data []byte) []byte {
				off := descriptorAt(t, data, format.SectionConnector)
				engine.PutUint32(data[off+8:], engine.Uint32(data[off+8:])+1)
				return data
			},
			wantErr: errs.ErrInvalidDescriptor,
		},
		{
			name: "reserved descriptor byte",
			mutate: func(data []byte) []byte {
				data[descriptorAt(t, data, format.SectionConnector)+3] = 1
				return data
			},
			wantErr: errs.ErrInvalidDescriptor,
		},
		{
			name: "stride mismatch",
			mutate: func(data []byte) []byte {
				off := descriptorAt(t, data, format.SectionSuffixTokens)
				engine.PutUint32(data[off+4:], 4)
				return data
			},
			wantErr: errs.ErrStrideMismatch,
		},
		{
			name: "shape mismatch",
			mutate: func(data []byte) []byte {
				data[descriptorAt(t, data, format.SectionPosGroup)+2] = byte(format.ShapeStruct)
				return data
			},
			wantErr: errs.ErrShapeMismatch,
		},
		{
			name: "unknown section",
			mutate: func(data []byte) []byte {
				engine.PutUint16(data[descriptorAt(t, data, format.SectionCollocation):], 200)
				return data
			},
			wantErr: errs.ErrUnknownSection,
		},
		{
			name: "duplicate section",
			mutate: func(data []byte) []byte {
				off := descriptorAt(t, data, format.SectionConnector)
				engine.PutUint16(data[off:], uint16(format.SectionPosGroup))
				return data
			},
			wantErr: errs.ErrDuplicateSection,
		},
		{
			name: "unsorted keys",
			mutate: func(data []byte) []byte {
				// swap the first bytes of "個" and "本" in the counter suffix data area
				off := descriptorAt(t, data, format.SectionCounterSuffix)
				start := int(engine.Uint32(data[off+8:]))
				area := start + 4 + 4*(len(fixtureCounterWords)+1)
				data[area], data[area+3+3] = data[area+3+3], data[area]
				data[area+1], data[area+3+3+1] = data[area+3+3+1], data[area+1]
				data[area+2], data[area+3+3+2] = data[area+3+3+2], data[area+2]
				return data
			},
			wantErr: errs.ErrUnsorted,
		},
		{
			name: "matrix remap out of range",
			mutate: func(data []byte) []byte {
				off := descriptorAt(t, data, format.SectionSegmenterMatrix)
				start := int(engine.Uint32(data[off+8:]))
				engine.PutUint16(data[start+16:], 0xffff)
				return data
			},
			wantErr: errs.ErrInvalidMatrix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(clone(base))
			reseal(data)

			c, err := Load(data, testMagic)
			require.Nil(t, c)
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, errs.ErrFormat)
		})
	}
}

func TestLoad_FormatErrorNamesSection(t *testing.T) {
	data := clone(buildFixture(t, fixtureConfig{}))
	off := descriptorAt(t, data, format.SectionSuffixTokens)
	data[off+4] = 3
	reseal(data)

	_, err := Load(data, testMagic)

	var fe *errs.FormatError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "SuffixTokens", fe.Section)
}

func TestLoad_MissingRequiredSection(t *testing.T) {
	specs := section.LayoutV1().Specs()
	for i := range specs {
		if specs[i].ID == format.SectionCounterSuffix {
			specs[i].Optional = true
		}
	}
	relaxed := section.MustLayout(section.FormatVersion1, specs...)

	b, err := NewBuilder(WithTargetLayout(relaxed))
	require.NoError(t, err)
	for _, spec := range relaxed.Specs() {
		if spec.Shape == format.ShapeRaw {
			require.NoError(t, b.AddRaw(spec.ID, nil))
		}
	}

	_, err = b.Finish(testMagic)
	require.ErrorIs(t, err, errs.ErrMissingSection)

	data := buildFixture(t, fixtureConfig{
		opts: []BuilderOption{WithTargetLayout(relaxed)},
		skip: []format.SectionID{format.SectionCounterSuffix},
	})
	_, err = Load(data, testMagic)
	require.ErrorIs(t, err, errs.ErrMissingSection)

	var fe *errs.FormatError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "CounterSuffix", fe.Section)

	_, err = Load(data, testMagic, WithLayout(relaxed))
	require.NoError(t, err)
}

func TestLoad_OptionalAbsent(t *testing.T) {
	data := buildFixture(t, fixtureConfig{skipUsage: true})

	c, err := Load(data, testMagic)
	require.NoError(t, err)
	require.Len(t, c.Directory(), section.LayoutV1().Len()-5)

	v := c.Section(format.SectionUsageItems)
	require.True(t, v.IsEmpty())
	require.False(t, v.Present())
	require.Equal(t, format.SectionUsageItems, v.ID())
	require.Equal(t, 20, v.Stride())
	require.Empty(t, v.Bytes())

	strs := c.Section(format.SectionUsageStrings).Strings()
	require.Zero(t, strs.Len())

	_, ok := c.Lookup(format.SectionUsageItems)
	require.False(t, ok)
	requireContractViolation(t, func() { v.At(0) })
}

func TestContainer_SectionUnknown(t *testing.T) {
	c, err := Load(buildFixture(t, fixtureConfig{}), testMagic)
	require.NoError(t, err)

	requireContractViolation(t, func() { c.Section(format.SectionID(99)) })
	requireContractViolation(t, func() { c.Section(format.SectionID(4000)) })

	_, ok := c.Lookup(format.SectionID(99))
	require.False(t, ok)

	v, ok := c.Lookup(format.SectionPosGroup)
	require.True(t, ok)
	require.Equal(t, 4, v.Len())
}

func TestContainer_DirectoryIsCopy(t *testing.T) {
	c, err := Load(buildFixture(t, fixtureConfig{}), testMagic)
	require.NoError(t, err)

	dir := c.Directory()
	dir[0].Length = 0
	require.NotZero(t, c.Directory()[0].Length)
}

func TestLoadCompressed(t *testing.T) {
	data := buildFixture(t, fixtureConfig{})

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(ct)
			require.NoError(t, err)
			packed, err := codec.Compress(clone(data))
			require.NoError(t, err)

			c, err := LoadCompressed(packed, ct, testMagic)
			require.NoError(t, err)
			require.Equal(t, data, c.Bytes())
		})
	}

	_, err := LoadCompressed(data, format.CompressionType(9), testMagic)
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = LoadCompressed([]byte("not zstd"), format.CompressionZstd, testMagic)
	require.Error(t, err)
}

func TestLoad_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Load(buildFixture(t, fixtureConfig{skipUsage: true}), testMagic, WithLogger(logger))
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"msg":"dataset loaded"`)
	require.Contains(t, buf.String(), "UsageItems")
}

func BenchmarkLoad(b *testing.B) {
	data := buildFixture(b, fixtureConfig{})

	b.ReportAllocs()
	for b.Loop() {
		_, _ = Load(data, testMagic)
	}
}

func BenchmarkContainer_Section(b *testing.B) {
	c, err := Load(buildFixture(b, fixtureConfig{}), testMagic)
	require.NoError(b, err)

	b.ReportAllocs()
	for b.Loop() {
		_ = c.Section(format.SectionSuffixKeys)
	}
}

func TestOverlapping(t *testing.T) {
	dir := []section.Descriptor{
		{ID: format.SectionPosGroup, Offset: 8, Length: 8},
		{ID: format.SectionConnector, Offset: 16, Length: 0},
		{ID: format.SectionSystemDictionary, Offset: 16, Length: 16},
	}

	tests := []struct {
		name   string
		desc   section.Descriptor
		want   format.SectionID
		wantOK bool
	}{
		{name: "after all", desc: section.Descriptor{Offset: 32, Length: 8}},
		{name: "empty inside", desc: section.Descriptor{Offset: 24, Length: 0}},
		{name: "adjacent", desc: section.Descriptor{Offset: 0, Length: 8}},
		{name: "same start", desc: section.Descriptor{Offset: 8, Length: 1}, want: format.SectionPosGroup, wantOK: true},
		{name: "tail", desc: section.Descriptor{Offset: 24, Length: 16}, want: format.SectionSystemDictionary, wantOK: true},
		{name: "spanning", desc: section.Descriptor{Offset: 0, Length: 64}, want: format.SectionPosGroup, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := overlapping(dir, tt.desc)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				require.Equal(t, tt.want, got.ID)
			}
		})
	}
}
