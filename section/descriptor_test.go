package section

import (
	"testing"

	"github.com/arloliu/mozcdata/endian"
	"github.com/arloliu/mozcdata/errs"
	"github.com/arloliu/mozcdata/format"
	"github.com/stretchr/testify/require"
)

func TestDescriptor_RoundTrip(t *testing.T) {
	d := Descriptor{
		ID:     format.SectionSuffixTokens,
		Shape:  format.ShapeStruct,
		Stride: 8,
		Offset: 128,
		Length: 64,
	}

	for _, engine := range []endian.EndianEngine{endian.GetLittleEndianEngine(), endian.GetBigEndianEngine()} {
		data := d.Bytes(engine)
		require.Len(t, data, DescriptorSize)

		parsed, err := ParseDescriptor(data, engine)
		require.NoError(t, err)
		require.Equal(t, d, parsed)
		require.Equal(t, uint64(192), parsed.End())
	}
}

func TestDescriptor_WriteToSlice(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 2*DescriptorSize)

	a := Descriptor{ID: 1, Shape: format.ShapeRaw, Offset: 8, Length: 3}
	b := Descriptor{ID: 2, Shape: format.ShapeRaw, Offset: 16, Length: 5}

	next := a.WriteToSlice(buf, 0, engine)
	require.Equal(t, DescriptorSize, next)
	next = b.WriteToSlice(buf, next, engine)
	require.Equal(t, 2*DescriptorSize, next)

	parsed, err := ParseDescriptor(buf[DescriptorSize:], engine)
	require.NoError(t, err)
	require.Equal(t, b, parsed)
}

func TestParseDescriptor_Errors(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	_, err := ParseDescriptor(make([]byte, 4), engine)
	require.ErrorIs(t, err, errs.ErrTruncated)

	data := make([]byte, DescriptorSize)
	data[3] = 1
	_, err = ParseDescriptor(data, engine)
	require.ErrorIs(t, err, errs.ErrInvalidDescriptor)
}

func TestDescriptor_ValidateBounds(t *testing.T) {
	d := Descriptor{Offset: 8, Length: 16}

	require.NoError(t, d.ValidateBounds(8, 24))
	require.ErrorIs(t, d.ValidateBounds(16, 64), errs.ErrSectionOutOfBounds)
	require.ErrorIs(t, d.ValidateBounds(8, 23), errs.ErrSectionOutOfBounds)

	huge := Descriptor{Offset: MaxSectionBytes, Length: MaxSectionBytes}
	require.ErrorIs(t, huge.ValidateBounds(0, MaxSectionBytes), errs.ErrSectionOutOfBounds)
}

func TestDescriptor_ValidateAgainst(t *testing.T) {
	structSpec := Spec{ID: format.SectionSegmenterBoundary, Shape: format.ShapeStruct, Stride: 4}
	stringSpec := Spec{ID: format.SectionReadingCorrections, Shape: format.ShapeStringArray, Stride: 3}

	tests := []struct {
		name    string
		d       Descriptor
		spec    Spec
		wantErr error
	}{
		{"struct ok", Descriptor{Shape: format.ShapeStruct, Stride: 4, Length: 40}, structSpec, nil},
		{"struct empty ok", Descriptor{Shape: format.ShapeStruct, Stride: 4, Length: 0}, structSpec, nil},
		{"struct ragged", Descriptor{Shape: format.ShapeStruct, Stride: 4, Length: 42}, structSpec, errs.ErrStrideMismatch},
		{"struct wrong stride", Descriptor{Shape: format.ShapeStruct, Stride: 8, Length: 40}, structSpec, errs.ErrStrideMismatch},
		{"wrong shape", Descriptor{Shape: format.ShapeRaw, Length: 40}, structSpec, errs.ErrShapeMismatch},
		{"string arity ok", Descriptor{Shape: format.ShapeStringArray, Stride: 3, Length: 40}, stringSpec, nil},
		{"string arity mismatch", Descriptor{Shape: format.ShapeStringArray, Stride: 2, Length: 40}, stringSpec, errs.ErrStrideMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.ValidateAgainst(tt.spec)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
