package sorted

import (
	"fmt"
	"math"

	"github.com/arloliu/mozcdata/endian"
	"github.com/arloliu/mozcdata/errs"
)

// StringArray is a zero-copy view over an encoded string array.
//
// The zero value is an empty array.
type StringArray struct {
	offsets []byte // (count+1) × uint32
	data    []byte
	count   int
	arity   int
	engine  endian.EndianEngine
}

// DecodeStringArray validates an encoded string array and returns a view over it.
//
// Decoding is O(n) in the number of strings because every offset is checked
// once; lookups afterwards never re-validate.
//
// Parameters:
//   - data: Encoded array (borrowed, not copied)
//   - engine: Endian engine for byte order
//   - arity: Strings per record (must be positive and divide the count)
//
// Returns:
//   - StringArray: View over data
//   - error: ErrInvalidStringArray for malformed input
func DecodeStringArray(data []byte, engine endian.EndianEngine, arity int) (StringArray, error) {
	if arity <= 0 {
		return StringArray{}, fmt.Errorf("%w: arity %d", errs.ErrInvalidStringArray, arity)
	}
	if len(data) < 4 {
		return StringArray{}, fmt.Errorf("%w: %d bytes is shorter than the count field", errs.ErrInvalidStringArray, len(data))
	}

	count := uint64(engine.Uint32(data[0:4]))
	tableEnd := 4 + 4*(count+1)
	if tableEnd > uint64(len(data)) {
		return StringArray{}, fmt.Errorf("%w: offset table for %d strings exceeds %d bytes",
			errs.ErrInvalidStringArray, count, len(data))
	}
	if count%uint64(arity) != 0 { //nolint:gosec
		return StringArray{}, fmt.Errorf("%w: %d strings do not form records of %d",
			errs.ErrStrideMismatch, count, arity)
	}

	arr := StringArray{
		offsets: data[4:tableEnd],
		data:    data[tableEnd:],
		count:   int(count), //nolint:gosec
		arity:   arity,
		engine:  engine,
	}

	prev := uint32(0)
	for i := 0; i <= arr.count; i++ {
		off := arr.offset(i)
		if off < prev {
			return StringArray{}, fmt.Errorf("%w: offset %d of string %d precedes %d",
				errs.ErrInvalidStringArray, off, i, prev)
		}
		prev = off
	}
	if first := arr.offset(0); first != 0 {
		return StringArray{}, fmt.Errorf("%w: first offset is %d", errs.ErrInvalidStringArray, first)
	}
	if last := arr.offset(arr.count); uint64(last) != uint64(len(arr.data)) {
		return StringArray{}, fmt.Errorf("%w: final offset %d, data area is %d bytes",
			errs.ErrInvalidStringArray, last, len(arr.data))
	}

	return arr, nil
}

// DecodeSortedStringArray is DecodeStringArray plus a check that record keys
// are non-decreasing.
func DecodeSortedStringArray(data []byte, engine endian.EndianEngine, arity int) (StringArray, error) {
	arr, err := DecodeStringArray(data, engine, arity)
	if err != nil {
		return StringArray{}, err
	}

	if i := firstUnsorted(arr.Keys()); i >= 0 {
		return StringArray{}, fmt.Errorf("%w: record %d (%q) sorts before record %d (%q)",
			errs.ErrUnsorted, i, arr.Keys().Key(i), i-1, arr.Keys().Key(i-1))
	}

	return arr, nil
}

func (a StringArray) offset(i int) uint32 {
	return a.engine.Uint32(a.offsets[4*i : 4*i+4])
}

// Len returns the number of strings.
func (a StringArray) Len() int {
	return a.count
}

// Arity returns the number of strings per record.
func (a StringArray) Arity() int {
	if a.arity == 0 {
		return 1
	}

	return a.arity
}

// Records returns the number of records.
func (a StringArray) Records() int {
	return a.count / a.Arity()
}

// At returns the i-th string. The returned slice aliases the dataset buffer
// and must not be modified.
//
// Panics with a ContractViolation if i is outside [0, Len()).
func (a StringArray) At(i int) []byte {
	if i < 0 || i >= a.count {
		errs.Violate("StringArray.At", "index %d outside [0, %d)", i, a.count)
	}

	// Capacity is clipped so appends by a careless caller cannot spill into
	// the next string.
	start, end := a.offset(i), a.offset(i+1)

	return a.data[start:end:end]
}

// Field returns string field of record r.
func (a StringArray) Field(r, field int) []byte {
	arity := a.Arity()
	if field < 0 || field >= arity {
		errs.Violate("StringArray.Field", "field %d outside record arity %d", field, arity)
	}

	return a.At(r*arity + field)
}

// Record returns every field of record r. The slices alias the dataset
// buffer; only the outer slice is allocated.
func (a StringArray) Record(r int) [][]byte {
	arity := a.Arity()
	out := make([][]byte, arity)
	for f := range out {
		out[f] = a.At(r*arity + f)
	}

	return out
}

// Key returns the key (first string) of record r.
func (a StringArray) Key(r int) []byte {
	return a.Field(r, 0)
}

// Keys returns the record keys as a Keys sequence for searching.
func (a StringArray) Keys() Keys {
	return recordKeys{a}
}

type recordKeys struct {
	arr StringArray
}

func (k recordKeys) Len() int { return k.arr.Records() }

func (k recordKeys) Key(i int) []byte { return k.arr.Key(i) }

// EncodedSize returns the encoded size of strs.
func EncodedSize(strs []string) int {
	size := 4 + 4*(len(strs)+1)
	for _, s := range strs {
		size += len(s)
	}

	return size
}

// AppendStringArray appends the encoding of strs to dst.
//
// Returns an error if the array would not fit the 32-bit count and offsets.
func AppendStringArray(dst []byte, engine endian.EndianEngine, strs []string) ([]byte, error) {
	total := uint64(0)
	for _, s := range strs {
		total += uint64(len(s))
	}
	if uint64(len(strs)) >= math.MaxUint32 || total > math.MaxUint32 {
		return dst, fmt.Errorf("%w: %d strings totalling %d bytes", errs.ErrSectionTooLarge, len(strs), total)
	}

	dst = engine.AppendUint32(dst, uint32(len(strs))) //nolint:gosec

	off := uint32(0)
	dst = engine.AppendUint32(dst, off)
	for _, s := range strs {
		off += uint32(len(s)) //nolint:gosec
		dst = engine.AppendUint32(dst, off)
	}
	for _, s := range strs {
		dst = append(dst, s...)
	}

	return dst, nil
}
