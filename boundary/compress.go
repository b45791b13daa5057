package boundary

import (
	"fmt"

	"github.com/arloliu/mozcdata/endian"
	"github.com/arloliu/mozcdata/errs"
)

// Table is a grouped boundary matrix ready to be serialized.
type Table struct {
	LeftRemap   []uint16 // raw left ID -> group
	RightRemap  []uint16 // raw right ID -> group
	LeftGroups  int
	RightGroups int
	// Bits holds LeftGroups*RightGroups bits, least significant bit first.
	Bits []byte
}

// Compress groups a full permission table into a Table.
//
// permitted[l][r] is true when a boundary is allowed between raw left ID l
// and raw right ID r. Left IDs whose rows are identical share a group, and
// right IDs whose columns are identical share a group; groups are numbered
// in order of first appearance so the result is deterministic.
//
// Returns ErrRaggedTable when rows differ in length and ErrTooManyGroups when
// either side needs more than MaxGroups groups.
func Compress(permitted [][]bool) (Table, error) {
	leftIDs := len(permitted)
	rightIDs := 0
	if leftIDs > 0 {
		rightIDs = len(permitted[0])
	}
	for l, row := range permitted {
		if len(row) != rightIDs {
			return Table{}, fmt.Errorf("%w: row %d has %d entries, expected %d", errs.ErrRaggedTable, l, len(row), rightIDs)
		}
	}

	rowKey := func(l int) string { return bitKey(rightIDs, func(r int) bool { return permitted[l][r] }) }
	colKey := func(r int) string { return bitKey(leftIDs, func(l int) bool { return permitted[l][r] }) }

	leftRemap, leftReps, err := group(leftIDs, rowKey)
	if err != nil {
		return Table{}, fmt.Errorf("left: %w", err)
	}
	rightRemap, rightReps, err := group(rightIDs, colKey)
	if err != nil {
		return Table{}, fmt.Errorf("right: %w", err)
	}

	t := Table{
		LeftRemap:   leftRemap,
		RightRemap:  rightRemap,
		LeftGroups:  len(leftReps),
		RightGroups: len(rightReps),
		Bits:        make([]byte, BitArraySize(len(leftReps), len(rightReps))),
	}
	for lg, l := range leftReps {
		for rg, r := range rightReps {
			if permitted[l][r] {
				bit := lg*t.RightGroups + rg
				t.Bits[bit>>3] |= 1 << (bit & 7)
			}
		}
	}

	return t, nil
}

// group assigns each of n IDs to the group of the first ID with the same key.
// It returns the remap table and one representative ID per group.
func group(n int, key func(int) string) ([]uint16, []int, error) {
	remap := make([]uint16, n)
	groups := make(map[string]uint16)
	reps := make([]int, 0)

	for id := range n {
		k := key(id)
		g, ok := groups[k]
		if !ok {
			if len(reps) >= MaxGroups {
				return nil, nil, fmt.Errorf("%w: more than %d", errs.ErrTooManyGroups, MaxGroups)
			}
			g = uint16(len(reps)) //nolint:gosec
			groups[k] = g
			reps = append(reps, id)
		}
		remap[id] = g
	}

	return remap, reps, nil
}

func bitKey(n int, bit func(int) bool) string {
	b := make([]byte, (n+7)/8)
	for i := range n {
		if bit(i) {
			b[i>>3] |= 1 << (i & 7)
		}
	}

	return string(b)
}

// EncodedSize returns the byte size of the encoded table.
func (t Table) EncodedSize() int {
	tables := HeaderSize + 2*len(t.LeftRemap) + 2*len(t.RightRemap)

	return int(align8(uint64(tables))) + int(align8(uint64(BitArraySize(t.LeftGroups, t.RightGroups)))) //nolint:gosec
}

// AppendTo appends the encoded table to dst.
func (t Table) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	start := len(dst)

	dst = engine.AppendUint32(dst, uint32(len(t.LeftRemap)))  //nolint:gosec
	dst = engine.AppendUint32(dst, uint32(len(t.RightRemap))) //nolint:gosec
	dst = engine.AppendUint32(dst, uint32(t.LeftGroups))      //nolint:gosec
	dst = engine.AppendUint32(dst, uint32(t.RightGroups))     //nolint:gosec
	for _, g := range t.LeftRemap {
		dst = engine.AppendUint16(dst, g)
	}
	for _, g := range t.RightRemap {
		dst = engine.AppendUint16(dst, g)
	}
	dst = padTo8(dst, start)

	bitsStart := len(dst)
	need := BitArraySize(t.LeftGroups, t.RightGroups)
	dst = append(dst, t.Bits[:min(need, len(t.Bits))]...)
	for len(dst)-bitsStart < need {
		dst = append(dst, 0)
	}

	return padTo8(dst, start)
}

// Bytes returns the encoded table.
func (t Table) Bytes(engine endian.EndianEngine) []byte {
	return t.AppendTo(make([]byte, 0, t.EncodedSize()), engine)
}

func padTo8(dst []byte, start int) []byte {
	for (len(dst)-start)%8 != 0 {
		dst = append(dst, 0)
	}

	return dst
}
