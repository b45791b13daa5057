package boundary

import (
	"fmt"

	"github.com/arloliu/mozcdata/endian"
	"github.com/arloliu/mozcdata/errs"
)

// HeaderSize is the fixed size of the matrix header.
const HeaderSize = 16

// MaxGroups is the largest number of groups a uint16 remap entry can address.
const MaxGroups = 1 << 16

// Matrix is a decoded, zero-copy boundary matrix.
//
// The zero value is an empty matrix with empty ID spaces; every Query on it
// is a contract violation.
type Matrix struct {
	leftRemap   []byte // uint16 per raw left ID
	rightRemap  []byte // uint16 per raw right ID
	bits        []byte
	leftGroups  int
	rightGroups int
	engine      endian.EndianEngine
}

// Decode validates an encoded matrix and returns a view over it.
//
// Every remap entry is checked against its group count here, so Query never
// has to bounds-check the bit array for an in-space raw ID.
//
// Parameters:
//   - data: Encoded matrix (borrowed, not copied)
//   - engine: Endian engine for byte order
//
// Returns:
//   - Matrix: View over data
//   - error: ErrInvalidMatrix or ErrStrideMismatch for malformed input
func Decode(data []byte, engine endian.EndianEngine) (Matrix, error) {
	if len(data) < HeaderSize {
		return Matrix{}, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidMatrix, len(data))
	}

	leftIDs := uint64(engine.Uint32(data[0:4]))
	rightIDs := uint64(engine.Uint32(data[4:8]))
	leftGroups := uint64(engine.Uint32(data[8:12]))
	rightGroups := uint64(engine.Uint32(data[12:16]))

	if leftGroups > MaxGroups || rightGroups > MaxGroups {
		return Matrix{}, fmt.Errorf("%w: %d×%d groups exceed %d", errs.ErrInvalidMatrix, leftGroups, rightGroups, MaxGroups)
	}
	if (leftIDs > 0 && leftGroups == 0) || (rightIDs > 0 && rightGroups == 0) {
		return Matrix{}, fmt.Errorf("%w: %d×%d IDs map to %d×%d groups",
			errs.ErrInvalidMatrix, leftIDs, rightIDs, leftGroups, rightGroups)
	}

	leftEnd := HeaderSize + 2*leftIDs
	rightEnd := leftEnd + 2*rightIDs
	bitsStart := align8(rightEnd)
	if bitsStart > uint64(len(data)) {
		return Matrix{}, fmt.Errorf("%w: remap tables need %d bytes, section has %d",
			errs.ErrInvalidMatrix, bitsStart, len(data))
	}

	bitsLen := uint64(len(data)) - bitsStart
	if bitsLen%8 != 0 {
		return Matrix{}, fmt.Errorf("%w: bit array length %d is not a multiple of 8", errs.ErrStrideMismatch, bitsLen)
	}
	if need := BitArraySize(int(leftGroups), int(rightGroups)); uint64(need) > bitsLen { //nolint:gosec
		return Matrix{}, fmt.Errorf("%w: %d×%d groups need %d bytes of bits, section has %d",
			errs.ErrInvalidMatrix, leftGroups, rightGroups, need, bitsLen)
	}

	m := Matrix{
		leftRemap:   data[HeaderSize:leftEnd],
		rightRemap:  data[leftEnd:rightEnd],
		bits:        data[bitsStart:],
		leftGroups:  int(leftGroups),  //nolint:gosec
		rightGroups: int(rightGroups), //nolint:gosec
		engine:      engine,
	}

	if err := checkRemap(m.leftRemap, engine, m.leftGroups, "left"); err != nil {
		return Matrix{}, err
	}
	if err := checkRemap(m.rightRemap, engine, m.rightGroups, "right"); err != nil {
		return Matrix{}, err
	}

	return m, nil
}

func checkRemap(table []byte, engine endian.EndianEngine, groups int, side string) error {
	for i := 0; i < len(table); i += 2 {
		if g := int(engine.Uint16(table[i : i+2])); g >= groups {
			return fmt.Errorf("%w: %s ID %d maps to group %d, only %d groups",
				errs.ErrInvalidMatrix, side, i/2, g, groups)
		}
	}

	return nil
}

// Query reports whether a boundary is permitted between left and right.
//
// Panics with a ContractViolation if either raw ID lies outside the ID
// space declared by the dataset.
func (m Matrix) Query(left, right int) bool {
	bit := m.LeftGroup(left)*m.rightGroups + m.RightGroup(right)

	return m.bits[bit>>3]&(1<<(bit&7)) != 0
}

// LeftGroup returns the group of a raw left ID.
func (m Matrix) LeftGroup(left int) int {
	if left < 0 || left >= m.LeftIDs() {
		errs.Violate("boundary.Matrix.Query", "left ID %d outside [0, %d)", left, m.LeftIDs())
	}

	return int(m.engine.Uint16(m.leftRemap[2*left:]))
}

// RightGroup returns the group of a raw right ID.
func (m Matrix) RightGroup(right int) int {
	if right < 0 || right >= m.RightIDs() {
		errs.Violate("boundary.Matrix.Query", "right ID %d outside [0, %d)", right, m.RightIDs())
	}

	return int(m.engine.Uint16(m.rightRemap[2*right:]))
}

// LeftIDs returns the size of the left raw ID space.
func (m Matrix) LeftIDs() int {
	return len(m.leftRemap) / 2
}

// RightIDs returns the size of the right raw ID space.
func (m Matrix) RightIDs() int {
	return len(m.rightRemap) / 2
}

// LeftGroups returns the number of left equivalence groups.
func (m Matrix) LeftGroups() int {
	return m.leftGroups
}

// RightGroups returns the number of right equivalence groups.
func (m Matrix) RightGroups() int {
	return m.rightGroups
}

// BitArrayBytes returns the bit array, including trailing padding.
// The returned slice aliases the dataset buffer and must not be modified.
func (m Matrix) BitArrayBytes() []byte {
	return m.bits
}

// SizeBytes returns the encoded size of the matrix, padding included.
func (m Matrix) SizeBytes() int {
	if m.bits == nil && m.leftRemap == nil {
		return 0
	}

	return int(align8(uint64(HeaderSize+len(m.leftRemap)+len(m.rightRemap)))) + len(m.bits) //nolint:gosec
}

// BitArraySize returns the unpadded byte size of a bit array for the given
// group counts.
func BitArraySize(leftGroups, rightGroups int) int {
	return (leftGroups*rightGroups + 7) / 8
}

func align8(n uint64) uint64 {
	return (n + 7) &^ 7
}
