package section

import (
	"fmt"

	"github.com/arloliu/mozcdata/endian"
	"github.com/arloliu/mozcdata/errs"
	"github.com/arloliu/mozcdata/format"
)

// Descriptor locates one section inside the dataset buffer.
// It is a fixed size of 16 bytes.
//
//	Bytes  | Field    | Type   | Description
//	-------|----------|--------|---------------------------------------------
//	0-1    | ID       | uint16 | section identifier (format.SectionID)
//	2      | Shape    | uint8  | format.ShapeKind
//	3      | Reserved | uint8  | must be zero
//	4-7    | Stride   | uint32 | struct size, or record arity for string arrays
//	8-11   | Offset   | uint32 | absolute byte offset of the payload
//	12-15  | Length   | uint32 | payload length in bytes
type Descriptor struct {
	ID     format.SectionID
	Shape  format.ShapeKind
	Stride uint32
	Offset uint32
	Length uint32
}

// End returns the exclusive end offset of the section payload.
func (d Descriptor) End() uint64 {
	return uint64(d.Offset) + uint64(d.Length)
}

// Bytes returns the descriptor as a byte slice using the specified endian engine.
func (d *Descriptor) Bytes(engine endian.EndianEngine) []byte {
	var b [DescriptorSize]byte // stack allocation, it's faster than heap allocation
	d.WriteToSlice(b[:], 0, engine)

	return b[:]
}

// WriteToSlice writes to a pre-allocated slice and returns the next position.
//
// Parameters:
//   - data: Pre-allocated byte slice (must have space for 16 bytes at offset)
//   - offset: Starting position in data slice
//   - engine: Endian engine for byte order
//
// Returns:
//   - int: Next write position (offset + 16)
func (d *Descriptor) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint16(data[offset:offset+2], uint16(d.ID))
	data[offset+2] = uint8(d.Shape)
	data[offset+3] = 0
	engine.PutUint32(data[offset+4:offset+8], d.Stride)
	engine.PutUint32(data[offset+8:offset+12], d.Offset)
	engine.PutUint32(data[offset+12:offset+16], d.Length)

	return offset + DescriptorSize
}

// ParseDescriptor parses a Descriptor from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the descriptor (must be at least 16 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - Descriptor: Parsed descriptor
//   - error: ErrTruncated if data is too short, ErrInvalidDescriptor if the reserved byte is set
func ParseDescriptor(data []byte, engine endian.EndianEngine) (Descriptor, error) {
	if len(data) < DescriptorSize {
		return Descriptor{}, fmt.Errorf("descriptor: %w", errs.ErrTruncated)
	}
	if data[3] != 0 {
		return Descriptor{}, fmt.Errorf("%w: reserved byte 0x%02x", errs.ErrInvalidDescriptor, data[3])
	}

	return Descriptor{
		ID:     format.SectionID(engine.Uint16(data[0:2])),
		Shape:  format.ShapeKind(data[2]),
		Stride: engine.Uint32(data[4:8]),
		Offset: engine.Uint32(data[8:12]),
		Length: engine.Uint32(data[12:16]),
	}, nil
}

// ValidateBounds checks that the payload lies inside [payloadStart, payloadEnd).
func (d Descriptor) ValidateBounds(payloadStart, payloadEnd uint64) error {
	if uint64(d.Offset) < payloadStart || d.End() > payloadEnd {
		return fmt.Errorf("%w: [%d, %d) outside payload area [%d, %d)",
			errs.ErrSectionOutOfBounds, d.Offset, d.End(), payloadStart, payloadEnd)
	}

	return nil
}

// ValidateAgainst checks the descriptor shape and stride against the layout spec.
//
// Shape-specific payload checks (bit matrix sizing, string offsets) need to
// decode the payload and are performed by the boundary and sorted packages.
func (d Descriptor) ValidateAgainst(spec Spec) error {
	if d.Shape != spec.Shape {
		return fmt.Errorf("%w: got %s, expected %s", errs.ErrShapeMismatch, d.Shape, spec.Shape)
	}
	if d.Stride != spec.Stride {
		return fmt.Errorf("%w: got %d, expected %d", errs.ErrStrideMismatch, d.Stride, spec.Stride)
	}

	switch d.Shape {
	case format.ShapeStruct:
		if d.Stride == 0 || d.Length%d.Stride != 0 {
			return fmt.Errorf("%w: length %d is not a multiple of stride %d", errs.ErrStrideMismatch, d.Length, d.Stride)
		}
	case format.ShapeStringArray, format.ShapeSortedStringArray:
		if d.Stride == 0 {
			return fmt.Errorf("%w: string array arity must be positive", errs.ErrStrideMismatch)
		}
	}

	return nil
}
