package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/mozcdata/endian"
	"github.com/arloliu/mozcdata/errs"
)

// FooterFlag is the packed option field stored in the first two footer bytes.
type FooterFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 1-15 are reserved and must be zero.
	Options uint16
}

// IsBigEndian returns whether the dataset body is big-endian.
func (f FooterFlag) IsBigEndian() bool {
	return f.Options&EndiannessMask != 0
}

// WithBigEndian marks the body as big-endian.
func (f *FooterFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// WithLittleEndian marks the body as little-endian.
func (f *FooterFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// GetEndianEngine returns the engine matching the endianness bit.
func (f FooterFlag) GetEndianEngine() endian.EndianEngine {
	return endian.ForBigEndian(f.IsBigEndian())
}

// Validate rejects flags with reserved bits set.
func (f FooterFlag) Validate() error {
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved flag bits 0x%04x", errs.ErrInvalidFooter, f.Options&ReservedBitsMask)
	}

	return nil
}

// Footer is the fixed-size trailer that locates the section directory.
//
//	Bytes  | Field           | Type   | Description
//	-------|-----------------|--------|------------------------------------------
//	0-1    | Flag            | uint16 | always little-endian, bit 0 = big-endian body
//	2-3    | Version         | uint16 | body layout version
//	4-7    | DescriptorCount | uint32 | number of 16-byte section descriptors
//	8-15   | DirectoryOffset | uint64 | byte offset of the first descriptor
//	16-23  | PayloadOffset   | uint64 | byte offset of the first section payload
//	24-31  | Checksum        | uint64 | xxHash64 of every byte before this field
type Footer struct {
	Flag            FooterFlag
	Version         uint16
	DescriptorCount uint32
	DirectoryOffset uint64
	PayloadOffset   uint64
	Checksum        uint64
}

// Parse parses the footer from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the footer (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrTruncated if data is not 32 bytes, or ErrInvalidFooter for bad flags
func (f *Footer) Parse(data []byte) error {
	if len(data) != FooterSize {
		return fmt.Errorf("footer: %w", errs.ErrTruncated)
	}

	// Options is always little-endian so the engine can be chosen before
	// anything else is decoded.
	f.Flag.Options = binary.LittleEndian.Uint16(data[0:2])
	if err := f.Flag.Validate(); err != nil {
		return err
	}

	engine := f.Flag.GetEndianEngine()
	f.Version = engine.Uint16(data[2:4])
	f.DescriptorCount = engine.Uint32(data[4:8])
	f.DirectoryOffset = engine.Uint64(data[8:16])
	f.PayloadOffset = engine.Uint64(data[16:24])
	f.Checksum = engine.Uint64(data[24:32])

	return nil
}

// Bytes serializes the footer into a byte slice.
func (f *Footer) Bytes() []byte {
	b := make([]byte, FooterSize)
	f.WriteToSlice(b)

	return b
}

// WriteToSlice writes the footer into data, which must hold at least 32 bytes.
func (f *Footer) WriteToSlice(data []byte) {
	engine := f.Flag.GetEndianEngine()

	binary.LittleEndian.PutUint16(data[0:2], f.Flag.Options)
	engine.PutUint16(data[2:4], f.Version)
	engine.PutUint32(data[4:8], f.DescriptorCount)
	engine.PutUint64(data[8:16], f.DirectoryOffset)
	engine.PutUint64(data[16:24], f.PayloadOffset)
	engine.PutUint64(data[24:32], f.Checksum)
}

// DirectorySize returns the byte size of the descriptor table.
func (f *Footer) DirectorySize() uint64 {
	return uint64(f.DescriptorCount) * DescriptorSize
}

// ValidateBounds checks the footer against the total buffer size and the
// length of the leading magic marker.
//
// Parameters:
//   - bufferSize: Total length of the dataset buffer
//   - magicSize: Length of the magic marker at offset 0
//
// Returns:
//   - error: ErrInvalidFooter when any region overlaps or escapes the buffer
func (f *Footer) ValidateBounds(bufferSize, magicSize int) error {
	footerStart := uint64(bufferSize - FooterSize) //nolint:gosec

	if f.PayloadOffset != uint64(Align(magicSize)) { //nolint:gosec
		return fmt.Errorf("%w: payload offset %d, expected %d", errs.ErrInvalidFooter, f.PayloadOffset, Align(magicSize))
	}
	if f.DirectoryOffset < f.PayloadOffset || f.DirectoryOffset%Alignment != 0 {
		return fmt.Errorf("%w: directory offset %d", errs.ErrInvalidFooter, f.DirectoryOffset)
	}
	if f.DirectoryOffset > footerStart || footerStart-f.DirectoryOffset != f.DirectorySize() {
		return fmt.Errorf("%w: directory [%d, +%d) does not end at footer %d",
			errs.ErrInvalidFooter, f.DirectoryOffset, f.DirectorySize(), footerStart)
	}

	return nil
}

// ParseFooter parses the footer at the end of a dataset buffer.
//
// Parameters:
//   - data: Whole dataset buffer
//
// Returns:
//   - Footer: Parsed footer
//   - error: ErrTruncated or flag validation errors
func ParseFooter(data []byte) (Footer, error) {
	if len(data) < FooterSize {
		return Footer{}, fmt.Errorf("footer: %w", errs.ErrTruncated)
	}

	f := Footer{}
	if err := f.Parse(data[len(data)-FooterSize:]); err != nil {
		return Footer{}, err
	}

	return f, nil
}
