package section

import "math"

const (
	// Footer flag bits (bytes 0-1 of the footer, always little-endian).
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0), 0=little, 1=big
	ReservedBitsMask = 0xFFFE // Mask for reserved bits (bits 1-15), must be zero

	// FormatVersion1 is the only body layout understood by this package.
	FormatVersion1 = 1
)

// offset and section sizes in the dataset buffer
const (
	FooterSize      = 32             // fixed footer size in bytes, located at the end of the buffer
	DescriptorSize  = 16             // fixed section descriptor size in bytes
	Alignment       = 8              // payload sections and the directory start on 8-byte boundaries
	ChecksumSize    = 8              // trailing xxHash64 checksum inside the footer
	MaxSectionBytes = math.MaxUint32 // descriptor offsets and lengths are 32-bit
	MaxSectionID    = 255            // section identifiers are kept small so lookups index an array
)

// Align rounds n up to the next multiple of Alignment.
func Align(n int) int {
	return (n + Alignment - 1) &^ (Alignment - 1)
}
