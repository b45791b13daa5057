package compress

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4SizePrefix is the length of the little-endian uncompressed size written
// before the LZ4 block. Raw LZ4 blocks do not record their inflated size.
const lz4SizePrefix = 4

// lz4MaxRatio bounds the inflation of a single LZ4 block.
const lz4MaxRatio = 256

// lz4CompressorPool pools lz4.CompressorHC instances for reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.CompressorHC{Level: lz4.Level9}
	},
}

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data as a size-prefixed LZ4 block.
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error, or an error for inputs of 4GiB or more
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("lz4: input of %d bytes exceeds size prefix", len(data))
	}

	dst := make([]byte, lz4SizePrefix+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst[:lz4SizePrefix], uint32(len(data))) //nolint:gosec

	lc, _ := lz4CompressorPool.Get().(*lz4.CompressorHC)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[lz4SizePrefix:])
	if err != nil {
		return nil, err
	}

	// Incompressible input is stored as-is; a block as long as the
	// original is never emitted, so equal lengths mean stored.
	if n == 0 || n >= len(data) {
		n = copy(dst[lz4SizePrefix:], data)
	}

	return dst[:lz4SizePrefix+n], nil
}

// Decompress decompresses a size-prefixed LZ4 block.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < lz4SizePrefix {
		return nil, fmt.Errorf("lz4: %d bytes is shorter than the size prefix", len(data))
	}

	size := binary.LittleEndian.Uint32(data[:lz4SizePrefix])
	if uint64(size) > uint64(len(data)-lz4SizePrefix)*lz4MaxRatio {
		return nil, fmt.Errorf("lz4: size prefix %d exceeds block capacity", size)
	}
	buf := make([]byte, size)

	if len(data)-lz4SizePrefix == int(size) {
		copy(buf, data[lz4SizePrefix:])

		return buf, nil
	}

	n, err := lz4.UncompressBlock(data[lz4SizePrefix:], buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != int(size) {
		return nil, fmt.Errorf("lz4: inflated %d bytes, expected %d", n, size)
	}

	return buf, nil
}
