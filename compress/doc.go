// Package compress provides the codecs used to ship a dataset in a compressed
// envelope.
//
// A dataset is normally embedded uncompressed so it can be viewed in place.
// When binary size matters more than startup time, the build can embed the
// dataset compressed instead; dataset.LoadCompressed then inflates it exactly
// once and the inflated buffer becomes the container's owned buffer. Views
// are still zero-copy against that buffer.
//
// # Supported Codecs
//
//   - None: pass-through, returns its input
//   - Zstd: best ratio; klauspost/compress by default, valyala/gozstd when
//     built with cgo and the gozstd build tag
//   - S2: fastest inflation (klauspost/compress/s2)
//   - LZ4: block format with a 4-byte little-endian size prefix
//     (pierrec/lz4/v4)
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	packed, err := codec.Compress(raw)
//	...
//	raw, err = codec.Decompress(packed)
//
// # Thread Safety
//
// All codecs are stateless values; pooled encoders and decoders are managed
// internally, so every codec is safe for concurrent use.
package compress
