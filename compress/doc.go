// Package compress provides the baseline byte-level codecs registered next to
// the JPEG2000 adapter: Zstandard, S2, LZ4, a pass-through codec, and an
// xxHash64 checksum codec.
//
// # Overview
//
// These codecs treat an array as its flat byte payload: no shape or dtype
// information is preserved in the stream, and decoding yields a flat uint8
// array. They cover the common case of general-purpose array compression,
// while format-aware codecs such as jpeg2000 live in their own packages.
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
//   - None: no compression, pass-through (format.CompressionNone)
//   - Zstd: excellent compression ratio, moderate speed (format.CompressionZstd)
//   - S2: balanced compression and speed (format.CompressionS2)
//   - LZ4: fast decompression, moderate compression (format.CompressionLZ4)
//
// Zstandard has two build-selected implementations: the cgo binding
// (valyala/gozstd) when cgo is available, and the pure Go implementation
// (klauspost/compress/zstd) otherwise. Both produce interoperable streams.
//
// # Registry Integration
//
// RegisterBuiltins wires every algorithm into a codec.Registry under the
// identifiers "noop", "zstd", "s2", "lz4" and "xxhash64":
//
//	reg := codec.NewRegistry()
//	compress.RegisterBuiltins(reg)
//	c, _ := reg.FromConfig(codec.Config{"id": "zstd"})
//
// # Thread Safety
//
// All codecs in this package are stateless values and safe for concurrent
// use; internal encoder/decoder instances are pooled.
package compress
