// Package numcodec provides a registry of array-compression codecs with a
// JPEG2000 adapter codec as its centerpiece.
//
// A codec maps an N-dimensional strided integer array onto a compressed byte
// stream and back. The JPEG2000 codec derives an image/component/tile
// description from the array's shape and dtype and delegates the actual
// wavelet compression to an external engine; baseline byte-level codecs
// (Zstandard, S2, LZ4, pass-through, xxHash64 checksum) are registered next
// to it for general-purpose payloads.
//
// # Basic Usage
//
// Encoding and decoding an array with the default registry:
//
//	reg, _ := numcodec.DefaultRegistry()
//
//	c, _ := reg.FromConfig(codec.Config{"id": "jpeg2000", "rate": 10.0})
//
//	arr, _ := ndarray.FromUint8(pixels, 512, 512)
//	compressed, _ := c.Encode(arr)
//
//	decoded, _ := c.Decode(compressed, nil) // flat array, shape from stream
//
// Constructing the JPEG2000 codec directly, without a registry:
//
//	c, _ := numcodec.NewJPEG2000(jpeg2000.WithSNR(42.5))
//
// # Package Structure
//
// This package wires the built-in codecs together; the pieces live in their
// own packages for direct use:
//
//   - codec: codec contract, Config mapping, Registry
//   - ndarray: the N-dimensional array model
//   - jpeg2000: the JPEG2000 adapter codec
//   - engine/j2k: the default pure Go JPEG2000 engine
//   - compress: baseline byte-level codecs
package numcodec

import (
	"github.com/arloliu/numcodec/codec"
	"github.com/arloliu/numcodec/compress"
	"github.com/arloliu/numcodec/engine/j2k"
	"github.com/arloliu/numcodec/jpeg2000"
)

// DefaultRegistry creates a registry pre-loaded with every built-in codec:
// jpeg2000 (bound to the default pure Go engine) plus the baseline byte-level
// codecs noop, zstd, s2, lz4 and xxhash64.
//
// The default jpeg2000 engine reconstructs geometry exactly but pixel values
// only approximately; see the engine/j2k package documentation for details
// and use jpeg2000.WithEngine to substitute a bit-exact engine.
func DefaultRegistry() (*codec.Registry, error) {
	reg := codec.NewRegistry()

	if err := jpeg2000.Register(reg, j2k.New()); err != nil {
		return nil, err
	}
	if err := compress.RegisterBuiltins(reg); err != nil {
		return nil, err
	}

	return reg, nil
}

// NewJPEG2000 creates a JPEG2000 codec bound to the default pure Go engine.
// Options given by the caller are applied afterwards and may replace the
// engine; see the engine/j2k package documentation for the default engine's
// fidelity limits.
func NewJPEG2000(opts ...jpeg2000.Option) (*jpeg2000.Codec, error) {
	return jpeg2000.New(append([]jpeg2000.Option{jpeg2000.WithEngine(j2k.New())}, opts...)...)
}
