package compress

import (
	"fmt"

	"github.com/arloliu/numcodec/codec"
	"github.com/arloliu/numcodec/errs"
	"github.com/arloliu/numcodec/format"
	"github.com/arloliu/numcodec/ndarray"
)

// Registry identifiers of the baseline byte-level codecs.
const (
	NoOpCodecID = "noop"
	ZstdCodecID = "zstd"
	S2CodecID   = "s2"
	LZ4CodecID  = "lz4"
)

// ArrayCodec adapts a byte-level Codec to the registry codec contract.
//
// Encoding compresses the array's flat byte payload; shape and dtype are not
// recorded in the stream, so decoding yields a flat uint8 array. Callers that
// need the original shape restore it through the output array of Decode.
type ArrayCodec struct {
	id    string
	inner Codec
}

var _ codec.Codec = (*ArrayCodec)(nil)

// NewArrayCodec wraps a byte-level codec under the given registry identifier.
func NewArrayCodec(id string, inner Codec) *ArrayCodec {
	return &ArrayCodec{id: id, inner: inner}
}

// ID returns the registry identifier.
func (c *ArrayCodec) ID() string {
	return c.id
}

// Config returns the serializable configuration mapping.
func (c *ArrayCodec) Config() codec.Config {
	return codec.Config{"id": c.id}
}

// Encode compresses the array's flat byte payload.
func (c *ArrayCodec) Encode(arr *ndarray.Array) ([]byte, error) {
	if arr == nil {
		return nil, fmt.Errorf("%w: nil array", errs.ErrUnsupportedInput)
	}
	if !arr.Contiguous() {
		return nil, fmt.Errorf("%w: an array with contiguous memory is required", errs.ErrUnsupportedInput)
	}

	return c.inner.Compress(arr.Bytes())
}

// Decode decompresses the stream into a flat uint8 array. When out is
// non-nil, the decoded bytes are additionally copied into it.
func (c *ArrayCodec) Decode(data []byte, out *ndarray.Array) (*ndarray.Array, error) {
	decompressed, err := c.inner.Decompress(data)
	if err != nil {
		return nil, err
	}

	result, err := ndarray.NewFromBytes(decompressed, ndarray.Uint8, len(decompressed))
	if err != nil {
		return nil, err
	}
	if err := fillRaw(out, decompressed); err != nil {
		return nil, err
	}

	return result, nil
}

// fillRaw copies decoded bytes into a caller-supplied output array of any
// dtype; only the byte count must match.
func fillRaw(out *ndarray.Array, data []byte) error {
	if out == nil {
		return nil
	}
	if !out.Contiguous() {
		return fmt.Errorf("%w: output array must be contiguous", errs.ErrShapeMismatch)
	}
	if len(out.Bytes()) != len(data) {
		return fmt.Errorf("%w: output holds %d bytes, decoded result has %d",
			errs.ErrShapeMismatch, len(out.Bytes()), len(data))
	}

	copy(out.Bytes(), data)

	return nil
}

// RegisterBuiltins registers every baseline codec with the registry:
// pass-through, Zstandard, S2, LZ4 and the xxHash64 checksum codec.
func RegisterBuiltins(r *codec.Registry) error {
	byteCodecs := map[string]format.CompressionType{
		NoOpCodecID: format.CompressionNone,
		ZstdCodecID: format.CompressionZstd,
		S2CodecID:   format.CompressionS2,
		LZ4CodecID:  format.CompressionLZ4,
	}

	for id, compressionType := range byteCodecs {
		inner, err := CreateCodec(compressionType)
		if err != nil {
			return err
		}

		arrayCodec := NewArrayCodec(id, inner)
		if err := r.Register(id, func(codec.Config) (codec.Codec, error) {
			return arrayCodec, nil
		}); err != nil {
			return err
		}
	}

	return r.Register(ChecksumCodecID, func(codec.Config) (codec.Codec, error) {
		return NewXXHash64Codec(), nil
	})
}
