package compress

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/numcodec/codec"
	"github.com/arloliu/numcodec/endian"
	"github.com/arloliu/numcodec/errs"
	"github.com/arloliu/numcodec/ndarray"
)

// ChecksumCodecID is the registry identifier of the xxHash64 checksum codec.
const ChecksumCodecID = "xxhash64"

// checksumSize is the byte length of the xxHash64 digest prefix.
const checksumSize = 8

// XXHash64Codec frames an array payload with an xxHash64 digest.
//
// Encoding prepends the little-endian 64-bit digest of the payload; decoding
// recomputes it and fails with ErrChecksumMismatch when the stored and
// computed digests differ. The payload itself is not compressed.
type XXHash64Codec struct{}

var _ codec.Codec = (*XXHash64Codec)(nil)

// NewXXHash64Codec creates a new checksum codec.
func NewXXHash64Codec() *XXHash64Codec {
	return &XXHash64Codec{}
}

// ID returns the registry identifier.
func (c *XXHash64Codec) ID() string {
	return ChecksumCodecID
}

// Config returns the serializable configuration mapping.
func (c *XXHash64Codec) Config() codec.Config {
	return codec.Config{"id": ChecksumCodecID}
}

// Encode prepends the payload's xxHash64 digest to the payload.
func (c *XXHash64Codec) Encode(arr *ndarray.Array) ([]byte, error) {
	if arr == nil {
		return nil, fmt.Errorf("%w: nil array", errs.ErrUnsupportedInput)
	}
	if !arr.Contiguous() {
		return nil, fmt.Errorf("%w: an array with contiguous memory is required", errs.ErrUnsupportedInput)
	}

	payload := arr.Bytes()
	buf := make([]byte, 0, checksumSize+len(payload))
	buf = endian.Little().AppendUint64(buf, xxhash.Sum64(payload))
	buf = append(buf, payload...)

	return buf, nil
}

// Decode verifies the digest prefix and returns the payload as a flat uint8
// array. When out is non-nil the payload is additionally copied into it.
func (c *XXHash64Codec) Decode(data []byte, out *ndarray.Array) (*ndarray.Array, error) {
	if len(data) < checksumSize {
		return nil, fmt.Errorf("%w: stream shorter than checksum prefix", errs.ErrInvalidHeader)
	}

	stored := endian.Little().Uint64(data[:checksumSize])
	payload := data[checksumSize:]
	if computed := xxhash.Sum64(payload); computed != stored {
		return nil, fmt.Errorf("%w: stored 0x%016x, computed 0x%016x",
			errs.ErrChecksumMismatch, stored, computed)
	}

	result, err := ndarray.NewFromBytes(payload, ndarray.Uint8, len(payload))
	if err != nil {
		return nil, err
	}
	if err := fillRaw(out, payload); err != nil {
		return nil, err
	}

	return result, nil
}
