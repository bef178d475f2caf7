// Package codec defines the array codec contract and the registry that maps
// codec identifiers to constructors.
//
// A codec transforms an ndarray.Array into an opaque compressed byte stream
// and back. Codecs are value objects configured at construction time; they
// hold no state across calls and are safe to reuse when their collaborators
// are.
//
// Codecs are described by a Config mapping with at least an "id" entry, so a
// registry can reconstruct a codec from persisted metadata:
//
//	reg := codec.NewRegistry()
//	jpeg2000.Register(reg, engine)
//
//	c, err := reg.FromConfig(codec.Config{"id": "jpeg2000", "rate": 10.0})
package codec

import (
	"fmt"

	"github.com/arloliu/numcodec/errs"
	"github.com/arloliu/numcodec/ndarray"
)

// Codec is the contract every registered array codec implements.
type Codec interface {
	// ID returns the registry identifier of the codec.
	ID() string

	// Config returns the serializable configuration mapping, including the
	// "id" entry. A registry reconstructs an equal codec from this mapping.
	Config() Config

	// Encode compresses the array and returns the compressed stream.
	//
	// Memory management:
	//   - The returned slice is newly allocated and owned by the caller
	//   - The input array is not modified
	Encode(arr *ndarray.Array) ([]byte, error)

	// Decode decompresses a stream produced by Encode. The decoded result is
	// returned as a flat one-dimensional array whose dtype is recovered from
	// the stream itself.
	//
	// When out is non-nil its buffer is additionally filled element-for-element
	// with the decoded data; the element count and dtype must match.
	Decode(data []byte, out *ndarray.Array) (*ndarray.Array, error)
}

// Config is the serializable codec configuration mapping.
type Config map[string]any

// ID extracts the "id" entry of the mapping.
func (c Config) ID() (string, error) {
	v, ok := c["id"]
	if !ok {
		return "", fmt.Errorf("%w: missing id", errs.ErrInvalidConfig)
	}

	id, ok := v.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: id must be a non-empty string, got %v", errs.ErrInvalidConfig, v)
	}

	return id, nil
}

// Float extracts a numeric entry, accepting the integer and float types a
// JSON or YAML decoder may produce. Missing keys return the zero value.
func (c Config) Float(key string) (float64, error) {
	v, ok := c[key]
	if !ok || v == nil {
		return 0, nil
	}

	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: %s must be numeric, got %T", errs.ErrInvalidConfig, key, v)
	}
}

// FillOutput copies the decoded result into a caller-supplied output array.
//
// The output must be contiguous and match the result's element count and
// dtype; any mismatch fails with ErrShapeMismatch rather than truncating or
// overflowing. A nil output is a no-op.
func FillOutput(out, result *ndarray.Array) error {
	if out == nil {
		return nil
	}
	if !out.Contiguous() {
		return fmt.Errorf("%w: output array must be contiguous", errs.ErrShapeMismatch)
	}
	if out.Dtype() != result.Dtype() {
		return fmt.Errorf("%w: output dtype %s, decoded dtype %s",
			errs.ErrShapeMismatch, out.Dtype(), result.Dtype())
	}
	if out.NumElements() != result.NumElements() {
		return fmt.Errorf("%w: output has %d elements, decoded result has %d",
			errs.ErrShapeMismatch, out.NumElements(), result.NumElements())
	}

	copy(out.Bytes(), result.Bytes())

	return nil
}
