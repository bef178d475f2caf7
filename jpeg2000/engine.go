package jpeg2000

import (
	"github.com/arloliu/numcodec/format"
	"github.com/arloliu/numcodec/ndarray"
)

// Reconstructed is a decoded pixel buffer together with the shape and element
// type recovered from the stream's own metadata.
//
// Pixels hold little-endian elements in natural row-major order: multi
// component images are interleaved as (height, width, channels), matching the
// layout of the array originally encoded.
type Reconstructed struct {
	Pixels []byte
	Shape  []int
	Dtype  ndarray.Dtype
}

// NumElements returns the element count implied by Shape.
func (r *Reconstructed) NumElements() int {
	n := 1
	for _, dim := range r.Shape {
		n *= dim
	}

	return n
}

// Engine is the external compression engine contract. Implementations own the
// wavelet transform, entropy coding and bitstream handling; the adapter owns
// everything up to the flat pixel buffer and its description.
//
// Engines are assumed synchronous and blocking. They are not required to be
// safe for concurrent use; callers wanting concurrent encodes must confirm
// thread safety or serialize access themselves.
type Engine interface {
	// Encode compresses a flat little-endian pixel buffer described by img
	// into the target container format. The layer spec carries either rate or
	// distortion targets, never both.
	Encode(pixels []byte, layers LayerSpec, img ImageDescription, target format.ContainerFormat) ([]byte, error)

	// Decode parses a stream of the given container format and reconstructs
	// its pixel buffer. Shape and dtype come from the stream's embedded
	// component and tile metadata.
	Decode(data []byte, source format.ContainerFormat) (*Reconstructed, error)
}
