package jpeg2000

import (
	"fmt"

	"github.com/arloliu/numcodec/errs"
	"github.com/arloliu/numcodec/format"
	"github.com/arloliu/numcodec/internal/pool"
	"github.com/arloliu/numcodec/ndarray"
)

// ComponentSpec describes one image component (channel): its bit precision,
// signedness and per-component geometry. Subsampling is fixed at 1:1; chroma
// subsampling is not supported.
type ComponentSpec struct {
	Prec    int  // bit precision per sample
	Signed  bool // signed sample values
	Width   int
	Height  int
	OffsetX int
	OffsetY int
	DX      int // horizontal subsampling factor, always 1
	DY      int // vertical subsampling factor, always 1
}

// Geometry describes the global image and tile grid placement.
type Geometry struct {
	OffsetX     int
	OffsetY     int
	Width       int // image extent
	Height      int
	TileOffsetX int
	TileOffsetY int
	TileWidth   int
	TileHeight  int
	TileSizeOn  bool
	ColorSpace  format.ColorSpace
	Progression format.ProgressionOrder
}

// ImageDescription is the component-per-channel and tiling description handed
// to the compression engine. It is built fresh per encode call and never
// mutated afterwards.
type ImageDescription struct {
	Components []ComponentSpec
	Geometry   Geometry
}

// NumComponents returns the component count.
func (d ImageDescription) NumComponents() int {
	return len(d.Components)
}

// layoutKind is the closed set of tiling policies an input array can map to.
type layoutKind uint8

const (
	// layoutTwoD maps a rank-2 array to a single-component untiled image.
	layoutTwoD layoutKind = 0x1
	// layoutMultiChannel maps a rank-3 array with 3 or 4 trailing channels to
	// a multi-component color image.
	layoutMultiChannel layoutKind = 0x2
	// layoutNDTiled maps any other rank>=3 array to a tall single-component
	// image tiled by the last two dimensions.
	layoutNDTiled layoutKind = 0x3
)

// classifyLayout picks the tiling policy for an array shape.
//
// A rank-3 array whose trailing dimension is not 3 or 4 is deliberately
// treated as a tiled grayscale stack rather than rejected; callers that mean
// "oddly sized color image" must reshape explicitly.
func classifyLayout(shape []int) (layoutKind, error) {
	if len(shape) < 2 {
		return 0, fmt.Errorf("%w: JPEG2000 only supports arrays of 2 or more dimensions, got rank %d",
			errs.ErrUnsupportedRank, len(shape))
	}
	for _, dim := range shape {
		if dim == 0 {
			return 0, fmt.Errorf("%w: zero-size dimension in shape %v", errs.ErrUnsupportedShape, shape)
		}
	}

	switch {
	case len(shape) == 2:
		return layoutTwoD, nil
	case len(shape) == 3 && (shape[2] == 3 || shape[2] == 4):
		return layoutMultiChannel, nil
	default:
		return layoutNDTiled, nil
	}
}

// imageBuild couples an ImageDescription with the flattened pixel view the
// engine consumes. When the build materialized a scratch copy (the
// channel-major transpose), scratch holds the pooled buffer backing pixels.
type imageBuild struct {
	desc    ImageDescription
	pixels  []byte
	scratch *pool.ByteBuffer
}

// release returns the scratch buffer, if any, to the pool. The pixels slice
// must not be used afterwards.
func (b *imageBuild) release() {
	if b.scratch != nil {
		pool.PutPixelBuffer(b.scratch)
		b.scratch = nil
		b.pixels = nil
	}
}

// buildImage derives the engine-facing image description from an array and
// the matching flattened pixel view.
//
// Only the multi-channel layout copies pixel data (the engine expects
// component-major planes); the other layouts reinterpret the caller's buffer
// in place.
func buildImage(arr *ndarray.Array) (*imageBuild, error) {
	shape := arr.Shape()

	layout, err := classifyLayout(shape)
	if err != nil {
		return nil, err
	}

	switch layout {
	case layoutTwoD:
		return buildTwoD(arr, shape), nil
	case layoutMultiChannel:
		return buildMultiChannel(arr, shape), nil
	default:
		return buildNDTiled(arr, shape), nil
	}
}

// buildTwoD maps a rank-2 array to one grayscale component covering the whole
// image; tile extent equals image extent with tiling disabled.
func buildTwoD(arr *ndarray.Array, shape []int) *imageBuild {
	height, width := shape[0], shape[1]

	return &imageBuild{
		desc: ImageDescription{
			Components: []ComponentSpec{componentFor(arr.Dtype(), height, width)},
			Geometry: Geometry{
				Width:       width,
				Height:      height,
				TileWidth:   width,
				TileHeight:  height,
				ColorSpace:  format.ColorGray,
				Progression: format.OrderLRCP,
			},
		},
		pixels: arr.Bytes(),
	}
}

// buildMultiChannel maps a rank-3 (height, width, channels) array to one
// component per channel. The engine expects component-major planes, so the
// interleaved input is transposed into a pooled scratch buffer.
func buildMultiChannel(arr *ndarray.Array, shape []int) *imageBuild {
	height, width, channels := shape[0], shape[1], shape[2]
	itemSize := arr.Dtype().Size
	plane := height * width

	scratch := pool.GetPixelBuffer(plane * channels * itemSize)
	src := arr.Bytes()
	dst := scratch.Bytes()
	for ch := 0; ch < channels; ch++ {
		for i := 0; i < plane; i++ {
			copy(dst[(ch*plane+i)*itemSize:(ch*plane+i+1)*itemSize],
				src[(i*channels+ch)*itemSize:(i*channels+ch+1)*itemSize])
		}
	}

	components := make([]ComponentSpec, channels)
	for ch := range components {
		components[ch] = componentFor(arr.Dtype(), height, width)
	}

	return &imageBuild{
		desc: ImageDescription{
			Components: components,
			Geometry: Geometry{
				Width:       width,
				Height:      height,
				TileWidth:   width,
				TileHeight:  height,
				ColorSpace:  format.ColorSRGB,
				Progression: format.OrderLRCP,
			},
		},
		pixels:  dst,
		scratch: scratch,
	}
}

// buildNDTiled maps any other rank>=3 array to a tall 2D raster of stacked
// tiles: every leading hyperplane becomes one tile of the last two
// dimensions. The flattening is a pure reshape of the contiguous row-major
// buffer, so no pixel data moves.
func buildNDTiled(arr *ndarray.Array, shape []int) *imageBuild {
	tileHeight := shape[len(shape)-2]
	tileWidth := shape[len(shape)-1]

	rows := tileHeight
	for _, dim := range shape[:len(shape)-2] {
		rows *= dim
	}

	return &imageBuild{
		desc: ImageDescription{
			Components: []ComponentSpec{componentFor(arr.Dtype(), rows, tileWidth)},
			Geometry: Geometry{
				Width:       tileWidth,
				Height:      rows,
				TileWidth:   tileWidth,
				TileHeight:  tileHeight,
				TileSizeOn:  true,
				ColorSpace:  format.ColorGray,
				Progression: format.OrderLRCP,
			},
		},
		pixels: arr.Bytes(),
	}
}

// componentFor derives a component's precision and signedness from the array
// element type.
func componentFor(dtype ndarray.Dtype, height, width int) ComponentSpec {
	return ComponentSpec{
		Prec:   dtype.Bits(),
		Signed: dtype.Signed(),
		Width:  width,
		Height: height,
		DX:     1,
		DY:     1,
	}
}
