// Package j2k provides the default jpeg2000.Engine, backed by the pure Go
// JPEG 2000 codec github.com/mrjoshuak/go-jpeg2000.
//
// The backing library works on image.Image values, which bounds what this
// engine can express: unsigned samples up to 16 bits for single-component
// images and 8-bit samples for 3- or 4-component color images. Signed or
// 32-bit data needs a different Engine implementation (for example an
// OpenJPEG binding); the adapter codec itself is engine-agnostic.
//
// Reconstruction fidelity is also bounded by the library: as of v0.1.0 its
// decoder recovers stream geometry and metadata exactly but does not
// reproduce pixel values bit-for-bit, even for streams encoded with the
// lossless option. Treat decode output from this engine as approximate.
// Applications that need exact reconstruction must supply their own Engine
// (the jpeg2000 package stays bit-exact for any engine that is).
package j2k

import (
	"bytes"
	"fmt"
	"image"

	j2klib "github.com/mrjoshuak/go-jpeg2000"

	"github.com/arloliu/numcodec/endian"
	"github.com/arloliu/numcodec/format"
	"github.com/arloliu/numcodec/jpeg2000"
	"github.com/arloliu/numcodec/ndarray"
)

// Engine implements jpeg2000.Engine on top of the pure Go JPEG 2000 codec.
type Engine struct{}

var _ jpeg2000.Engine = (*Engine)(nil)

// New creates the default engine.
func New() *Engine {
	return &Engine{}
}

// Encode compresses a flat pixel buffer into the target container format.
func (e *Engine) Encode(pixels []byte, layers jpeg2000.LayerSpec, img jpeg2000.ImageDescription, target format.ContainerFormat) ([]byte, error) {
	stdImage, err := buildStdImage(pixels, img)
	if err != nil {
		return nil, err
	}

	opts, err := buildOptions(layers, img, target)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := j2klib.Encode(&buf, stdImage, opts); err != nil {
		return nil, fmt.Errorf("jpeg2000 encode: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode reconstructs the pixel buffer of a compressed stream. Shape and
// dtype come from the stream's own metadata.
func (e *Engine) Decode(data []byte, source format.ContainerFormat) (*jpeg2000.Reconstructed, error) {
	meta, err := j2klib.DecodeMetadata(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("jpeg2000 metadata: %w", err)
	}

	decoded, err := j2klib.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("jpeg2000 decode: %w", err)
	}

	return extractPixels(decoded, meta.NumComponents)
}

// buildOptions maps the layer spec and image geometry onto the library's
// encoding options.
func buildOptions(layers jpeg2000.LayerSpec, img jpeg2000.ImageDescription, target format.ContainerFormat) (*j2klib.Options, error) {
	opts := j2klib.DefaultOptions()

	switch target {
	case format.FormatJ2K:
		opts.Format = j2klib.FormatJ2K
	case format.FormatJP2:
		opts.Format = j2klib.FormatJP2
	default:
		return nil, fmt.Errorf("unsupported container format: %s", target)
	}

	// Only the first resolution level is ever consumed for array payloads.
	opts.NumResolutions = 1
	opts.ProgressionOrder = progressionFor(img.Geometry.Progression)
	opts.NumLayers = layers.NumLayers()
	opts.Lossless = layers.Lossless()

	if !layers.Lossless() {
		values := layers.Values()
		last := values[len(values)-1]
		switch layers.Mode() {
		case jpeg2000.RateAllocation:
			opts.CompressionRatio = last
			opts.Quality = 0
		case jpeg2000.DistortionAllocation:
			// The library exposes a 1-100 quality knob rather than a dB
			// target; clamp the SNR value into that range.
			quality := int(last)
			if quality < 1 {
				quality = 1
			}
			if quality > 100 {
				quality = 100
			}
			opts.Quality = quality
		}
	}

	if img.Geometry.TileSizeOn {
		opts.TileSize = image.Pt(img.Geometry.TileWidth, img.Geometry.TileHeight)
	}

	switch img.Geometry.ColorSpace {
	case format.ColorSRGB:
		opts.ColorSpace = j2klib.ColorSpaceSRGB
	default:
		opts.ColorSpace = j2klib.ColorSpaceGray
	}

	return opts, nil
}

// progressionFor maps the packet ordering enum onto the library's constants.
func progressionFor(order format.ProgressionOrder) j2klib.ProgressionOrder {
	switch order {
	case format.OrderRLCP:
		return j2klib.RLCP
	case format.OrderRPCL:
		return j2klib.RPCL
	case format.OrderPCRL:
		return j2klib.PCRL
	case format.OrderCPRL:
		return j2klib.CPRL
	default:
		return j2klib.LRCP
	}
}

// buildStdImage converts an engine-facing pixel buffer (component-major
// planes, little-endian elements) into an image.Image the library accepts.
func buildStdImage(pixels []byte, img jpeg2000.ImageDescription) (image.Image, error) {
	if img.NumComponents() == 0 {
		return nil, fmt.Errorf("image description has no components")
	}

	comp := img.Components[0]
	if comp.Signed {
		return nil, fmt.Errorf("signed samples are not supported by the pure Go engine")
	}

	width := img.Geometry.Width
	height := img.Geometry.Height
	rect := image.Rect(0, 0, width, height)
	plane := width * height

	switch {
	case img.NumComponents() == 1 && comp.Prec <= 8:
		gray := image.NewGray(rect)
		copy(gray.Pix, pixels)
		return gray, nil

	case img.NumComponents() == 1 && comp.Prec <= 16:
		// image.Gray16 stores big-endian samples.
		gray := image.NewGray16(rect)
		little, big := endian.Little(), endian.Big()
		for i := 0; i < plane; i++ {
			big.PutUint16(gray.Pix[i*2:], little.Uint16(pixels[i*2:]))
		}
		return gray, nil

	case img.NumComponents() == 3 && comp.Prec == 8:
		rgba := image.NewRGBA(rect)
		for i := 0; i < plane; i++ {
			rgba.Pix[i*4+0] = pixels[i]
			rgba.Pix[i*4+1] = pixels[plane+i]
			rgba.Pix[i*4+2] = pixels[2*plane+i]
			rgba.Pix[i*4+3] = 0xff
		}
		return rgba, nil

	case img.NumComponents() == 4 && comp.Prec == 8:
		nrgba := image.NewNRGBA(rect)
		for i := 0; i < plane; i++ {
			nrgba.Pix[i*4+0] = pixels[i]
			nrgba.Pix[i*4+1] = pixels[plane+i]
			nrgba.Pix[i*4+2] = pixels[2*plane+i]
			nrgba.Pix[i*4+3] = pixels[3*plane+i]
		}
		return nrgba, nil

	default:
		return nil, fmt.Errorf("%d components at %d bits are not supported by the pure Go engine",
			img.NumComponents(), comp.Prec)
	}
}

// extractPixels converts a decoded image.Image back into a flat little-endian
// pixel buffer in natural interleaved order.
func extractPixels(decoded image.Image, numComponents int) (*jpeg2000.Reconstructed, error) {
	bounds := decoded.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	plane := width * height

	switch img := decoded.(type) {
	case *image.Gray:
		pixels := make([]byte, plane)
		for y := 0; y < height; y++ {
			copy(pixels[y*width:(y+1)*width], img.Pix[y*img.Stride:y*img.Stride+width])
		}
		return &jpeg2000.Reconstructed{
			Pixels: pixels,
			Shape:  []int{height, width},
			Dtype:  ndarray.Uint8,
		}, nil

	case *image.Gray16:
		pixels := make([]byte, plane*2)
		little, big := endian.Little(), endian.Big()
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				sample := big.Uint16(img.Pix[y*img.Stride+x*2:])
				little.PutUint16(pixels[(y*width+x)*2:], sample)
			}
		}
		return &jpeg2000.Reconstructed{
			Pixels: pixels,
			Shape:  []int{height, width},
			Dtype:  ndarray.Uint16,
		}, nil

	case *image.RGBA:
		return interleaved(img.Pix, img.Stride, width, height, numComponents), nil

	case *image.NRGBA:
		return interleaved(img.Pix, img.Stride, width, height, numComponents), nil

	default:
		return nil, fmt.Errorf("unsupported decoded image type %T", decoded)
	}
}

// interleaved extracts the first numComponents channels of 4-byte-per-pixel
// image data into natural (height, width, channels) order.
func interleaved(pix []byte, stride, width, height, numComponents int) *jpeg2000.Reconstructed {
	pixels := make([]byte, width*height*numComponents)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := y*stride + x*4
			dst := (y*width + x) * numComponents
			for ch := 0; ch < numComponents; ch++ {
				pixels[dst+ch] = pix[src+ch]
			}
		}
	}

	return &jpeg2000.Reconstructed{
		Pixels: pixels,
		Shape:  []int{height, width, numComponents},
		Dtype:  ndarray.Uint8,
	}
}
