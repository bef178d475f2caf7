// Package jpeg2000 adapts N-dimensional integer arrays onto the image, tile
// and quality-layer model of a JPEG2000 compression engine.
//
// The codec itself performs no wavelet or entropy coding; it derives a valid
// image/component/tile description from an array's shape and dtype, turns a
// user-facing quality knob into the engine's rate/distortion layer
// parameters, sniffs container formats on decode, and hands flat pixel
// buffers to an external Engine.
//
// # Quality Control
//
// A codec carries at most one of two quality targets, set at construction:
//
//	c, _ := jpeg2000.New(jpeg2000.WithEngine(engine), jpeg2000.WithRate(10))   // 10-fold compression
//	c, _ := jpeg2000.New(jpeg2000.WithEngine(engine), jpeg2000.WithSNR(42.5)) // 42.5 dB target
//	c, _ := jpeg2000.New(jpeg2000.WithEngine(engine))                         // lossless
//
// Setting both targets, or either to a negative value, fails with
// ErrInvalidParameter.
//
// # Shape Handling
//
// Rank-2 arrays encode as one grayscale component. Rank-3 arrays with a
// trailing dimension of 3 or 4 encode as a multi-component color image. Any
// other array of rank 3 or higher is flattened into a tall 2D raster whose
// tiles are the last two dimensions; the tile mechanism of the stream is what
// lets the original hyperplanes be recovered.
package jpeg2000

import (
	"fmt"

	"github.com/arloliu/numcodec/codec"
	"github.com/arloliu/numcodec/errs"
	"github.com/arloliu/numcodec/format"
	"github.com/arloliu/numcodec/internal/options"
	"github.com/arloliu/numcodec/ndarray"
)

// CodecID is the registry identifier of this codec.
const CodecID = "jpeg2000"

// Maximum supported element width in bytes; 64-bit integers are rejected.
const maxItemSize = 4

// Codec is the JPEG2000 adapter codec. It is a value object: all state is
// fixed at construction and every encode or decode call builds and discards
// its own layer spec and image description.
type Codec struct {
	rate   float64
	snr    float64
	engine Engine
}

var _ codec.Codec = (*Codec)(nil)

// Option configures a Codec during construction.
type Option = options.Option[*Codec]

// WithRate sets the target compression ratio (N-fold size reduction).
// Mutually exclusive with WithSNR; zero means lossless.
func WithRate(rate float64) Option {
	return options.NoError(func(c *Codec) {
		c.rate = rate
	})
}

// WithSNR sets the target signal-to-noise ratio in dB. Mutually exclusive
// with WithRate; zero means lossless.
func WithSNR(db float64) Option {
	return options.NoError(func(c *Codec) {
		c.snr = db
	})
}

// WithEngine sets the external compression engine the codec delegates to.
func WithEngine(engine Engine) Option {
	return options.NoError(func(c *Codec) {
		c.engine = engine
	})
}

// New creates a JPEG2000 codec. Without a rate or snr option the codec is
// lossless. The quality targets are validated eagerly: both positive at once,
// or either negative, fails with ErrInvalidParameter.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	if c.snr > 0 && c.rate > 0 {
		return nil, fmt.Errorf("%w: snr or rate can be specified but not both", errs.ErrInvalidParameter)
	}
	if c.snr < 0 {
		return nil, fmt.Errorf("%w: snr must be positive", errs.ErrInvalidParameter)
	}
	if c.rate < 0 {
		return nil, fmt.Errorf("%w: rate must be positive", errs.ErrInvalidParameter)
	}

	return c, nil
}

// FromConfig creates a codec from a configuration mapping with keys
// {id, rate, snr}, delegating to the given engine.
func FromConfig(cfg codec.Config, engine Engine) (*Codec, error) {
	rate, err := cfg.Float("rate")
	if err != nil {
		return nil, err
	}

	snr, err := cfg.Float("snr")
	if err != nil {
		return nil, err
	}

	return New(WithRate(rate), WithSNR(snr), WithEngine(engine))
}

// Register adds the codec to a registry, binding it to the given engine.
func Register(r *codec.Registry, engine Engine) error {
	return r.Register(CodecID, func(cfg codec.Config) (codec.Codec, error) {
		return FromConfig(cfg, engine)
	})
}

// ID returns the registry identifier.
func (c *Codec) ID() string {
	return CodecID
}

// Config returns the serializable configuration mapping.
func (c *Codec) Config() codec.Config {
	return codec.Config{
		"id":   CodecID,
		"rate": c.rate,
		"snr":  c.snr,
	}
}

// Rate returns the configured compression ratio, zero when unset.
func (c *Codec) Rate() float64 {
	return c.rate
}

// SNR returns the configured signal-to-noise target in dB, zero when unset.
func (c *Codec) SNR() float64 {
	return c.snr
}

// Equal reports whether two codecs carry the same quality configuration.
func (c *Codec) Equal(other *Codec) bool {
	return other != nil && c.rate == other.rate && c.snr == other.snr
}

func (c *Codec) String() string {
	return fmt.Sprintf("JPEG2000(rate=%g, snr=%g)", c.rate, c.snr)
}

// layers resolves the quality configuration into the engine's layer spec.
func (c *Codec) layers() LayerSpec {
	switch {
	case c.snr > 0:
		return LayersFromSNR(c.snr)
	case c.rate > 0:
		return LayersFromRatio(c.rate)
	default:
		return LosslessLayers()
	}
}

// Encode compresses an array into a raw JPEG2000 codestream.
//
// The input must be contiguous, integer typed and at most 32 bits wide per
// element; anything else fails with ErrUnsupportedInput before any engine
// work. The written container is always the raw codestream, never the boxed
// file format.
func (c *Codec) Encode(arr *ndarray.Array) ([]byte, error) {
	if err := c.validateInput(arr); err != nil {
		return nil, err
	}

	layers := c.layers()

	build, err := buildImage(arr)
	if err != nil {
		return nil, err
	}
	defer build.release()

	compressed, err := c.engine.Encode(build.pixels, layers, build.desc, format.FormatJ2K)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCodecEngine, err)
	}

	return compressed, nil
}

// Decode decompresses a JPEG2000 stream into a flat array.
//
// The container format is sniffed from the stream's magic bytes; both the raw
// codestream and the boxed file format are accepted. Shape and dtype come
// from the stream itself, and the result is returned flattened. When out is
// non-nil it is filled element-for-element; its element count and dtype must
// match the decoded result or the call fails with ErrShapeMismatch.
func (c *Codec) Decode(data []byte, out *ndarray.Array) (*ndarray.Array, error) {
	if c.engine == nil {
		return nil, fmt.Errorf("%w: no engine configured", errs.ErrInvalidConfig)
	}

	containerFormat, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}

	reconstructed, err := c.engine.Decode(data, containerFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCodecEngine, err)
	}

	result, err := ndarray.NewFromBytes(reconstructed.Pixels, reconstructed.Dtype, reconstructed.NumElements())
	if err != nil {
		return nil, err
	}
	if err := codec.FillOutput(out, result); err != nil {
		return nil, err
	}

	return result, nil
}

// validateInput enforces the encode preconditions on the array before any
// quality or geometry work happens.
func (c *Codec) validateInput(arr *ndarray.Array) error {
	if c.engine == nil {
		return fmt.Errorf("%w: no engine configured", errs.ErrInvalidConfig)
	}
	if arr == nil {
		return fmt.Errorf("%w: nil array", errs.ErrUnsupportedInput)
	}
	if !arr.Contiguous() {
		return fmt.Errorf("%w: an array with contiguous memory is required", errs.ErrUnsupportedInput)
	}
	if !arr.Dtype().Integer() {
		return fmt.Errorf("%w: JPEG2000 only supports integer arrays, got %s", errs.ErrUnsupportedInput, arr.Dtype())
	}
	if arr.Dtype().Size > maxItemSize {
		return fmt.Errorf("%w: JPEG2000 does not support 64-bit integers", errs.ErrUnsupportedInput)
	}

	return nil
}
