package jpeg2000

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/numcodec/codec"
	"github.com/arloliu/numcodec/errs"
	"github.com/arloliu/numcodec/format"
	"github.com/arloliu/numcodec/ndarray"
)

// stubEngine records every interaction and round-trips pixel data without
// real compression. Encode stores the reconstruction that Decode later
// returns, so lossless round-trip properties can be checked end to end.
type stubEngine struct {
	encodeCalls int
	decodeCalls int
	lastLayers  LayerSpec
	lastDesc    ImageDescription
	lastTarget  format.ContainerFormat
	lastSource  format.ContainerFormat
	stored      *Reconstructed
	encodeErr   error
	decodeErr   error
}

func dtypeFor(prec int, signed bool) ndarray.Dtype {
	kind := ndarray.KindUint
	if signed {
		kind = ndarray.KindInt
	}

	return ndarray.Dtype{Kind: kind, Size: prec / 8}
}

func (e *stubEngine) Encode(pixels []byte, layers LayerSpec, img ImageDescription, target format.ContainerFormat) ([]byte, error) {
	e.encodeCalls++
	e.lastLayers = layers
	e.lastDesc = img
	e.lastTarget = target
	if e.encodeErr != nil {
		return nil, e.encodeErr
	}

	comp := img.Components[0]
	itemSize := comp.Prec / 8
	channels := img.NumComponents()

	// Reassemble natural row-major order from the engine-facing layout.
	natural := make([]byte, len(pixels))
	var shape []int
	if channels > 1 {
		plane := comp.Height * comp.Width
		for ch := 0; ch < channels; ch++ {
			for i := 0; i < plane; i++ {
				copy(natural[(i*channels+ch)*itemSize:(i*channels+ch+1)*itemSize],
					pixels[(ch*plane+i)*itemSize:(ch*plane+i+1)*itemSize])
			}
		}
		shape = []int{comp.Height, comp.Width, channels}
	} else {
		copy(natural, pixels)
		shape = []int{img.Geometry.Height, img.Geometry.Width}
	}

	e.stored = &Reconstructed{
		Pixels: natural,
		Shape:  shape,
		Dtype:  dtypeFor(comp.Prec, comp.Signed),
	}

	stream := append([]byte(nil), j2kMagic...)
	stream = append(stream, make([]byte, 12)...)

	return stream, nil
}

func (e *stubEngine) Decode(data []byte, source format.ContainerFormat) (*Reconstructed, error) {
	e.decodeCalls++
	e.lastSource = source
	if e.decodeErr != nil {
		return nil, e.decodeErr
	}
	if e.stored == nil {
		return nil, errors.New("no stream stored")
	}

	return e.stored, nil
}

func newTestCodec(t *testing.T, opts ...Option) (*Codec, *stubEngine) {
	t.Helper()

	engine := &stubEngine{}
	c, err := New(append([]Option{WithEngine(engine)}, opts...)...)
	require.NoError(t, err)

	return c, engine
}

// fillPattern writes a deterministic non-trivial byte pattern.
func fillPattern(data []byte) {
	for i := range data {
		data[i] = byte((i*31 + 7) % 251)
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(WithRate(10), WithSNR(40))
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	_, err = New(WithRate(-1))
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	_, err = New(WithSNR(-0.5))
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	// Zero values mean lossless and are always valid.
	c, err := New(WithRate(0), WithSNR(0))
	require.NoError(t, err)
	require.Equal(t, 0.0, c.Rate())
	require.Equal(t, 0.0, c.SNR())
}

func TestCodec_Config(t *testing.T) {
	c, _ := newTestCodec(t, WithRate(10))
	require.Equal(t, codec.Config{"id": "jpeg2000", "rate": 10.0, "snr": 0.0}, c.Config())

	restored, err := FromConfig(c.Config(), &stubEngine{})
	require.NoError(t, err)
	require.True(t, c.Equal(restored))
}

func TestCodec_EqualAndString(t *testing.T) {
	a, _ := newTestCodec(t)
	b, _ := newTestCodec(t)
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(nil))

	lossy, _ := newTestCodec(t, WithSNR(30))
	require.False(t, a.Equal(lossy))

	require.Equal(t, "JPEG2000(rate=0, snr=0)", a.String())
	require.Equal(t, "JPEG2000(rate=0, snr=30)", lossy.String())
}

func TestEncode_LosslessDefault(t *testing.T) {
	c, engine := newTestCodec(t)
	arr, err := ndarray.New(ndarray.Uint8, 30, 40)
	require.NoError(t, err)

	_, err = c.Encode(arr)
	require.NoError(t, err)

	require.Equal(t, 1, engine.encodeCalls)
	require.Equal(t, format.FormatJ2K, engine.lastTarget)
	require.True(t, engine.lastLayers.Lossless())
	require.Equal(t, RateAllocation, engine.lastLayers.Mode())
	require.Equal(t, []float64{0}, engine.lastLayers.Values())
}

func TestEncode_RateLayers(t *testing.T) {
	c, engine := newTestCodec(t, WithRate(10))
	arr, err := ndarray.New(ndarray.Uint8, 16, 16)
	require.NoError(t, err)

	_, err = c.Encode(arr)
	require.NoError(t, err)
	require.Equal(t, RateAllocation, engine.lastLayers.Mode())
	require.Equal(t, []float64{10}, engine.lastLayers.Values())
	require.False(t, engine.lastLayers.Lossless())
}

func TestEncode_SNRLayers(t *testing.T) {
	c, engine := newTestCodec(t, WithSNR(42.5))
	arr, err := ndarray.New(ndarray.Uint8, 16, 16)
	require.NoError(t, err)

	_, err = c.Encode(arr)
	require.NoError(t, err)
	require.Equal(t, DistortionAllocation, engine.lastLayers.Mode())
	require.Equal(t, []float64{42.5}, engine.lastLayers.Values())
	require.False(t, engine.lastLayers.Lossless())
}

func TestEncode_RejectsBeforeEngine(t *testing.T) {
	c, engine := newTestCodec(t)

	t.Run("non-contiguous array", func(t *testing.T) {
		arr, err := ndarray.NewStrided(make([]byte, 64), ndarray.Uint8, []int{8, 4}, []int{1, 8})
		require.NoError(t, err)
		_, err = c.Encode(arr)
		require.ErrorIs(t, err, errs.ErrUnsupportedInput)
	})

	t.Run("float array", func(t *testing.T) {
		arr, err := ndarray.FromFloat64(make([]float64, 12), 3, 4)
		require.NoError(t, err)
		_, err = c.Encode(arr)
		require.ErrorIs(t, err, errs.ErrUnsupportedInput)
	})

	t.Run("64-bit integer array", func(t *testing.T) {
		arr, err := ndarray.FromInt64(make([]int64, 12), 3, 4)
		require.NoError(t, err)
		_, err = c.Encode(arr)
		require.ErrorIs(t, err, errs.ErrUnsupportedInput)
	})

	t.Run("rank 1 array", func(t *testing.T) {
		arr, err := ndarray.New(ndarray.Uint8, 255)
		require.NoError(t, err)
		_, err = c.Encode(arr)
		require.ErrorIs(t, err, errs.ErrUnsupportedRank)
	})

	// None of the rejected inputs may reach the engine.
	require.Zero(t, engine.encodeCalls)
}

func TestRoundTrip_Lossless(t *testing.T) {
	tests := []struct {
		name  string
		dtype ndarray.Dtype
		shape []int
	}{
		{"rank 2 uint8", ndarray.Uint8, []int{30, 40}},
		{"rank 2 uint16", ndarray.Uint16, []int{41, 29}},
		{"rank 3 color", ndarray.Uint8, []int{8, 8, 3}},
		{"rank 3 rgba", ndarray.Uint8, []int{6, 5, 4}},
		{"rank 3 tiled", ndarray.Uint8, []int{21, 32, 32}},
		{"rank 4 tiled", ndarray.Uint16, []int{2, 3, 8, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCodec(t)

			arr, err := ndarray.New(tt.dtype, tt.shape...)
			require.NoError(t, err)
			fillPattern(arr.Bytes())

			compressed, err := c.Encode(arr)
			require.NoError(t, err)

			result, err := c.Decode(compressed, nil)
			require.NoError(t, err)
			require.Equal(t, 1, result.Rank())
			require.Equal(t, arr.NumElements(), result.NumElements())
			require.Equal(t, tt.dtype, result.Dtype())
			require.Equal(t, arr.Bytes(), result.Bytes())
		})
	}
}

func TestDecode_InvalidHeader(t *testing.T) {
	c, engine := newTestCodec(t)

	_, err := c.Decode([]byte{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0, 0, 0, 0, 0}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidHeader)
	require.Zero(t, engine.decodeCalls)
}

func TestDecode_BoxedStream(t *testing.T) {
	c, engine := newTestCodec(t)
	engine.stored = &Reconstructed{
		Pixels: []byte{1, 2, 3, 4},
		Shape:  []int{2, 2},
		Dtype:  ndarray.Uint8,
	}

	result, err := c.Decode(padStream(jp2Magic), nil)
	require.NoError(t, err)
	require.Equal(t, format.FormatJP2, engine.lastSource)
	require.Equal(t, []byte{1, 2, 3, 4}, result.Bytes())
}

func TestDecode_OutputBuffer(t *testing.T) {
	c, _ := newTestCodec(t)

	arr, err := ndarray.New(ndarray.Uint16, 4, 6)
	require.NoError(t, err)
	fillPattern(arr.Bytes())

	compressed, err := c.Encode(arr)
	require.NoError(t, err)

	// A matching output buffer is filled identically to the returned result,
	// regardless of its own shape.
	out, err := ndarray.New(ndarray.Uint16, 6, 4)
	require.NoError(t, err)

	result, err := c.Decode(compressed, out)
	require.NoError(t, err)
	require.Equal(t, result.Bytes(), out.Bytes())
	require.Equal(t, arr.Bytes(), out.Bytes())
}

func TestDecode_OutputBufferMismatch(t *testing.T) {
	c, _ := newTestCodec(t)

	arr, err := ndarray.New(ndarray.Uint16, 4, 6)
	require.NoError(t, err)

	compressed, err := c.Encode(arr)
	require.NoError(t, err)

	t.Run("element count", func(t *testing.T) {
		out, err := ndarray.New(ndarray.Uint16, 5, 5)
		require.NoError(t, err)
		_, err = c.Decode(compressed, out)
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})

	t.Run("dtype", func(t *testing.T) {
		out, err := ndarray.New(ndarray.Uint8, 4, 6)
		require.NoError(t, err)
		_, err = c.Decode(compressed, out)
		require.ErrorIs(t, err, errs.ErrShapeMismatch)
	})
}

func TestEngineErrors_Propagate(t *testing.T) {
	engineErr := errors.New("tier-2 packet overflow")

	t.Run("encode", func(t *testing.T) {
		c, engine := newTestCodec(t)
		engine.encodeErr = engineErr

		arr, err := ndarray.New(ndarray.Uint8, 8, 8)
		require.NoError(t, err)

		_, err = c.Encode(arr)
		require.ErrorIs(t, err, errs.ErrCodecEngine)
		require.ErrorIs(t, err, engineErr)
	})

	t.Run("decode", func(t *testing.T) {
		c, engine := newTestCodec(t)
		engine.decodeErr = engineErr

		_, err := c.Decode(padStream(j2kMagic), nil)
		require.ErrorIs(t, err, errs.ErrCodecEngine)
		require.ErrorIs(t, err, engineErr)
	})
}

func TestRegister(t *testing.T) {
	reg := codec.NewRegistry()
	require.NoError(t, Register(reg, &stubEngine{}))

	c, err := reg.FromConfig(codec.Config{"id": CodecID, "rate": 10.0, "snr": 0.0})
	require.NoError(t, err)
	require.Equal(t, CodecID, c.ID())

	jc, ok := c.(*Codec)
	require.True(t, ok)
	require.Equal(t, 10.0, jc.Rate())

	// Contradictory configs fail through the registry as well.
	_, err = reg.FromConfig(codec.Config{"id": CodecID, "rate": 10.0, "snr": 30.0})
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestEncode_NoEngine(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	arr, err := ndarray.New(ndarray.Uint8, 4, 4)
	require.NoError(t, err)

	_, err = c.Encode(arr)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)

	_, err = c.Decode(padStream(j2kMagic), nil)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}
