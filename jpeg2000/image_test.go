package jpeg2000

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/numcodec/errs"
	"github.com/arloliu/numcodec/format"
	"github.com/arloliu/numcodec/ndarray"
)

func TestClassifyLayout(t *testing.T) {
	tests := []struct {
		name  string
		shape []int
		want  layoutKind
	}{
		{"rank 2", []int{30, 40}, layoutTwoD},
		{"rank 3 rgb", []int{64, 64, 3}, layoutMultiChannel},
		{"rank 3 rgba", []int{64, 64, 4}, layoutMultiChannel},
		{"rank 3 odd trailing", []int{21, 32, 32}, layoutNDTiled},
		{"rank 3 two trailing", []int{21, 32, 2}, layoutNDTiled},
		{"rank 4", []int{5, 21, 32, 32}, layoutNDTiled},
		{"rank 5", []int{2, 3, 4, 8, 8}, layoutNDTiled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifyLayout(tt.shape)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyLayout_Errors(t *testing.T) {
	_, err := classifyLayout([]int{255})
	require.ErrorIs(t, err, errs.ErrUnsupportedRank)

	_, err = classifyLayout([]int{30, 0})
	require.ErrorIs(t, err, errs.ErrUnsupportedShape)
}

func TestBuildImage_TwoD(t *testing.T) {
	arr, err := ndarray.New(ndarray.Uint8, 30, 40)
	require.NoError(t, err)

	build, err := buildImage(arr)
	require.NoError(t, err)
	defer build.release()

	require.Equal(t, 1, build.desc.NumComponents())
	comp := build.desc.Components[0]
	require.Equal(t, 8, comp.Prec)
	require.False(t, comp.Signed)
	require.Equal(t, 30, comp.Height)
	require.Equal(t, 40, comp.Width)
	require.Equal(t, 1, comp.DX)
	require.Equal(t, 1, comp.DY)

	geo := build.desc.Geometry
	require.Equal(t, 30, geo.Height)
	require.Equal(t, 40, geo.Width)
	require.Equal(t, 30, geo.TileHeight)
	require.Equal(t, 40, geo.TileWidth)
	require.False(t, geo.TileSizeOn)
	require.Equal(t, format.ColorGray, geo.ColorSpace)
	require.Equal(t, format.OrderLRCP, geo.Progression)

	// No copy for the 2D layout: the view is the caller's buffer.
	require.Same(t, &arr.Bytes()[0], &build.pixels[0])
}

func TestBuildImage_MultiChannel(t *testing.T) {
	arr, err := ndarray.New(ndarray.Uint8, 64, 64, 3)
	require.NoError(t, err)

	build, err := buildImage(arr)
	require.NoError(t, err)
	defer build.release()

	require.Equal(t, 3, build.desc.NumComponents())
	for _, comp := range build.desc.Components {
		require.Equal(t, 64, comp.Height)
		require.Equal(t, 64, comp.Width)
		require.Equal(t, 8, comp.Prec)
	}

	geo := build.desc.Geometry
	require.False(t, geo.TileSizeOn)
	require.Equal(t, format.ColorSRGB, geo.ColorSpace)
	require.Equal(t, 64, geo.TileHeight)
	require.Equal(t, 64, geo.TileWidth)
}

func TestBuildImage_MultiChannelTranspose(t *testing.T) {
	// 2x2 RGB image with distinct channel values.
	arr, err := ndarray.FromUint8([]uint8{
		11, 21, 31, 12, 22, 32,
		13, 23, 33, 14, 24, 34,
	}, 2, 2, 3)
	require.NoError(t, err)

	build, err := buildImage(arr)
	require.NoError(t, err)
	defer build.release()

	// Channel-major planes: all R samples, then G, then B.
	require.Equal(t, []byte{
		11, 12, 13, 14,
		21, 22, 23, 24,
		31, 32, 33, 34,
	}, build.pixels)

	// The transpose materialized a new buffer; the input is untouched.
	require.NotSame(t, &arr.Bytes()[0], &build.pixels[0])
	require.Equal(t, uint8(11), arr.Bytes()[0])
}

func TestBuildImage_Rank3Tiled(t *testing.T) {
	arr, err := ndarray.New(ndarray.Uint8, 21, 32, 32)
	require.NoError(t, err)

	build, err := buildImage(arr)
	require.NoError(t, err)
	defer build.release()

	require.Equal(t, 1, build.desc.NumComponents())

	geo := build.desc.Geometry
	require.True(t, geo.TileSizeOn)
	require.Equal(t, 32, geo.TileHeight)
	require.Equal(t, 32, geo.TileWidth)
	require.Equal(t, 21*32, geo.Height)
	require.Equal(t, 32, geo.Width)
	require.Equal(t, format.ColorGray, geo.ColorSpace)

	// Flattening is a reshape, not a copy.
	require.Same(t, &arr.Bytes()[0], &build.pixels[0])
}

func TestBuildImage_Rank4Tiled(t *testing.T) {
	arr, err := ndarray.New(ndarray.Uint8, 5, 21, 32, 32)
	require.NoError(t, err)

	build, err := buildImage(arr)
	require.NoError(t, err)
	defer build.release()

	geo := build.desc.Geometry
	require.True(t, geo.TileSizeOn)
	require.Equal(t, 32, geo.TileHeight)
	require.Equal(t, 32, geo.TileWidth)
	require.Equal(t, 5*21*32, geo.Height)
	require.Equal(t, 32, geo.Width)
}

func TestBuildImage_SignedWideComponents(t *testing.T) {
	arr, err := ndarray.New(ndarray.Int32, 8, 8)
	require.NoError(t, err)

	build, err := buildImage(arr)
	require.NoError(t, err)
	defer build.release()

	comp := build.desc.Components[0]
	require.Equal(t, 32, comp.Prec)
	require.True(t, comp.Signed)
}

func TestBuildImage_Rank1Rejected(t *testing.T) {
	arr, err := ndarray.New(ndarray.Uint8, 255)
	require.NoError(t, err)

	_, err = buildImage(arr)
	require.ErrorIs(t, err, errs.ErrUnsupportedRank)
}
