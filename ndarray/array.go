// Package ndarray provides the N-dimensional strided array model consumed by
// numcodec codecs.
//
// An Array couples a flat little-endian byte buffer with a shape, an element
// Dtype and per-axis byte strides. Arrays are value objects: codecs never
// mutate them, and views created by Reshape share the underlying buffer.
//
// # Memory Layout
//
// Element bytes are always stored little-endian, independent of the host
// order. An array is contiguous when its strides describe a dense row-major
// (C order) layout; codecs generally require contiguous input and reject
// anything else before doing any work.
package ndarray

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/arloliu/numcodec/endian"
)

// Array is an N-dimensional view over a flat byte buffer.
type Array struct {
	data       []byte
	dtype      Dtype
	shape      []int
	strides    []int
	contiguous bool
}

// New creates a zero-filled contiguous array with the given dtype and shape.
func New(dtype Dtype, shape ...int) (*Array, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}

	n := numElements(shape)

	return NewFromBytes(make([]byte, n*dtype.Size), dtype, shape...)
}

// NewFromBytes wraps an existing little-endian byte buffer as a contiguous
// array. The buffer length must equal the element count times the element
// size. The array shares the buffer; it does not copy.
func NewFromBytes(data []byte, dtype Dtype, shape ...int) (*Array, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}

	n := numElements(shape)
	if len(data) != n*dtype.Size {
		return nil, fmt.Errorf("data length %d does not match shape %v of %s (%d bytes)",
			len(data), shape, dtype, n*dtype.Size)
	}

	return &Array{
		data:       data,
		dtype:      dtype,
		shape:      append([]int(nil), shape...),
		strides:    rowMajorStrides(shape, dtype.Size),
		contiguous: true,
	}, nil
}

// NewStrided wraps a byte buffer with explicit per-axis byte strides. The
// resulting array is contiguous only when the strides describe a dense
// row-major layout for the shape.
func NewStrided(data []byte, dtype Dtype, shape, strides []int) (*Array, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	if len(strides) != len(shape) {
		return nil, fmt.Errorf("strides length %d does not match rank %d", len(strides), len(shape))
	}

	arr := &Array{
		data:    data,
		dtype:   dtype,
		shape:   append([]int(nil), shape...),
		strides: append([]int(nil), strides...),
	}
	arr.contiguous = stridesEqual(arr.strides, rowMajorStrides(shape, dtype.Size))

	return arr, nil
}

// FromUint8 creates a contiguous uint8 array from values. With no shape the
// array is one-dimensional.
func FromUint8(values []uint8, shape ...int) (*Array, error) {
	data := append([]byte(nil), values...)
	return NewFromBytes(data, Uint8, defaultShape(len(values), shape)...)
}

// FromInt8 creates a contiguous int8 array from values.
func FromInt8(values []int8, shape ...int) (*Array, error) {
	data := make([]byte, len(values))
	for i, v := range values {
		data[i] = byte(v)
	}

	return NewFromBytes(data, Int8, defaultShape(len(values), shape)...)
}

// FromUint16 creates a contiguous uint16 array from values.
func FromUint16(values []uint16, shape ...int) (*Array, error) {
	data := serialize(values, func(buf []byte, v uint16) []byte {
		return endian.Little().AppendUint16(buf, v)
	})

	return NewFromBytes(data, Uint16, defaultShape(len(values), shape)...)
}

// FromInt16 creates a contiguous int16 array from values.
func FromInt16(values []int16, shape ...int) (*Array, error) {
	data := serialize(values, func(buf []byte, v int16) []byte {
		return endian.Little().AppendUint16(buf, uint16(v))
	})

	return NewFromBytes(data, Int16, defaultShape(len(values), shape)...)
}

// FromUint32 creates a contiguous uint32 array from values.
func FromUint32(values []uint32, shape ...int) (*Array, error) {
	data := serialize(values, func(buf []byte, v uint32) []byte {
		return endian.Little().AppendUint32(buf, v)
	})

	return NewFromBytes(data, Uint32, defaultShape(len(values), shape)...)
}

// FromInt32 creates a contiguous int32 array from values.
func FromInt32(values []int32, shape ...int) (*Array, error) {
	data := serialize(values, func(buf []byte, v int32) []byte {
		return endian.Little().AppendUint32(buf, uint32(v))
	})

	return NewFromBytes(data, Int32, defaultShape(len(values), shape)...)
}

// FromInt64 creates a contiguous int64 array from values.
func FromInt64(values []int64, shape ...int) (*Array, error) {
	data := serialize(values, func(buf []byte, v int64) []byte {
		return endian.Little().AppendUint64(buf, uint64(v))
	})

	return NewFromBytes(data, Int64, defaultShape(len(values), shape)...)
}

// FromFloat64 creates a contiguous float64 array from values.
func FromFloat64(values []float64, shape ...int) (*Array, error) {
	data := serialize(values, func(buf []byte, v float64) []byte {
		return endian.Little().AppendUint64(buf, math.Float64bits(v))
	})

	return NewFromBytes(data, Float64, defaultShape(len(values), shape)...)
}

// scalar is the set of multi-byte element types the From constructors accept.
type scalar interface {
	~uint16 | ~int16 | ~uint32 | ~int32 | ~int64 | ~float64
}

// serialize produces the little-endian byte layout of values. On a
// little-endian host the in-memory representation already is that layout, so
// the slice memory is copied wholesale; other hosts fall back to the
// element-wise append function.
func serialize[T scalar](values []T, appendLE func([]byte, T) []byte) []byte {
	size := int(unsafe.Sizeof(*new(T)))
	if endian.NativeIsLittle() {
		data := make([]byte, len(values)*size)
		if len(values) > 0 {
			copy(data, unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(data)))
		}

		return data
	}

	data := make([]byte, 0, len(values)*size)
	for _, v := range values {
		data = appendLE(data, v)
	}

	return data
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.shape)
}

// Shape returns a copy of the dimension sizes.
func (a *Array) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Strides returns a copy of the per-axis byte strides.
func (a *Array) Strides() []int {
	return append([]int(nil), a.strides...)
}

// Dtype returns the element type.
func (a *Array) Dtype() Dtype {
	return a.dtype
}

// NumElements returns the total element count.
func (a *Array) NumElements() int {
	return numElements(a.shape)
}

// Contiguous reports whether the array is dense row-major.
func (a *Array) Contiguous() bool {
	return a.contiguous
}

// Bytes returns the underlying buffer. For contiguous arrays this is the flat
// little-endian element data in row-major order.
func (a *Array) Bytes() []byte {
	return a.data
}

// Reshape returns a view of the array with a new shape. The element count must
// be unchanged and the array must be contiguous; the view shares the buffer.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	if !a.contiguous {
		return nil, fmt.Errorf("cannot reshape non-contiguous array")
	}
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	if numElements(shape) != a.NumElements() {
		return nil, fmt.Errorf("cannot reshape %v into %v: element count differs", a.shape, shape)
	}

	return &Array{
		data:       a.data,
		dtype:      a.dtype,
		shape:      append([]int(nil), shape...),
		strides:    rowMajorStrides(shape, a.dtype.Size),
		contiguous: true,
	}, nil
}

// Flatten returns a one-dimensional view of a contiguous array.
func (a *Array) Flatten() (*Array, error) {
	return a.Reshape(a.NumElements())
}

func defaultShape(n int, shape []int) []int {
	if len(shape) == 0 {
		return []int{n}
	}

	return shape
}

func validateShape(shape []int) error {
	if len(shape) == 0 {
		return fmt.Errorf("shape must have at least one dimension")
	}
	for _, dim := range shape {
		if dim < 0 {
			return fmt.Errorf("negative dimension size %d in shape %v", dim, shape)
		}
	}

	return nil
}

func numElements(shape []int) int {
	n := 1
	for _, dim := range shape {
		n *= dim
	}

	return n
}

func rowMajorStrides(shape []int, itemSize int) []int {
	strides := make([]int, len(shape))
	stride := itemSize
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}

	return strides
}

func stridesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
