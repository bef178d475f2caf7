package ndarray

// Kind classifies the element type of an array.
type Kind uint8

const (
	KindUint  Kind = 0x1 // KindUint represents unsigned integer elements.
	KindInt   Kind = 0x2 // KindInt represents signed integer elements.
	KindFloat Kind = 0x3 // KindFloat represents floating-point elements.
)

func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Dtype describes the element type of an array: its kind and its width in
// bytes. Dtype is a value object; the predefined variables below cover every
// type numcodec works with.
type Dtype struct {
	Kind Kind
	Size int
}

var (
	Uint8  = Dtype{Kind: KindUint, Size: 1}
	Uint16 = Dtype{Kind: KindUint, Size: 2}
	Uint32 = Dtype{Kind: KindUint, Size: 4}
	Uint64 = Dtype{Kind: KindUint, Size: 8}

	Int8  = Dtype{Kind: KindInt, Size: 1}
	Int16 = Dtype{Kind: KindInt, Size: 2}
	Int32 = Dtype{Kind: KindInt, Size: 4}
	Int64 = Dtype{Kind: KindInt, Size: 8}

	Float32 = Dtype{Kind: KindFloat, Size: 4}
	Float64 = Dtype{Kind: KindFloat, Size: 8}
)

// Bits returns the element width in bits.
func (d Dtype) Bits() int {
	return d.Size * 8
}

// Signed reports whether the element type is a signed integer.
func (d Dtype) Signed() bool {
	return d.Kind == KindInt
}

// Integer reports whether the element type is a signed or unsigned integer.
func (d Dtype) Integer() bool {
	return d.Kind == KindUint || d.Kind == KindInt
}

func (d Dtype) String() string {
	switch d {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}
