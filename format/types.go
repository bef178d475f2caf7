package format

type (
	ContainerFormat  uint8
	ColorSpace       uint8
	ProgressionOrder uint8
	CompressionType  uint8
)

const (
	FormatUnknown ContainerFormat = 0x0 // FormatUnknown represents an unrecognized container.
	FormatJ2K     ContainerFormat = 0x1 // FormatJ2K represents a raw JPEG2000 codestream.
	FormatJP2     ContainerFormat = 0x2 // FormatJP2 represents the boxed JP2 file format.

	ColorUnspecified ColorSpace = 0x0 // ColorUnspecified means no color space tag in the stream.
	ColorSRGB        ColorSpace = 0x1 // ColorSRGB represents standard RGB.
	ColorGray        ColorSpace = 0x2 // ColorGray represents grayscale.
	ColorSYCC        ColorSpace = 0x3 // ColorSYCC represents sRGB-based YCbCr.
	ColorEYCC        ColorSpace = 0x4 // ColorEYCC represents extended YCC.
	ColorCMYK        ColorSpace = 0x5 // ColorCMYK represents CMYK.

	// Progression orders follow the JPEG2000 packet ordering definitions.
	OrderLRCP ProgressionOrder = 0x0 // layer-resolution-component-precinct
	OrderRLCP ProgressionOrder = 0x1 // resolution-layer-component-precinct
	OrderRPCL ProgressionOrder = 0x2 // resolution-precinct-component-layer
	OrderPCRL ProgressionOrder = 0x3 // precinct-component-resolution-layer
	OrderCPRL ProgressionOrder = 0x4 // component-precinct-resolution-layer

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (f ContainerFormat) String() string {
	switch f {
	case FormatJ2K:
		return "J2K"
	case FormatJP2:
		return "JP2"
	default:
		return "Unknown"
	}
}

func (c ColorSpace) String() string {
	switch c {
	case ColorUnspecified:
		return "Unspecified"
	case ColorSRGB:
		return "sRGB"
	case ColorGray:
		return "Gray"
	case ColorSYCC:
		return "sYCC"
	case ColorEYCC:
		return "eYCC"
	case ColorCMYK:
		return "CMYK"
	default:
		return "Unknown"
	}
}

func (p ProgressionOrder) String() string {
	switch p {
	case OrderLRCP:
		return "LRCP"
	case OrderRLCP:
		return "RLCP"
	case OrderRPCL:
		return "RPCL"
	case OrderPCRL:
		return "PCRL"
	case OrderCPRL:
		return "CPRL"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
