package compress

import (
	"fmt"

	"github.com/arloliu/numcodec/format"
)

// Compressor compresses a flat byte payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns an error if input data is corrupted or invalid
	//   - Returns an error if data was compressed with an incompatible algorithm
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates the byte-level Codec for the given compression type.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid compression type: %s", compressionType)
	}
}
