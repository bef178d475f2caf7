//go:build cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// zstdLevel is the default compression level, matching zstd's own default.
const zstdLevel = 3

// Compress compresses the input data using the cgo Zstandard binding.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decompresses Zstd-compressed data using the cgo binding.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}
