package compress

// NoOpCompressor passes data through unchanged.
//
// Useful as a baseline for benchmarking and for payloads that are already
// compressed or incompressible.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is without copying.
//
// The returned slice shares memory with the input; callers must not modify
// the input afterwards if they keep the returned slice.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is without copying.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
