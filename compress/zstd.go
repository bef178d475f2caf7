package compress

// ZstdCompressor provides Zstandard compression, the best-ratio option among
// the baseline codecs. Suited to archival and bandwidth-limited transfers
// where ratio matters more than encode speed.
//
// The implementation is selected at build time: the cgo binding when cgo is
// available, the pure Go implementation otherwise. Streams produced by either
// are interoperable.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstandard compressor.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
