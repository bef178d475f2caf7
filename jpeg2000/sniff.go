package jpeg2000

import (
	"bytes"
	"fmt"

	"github.com/arloliu/numcodec/errs"
	"github.com/arloliu/numcodec/format"
)

// Container format signatures, checked in order of decreasing specificity.
// The 12-byte RFC3745 JP2 signature embeds the short 4-byte JP2 signature, so
// it must be tested first.
var (
	jp2RFC3745Magic = []byte{0x00, 0x00, 0x00, 0x0c, 0x6a, 0x50, 0x20, 0x20, 0x0d, 0x0a, 0x87, 0x0a}
	jp2Magic        = []byte{0x0d, 0x0a, 0x87, 0x0a}
	j2kMagic        = []byte{0xff, 0x4f, 0xff, 0x51}
)

// DetectFormat classifies a compressed stream by its leading magic bytes.
//
// Buffers shorter than the longest signature, or matching none of the known
// signatures, fail with ErrInvalidHeader. No byte beyond the checked prefix
// is read.
func DetectFormat(data []byte) (format.ContainerFormat, error) {
	if len(data) < len(jp2RFC3745Magic) {
		return format.FormatUnknown, fmt.Errorf("%w: stream shorter than signature", errs.ErrInvalidHeader)
	}

	switch {
	case bytes.HasPrefix(data, jp2RFC3745Magic):
		return format.FormatJP2, nil
	case bytes.HasPrefix(data, jp2Magic):
		return format.FormatJP2, nil
	case bytes.HasPrefix(data, j2kMagic):
		return format.FormatJ2K, nil
	default:
		return format.FormatUnknown, fmt.Errorf("%w: no JPEG2000 signature found", errs.ErrInvalidHeader)
	}
}
