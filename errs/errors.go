// Package errs defines the sentinel errors shared across numcodec packages.
//
// Callers should match against these sentinels with errors.Is; call sites wrap
// them with additional context using fmt.Errorf("%w: ...").
package errs

import "errors"

var (
	// ErrInvalidParameter indicates contradictory or out-of-range quality
	// parameters, such as both rate and snr being positive, or either being
	// negative.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidConfig indicates a malformed codec configuration mapping,
	// such as a missing or mistyped "id" entry.
	ErrInvalidConfig = errors.New("invalid codec config")

	// ErrCodecNotFound indicates that no codec with the requested identifier
	// is registered.
	ErrCodecNotFound = errors.New("codec not found")

	// ErrUnsupportedInput indicates an input array that the codec cannot
	// accept: non-contiguous memory, a non-integer element type, or elements
	// wider than 32 bits.
	ErrUnsupportedInput = errors.New("unsupported input array")

	// ErrUnsupportedRank indicates an input array with fewer than 2 dimensions.
	ErrUnsupportedRank = errors.New("unsupported array rank")

	// ErrUnsupportedShape indicates an input array whose shape cannot be
	// mapped onto an image, such as a zero-size dimension.
	ErrUnsupportedShape = errors.New("unsupported array shape")

	// ErrInvalidHeader indicates a compressed buffer whose leading bytes match
	// none of the known container format signatures.
	ErrInvalidHeader = errors.New("invalid stream header")

	// ErrShapeMismatch indicates a caller-supplied output buffer whose element
	// count or element type does not match the decoded result.
	ErrShapeMismatch = errors.New("output shape mismatch")

	// ErrChecksumMismatch indicates that a stored checksum does not match the
	// checksum recomputed from the decoded payload.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrCodecEngine wraps failures surfaced by an external compression
	// engine. The engine's own error is attached as wrapped detail.
	ErrCodecEngine = errors.New("codec engine failure")
)
