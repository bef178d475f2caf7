// Package pool provides pooled scratch buffers for pixel staging.
//
// The JPEG2000 adapter materializes a channel-major copy of color arrays
// before handing them to the engine; those short-lived buffers come from this
// pool so repeated encode calls do not reallocate.
package pool

import "sync"

const (
	// PixelBufferDefaultSize is the initial capacity of pooled pixel buffers.
	PixelBufferDefaultSize = 64 * 1024 // 64KiB

	// PixelBufferMaxRetain is the largest buffer returned to the pool.
	// Oversized buffers are dropped so one huge image does not pin memory.
	PixelBufferMaxRetain = 16 * 1024 * 1024 // 16MiB
)

// ByteBuffer is a reusable byte slice wrapper handed out by the pool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer while keeping its capacity for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Resize sets the buffer length to size, reallocating when the current
// capacity is too small. Existing content is not preserved.
func (bb *ByteBuffer) Resize(size int) []byte {
	if cap(bb.B) < size {
		bb.B = make([]byte, size)
	} else {
		bb.B = bb.B[:size]
	}

	return bb.B
}

var pixelBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, PixelBufferDefaultSize)}
	},
}

// GetPixelBuffer obtains a pooled buffer resized to size bytes.
func GetPixelBuffer(size int) *ByteBuffer {
	bb, _ := pixelBufferPool.Get().(*ByteBuffer)
	bb.Resize(size)

	return bb
}

// PutPixelBuffer returns a buffer to the pool. Buffers larger than
// PixelBufferMaxRetain are dropped.
func PutPixelBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > PixelBufferMaxRetain {
		return
	}

	bb.Reset()
	pixelBufferPool.Put(bb)
}
