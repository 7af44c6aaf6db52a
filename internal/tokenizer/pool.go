package tokenizer

import (
	"sync"
	"unsafe"
)

// bufferPool is a sync.Pool for []byte buffers used as token scratch space.
// A buffer is only needed for fields broken up by quote escapes or dropped
// CR bytes; contiguous fields are returned as views of the input.
var bufferPool = sync.Pool{
	New: func() interface{} {
		// Pre-allocate with capacity for typical quoted field content
		b := make([]byte, 0, 64)
		return &b
	},
}

// getBuffer gets a []byte buffer from the pool.
// The buffer is returned with length 0 but may have capacity.
func getBuffer() []byte {
	p := bufferPool.Get().(*[]byte)
	buf := *p
	// Clear the buffer but keep the capacity
	buf = buf[:0]
	return buf
}

// putBuffer returns a []byte buffer to the pool.
// The buffer will be cleared before reuse.
func putBuffer(buf []byte) {
	// Only return to pool if capacity is reasonable (avoid keeping huge buffers)
	const maxCapacity = 4096
	if cap(buf) > maxCapacity {
		return
	}

	buf = buf[:0]
	bufferPool.Put(&buf)
}

// unsafeString converts a []byte to a string without allocation.
//
// The conversion creates a string that shares the underlying byte array,
// so the byte slice MUST NOT be modified after conversion.
//
// The scanner only uses this on subslices of the input data, which callers
// hand over for the duration of the result's lifetime.
//
// Performance: this eliminates string allocations for every field that is
// a contiguous run of input bytes, which is the common case.
func unsafeString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
