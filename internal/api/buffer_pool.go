package api

import (
	"bytes"
	"sync"
)

// bufferPool reuses byte buffers for request bodies. Prompts late in the
// wizard embed every earlier artifact and easily reach tens of kilobytes.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// getBuffer retrieves a buffer from the pool.
// Caller must call putBuffer() when done to return it to the pool.
func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool unless it grew too large to keep around.
func putBuffer(buf *bytes.Buffer) {
	const maxBufferSize = 256 * 1024
	if buf.Cap() <= maxBufferSize {
		bufferPool.Put(buf)
	}
}
