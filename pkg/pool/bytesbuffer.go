package pool

import (
	"bytes"
	"sync"
)

// maxBufferSize is the largest buffer handed back to the pool.
const maxBufferSize = 64 * 1024

var (
	BytesBuffer = bytesBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 1024))
			},
		},
	}
)

type bytesBufferPool struct {
	pool sync.Pool
}

func (b *bytesBufferPool) Get() *bytes.Buffer {
	buf := b.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (b *bytesBufferPool) Put(buf *bytes.Buffer) {
	if buf.Cap() > maxBufferSize {
		return
	}
	b.pool.Put(buf)
}
