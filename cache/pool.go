package cache

import (
	"sync"
)

func AlignUp(x int) int {
	return (x + 1) &^ 1
}

const (
	// DefaultBytesSize fits a standard ethernet frame with headroom
	DefaultBytesSize = 2048
	// MaxBytesSize largest pooled slice, the maximum ip packet length
	MaxBytesSize = 65535
)

type BytesPool struct {
	size int
	pool sync.Pool
}

func NewBytesPool(size int) *BytesPool {
	if size <= 0 {
		size = DefaultBytesSize
	} else {
		size = AlignUp(size)

		if size > MaxBytesSize {
			size = MaxBytesSize
		}
	}

	return &BytesPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				return make([]byte, size)
			},
		},
	}
}

// Size length of pooled slices
func (pool *BytesPool) Size() int {
	return pool.size
}

func (pool *BytesPool) GetSlice() []byte {
	bytes := pool.pool.Get().([]byte)
	for idx := range bytes {
		bytes[idx] = 0
	}

	return bytes
}

// GetBuffer pooled buffer with zero length, Release returns it to pool
func (pool *BytesPool) GetBuffer() *Buffer {
	return &Buffer{
		data: pool.GetSlice()[:0],
		pool: pool,
	}
}

func (pool *BytesPool) PutSlice(data []byte) {
	if cap(data) < pool.size {
		return
	}

	pool.pool.Put(data[:pool.size])
}

func (pool *BytesPool) PutBuffer(buff *Buffer) {
	if buff == nil {
		return
	}

	pool.PutSlice(buff.data)
	buff.data = nil
	buff.pool = nil
}
