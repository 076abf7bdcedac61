package cache

// Buffer packet memory shared by a chain of header overlays.
//
// A Buffer has a single owner at a time. Bytes stays valid until the next
// Resize, Load or Release, overlays parsed before that must be dropped.
type Buffer struct {
	data []byte
	pool *BytesPool
}

// NewBuffer wrap data without copying, the buffer length is len(data)
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

func (buff *Buffer) Len() int {
	return len(buff.data)
}

func (buff *Buffer) Cap() int {
	return cap(buff.data)
}

func (buff *Buffer) Bytes() []byte {
	return buff.data
}

// Resize change readable length to size, reallocating when size exceeds
// capacity. Existing content up to min(Len, size) is kept.
func (buff *Buffer) Resize(size int) {
	if size < 0 {
		size = 0
	}

	if size <= cap(buff.data) {
		buff.data = buff.data[:size]
		return
	}

	data := make([]byte, size)
	copy(data, buff.data)

	if buff.pool != nil {
		buff.pool.PutSlice(buff.data)
		buff.pool = nil
	}

	buff.data = data
}

// Load replace buffer content with a copy of frame
func (buff *Buffer) Load(frame []byte) {
	buff.Resize(len(frame))
	copy(buff.data, frame)
}

func (buff *Buffer) Reset() {
	buff.data = buff.data[:0]
}

// Release return buffer memory to its pool, buffer must not be used afterwards
func (buff *Buffer) Release() {
	if buff.pool == nil {
		buff.data = nil
		return
	}

	buff.pool.PutBuffer(buff)
}
