package pktview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	offset := 0

	buffer := []byte{0, 1, 2, 3, 4, 5, 6}

	N2HShort(buffer, &offset)

	if offset != 2 {
		t.Fatal("ntohs error")
	}

	N2HLong(buffer, &offset)

	if offset != 6 {
		t.Fatal("ntohl error")
	}
}

func TestHostToNetwork(t *testing.T) {
	buffer := make([]byte, 6)
	offset := 0

	H2NShort(buffer, &offset, 0x1234)
	H2NLong(buffer, &offset, 0xdeadbeef)

	assert.Equal(t, 6, offset)
	assert.Equal(t, []byte{0x12, 0x34, 0xde, 0xad, 0xbe, 0xef}, buffer)
	assert.EqualValues(t, 0x1234, N2HShort(buffer, nil))
}

func TestWireOrder(t *testing.T) {
	var (
		w16 wire16
		w32 wire32
	)

	w16.set(0x1234)
	assert.Equal(t, wire16{0x12, 0x34}, w16)
	assert.EqualValues(t, 0x1234, w16.get())

	w32.set(0x01020304)
	assert.Equal(t, wire32{0x01, 0x02, 0x03, 0x04}, w32)
	assert.EqualValues(t, 0x01020304, w32.get())
}
