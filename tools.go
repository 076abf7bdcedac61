package pktview

import (
	"encoding/binary"
)

func N2HShort(buffer []byte, offset *int) uint16 {
	idx := 0

	if offset != nil {
		idx = *offset
		(*offset) += 2
	}

	result := binary.BigEndian.Uint16(buffer[idx:])

	return result
}

func H2NShort(buffer []byte, offset *int, v uint16) {
	idx := 0

	if offset != nil {
		idx = *offset
		(*offset) += 2
	}

	binary.BigEndian.PutUint16(buffer[idx:], v)
}

func N2HLong(buffer []byte, offset *int) uint32 {
	idx := 0

	if offset != nil {
		idx = *offset
		(*offset) += 4
	}

	result := binary.BigEndian.Uint32(buffer[idx:])

	return result
}

func H2NLong(buffer []byte, offset *int, v uint32) {
	idx := 0

	if offset != nil {
		idx = *offset
		(*offset) += 4
	}

	binary.BigEndian.PutUint32(buffer[idx:], v)
}

// wire16 16-bit field stored in network byte order
type wire16 [2]byte

func (w *wire16) get() uint16 {
	return N2HShort(w[:], nil)
}

func (w *wire16) set(v uint16) {
	H2NShort(w[:], nil, v)
}

// wire32 32-bit field stored in network byte order
type wire32 [4]byte

func (w *wire32) get() uint32 {
	return N2HLong(w[:], nil)
}

func (w *wire32) set(v uint32) {
	H2NLong(w[:], nil, v)
}
