package pktview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frozenpine/pktview"
)

func TestUDPByteOrder(t *testing.T) {
	data := newUDPPacket()
	_, ip := parseIPv4(t, data)

	udp, err := pktview.ParseUDP(ip)
	require.NoError(t, err)

	udp.SetSourcePort(0x1234)
	udp.SetDestinationPort(0x5678)
	udp.SetLength(0x9abc)
	udp.SetChecksum(0xdef0)

	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0}, data[34:42])
	assert.Equal(t, data[34:42], pktview.HeaderBytes(udp))
}

func TestUDPRoundTrip(t *testing.T) {
	_, ip := parseIPv4(t, newUDPPacket())

	udp, err := pktview.ParseUDP(ip)
	require.NoError(t, err)

	for _, v := range []uint16{0, 1, 0x00ff, 0xff00, 0x7fff, 0x8000, 0xffff} {
		udp.SetSourcePort(v)
		udp.SetDestinationPort(v)
		udp.SetLength(v)
		udp.SetChecksum(v)

		assert.Equal(t, v, udp.SourcePort())
		assert.Equal(t, v, udp.DestinationPort())
		assert.Equal(t, v, udp.Length())
		assert.Equal(t, v, udp.Checksum())
	}

	// 16-bit wrap
	big := 0x12345
	udp.SetLength(uint16(big))
	assert.EqualValues(t, 0x2345, udp.Length())
}
