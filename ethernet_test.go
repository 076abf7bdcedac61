package pktview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frozenpine/pktview"
	"github.com/frozenpine/pktview/errors"
)

func TestMacAddrToString(t *testing.T) {
	assert.Equal(t, "00:00:00:00:00:00", pktview.NewMacAddr(0, 0, 0, 0, 0, 0).String())
	assert.Equal(t, "ff:ff:ff:ff:ff:ff", pktview.NewMacAddr(255, 255, 255, 255, 255, 255).String())
	assert.Equal(t, "12:34:56:ab:cd:ef", pktview.NewMacAddr(0x12, 0x34, 0x56, 0xAB, 0xCD, 0xEF).String())
}

func TestParseMacAddr(t *testing.T) {
	addr, err := pktview.ParseMacAddr("12:34:56:AB:CD:EF")
	require.NoError(t, err)
	assert.Equal(t, pktview.NewMacAddr(0x12, 0x34, 0x56, 0xab, 0xcd, 0xef), addr)

	addr, err = pktview.ParseMacAddr("00-00-00-00-00-01")
	require.NoError(t, err)
	assert.Equal(t, pktview.MacAddrFromSlice([]byte{0, 0, 0, 0, 0, 1, 0xff}), addr)

	_, err = pktview.ParseMacAddr("00:00:00:00:00:00:00:01")
	assert.Error(t, err)

	_, err = pktview.ParseMacAddr("not a mac")
	assert.Error(t, err)
}

func TestEtherTypeToString(t *testing.T) {
	assert.Equal(t, "IPv4", pktview.EtherTypeIPv4.String())
	assert.Equal(t, "IPv6", pktview.EtherTypeIPv6.String())
	assert.Equal(t, "0x0000", pktview.EtherType(0).String())
	assert.Equal(t, "0x0806", pktview.EtherType(0x0806).String())
	assert.Equal(t, "0xffff", pktview.EtherType(0xffff).String())
}

func TestParseEthernetPacket(t *testing.T) {
	raw := pktview.FromBytes(newUDPPacket())

	eth, err := pktview.ParseEthernet(raw)
	require.NoError(t, err)

	assert.Equal(t, "00:00:00:00:00:01", eth.Destination().String())
	assert.Equal(t, "00:00:00:00:00:02", eth.Source().String())
	assert.Equal(t, pktview.EtherTypeIPv4, eth.EtherType())
	assert.Equal(t, "00:00:00:00:00:02 > 00:00:00:00:00:01, ether_type: IPv4", eth.String())
}

func TestEthernetSetters(t *testing.T) {
	data := newUDPPacket()

	eth, err := pktview.ParseEthernet(pktview.FromBytes(data))
	require.NoError(t, err)

	src := pktview.NewMacAddr(0x12, 0x34, 0x56, 0xab, 0xcd, 0xef)
	dst := pktview.NewMacAddr(0xff, 0xff, 0xff, 0xff, 0xff, 0xff)

	eth.SetSource(src)
	eth.SetDestination(dst)
	eth.SetEtherType(0x1234)

	assert.Equal(t, src, eth.Source())
	assert.Equal(t, dst, eth.Destination())
	assert.Equal(t, pktview.EtherType(0x1234), eth.EtherType())

	assert.Equal(t, dst[:], data[0:6])
	assert.Equal(t, src[:], data[6:12])
	assert.Equal(t, []byte{0x12, 0x34}, data[12:14])
	assert.Equal(t, "12:34:56:ab:cd:ef > ff:ff:ff:ff:ff:ff, ether_type: 0x1234", eth.String())

	// the rest of the frame is untouched
	assert.Equal(t, udpPacket[14:], data[14:])
}

func TestParseIPUnsupported(t *testing.T) {
	data := newUDPPacket()
	data[12], data[13] = 0x08, 0x06

	eth, err := pktview.ParseEthernet(pktview.FromBytes(data))
	require.NoError(t, err)

	ip, err := pktview.ParseIP(eth)
	assert.ErrorIs(t, err, errors.ErrUnsupportedLayer)
	assert.Nil(t, ip)
}
