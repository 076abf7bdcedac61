package pktview

import (
	"fmt"
	"net"

	"github.com/pkg/errors"
	"golang.org/x/net/ipv4"

	pverrors "github.com/frozenpine/pktview/errors"
)

/*
IPv4 Header Format (RFC 791)

	 0                   1                   2                   3
	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|Version|  IHL  |Type of Service|          Total Length         |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|         Identification        |Flags|      Fragment Offset    |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|  Time to Live |    Protocol   |         Header Checksum       |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|                       Source Address                          |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|                    Destination Address                        |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|                    Options                    |    Padding    |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/

const (
	// IPv4HeaderSize fixed part of the header, options follow it
	IPv4HeaderSize = ipv4.HeaderLen

	IPv4DontFragment  uint8 = 1 << 1
	IPv4MoreFragments uint8 = 1
)

// IPv4Header ip v4 header without options
type IPv4Header struct {
	// Version (4 bits) + Internet header length (4 bits)
	verIHL uint8
	// Type of service
	tos uint8
	// Total length
	totalLength wire16
	// Identification
	identification wire16
	// Flags (3 bits) + Fragment offset (13 bits)
	flagsFragment wire16
	// Time to live
	ttl uint8
	// Protocol
	protocol uint8
	// Header checksum
	checksum wire16
	// Source address
	src [net.IPv4len]byte
	// Destination address
	dst [net.IPv4len]byte
}

func (IPv4Header) Size() int { return IPv4HeaderSize }

func (IPv4Header) LayerName() string { return "IPv4" }

func (IPv4Header) wireHeader() {}

// IPv4 network layer overlay enclosed by ethernet
type IPv4 struct {
	Overlay[*Ethernet, IPv4Header]
}

// ParseIPv4 overlay ip v4 header after eth, options included
func ParseIPv4(eth *Ethernet) (*IPv4, error) {
	o, err := Parse[IPv4Header](eth)
	if err != nil {
		return nil, err
	}

	ip := IPv4{Overlay: o}

	headerLen := ip.HeaderLen()
	if headerLen < IPv4HeaderSize {
		return nil, pverrors.NewInvalidHeaderLength(
			ip.header.LayerName(), o.offset, headerLen,
		)
	}

	if length := o.buf.Len(); o.offset+headerLen > length {
		return nil, pverrors.NewInsufficientBuffer(
			ip.header.LayerName(), o.offset, headerLen, length,
		)
	}

	return &ip, nil
}

func (ip *IPv4) Version() uint8 {
	return ip.header.verIHL >> 4
}

func (ip *IPv4) SetVersion(version uint8) {
	ip.header.verIHL = (ip.header.verIHL & 0x0f) | (version << 4)
}

// HeaderLen header length in bytes from IHL, options included
func (ip *IPv4) HeaderLen() int {
	return int(ip.header.verIHL&0x0f) * 4
}

// SetHeaderLen set IHL from a byte length, length must be a multiple of 4.
//
// Changing IHL moves the start of the next layer, parse it again afterwards.
// Options, HeaderBytes and Payload clamp a length past the end of buffer.
func (ip *IPv4) SetHeaderLen(length int) {
	ip.header.verIHL = (ip.header.verIHL & 0xf0) | (uint8(length/4) & 0x0f)
}

func (ip *IPv4) TypeOfService() uint8 {
	return ip.header.tos
}

func (ip *IPv4) SetTypeOfService(tos uint8) {
	ip.header.tos = tos
}

func (ip *IPv4) TotalLength() uint16 {
	return ip.header.totalLength.get()
}

func (ip *IPv4) SetTotalLength(length uint16) {
	ip.header.totalLength.set(length)
}

func (ip *IPv4) Identification() uint16 {
	return ip.header.identification.get()
}

func (ip *IPv4) SetIdentification(id uint16) {
	ip.header.identification.set(id)
}

func (ip *IPv4) Flags() uint8 {
	return uint8(ip.header.flagsFragment.get() >> 13)
}

func (ip *IPv4) SetFlags(flags uint8) {
	v := ip.header.flagsFragment.get()
	ip.header.flagsFragment.set(v&0x1fff | uint16(flags&0x7)<<13)
}

// FragmentOffset fragment offset in bytes
func (ip *IPv4) FragmentOffset() uint16 {
	return (ip.header.flagsFragment.get() & 0x1fff) * 8
}

// SetFragmentOffset set fragment offset in bytes, truncated to 8 byte units
func (ip *IPv4) SetFragmentOffset(offset uint16) {
	v := ip.header.flagsFragment.get()
	ip.header.flagsFragment.set(v&0xe000 | (offset/8)&0x1fff)
}

func (ip *IPv4) TimeToLive() uint8 {
	return ip.header.ttl
}

func (ip *IPv4) SetTimeToLive(ttl uint8) {
	ip.header.ttl = ttl
}

func (ip *IPv4) NextProtocol() IPProtocol {
	return IPProtocol(ip.header.protocol)
}

func (ip *IPv4) SetNextProtocol(proto IPProtocol) {
	ip.header.protocol = uint8(proto)
}

func (ip *IPv4) Checksum() uint16 {
	return ip.header.checksum.get()
}

func (ip *IPv4) SetChecksum(checksum uint16) {
	ip.header.checksum.set(checksum)
}

func (ip *IPv4) SourceAddress() net.IP {
	return net.IP(ip.header.src[:])
}

func (ip *IPv4) SetSourceAddress(addr net.IP) error {
	v4 := addr.To4()
	if v4 == nil {
		return errors.Errorf("not an ip v4 address: %s", addr)
	}

	copy(ip.header.src[:], v4)

	return nil
}

func (ip *IPv4) DestinationAddress() net.IP {
	return net.IP(ip.header.dst[:])
}

func (ip *IPv4) SetDestinationAddress(addr net.IP) error {
	v4 := addr.To4()
	if v4 == nil {
		return errors.Errorf("not an ip v4 address: %s", addr)
	}

	copy(ip.header.dst[:], v4)

	return nil
}

// Options raw option bytes between the fixed header and the payload
func (ip *IPv4) Options() []byte {
	return span(ip.buf, ip.offset+IPv4HeaderSize, ip.offset+ip.HeaderLen())
}

func (ip *IPv4) String() string {
	return fmt.Sprintf(
		"%s > %s, protocol: %s, ttl: %d, length: %d",
		ip.SourceAddress(), ip.DestinationAddress(),
		ip.NextProtocol(), ip.TimeToLive(), ip.TotalLength(),
	)
}
