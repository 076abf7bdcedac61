package pktview

import (
	"fmt"
	"net"

	"github.com/pkg/errors"
	"golang.org/x/net/ipv6"
)

/*
IPv6 Header Format (RFC 8200)

	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|Version| Traffic Class |           Flow Label                  |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|         Payload Length        |  Next Header  |   Hop Limit   |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|                                                               |
	+                         Source Address                        +
	|                                                               |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|                                                               |
	+                      Destination Address                      +
	|                                                               |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+

Extension headers are not walked, NextProtocol reports the raw next header.
*/

const IPv6HeaderSize = ipv6.HeaderLen

// IPv6Header ip v6 fixed header
type IPv6Header struct {
	// Version (4 bits) + Traffic class (8 bits) + Flow label (20 bits)
	verClassFlow wire32
	// Payload length
	payloadLength wire16
	// Next header
	nextHeader uint8
	// Hop limit
	hopLimit uint8
	// Source address
	src [net.IPv6len]byte
	// Destination address
	dst [net.IPv6len]byte
}

func (IPv6Header) Size() int { return IPv6HeaderSize }

func (IPv6Header) LayerName() string { return "IPv6" }

func (IPv6Header) wireHeader() {}

// IPv6 network layer overlay enclosed by ethernet
type IPv6 struct {
	Overlay[*Ethernet, IPv6Header]
}

// ParseIPv6 overlay ip v6 fixed header after eth
func ParseIPv6(eth *Ethernet) (*IPv6, error) {
	o, err := Parse[IPv6Header](eth)
	if err != nil {
		return nil, err
	}

	return &IPv6{Overlay: o}, nil
}

func (ip *IPv6) Version() uint8 {
	return uint8(ip.header.verClassFlow.get() >> 28)
}

func (ip *IPv6) SetVersion(version uint8) {
	v := ip.header.verClassFlow.get()
	ip.header.verClassFlow.set(v&0x0fffffff | uint32(version&0x0f)<<28)
}

func (ip *IPv6) TrafficClass() uint8 {
	return uint8(ip.header.verClassFlow.get() >> 20)
}

func (ip *IPv6) SetTrafficClass(class uint8) {
	v := ip.header.verClassFlow.get()
	ip.header.verClassFlow.set(v&0xf00fffff | uint32(class)<<20)
}

func (ip *IPv6) FlowLabel() uint32 {
	return ip.header.verClassFlow.get() & 0x000fffff
}

func (ip *IPv6) SetFlowLabel(label uint32) {
	v := ip.header.verClassFlow.get()
	ip.header.verClassFlow.set(v&0xfff00000 | label&0x000fffff)
}

func (ip *IPv6) PayloadLength() uint16 {
	return ip.header.payloadLength.get()
}

func (ip *IPv6) SetPayloadLength(length uint16) {
	ip.header.payloadLength.set(length)
}

func (ip *IPv6) NextProtocol() IPProtocol {
	return IPProtocol(ip.header.nextHeader)
}

func (ip *IPv6) SetNextProtocol(proto IPProtocol) {
	ip.header.nextHeader = uint8(proto)
}

func (ip *IPv6) HopLimit() uint8 {
	return ip.header.hopLimit
}

func (ip *IPv6) SetHopLimit(limit uint8) {
	ip.header.hopLimit = limit
}

// to16 ip v6 form of addr, v4 and v4-mapped addresses are rejected
func to16(addr net.IP) (net.IP, error) {
	if addr.To4() != nil || addr.To16() == nil {
		return nil, errors.Errorf("not an ip v6 address: %s", addr)
	}

	return addr.To16(), nil
}

func (ip *IPv6) SourceAddress() net.IP {
	return net.IP(ip.header.src[:])
}

func (ip *IPv6) SetSourceAddress(addr net.IP) error {
	v6, err := to16(addr)
	if err != nil {
		return err
	}

	copy(ip.header.src[:], v6)

	return nil
}

func (ip *IPv6) DestinationAddress() net.IP {
	return net.IP(ip.header.dst[:])
}

func (ip *IPv6) SetDestinationAddress(addr net.IP) error {
	v6, err := to16(addr)
	if err != nil {
		return err
	}

	copy(ip.header.dst[:], v6)

	return nil
}

func (ip *IPv6) String() string {
	return fmt.Sprintf(
		"%s > %s, next_header: %s, hop_limit: %d, payload_length: %d",
		ip.SourceAddress(), ip.DestinationAddress(),
		ip.NextProtocol(), ip.HopLimit(), ip.PayloadLength(),
	)
}
