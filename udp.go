package pktview

import (
	"fmt"
)

/*
User Datagram Header Format (RFC 768)

	 0      7 8     15 16    23 24    31
	+--------+--------+--------+--------+
	|     Source      |   Destination   |
	|      Port       |      Port       |
	+--------+--------+--------+--------+
	|                 |                 |
	|     Length      |    Checksum     |
	+--------+--------+--------+--------+
	|
	|          data octets ...
	+---------------- ...

Length counts the header and the data. The checksum covers a pseudo header
built from the enclosing ip layer, computing it is left to the caller, who
reaches the addresses through Envelope.
*/

const UDPHeaderSize = 8

// UDPHeader udp header
type UDPHeader struct {
	// source port
	srcPort wire16
	// destination port
	dstPort wire16
	// Datagram length
	length wire16
	// Checksum
	checksum wire16
}

func (UDPHeader) Size() int { return UDPHeaderSize }

func (UDPHeader) LayerName() string { return "UDP" }

func (UDPHeader) wireHeader() {}

// UDP transport layer overlay enclosed by any ip layer E
type UDP[E IPPacket] struct {
	Overlay[E, UDPHeader]
}

// ParseUDP overlay udp header after ip.
//
// The ip protocol field is not checked, callers dispatch on it.
func ParseUDP[E IPPacket](ip E) (*UDP[E], error) {
	o, err := Parse[UDPHeader](ip)
	if err != nil {
		return nil, err
	}

	return &UDP[E]{Overlay: o}, nil
}

func (udp *UDP[E]) SourcePort() uint16 {
	return udp.header.srcPort.get()
}

func (udp *UDP[E]) SetSourcePort(port uint16) {
	udp.header.srcPort.set(port)
}

func (udp *UDP[E]) DestinationPort() uint16 {
	return udp.header.dstPort.get()
}

func (udp *UDP[E]) SetDestinationPort(port uint16) {
	udp.header.dstPort.set(port)
}

func (udp *UDP[E]) Length() uint16 {
	return udp.header.length.get()
}

func (udp *UDP[E]) SetLength(length uint16) {
	udp.header.length.set(length)
}

func (udp *UDP[E]) Checksum() uint16 {
	return udp.header.checksum.get()
}

func (udp *UDP[E]) SetChecksum(checksum uint16) {
	udp.header.checksum.set(checksum)
}

func (udp *UDP[E]) String() string {
	return fmt.Sprintf(
		"src_port: %d, dst_port: %d, length: %d, checksum: %d",
		udp.SourcePort(), udp.DestinationPort(),
		udp.Length(), udp.Checksum(),
	)
}
