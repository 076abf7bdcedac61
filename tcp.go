package pktview

import (
	"fmt"
	"strings"

	pverrors "github.com/frozenpine/pktview/errors"
)

/*
TCP Header Format (RFC 793)

	 0                   1                   2                   3
	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|          Source Port          |       Destination Port        |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|                        Sequence Number                        |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|                    Acknowledgment Number                      |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|  Data |       |C|E|U|A|P|R|S|F|                               |
	| Offset| Rsrvd |W|C|R|C|S|S|Y|I|            Window             |
	|       |       |R|E|G|K|H|T|N|N|                               |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|           Checksum            |         Urgent Pointer        |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|                    Options                    |    Padding    |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/

// TCPHeaderSize fixed part of the header, options follow it
const TCPHeaderSize = 20

// TCPFlags tcp flags
type TCPFlags uint8

const (
	FIN TCPFlags = 1 << iota // finish
	SYN                      // sync
	RST                      // reset
	PSH                      // push
	ACK                      // acknowlege
	URG                      // urgent
	ECE                      // ece
	CWR                      // cwr
)

var tcpFlagNames = [...]string{"FIN", "SYN", "RST", "PSH", "ACK", "URG", "ECE", "CWR"}

func (flag TCPFlags) HasFlag(f TCPFlags) bool {
	return flag&f == f
}

func (flag TCPFlags) String() string {
	if flag == 0 {
		return "none"
	}

	names := make([]string, 0, len(tcpFlagNames))

	for idx, name := range tcpFlagNames {
		if flag.HasFlag(1 << idx) {
			names = append(names, name)
		}
	}

	return strings.Join(names, "|")
}

// TCPHeader tcp header without options
type TCPHeader struct {
	// source port
	srcPort wire16
	// destination port
	dstPort wire16
	// sequence number
	seq wire32
	// acknowledgement number
	ack wire32
	// data offset, rsvd
	offset uint8
	// flags
	flags uint8
	// window size
	window wire16
	// checksum
	checksum wire16
	// urgent pointer
	urgent wire16
}

func (TCPHeader) Size() int { return TCPHeaderSize }

func (TCPHeader) LayerName() string { return "TCP" }

func (TCPHeader) wireHeader() {}

// TCP transport layer overlay enclosed by any ip layer E
type TCP[E IPPacket] struct {
	Overlay[E, TCPHeader]
}

// ParseTCP overlay tcp header after ip, options included
func ParseTCP[E IPPacket](ip E) (*TCP[E], error) {
	o, err := Parse[TCPHeader](ip)
	if err != nil {
		return nil, err
	}

	tcp := TCP[E]{Overlay: o}

	headerLen := tcp.HeaderLen()
	if headerLen < TCPHeaderSize {
		return nil, pverrors.NewInvalidHeaderLength(
			tcp.header.LayerName(), o.offset, headerLen,
		)
	}

	if length := o.buf.Len(); o.offset+headerLen > length {
		return nil, pverrors.NewInsufficientBuffer(
			tcp.header.LayerName(), o.offset, headerLen, length,
		)
	}

	return &tcp, nil
}

func (tcp *TCP[E]) SourcePort() uint16 {
	return tcp.header.srcPort.get()
}

func (tcp *TCP[E]) SetSourcePort(port uint16) {
	tcp.header.srcPort.set(port)
}

func (tcp *TCP[E]) DestinationPort() uint16 {
	return tcp.header.dstPort.get()
}

func (tcp *TCP[E]) SetDestinationPort(port uint16) {
	tcp.header.dstPort.set(port)
}

func (tcp *TCP[E]) Seq() uint32 {
	return tcp.header.seq.get()
}

func (tcp *TCP[E]) SetSeq(seq uint32) {
	tcp.header.seq.set(seq)
}

func (tcp *TCP[E]) Ack() uint32 {
	return tcp.header.ack.get()
}

func (tcp *TCP[E]) SetAck(ack uint32) {
	tcp.header.ack.set(ack)
}

// HeaderLen header length in bytes from data offset, options included
func (tcp *TCP[E]) HeaderLen() int {
	return int(tcp.header.offset>>4) * 4
}

// SetHeaderLen set data offset from a byte length, length must be a multiple of 4.
//
// Options, HeaderBytes and Payload clamp a length past the end of buffer,
// parse the segment again to validate it.
func (tcp *TCP[E]) SetHeaderLen(length int) {
	tcp.header.offset = (tcp.header.offset & 0x0f) | uint8(length/4)<<4
}

func (tcp *TCP[E]) Flags() TCPFlags {
	return TCPFlags(tcp.header.flags)
}

func (tcp *TCP[E]) SetFlags(flags TCPFlags) {
	tcp.header.flags = uint8(flags)
}

func (tcp *TCP[E]) Window() uint16 {
	return tcp.header.window.get()
}

func (tcp *TCP[E]) SetWindow(window uint16) {
	tcp.header.window.set(window)
}

func (tcp *TCP[E]) Checksum() uint16 {
	return tcp.header.checksum.get()
}

func (tcp *TCP[E]) SetChecksum(checksum uint16) {
	tcp.header.checksum.set(checksum)
}

func (tcp *TCP[E]) UrgentPointer() uint16 {
	return tcp.header.urgent.get()
}

func (tcp *TCP[E]) SetUrgentPointer(ptr uint16) {
	tcp.header.urgent.set(ptr)
}

// Options raw option bytes between the fixed header and the payload
func (tcp *TCP[E]) Options() []byte {
	return span(tcp.buf, tcp.offset+TCPHeaderSize, tcp.offset+tcp.HeaderLen())
}

func (tcp *TCP[E]) String() string {
	return fmt.Sprintf(
		"src_port: %d, dst_port: %d, seq: %d, ack: %d, flags: %s, window: %d",
		tcp.SourcePort(), tcp.DestinationPort(),
		tcp.Seq(), tcp.Ack(), tcp.Flags(), tcp.Window(),
	)
}
