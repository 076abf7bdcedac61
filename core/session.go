package core

import (
	"bytes"
	"net"
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/frozenpine/pktview"
)

// Session transport 5-tuple of a parsed packet
type Session struct {
	Proto   pktview.IPProtocol
	SrcIP   net.IP
	SrcPort int
	DstIP   net.IP
	DstPort int
}

// NewSession build session from ip layer and transport ports.
//
// Addresses are copied, the session outlives the packet buffer.
func NewSession(ip pktview.IPPacket, srcPort, dstPort uint16) *Session {
	return &Session{
		Proto:   ip.NextProtocol(),
		SrcIP:   append(net.IP(nil), ip.SourceAddress()...),
		SrcPort: int(srcPort),
		DstIP:   append(net.IP(nil), ip.DestinationAddress()...),
		DstPort: int(dstPort),
	}
}

func (s *Session) SrcAddr() net.Addr {
	switch s.Proto {
	case pktview.IPProtocolTCP:
		return &net.TCPAddr{IP: s.SrcIP, Port: s.SrcPort}
	case pktview.IPProtocolUDP:
		return &net.UDPAddr{IP: s.SrcIP, Port: s.SrcPort}
	default:
		return nil
	}
}

func (s *Session) DstAddr() net.Addr {
	switch s.Proto {
	case pktview.IPProtocolTCP:
		return &net.TCPAddr{IP: s.DstIP, Port: s.DstPort}
	case pktview.IPProtocolUDP:
		return &net.UDPAddr{IP: s.DstIP, Port: s.DstPort}
	default:
		return nil
	}
}

// Key stable map key of session
func (s *Session) Key() string {
	buff := bytebufferpool.Get()
	defer bytebufferpool.Put(buff)

	buff.WriteString(s.Proto.String())
	buff.WriteByte('|')
	buff.WriteString(s.SrcIP.String())
	buff.WriteByte(':')
	buff.WriteString(strconv.Itoa(s.SrcPort))
	buff.WriteByte('|')
	buff.WriteString(s.DstIP.String())
	buff.WriteByte(':')
	buff.WriteString(strconv.Itoa(s.DstPort))

	return buff.String()
}

func (s *Session) String() string {
	buff := bytes.NewBufferString("[")
	buff.WriteString(s.Proto.String())
	buff.WriteString("] ")
	buff.WriteString(net.JoinHostPort(s.SrcIP.String(), strconv.Itoa(s.SrcPort)))
	buff.WriteString(" -> ")
	buff.WriteString(net.JoinHostPort(s.DstIP.String(), strconv.Itoa(s.DstPort)))

	return buff.String()
}
