package pktview

import (
	"fmt"
	"net"

	"github.com/pkg/errors"

	pverrors "github.com/frozenpine/pktview/errors"
)

// IPProtocol protocol carried in ip payload
type IPProtocol uint8

const (
	IPProtocolICMP IPProtocol = 0x01
	IPProtocolTCP  IPProtocol = 0x06
	IPProtocolUDP  IPProtocol = 0x11
)

func (p IPProtocol) String() string {
	switch p {
	case IPProtocolICMP:
		return "ICMP"
	case IPProtocolTCP:
		return "TCP"
	case IPProtocolUDP:
		return "UDP"
	default:
		return fmt.Sprintf("0x%02x", uint8(p))
	}
}

// IPPacket network layer able to enclose a transport layer.
//
// Addresses are views into the packet buffer, copy them before the buffer
// is recycled.
type IPPacket interface {
	Packet

	SourceAddress() net.IP
	DestinationAddress() net.IP
	NextProtocol() IPProtocol
	String() string
}

// ParseIP overlay the network layer named by eth's ether type
func ParseIP(eth *Ethernet) (IPPacket, error) {
	switch t := eth.EtherType(); t {
	case EtherTypeIPv4:
		ip, err := ParseIPv4(eth)
		if err != nil {
			return nil, err
		}

		return ip, nil
	case EtherTypeIPv6:
		ip, err := ParseIPv6(eth)
		if err != nil {
			return nil, err
		}

		return ip, nil
	default:
		return nil, errors.Wrapf(
			pverrors.ErrUnsupportedLayer, "ether_type %s", t,
		)
	}
}
