package pktview

import (
	"fmt"
	"net"

	"github.com/pkg/errors"
)

/*
Ethernet Type II Frame

	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	|  Dst MAC  |  Src MAC  |Typ|             Payload               |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+                                   +
	|                                                               |
	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/

const EthernetHeaderSize = 14

// MacAddr ethernet mac address
type MacAddr [6]byte

func NewMacAddr(a, b, c, d, e, f byte) MacAddr {
	return MacAddr{a, b, c, d, e, f}
}

// MacAddrFromSlice copy first 6 bytes of data, data must hold at least 6 bytes
func MacAddrFromSlice(data []byte) MacAddr {
	var addr MacAddr

	copy(addr[:], data[:len(addr)])

	return addr
}

// ParseMacAddr parse colon or dash separated EUI-48 text
func ParseMacAddr(s string) (MacAddr, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return MacAddr{}, errors.WithStack(err)
	}

	if len(hw) != 6 {
		return MacAddr{}, errors.Errorf("not an EUI-48 address: %s", s)
	}

	return MacAddrFromSlice(hw), nil
}

func (addr MacAddr) String() string {
	return fmt.Sprintf(
		"%02x:%02x:%02x:%02x:%02x:%02x",
		addr[0], addr[1], addr[2],
		addr[3], addr[4], addr[5],
	)
}

// EtherType protocol carried in ethernet payload
type EtherType uint16

const (
	EtherTypeIPv4 EtherType = 0x0800
	EtherTypeIPv6 EtherType = 0x86DD
)

func (t EtherType) String() string {
	switch t {
	case EtherTypeIPv4:
		return "IPv4"
	case EtherTypeIPv6:
		return "IPv6"
	default:
		return fmt.Sprintf("0x%04x", uint16(t))
	}
}

// EthernetHeader ethernet II header
type EthernetHeader struct {
	// Destination host address
	dst MacAddr
	// Source host address
	src MacAddr
	// IP? ARP? RARP? etc
	etherType wire16
}

func (EthernetHeader) Size() int { return EthernetHeaderSize }

func (EthernetHeader) LayerName() string { return "Ethernet" }

func (EthernetHeader) wireHeader() {}

// Ethernet link layer overlay, always the first layer of a packet
type Ethernet struct {
	Overlay[*RawPacket, EthernetHeader]
}

// ParseEthernet overlay ethernet header at start of raw packet
func ParseEthernet(raw *RawPacket) (*Ethernet, error) {
	o, err := Parse[EthernetHeader](raw)
	if err != nil {
		return nil, err
	}

	return &Ethernet{Overlay: o}, nil
}

func (eth *Ethernet) Source() MacAddr {
	return eth.header.src
}

func (eth *Ethernet) SetSource(addr MacAddr) {
	eth.header.src = addr
}

func (eth *Ethernet) Destination() MacAddr {
	return eth.header.dst
}

func (eth *Ethernet) SetDestination(addr MacAddr) {
	eth.header.dst = addr
}

func (eth *Ethernet) EtherType() EtherType {
	return EtherType(eth.header.etherType.get())
}

func (eth *Ethernet) SetEtherType(t EtherType) {
	eth.header.etherType.set(uint16(t))
}

func (eth *Ethernet) String() string {
	return fmt.Sprintf(
		"%s > %s, ether_type: %s",
		eth.Source(), eth.Destination(), eth.EtherType(),
	)
}
