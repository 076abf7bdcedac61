package capture

import (
	"strings"

	"github.com/google/gopacket"
	"github.com/pkg/errors"

	"github.com/frozenpine/pktview"
	"github.com/frozenpine/pktview/core"
	pverrors "github.com/frozenpine/pktview/errors"
)

// Frame decoded layer chain of one captured ethernet frame.
//
// Layers not present in the frame are nil, at most one of UDP and TCP is set.
type Frame struct {
	gopacket.CaptureInfo

	Raw      *pktview.RawPacket
	Ethernet *pktview.Ethernet
	Network  pktview.IPPacket
	UDP      *pktview.UDP[pktview.IPPacket]
	TCP      *pktview.TCP[pktview.IPPacket]
}

// Decode overlay ethernet, ip and transport layers on buf.
//
// A frame shorter than an ethernet header gives a nil frame. Failures in
// later layers give the frame decoded so far together with the error.
func Decode(buf pktview.Buffer) (*Frame, error) {
	frm := Frame{Raw: pktview.NewRawPacket(buf)}

	eth, err := pktview.ParseEthernet(frm.Raw)
	if err != nil {
		return nil, err
	}
	frm.Ethernet = eth

	if frm.Network, err = pktview.ParseIP(eth); err != nil {
		return &frm, err
	}

	switch proto := frm.Network.NextProtocol(); proto {
	case pktview.IPProtocolUDP:
		frm.UDP, err = pktview.ParseUDP(frm.Network)
	case pktview.IPProtocolTCP:
		frm.TCP, err = pktview.ParseTCP(frm.Network)
	default:
		err = errors.Wrapf(pverrors.ErrUnsupportedLayer, "ip protocol %s", proto)
	}

	return &frm, err
}

// Transport innermost transport layer, nil if none decoded
func (frm *Frame) Transport() pktview.Packet {
	switch {
	case frm.UDP != nil:
		return frm.UDP
	case frm.TCP != nil:
		return frm.TCP
	default:
		return nil
	}
}

// Payload bytes after the innermost decoded layer
func (frm *Frame) Payload() []byte {
	if p := frm.Transport(); p != nil {
		return pktview.Payload(p)
	}

	if frm.Network != nil {
		return pktview.Payload(frm.Network)
	}

	return pktview.Payload(frm.Ethernet)
}

// Session transport session of frame, nil without a transport layer
func (frm *Frame) Session() *core.Session {
	switch {
	case frm.UDP != nil:
		return core.NewSession(frm.Network, frm.UDP.SourcePort(), frm.UDP.DestinationPort())
	case frm.TCP != nil:
		return core.NewSession(frm.Network, frm.TCP.SourcePort(), frm.TCP.DestinationPort())
	default:
		return nil
	}
}

func (frm *Frame) String() string {
	layers := []string{frm.Ethernet.String()}

	if frm.Network != nil {
		layers = append(layers, frm.Network.String())
	}

	switch {
	case frm.UDP != nil:
		layers = append(layers, frm.UDP.String())
	case frm.TCP != nil:
		layers = append(layers, frm.TCP.String())
	}

	return "[" + strings.Join(layers, "] [") + "]"
}
