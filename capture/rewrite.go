package capture

import (
	"net"

	"github.com/pkg/errors"

	"github.com/frozenpine/pktview"
	pverrors "github.com/frozenpine/pktview/errors"
)

// Rewriter in place header rewrite rules, zero value keeps every field.
//
// Rules are applied through the overlays of a decoded frame, so the frame
// buffer itself is modified.
type Rewriter struct {
	SrcMAC *pktview.MacAddr
	DstMAC *pktview.MacAddr
	SrcIP  net.IP
	DstIP  net.IP
	// port 0 keeps original port
	SrcPort uint16
	DstPort uint16
	// FixChecksums recompute checksums after ip or port rewrite
	FixChecksums bool
}

func (rw *Rewriter) rewriteNetwork() bool {
	return rw.SrcIP != nil || rw.DstIP != nil
}

func (rw *Rewriter) rewriteTransport() bool {
	return rw.SrcPort != 0 || rw.DstPort != 0
}

// Empty rewriter changes nothing
func (rw *Rewriter) Empty() bool {
	return rw.SrcMAC == nil && rw.DstMAC == nil &&
		!rw.rewriteNetwork() && !rw.rewriteTransport()
}

// Apply rewrite frm.
//
// Rules naming a layer the frame lacks, or an address of the other ip
// family, fail with a recoverable error after the applicable rules ran.
func (rw *Rewriter) Apply(frm *Frame) error {
	if rw.SrcMAC != nil {
		frm.Ethernet.SetSource(*rw.SrcMAC)
	}

	if rw.DstMAC != nil {
		frm.Ethernet.SetDestination(*rw.DstMAC)
	}

	var errs []error

	if rw.rewriteNetwork() {
		if err := rw.applyNetwork(frm.Network); err != nil {
			errs = append(errs, err)
		}
	}

	if rw.rewriteTransport() {
		if err := rw.applyTransport(frm); err != nil {
			errs = append(errs, err)
		}
	}

	if rw.FixChecksums && frm.Transport() != nil &&
		(rw.rewriteNetwork() || rw.rewriteTransport()) {
		if err := FixChecksums(frm.Raw.Buffer().Bytes()); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return pverrors.Recoverable(pverrors.Join(errs...))
	}

	return nil
}

type addrSetter interface {
	SetSourceAddress(net.IP) error
	SetDestinationAddress(net.IP) error
}

func (rw *Rewriter) applyNetwork(ip pktview.IPPacket) error {
	if ip == nil {
		return errors.Wrap(pverrors.ErrUnsupportedLayer, "ip rewrite without ip layer")
	}

	setter, ok := ip.(addrSetter)
	if !ok {
		return errors.Wrapf(pverrors.ErrUnsupportedLayer, "ip rewrite on %T", ip)
	}

	if rw.SrcIP != nil {
		if err := setter.SetSourceAddress(rw.SrcIP); err != nil {
			return err
		}
	}

	if rw.DstIP != nil {
		if err := setter.SetDestinationAddress(rw.DstIP); err != nil {
			return err
		}
	}

	return nil
}

func (rw *Rewriter) applyTransport(frm *Frame) error {
	switch {
	case frm.UDP != nil:
		if rw.SrcPort != 0 {
			frm.UDP.SetSourcePort(rw.SrcPort)
		}
		if rw.DstPort != 0 {
			frm.UDP.SetDestinationPort(rw.DstPort)
		}
	case frm.TCP != nil:
		if rw.SrcPort != 0 {
			frm.TCP.SetSourcePort(rw.SrcPort)
		}
		if rw.DstPort != 0 {
			frm.TCP.SetDestinationPort(rw.DstPort)
		}
	default:
		return errors.Wrap(pverrors.ErrUnsupportedLayer, "port rewrite without transport layer")
	}

	return nil
}
