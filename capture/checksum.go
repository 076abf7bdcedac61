package capture

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/pkg/errors"

	pverrors "github.com/frozenpine/pktview/errors"
)

var checksumOpts = gopacket.SerializeOptions{ComputeChecksums: true}

// FixChecksums recompute ip and transport checksums of an ethernet frame in place.
//
// Lengths are kept as found in the frame, frame length never changes.
func FixChecksums(data []byte) error {
	pkt := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.NoCopy)

	eth, _ := pkt.LinkLayer().(*layers.Ethernet)
	if eth == nil {
		return errors.Wrap(pverrors.ErrUnsupportedLayer, "no ethernet layer")
	}

	var (
		network gopacket.NetworkLayer
		next    gopacket.LayerType
		ip      gopacket.SerializableLayer
	)

	switch l := pkt.NetworkLayer().(type) {
	case *layers.IPv4:
		network, next, ip = l, l.NextLayerType(), l
	case *layers.IPv6:
		network, next, ip = l, l.NextLayerType(), l
	default:
		return errors.Wrap(pverrors.ErrUnsupportedLayer, "no ip layer")
	}

	var transport gopacket.SerializableLayer

	switch l := pkt.TransportLayer().(type) {
	case *layers.UDP:
		if err := l.SetNetworkLayerForChecksum(network); err != nil {
			return errors.WithStack(err)
		}
		transport = l
	case *layers.TCP:
		if err := l.SetNetworkLayerForChecksum(network); err != nil {
			return errors.WithStack(err)
		}
		transport = l
	default:
		return errors.Wrap(pverrors.ErrUnsupportedLayer, "no transport layer")
	}

	// extension headers between ip and transport are not re-serialized
	if next != transport.LayerType() {
		return errors.Wrapf(pverrors.ErrUnsupportedLayer, "ip next layer %s", next)
	}

	buf := gopacket.NewSerializeBuffer()

	if err := gopacket.SerializeLayers(
		buf, checksumOpts,
		eth, ip, transport,
		gopacket.Payload(pkt.TransportLayer().LayerPayload()),
	); err != nil {
		return errors.WithStack(err)
	}

	// serialized frame may carry ethernet padding the original did not
	copy(data, buf.Bytes())

	return nil
}
