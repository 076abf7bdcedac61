//go:build linux

package capture

import (
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
)

type liveSource struct {
	*pcapgo.EthernetHandle
}

func (src *liveSource) LinkType() layers.LinkType {
	return layers.LinkTypeEthernet
}

func (src *liveSource) Snaplen() uint32 {
	return uint32(src.GetCaptureLength())
}

func (src *liveSource) Close() error {
	src.EthernetHandle.Close()

	return nil
}

func openLive(iface string) (Source, error) {
	handle, err := pcapgo.NewEthernetHandle(iface)
	if err != nil {
		return nil, errors.Wrap(err, "open interface failed: "+iface)
	}

	if err = handle.SetCaptureLength(MaxSnaplen); err != nil {
		handle.Close()
		return nil, errors.WithStack(err)
	}

	if err = handle.SetPromiscuous(true); err != nil {
		handle.Close()
		return nil, errors.WithStack(err)
	}

	return &liveSource{EthernetHandle: handle}, nil
}
