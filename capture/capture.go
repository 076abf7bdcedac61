package capture

import (
	"context"
	"io"
	"net"
	"os"
	"regexp"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/frozenpine/pktview/cache"
	pverrors "github.com/frozenpine/pktview/errors"
)

// MaxSnaplen snap length of live capture and default of written pcap files
const MaxSnaplen = cache.MaxBytesSize

var (
	dataSourcePattern = regexp.MustCompile(`^(?P<proto>file|iface|pcap)://(?P<source>.+)$`)

	logger logrus.FieldLogger = logrus.StandardLogger()
)

// SetLogger replace package logger
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}

	logger = l
}

// Source frame source of a capture
type Source interface {
	gopacket.PacketDataSource

	LinkType() layers.LinkType
	Snaplen() uint32
	Close() error
}

// FrameHandler called for every captured frame.
//
// Frame and its overlays are only valid during the call, the underlying
// buffer is recycled afterwards. Errors marked recoverable are logged and
// the capture continues, io.EOF stops the capture without error.
type FrameHandler func(frm *Frame) error

type fileSource struct {
	*pcapgo.Reader

	file *os.File
}

func (src *fileSource) Close() error {
	return src.file.Close()
}

func openFile(path string) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	reader, err := pcapgo.NewReader(file)
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, "invalid pcap file: "+path)
	}

	return &fileSource{Reader: reader, file: file}, nil
}

// CreateHandler open frame source from data source url.
//
//	file://<path>    pcap file
//	iface://<name>   live capture on network interface (linux)
//	pcap://<name>    alias of iface
//
// Live source may also be named by one of the interface's ip addresses.
func CreateHandler(dataSrc string) (Source, error) {
	srcMatch := dataSourcePattern.FindStringSubmatch(dataSrc)
	if srcMatch == nil {
		return nil, errors.New("invalid data source: " + dataSrc)
	}

	var proto, source string

	for idx, name := range dataSourcePattern.SubexpNames() {
		switch name {
		case "proto":
			proto = srcMatch[idx]
		case "source":
			source = srcMatch[idx]
		}
	}

	switch proto {
	case "file":
		return openFile(source)
	case "iface", "pcap":
		iface, err := resolveIface(source)
		if err != nil {
			return nil, err
		}

		return openLive(iface)
	default:
		return nil, errors.New("unknown data source protocol: " + proto)
	}
}

// resolveIface find interface name if source is an ip address
func resolveIface(source string) (string, error) {
	ip := net.ParseIP(source)
	if ip == nil {
		return source, nil
	}

	ifaceList, err := net.Interfaces()
	if err != nil {
		return "", errors.WithStack(err)
	}

	for _, iface := range ifaceList {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipNet, ok := addr.(*net.IPNet); ok && ipNet.IP.Equal(ip) {
				return iface.Name, nil
			}
		}
	}

	return "", errors.New("no interface found with address: " + source)
}

// StartCapture read frames from src until ctx done or src exhausted.
//
// Every frame is copied into a buffer from pool, decoded into overlays and
// handed to fn. Frames that fail to decode are still handed over with the
// layers decoded so far, frames without an ethernet header are dropped.
func StartCapture(ctx context.Context, src Source, pool *cache.BytesPool, fn FrameHandler) error {
	if fn == nil {
		return errors.New("frame handler can not be nil")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if pool == nil {
		pool = cache.NewBytesPool(int(src.Snaplen()))
	}

	if lt := src.LinkType(); lt != layers.LinkTypeEthernet {
		return errors.Errorf("unsupported link type: %s", lt)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		data, ci, err := src.ReadPacketData()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return errors.WithStack(err)
		}

		if err = dispatch(pool, data, ci, fn); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}
	}
}

func dispatch(pool *cache.BytesPool, data []byte, ci gopacket.CaptureInfo, fn FrameHandler) error {
	buff := pool.GetBuffer()
	defer buff.Release()

	buff.Load(data)

	frm, err := Decode(buff)
	if frm == nil {
		logger.WithField("ts", ci.Timestamp).Debugf("frame dropped: %v", err)
		return nil
	}

	frm.CaptureInfo = ci

	if err != nil {
		logger.WithField("ts", ci.Timestamp).Debugf("partial frame: %v", err)
	}

	if err = fn(frm); err != nil {
		if pverrors.IsRecoverable(err) {
			logger.WithField("ts", ci.Timestamp).Warnf("%s handler failed: %v", frm, err)
			return nil
		}

		return err
	}

	return nil
}
