package capture

import (
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
)

// Writer pcap output of ethernet frames
type Writer struct {
	w      *pcapgo.Writer
	closer io.Closer
	count  int
}

// NewWriter write pcap file header to w, snaplen 0 means MaxSnaplen
func NewWriter(w io.Writer, snaplen uint32) (*Writer, error) {
	if snaplen == 0 {
		snaplen = MaxSnaplen
	}

	pw := pcapgo.NewWriter(w)

	if err := pw.WriteFileHeader(snaplen, layers.LinkTypeEthernet); err != nil {
		return nil, errors.WithStack(err)
	}

	writer := Writer{w: pw}

	if c, ok := w.(io.Closer); ok {
		writer.closer = c
	}

	return &writer, nil
}

// CreateWriter create pcap file at path
func CreateWriter(path string, snaplen uint32) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	writer, err := NewWriter(file, snaplen)
	if err != nil {
		file.Close()
		return nil, err
	}

	return writer, nil
}

// WriteFrame write frame bytes with its original capture info
func (w *Writer) WriteFrame(frm *Frame) error {
	return w.WritePacket(frm.CaptureInfo, frm.Raw.Buffer().Bytes())
}

// WritePacket write data as one record, capture length follows data
func (w *Writer) WritePacket(ci gopacket.CaptureInfo, data []byte) error {
	ci.CaptureLength = len(data)
	if ci.Length < ci.CaptureLength {
		ci.Length = ci.CaptureLength
	}

	if err := w.w.WritePacket(ci, data); err != nil {
		return errors.WithStack(err)
	}

	w.count++

	return nil
}

// Count records written
func (w *Writer) Count() int {
	return w.count
}

// Close close underlying file if writer owns one
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}

	return errors.WithStack(w.closer.Close())
}
