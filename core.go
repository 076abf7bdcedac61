// Package pktview overlays typed protocol headers on mutable packet buffers
// without copying.
//
// A packet is parsed layer by layer. Each layer is an overlay: a typed view of
// a fixed-size header at some offset of the buffer, bound to the layer that
// produced it (its envelope). Bounds are checked once, when the overlay is
// constructed; field accessors afterwards never fail and convert between wire
// (big-endian) and host order on every read and write.
//
// Overlays own no memory. They stay valid while the underlying buffer is not
// resized or released, and the caller must guarantee that nobody else mutates
// the overlaid bytes meanwhile.
package pktview

import (
	"unsafe"

	"github.com/frozenpine/pktview/errors"
)

// Buffer packet memory borrowed by overlays.
//
// Bytes returns the readable region, its length must not be less than Len.
// The returned slice stays valid until the next structural resize of the
// buffer. Whoever hands a Buffer to Parse guarantees exclusive access to it
// for the lifetime of the resulting overlays.
type Buffer interface {
	Len() int
	Bytes() []byte
}

// Fixed type with a single statically known wire size in bytes
type Fixed interface {
	Size() int
}

// Header wire format header usable as an overlay.
//
// Header types consist of byte sized fields only, so they have no padding
// and may be placed at any offset of a buffer.
type Header interface {
	Fixed

	// LayerName protocol name for diagnostics
	LayerName() string

	wireHeader()
}

// SizeOf fixed wire size of header type H
func SizeOf[H Header]() int {
	var hdr H

	return hdr.Size()
}

// Packet common view of a parsed layer
type Packet interface {
	Buffer() Buffer
	Offset() int
	HeaderLen() int
}

// NextOffset offset of the layer following p
func NextOffset(p Packet) int {
	return p.Offset() + p.HeaderLen()
}

// HeaderBytes raw bytes of p's header, including options.
//
// A header length rewritten past the end of buffer is clamped to it.
func HeaderBytes(p Packet) []byte {
	return span(p.Buffer(), p.Offset(), NextOffset(p))
}

// Payload bytes following p's header up to the end of buffer
func Payload(p Packet) []byte {
	buf := p.Buffer()

	return span(buf, NextOffset(p), buf.Len())
}

// span buf bytes in [from, to) clamped to [0, buf.Len()]
func span(buf Buffer, from, to int) []byte {
	length := buf.Len()

	to = max(0, min(to, length))
	from = max(0, min(from, to))

	return buf.Bytes()[from:to]
}

type bytesBuffer []byte

func (b bytesBuffer) Len() int {
	return len(b)
}

func (b bytesBuffer) Bytes() []byte {
	return b
}

// RawPacket root envelope of a parse chain, an empty layer at offset 0
type RawPacket struct {
	buf Buffer
}

// NewRawPacket create root envelope over buf
func NewRawPacket(buf Buffer) *RawPacket {
	return &RawPacket{buf: buf}
}

// FromBytes create root envelope over a plain byte slice
func FromBytes(data []byte) *RawPacket {
	return NewRawPacket(bytesBuffer(data))
}

func (p *RawPacket) Buffer() Buffer {
	return p.buf
}

func (p *RawPacket) Offset() int {
	return 0
}

func (p *RawPacket) HeaderLen() int {
	return 0
}

func (p *RawPacket) Len() int {
	return p.buf.Len()
}

// Overlay header H placed at offset of a buffer, produced by envelope E
type Overlay[E any, H Header] struct {
	envelope E
	buf      Buffer
	offset   int
	header   *H
}

// ParseAt bind header type H at offset of buf.
//
// Fails when the header does not fit in the buffer, no partial overlay is
// ever returned.
func ParseAt[H Header, E any](envelope E, buf Buffer, offset int) (Overlay[E, H], error) {
	size := SizeOf[H]()
	length := buf.Len()

	data := buf.Bytes()
	if len(data) < length {
		length = len(data)
	}

	if offset < 0 || offset+size > length {
		var hdr H

		return Overlay[E, H]{}, errors.NewInsufficientBuffer(
			hdr.LayerName(), offset, size, length,
		)
	}

	return Overlay[E, H]{
		envelope: envelope,
		buf:      buf,
		offset:   offset,
		header:   (*H)(unsafe.Pointer(&data[offset])),
	}, nil
}

// Parse bind header type H right after envelope's header
func Parse[H Header, E Packet](envelope E) (Overlay[E, H], error) {
	return ParseAt[H](envelope, envelope.Buffer(), NextOffset(envelope))
}

// Envelope layer which produced this overlay
func (o *Overlay[E, H]) Envelope() E {
	return o.envelope
}

func (o *Overlay[E, H]) Buffer() Buffer {
	return o.buf
}

func (o *Overlay[E, H]) Offset() int {
	return o.offset
}

// HeaderLen fixed header size, layers with options override it
func (o *Overlay[E, H]) HeaderLen() int {
	return SizeOf[H]()
}

// Header typed header living in the buffer
func (o *Overlay[E, H]) Header() *H {
	return o.header
}
