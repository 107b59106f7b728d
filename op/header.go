package op

import (
	"bytes"
	"fmt"
)

// Header layout, byte offsets from the start of the image.
const (
	HeaderSize = 32

	MagicOffset     = 0
	FormatOffset    = 4
	StartNodeOffset = 8
	TitleOffset     = 12
	BylineOffset    = 16
	VersionOffset   = 20
)

const FormatVersion = 1

var Magic = [4]byte{'G', 'B', 'K', 0}

type Header struct {
	Magic     [4]byte
	Format    uint32
	StartNode uint32
	Title     uint32
	Byline    uint32
	Version   uint32
}

// NewHeader returns a header with the magic and format set,
// every address field left to be patched.
func NewHeader() Header {
	return Header{Magic: Magic, Format: FormatVersion}
}

// Encode writes the header in the first HeaderSize bytes of buf.
func (h Header) Encode(buf []byte) error {
	if len(buf) < HeaderSize {
		return fmt.Errorf("header needs %d bytes, got %d: %w", HeaderSize, len(buf), ErrOutOfBounds)
	}
	clear(buf[:HeaderSize])
	copy(buf[MagicOffset:], h.Magic[:])
	Endian.PutUint32(buf[FormatOffset:], h.Format)
	Endian.PutUint32(buf[StartNodeOffset:], h.StartNode)
	Endian.PutUint32(buf[TitleOffset:], h.Title)
	Endian.PutUint32(buf[BylineOffset:], h.Byline)
	Endian.PutUint32(buf[VersionOffset:], h.Version)
	return nil
}

// DecodeHeader reads and validates the header at the start of buf.
func DecodeHeader(buf []byte) (Header, error) {
	var h Header
	if len(buf) < HeaderSize {
		return h, fmt.Errorf("image is %d bytes, smaller than the header: %w", len(buf), ErrMalformedRecord)
	}
	copy(h.Magic[:], buf[MagicOffset:])
	if !bytes.Equal(h.Magic[:], Magic[:]) {
		return h, fmt.Errorf("bad magic %q: %w", h.Magic[:], ErrMalformedRecord)
	}
	h.Format = Endian.Uint32(buf[FormatOffset:])
	if h.Format != FormatVersion {
		return h, fmt.Errorf("unsupported format version %d: %w", h.Format, ErrMalformedRecord)
	}
	h.StartNode = Endian.Uint32(buf[StartNodeOffset:])
	h.Title = Endian.Uint32(buf[TitleOffset:])
	h.Byline = Endian.Uint32(buf[BylineOffset:])
	h.Version = Endian.Uint32(buf[VersionOffset:])
	return h, nil
}
