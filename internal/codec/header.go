// Package codec implements the YB image codec: a byte-aligned, bit-flagged
// LZ-style decompressor/compressor with a delta predictor and a "dummy
// alpha" heuristic.
//
// Reference: spec image codec §3 (image header), §4.3 (decoder),
// §4.4 (encoder).
package codec

import (
	"errors"

	"github.com/haruka-vn/vnarc/internal/byteio"
)

const (
	// HeaderSize is the fixed size, in bytes, of the YB image header.
	HeaderSize = 16

	flagDelta = 0x80
)

var (
	ErrBadMagic      = errors.New("codec: bad magic bytes")
	ErrBadBPP        = errors.New("codec: bytes-per-pixel must be 3 or 4")
	ErrTruncated     = errors.New("codec: truncated input")
	ErrInvalidOffset = errors.New("codec: invalid offset value")
)

// Header is the parsed 16-byte YB image header.
type Header struct {
	Flag          byte
	BytesPerPixel int
	PackedSize    uint32
	Width         int
	Height        int
}

// HasDelta reports whether the delta predictor was applied during encoding.
func (h Header) HasDelta() bool { return h.Flag&flagDelta != 0 }

// PixelLen returns the expected raw pixel buffer length for this header.
func (h Header) PixelLen() int {
	return h.Width * h.Height * h.BytesPerPixel
}

// ParseHeader reads and validates the fixed 16-byte header from the front
// of data. data must have at least HeaderSize bytes.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, ErrTruncated
	}
	if data[0] != 'Y' || data[1] != 'B' {
		return Header{}, ErrBadMagic
	}
	bpp := int(data[3])
	if bpp != 3 && bpp != 4 {
		return Header{}, ErrBadBPP
	}
	return Header{
		Flag:          data[2],
		BytesPerPixel: bpp,
		PackedSize:    byteio.ReadU32(data[4:8]),
		Width:         int(byteio.ReadU16(data[12:14])),
		Height:        int(byteio.ReadU16(data[14:16])),
	}, nil
}

// WriteHeader serializes hdr into a 16-byte header. packedSize is the
// number of compressed body bytes following the header.
func WriteHeader(hdr Header, packedSize uint32) []byte {
	b := make([]byte, HeaderSize)
	b[0], b[1] = 'Y', 'B'
	b[2] = hdr.Flag
	b[3] = byte(hdr.BytesPerPixel)
	byteio.WriteU32(b[4:8], packedSize)
	// bytes 8-11 reserved/zero.
	byteio.WriteU16(b[12:14], uint16(hdr.Width))
	byteio.WriteU16(b[14:16], uint16(hdr.Height))
	return b
}
