// Package byteio provides the fixed-length integer and string codecs, and the
// bit-level cursor, shared by the archive index engine and the image codec.
package byteio

import "encoding/binary"

// ReadU16 reads an unsigned 16-bit little-endian integer from b.
// b must have at least 2 bytes.
func ReadU16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// WriteU16 writes v as an unsigned 16-bit little-endian integer into b.
// b must have at least 2 bytes.
func WriteU16(b []byte, v uint16) {
	binary.LittleEndian.PutUint16(b, v)
}

// ReadU32 reads an unsigned 32-bit little-endian integer from b.
// b must have at least 4 bytes.
func ReadU32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// WriteU32 writes v as an unsigned 32-bit little-endian integer into b.
// b must have at least 4 bytes.
func WriteU32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}

// ReadI32 reads a signed 32-bit little-endian integer from b.
func ReadI32(b []byte) int32 {
	return int32(ReadU32(b))
}

// WriteI32 writes v as a signed 32-bit little-endian integer into b.
func WriteI32(b []byte, v int32) {
	WriteU32(b, uint32(v))
}
