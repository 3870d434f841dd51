package codec

import "github.com/haruka-vn/vnarc/internal/byteio"

// compress builds the bit-flagged control stream for input using a hash-
// chain match finder.
//
// The medium-form back-reference opcode in the original encoder disagrees
// with its own decoder (spec §9, Open Questions): its bit layout cannot be
// parsed back by the documented decoder grammar. Rather than reproduce
// that bug, the medium form here is redesigned to match the decoder: a
// 14-bit (shift<<4 | length-3) field split across two bytes, which the
// decoder's `op&0x40==0` branch already expects.
func compress(input []byte) []byte {
	mf := newMatchFinder(input)
	bw := byteio.NewBitWriter()
	n := len(input)
	pos := 0

	for pos < n {
		length, offset, ok := mf.findLongestMatch(pos)
		if ok {
			bw.WriteBit(1)
			emitMatch(bw, length, offset)
			for k := pos; k < pos+length; k++ {
				mf.insert(k)
			}
			pos += length
			continue
		}

		runStart := pos
		for pos < n {
			if _, _, k := mf.findLongestMatch(pos); k {
				break
			}
			mf.insert(pos)
			pos++
		}
		emitLiteralRun(bw, input[runStart:pos])
	}

	return bw.Bytes()
}

// maxLiteralRun is the longest run a single long-literal-run opcode can
// encode: tag 3's 5-bit length field (0..31) plus the base of 9.
const maxLiteralRun = 31 + 9

// emitLiteralRun encodes run as one or more long-literal-run tokens
// (control bit 1, tag 3) for any chunk of at least minMatchLen+6 bytes,
// falling back to per-byte literals (control bit 0) for the remainder —
// trading one control bit per run for the per-byte cost on long
// unmatchable stretches, per spec §4.4.
func emitLiteralRun(bw *byteio.BitWriter, run []byte) {
	const longRunThreshold = 9
	i := 0
	for len(run)-i >= longRunThreshold {
		chunk := len(run) - i
		if chunk > maxLiteralRun {
			chunk = maxLiteralRun
		}
		ln := chunk - 9
		bw.WriteBit(1)
		bw.WriteDataByte(byte(ln<<2) | 0x03)
		bw.WriteDataBytes(run[i : i+chunk])
		i += chunk
	}
	for ; i < len(run); i++ {
		bw.WriteBit(0)
		bw.WriteDataByte(run[i])
	}
}

// emitMatch picks the shortest opcode family that can represent (length,
// offset) and writes it, per spec §4.4.
func emitMatch(bw *byteio.BitWriter, length, offset int) {
	switch {
	case length >= minMatchLen && length <= 4 && offset <= 32:
		shift := offset - 1
		tag := length - 2
		bw.WriteDataByte(byte(shift<<2) | byte(tag))

	case length <= 18 && offset <= 1024:
		v := ((offset - 1) << 4) | (length - 3)
		b0 := 0x80 | byte((v>>8)&0x3F)
		b1 := byte(v & 0xFF)
		bw.WriteDataByte(b0)
		bw.WriteDataByte(b1)

	default:
		v := offset - 1
		b0 := 0xC0 | byte((v>>8)&0x3F)
		b1 := byte(v & 0xFF)
		idx := byte(length - 3)
		bw.WriteDataByte(b0)
		bw.WriteDataByte(b1)
		bw.WriteDataByte(idx)
	}
}
