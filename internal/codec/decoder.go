package codec

import "github.com/haruka-vn/vnarc/internal/byteio"

// decompress expands payload (the compressed body following the image
// header) into a buffer of exactly outputLen bytes.
//
// Every control bit read via the bit cursor selects either a literal copy
// (bit 0) or a back-reference (bit 1). Back-references come in three
// families depending on the top two bits of the opcode byte; see spec
// §4.3 for the bit layouts. The loop stops once the cursor runs out of
// input or the output buffer is full — whichever comes first.
func decompress(payload []byte, outputLen int) ([]byte, error) {
	cur := byteio.NewBitCursor(payload)
	output := make([]byte, outputLen)
	dst := 0

	for cur.Remaining() > 0 && dst < outputLen {
		bit, ok := cur.NextBit()
		if !ok {
			break
		}

		if bit == 0 {
			b, ok := cur.ReadByte()
			if !ok {
				return nil, ErrTruncated
			}
			output[dst] = b
			dst++
			continue
		}

		op, ok := cur.ReadByte()
		if !ok {
			return nil, ErrTruncated
		}

		var shift, length int
		switch {
		case op&0x80 == 0:
			ln := int(op >> 2)
			tag := int(op & 3)
			if tag == 3 {
				n := ln + 9
				for i := 0; i < n && dst < outputLen; i++ {
					db, ok := cur.ReadByte()
					if !ok {
						return nil, ErrTruncated
					}
					output[dst] = db
					dst++
				}
				continue
			}
			shift = ln
			length = tag + 2

		case op&0x40 == 0:
			lo, ok := cur.ReadByte()
			if !ok {
				return nil, ErrTruncated
			}
			v := (int(op&0x3F) << 8) | int(lo)
			length = (v & 0xF) + 3
			shift = v >> 4

		default: // op&0xC0 == 0xC0
			lo, ok := cur.ReadByte()
			if !ok {
				return nil, ErrTruncated
			}
			idx, ok := cur.ReadByte()
			if !ok {
				return nil, ErrTruncated
			}
			shift = (int(op&0x3F) << 8) | int(lo)
			length = lengthTable[idx]
		}

		shift++
		if dst < shift {
			return nil, ErrInvalidOffset
		}
		n := length
		if outputLen-dst < n {
			n = outputLen - dst
		}
		for i := 0; i < n; i++ {
			output[dst] = output[dst-shift] + output[dst]
			dst++
		}
	}

	return output, nil
}
