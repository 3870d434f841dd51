package codec

// lengthTable is the 256-entry length mapping used by the long-form
// back-reference opcode. It is a pure constant, computed once at program
// start rather than recomputed per decode (spec §9, "Length table").
var lengthTable [256]int

func init() {
	for idx := 0; idx < 0xFE; idx++ {
		lengthTable[idx] = idx + 3
	}
	lengthTable[0xFE] = 0x400
	lengthTable[0xFF] = 0x1000
}
