package container

import "github.com/haruka-vn/vnarc/internal/byteio"

// preamblePadding is the 4 bytes of zero padding that separate the index
// from the first member payload in v1/v2 archives. V3 carries no padding.
const preamblePadding = 4

// Detect runs the three trial parsers in order — v3, then v1, then v2 —
// and returns the first one whose index parses and fully validates. It
// never accepts a version on a partial match: every entry of a candidate
// index must validate before that candidate is returned.
func Detect(data []byte) (Version, []Entry, error) {
	if len(data) < 4 {
		return 0, nil, ErrTruncated
	}
	count := byteio.ReadU32(data[0:4])
	if !saneCount(count) {
		return 0, nil, ErrBadCount
	}

	if entries, ok := tryV3(data, count); ok {
		return V3, entries, nil
	}
	if entries, ok := tryFixed(data, count, V1); ok {
		return V1, entries, nil
	}
	if entries, ok := tryFixed(data, count, V2); ok {
		return V2, entries, nil
	}
	return 0, nil, ErrMalformed
}

// tryV3 tentatively reads a 32-bit word at offset 4 as filename_length. If
// it is in [1, 0xFF], it attempts to parse and validate an index of that
// width starting at offset 8.
func tryV3(data []byte, count uint32) ([]Entry, bool) {
	if len(data) < 8 {
		return nil, false
	}
	fnlen := byteio.ReadU32(data[4:8])
	if fnlen < 1 || fnlen > 0xFF {
		return nil, false
	}

	headerSize := V3.HeaderSize()
	recordSize := int(fnlen) + 8
	indexSize := headerSize + recordSize*int(count)
	if indexSize < 0 || indexSize > len(data) {
		return nil, false
	}

	raw, err := parseEntries(data[headerSize:], int(count), int(fnlen))
	if err != nil {
		return nil, false
	}
	if !validate(raw, uint32(indexSize), uint32(len(data))) {
		return nil, false
	}
	return toEntries(raw), true
}

// tryFixed attempts an index parse using v's fixed filename_length,
// starting immediately after the 4-byte file_count header. v1/v2 archives
// reserve 4 zero bytes between the end of the index and the first payload,
// so those bytes count toward the index size the first entry's offset must
// clear, even though they hold no record of their own.
func tryFixed(data []byte, count uint32, v Version) ([]Entry, bool) {
	fnlen := v.FixedFilenameLength()
	headerSize := v.HeaderSize()
	recordSize := fnlen + 8
	indexSize := headerSize + recordSize*int(count) + preamblePadding
	if indexSize < 0 || headerSize+recordSize*int(count) > len(data) {
		return nil, false
	}

	raw, err := parseEntries(data[headerSize:], int(count), fnlen)
	if err != nil {
		return nil, false
	}
	if !validate(raw, uint32(indexSize), uint32(len(data))) {
		return nil, false
	}
	return toEntries(raw), true
}

func toEntries(raw []rawEntry) []Entry {
	out := make([]Entry, len(raw))
	for i, r := range raw {
		out[i] = Entry{Name: r.finalName(), Offset: r.offset, Size: r.size}
	}
	return out
}
