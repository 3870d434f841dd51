package container

import "github.com/haruka-vn/vnarc/internal/byteio"

// Entry is one parsed archive index record: the reconstructed member name
// (lowercased, extension restored) plus the byte range of its payload.
type Entry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// rawEntry is an index record before filename post-processing, used during
// trial parsing and validation.
type rawEntry struct {
	base   string
	ext    string
	offset uint32
	size   uint32
}

func (r rawEntry) empty() bool {
	return r.base == "" && r.ext == ""
}

// finalName reconstructs the display name per § filename post-processing:
// base + "." + ext when an extension is present, lowercased.
func (r rawEntry) finalName() string {
	name := r.base
	if r.ext != "" {
		name = name + "." + r.ext
	}
	return toLower(name)
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// parseEntries reads count fixed-size records of width filenameLength+8
// starting at buf[0], decoding each name field as Shift-JIS.
func parseEntries(buf []byte, count, filenameLength int) ([]rawEntry, error) {
	recordSize := filenameLength + 8
	if len(buf) < recordSize*count {
		return nil, ErrTruncated
	}
	entries := make([]rawEntry, count)
	for i := 0; i < count; i++ {
		rec := buf[i*recordSize : (i+1)*recordSize]
		nameField := rec[:filenameLength]
		base, rest, err := byteio.ReadFixedSJISField(nameField)
		if err != nil {
			return nil, err
		}
		ext, err := byteio.ReadFixedSJIS(rest)
		if err != nil {
			return nil, err
		}
		entries[i] = rawEntry{
			base:   base,
			ext:    ext,
			offset: byteio.ReadU32(rec[filenameLength : filenameLength+4]),
			size:   byteio.ReadU32(rec[filenameLength+4 : filenameLength+8]),
		}
	}
	return entries, nil
}

// validate checks every entry against the index-size and archive-size
// bounds shared by all three layouts. It never short-circuits: every entry
// is checked so a version is only accepted once all of it validates.
func validate(entries []rawEntry, indexSize, archiveSize uint32) bool {
	ok := true
	for _, e := range entries {
		if e.empty() {
			ok = false
		}
		if e.offset < indexSize {
			ok = false
		}
		if e.offset > archiveSize || e.size > archiveSize-e.offset {
			ok = false
		}
	}
	return ok
}
