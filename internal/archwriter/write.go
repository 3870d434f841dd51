package archwriter

import (
	"errors"
	"fmt"

	"github.com/haruka-vn/vnarc/internal/byteio"
	"github.com/haruka-vn/vnarc/internal/container"
	"github.com/haruka-vn/vnarc/internal/xorcipher"
)

// Member is one file to be packed into the archive, in manifest order.
type Member struct {
	Name string // original on-disk name, e.g. "script.s"
	Data []byte
}

// Options controls how the archive is assembled.
type Options struct {
	Version     container.Version
	Key         []byte // hex-decoded manifest key; nil/empty disables encryption
	ArchiveStem string // archive file name without extension, for script detection
}

// Errors returned by Write.
var (
	ErrNameTooLong = errors.New("archwriter: modified name does not fit filename_length")
	ErrNoMembers   = errors.New("archwriter: no members to write")
)

// Write lays out the index and payloads for members under opts.Version and
// returns the complete archive bytes. It fails loudly — returns an error
// rather than a partially-consistent archive — the moment a computed
// offset disagrees with the actual write position.
func Write(members []Member, opts Options) ([]byte, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}

	modified := make([]string, len(members))
	for i, m := range members {
		modified[i] = ModifyName(m.Name)
	}

	filenameLength, err := resolveFilenameLength(opts.Version, modified)
	if err != nil {
		return nil, err
	}

	headerSize := opts.Version.HeaderSize()
	recordSize := filenameLength + 8
	padding := 0
	if opts.Version != container.V3 {
		padding = 4
	}
	preamble := headerSize + recordSize*len(members) + padding

	offsets := make([]uint32, len(members))
	offset := uint32(preamble)
	for i, m := range members {
		offsets[i] = offset
		offset += uint32(len(m.Data))
	}

	out := make([]byte, preamble, offset)
	byteio.WriteU32(out[0:4], uint32(len(members)))
	if opts.Version == container.V3 {
		byteio.WriteU32(out[4:8], uint32(filenameLength))
	}

	for i, name := range modified {
		rec := out[headerSize+i*recordSize : headerSize+(i+1)*recordSize]
		if err := writeNameField(rec[:filenameLength], name); err != nil {
			return nil, err
		}
		byteio.WriteU32(rec[filenameLength:filenameLength+4], offsets[i])
		byteio.WriteU32(rec[filenameLength+4:filenameLength+8], uint32(len(members[i].Data)))
	}

	for i, m := range members {
		if offsets[i] != uint32(len(out)) {
			return nil, fmt.Errorf("archwriter: offset mismatch for %q: computed %d, write position %d", m.Name, offsets[i], len(out))
		}
		payload := m.Data
		if IsScript(opts.ArchiveStem, m.Name) {
			payload = xorcipher.Apply(payload, opts.Key)
		}
		out = append(out, payload...)
	}

	return out, nil
}

// resolveFilenameLength computes the index's filename_length field: the
// fixed v1/v2 width (after checking every modified name fits with room for
// a trailing null), or the v3 maximum encoded name length.
func resolveFilenameLength(v container.Version, modified []string) (int, error) {
	if v == container.V3 {
		max := 1
		for _, name := range modified {
			enc, err := byteio.EncodeSJIS(name)
			if err != nil {
				return 0, err
			}
			if len(enc) > max {
				max = len(enc)
			}
		}
		return max, nil
	}

	fnlen := v.FixedFilenameLength()
	for _, name := range modified {
		enc, err := byteio.EncodeSJIS(name)
		if err != nil {
			return 0, err
		}
		if len(enc) >= fnlen {
			return 0, fmt.Errorf("%w: %q needs %d bytes, field holds %d", ErrNameTooLong, name, len(enc), fnlen-1)
		}
	}
	return fnlen, nil
}

func writeNameField(field []byte, name string) error {
	for i := range field {
		field[i] = 0
	}
	enc, err := byteio.EncodeSJIS(name)
	if err != nil {
		return err
	}
	if len(enc) > len(field) {
		return fmt.Errorf("%w: %q", ErrNameTooLong, name)
	}
	copy(field, enc)
	return nil
}
