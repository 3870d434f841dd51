// Package container implements the archive index engine: detection of the
// three on-disk layouts (v1, v2, v3) used by the archive format, and the
// parsed index entries each one yields.
package container

import (
	"fmt"
)

// Version identifies one of the three archive index layouts. They differ
// only in the width of the filename field and in whether that width is
// carried in the header.
type Version int

const (
	V1 Version = iota + 1
	V2
	V3
)

func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	case V3:
		return "v3"
	default:
		return "unknown"
	}
}

// MarshalJSON renders a Version as its manifest tag ("v1", "v2", "v3").
func (v Version) MarshalJSON() ([]byte, error) {
	s := v.String()
	if s == "unknown" {
		return nil, fmt.Errorf("container: cannot marshal %s", s)
	}
	return []byte(`"` + s + `"`), nil
}

// UnmarshalJSON parses a manifest version tag back into a Version.
func (v *Version) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"v1"`:
		*v = V1
	case `"v2"`:
		*v = V2
	case `"v3"`:
		*v = V3
	default:
		return fmt.Errorf("container: invalid version tag %s", data)
	}
	return nil
}

// FixedFilenameLength returns the name-field width for v1/v2. V3 carries
// its own width in the header and has no fixed value, so it returns 0.
func (v Version) FixedFilenameLength() int {
	switch v {
	case V1:
		return 0x10
	case V2:
		return 0x38
	default:
		return 0
	}
}

// HeaderSize returns the size of the fixed prefix before the first index
// record: 4 bytes (file_count only) for v1/v2, 8 bytes (file_count plus
// filename_length) for v3.
func (v Version) HeaderSize() int {
	if v == V3 {
		return 8
	}
	return 4
}
