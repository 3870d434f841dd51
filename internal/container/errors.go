package container

import "errors"

// Errors returned by Detect and the index parsers.
var (
	ErrMalformed     = errors.New("container: malformed archive")
	ErrTruncated     = errors.New("container: truncated archive")
	ErrBadCount      = errors.New("container: file count out of range")
	ErrInvalidOffset = errors.New("container: entry offset out of range")
)

// minFileCount and maxFileCount bound the "sane count" predicate applied to
// the file_count header field before any index parse is attempted.
const (
	minFileCount = 1
	maxFileCount = 0xFFFFFF
)

func saneCount(n uint32) bool {
	return n >= minFileCount && n <= maxFileCount
}
