package byteio

import (
	"bytes"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// ReadFixedSJIS decodes a fixed-length, null-padded Shift-JIS (CP932) field
// and returns the text up to (but not including) the first null byte.
// Falling back to UTF-8 here would misdecode any field containing
// full-width characters, so the CP932 codec is used unconditionally.
func ReadFixedSJIS(field []byte) (string, error) {
	raw := field
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	if len(raw) == 0 {
		return "", nil
	}
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ReadFixedSJISField decodes a fixed-length Shift-JIS field but, unlike
// ReadFixedSJIS, returns the raw bytes after the first null byte as well
// (the "remainder"), so that callers needing the archive extension-encoding
// convention (base name, NUL, extension) can inspect both halves.
func ReadFixedSJISField(field []byte) (base string, remainder []byte, err error) {
	i := bytes.IndexByte(field, 0)
	if i < 0 {
		s, err := ReadFixedSJIS(field)
		return s, nil, err
	}
	s, err := ReadFixedSJIS(field[:i])
	if err != nil {
		return "", nil, err
	}
	rest := field[i+1:]
	if j := bytes.IndexByte(rest, 0); j >= 0 {
		rest = rest[:j]
	}
	return s, rest, nil
}

// EncodeSJIS returns text encoded as raw Shift-JIS bytes, with no padding
// or truncation. Used by callers that manage field width themselves.
func EncodeSJIS(text string) ([]byte, error) {
	if text == "" {
		return nil, nil
	}
	enc, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(text))
	if err != nil {
		return nil, err
	}
	return enc, nil
}

