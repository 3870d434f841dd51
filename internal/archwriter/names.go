// Package archwriter assembles an archive file from an ordered set of
// members, laying out the index and payloads per one of the three archive
// versions and encrypting script members along the way.
package archwriter

import "strings"

// ModifyName applies the on-disk name transformation: given "name.ext" it
// returns the uppercase stored form with the base and extension separated
// by a single null byte, matching the convention the reader's filename
// post-processing expects to find.
func ModifyName(name string) string {
	base, ext := splitExt(name)
	if strings.EqualFold(ext, "s") {
		return strings.ToUpper(base + "\x00S")
	}
	if ext != "" {
		return strings.ToUpper(base + "\x00" + ext)
	}
	return strings.ToUpper(base)
}

// splitExt splits "name.ext" on the final dot. A name with no dot returns
// an empty extension.
func splitExt(name string) (base, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

// IsScript reports whether a member is a script: either the archive stem
// ends in "_data" (case-insensitive) or the member's own extension is "s"
// (case-insensitive).
func IsScript(archiveStem, memberName string) bool {
	if strings.HasSuffix(strings.ToLower(archiveStem), "_data") {
		return true
	}
	_, ext := splitExt(memberName)
	return strings.EqualFold(ext, "s")
}
