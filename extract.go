package vnarc

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/haruka-vn/vnarc/internal/archwriter"
	"github.com/haruka-vn/vnarc/internal/container"
	"github.com/haruka-vn/vnarc/internal/xorcipher"
)

// FS is the filesystem Extract and Pack operate on. Swap in
// afero.NewMemMapFs() in tests to avoid touching disk.
var FS afero.Fs = afero.NewOsFs()

// Extract reads the archive at archivePath, auto-detects its layout
// version, writes every member under outDir (creating parent directories
// as needed), and returns the manifest that reproduces the archive's
// member order and version on a subsequent Pack. key decrypts script
// members; pass nil for an empty key.
func Extract(archivePath, outDir string, key []byte) (*Manifest, error) {
	data, err := afero.ReadFile(FS, archivePath)
	if err != nil {
		return nil, fmt.Errorf("vnarc: reading archive: %w", err)
	}

	version, entries, err := container.Detect(data)
	if err != nil {
		return nil, fmt.Errorf("vnarc: detecting archive format: %w", err)
	}

	stem := archiveStem(archivePath)
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Offset > uint32(len(data)) || e.Size > uint32(len(data))-e.Offset {
			return nil, fmt.Errorf("vnarc: entry %q: %w", e.Name, container.ErrInvalidOffset)
		}
		payload := data[e.Offset : e.Offset+e.Size]
		if archwriter.IsScript(stem, e.Name) && len(key) > 0 {
			payload = xorcipher.Apply(payload, key)
		}

		dst := filepath.Join(outDir, filepath.FromSlash(e.Name))
		if err := writeMember(dst, payload); err != nil {
			return nil, fmt.Errorf("vnarc: writing %q: %w", e.Name, err)
		}
		files = append(files, e.Name)
	}

	manifest := &Manifest{Version: version, Key: hexUpper(key), Files: files}
	return manifest, nil
}

// writeMember creates dst's parent directories and writes data to it.
func writeMember(dst string, data []byte) error {
	if err := FS.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(FS, dst, data, 0o644)
}

// archiveStem returns the archive's file name without directory or
// extension, used by the script-detection predicate.
func archiveStem(archivePath string) string {
	base := filepath.Base(archivePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
