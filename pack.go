package vnarc

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/haruka-vn/vnarc/internal/archwriter"
)

// Pack reads inDir/index.json and every member it lists, assembles an
// archive per the manifest's version and key, and writes it to
// archivePath. Pack never walks inDir itself — only the files the
// manifest names are read.
func Pack(inDir, archivePath string) error {
	manifest, err := LoadManifest(inDir)
	if err != nil {
		return err
	}

	key, err := manifest.KeyBytes()
	if err != nil {
		return err
	}

	members := make([]archwriter.Member, 0, len(manifest.Files))
	for _, name := range manifest.Files {
		data, err := afero.ReadFile(FS, filepath.Join(inDir, filepath.FromSlash(name)))
		if err != nil {
			return fmt.Errorf("vnarc: reading member %q: %w", name, err)
		}
		members = append(members, archwriter.Member{Name: name, Data: data})
	}

	out, err := archwriter.Write(members, archwriter.Options{
		Version:     manifest.Version,
		Key:         key,
		ArchiveStem: archiveStem(archivePath),
	})
	if err != nil {
		return fmt.Errorf("vnarc: assembling archive: %w", err)
	}

	if err := afero.WriteFile(FS, archivePath, out, 0o644); err != nil {
		return fmt.Errorf("vnarc: writing archive: %w", err)
	}
	return nil
}
