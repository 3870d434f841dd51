package vnarc

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"

	"github.com/haruka-vn/vnarc/internal/archwriter"
	"github.com/haruka-vn/vnarc/internal/container"
)

func withMemFS(t *testing.T) {
	t.Helper()
	prev := FS
	FS = afero.NewMemMapFs()
	t.Cleanup(func() { FS = prev })
}

func TestExtractThenPackRoundTrip(t *testing.T) {
	withMemFS(t)

	members := []archwriter.Member{
		{Name: "a.txt", Data: bytes.Repeat([]byte{0x41}, 10)},
		{Name: "b.bin", Data: bytes.Repeat([]byte{0x42}, 20)},
	}
	archiveBytes, err := archwriter.Write(members, archwriter.Options{
		Version:     container.V1,
		ArchiveStem: "foo",
	})
	if err != nil {
		t.Fatalf("archwriter.Write: %v", err)
	}
	if err := afero.WriteFile(FS, "/in/foo.mbl", archiveBytes, 0o644); err != nil {
		t.Fatalf("seeding archive: %v", err)
	}

	manifest, err := Extract("/in/foo.mbl", "/out", nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if manifest.Version != V1 {
		t.Fatalf("version = %v, want v1", manifest.Version)
	}
	if manifest.Key != "" {
		t.Fatalf("key = %q, want empty", manifest.Key)
	}
	if len(manifest.Files) != 2 {
		t.Fatalf("files = %v, want 2 entries", manifest.Files)
	}

	if err := manifest.Save("/out"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := afero.ReadFile(FS, "/out/a.txt")
	if err != nil || !bytes.Equal(got, members[0].Data) {
		t.Fatalf("extracted a.txt mismatch: %v, %v", got, err)
	}

	if err := Pack("/out", "/repacked.mbl"); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	repacked, err := afero.ReadFile(FS, "/repacked.mbl")
	if err != nil {
		t.Fatalf("reading repacked archive: %v", err)
	}
	version, entries, err := container.Detect(repacked)
	if err != nil {
		t.Fatalf("Detect(repacked): %v", err)
	}
	if version != V1 {
		t.Fatalf("repacked version = %v, want v1", version)
	}
	if len(entries) != 2 {
		t.Fatalf("repacked entries = %d, want 2", len(entries))
	}
}

// TestExtractScriptEncryption mirrors the concrete scenario: a "_data"
// archive whose script member is stored XOR-encrypted with the manifest
// key; extracting with that key reproduces the plaintext, and extracting
// with an empty key yields the encrypted form verbatim.
func TestExtractScriptEncryption(t *testing.T) {
	withMemFS(t)

	key := []byte{0x01, 0x02}
	plain := []byte("hello")
	encrypted := make([]byte, len(plain))
	for i, b := range plain {
		encrypted[i] = b ^ key[i%len(key)]
	}

	members := []archwriter.Member{{Name: "script.s", Data: plain}}
	archiveBytes, err := archwriter.Write(members, archwriter.Options{
		Version:     container.V1,
		Key:         key,
		ArchiveStem: "foo_data",
	})
	if err != nil {
		t.Fatalf("archwriter.Write: %v", err)
	}
	if err := afero.WriteFile(FS, "/in/foo_data.mbl", archiveBytes, 0o644); err != nil {
		t.Fatalf("seeding archive: %v", err)
	}

	manifest, err := Extract("/in/foo_data.mbl", "/outkey", key)
	if err != nil {
		t.Fatalf("Extract with key: %v", err)
	}
	_ = manifest
	got, err := afero.ReadFile(FS, "/outkey/script.s")
	if err != nil || !bytes.Equal(got, plain) {
		t.Fatalf("decrypted script mismatch: %v, %v", got, err)
	}

	if _, err := Extract("/in/foo_data.mbl", "/outnokey", nil); err != nil {
		t.Fatalf("Extract without key: %v", err)
	}
	gotRaw, err := afero.ReadFile(FS, "/outnokey/script.s")
	if err != nil || !bytes.Equal(gotRaw, encrypted) {
		t.Fatalf("empty-key extraction mismatch: %v, %v", gotRaw, err)
	}
}
