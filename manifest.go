// Package vnarc implements extraction and repacking of the visual-novel
// engine's archive container, and encode/decode of its bundled YB image
// format (see the ybimage subpackage for the latter's public API).
package vnarc

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"

	"github.com/haruka-vn/vnarc/internal/container"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Version re-exports the archive layout tag so callers never need to
// import the internal container package directly.
type Version = container.Version

const (
	V1 = container.V1
	V2 = container.V2
	V3 = container.V3
)

// Manifest is the external persisted record (index.json) that accompanies
// a directory of extracted archive members.
type Manifest struct {
	Version Version  `json:"Version"`
	Key     string   `json:"Key"`
	Files   []string `json:"Files"`
}

// KeyBytes hex-decodes Key. An empty Key decodes to a nil slice, which
// xorcipher.Apply treats as "no encryption".
func (m Manifest) KeyBytes() ([]byte, error) {
	if m.Key == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(m.Key)
	if err != nil {
		return nil, fmt.Errorf("vnarc: manifest key is not valid hex: %w", err)
	}
	return b, nil
}

// hexUpper renders key as uppercase hex, or "" for an empty/nil key — the
// manifest's Key field never serializes as a JSON null.
func hexUpper(key []byte) string {
	if len(key) == 0 {
		return ""
	}
	return strings.ToUpper(hex.EncodeToString(key))
}

// manifestFileName is the fixed name of the manifest alongside extracted
// members, per the archive reader's "manifest emission" step.
const manifestFileName = "index.json"

// LoadManifest reads and parses dir/index.json.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := afero.ReadFile(FS, filepath.Join(dir, manifestFileName))
	if err != nil {
		return nil, fmt.Errorf("vnarc: reading manifest: %w", err)
	}
	var m Manifest
	if err := jsonAPI.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("vnarc: parsing manifest: %w", err)
	}
	return &m, nil
}

// Save writes m to dir/index.json. The key always serializes as a string —
// "" for no key, never a JSON null — so that a round trip through
// LoadManifest never has to distinguish absence from the empty case.
func (m Manifest) Save(dir string) error {
	data, err := jsonAPI.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("vnarc: encoding manifest: %w", err)
	}
	path := filepath.Join(dir, manifestFileName)
	if err := afero.WriteFile(FS, path, data, 0o644); err != nil {
		return fmt.Errorf("vnarc: writing manifest: %w", err)
	}
	return nil
}
