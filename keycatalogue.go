package vnarc

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/haruka-vn/vnarc/internal/byteio"
)

// KeyCatalogue is the flat map from a game's display name to its XOR key,
// persisted at gamekeys.json. Users are expected to hand-edit this file;
// key literals may contain Japanese text and are Shift-JIS encoded into
// key bytes (see KeyBytes).
type KeyCatalogue map[string]string

// LoadKeyCatalogue reads path, seeding it with an empty catalogue (and
// writing that seed back to disk) if the file does not yet exist. No
// known-key catalogue ships with this package; the seed is deliberately
// empty and left for the user to populate.
func LoadKeyCatalogue(path string) (KeyCatalogue, error) {
	data, err := afero.ReadFile(FS, path)
	if errors.Is(err, os.ErrNotExist) {
		cat := KeyCatalogue{}
		if err := cat.Save(path); err != nil {
			return nil, err
		}
		return cat, nil
	}
	if err != nil {
		return nil, fmt.Errorf("vnarc: reading key catalogue: %w", err)
	}

	var cat KeyCatalogue
	if err := jsonAPI.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("vnarc: parsing key catalogue: %w", err)
	}
	return cat, nil
}

// Save writes c to path as indented JSON.
func (c KeyCatalogue) Save(path string) error {
	data, err := jsonAPI.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("vnarc: encoding key catalogue: %w", err)
	}
	if err := afero.WriteFile(FS, path, data, 0o644); err != nil {
		return fmt.Errorf("vnarc: writing key catalogue: %w", err)
	}
	return nil
}

// KeyBytes resolves a display name to its raw XOR key bytes, Shift-JIS
// encoding the literal so that a catalogue entry containing full-width
// characters produces the same byte sequence the original engine used.
func (c KeyCatalogue) KeyBytes(displayName string) ([]byte, bool, error) {
	literal, ok := c[displayName]
	if !ok {
		return nil, false, nil
	}
	b, err := byteio.EncodeSJIS(literal)
	if err != nil {
		return nil, true, fmt.Errorf("vnarc: encoding key literal for %q: %w", displayName, err)
	}
	return b, true, nil
}
