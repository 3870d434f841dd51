// Command vnarc extracts and repacks the visual-novel engine's archive
// container, and decodes/encodes its bundled YB image format.
//
// Usage:
//
//	vnarc extract <archive> <out_dir>
//	vnarc pack <in_dir> <archive>
//	vnarc decode-image <in_dir> <out_dir>
//	vnarc encode-image <in_dir> <out_dir>
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/haruka-vn/vnarc"
	"github.com/haruka-vn/vnarc/ybimage"
)

const gameKeysPath = "gamekeys.json"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "extract":
		err = runExtract(os.Args[2:])
	case "pack":
		err = runPack(os.Args[2:])
	case "decode-image":
		err = runDecodeImage(os.Args[2:])
	case "encode-image":
		err = runEncodeImage(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "vnarc: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "vnarc: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  vnarc extract <archive> <out_dir>
  vnarc pack <in_dir> <archive>
  vnarc decode-image <in_dir> <out_dir>
  vnarc encode-image <in_dir> <out_dir>
`)
}

// --- extract ---

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	keyName := fs.String("key", "", "display name of the key to use, from gamekeys.json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("extract: usage: vnarc extract <archive> <out_dir>")
	}
	archivePath, outDir := fs.Arg(0), fs.Arg(1)

	var key []byte
	stem := strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
	if strings.HasSuffix(strings.ToLower(stem), "_data") && *keyName != "" {
		catalogue, err := vnarc.LoadKeyCatalogue(gameKeysPath)
		if err != nil {
			return fmt.Errorf("extract: %w", err)
		}
		resolved, ok, err := catalogue.KeyBytes(*keyName)
		if err != nil {
			return fmt.Errorf("extract: %w", err)
		}
		if !ok {
			return fmt.Errorf("extract: no key named %q in %s", *keyName, gameKeysPath)
		}
		key = resolved
	}

	manifest, err := vnarc.Extract(archivePath, outDir, key)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	if err := manifest.Save(outDir); err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Extracted %s (%s, %d members) -> %s\n", archivePath, manifest.Version, len(manifest.Files), outDir)
	return nil
}

// --- pack ---

func runPack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("pack: usage: vnarc pack <in_dir> <archive>")
	}
	inDir, archivePath := fs.Arg(0), fs.Arg(1)

	if err := vnarc.Pack(inDir, archivePath); err != nil {
		return fmt.Errorf("pack: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Packed %s -> %s\n", inDir, archivePath)
	return nil
}

// --- decode-image ---

const nativeImageExt = ".yb"

func runDecodeImage(args []string) error {
	fs := flag.NewFlagSet("decode-image", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("decode-image: usage: vnarc decode-image <in_dir> <out_dir>")
	}
	inDir, outDir := fs.Arg(0), fs.Arg(1)

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("decode-image: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("decode-image: %w", err)
	}

	converted := 0
	for _, ent := range entries {
		if ent.IsDir() || strings.ToLower(filepath.Ext(ent.Name())) != nativeImageExt {
			continue
		}
		if err := decodeOneImage(inDir, outDir, ent.Name()); err != nil {
			fmt.Fprintf(os.Stderr, "decode-image: %s: %v\n", ent.Name(), err)
			continue
		}
		converted++
	}
	fmt.Fprintf(os.Stderr, "Decoded %d image(s) from %s -> %s\n", converted, inDir, outDir)
	return nil
}

func decodeOneImage(inDir, outDir, name string) error {
	in, err := os.Open(filepath.Join(inDir, name))
	if err != nil {
		return err
	}
	defer in.Close()

	img, err := ybimage.Decode(in)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	out, err := os.Create(filepath.Join(outDir, base+".png"))
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// --- encode-image ---

func runEncodeImage(args []string) error {
	fs := flag.NewFlagSet("encode-image", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("encode-image: usage: vnarc encode-image <in_dir> <out_dir>")
	}
	inDir, outDir := fs.Arg(0), fs.Arg(1)

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("encode-image: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("encode-image: %w", err)
	}

	converted := 0
	for _, ent := range entries {
		if ent.IsDir() || strings.ToLower(filepath.Ext(ent.Name())) != ".png" {
			continue
		}
		if err := encodeOneImage(inDir, outDir, ent.Name()); err != nil {
			fmt.Fprintf(os.Stderr, "encode-image: %s: %v\n", ent.Name(), err)
			continue
		}
		converted++
	}
	fmt.Fprintf(os.Stderr, "Encoded %d image(s) from %s -> %s\n", converted, inDir, outDir)
	return nil
}

func encodeOneImage(inDir, outDir, name string) error {
	in, err := os.Open(filepath.Join(inDir, name))
	if err != nil {
		return err
	}
	defer in.Close()

	img, err := png.Decode(in)
	if err != nil {
		return err
	}

	// 32-bit inputs (any non-opaque pixel) get the delta flag 0x80; 24-bit
	// inputs get 0x00. This mirrors the bpp choice ybimage.Encode makes
	// internally from the same signal.
	hasAlpha := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !hasAlpha; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xFFFF {
				hasAlpha = true
				break
			}
		}
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	out, err := os.Create(filepath.Join(outDir, base+nativeImageExt))
	if err != nil {
		return err
	}
	if err := ybimage.Encode(out, img, ybimage.Options{Delta: hasAlpha}); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
