package ybimage

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 20), B: 5, A: 0xFF})
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, src, Options{Delta: true}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	bounds := got.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 2 {
		t.Fatalf("dims = %v, want 4x2", bounds)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			wantR, wantG, wantB, _ := src.At(x, y).RGBA()
			gotR, gotG, gotB, _ := got.At(x, y).RGBA()
			if wantR != gotR || wantG != gotG || wantB != gotB {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got.At(x, y), src.At(x, y))
			}
		}
	}
}

func TestDecodeConfig(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	var buf bytes.Buffer
	if err := Encode(&buf, src, Options{}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	cfg, err := DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 3 {
		t.Fatalf("config = %+v, want 3x3", cfg)
	}
}
