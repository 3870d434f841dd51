// Package ybimage implements the YB image codec: a byte-aligned,
// bit-flagged LZ-style compressor with a delta predictor and a "dummy
// alpha" heuristic, used by the visual-novel engine's archive format for
// its bitmap assets.
//
// This package registers itself with the standard library's image
// package so that image.Decode can transparently read YB files; the
// matching encoder produces native YB bytes from any image.Image.
package ybimage

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/haruka-vn/vnarc/internal/codec"
)

func init() {
	image.RegisterFormat("yb", "YB", Decode, DecodeConfig)
}

// Errors returned by this package.
var (
	ErrUnsupportedPixelFormat = errors.New("ybimage: unsupported pixel format")
)

func readAll(r io.Reader) ([]byte, error) {
	if lr, ok := r.(interface{ Len() int }); ok {
		if n := lr.Len(); n > 0 {
			data := make([]byte, n)
			_, err := io.ReadFull(r, data)
			return data, err
		}
	}
	return io.ReadAll(r)
}

// Decode reads a YB image from r and returns it as an *image.NRGBA. Images
// whose alpha channel was detected as a dummy channel (§ dummy-alpha
// heuristic) decode with alpha forced fully opaque.
func Decode(r io.Reader) (image.Image, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("ybimage: reading data: %w", err)
	}
	img, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("ybimage: decoding: %w", err)
	}
	return toNRGBA(img), nil
}

// DecodeConfig returns the color model and dimensions of a YB image
// without decompressing the pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	data, err := readAll(r)
	if err != nil {
		return image.Config{}, fmt.Errorf("ybimage: reading data: %w", err)
	}
	hdr, err := codec.ParseHeader(data)
	if err != nil {
		return image.Config{}, fmt.Errorf("ybimage: parsing header: %w", err)
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      hdr.Width,
		Height:     hdr.Height,
	}, nil
}

func toNRGBA(img *codec.Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	if img.BytesPerPixel == 4 && !img.DummyAlpha {
		for i := 0; i < img.Width*img.Height; i++ {
			copy(out.Pix[i*4:i*4+4], img.Pix[i*4:i*4+4])
		}
		return out
	}
	// 3-channel source, or a 4-channel source whose alpha was detected as
	// a dummy channel and is therefore dropped on export.
	bpp := img.BytesPerPixel
	for i := 0; i < img.Width*img.Height; i++ {
		src := img.Pix[i*bpp : i*bpp+3]
		dst := out.Pix[i*4 : i*4+4]
		dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 0xFF
	}
	return out
}

// Options controls Encode's behavior.
type Options struct {
	// Delta selects the horizontal delta predictor (header flag bit 0x80).
	Delta bool
}

// Encode compresses img into the native YB format and writes it to w.
// Images with a fully-opaque alpha channel (or no alpha channel at all)
// are encoded as 24-bit RGB; images with any translucent/transparent
// pixel are encoded as 32-bit RGBA, matching the CLI's "32-bit inputs get
// flag 0x80, 24-bit inputs get flag 0x00" selection rule (spec §6) for
// the delta flag, independent of the bpp choice made here.
func Encode(w io.Writer, img image.Image, opts Options) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 || width > 0xFFFF || height > 0xFFFF {
		return fmt.Errorf("%w: dimensions %dx%d", ErrUnsupportedPixelFormat, width, height)
	}

	hasAlpha := false
	rgba := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*width + x) * 4
			rgba[i+0] = byte(r >> 8)
			rgba[i+1] = byte(g >> 8)
			rgba[i+2] = byte(b >> 8)
			rgba[i+3] = byte(a >> 8)
			if rgba[i+3] != 0xFF {
				hasAlpha = true
			}
		}
	}

	bpp := 3
	pix := make([]byte, width*height*3)
	if hasAlpha {
		bpp = 4
		pix = rgba
	} else {
		for i := 0; i < width*height; i++ {
			copy(pix[i*3:i*3+3], rgba[i*4:i*4+3])
		}
	}

	var flag byte
	if opts.Delta {
		flag = 0x80
	}

	out, err := codec.Encode(pix, width, height, bpp, flag)
	if err != nil {
		return fmt.Errorf("ybimage: encoding: %w", err)
	}
	_, err = w.Write(out)
	return err
}
