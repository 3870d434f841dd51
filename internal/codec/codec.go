package codec

// Image is a decoded YB image: raw pixels in RGB(A) order (after the
// mandatory blue/red channel swap), plus whether its alpha channel was
// detected as a dummy (uniform, non-0xFF) channel.
type Image struct {
	Width         int
	Height        int
	BytesPerPixel int
	Pix           []byte
	DummyAlpha    bool
}

// Decode parses a full YB image file (header + compressed body) and
// returns its decoded pixel buffer.
func Decode(data []byte) (*Image, error) {
	hdr, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	body := data[HeaderSize:]
	if uint32(len(body)) < hdr.PackedSize {
		return nil, ErrTruncated
	}
	payload := body[:hdr.PackedSize]

	outLen := hdr.PixelLen()
	raw, err := decompress(payload, outLen)
	if err != nil {
		return nil, err
	}

	if hdr.HasDelta() {
		applyDeltaForward(raw, hdr.BytesPerPixel)
	}

	dummyAlpha := hdr.BytesPerPixel == 4 && detectDummyAlpha(raw)
	swapChannels(raw, hdr.BytesPerPixel)

	return &Image{
		Width:         hdr.Width,
		Height:        hdr.Height,
		BytesPerPixel: hdr.BytesPerPixel,
		Pix:           raw,
		DummyAlpha:    dummyAlpha,
	}, nil
}

// Encode compresses an RGB(A) pixel buffer (width*height*bpp bytes) back
// into a full YB image file. flag's 0x80 bit selects the delta predictor.
func Encode(pix []byte, width, height, bpp int, flag byte) ([]byte, error) {
	if bpp != 3 && bpp != 4 {
		return nil, ErrBadBPP
	}
	if len(pix) != width*height*bpp {
		return nil, ErrTruncated
	}

	input := make([]byte, len(pix))
	copy(input, pix)
	swapChannels(input, bpp)

	if flag&flagDelta != 0 {
		applyDeltaInverse(input, bpp)
	}

	body := compress(input)

	hdr := Header{Flag: flag, BytesPerPixel: bpp, Width: width, Height: height}
	out := WriteHeader(hdr, uint32(len(body)))
	out = append(out, body...)
	return out, nil
}

// detectDummyAlpha reports whether pix's alpha channel (every 4th byte,
// starting at index 3) is a uniform value other than 0xFF — treated as
// absent on export.
func detectDummyAlpha(pix []byte) bool {
	if len(pix) < 4 {
		return false
	}
	a := pix[3]
	if a == 0xFF {
		return false
	}
	for i := 7; i < len(pix); i += 4 {
		if pix[i] != a {
			return false
		}
	}
	return true
}

// swapChannels swaps byte 0 and byte 2 of every pixel (B<->R). It is its
// own inverse, so the same function converts BGR(A) to RGB(A) and back.
func swapChannels(pix []byte, bpp int) {
	for i := 0; i+bpp <= len(pix); i += bpp {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}
