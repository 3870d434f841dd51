package codec

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		bpp           int
		flag          byte
		pix           []byte
	}{
		{
			name: "rgb no delta", width: 3, height: 1, bpp: 3, flag: 0x00,
			pix: []byte{10, 20, 30, 40, 50, 60, 70, 80, 90},
		},
		{
			name: "rgba dummy alpha", width: 2, height: 1, bpp: 4, flag: flagDelta,
			pix: []byte{10, 20, 30, 0x80, 40, 50, 60, 0x80},
		},
		{
			name: "repeated run triggers matches", width: 8, height: 1, bpp: 3, flag: 0x00,
			pix: bytes.Repeat([]byte{1, 2, 3}, 8),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := Encode(tc.pix, tc.width, tc.height, tc.bpp, tc.flag)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}

			img, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !bytes.Equal(img.Pix, tc.pix) {
				t.Fatalf("round trip mismatch: got %v, want %v", img.Pix, tc.pix)
			}
			if img.Width != tc.width || img.Height != tc.height {
				t.Fatalf("dims = %dx%d, want %dx%d", img.Width, img.Height, tc.width, tc.height)
			}
		})
	}
}

// TestDummyAlphaElision mirrors the concrete scenario: a 2x1 RGBA image
// whose alpha channel is uniformly 0x80 (never 0xFF) is reported as having
// a dummy alpha channel.
func TestDummyAlphaElision(t *testing.T) {
	pix := []byte{10, 20, 30, 0x80, 40, 50, 60, 0x80}
	encoded, err := Encode(pix, 2, 1, 4, flagDelta)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !img.DummyAlpha {
		t.Fatal("expected DummyAlpha = true")
	}
}

// TestDeltaPredictorRoundTrip mirrors the concrete scenario: a 3x1 RGB
// image with the delta flag set round-trips through encode/decode.
func TestDeltaPredictorRoundTrip(t *testing.T) {
	pix := []byte{0, 0, 0, 10, 20, 30, 40, 50, 60}
	encoded, err := Encode(pix, 3, 1, 3, flagDelta)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(img.Pix, pix) {
		t.Fatalf("got %v, want %v", img.Pix, pix)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data := make([]byte, HeaderSize)
	copy(data, []byte{'X', 'X', 0, 3})
	if _, err := Decode(data); err != ErrBadMagic {
		t.Fatalf("err = %v, want ErrBadMagic", err)
	}
}

func TestDecodeBadBPP(t *testing.T) {
	data := make([]byte, HeaderSize)
	copy(data, []byte{'Y', 'B', 0, 5})
	if _, err := Decode(data); err != ErrBadBPP {
		t.Fatalf("err = %v, want ErrBadBPP", err)
	}
}

// TestLongLiteralRun constructs a control stream with tag 3 (long literal
// run) directly: one control bit (1) selects a back-reference opcode
// whose top two bits are clear and whose low two bits equal 3, which
// copies length+9 raw bytes with no delta applied.
func TestLongLiteralRun(t *testing.T) {
	// Control byte: a single "1" bit (MSB), rest zero (never consumed
	// since the loop stops once dst == outputLen).
	ctrl := byte(0x80)
	opcode := byte(0x03) // op&0x80==0, tag = op&3 == 3, ln = op>>2 == 0 -> length 9
	literal := bytes.Repeat([]byte{0xAB}, 9)
	payload := append([]byte{ctrl, opcode}, literal...)

	out, err := decompress(payload, 9)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(out, literal) {
		t.Fatalf("got %v, want %v", out, literal)
	}
}

// TestInvalidOffset constructs a back-reference whose shift exceeds the
// current destination position and confirms the boundary check fires.
func TestInvalidOffset(t *testing.T) {
	// Control byte 0x40: bit7=0 (literal), bit6=1 (back-reference).
	ctrl := byte(0x40)
	// Short form: op&0x80==0, ln=op>>2, tag=op&3. tag=1 -> length 3,
	// shift=ln=1, so decoded shift+1=2 while dst will only be 1 at that
	// point (one literal byte was consumed first).
	opcode := byte(1<<2 | 1)
	payload := []byte{ctrl, 0x41, opcode}

	_, err := decompress(payload, 8)
	if err != ErrInvalidOffset {
		t.Fatalf("err = %v, want ErrInvalidOffset", err)
	}
}
