package xorcipher

import "testing"

func TestApplyRoundTrip(t *testing.T) {
	data := []byte("hello")
	key := []byte{0x01, 0x02}

	enc := Apply(data, key)
	want := []byte{'h' ^ 1, 'e' ^ 2, 'l' ^ 1, 'l' ^ 2, 'o' ^ 1}
	if string(enc) != string(want) {
		t.Fatalf("Apply() = %v, want %v", enc, want)
	}

	dec := Apply(enc, key)
	if string(dec) != string(data) {
		t.Fatalf("round trip = %q, want %q", dec, data)
	}
}

func TestApplyEmptyKey(t *testing.T) {
	data := []byte("hello")
	out := Apply(data, nil)
	if string(out) != string(data) {
		t.Fatalf("Apply with empty key = %q, want unchanged %q", out, data)
	}
}
