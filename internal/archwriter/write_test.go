package archwriter

import (
	"bytes"
	"testing"

	"github.com/haruka-vn/vnarc/internal/container"
)

func TestModifyName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"script.s", "SCRIPT\x00S"},
		{"image.yb", "IMAGE\x00YB"},
		{"readme", "README"},
	}
	for _, tc := range cases {
		if got := ModifyName(tc.in); got != tc.want {
			t.Errorf("ModifyName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsScript(t *testing.T) {
	if !IsScript("foo_data", "image.yb") {
		t.Error("expected true: archive stem ends _data")
	}
	if !IsScript("foo", "script.s") {
		t.Error("expected true: member extension is .s")
	}
	if IsScript("foo", "image.yb") {
		t.Error("expected false")
	}
}

func TestWriteThenDetect(t *testing.T) {
	members := []Member{
		{Name: "a.txt", Data: bytes.Repeat([]byte{0x41}, 10)},
		{Name: "b.bin", Data: bytes.Repeat([]byte{0x42}, 20)},
	}
	opts := Options{Version: container.V1, ArchiveStem: "foo"}

	out, err := Write(members, opts)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	v, entries, err := container.Detect(out)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if v != container.V1 {
		t.Fatalf("version = %v, want v1", v)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	for i, e := range entries {
		want := members[i]
		if e.Name != want.Name {
			t.Errorf("entry %d name = %q, want %q", i, e.Name, want.Name)
		}
		got := out[e.Offset : e.Offset+e.Size]
		if !bytes.Equal(got, want.Data) {
			t.Errorf("entry %d payload mismatch", i)
		}
	}
}

func TestWriteV3UsesFilenameLengthHeader(t *testing.T) {
	members := []Member{
		{Name: "short.txt", Data: []byte{1, 2, 3}},
		{Name: "a-much-longer-name.bin", Data: []byte{4, 5}},
	}
	out, err := Write(members, Options{Version: container.V3, ArchiveStem: "bar"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	v, entries, err := container.Detect(out)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if v != container.V3 {
		t.Fatalf("version = %v, want v3", v)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
}

func TestWriteRejectsNameTooLongForV1(t *testing.T) {
	longName := "this-name-is-definitely-longer-than-sixteen-bytes.txt"
	members := []Member{{Name: longName, Data: []byte{1}}}
	if _, err := Write(members, Options{Version: container.V1}); err == nil {
		t.Fatal("expected error for oversized v1 name")
	}
}
