package codec

import "testing"

func TestFindLongestMatchFindsRepeat(t *testing.T) {
	data := []byte("abcabcabc")
	mf := newMatchFinder(data)
	mf.insert(0)
	mf.insert(1)
	mf.insert(2)

	length, offset, ok := mf.findLongestMatch(3)
	if !ok {
		t.Fatal("expected a match at position 3")
	}
	if offset != 3 {
		t.Fatalf("offset = %d, want 3", offset)
	}
	if length < 3 {
		t.Fatalf("length = %d, want >= 3", length)
	}
}

func TestFindLongestMatchNoneWithoutHistory(t *testing.T) {
	data := []byte("xyz")
	mf := newMatchFinder(data)
	if _, _, ok := mf.findLongestMatch(0); ok {
		t.Fatal("expected no match at position 0 with empty history")
	}
}
