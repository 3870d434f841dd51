package codec

// matchFinder is a bounded hash-chain LZ match finder over a byte buffer.
//
// The source encoder's position map grows an unbounded list per hash
// bucket (spec §9, "Hash map of match positions"). For robustness this
// implementation instead uses a fixed-size head table plus a per-position
// successor array, giving O(1) memory per input byte and bounding every
// chain walk to the match window, instead of letting a bucket's chain grow
// across the whole image.
const (
	windowSize  = 0x2000 // maximum backward distance for a match
	maxMatchLen = 0x100  // longest single match the finder will report
	minMatchLen = 3
	maxChainLen = 64 // cap on hash-chain walk length per position

	hashBits = 16
	hashSize = 1 << hashBits
)

type matchFinder struct {
	data []byte
	head [hashSize]int32
	prev []int32
}

func newMatchFinder(data []byte) *matchFinder {
	mf := &matchFinder{
		data: data,
		prev: make([]int32, len(data)),
	}
	for i := range mf.head {
		mf.head[i] = -1
	}
	for i := range mf.prev {
		mf.prev[i] = -1
	}
	return mf
}

// hash3 hashes the 24-bit value formed by three consecutive bytes.
func hash3(b []byte) uint32 {
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	// Multiplicative hash folded down to hashBits.
	return (v * 2654435761) >> (32 - hashBits)
}

// insert adds position pos to its hash bucket's chain. Positions with fewer
// than three bytes left in data are ignored.
func (mf *matchFinder) insert(pos int) {
	if pos+3 > len(mf.data) {
		return
	}
	h := hash3(mf.data[pos:])
	mf.prev[pos] = mf.head[h]
	mf.head[h] = int32(pos)
}

// findLongestMatch searches for the longest prior match at position i,
// rejecting candidates farther than windowSize back and extending each up
// to min(len(data)-i, maxMatchLen) bytes. It returns ok=false if the best
// candidate is shorter than minMatchLen.
func (mf *matchFinder) findLongestMatch(i int) (length, offset int, ok bool) {
	if i+minMatchLen > len(mf.data) {
		return 0, 0, false
	}
	limit := len(mf.data) - i
	if limit > maxMatchLen {
		limit = maxMatchLen
	}

	h := hash3(mf.data[i:])
	pos := mf.head[h]
	best := 0
	bestPos := -1
	for iter := 0; pos >= 0 && iter < maxChainLen; iter++ {
		dist := i - int(pos)
		if dist > windowSize {
			break
		}
		l := matchLength(mf.data[pos:], mf.data[i:], limit)
		if l > best {
			best = l
			bestPos = int(pos)
			if best >= limit {
				break
			}
		}
		pos = mf.prev[pos]
	}
	if best < minMatchLen {
		return 0, 0, false
	}
	return best, i - bestPos, true
}

// matchLength returns how many leading bytes of a and b agree, up to limit.
func matchLength(a, b []byte, limit int) int {
	n := 0
	for n < limit && a[n] == b[n] {
		n++
	}
	return n
}
