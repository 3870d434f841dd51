package byteio

// BitCursor walks a byte slice one control bit at a time, MSB first,
// refilling a one-byte buffer on demand. This is the bit-packing convention
// used by the image codec's control stream (spec image decoder/encoder):
// the mask starts at zero to force an initial refill, is shifted right
// after each bit, and a new control byte is pulled in whenever the mask
// underflows to zero.
type BitCursor struct {
	data []byte
	pos  int
	mask byte
	ctrl byte
}

// NewBitCursor creates a cursor reading control bits from data starting
// at byte offset 0.
func NewBitCursor(data []byte) *BitCursor {
	return &BitCursor{data: data}
}

// Pos returns the current byte offset into the underlying slice.
func (c *BitCursor) Pos() int { return c.pos }

// Remaining returns the number of bytes not yet consumed.
func (c *BitCursor) Remaining() int { return len(c.data) - c.pos }

// NextBit returns the next control bit (0 or 1), refilling the control
// byte from the stream whenever needed. ok is false if a refill was
// required but no bytes remain.
func (c *BitCursor) NextBit() (bit int, ok bool) {
	if c.mask == 0 {
		if c.pos >= len(c.data) {
			return 0, false
		}
		c.ctrl = c.data[c.pos]
		c.pos++
		c.mask = 0x80
	}
	if c.ctrl&c.mask != 0 {
		bit = 1
	}
	c.mask >>= 1
	return bit, true
}

// ReadByte consumes and returns the next raw data byte (not a control bit).
func (c *BitCursor) ReadByte() (byte, bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	b := c.data[c.pos]
	c.pos++
	return b, true
}

// BitWriter accumulates control bits MSB-first into a pending control byte,
// flushing the control byte followed by its accumulated data bytes once
// eight bits have been written and a ninth arrives. This is the
// encoder-side counterpart to BitCursor: the data bytes of all eight bits
// of a control byte follow that control byte.
type BitWriter struct {
	out     []byte
	ctrlPos int  // index in out of the pending control byte
	mask    byte // next bit to set in the pending control byte (MSB-first)
	pending []byte
}

// NewBitWriter creates an empty BitWriter.
func NewBitWriter() *BitWriter {
	w := &BitWriter{}
	w.openControl()
	return w
}

// openControl reserves a new pending control byte at the end of out.
func (w *BitWriter) openControl() {
	w.out = append(w.out, 0)
	w.ctrlPos = len(w.out) - 1
	w.mask = 0x80
	w.pending = w.pending[:0]
}

// WriteBit appends one control bit. If the pending control byte already
// holds eight bits, it first flushes that control byte's data bytes (queued
// via WriteDataByte/WriteDataBytes) and opens a new control byte.
func (w *BitWriter) WriteBit(bit int) {
	if w.mask == 0 {
		w.out = append(w.out, w.pending...)
		w.openControl()
	}
	if bit != 0 {
		w.out[w.ctrlPos] |= w.mask
	}
	w.mask >>= 1
}

// WriteDataByte queues a raw data byte to be emitted immediately after the
// control byte currently being assembled.
func (w *BitWriter) WriteDataByte(b byte) {
	w.pending = append(w.pending, b)
}

// WriteDataBytes queues several raw data bytes.
func (w *BitWriter) WriteDataBytes(b []byte) {
	w.pending = append(w.pending, b...)
}

// Bytes returns the fully assembled control+data stream, flushing any
// partially-filled trailing control byte first.
func (w *BitWriter) Bytes() []byte {
	if w.mask != 0x80 || len(w.pending) > 0 {
		w.out = append(w.out, w.pending...)
	} else {
		// No bits were set in the trailing control byte and nothing is
		// pending: drop the empty reservation so the stream doesn't end
		// with a spurious all-zero control byte.
		w.out = w.out[:w.ctrlPos]
	}
	return w.out
}
