package routetoken

// Bit cursors over a byte buffer, MSB-first. All waypoint fields are
// packed through these two types so the bit order is decided in
// exactly one place.

// bitWriter appends values to a byte buffer most-significant-bit
// first, with no padding between pushes.
type bitWriter struct {
	buf []byte
	acc uint64
	n   uint
}

// push appends the low width bits of v to the stream.
func (w *bitWriter) push(v uint64, width uint) {
	w.acc = w.acc<<width | v&(1<<width-1)
	w.n += width
	for w.n >= 8 {
		w.n -= 8
		w.buf = append(w.buf, byte(w.acc>>w.n))
	}
}

// flush pads the current partial byte with zero bits and emits it.
// Only valid at the very end of the payload.
func (w *bitWriter) flush() {
	if w.n > 0 {
		w.buf = append(w.buf, byte(w.acc<<(8-w.n)))
		w.acc = 0
		w.n = 0
	}
}

// bitReader consumes a byte buffer most-significant-bit first.
type bitReader struct {
	buf []byte
	pos int
	acc uint64
	n   uint
}

// pull reads the next width bits from the stream. It fails with
// ErrShortPayload once the underlying buffer is exhausted.
func (r *bitReader) pull(width uint) (uint64, error) {
	for r.n < width {
		if r.pos >= len(r.buf) {
			return 0, ErrShortPayload
		}
		r.acc = r.acc<<8 | uint64(r.buf[r.pos])
		r.pos++
		r.n += 8
	}
	r.n -= width
	return r.acc >> r.n & (1<<width - 1), nil
}
