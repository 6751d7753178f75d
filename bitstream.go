// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package lemdat

// The compressed stream is written forward but decoded from the end of the
// buffer toward the start, a trait inherited from the Amiga-era packer the
// format is based on (it lets the game decompress a section in place,
// sharing one buffer between compressed input and decompressed output).
// Within each byte, bits are consumed from the least significant position
// upward; multi-bit fields come out most-significant-bit first. The final
// payload byte is partial and carries its own valid-bit count in the
// section header.

// bitReader consumes bits backward over a compressed payload.
type bitReader struct {
	data      []byte
	byteIdx   int  // index of the byte being consumed
	bitIdx    uint // next bit position within that byte
	finalBits uint // valid bits in the final (first consumed) byte
	remaining int  // total unread bits
}

// newBitReader positions a reader on the last byte of payload. finalBits
// must be in 1..8; callers normalize the zero "all padding" encoding before
// constructing a reader.
func newBitReader(payload []byte, finalBits uint8) *bitReader {
	r := &bitReader{
		data:      payload,
		byteIdx:   len(payload) - 1,
		finalBits: uint(finalBits),
	}
	if len(payload) > 0 {
		r.remaining = int(finalBits) + 8*(len(payload)-1)
	}
	return r
}

// readBits returns the next n bits as an unsigned integer.
func (r *bitReader) readBits(n uint) (uint32, error) {
	if int(n) > r.remaining {
		return 0, ErrOutOfData.New(n, r.remaining)
	}
	var v uint32
	for i := uint(0); i < n; i++ {
		bit := (r.data[r.byteIdx] >> r.bitIdx) & 1
		v = v<<1 | uint32(bit)
		r.remaining--
		r.bitIdx++

		valid := uint(8)
		if r.byteIdx == len(r.data)-1 {
			valid = r.finalBits
		}
		if r.bitIdx >= valid {
			r.byteIdx--
			r.bitIdx = 0
		}
	}
	return v, nil
}

// bitsLeft reports how many unread bits remain.
func (r *bitReader) bitsLeft() int {
	return r.remaining
}

// bitWriter accumulates a compressed payload. Bits are appended so that a
// bitReader walking the finished buffer backward returns the values in
// reverse write order; the encoder exploits this by emitting commands
// front-to-back while the decoder replays them back-to-front.
type bitWriter struct {
	data []byte
	cur  uint8
	n    uint // bits buffered in cur
}

// writeBits appends the low n bits of v.
func (w *bitWriter) writeBits(v uint32, n uint) {
	for i := uint(0); i < n; i++ {
		w.cur = w.cur<<1 | uint8(v&1)
		v >>= 1
		w.n++
		if w.n == 8 {
			w.data = append(w.data, w.cur)
			w.cur = 0
			w.n = 0
		}
	}
}

// bitCount returns the number of bits written so far.
func (w *bitWriter) bitCount() int {
	return len(w.data)*8 + int(w.n)
}

// finish flushes the partial final byte and returns the payload together
// with the number of valid bits in its final byte. Unused high bits of the
// final byte are left zero so padding can never be mistaken for data.
func (w *bitWriter) finish() (payload []byte, finalBits uint8) {
	if w.n > 0 {
		payload = append(w.data, w.cur)
		return payload, uint8(w.n)
	}
	return w.data, 8
}
