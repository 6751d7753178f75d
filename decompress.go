// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package lemdat

// Decoder command tags, as read from the stream. Two-bit tags cover the
// cheap, common cases; three-bit tags the longer ones.
//
//	00  short literal run  + 3-bit (n-1), 1..8 bytes
//	01  2-byte copy        + 8-bit distance
//	100 3-byte copy        + 9-bit distance
//	101 4-byte copy        + 10-bit distance
//	110 n-byte copy        + 8-bit (n-1) + 12-bit distance, 1..256 bytes
//	111 long literal run   + 8-bit (n-9), 9..264 bytes
//
// Stored distances are one less than the real distance. Because output is
// produced back-to-front, a copy source lies at a higher index than its
// destination.

// DecompressSection decodes one section payload into its original bytes.
// size is the declared decompressed size from the section header and
// finalByteBits the valid-bit count of the final payload byte (zero is
// accepted and means the final byte is padding).
//
// Decompression is purely functional: the same inputs always produce the
// same output, and payload is never modified.
func DecompressSection(payload []byte, size uint32, finalByteBits uint8) ([]byte, error) {
	if finalByteBits == 0 {
		// The whole final byte is padding.
		if len(payload) > 0 {
			payload = payload[:len(payload)-1]
		}
		finalByteBits = 8
	}

	out := make([]byte, size)
	if size == 0 {
		return out, nil
	}

	br := newBitReader(payload, finalByteBits)
	i := int(size) - 1 // next write position, descending

	for i >= 0 {
		tag, err := br.readBits(1)
		if err != nil {
			return nil, ErrTruncatedStream.New(int(size)-1-i, size)
		}

		var litLen, copyLen, dist uint32
		if tag == 0 {
			sub, err := br.readBits(1)
			if err != nil {
				return nil, ErrTruncatedStream.New(int(size)-1-i, size)
			}
			if sub == 0 {
				n, err := br.readBits(3)
				if err != nil {
					return nil, ErrTruncatedStream.New(int(size)-1-i, size)
				}
				litLen = n + 1
			} else {
				d, err := br.readBits(8)
				if err != nil {
					return nil, ErrTruncatedStream.New(int(size)-1-i, size)
				}
				copyLen, dist = 2, d
			}
		} else {
			cmd, err := br.readBits(2)
			if err != nil {
				return nil, ErrTruncatedStream.New(int(size)-1-i, size)
			}
			switch cmd {
			case 0:
				d, err := br.readBits(9)
				if err != nil {
					return nil, ErrTruncatedStream.New(int(size)-1-i, size)
				}
				copyLen, dist = 3, d
			case 1:
				d, err := br.readBits(10)
				if err != nil {
					return nil, ErrTruncatedStream.New(int(size)-1-i, size)
				}
				copyLen, dist = 4, d
			case 2:
				n, err := br.readBits(8)
				if err != nil {
					return nil, ErrTruncatedStream.New(int(size)-1-i, size)
				}
				d, err := br.readBits(12)
				if err != nil {
					return nil, ErrTruncatedStream.New(int(size)-1-i, size)
				}
				copyLen, dist = n+1, d
			default:
				n, err := br.readBits(8)
				if err != nil {
					return nil, ErrTruncatedStream.New(int(size)-1-i, size)
				}
				litLen = n + 9
			}
		}

		switch {
		case litLen > 0:
			if int(litLen) > i+1 {
				return nil, ErrOutputOverrun.New(size)
			}
			for k := uint32(0); k < litLen; k++ {
				b, err := br.readBits(8)
				if err != nil {
					return nil, ErrTruncatedStream.New(int(size)-1-i, size)
				}
				out[i] = byte(b)
				i--
			}

		default:
			if int(copyLen) > i+1 {
				return nil, ErrOutputOverrun.New(size)
			}
			src := i + int(dist) + 1
			if src >= len(out) {
				return nil, ErrOffsetOutOfRange.New(src, len(out))
			}
			for k := uint32(0); k < copyLen; k++ {
				out[i] = out[i+int(dist)+1]
				i--
			}
		}
	}

	return out, nil
}
