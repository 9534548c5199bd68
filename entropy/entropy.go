// Package entropy implements the two interchangeable symbol coders used by
// the VarDCT and Modular paths: a canonical prefix (Huffman-like) coder and
// a table-driven rANS coder. Both operate over a byte alphabet (0..255);
// callers map wider-range coefficients/residuals onto this alphabet with
// zig-zag mapping followed by LEB128 varint bytes (AppendVarintBytes)
// before invoking either coder.
package entropy

import "errors"

// ErrEmptyHistogram is returned when a coder is asked to build a table
// from a histogram with no observed symbols.
var ErrEmptyHistogram = errors.New("jxl/entropy: histogram has no symbols")

// ErrTruncatedVarint is returned when a varint byte sequence ends before a
// continuation chain terminates.
var ErrTruncatedVarint = errors.New("jxl/entropy: truncated varint byte sequence")

// Histogram counts symbol occurrences over the 256-entry byte alphabet.
type Histogram [256]uint64

// HistogramOf builds a Histogram from a symbol slice.
func HistogramOf(symbols []byte) Histogram {
	var h Histogram
	for _, s := range symbols {
		h[s]++
	}
	return h
}

// ZigZagEncode maps a signed residual to a non-negative integer by
// interleaving sign with magnitude: n -> (n<<1) ^ (n>>31).
func ZigZagEncode(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

// ZigZagDecode inverts ZigZagEncode.
func ZigZagDecode(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// AppendVarintBytes appends the LEB128 encoding of u (7 payload bits per
// byte, continuation bit in bit 7) to dst, returning the extended slice.
// This is how coefficient/residual streams are symbolized onto the
// 256-entry byte alphabet the prefix and ANS coders operate over.
func AppendVarintBytes(dst []byte, u uint32) []byte {
	for {
		b := byte(u & 0x7F)
		u >>= 7
		if u != 0 {
			dst = append(dst, b|0x80)
		} else {
			dst = append(dst, b)
			return dst
		}
	}
}

// ReadVarintBytes decodes one LEB128 value starting at data[pos], returning
// the value and the position just past it.
func ReadVarintBytes(data []byte, pos int) (uint32, int, error) {
	var u uint32
	var shift uint
	for {
		if pos >= len(data) {
			return 0, 0, ErrTruncatedVarint
		}
		b := data[pos]
		pos++
		u |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			return u, pos, nil
		}
		shift += 7
	}
}
