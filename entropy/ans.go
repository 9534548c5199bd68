package entropy

import (
	"encoding/binary"
	"errors"

	"github.com/cocosip/go-jxl/bitstream"
)

// ansScaleBits is the fixed precision of the cumulative-frequency table:
// all frequencies are normalized to sum to 1<<ansScaleBits.
const ansScaleBits = 12
const ansScaleTotal = 1 << ansScaleBits

// ansStateLowerBound is the renormalization floor for the encoder/decoder
// state, chosen so byte-at-a-time renormalization keeps the state within
// 32 bits for the module's 12-bit table precision.
const ansStateLowerBound = 1 << 16

// ErrZeroFrequencySymbol is returned when a symbol to encode was not
// present in the histogram used to build the ANS table.
var ErrZeroFrequencySymbol = errors.New("jxl/entropy: symbol has zero frequency in ANS table")

// ANSTable is a normalized cumulative-frequency table over the 256-symbol
// byte alphabet, driving a table-driven rANS coder the way the pack's
// jpeg2000/mqc coder drives its binary arithmetic coding from a
// probability-state table, generalized here to a full byte alphabet with
// fixed 12-bit precision.
type ANSTable struct {
	freq    [256]uint32
	cumFreq [257]uint32
	// slotSymbol maps a normalized cumulative-frequency slot to its symbol,
	// used by the decoder to invert cumFreq in O(1).
	slotSymbol [ansScaleTotal]byte
}

// BuildANSTable normalizes h to ansScaleTotal total frequency, giving every
// observed symbol at least frequency 1, and returns the resulting table.
func BuildANSTable(h Histogram) (*ANSTable, error) {
	var total uint64
	nonZero := 0
	for _, f := range h {
		if f > 0 {
			total += f
			nonZero++
		}
	}
	if nonZero == 0 {
		return nil, ErrEmptyHistogram
	}

	t := &ANSTable{}
	var assigned uint32
	for s := 0; s < 256; s++ {
		if h[s] == 0 {
			continue
		}
		f := uint32(h[s] * ansScaleTotal / total)
		if f == 0 {
			f = 1
		}
		t.freq[s] = f
		assigned += f
	}

	// Adjust rounding drift onto the most frequent symbol so frequencies
	// sum to exactly ansScaleTotal.
	diff := int64(ansScaleTotal) - int64(assigned)
	if diff != 0 {
		best := -1
		for s := 0; s < 256; s++ {
			if t.freq[s] == 0 {
				continue
			}
			if best == -1 || t.freq[s] > t.freq[best] {
				best = s
			}
		}
		adjusted := int64(t.freq[best]) + diff
		if adjusted < 1 {
			adjusted = 1
		}
		t.freq[best] = uint32(adjusted)
	}

	var cum uint32
	for s := 0; s < 256; s++ {
		t.cumFreq[s] = cum
		cum += t.freq[s]
		for slot := t.cumFreq[s]; slot < cum; slot++ {
			t.slotSymbol[slot] = byte(s)
		}
	}
	t.cumFreq[256] = cum
	return t, nil
}

// WriteTable serializes the frequency table as 256 byte-aligned
// varint-encoded frequencies (zero for unused symbols). Every byte is
// written through w.WriteByte so the table occupies a whole number of
// bytes regardless of the writer's bit position on entry, letting a
// decoder parse it with plain byte indexing.
func (t *ANSTable) WriteTable(w *bitstream.Writer) {
	w.Align()
	var buf []byte
	for s := 0; s < 256; s++ {
		buf = AppendVarintBytes(buf, t.freq[s])
	}
	for _, b := range buf {
		w.WriteByte(b)
	}
}

// Encode rANS-encodes symbols against t, returning the final state (4
// bytes, little-endian) followed by the renormalization byte stream in
// decode-consumption order.
func (t *ANSTable) Encode(symbols []byte) ([]byte, error) {
	x := uint32(ansStateLowerBound)
	var renorm []byte // built in reverse temporal order; reversed before return

	for i := len(symbols) - 1; i >= 0; i-- {
		s := symbols[i]
		freq := t.freq[s]
		if freq == 0 {
			return nil, ErrZeroFrequencySymbol
		}
		xMax := ((ansStateLowerBound >> ansScaleBits) << 8) * freq
		for x >= xMax {
			renorm = append(renorm, byte(x))
			x >>= 8
		}
		x = ((x / freq) << ansScaleBits) + (x % freq) + t.cumFreq[s]
	}

	out := make([]byte, 4+len(renorm))
	binary.LittleEndian.PutUint32(out, x)
	for i, b := range renorm {
		out[4+len(renorm)-1-i] = b
	}
	return out, nil
}

// Decode inverts Encode, producing count symbols.
func (t *ANSTable) Decode(data []byte, count int) ([]byte, error) {
	if len(data) < 4 {
		return nil, ErrTruncatedStream
	}
	x := binary.LittleEndian.Uint32(data[:4])
	pos := 4

	out := make([]byte, count)
	for i := 0; i < count; i++ {
		slot := x & (ansScaleTotal - 1)
		s := t.slotSymbol[slot]
		freq := t.freq[s]
		x = freq*(x>>ansScaleBits) + slot - t.cumFreq[s]

		for x < ansStateLowerBound {
			if pos >= len(data) {
				return nil, ErrTruncatedStream
			}
			x = (x << 8) | uint32(data[pos])
			pos++
		}
		out[i] = s
	}
	return out, nil
}
