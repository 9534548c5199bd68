package entropy

import (
	"container/heap"
	"errors"

	"github.com/cocosip/go-jxl/bitstream"
)

// ErrCodeTooLong is returned when canonical code construction cannot keep
// every code within the 16-bit length limit used by the table header.
var ErrCodeTooLong = errors.New("jxl/entropy: canonical code length exceeds 16 bits")

// PrefixTable is a canonical Huffman-like code over the 256-symbol byte
// alphabet, built the way jpeg/common's HuffmanTable builds its min/max-
// code-per-length bookkeeping: code lengths are grouped by length, and
// codes within a length are assigned consecutively in symbol order.
type PrefixTable struct {
	lengths [256]uint8 // 0 = symbol unused
	codes   [256]uint16
	// bitsCount[l] = number of symbols with code length l, l in 1..16.
	bitsCount [17]int
	// minCode/maxCode[l] = numeric range of codes with length l.
	minCode [17]uint16
	maxCode [17]uint16
	// valuesByLength[l] lists symbols in code-assignment order for length l.
	valuesByLength [17][]byte
}

// treeNode is one node of the Huffman construction tree. symbol is -1 for
// internal nodes.
type treeNode struct {
	freq     uint64
	symbol   int
	children [2]int // indices into the node pool; unused if symbol >= 0
}

// pqEntry is a priority-queue entry referencing a pool index by frequency.
type pqEntry struct {
	idx  int
	freq uint64
}

type pqEntryHeap []pqEntry

func (h pqEntryHeap) Len() int            { return len(h) }
func (h pqEntryHeap) Less(i, j int) bool  { return h[i].freq < h[j].freq }
func (h pqEntryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pqEntryHeap) Push(x interface{}) { *h = append(*h, x.(pqEntry)) }
func (h *pqEntryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	last := old[n-1]
	*h = old[:n-1]
	return last
}

// BuildPrefixTable constructs a canonical prefix code from a symbol
// histogram using a standard Huffman tree, then assigns canonical codes
// (shortest-length-first, consecutive within a length) as described by
// jpeg/common's Build().
func BuildPrefixTable(h Histogram) (*PrefixTable, error) {
	var pool []treeNode
	var pq pqEntryHeap
	for s := 0; s < 256; s++ {
		if h[s] == 0 {
			continue
		}
		pool = append(pool, treeNode{freq: h[s], symbol: s})
		pq = append(pq, pqEntry{idx: len(pool) - 1, freq: h[s]})
	}
	if len(pq) == 0 {
		return nil, ErrEmptyHistogram
	}
	if len(pq) == 1 {
		// A single symbol still needs a 1-bit code to be emittable.
		pool = append(pool, treeNode{freq: pool[0].freq, symbol: -1, children: [2]int{0, 0}})
		pq = pqEntryHeap{{idx: len(pool) - 1, freq: pool[0].freq}}
	}

	heap.Init(&pq)
	for pq.Len() > 1 {
		a := heap.Pop(&pq).(pqEntry)
		b := heap.Pop(&pq).(pqEntry)
		pool = append(pool, treeNode{freq: a.freq + b.freq, symbol: -1, children: [2]int{a.idx, b.idx}})
		heap.Push(&pq, pqEntry{idx: len(pool) - 1, freq: a.freq + b.freq})
	}
	rootIdx := pq[0].idx

	var lengths [256]uint8
	var assignDepth func(idx int, depth int, isSingleChild bool)
	assignDepth = func(idx int, depth int, isSingleChild bool) {
		n := pool[idx]
		if n.symbol >= 0 {
			d := depth
			if d == 0 {
				d = 1
			}
			lengths[n.symbol] = uint8(d)
			return
		}
		if isSingleChild {
			assignDepth(n.children[0], depth+1, false)
			return
		}
		assignDepth(n.children[0], depth+1, false)
		assignDepth(n.children[1], depth+1, false)
	}
	singleChild := pool[rootIdx].symbol == -1 && pool[rootIdx].children[0] == pool[rootIdx].children[1]
	assignDepth(rootIdx, 0, singleChild)

	return buildCanonicalFromLengths(lengths)
}

func buildCanonicalFromLengths(lengths [256]uint8) (*PrefixTable, error) {
	t := &PrefixTable{lengths: lengths}
	for s := 0; s < 256; s++ {
		l := lengths[s]
		if l == 0 {
			continue
		}
		if l > 16 {
			return nil, ErrCodeTooLong
		}
		t.bitsCount[l]++
		t.valuesByLength[l] = append(t.valuesByLength[l], byte(s))
	}

	code := uint16(0)
	for l := 1; l <= 16; l++ {
		if t.bitsCount[l] == 0 {
			t.minCode[l] = 0
			t.maxCode[l] = 0
			code <<= 1
			continue
		}
		t.minCode[l] = code
		for i, sym := range t.valuesByLength[l] {
			t.codes[sym] = code + uint16(i)
		}
		code += uint16(t.bitsCount[l])
		t.maxCode[l] = code - 1
		code <<= 1
	}
	return t, nil
}

// WriteTable serializes the code-length table: a varint symbol count
// followed by, for each length 1..16, a varint count and that many symbol
// bytes in assignment order — the canonical-Huffman analogue of a JPEG DHT
// segment's bits/values arrays.
func (t *PrefixTable) WriteTable(w *bitstream.Writer) {
	total := 0
	for l := 1; l <= 16; l++ {
		total += t.bitsCount[l]
	}
	w.WriteVarint(uint64(total))
	for l := 1; l <= 16; l++ {
		w.WriteVarint(uint64(t.bitsCount[l]))
		for _, sym := range t.valuesByLength[l] {
			// WriteBits (not WriteByte) to stay bit-continuous: the varint
			// header bits are not generally byte-aligned at this point, and
			// a decoder reading this table bit-by-bit must not skip any
			// implicit alignment padding.
			w.WriteBits(uint32(sym), 8)
		}
	}
}

// EncodeSymbols writes each symbol's canonical code, most-significant bit
// first, so prefix-freeness lets a decoder resolve each code as soon as it
// is read bit by bit.
func (t *PrefixTable) EncodeSymbols(w *bitstream.Writer, symbols []byte) {
	for _, s := range symbols {
		l := t.lengths[s]
		code := t.codes[s]
		for i := int(l) - 1; i >= 0; i-- {
			w.WriteBit((code>>uint(i))&1 != 0)
		}
	}
}
