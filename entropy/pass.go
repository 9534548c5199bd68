package entropy

import "github.com/cocosip/go-jxl/bitstream"

// EncodePass entropy-codes symbols (using ANS if useANS, else the prefix
// coder) into a self-contained byte buffer: a coder-kind bit, the symbol
// count, the coder's table, and the coded data. Each pass builds its own
// table, which is why progressive output with more, smaller passes is
// never smaller than a single combined pass over the same symbols.
func EncodePass(symbols []byte, useANS bool) ([]byte, error) {
	w := bitstream.New()
	w.WriteBit(useANS)
	w.WriteVarint(uint64(len(symbols)))

	if len(symbols) == 0 {
		return w.Data(), nil
	}

	h := HistogramOf(symbols)
	if useANS {
		table, err := BuildANSTable(h)
		if err != nil {
			return nil, err
		}
		table.WriteTable(w)
		w.Align()
		data, err := table.Encode(symbols)
		if err != nil {
			return nil, err
		}
		for _, b := range data {
			w.WriteByte(b)
		}
	} else {
		table, err := BuildPrefixTable(h)
		if err != nil {
			return nil, err
		}
		table.WriteTable(w)
		table.EncodeSymbols(w, symbols)
	}
	return w.Data(), nil
}

// DecodePass inverts EncodePass.
func DecodePass(data []byte) ([]byte, error) {
	r := &bitReader{data: data}
	useANSBit, err := r.readBit()
	if err != nil {
		return nil, err
	}
	count, err := readVarintFromBits(r)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	if useANSBit == 1 {
		// Table starts byte-aligned after the 1-bit flag + varint header.
		bytePos := (r.pos + 7) / 8
		table, n, err := readANSTable(data[bytePos:])
		if err != nil {
			return nil, err
		}
		dataStart := bytePos + n
		return table.Decode(data[dataStart:], count)
	}

	table, newPos, err := readPrefixTable(r)
	if err != nil {
		return nil, err
	}
	r.pos = newPos
	return table.decodeFromReader(r, count)
}

func readVarintFromBits(r *bitReader) (int, error) {
	var u uint32
	var shift uint
	for {
		var b uint32
		for i := 0; i < 8; i++ {
			bit, err := r.readBit()
			if err != nil {
				return 0, err
			}
			b |= uint32(bit) << i
		}
		u |= (b & 0x7F) << shift
		if b&0x80 == 0 {
			return int(u), nil
		}
		shift += 7
	}
}

func readANSTable(data []byte) (*ANSTable, int, error) {
	t := &ANSTable{}
	pos := 0
	var total uint32
	type entry struct {
		symbol int
		freq   uint32
	}
	var entries []entry
	for s := 0; s < 256; s++ {
		v, n, err := ReadVarintBytes(data, pos)
		if err != nil {
			return nil, 0, err
		}
		pos = n
		if v > 0 {
			entries = append(entries, entry{symbol: s, freq: v})
			total += v
		}
	}
	var cum uint32
	for _, e := range entries {
		t.freq[e.symbol] = e.freq
		t.cumFreq[e.symbol] = cum
		cum += e.freq
		for slot := t.cumFreq[e.symbol]; slot < cum; slot++ {
			t.slotSymbol[slot] = byte(e.symbol)
		}
	}
	t.cumFreq[256] = cum
	_ = total
	return t, pos, nil
}

func readPrefixTable(r *bitReader) (*PrefixTable, int, error) {
	total, err := readVarintFromBits(r)
	if err != nil {
		return nil, 0, err
	}
	var lengths [256]uint8
	remaining := total
	for l := 1; l <= 16; l++ {
		n, err := readVarintFromBits(r)
		if err != nil {
			return nil, 0, err
		}
		for i := 0; i < n; i++ {
			var symByte uint32
			for b := 0; b < 8; b++ {
				bit, err := r.readBit()
				if err != nil {
					return nil, 0, err
				}
				symByte |= uint32(bit) << b
			}
			lengths[byte(symByte)] = uint8(l)
			remaining--
		}
	}
	table, err := buildCanonicalFromLengths(lengths)
	if err != nil {
		return nil, 0, err
	}
	return table, r.pos, nil
}

// decodeFromReader decodes count symbols starting at r's current bit
// position, using the MSB-first canonical walk (mirroring DecodeSymbols).
func (t *PrefixTable) decodeFromReader(r *bitReader, count int) ([]byte, error) {
	out := make([]byte, 0, count)
	for i := 0; i < count; i++ {
		code := 0
		length := 0
		matched := false
		for length < 16 {
			bit, err := r.readBit()
			if err != nil {
				return nil, err
			}
			code = (code << 1) | bit
			length++
			if t.bitsCount[length] > 0 && code >= int(t.minCode[length]) && code <= int(t.maxCode[length]) {
				symIdx := code - int(t.minCode[length])
				out = append(out, t.valuesByLength[length][symIdx])
				matched = true
				break
			}
		}
		if !matched {
			return nil, ErrTruncatedStream
		}
	}
	return out, nil
}
