package bitstream

import "testing"

func TestWriteSignature(t *testing.T) {
	w := New()
	w.WriteSignature()
	got := w.Data()
	want := []byte{0xFF, 0x0A}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("WriteSignature() = %v, want %v", got, want)
	}
}

func TestWriteBitLSBFirst(t *testing.T) {
	w := New()
	bits := []bool{true, false, true, false, true, false, true, false}
	for _, b := range bits {
		w.WriteBit(b)
	}
	got := w.Data()
	if len(got) != 1 || got[0] != 0xAA {
		t.Fatalf("alternating bit pattern = %#x, want 0xAA", got)
	}
}

func TestWriteBitsCrossesByteBoundary(t *testing.T) {
	w := New()
	w.WriteBits(0b101, 3)
	w.WriteBits(0b11111, 5)
	got := w.Data()
	if len(got) != 1 {
		t.Fatalf("expected 1 byte, got %d", len(got))
	}
	// low 3 bits of 0b101 = 101, then low 5 bits of 0b11111 = 11111
	// LSB-first packing: bit0=1,bit1=0,bit2=1,bit3..7=11111
	want := byte(0b11111101)
	if got[0] != want {
		t.Fatalf("got %#08b, want %#08b", got[0], want)
	}
}

func TestWriteVarintSmall(t *testing.T) {
	w := New()
	w.WriteVarint(42)
	got := w.Data()
	if len(got) != 1 {
		t.Fatalf("writeVarint(42) produced %d bytes, want 1", len(got))
	}
	if got[0] != 42 {
		t.Fatalf("writeVarint(42) = %d, want 42", got[0])
	}
}

func TestWriteVarintLarge(t *testing.T) {
	w := New()
	w.WriteVarint(300)
	got := w.Data()
	if len(got) < 2 {
		t.Fatalf("writeVarint(300) produced %d bytes, want >= 2", len(got))
	}
}

func TestWriteByteAlignsFirst(t *testing.T) {
	w := New()
	w.WriteBit(true)
	w.WriteByte(0xAB)
	got := w.Data()
	if len(got) != 2 {
		t.Fatalf("expected 2 bytes after padded align, got %d", len(got))
	}
	if got[0] != 0x01 {
		t.Fatalf("first byte = %#x, want 0x01 (padded pending bit)", got[0])
	}
	if got[1] != 0xAB {
		t.Fatalf("second byte = %#x, want 0xAB", got[1])
	}
}

func TestDataPadsTrailingPartialByte(t *testing.T) {
	w := New()
	w.WriteBits(0b11, 2)
	got := w.Data()
	if len(got) != 1 {
		t.Fatalf("expected 1 byte, got %d", len(got))
	}
	if got[0] != 0b00000011 {
		t.Fatalf("got %#08b, want %#08b", got[0], byte(0b00000011))
	}
}

func TestVarintRoundTripSizes(t *testing.T) {
	cases := []struct {
		value    uint64
		minBytes int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
	}
	for _, c := range cases {
		w := New()
		w.WriteVarint(c.value)
		got := len(w.Data())
		if got < c.minBytes {
			t.Errorf("writeVarint(%d) produced %d bytes, want >= %d", c.value, got, c.minBytes)
		}
	}
}
