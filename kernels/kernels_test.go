package kernels

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func randomBlock(seed int) [8][8]float32 {
	var b [8][8]float32
	x := seed
	for y := 0; y < 8; y++ {
		for c := 0; c < 8; c++ {
			x = (x*1103515245 + 12345) & 0x7FFFFFFF
			b[y][c] = float32(x%2001-1000) / 1000.0
		}
	}
	return b
}

func TestDCTRoundTrip(t *testing.T) {
	for seed := 0; seed < 5; seed++ {
		block := randomBlock(seed + 1)
		coef := Scalar{}.DCT2D(block)
		back := Scalar{}.IDCT2D(coef)
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if !approxEqual(back[y][x], block[y][x], 1e-4) {
					t.Fatalf("round trip mismatch at (%d,%d): got %v want %v", y, x, back[y][x], block[y][x])
				}
			}
		}
	}
}

func TestBackendConformance(t *testing.T) {
	scalar := Scalar{}
	block := randomBlock(7)
	scalarDCT := scalar.DCT2D(block)
	scalarIDCT := scalar.IDCT2D(scalarDCT)

	for _, k := range All() {
		dct := k.DCT2D(block)
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if !approxEqual(dct[y][x], scalarDCT[y][x], 1e-4) {
					t.Errorf("%v DCT2D mismatch at (%d,%d): %v vs %v", k.Backend(), y, x, dct[y][x], scalarDCT[y][x])
				}
			}
		}
		idct := k.IDCT2D(scalarDCT)
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if !approxEqual(idct[y][x], scalarIDCT[y][x], 1e-4) {
					t.Errorf("%v IDCT2D mismatch at (%d,%d)", k.Backend(), y, x)
				}
			}
		}
	}
}

func TestRGBToYCbCrVectors(t *testing.T) {
	k := Scalar{}
	y, cb, cr := k.RGBToYCbCr([]float32{0}, []float32{0}, []float32{0})
	if !approxEqual(y[0], 0, 1e-4) || !approxEqual(cb[0], 0.5, 1e-4) || !approxEqual(cr[0], 0.5, 1e-4) {
		t.Fatalf("black RGB -> YCbCr = (%v,%v,%v), want (0,0.5,0.5)", y[0], cb[0], cr[0])
	}

	y2, cb2, cr2 := k.RGBToYCbCr([]float32{1}, []float32{1}, []float32{1})
	if !approxEqual(y2[0], 1, 1e-4) || !approxEqual(cb2[0], 0.5, 1e-4) || !approxEqual(cr2[0], 0.5, 1e-4) {
		t.Fatalf("white RGB -> YCbCr = (%v,%v,%v), want (1,0.5,0.5)", y2[0], cb2[0], cr2[0])
	}
}

func TestYCbCrRoundTrip(t *testing.T) {
	k := Scalar{}
	r := []float32{0.1, 0.5, 0.9, 0.2}
	g := []float32{0.2, 0.4, 0.1, 0.8}
	b := []float32{0.3, 0.6, 0.5, 0.05}
	y, cb, cr := k.RGBToYCbCr(r, g, b)
	r2, g2, b2 := k.YCbCrToRGB(y, cb, cr)
	for i := range r {
		if !approxEqual(r2[i], r[i], 1e-4) || !approxEqual(g2[i], g[i], 1e-4) || !approxEqual(b2[i], b[i], 1e-4) {
			t.Fatalf("YCbCr round trip mismatch at %d", i)
		}
	}
}

func TestXYBRoundTrip(t *testing.T) {
	for _, k := range All() {
		r := []float32{0.1, 0.5, 0.9, 0.0, 1.0}
		g := []float32{0.2, 0.4, 0.1, 1.0, 0.0}
		b := []float32{0.3, 0.6, 0.5, 0.0, 1.0}
		x, y, bChan := k.RGBToXYB(r, g, b)
		r2, g2, b2 := k.XYBToRGB(x, y, bChan)
		for i := range r {
			if !approxEqual(r2[i], r[i], 1e-3) || !approxEqual(g2[i], g[i], 1e-3) || !approxEqual(b2[i], b[i], 1e-3) {
				t.Fatalf("%v XYB round trip mismatch at %d: got (%v,%v,%v) want (%v,%v,%v)",
					k.Backend(), i, r2[i], g2[i], b2[i], r[i], g[i], b[i])
			}
		}
	}
}

func TestQuantizeRounding(t *testing.T) {
	k := Scalar{}
	var block, ones [8][8]float32
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			ones[y][x] = 1
		}
	}
	block[0][0] = 3.7
	block[0][1] = -2.3
	block[3][5] = 0.5

	q := k.Quantize(block, ones)
	if q[0][0] != 4 {
		t.Errorf("quantize(3.7) = %d, want 4", q[0][0])
	}
	if q[0][1] != -2 {
		t.Errorf("quantize(-2.3) = %d, want -2", q[0][1])
	}
	if q[3][5] != 1 {
		t.Errorf("quantize(0.5) = %d, want 1 (ties away from zero)", q[3][5])
	}
}

func TestZigzagIsPermutation(t *testing.T) {
	k := Scalar{}
	var block [8][8]int16
	n := int16(0)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			block[y][x] = n
			n++
		}
	}
	out := k.ZigzagScan(block)
	seen := map[int16]bool{}
	for _, v := range out {
		seen[v] = true
	}
	if len(seen) != 64 {
		t.Fatalf("zigzag output has %d distinct values, want 64", len(seen))
	}
	if out[0] != block[0][0] {
		t.Errorf("first zigzag output = %d, want DC %d", out[0], block[0][0])
	}
	if out[63] != block[7][7] {
		t.Errorf("last zigzag output = %d, want (7,7) = %d", out[63], block[7][7])
	}
}

func TestMEDConstantImageResidualsZero(t *testing.T) {
	k := Scalar{}
	w, h := 6, 5
	data := make([]uint16, w*h)
	for i := range data {
		data[i] = 200
	}
	residuals := k.PredictMED(data, w, h)
	for i := 1; i < len(residuals); i++ {
		if residuals[i] != 0 {
			t.Fatalf("residual[%d] = %d on constant image, want 0", i, residuals[i])
		}
	}
}

func TestRCTRoundTrip(t *testing.T) {
	k := Scalar{}
	r := []uint16{0, 255, 65535, 12345, 1}
	g := []uint16{10, 200, 0, 54321, 65535}
	b := []uint16{20, 100, 32768, 999, 0}

	y, co, cg := k.ForwardRCT(r, g, b)
	r2, g2, b2 := k.InverseRCT(y, co, cg)
	for i := range r {
		if r2[i] != r[i] || g2[i] != g[i] || b2[i] != b[i] {
			t.Fatalf("RCT round trip mismatch at %d: got (%d,%d,%d) want (%d,%d,%d)",
				i, r2[i], g2[i], b2[i], r[i], g[i], b[i])
		}
	}
}

func TestSqueezeRoundTripEvenWidth(t *testing.T) {
	k := Scalar{}
	width, height, stride := 8, 4, 8
	buf := make([]int32, height*stride)
	orig := make([]int32, height*stride)
	n := int32(1)
	for i := range buf {
		buf[i] = n
		orig[i] = n
		n++
	}
	k.SqueezeHorizontal(buf, width, height, stride)
	k.UnsqueezeHorizontal(buf, width, height, stride)
	for i := range buf {
		if buf[i] != orig[i] {
			t.Fatalf("horizontal squeeze round trip mismatch at %d: got %d want %d", i, buf[i], orig[i])
		}
	}
}

func TestSqueezeRoundTripOddWidth(t *testing.T) {
	k := Scalar{}
	width, height, stride := 7, 3, 7
	buf := make([]int32, height*stride)
	orig := make([]int32, height*stride)
	n := int32(-10)
	for i := range buf {
		buf[i] = n
		orig[i] = n
		n += 3
	}
	k.SqueezeHorizontal(buf, width, height, stride)
	k.UnsqueezeHorizontal(buf, width, height, stride)
	for i := range buf {
		if buf[i] != orig[i] {
			t.Fatalf("odd-width horizontal squeeze round trip mismatch at %d: got %d want %d", i, buf[i], orig[i])
		}
	}
}

func TestSqueezeVerticalRoundTrip(t *testing.T) {
	k := Scalar{}
	width, height, stride := 4, 9, 4
	buf := make([]int32, height*stride)
	orig := make([]int32, height*stride)
	n := int32(5)
	for i := range buf {
		buf[i] = n
		orig[i] = n
		n += 7
	}
	k.SqueezeVertical(buf, width, height, stride)
	k.UnsqueezeVertical(buf, width, height, stride)
	for i := range buf {
		if buf[i] != orig[i] {
			t.Fatalf("vertical squeeze round trip mismatch at %d: got %d want %d", i, buf[i], orig[i])
		}
	}
}

func TestBlockActivityConstantBlockIsZero(t *testing.T) {
	k := Scalar{}
	var block [8][8]float32
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			block[y][x] = 42.5
		}
	}
	act := k.BlockActivity(block)
	if act != 0 {
		t.Fatalf("BlockActivity on constant block = %v, want 0", act)
	}
}

func TestBlockActivityNonNegative(t *testing.T) {
	for _, k := range All() {
		for seed := 0; seed < 3; seed++ {
			block := randomBlock(seed + 100)
			act := k.BlockActivity(block)
			if act < 0 {
				t.Fatalf("%v BlockActivity = %v, want >= 0", k.Backend(), act)
			}
		}
	}
}

func TestDCTBasisIsFinite(t *testing.T) {
	for k := 0; k < 8; k++ {
		for n := 0; n < 8; n++ {
			if math.IsNaN(dctBasis[k][n]) || math.IsInf(dctBasis[k][n], 0) {
				t.Fatalf("dctBasis[%d][%d] is not finite", k, n)
			}
		}
	}
}
