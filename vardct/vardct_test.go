package vardct

import (
	"testing"

	"github.com/cocosip/go-jxl/entropy"
	"github.com/cocosip/go-jxl/imageframe"
	"github.com/cocosip/go-jxl/kernels"
	"github.com/cocosip/go-jxl/options"
)

func gradientFrame(t *testing.T, w, h int) *imageframe.ImageFrame {
	t.Helper()
	f, err := imageframe.New(w, h, 3, imageframe.PixelUint8, imageframe.ColorSpace{Kind: imageframe.ColorSpaceSRGB}, 0, false, imageframe.AlphaNone)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.SetPixel(x, y, 0, uint16((x*37+y*11)%256)*257)
			f.SetPixel(x, y, 1, uint16((x*13+y*29)%256)*257)
			f.SetPixel(x, y, 2, uint16((x*7+y*53)%256)*257)
		}
	}
	return f
}

func TestEncodeZeroDimensions(t *testing.T) {
	f := &imageframe.ImageFrame{Width: 0, Height: 0, Channels: 3}
	_, err := New().Encode(f, options.Fast())
	if err != ErrZeroDimensions {
		t.Fatalf("Encode error = %v, want ErrZeroDimensions", err)
	}
}

func TestEncodeInvalidChannelCount(t *testing.T) {
	f := &imageframe.ImageFrame{Width: 8, Height: 8, Channels: 5}
	_, err := New().Encode(f, options.Fast())
	if err != ErrInvalidChannelCount {
		t.Fatalf("Encode error = %v, want ErrInvalidChannelCount", err)
	}
}

func TestEncodeNonProgressiveSinglePass(t *testing.T) {
	f := gradientFrame(t, 16, 16)
	passes, err := New().Encode(f, options.Fast())
	if err != nil {
		t.Fatal(err)
	}
	if len(passes) != 1 {
		t.Fatalf("got %d passes, want 1", len(passes))
	}
	if len(passes[0]) == 0 {
		t.Fatal("pass 0 is empty")
	}
}

func TestEncodeProgressiveThreePasses(t *testing.T) {
	f := gradientFrame(t, 16, 16)
	opts := options.Fast().WithProgressive(true)
	passes, err := New().Encode(f, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(passes) != 3 {
		t.Fatalf("got %d passes, want 3", len(passes))
	}
	for i, p := range passes {
		if len(p) == 0 {
			t.Fatalf("pass %d is empty", i)
		}
	}
}

func TestEncodeNonMultipleOf8Dimensions(t *testing.T) {
	f := gradientFrame(t, 10, 13)
	passes, err := New().Encode(f, options.Fast())
	if err != nil {
		t.Fatal(err)
	}
	if len(passes) != 1 || len(passes[0]) == 0 {
		t.Fatal("expected one non-empty pass for non-multiple-of-8 dimensions")
	}
}

func TestMirrorIndexWithinBounds(t *testing.T) {
	for i := 0; i < 20; i++ {
		got := mirrorIndex(i, 10)
		if got < 0 || got >= 10 {
			t.Fatalf("mirrorIndex(%d, 10) = %d, out of [0,10)", i, got)
		}
	}
}

func TestMirrorIndexIdentityInRange(t *testing.T) {
	for i := 0; i < 10; i++ {
		if got := mirrorIndex(i, 10); got != i {
			t.Fatalf("mirrorIndex(%d, 10) = %d, want %d", i, got, i)
		}
	}
}

func TestBuildQuantMatrixChromaCoarserThanLuma(t *testing.T) {
	luma := buildQuantMatrix(5.0, 1, 1)
	chroma := buildQuantMatrix(5.0, 0, 1)
	if chroma[0][0] <= luma[0][0] {
		t.Fatalf("chroma base step %v should exceed luma base step %v", chroma[0][0], luma[0][0])
	}
}

func TestModulateByActivityAtMeanUsesBase(t *testing.T) {
	base := buildQuantMatrix(3.0, 1, 1)
	out := modulateByActivity(base, 2.0, 2.0)
	if out != base {
		t.Fatalf("modulateByActivity with activity == mean should return base unchanged")
	}
}

func TestModulateByActivityClampedRange(t *testing.T) {
	base := buildQuantMatrix(3.0, 1, 1)
	high := modulateByActivity(base, 1000.0, 1.0)
	low := modulateByActivity(base, 0.0, 1.0)
	if high[0][0] > base[0][0]*2.0+1e-6 {
		t.Fatalf("modulateByActivity factor exceeded 2.0 clamp: %v vs base %v", high[0][0], base[0][0])
	}
	if low[0][0] < base[0][0]*0.5-1e-6 {
		t.Fatalf("modulateByActivity factor below 0.5 clamp: %v vs base %v", low[0][0], base[0][0])
	}
}

func TestEncodeYCbCrColorTransformSelectable(t *testing.T) {
	f := gradientFrame(t, 16, 16)
	opts := options.Fast().WithColorTransform(options.ColorTransformYCbCr)
	passes, err := New().Encode(f, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(passes) != 1 || len(passes[0]) == 0 {
		t.Fatal("expected one non-empty pass for YCbCr color transform")
	}
}

func TestEncodePassesNonEmptyOnEveryBackend(t *testing.T) {
	f := gradientFrame(t, 16, 16)
	var prev [][]byte
	for i, k := range kernels.All() {
		enc := NewWithKernels(k)
		passes, err := enc.Encode(f, options.Fast())
		if err != nil {
			t.Fatal(err)
		}
		if i > 0 {
			for p := range passes {
				if len(passes[p]) == 0 || len(prev[p]) == 0 {
					t.Fatalf("backend %d produced empty pass %d", i, p)
				}
			}
		}
		prev = passes
	}
}

func TestSymbolZigZagRoundTripViaAppendVarint(t *testing.T) {
	vals := []int32{0, -1, 1, -128, 127, 1000, -1000}
	var buf []byte
	for _, v := range vals {
		buf = entropy.AppendVarintBytes(buf, entropy.ZigZagEncode(v))
	}
	pos := 0
	for _, want := range vals {
		u, n, err := entropy.ReadVarintBytes(buf, pos)
		if err != nil {
			t.Fatal(err)
		}
		pos = n
		if got := entropy.ZigZagDecode(u); got != want {
			t.Fatalf("zigzag/varint round trip got %d, want %d", got, want)
		}
	}
}
