// Package kernels implements the numeric primitives shared by the VarDCT
// and Modular encoding paths: DCT/IDCT, color transforms, quantization,
// zigzag scanning, the MED predictor, the reversible color transform, the
// squeeze lifting step, and block activity. Every backend implements the
// same Kernels surface and must agree with Scalar within the tolerances
// documented on each method.
package kernels

import "github.com/cocosip/go-jxl/hwcaps"

// Kernels is the pure-function surface implemented by every dispatch
// backend. All methods are safe for concurrent use: implementations hold
// no mutable state.
type Kernels interface {
	// DCT2D applies the forward 8x8 DCT-II. Tolerance vs Scalar: 1e-4.
	DCT2D(block [8][8]float32) [8][8]float32
	// IDCT2D applies the inverse 8x8 DCT-II. Tolerance vs Scalar: 1e-4.
	IDCT2D(coef [8][8]float32) [8][8]float32

	// RGBToYCbCr converts BT.601 full-range RGB to YCbCr. r, g, b must have
	// equal length; outputs match that length. Tolerance vs Scalar: 1e-5.
	RGBToYCbCr(r, g, b []float32) (y, cb, cr []float32)
	// YCbCrToRGB inverts RGBToYCbCr.
	YCbCrToRGB(y, cb, cr []float32) (r, g, b []float32)

	// RGBToXYB converts to the JPEG XL opsin-like perceptual space.
	// Round-trip through XYBToRGB must be within 1e-3.
	RGBToXYB(r, g, b []float32) (x, y, bChan []float32)
	// XYBToRGB inverts RGBToXYB.
	XYBToRGB(x, y, bChan []float32) (r, g, b []float32)

	// Quantize divides block by qMatrix element-wise with round-half-away-
	// from-zero, producing an exact result.
	Quantize(block [8][8]float32, qMatrix [8][8]float32) [8][8]int16

	// ZigzagScan reorders an 8x8 block into the standard JPEG zigzag
	// sequence. Exact; a permutation of the input.
	ZigzagScan(block [8][8]int16) [64]int16

	// PredictMED computes MED predictor residuals over a raster image of
	// width w, height h. Exact.
	PredictMED(data []uint16, w, h int) []int32

	// ForwardRCT applies the YCoCg-R reversible color transform.
	ForwardRCT(r, g, b []uint16) (y, co, cg []int32)
	// InverseRCT undoes ForwardRCT exactly.
	InverseRCT(y, co, cg []int32) (r, g, b []uint16)

	// SqueezeHorizontal performs the horizontal squeeze lifting step over a
	// width x height region with the given row stride, mutating buf.
	SqueezeHorizontal(buf []int32, width, height, stride int)
	// SqueezeVertical is the vertical analogue of SqueezeHorizontal.
	SqueezeVertical(buf []int32, width, height, stride int)

	// UnsqueezeHorizontal exactly inverts SqueezeHorizontal.
	UnsqueezeHorizontal(buf []int32, width, height, stride int)
	// UnsqueezeVertical exactly inverts SqueezeVertical.
	UnsqueezeVertical(buf []int32, width, height, stride int)

	// BlockActivity returns the per-block energy measure used to modulate
	// quantization. Non-negative; zero for constant blocks.
	BlockActivity(block [8][8]float32) float32

	// Backend identifies which DispatchBackend this implementation is.
	Backend() hwcaps.DispatchBackend
}

// For returns the Kernels implementation for the given backend. Callers
// typically use Current() rather than calling this directly.
func For(b hwcaps.DispatchBackend) Kernels {
	switch b {
	case hwcaps.BackendNEON:
		return NEON{}
	case hwcaps.BackendSSE2:
		return SSE{}
	case hwcaps.BackendAVX2:
		return AVX{}
	case hwcaps.BackendAccelerate:
		return Accelerate{}
	default:
		return Scalar{}
	}
}

// Current returns the Kernels implementation for the process-wide selected
// backend (hwcaps.Current()).
func Current() Kernels {
	return For(hwcaps.Current())
}

// All returns one Kernels instance per backend available on this host,
// Scalar first. Used by conformance tests that compare every available
// backend against Scalar.
func All() []Kernels {
	caps := hwcaps.Detect()
	out := []Kernels{Scalar{}}
	for _, b := range []hwcaps.DispatchBackend{
		hwcaps.BackendNEON, hwcaps.BackendSSE2, hwcaps.BackendAVX2, hwcaps.BackendAccelerate,
	} {
		if b.IsAvailable(caps) {
			out = append(out, For(b))
		}
	}
	return out
}
