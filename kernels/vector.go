package kernels

import "github.com/cocosip/go-jxl/hwcaps"

// vectorOps is the shared implementation behind NEON, SSE, AVX, and
// Accelerate: this module ships no hand-written per-architecture assembly,
// so every vectorized backend runs the same portable Go numeric core. They
// differ from Scalar only in using the fused DCT/IDCT loop shape (dctFused/
// idctFused) that maps more directly onto lane-parallel multiply-
// accumulate sequences a real SIMD kernel would use; all other operations
// are identical to Scalar's, which is why the conformance contract holds
// trivially for this module's in-tree backends.
type vectorOps struct {
	backend hwcaps.DispatchBackend
}

func (v vectorOps) Backend() hwcaps.DispatchBackend { return v.backend }

func (v vectorOps) DCT2D(block [8][8]float32) [8][8]float32 { return dctFused(block) }
func (v vectorOps) IDCT2D(coef [8][8]float32) [8][8]float32 { return idctFused(coef) }

func (v vectorOps) RGBToYCbCr(r, g, b []float32) (y, cb, cr []float32) {
	return rgbToYCbCrCore(r, g, b)
}
func (v vectorOps) YCbCrToRGB(y, cb, cr []float32) (r, g, b []float32) {
	return ycbcrToRGBCore(y, cb, cr)
}
func (v vectorOps) RGBToXYB(r, g, b []float32) (x, y, bChan []float32) {
	return rgbToXYBCore(r, g, b)
}
func (v vectorOps) XYBToRGB(x, y, bChan []float32) (r, g, b []float32) {
	return xybToRGBCore(x, y, bChan)
}
func (v vectorOps) Quantize(block, qMatrix [8][8]float32) [8][8]int16 {
	return quantizeCore(block, qMatrix)
}
func (v vectorOps) ZigzagScan(block [8][8]int16) [64]int16     { return zigzagScanCore(block) }
func (v vectorOps) PredictMED(data []uint16, w, h int) []int32 { return predictMEDCore(data, w, h) }
func (v vectorOps) ForwardRCT(r, g, b []uint16) (y, co, cg []int32) {
	return forwardRCTCore(r, g, b)
}
func (v vectorOps) InverseRCT(y, co, cg []int32) (r, g, b []uint16) {
	return inverseRCTCore(y, co, cg)
}
func (v vectorOps) SqueezeHorizontal(buf []int32, width, height, stride int) {
	squeezeHorizontalCore(buf, width, height, stride)
}
func (v vectorOps) SqueezeVertical(buf []int32, width, height, stride int) {
	squeezeVerticalCore(buf, width, height, stride)
}
func (v vectorOps) UnsqueezeHorizontal(buf []int32, width, height, stride int) {
	unsqueezeHorizontalCore(buf, width, height, stride)
}
func (v vectorOps) UnsqueezeVertical(buf []int32, width, height, stride int) {
	unsqueezeVerticalCore(buf, width, height, stride)
}
func (v vectorOps) BlockActivity(block [8][8]float32) float32 { return blockActivityCore(block) }

// NEON is the ARM64 NEON-dispatched backend.
type NEON struct{ vectorOps }

func (NEON) Backend() hwcaps.DispatchBackend { return hwcaps.BackendNEON }

// SSE is the x86-64 SSE2-dispatched backend.
type SSE struct{ vectorOps }

func (SSE) Backend() hwcaps.DispatchBackend { return hwcaps.BackendSSE2 }

// AVX is the x86-64 AVX2-dispatched backend.
type AVX struct{ vectorOps }

func (AVX) Backend() hwcaps.DispatchBackend { return hwcaps.BackendAVX2 }

// Accelerate is the Apple Accelerate-framework-dispatched backend.
type Accelerate struct{ vectorOps }

func (Accelerate) Backend() hwcaps.DispatchBackend { return hwcaps.BackendAccelerate }
