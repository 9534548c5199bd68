package kernels

import "github.com/cocosip/go-jxl/hwcaps"

// Scalar is the reference backend. It defines numerical truth for the
// conformance contract: every other backend must agree with Scalar within
// the tolerance documented on each Kernels method.
type Scalar struct{}

func (Scalar) Backend() hwcaps.DispatchBackend { return hwcaps.BackendScalar }

func (Scalar) DCT2D(block [8][8]float32) [8][8]float32  { return dctDirect(block) }
func (Scalar) IDCT2D(coef [8][8]float32) [8][8]float32  { return idctDirect(coef) }
func (Scalar) RGBToYCbCr(r, g, b []float32) (y, cb, cr []float32) { return rgbToYCbCrCore(r, g, b) }
func (Scalar) YCbCrToRGB(y, cb, cr []float32) (r, g, b []float32) { return ycbcrToRGBCore(y, cb, cr) }
func (Scalar) RGBToXYB(r, g, b []float32) (x, y, bChan []float32) { return rgbToXYBCore(r, g, b) }
func (Scalar) XYBToRGB(x, y, bChan []float32) (r, g, b []float32) { return xybToRGBCore(x, y, bChan) }
func (Scalar) Quantize(block, qMatrix [8][8]float32) [8][8]int16  { return quantizeCore(block, qMatrix) }
func (Scalar) ZigzagScan(block [8][8]int16) [64]int16             { return zigzagScanCore(block) }
func (Scalar) PredictMED(data []uint16, w, h int) []int32         { return predictMEDCore(data, w, h) }
func (Scalar) ForwardRCT(r, g, b []uint16) (y, co, cg []int32)    { return forwardRCTCore(r, g, b) }
func (Scalar) InverseRCT(y, co, cg []int32) (r, g, b []uint16)    { return inverseRCTCore(y, co, cg) }
func (Scalar) SqueezeHorizontal(buf []int32, width, height, stride int) {
	squeezeHorizontalCore(buf, width, height, stride)
}
func (Scalar) SqueezeVertical(buf []int32, width, height, stride int) {
	squeezeVerticalCore(buf, width, height, stride)
}
func (Scalar) UnsqueezeHorizontal(buf []int32, width, height, stride int) {
	unsqueezeHorizontalCore(buf, width, height, stride)
}
func (Scalar) UnsqueezeVertical(buf []int32, width, height, stride int) {
	unsqueezeVerticalCore(buf, width, height, stride)
}

func (Scalar) BlockActivity(block [8][8]float32) float32 { return blockActivityCore(block) }
