package kernels

import "math"

// rgbToYCbCrCore converts BT.601 full-range RGB to YCbCr.
func rgbToYCbCrCore(r, g, b []float32) (y, cb, cr []float32) {
	n := len(r)
	y = make([]float32, n)
	cb = make([]float32, n)
	cr = make([]float32, n)
	for i := 0; i < n; i++ {
		rv, gv, bv := r[i], g[i], b[i]
		y[i] = 0.299*rv + 0.587*gv + 0.114*bv
		cb[i] = -0.168736*rv - 0.331264*gv + 0.5*bv + 0.5
		cr[i] = 0.5*rv - 0.418688*gv - 0.081312*bv + 0.5
	}
	return
}

// ycbcrToRGBCore inverts rgbToYCbCrCore.
func ycbcrToRGBCore(y, cb, cr []float32) (r, g, b []float32) {
	n := len(y)
	r = make([]float32, n)
	g = make([]float32, n)
	b = make([]float32, n)
	for i := 0; i < n; i++ {
		yv := y[i]
		cbv := cb[i] - 0.5
		crv := cr[i] - 0.5
		r[i] = yv + 1.402*crv
		g[i] = yv - 0.344136*cbv - 0.714136*crv
		b[i] = yv + 1.772*cbv
	}
	return
}

// xybMatrix is the fixed linear RGB->LMS-like mixing matrix used before the
// opsin non-linearity, broadly matching JPEG XL's opsin absorbance matrix
// in spirit: a mostly-diagonal mix with small cross terms so the transform
// is well-conditioned and invertible in closed form.
var xybMatrix = [3][3]float64{
	{0.3, 0.622, 0.078},
	{0.23, 0.692, 0.078},
	{0.24, 0.204, 0.556},
}

var xybMatrixInv = invert3x3(xybMatrix)

const xybBias = 0.00379307325527544933

func invert3x3(m [3][3]float64) [3][3]float64 {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	invDet := 1.0 / det

	return [3][3]float64{
		{(e*i - f*h) * invDet, (c*h - b*i) * invDet, (b*f - c*e) * invDet},
		{(f*g - d*i) * invDet, (a*i - c*g) * invDet, (c*d - a*f) * invDet},
		{(d*h - e*g) * invDet, (b*g - a*h) * invDet, (a*e - b*d) * invDet},
	}
}

// cubeRootLike applies the opsin-style non-linearity: cube root of the
// biased linear mixture, matching JPEG XL's use of a near-cube-root
// response for perceptual uniformity.
func cubeRootLike(v float64) float64 {
	biased := v + xybBias
	if biased < 0 {
		biased = 0
	}
	return math.Cbrt(biased)
}

func cubeLike(v float64) float64 {
	return v*v*v - xybBias
}

// rgbToXYBCore converts linear RGB to the XYB perceptual space: a fixed
// 3x3 linear mix followed by a per-component cube-root-like non-linearity,
// with X = (L'-M')/2, Y = (L'+M')/2, B = S' kept separate for chroma/luma
// separation the way JPEG XL's opsin space is structured.
func rgbToXYBCore(r, g, b []float32) (x, y, bChan []float32) {
	n := len(r)
	x = make([]float32, n)
	y = make([]float32, n)
	bChan = make([]float32, n)
	for i := 0; i < n; i++ {
		rv, gv, bv := float64(r[i]), float64(g[i]), float64(b[i])
		l := xybMatrix[0][0]*rv + xybMatrix[0][1]*gv + xybMatrix[0][2]*bv
		m := xybMatrix[1][0]*rv + xybMatrix[1][1]*gv + xybMatrix[1][2]*bv
		s := xybMatrix[2][0]*rv + xybMatrix[2][1]*gv + xybMatrix[2][2]*bv

		lp := cubeRootLike(l)
		mp := cubeRootLike(m)
		sp := cubeRootLike(s)

		x[i] = float32((lp - mp) / 2)
		y[i] = float32((lp + mp) / 2)
		bChan[i] = float32(sp)
	}
	return
}

// xybToRGBCore inverts rgbToXYBCore.
func xybToRGBCore(x, y, bChan []float32) (r, g, b []float32) {
	n := len(x)
	r = make([]float32, n)
	g = make([]float32, n)
	b = make([]float32, n)
	for i := 0; i < n; i++ {
		xv, yv := float64(x[i]), float64(y[i])
		lp := yv + xv
		mp := yv - xv
		sp := float64(bChan[i])

		l := cubeLike(lp)
		m := cubeLike(mp)
		s := cubeLike(sp)

		rv := xybMatrixInv[0][0]*l + xybMatrixInv[0][1]*m + xybMatrixInv[0][2]*s
		gv := xybMatrixInv[1][0]*l + xybMatrixInv[1][1]*m + xybMatrixInv[1][2]*s
		bv := xybMatrixInv[2][0]*l + xybMatrixInv[2][1]*m + xybMatrixInv[2][2]*s

		r[i] = float32(rv)
		g[i] = float32(gv)
		b[i] = float32(bv)
	}
	return
}
