package vardct

// buildQuantMatrix derives a per-channel base quantization step matrix
// from the encode distance (JPEG XL's "butteraugli distance" proxy
// computed by options.QualityToDistance): larger distance means coarser
// quantization. Every channel other than lumaChannel is treated as chroma
// and quantized more coarsely, matching how human vision is less
// sensitive to chroma detail. lumaChannel is 1 for XYB (X, Y, B) and 0 for
// YCbCr (Y, Cb, Cr).
func buildQuantMatrix(distance float32, channel, lumaChannel int) [8][8]float32 {
	var m [8][8]float32
	chromaFactor := float32(1.0)
	if channel != lumaChannel {
		chromaFactor = 2.0
	}
	for v := 0; v < 8; v++ {
		for u := 0; u < 8; u++ {
			// Frequency weight grows with (u+v): higher spatial frequencies
			// tolerate coarser quantization without a proportional increase in
			// perceived error.
			freqWeight := float32(1.0 + 0.25*float32(u+v))
			step := distance * chromaFactor * freqWeight * 0.15
			if step < 0.03 {
				step = 0.03
			}
			m[v][u] = step
		}
	}
	return m
}

// modulateByActivity scales a base quantization matrix by a per-block
// factor derived from how far this block's activity sits from the plane's
// mean activity: higher-activity (busier) blocks are quantized more
// coarsely than the mean, flatter blocks more finely, clamped to
// [0.5, 2.0]. A block whose activity equals the mean, and every block of a
// plane whose mean activity is zero (an all-constant plane), uses the base
// matrix unmodified; a constant block in a plane with busier blocks has
// activity 0 and gets the finest factor, 0.5.
func modulateByActivity(base [8][8]float32, activity, meanActivity float32) [8][8]float32 {
	factor := float32(1.0)
	if meanActivity > 1e-8 {
		factor = 1 + 0.5*(activity-meanActivity)/meanActivity
	}
	if factor < 0.5 {
		factor = 0.5
	}
	if factor > 2.0 {
		factor = 2.0
	}
	var out [8][8]float32
	for v := 0; v < 8; v++ {
		for u := 0; u < 8; u++ {
			out[v][u] = base[v][u] * factor
		}
	}
	return out
}
