package modular

// activeDimensionAfterSqueeze returns the size of the active region along
// an axis after one squeeze step halves it, matching the floor-division
// width/2 split kernels.SqueezeHorizontal/Vertical use for their average
// (coarse) half. Adapted from jpeg2000/wavelet's splitLengths/
// nextLowpassWindow multilevel subband bookkeeping: that code tracks an
// LL subband's shrinking size across decomposition levels, including a
// same-parity/opposite-parity branch driven by a tile-component origin.
// Squeeze has no such origin (it always starts at (0,0) and its coarse
// half is always the literal floor half, never the ceiling), so only the
// floor branch applies here.
func activeDimensionAfterSqueeze(n int) int {
	return n / 2
}

// squeezeLevelsFor caps the requested squeeze level count so the active
// region never shrinks below 1 pixel in the dimension being squeezed,
// walking the same level-by-level shrink loop jpeg2000/wavelet's
// LLDimensionsWithParity uses to track a multilevel LL subband, adapted
// here to alternate which single axis shrinks per level (squeeze peels
// one axis at a time) rather than shrinking both axes together.
func squeezeLevelsFor(requested, w, h int) int {
	activeW, activeH := w, h
	levels := 0
	for levels < requested {
		if activeW <= 1 && activeH <= 1 {
			break
		}
		horizontal := levels%2 == 0
		if horizontal {
			if activeW < 2 {
				break
			}
			activeW = activeDimensionAfterSqueeze(activeW)
		} else {
			if activeH < 2 {
				break
			}
			activeH = activeDimensionAfterSqueeze(activeH)
		}
		levels++
	}
	return levels
}
