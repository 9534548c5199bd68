package kernels

// predictMEDCore computes MED (median edge detector) predictor residuals
// over a raster image of width w, height h. For pixel (x,y): N = above,
// W = left, NW = above-left (0 if out of bounds). The predictor is
// med(W, N, W+N-NW): if NW >= max(W,N) predict min(W,N); if NW <= min(W,N)
// predict max(W,N); otherwise predict W+N-NW. The first pixel predicts 0;
// the first row predicts from W only; the first column from N only.
func predictMEDCore(data []uint16, w, h int) []int32 {
	residuals := make([]int32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			actual := int32(data[idx])

			var west, north, northwest int32
			haveWest := x > 0
			haveNorth := y > 0
			if haveWest {
				west = int32(data[idx-1])
			}
			if haveNorth {
				north = int32(data[idx-w])
			}
			if haveWest && haveNorth {
				northwest = int32(data[idx-w-1])
			}

			var predicted int32
			switch {
			case x == 0 && y == 0:
				predicted = 0
			case y == 0:
				predicted = west
			case x == 0:
				predicted = north
			default:
				predicted = medPredict(west, north, northwest)
			}
			residuals[idx] = actual - predicted
		}
	}
	return residuals
}

// medPredict implements the MED/LOCO-I predictor: median(a, b, a+b-c).
func medPredict(a, b, c int32) int32 {
	switch {
	case c >= max32(a, b):
		return min32(a, b)
	case c <= min32(a, b):
		return max32(a, b)
	default:
		return a + b - c
	}
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
