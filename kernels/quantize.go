package kernels

import "math"

// quantizeCore divides block by qMatrix element-wise with round-half-away-
// from-zero rounding, producing an exact i16 result.
func quantizeCore(block [8][8]float32, qMatrix [8][8]float32) [8][8]int16 {
	var out [8][8]int16
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			out[y][x] = roundHalfAwayFromZero(block[y][x] / qMatrix[y][x])
		}
	}
	return out
}

func roundHalfAwayFromZero(v float32) int16 {
	if v >= 0 {
		return int16(math.Floor(float64(v) + 0.5))
	}
	return int16(math.Ceil(float64(v) - 0.5))
}

// zigzagOrder lists, for each output position, the (row, col) of the
// standard JPEG 8x8 zigzag scan: DC first, AC(7,7) last.
var zigzagOrder = [64][2]int{
	{0, 0}, {0, 1}, {1, 0}, {2, 0}, {1, 1}, {0, 2}, {0, 3}, {1, 2},
	{2, 1}, {3, 0}, {4, 0}, {3, 1}, {2, 2}, {1, 3}, {0, 4}, {0, 5},
	{1, 4}, {2, 3}, {3, 2}, {4, 1}, {5, 0}, {6, 0}, {5, 1}, {4, 2},
	{3, 3}, {2, 4}, {1, 5}, {0, 6}, {0, 7}, {1, 6}, {2, 5}, {3, 4},
	{4, 3}, {5, 2}, {6, 1}, {7, 0}, {7, 1}, {6, 2}, {5, 3}, {4, 4},
	{3, 5}, {2, 6}, {1, 7}, {2, 7}, {3, 6}, {4, 5}, {5, 4}, {6, 3},
	{7, 2}, {7, 3}, {6, 4}, {5, 5}, {4, 6}, {3, 7}, {4, 7}, {5, 6},
	{6, 5}, {7, 4}, {7, 5}, {6, 6}, {5, 7}, {6, 7}, {7, 6}, {7, 7},
}

// zigzagScanCore reorders an 8x8 block into the standard zigzag sequence.
func zigzagScanCore(block [8][8]int16) [64]int16 {
	var out [64]int16
	for i, pos := range zigzagOrder {
		out[i] = block[pos[0]][pos[1]]
	}
	return out
}

// blockActivityCore returns Sum((block-mean)^2) over the 64 samples.
func blockActivityCore(block [8][8]float32) float32 {
	var sum float32
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sum += block[y][x]
		}
	}
	mean := sum / 64
	var activity float32
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			d := block[y][x] - mean
			activity += d * d
		}
	}
	return activity
}
