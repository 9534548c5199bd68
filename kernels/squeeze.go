package kernels

// squeezeHorizontalCore performs the horizontal squeeze lifting step over a
// width x height region with the given row stride. For each row, adjacent
// (even, odd) column pairs produce an average a = (e+o)>>1 in the left half
// of the row and a residual d = e-o in the right half. An odd region width
// leaves the trailing unpaired column unchanged, appended after the
// residual half.
func squeezeHorizontalCore(buf []int32, width, height, stride int) {
	half := width / 2
	row := make([]int32, width)
	for y := 0; y < height; y++ {
		base := y * stride
		copy(row, buf[base:base+width])

		for i := 0; i < half; i++ {
			e := row[2*i]
			o := row[2*i+1]
			buf[base+i] = (e + o) >> 1
			buf[base+half+i] = e - o
		}
		if width%2 == 1 {
			buf[base+half+half] = row[width-1]
		}
	}
}

// squeezeVerticalCore is the vertical analogue of squeezeHorizontalCore,
// operating along columns instead of rows.
func squeezeVerticalCore(buf []int32, width, height, stride int) {
	half := height / 2
	col := make([]int32, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			col[y] = buf[y*stride+x]
		}
		for i := 0; i < half; i++ {
			e := col[2*i]
			o := col[2*i+1]
			buf[i*stride+x] = (e + o) >> 1
			buf[(half+i)*stride+x] = e - o
		}
		if height%2 == 1 {
			buf[(half+half)*stride+x] = col[height-1]
		}
	}
}

// unsqueezeCombine recovers (e, o) from an average a = (e+o)>>1 (arithmetic,
// floor-toward-negative-infinity shift) and residual d = e-o. Because e+o
// and e-o always share parity, the low bit of d recovers the parity lost
// by the shift: sum = 2a + (d&1), then e=(sum+d)/2, o=(sum-d)/2 divide
// exactly since sum and d share parity.
func unsqueezeCombine(a, d int32) (e, o int32) {
	sum := 2*a + (d & 1)
	e = (sum + d) / 2
	o = (sum - d) / 2
	return
}

// unsqueezeHorizontalCore inverts squeezeHorizontalCore exactly.
func unsqueezeHorizontalCore(buf []int32, width, height, stride int) {
	half := width / 2
	row := make([]int32, width)
	for y := 0; y < height; y++ {
		base := y * stride
		copy(row, buf[base:base+width])

		for i := 0; i < half; i++ {
			e, o := unsqueezeCombine(row[i], row[half+i])
			buf[base+2*i] = e
			buf[base+2*i+1] = o
		}
		if width%2 == 1 {
			buf[base+width-1] = row[half+half]
		}
	}
}

// unsqueezeVerticalCore inverts squeezeVerticalCore exactly.
func unsqueezeVerticalCore(buf []int32, width, height, stride int) {
	half := height / 2
	col := make([]int32, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			col[y] = buf[y*stride+x]
		}
		for i := 0; i < half; i++ {
			e, o := unsqueezeCombine(col[i], col[half+i])
			buf[2*i*stride+x] = e
			buf[(2*i+1)*stride+x] = o
		}
		if height%2 == 1 {
			buf[(height-1)*stride+x] = col[half+half]
		}
	}
}
