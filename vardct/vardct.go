// Package vardct implements the lossy VarDCT encoding path: color
// conversion, per-channel 8x8 DCT, adaptive quantization driven by block
// activity, zigzag scanning, and entropy coding of the resulting runs.
package vardct

import (
	"errors"

	"github.com/cocosip/go-jxl/entropy"
	"github.com/cocosip/go-jxl/imageframe"
	"github.com/cocosip/go-jxl/kernels"
	"github.com/cocosip/go-jxl/options"
)

// ErrZeroDimensions mirrors imageframe's invariant: VarDCT refuses empty
// frames even if a caller bypassed imageframe.New's own validation.
var ErrZeroDimensions = errors.New("jxl/vardct: width and height must be positive")

// ErrInvalidChannelCount is returned for a channel count outside 1..=4.
var ErrInvalidChannelCount = errors.New("jxl/vardct: channels must be in 1..=4")

const blockSize = 8

// block is one 8x8 block's zigzag-ordered quantized coefficients, tagged
// with the channel it came from so passes can be reassembled per channel.
type block struct {
	channel int
	zigzag  [64]int16
}

// Encoder runs the VarDCT pipeline using a fixed kernel backend.
type Encoder struct {
	kernels kernels.Kernels
}

// New returns an Encoder bound to the process-wide selected kernel
// backend.
func New() *Encoder {
	return &Encoder{kernels: kernels.Current()}
}

// NewWithKernels returns an Encoder bound to an explicit backend, mainly
// for conformance testing across backends.
func NewWithKernels(k kernels.Kernels) *Encoder {
	return &Encoder{kernels: k}
}

// plane is one channel's samples as a padded float32 raster of size
// paddedW x paddedH (both multiples of blockSize).
type plane struct {
	data             []float32
	paddedW, paddedH int
}

func (e *Encoder) buildPlanes(frame *imageframe.ImageFrame) []plane {
	w, h, c := frame.Width, frame.Height, frame.Channels
	paddedW := ((w + blockSize - 1) / blockSize) * blockSize
	paddedH := ((h + blockSize - 1) / blockSize) * blockSize

	planes := make([]plane, c)
	for ch := 0; ch < c; ch++ {
		p := plane{paddedW: paddedW, paddedH: paddedH, data: make([]float32, paddedW*paddedH)}
		for y := 0; y < paddedH; y++ {
			sy := mirrorIndex(y, h)
			for x := 0; x < paddedW; x++ {
				sx := mirrorIndex(x, w)
				v, _ := frame.GetPixel(sx, sy, ch)
				p.data[y*paddedW+x] = float32(v) / 65535
			}
		}
		planes[ch] = p
	}
	return planes
}

// mirrorIndex reflects an out-of-range coordinate back into [0, n) by
// mirror extension, used to pad the right/bottom edges when dimensions
// are not multiples of 8.
func mirrorIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	if i < n {
		return i
	}
	over := i - n + 1
	mirrored := n - 1 - over
	if mirrored < 0 {
		return 0
	}
	return mirrored
}

// applyColorTransform replaces the first three planes' raw RGB samples
// with their XYB or YCbCr equivalents, per opts.ColorTransform. Planes
// beyond index 2 (alpha) pass through untouched.
func (e *Encoder) applyColorTransform(planes []plane, ct options.ColorTransform) {
	if len(planes) < 3 {
		return
	}
	if ct == options.ColorTransformYCbCr {
		y, cb, cr := e.kernels.RGBToYCbCr(planes[0].data, planes[1].data, planes[2].data)
		planes[0].data = y
		planes[1].data = cb
		planes[2].data = cr
		return
	}
	x, y, b := e.kernels.RGBToXYB(planes[0].data, planes[1].data, planes[2].data)
	planes[0].data = x
	planes[1].data = y
	planes[2].data = b
}

// Encode runs the full VarDCT pipeline and returns the pass-split entropy-
// coded output. Non-progressive encodes return exactly one pass; a
// progressive encode returns three (DC only, zigzag indices 1-10, and
// indices 11-63), each independently entropy coded.
func (e *Encoder) Encode(frame *imageframe.ImageFrame, opts *options.EncodingOptions) ([][]byte, error) {
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil, ErrZeroDimensions
	}
	if frame.Channels < 1 || frame.Channels > 4 {
		return nil, ErrInvalidChannelCount
	}

	distance := options.QualityToDistance(opts.Mode.Quality)
	planes := e.buildPlanes(frame)
	e.applyColorTransform(planes, opts.ColorTransform)

	lumaChannel := 1
	if opts.ColorTransform == options.ColorTransformYCbCr {
		lumaChannel = 0
	}

	var blocks []block
	for ch := range planes {
		p := &planes[ch]
		blocksX := p.paddedW / blockSize
		blocksY := p.paddedH / blockSize

		activities := make([]float32, 0, blocksX*blocksY)
		rawBlocks := make([][8][8]float32, 0, blocksX*blocksY)
		for by := 0; by < blocksY; by++ {
			for bx := 0; bx < blocksX; bx++ {
				var raw [8][8]float32
				for y := 0; y < blockSize; y++ {
					for x := 0; x < blockSize; x++ {
						raw[y][x] = p.data[(by*blockSize+y)*p.paddedW+(bx*blockSize+x)]
					}
				}
				rawBlocks = append(rawBlocks, raw)
				activities = append(activities, e.kernels.BlockActivity(raw))
			}
		}

		var actMean float32
		for _, a := range activities {
			actMean += a
		}
		if len(activities) > 0 {
			actMean /= float32(len(activities))
		}

		base := buildQuantMatrix(distance, ch, lumaChannel)
		for i, raw := range rawBlocks {
			coef := e.kernels.DCT2D(raw)
			qMatrix := modulateByActivity(base, activities[i], actMean)
			q := e.kernels.Quantize(coef, qMatrix)
			zz := e.kernels.ZigzagScan(q)
			blocks = append(blocks, block{channel: ch, zigzag: zz})
		}
	}

	if opts.Progressive {
		return encodePasses(blocks, opts.UseANS, [][2]int{{0, 0}, {1, 10}, {11, 63}})
	}
	return encodePasses(blocks, opts.UseANS, [][2]int{{0, 63}})
}

// encodePasses entropy-codes, for each (lo, hi) zigzag-index range, the
// zigzag-encoded coefficients at those indices across every block, in
// block order, and returns one coded buffer per range.
func encodePasses(blocks []block, useANS bool, ranges [][2]int) ([][]byte, error) {
	passes := make([][]byte, 0, len(ranges))
	for _, r := range ranges {
		lo, hi := r[0], r[1]
		symbols := make([]byte, 0, len(blocks)*(hi-lo+1)*2)
		for _, b := range blocks {
			for idx := lo; idx <= hi; idx++ {
				u := entropy.ZigZagEncode(int32(b.zigzag[idx]))
				symbols = entropy.AppendVarintBytes(symbols, u)
			}
		}
		coded, err := entropy.EncodePass(symbols, useANS)
		if err != nil {
			return nil, err
		}
		passes = append(passes, coded)
	}
	return passes, nil
}
