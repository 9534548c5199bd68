// Package modular implements the lossless Modular encoding path: the
// YCoCg-R reversible color transform, optional squeeze (wavelet-like
// lifting) levels, MED prediction of the resulting coarse band, and
// entropy coding of residuals.
package modular

import (
	"errors"

	"github.com/cocosip/go-jxl/entropy"
	"github.com/cocosip/go-jxl/imageframe"
	"github.com/cocosip/go-jxl/kernels"
	"github.com/cocosip/go-jxl/options"
)

// ErrZeroDimensions mirrors imageframe's invariant.
var ErrZeroDimensions = errors.New("jxl/modular: width and height must be positive")

// ErrInvalidChannelCount is returned for a channel count outside 1..=4.
var ErrInvalidChannelCount = errors.New("jxl/modular: channels must be in 1..=4")

// Encoder runs the Modular pipeline using a fixed kernel backend.
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

// channelPlan is one channel's fully-squeezed buffer plus the bookkeeping
// needed to split it into a coarse (low-frequency) band and the detail
// bands peeled off at each squeeze step.
type channelPlan struct {
	coarse  []int32 // activeW x activeH, row-major, stride == activeW
	coarseW int
	coarseH int
	details [][]int32 // one slice per squeeze step, finest first
}

// Encode runs the full Modular pipeline and returns the pass-split
// entropy-coded output. Non-progressive encodes return exactly one pass;
// a progressive encode returns two (the coarsest squeeze level's
// MED-predicted band, then every detail band peeled off along the way).
func (e *Encoder) Encode(frame *imageframe.ImageFrame, opts *options.EncodingOptions) ([][]byte, error) {
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil, ErrZeroDimensions
	}
	if frame.Channels < 1 || frame.Channels > 4 {
		return nil, ErrInvalidChannelCount
	}

	buffers := e.buildChannelBuffers(frame)
	levels := squeezeLevelsFor(opts.Effort.SqueezeLevels(), frame.Width, frame.Height)

	plans := make([]channelPlan, len(buffers))
	for i, buf := range buffers {
		plans[i] = e.squeezeChannel(buf, frame.Width, frame.Height, levels)
	}

	coarseSymbols := make([]byte, 0, 1024)
	detailSymbols := make([]byte, 0, 1024)
	for _, p := range plans {
		residuals := predictMEDSigned(p.coarse, p.coarseW, p.coarseH)
		appendZigZagVarints(&coarseSymbols, residuals)
		for _, d := range p.details {
			appendZigZagVarints(&detailSymbols, d)
		}
	}

	if opts.Progressive {
		passes := make([][]byte, 2)
		coarsePass, err := entropy.EncodePass(coarseSymbols, opts.UseANS)
		if err != nil {
			return nil, err
		}
		detailPass, err := entropy.EncodePass(detailSymbols, opts.UseANS)
		if err != nil {
			return nil, err
		}
		passes[0] = coarsePass
		passes[1] = detailPass
		return passes, nil
	}

	combined := make([]byte, 0, len(coarseSymbols)+len(detailSymbols))
	combined = append(combined, coarseSymbols...)
	combined = append(combined, detailSymbols...)
	pass, err := entropy.EncodePass(combined, opts.UseANS)
	if err != nil {
		return nil, err
	}
	return [][]byte{pass}, nil
}

// buildChannelBuffers reads every channel of frame into a row-major int32
// buffer. The first three channels of a 3+ channel frame are jointly
// converted through the reversible color transform; any remaining channel
// (e.g. alpha) is carried through unchanged.
func (e *Encoder) buildChannelBuffers(frame *imageframe.ImageFrame) [][]int32 {
	w, h, c := frame.Width, frame.Height, frame.Channels
	n := w * h
	buffers := make([][]int32, c)

	startExtra := 0
	if c >= 3 {
		r := make([]uint16, n)
		g := make([]uint16, n)
		b := make([]uint16, n)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				idx := y*w + x
				rv, _ := frame.GetPixel(x, y, 0)
				gv, _ := frame.GetPixel(x, y, 1)
				bv, _ := frame.GetPixel(x, y, 2)
				r[idx], g[idx], b[idx] = rv, gv, bv
			}
		}
		yChan, co, cg := e.kernels.ForwardRCT(r, g, b)
		buffers[0], buffers[1], buffers[2] = yChan, co, cg
		startExtra = 3
	}

	for ch := startExtra; ch < c; ch++ {
		buf := make([]int32, n)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v, _ := frame.GetPixel(x, y, ch)
				buf[y*w+x] = int32(v)
			}
		}
		buffers[ch] = buf
	}
	return buffers
}

// squeezeChannel applies `levels` alternating horizontal/vertical squeeze
// steps to buf (stride == w throughout, since squeeze rewrites its active
// region in place without changing the buffer's overall size), peeling off
// one detail band per step and returning the final coarse region as its
// own contiguous, densely-strided copy.
func (e *Encoder) squeezeChannel(buf []int32, w, h, levels int) channelPlan {
	activeW, activeH := w, h
	var details [][]int32

	for level := 0; level < levels; level++ {
		horizontal := level%2 == 0
		if horizontal {
			e.kernels.SqueezeHorizontal(buf, activeW, activeH, w)
			half := activeW / 2
			odd := activeW%2 == 1
			detail := make([]int32, 0, half*activeH)
			for y := 0; y < activeH; y++ {
				base := y * w
				detail = append(detail, buf[base+half:base+half+half]...)
				if odd {
					detail = append(detail, buf[base+2*half])
				}
			}
			details = append(details, detail)
			activeW = half
		} else {
			e.kernels.SqueezeVertical(buf, activeW, activeH, w)
			half := activeH / 2
			odd := activeH%2 == 1
			detail := make([]int32, 0, half*activeW)
			for y := half; y < half+half; y++ {
				base := y * w
				detail = append(detail, buf[base:base+activeW]...)
			}
			if odd {
				detail = append(detail, buf[(half+half)*w:(half+half)*w+activeW]...)
			}
			details = append(details, detail)
			activeH = half
		}
	}

	coarse := make([]int32, activeW*activeH)
	for y := 0; y < activeH; y++ {
		copy(coarse[y*activeW:(y+1)*activeW], buf[y*w:y*w+activeW])
	}

	return channelPlan{coarse: coarse, coarseW: activeW, coarseH: activeH, details: details}
}

// appendZigZagVarints zig-zag encodes each signed residual and appends its
// LEB128 varint byte encoding to dst.
func appendZigZagVarints(dst *[]byte, residuals []int32) {
	for _, v := range residuals {
		*dst = entropy.AppendVarintBytes(*dst, entropy.ZigZagEncode(v))
	}
}
