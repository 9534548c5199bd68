// Package jxl is the top-level orchestrator: it validates an ImageFrame,
// writes the container header, drives either the VarDCT or Modular coding
// path, optionally splits the result into progressive passes, and returns
// the finished byte stream with encoding statistics.
package jxl

import (
	"github.com/cocosip/go-jxl/bitstream"
	"github.com/cocosip/go-jxl/hwcaps"
	"github.com/cocosip/go-jxl/imageframe"
	"github.com/cocosip/go-jxl/kernels"
	"github.com/cocosip/go-jxl/modular"
	"github.com/cocosip/go-jxl/options"
	"github.com/cocosip/go-jxl/vardct"
)

// EncodingResult is the output of a successful Encode call.
type EncodingResult struct {
	Data  []byte
	Stats EncodingStats
}

// Encoder drives one encode at a time against a fixed option set. It holds
// no frame-specific state between calls and is safe to reuse.
type Encoder struct {
	options *options.EncodingOptions
	vardct  *vardct.Encoder
	modular *modular.Encoder
}

// New returns an Encoder configured with opts. opts is not copied;
// mutating it after New concurrently with Encode is the caller's
// responsibility to avoid. The kernel backend bound to the path encoders
// is chosen from opts.UseHardwareAcceleration/UseAccelerate: disabling
// hardware acceleration forces Scalar regardless of what the host
// supports, and disabling Accelerate specifically excludes it from
// automatic selection while still allowing SIMD backends.
func New(opts *options.EncodingOptions) *Encoder {
	k := selectKernels(opts)
	return &Encoder{
		options: opts,
		vardct:  vardct.NewWithKernels(k),
		modular: modular.NewWithKernels(k),
	}
}

func selectKernels(opts *options.EncodingOptions) kernels.Kernels {
	if opts == nil || !opts.UseHardwareAcceleration {
		return kernels.For(hwcaps.BackendScalar)
	}
	backend := hwcaps.SelectBackend(hwcaps.Detect(), opts.UseAccelerate)
	return kernels.For(backend)
}

// Encode validates frame, drives the coding path selected by e's options,
// and returns the encoded byte stream plus stats. Returns an *EncoderError
// on any failure.
func (e *Encoder) Encode(frame *imageframe.ImageFrame) (*EncodingResult, error) {
	if err := e.validate(frame); err != nil {
		return nil, err
	}

	meter := startMemMeter()

	w := bitstream.New()
	if err := writeContainerHeader(w, frame); err != nil {
		return nil, err
	}

	var passes [][]byte
	var err error
	if e.options.Mode.Kind == options.ModeLossless {
		w.WriteBit(bool(pathModular))
		passes, err = e.modular.Encode(frame, e.options)
	} else {
		w.WriteBit(bool(pathVarDCT))
		passes, err = e.vardct.Encode(frame, e.options)
	}
	if err != nil {
		return nil, wrapPathError(err)
	}
	meter.sample()

	writePasses(w, passes)
	data := w.Data()

	originalSize := len(frame.Data)
	stats := meter.finish(originalSize, len(data))
	return &EncodingResult{Data: data, Stats: stats}, nil
}

func (e *Encoder) validate(frame *imageframe.ImageFrame) error {
	if frame == nil {
		return newError(InvalidInput, "frame must not be nil")
	}
	if frame.Width <= 0 || frame.Height <= 0 {
		return ErrZeroDimensions
	}
	if frame.Channels < 1 || frame.Channels > 4 {
		return ErrInvalidChannelCount
	}
	want := frame.Width * frame.Height * frame.Channels * frame.PixelType.BytesPerSample()
	if len(frame.Data) != want {
		return ErrDataLengthMismatch
	}
	if e.options == nil {
		return newError(InvalidInput, "options must not be nil")
	}
	if err := e.options.Validate(); err != nil {
		return ErrInvalidOptions
	}
	return nil
}

// wrapPathError maps a path encoder's sentinel error onto the
// EncoderError taxonomy so callers see a consistent error type regardless
// of which path produced it.
func wrapPathError(err error) error {
	if ee, ok := err.(*EncoderError); ok {
		return ee
	}
	switch err {
	case vardct.ErrZeroDimensions, modular.ErrZeroDimensions:
		return ErrZeroDimensions
	case vardct.ErrInvalidChannelCount, modular.ErrInvalidChannelCount:
		return ErrInvalidChannelCount
	default:
		return newError(InternalError, err.Error())
	}
}
