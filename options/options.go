// Package options defines the encoder's configuration surface: mode,
// effort tier, entropy coder selection, and hardware-acceleration toggles.
package options

import (
	"errors"
	"runtime"
)

// ModeKind tags the variant of Mode.
type ModeKind int

const (
	ModeLossless ModeKind = iota
	ModeLossy
)

// Mode is a tagged variant: lossless carries no payload, lossy carries a
// quality value in 1..=100.
type Mode struct {
	Kind    ModeKind
	Quality uint8
}

// Lossless returns the lossless Mode.
func Lossless() Mode { return Mode{Kind: ModeLossless} }

// LossyQuality returns a lossy Mode at the given quality (1..=100).
func LossyQuality(quality uint8) Mode { return Mode{Kind: ModeLossy, Quality: quality} }

// Effort names a compute/quality knob from fastest to slowest.
type Effort int

const (
	EffortLightning Effort = iota
	EffortFalcon
	EffortCheetah
	EffortHare
	EffortSquirrel
	EffortKitten
)

func (e Effort) String() string {
	switch e {
	case EffortLightning:
		return "lightning"
	case EffortFalcon:
		return "falcon"
	case EffortCheetah:
		return "cheetah"
	case EffortHare:
		return "hare"
	case EffortSquirrel:
		return "squirrel"
	case EffortKitten:
		return "kitten"
	default:
		return "unknown"
	}
}

// SqueezeLevels returns how many Modular squeeze levels this effort tier
// requests: lightning and falcon none, cheetah and hare 1, squirrel 2,
// kitten 3. The Modular encoder caps the request by image size.
func (e Effort) SqueezeLevels() int {
	switch e {
	case EffortLightning, EffortFalcon:
		return 0
	case EffortCheetah, EffortHare:
		return 1
	case EffortSquirrel:
		return 2
	case EffortKitten:
		return 3
	default:
		return 0
	}
}

// ColorTransform selects the VarDCT path's color space, per spec.md §4.4
// step 2: either perceptual XYB or plain BT.601 YCbCr.
type ColorTransform int

const (
	ColorTransformXYB ColorTransform = iota
	ColorTransformYCbCr
)

// EncodingOptions is the full configuration surface for a JXLEncoder. Build
// one with New (or a preset) and chain With* setters; call Validate before
// use if constructed by hand.
type EncodingOptions struct {
	Mode                    Mode
	Effort                  Effort
	Progressive             bool
	UseANS                  bool
	UseHardwareAcceleration bool
	UseAccelerate           bool
	ColorTransform          ColorTransform
}

// New returns the documented default options: lossless, squirrel effort,
// progressive off, ANS on, hardware acceleration on, Accelerate gated by
// platform, XYB color transform.
func New() *EncodingOptions {
	return &EncodingOptions{
		Mode:                    Lossless(),
		Effort:                  EffortSquirrel,
		Progressive:             false,
		UseANS:                  true,
		UseHardwareAcceleration: true,
		UseAccelerate:           runtime.GOOS == "darwin",
		ColorTransform:          ColorTransformXYB,
	}
}

// Fast returns the "fast" preset: lossy quality 75, falcon effort.
func Fast() *EncodingOptions {
	return New().WithMode(LossyQuality(75)).WithEffort(EffortFalcon)
}

// HighQuality returns the "highQuality" preset: lossy quality 95, kitten
// effort.
func HighQuality() *EncodingOptions {
	return New().WithMode(LossyQuality(95)).WithEffort(EffortKitten)
}

// LosslessPreset returns the "lossless" preset: lossless mode, squirrel
// effort.
func LosslessPreset() *EncodingOptions {
	return New().WithMode(Lossless()).WithEffort(EffortSquirrel)
}

func (o *EncodingOptions) WithMode(m Mode) *EncodingOptions {
	o.Mode = m
	return o
}

func (o *EncodingOptions) WithEffort(e Effort) *EncodingOptions {
	o.Effort = e
	return o
}

func (o *EncodingOptions) WithProgressive(p bool) *EncodingOptions {
	o.Progressive = p
	return o
}

func (o *EncodingOptions) WithANS(use bool) *EncodingOptions {
	o.UseANS = use
	return o
}

func (o *EncodingOptions) WithHardwareAcceleration(use bool) *EncodingOptions {
	o.UseHardwareAcceleration = use
	return o
}

func (o *EncodingOptions) WithAccelerate(use bool) *EncodingOptions {
	o.UseAccelerate = use
	return o
}

func (o *EncodingOptions) WithColorTransform(ct ColorTransform) *EncodingOptions {
	o.ColorTransform = ct
	return o
}

var (
	// ErrInvalidQuality is returned by Validate when a lossy Mode's quality
	// is outside 1..=100.
	ErrInvalidQuality = errors.New("jxl/options: quality must be in 1..=100")
	// ErrInvalidEffort is returned by Validate for an out-of-range Effort.
	ErrInvalidEffort = errors.New("jxl/options: effort tier out of range")
)

// Validate checks the option set for internal consistency.
func (o *EncodingOptions) Validate() error {
	if o.Mode.Kind == ModeLossy && (o.Mode.Quality < 1 || o.Mode.Quality > 100) {
		return ErrInvalidQuality
	}
	if o.Effort < EffortLightning || o.Effort > EffortKitten {
		return ErrInvalidEffort
	}
	return nil
}
