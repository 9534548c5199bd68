package imageframe

import (
	"errors"
	"fmt"
)

// PixelType names the storage representation of one sample.
type PixelType int

const (
	PixelUint8 PixelType = iota
	PixelUint16
	PixelFloat32
)

// BytesPerSample returns the storage width of one sample in bytes.
func (p PixelType) BytesPerSample() int {
	switch p {
	case PixelUint8:
		return 1
	case PixelUint16:
		return 2
	case PixelFloat32:
		return 4
	default:
		return 0
	}
}

// AlphaMode names how an alpha channel, if present, composites.
type AlphaMode int

const (
	AlphaNone AlphaMode = iota
	AlphaStraight
	AlphaPremultiplied
)

var (
	// ErrZeroDimensions is returned when width or height is not positive.
	ErrZeroDimensions = errors.New("jxl/imageframe: width and height must be positive")
	// ErrInvalidChannelCount is returned when channels is outside 1..=4.
	ErrInvalidChannelCount = errors.New("jxl/imageframe: channels must be in 1..=4")
	// ErrChannelColorSpaceMismatch is returned when channel count is
	// inconsistent with the color space kind.
	ErrChannelColorSpaceMismatch = errors.New("jxl/imageframe: channel count inconsistent with color space")
	// ErrAlphaModeMismatch is returned when alphaMode and hasAlpha disagree.
	ErrAlphaModeMismatch = errors.New("jxl/imageframe: alphaMode=none iff hasAlpha=false")
	// ErrDataLengthMismatch is returned when the data buffer length does not
	// match width*height*channels*bytesPerSample.
	ErrDataLengthMismatch = errors.New("jxl/imageframe: data length does not match frame geometry")
	// ErrOutOfBounds is returned by pixel accessors given an out-of-range
	// coordinate or channel.
	ErrOutOfBounds = errors.New("jxl/imageframe: pixel coordinate out of bounds")
)

// ImageFrame is the pixel container passed to the encoder. Construct it
// with New, which validates the invariants below; callers may also mutate
// a frame in place (e.g. via SetPixel) before encoding.
//
// Invariants: AlphaMode == AlphaNone iff HasAlpha == false. Channels is
// consistent with ColorSpace's kind (grayscale => 1 or 2 channels; RGB-like
// => 3 or 4). Data is exactly Width*Height*Channels*BytesPerSample bytes.
type ImageFrame struct {
	Width, Height int
	Channels      int
	PixelType     PixelType
	BitsPerSample int
	ColorSpace    ColorSpace
	HasAlpha      bool
	AlphaMode     AlphaMode
	Data          []byte
}

// New constructs and validates an ImageFrame. bitsPerSample defaults to the
// full range of pixelType's storage width when 0 is passed.
func New(width, height, channels int, pixelType PixelType, colorSpace ColorSpace, bitsPerSample int, hasAlpha bool, alphaMode AlphaMode) (*ImageFrame, error) {
	if bitsPerSample == 0 {
		bitsPerSample = pixelType.BytesPerSample() * 8
	}
	f := &ImageFrame{
		Width:         width,
		Height:        height,
		Channels:      channels,
		PixelType:     pixelType,
		BitsPerSample: bitsPerSample,
		ColorSpace:    colorSpace,
		HasAlpha:      hasAlpha,
		AlphaMode:     alphaMode,
	}
	f.Data = make([]byte, width*height*channels*pixelType.BytesPerSample())
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks every ImageFrame invariant named in the data model.
func (f *ImageFrame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return ErrZeroDimensions
	}
	if f.Channels < 1 || f.Channels > 4 {
		return ErrInvalidChannelCount
	}
	if (f.AlphaMode == AlphaNone) != !f.HasAlpha {
		return ErrAlphaModeMismatch
	}
	switch f.ColorSpace.Kind {
	case ColorSpaceGrayscale:
		if f.Channels != 1 && f.Channels != 2 {
			return ErrChannelColorSpaceMismatch
		}
	default:
		if f.Channels != 3 && f.Channels != 4 {
			return ErrChannelColorSpaceMismatch
		}
	}
	want := f.Width * f.Height * f.Channels * f.PixelType.BytesPerSample()
	if len(f.Data) != want {
		return ErrDataLengthMismatch
	}
	if f.BitsPerSample <= 0 || f.BitsPerSample > f.PixelType.BytesPerSample()*8 {
		return fmt.Errorf("jxl/imageframe: bitsPerSample %d exceeds storage width for %v", f.BitsPerSample, f.PixelType)
	}
	return nil
}

func (f *ImageFrame) sampleIndex(x, y, channel int) (int, error) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height || channel < 0 || channel >= f.Channels {
		return 0, ErrOutOfBounds
	}
	return (y*f.Width+x)*f.Channels + channel, nil
}

// GetPixel returns the sample at (x, y, channel) scaled to a u16 quantity
// regardless of the frame's storage pixelType.
func (f *ImageFrame) GetPixel(x, y, channel int) (uint16, error) {
	idx, err := f.sampleIndex(x, y, channel)
	if err != nil {
		return 0, err
	}
	switch f.PixelType {
	case PixelUint8:
		return uint16(f.Data[idx]) * 257, nil // scale [0,255] -> [0,65535]
	case PixelUint16:
		off := idx * 2
		return uint16(f.Data[off]) | uint16(f.Data[off+1])<<8, nil
	case PixelFloat32:
		off := idx * 4
		bits := uint32(f.Data[off]) | uint32(f.Data[off+1])<<8 | uint32(f.Data[off+2])<<16 | uint32(f.Data[off+3])<<24
		v := float32FromBits(bits)
		return floatToU16(v), nil
	default:
		return 0, ErrOutOfBounds
	}
}

// SetPixel writes value (a u16 quantity) into the sample at (x, y,
// channel), converting to the frame's storage pixelType.
func (f *ImageFrame) SetPixel(x, y, channel int, value uint16) error {
	idx, err := f.sampleIndex(x, y, channel)
	if err != nil {
		return err
	}
	switch f.PixelType {
	case PixelUint8:
		f.Data[idx] = byte(value / 257)
	case PixelUint16:
		off := idx * 2
		f.Data[off] = byte(value)
		f.Data[off+1] = byte(value >> 8)
	case PixelFloat32:
		off := idx * 4
		v := u16ToFloat(value)
		bits := float32Bits(v)
		f.Data[off] = byte(bits)
		f.Data[off+1] = byte(bits >> 8)
		f.Data[off+2] = byte(bits >> 16)
		f.Data[off+3] = byte(bits >> 24)
	default:
		return ErrOutOfBounds
	}
	return nil
}
