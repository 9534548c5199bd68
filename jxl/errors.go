package jxl

import "fmt"

// EncoderErrorKind classifies why Encode failed.
type EncoderErrorKind int

const (
	// InvalidInput means the frame or options failed validation.
	InvalidInput EncoderErrorKind = iota
	// Unsupported means the request is well-formed but not implemented
	// (e.g. an unsupported color space for the chosen path).
	Unsupported
	// InternalError means an invariant the encoder relies on was violated.
	InternalError
	// OutOfMemory means a size/memory guard rejected the request before
	// attempting to encode it.
	OutOfMemory
)

func (k EncoderErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case Unsupported:
		return "Unsupported"
	case InternalError:
		return "InternalError"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// EncoderError is the error type returned by Encoder.Encode.
type EncoderError struct {
	Kind    EncoderErrorKind
	Message string
}

func (e *EncoderError) Error() string {
	return fmt.Sprintf("jxl: %s: %s", e.Kind, e.Message)
}

func newError(kind EncoderErrorKind, message string) *EncoderError {
	return &EncoderError{Kind: kind, Message: message}
}

var (
	// ErrZeroDimensions is returned when the frame has non-positive width
	// or height.
	ErrZeroDimensions = newError(InvalidInput, "width and height must be positive")
	// ErrInvalidChannelCount is returned when channels is outside 1..=4.
	ErrInvalidChannelCount = newError(InvalidInput, "channels must be in 1..=4")
	// ErrDataLengthMismatch is returned when the frame's data buffer does
	// not match its declared geometry.
	ErrDataLengthMismatch = newError(InvalidInput, "data length does not match frame geometry")
	// ErrInvalidOptions is returned when the supplied EncodingOptions fail
	// validation.
	ErrInvalidOptions = newError(InvalidInput, "encoding options failed validation")
	// ErrUnsupportedColorSpace is returned when frame.ColorSpace.Kind is not
	// one this encoder's color-encoding block can signal.
	ErrUnsupportedColorSpace = newError(Unsupported, "color space not supported")
)
