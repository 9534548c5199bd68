package jxl

import (
	"math"

	"github.com/cocosip/go-jxl/bitstream"
	"github.com/cocosip/go-jxl/imageframe"
)

// defaultOrientation is the EXIF-style orientation value signaling "as
// stored, no rotation/flip", matching the container header field's
// documented default.
const defaultOrientation = 1

// writeContainerHeader writes the signature and the per-frame header
// fields: image size, bit depth, channel layout, alpha flag/mode, the
// color-encoding block, and orientation.
func writeContainerHeader(w *bitstream.Writer, frame *imageframe.ImageFrame) error {
	w.WriteSignature()
	w.WriteVarint(uint64(frame.Width))
	w.WriteVarint(uint64(frame.Height))
	w.WriteVarint(uint64(frame.BitsPerSample))
	w.WriteVarint(uint64(frame.Channels))

	w.WriteBit(frame.HasAlpha)
	w.WriteVarint(uint64(frame.AlphaMode))

	if err := writeColorEncoding(w, frame.ColorSpace); err != nil {
		return err
	}

	w.WriteVarint(uint64(defaultOrientation))
	return nil
}

// writeColorEncoding serializes a ColorSpace as a tagged block: a kind
// varint, then kind-specific payload for the custom variant (eight
// chromaticity floats plus the transfer function tag/gamma).
func writeColorEncoding(w *bitstream.Writer, cs imageframe.ColorSpace) error {
	switch cs.Kind {
	case imageframe.ColorSpaceSRGB, imageframe.ColorSpaceGrayscale:
		w.WriteVarint(uint64(cs.Kind))
		return nil
	case imageframe.ColorSpaceCustom:
		w.WriteVarint(uint64(cs.Kind))
		writeFloat32(w, cs.Primaries.RedX)
		writeFloat32(w, cs.Primaries.RedY)
		writeFloat32(w, cs.Primaries.GreenX)
		writeFloat32(w, cs.Primaries.GreenY)
		writeFloat32(w, cs.Primaries.BlueX)
		writeFloat32(w, cs.Primaries.BlueY)
		writeFloat32(w, cs.Primaries.WhiteX)
		writeFloat32(w, cs.Primaries.WhiteY)
		w.WriteVarint(uint64(cs.Transfer.Kind))
		if cs.Transfer.Kind == imageframe.TransferGamma {
			writeFloat32(w, cs.Transfer.Gamma)
		}
		return nil
	default:
		return ErrUnsupportedColorSpace
	}
}

func writeFloat32(w *bitstream.Writer, v float32) {
	w.WriteBits(math.Float32bits(v), 32)
}

// pathMarker tags which coding path produced the passes that follow.
type pathMarker bool

const (
	pathVarDCT  pathMarker = false
	pathModular pathMarker = true
)

// passMarkerByte precedes every pass's byte-length varint and payload; its
// fixed value lets a reader sanity-check alignment when scanning passes.
const passMarkerByte = 0x50

// writePasses writes each pass as a marker byte, a byte-length varint, and
// the pass's raw bytes, after first byte-aligning the writer (passes are
// opaque byte buffers and must start at a byte boundary).
func writePasses(w *bitstream.Writer, passes [][]byte) {
	w.Align()
	w.WriteVarint(uint64(len(passes)))
	for _, p := range passes {
		w.WriteByte(passMarkerByte)
		w.WriteVarint(uint64(len(p)))
		for _, b := range p {
			w.WriteByte(b)
		}
	}
}
