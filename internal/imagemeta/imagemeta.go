// Package imagemeta sniffs intrinsic pixel dimensions out of raw image
// bytes and computes aspect-preserving render sizes. It performs no I/O and
// no full decode; only the fixed header offsets of each format are read.
package imagemeta

import (
	"encoding/binary"
	"math"
)

// Supported format names.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
)

// Render size bounds in pixels.
const (
	// MaxIntrinsicWidth caps the render width taken from an image header
	// when no explicit size hint is given.
	MaxIntrinsicWidth = 400

	// DefaultWidth is used when neither hints nor intrinsic dimensions
	// are available.
	DefaultWidth = 200

	// fallbackAspect is the height/width ratio applied when no aspect
	// ratio can be derived (4:3 landscape).
	fallbackAspect = 0.75
)

// Info describes a sniffed image: its format and intrinsic dimensions.
// Width and Height are 0 when the header did not yield them.
type Info struct {
	Format string
	Width  int
	Height int
}

// Hints carries optional render dimensions parsed from a URL fragment.
// Zero means unset.
type Hints struct {
	Width  int
	Height int
}

// Size is a resolved render size. Width is always set after Resolve;
// Height may be 0 until WithFallbackHeight is applied.
type Size struct {
	Width  int
	Height int
}

// Sniff detects the image format and intrinsic dimensions from raw bytes.
//
//   - PNG: 4-byte magic at offset 0, width/height as big-endian 32-bit
//     integers at offsets 16 and 20 (inside the IHDR chunk).
//   - JPEG: marker segments scanned from offset 2 until a baseline (0xC0)
//     or progressive (0xC2) start-of-frame; height/width are big-endian
//     16-bit values at segment offsets +5 and +7. A missing start-of-frame
//     leaves dimensions unset, which is not an error.
//   - GIF: width/height as little-endian 16-bit values at offsets 6 and 8.
//
// Unrecognized bytes default the format to PNG with no dimensions; the
// final format decision belongs to the caller's content-type and extension
// hints, not to the sniffer.
func Sniff(data []byte) Info {
	switch {
	case len(data) >= 24 && data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47:
		return Info{
			Format: FormatPNG,
			Width:  int(binary.BigEndian.Uint32(data[16:20])),
			Height: int(binary.BigEndian.Uint32(data[20:24])),
		}

	case len(data) >= 4 && data[0] == 0xFF && data[1] == 0xD8:
		info := Info{Format: FormatJPEG}
		for i := 2; i+9 < len(data); {
			if data[i] != 0xFF {
				break
			}
			marker := data[i+1]
			if marker == 0xC0 || marker == 0xC2 {
				info.Height = int(binary.BigEndian.Uint16(data[i+5 : i+7]))
				info.Width = int(binary.BigEndian.Uint16(data[i+7 : i+9]))
				break
			}
			segLen := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
			i += 2 + segLen
		}
		return info

	case len(data) >= 10 && data[0] == 'G' && data[1] == 'I' && data[2] == 'F':
		return Info{
			Format: FormatGIF,
			Width:  int(binary.LittleEndian.Uint16(data[6:8])),
			Height: int(binary.LittleEndian.Uint16(data[8:10])),
		}
	}

	return Info{Format: FormatPNG}
}

// Resolve computes the render size from optional hints and sniffed
// intrinsic dimensions. Hints always win: when both are present they are
// used verbatim. A single hint is completed from the intrinsic aspect
// ratio when one is known. Without hints the intrinsic width is clamped to
// MaxIntrinsicWidth, and without any information DefaultWidth is used.
//
// The returned Height may still be 0 (hint-only input with no known
// aspect); callers apply WithFallbackHeight before handing dimensions
// downstream.
func Resolve(hints Hints, intrinsic Info) Size {
	aspect := 0.0
	if intrinsic.Width > 0 && intrinsic.Height > 0 {
		aspect = float64(intrinsic.Width) / float64(intrinsic.Height)
	}

	switch {
	case hints.Width > 0 && hints.Height > 0:
		return Size{Width: hints.Width, Height: hints.Height}

	case hints.Width > 0:
		s := Size{Width: hints.Width}
		if aspect > 0 {
			s.Height = atLeastOne(float64(hints.Width) / aspect)
		}
		return s

	case hints.Height > 0:
		s := Size{Height: hints.Height}
		if aspect > 0 {
			s.Width = atLeastOne(float64(hints.Height) * aspect)
		} else {
			s.Width = DefaultWidth
		}
		return s

	case intrinsic.Width > 0:
		w := intrinsic.Width
		if w > MaxIntrinsicWidth {
			w = MaxIntrinsicWidth
		}
		s := Size{Width: w}
		if aspect > 0 {
			s.Height = atLeastOne(float64(w) / aspect)
		}
		return s
	}

	return Size{Width: DefaultWidth}
}

// WithFallbackHeight fills a missing height using the fixed 4:3 fallback
// aspect ratio. Dimensions are never passed downstream with height unset.
func (s Size) WithFallbackHeight() Size {
	if s.Height == 0 {
		s.Height = atLeastOne(float64(s.Width) * fallbackAspect)
	}
	return s
}

// atLeastOne rounds to the nearest integer, clamping to a minimum of 1.
func atLeastOne(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}
