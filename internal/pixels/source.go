// Package pixels exposes decoded images as tightly packed RGB or RGBA buffers
// suitable for raw transmission over the Kitty graphics protocol.
package pixels

import (
	"image"
	"strconv"

	"golang.org/x/image/draw"
)

// Protocol format codes (the f= key).
const (
	FormatRGB  = 24
	FormatRGBA = 32
)

// Kind identifies how a Source holds its bytes.
type Kind uint8

const (
	// RGBBorrowed shares the Pix slice of an *RGB image.
	RGBBorrowed Kind = iota
	// RGBABorrowed shares the Pix slice of an *image.NRGBA or opaque *image.RGBA.
	RGBABorrowed
	// RGBOwned holds a buffer converted from another layout.
	RGBOwned
)

func (k Kind) String() string {
	switch k {
	case RGBBorrowed:
		return "rgb"
	case RGBABorrowed:
		return "rgba"
	case RGBOwned:
		return "rgb (converted)"
	default:
		return "unknown"
	}
}

// Source is a read-only view of packed pixel data. Bytes never carry row
// padding: len(Bytes()) == Width()*Height()*BytesPerPixel().
type Source struct {
	kind   Kind
	pix    []byte
	width  int
	height int
}

// From returns a Source for img, borrowing its buffer when the layout is
// already packed RGB or straight-alpha RGBA and converting to RGB otherwise.
func From(img image.Image) Source {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	switch m := img.(type) {
	case *RGB:
		if pix, ok := packed(m.Pix, m.Stride, w, h, 3); ok {
			return Source{kind: RGBBorrowed, pix: pix, width: w, height: h}
		}
	case *image.NRGBA:
		if pix, ok := packed(m.Pix, m.Stride, w, h, 4); ok {
			return Source{kind: RGBABorrowed, pix: pix, width: w, height: h}
		}
	case *image.RGBA:
		// Premultiplied and straight alpha only agree when every pixel is opaque.
		if pix, ok := packed(m.Pix, m.Stride, w, h, 4); ok && m.Opaque() {
			return Source{kind: RGBABorrowed, pix: pix, width: w, height: h}
		}
	}

	return Source{kind: RGBOwned, pix: ToRGB(img).Pix, width: w, height: h}
}

// ToRGB draws img into a new packed RGB image anchored at the origin.
func ToRGB(img image.Image) *RGB {
	b := img.Bounds()
	dst := NewRGB(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}

// packed returns the first w*h*bpp bytes of pix when rows are contiguous.
func packed(pix []byte, stride, w, h, bpp int) ([]byte, bool) {
	n := w * h * bpp
	if stride != w*bpp || len(pix) < n {
		return nil, false
	}
	return pix[:n:n], true
}

func (s Source) Kind() Kind { return s.kind }

// Bytes returns the packed pixel buffer. Callers must not modify it.
func (s Source) Bytes() []byte { return s.pix }

func (s Source) Width() int { return s.width }

func (s Source) Height() int { return s.height }

// Owned reports whether the buffer was allocated by a conversion.
func (s Source) Owned() bool { return s.kind == RGBOwned }

// BytesPerPixel is 4 for RGBA sources and 3 otherwise.
func (s Source) BytesPerPixel() int {
	if s.kind == RGBABorrowed {
		return 4
	}
	return 3
}

// Format returns the protocol format code, 32 for RGBA and 24 for RGB.
func (s Source) Format() int {
	if s.kind == RGBABorrowed {
		return FormatRGBA
	}
	return FormatRGB
}

// FormatCode returns Format as the text sent in the f= key.
func (s Source) FormatCode() string {
	return strconv.Itoa(s.Format())
}
