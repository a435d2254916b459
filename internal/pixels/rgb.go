package pixels

import (
	"image"
	"image/color"
)

// RGB is an in-memory image of 8-bit red, green, blue samples without alpha.
// Pix holds R, G, B bytes per pixel in row-major order.
type RGB struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewRGB returns a new RGB image with the given bounds.
func NewRGB(r image.Rectangle) *RGB {
	return &RGB{
		Pix:    make([]uint8, 3*r.Dx()*r.Dy()),
		Stride: 3 * r.Dx(),
		Rect:   r,
	}
}

func (p *RGB) ColorModel() color.Model { return color.RGBAModel }

func (p *RGB) Bounds() image.Rectangle { return p.Rect }

func (p *RGB) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return color.RGBA{R: s[0], G: s[1], B: s[2], A: 0xff}
}

// Set stores c, dropping alpha. Translucent colors end up composited on black
// because color.RGBA is alpha-premultiplied.
func (p *RGB) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	r, g, b, _ := c.RGBA()
	s := p.Pix[i : i+3 : i+3]
	s[0] = uint8(r >> 8) //nolint:gosec // 16-bit sample shifted to 8 bits
	s[1] = uint8(g >> 8) //nolint:gosec // 16-bit sample shifted to 8 bits
	s[2] = uint8(b >> 8) //nolint:gosec // 16-bit sample shifted to 8 bits
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *RGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *RGB) Opaque() bool { return true }
