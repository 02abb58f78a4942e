package pixfmt

import (
	"image"
	"image/color"
)

// Image is a read-only image.Image view over bit-packed pixels in a raw
// buffer. Pixels are laid out row-major starting at bit address Start, with
// Rect.Dx() pixels per row and no padding between rows.
type Image struct {
	Pix    []byte          // Raw data, never modified
	Start  int64           // Bit address of the pixel at Rect.Min
	Rect   image.Rectangle // Image bounds
	Format Format
}

// NewImage returns a view of data starting at bit address start, width
// pixels wide and as tall as needed to cover the rest of the buffer.
func NewImage(data []byte, start int64, width int, f Format) *Image {
	h := 0
	if width > 0 && f.BPP > 0 {
		n := Available(len(data), start, f.BPP)
		h = int((n + int64(width) - 1) / int64(width))
	}
	return &Image{Pix: data, Start: start, Rect: image.Rect(0, 0, max(width, 0), h), Format: f}
}

// Available returns how many whole pixels of bpp bits fit between bit
// address start and the end of a buffer of size bytes.
func Available(size int, start int64, bpp int) int64 {
	total := int64(size) * 8
	if bpp <= 0 || start >= total {
		return 0
	}
	return (total - max(start, 0)) / int64(bpp)
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.NRGBAAt(x, y)
}

// NRGBAAt decodes the pixel at (x, y). Pixels outside the bounds or not
// fully backed by data are transparent.
func (p *Image) NRGBAAt(x, y int) color.NRGBA {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return color.NRGBA{}
	}
	bit := p.BitOffset(x, y)
	if bit < 0 || bit+int64(p.Format.BPP) > int64(len(p.Pix))*8 {
		return color.NRGBA{}
	}
	v := ReadBits(p.Pix, bit, p.Format.BPP, p.Format.BitOrder)
	v = AdjustByteOrder(v, p.Format.BPP, p.Format.ByteOrder)
	return Decode(v, p.Format)
}

// BitOffset returns the bit address of the pixel at (x, y).
func (p *Image) BitOffset(x, y int) int64 {
	idx := int64(y-p.Rect.Min.Y)*int64(p.Rect.Dx()) + int64(x-p.Rect.Min.X)
	return p.Start + idx*int64(p.Format.BPP)
}

// Opaque scans the image and reports whether it is fully opaque.
func (p *Image) Opaque() bool {
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			if p.NRGBAAt(x, y).A != 0xFF {
				return false
			}
		}
	}
	return true
}
