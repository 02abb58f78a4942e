package oled

import (
	"image"
	"image/color"
)

// Gray4 is a 4-bit grayscale color (0-15). Only the lower 4 bits of Y are
// used.
type Gray4 struct {
	Y uint8
}

// RGBA scales the 4-bit level to 16 bits per channel.
func (c Gray4) RGBA() (r, g, b, a uint32) {
	// 0xF * 0x1111 = 0xFFFF
	y := uint32(c.Y&0x0F) * 0x1111
	return y, y, y, 0xFFFF
}

// Gray4Model converts colors to Gray4 using BT.601 luma weights. Since the
// conversion works on premultiplied values, transparent pixels become black.
var Gray4Model = color.ModelFunc(func(c color.Color) color.Color {
	return gray4(c)
})

func gray4(c color.Color) Gray4 {
	if g, ok := c.(Gray4); ok {
		return g
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Gray4{Y: uint8(y >> 12)}
}

// packFrame converts src into a nibble-packed frame of size rect. Each byte
// holds two horizontally adjacent pixels, the left one in the high nibble.
// Pixels of rect not covered by dst are left black.
func packFrame(rect, dst image.Rectangle, src image.Image, sp image.Point) []byte {
	stride := rect.Dx() / 2
	frame := make([]byte, stride*rect.Dy())
	clip := dst.Intersect(rect)
	sb := src.Bounds()
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			p := image.Pt(sp.X+x-dst.Min.X, sp.Y+y-dst.Min.Y)
			if !p.In(sb) {
				continue
			}
			lvl := gray4(src.At(p.X, p.Y)).Y & 0x0F
			off := (y-rect.Min.Y)*stride + (x-rect.Min.X)/2
			shift := uint(4 * (1 - ((x - rect.Min.X) & 1)))
			frame[off] |= lvl << shift
		}
	}
	return frame
}
