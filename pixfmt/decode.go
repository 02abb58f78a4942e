package pixfmt

import "image/color"

// Decode splits a pixel value into the fields of f and scales each one to
// 8 bits.
//
// All channels start at 255. A field whose width exceeds the bits that are
// left only gets the remaining bits; when none are left it decodes to 0.
// Zero-width fields are skipped. When a channel appears more than once the
// last field wins, and Gray overwrites R, G and B but not A.
func Decode(v uint64, f Format) color.NRGBA {
	c := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	remaining := f.BPP
	for _, fl := range f.Fields {
		if fl.Width <= 0 {
			continue
		}
		use := min(fl.Width, max(remaining, 0))
		var raw uint64
		if use > 0 {
			raw = (v >> uint(remaining-use)) & mask(use)
		}
		remaining -= use
		y := scale8(raw, use)
		switch fl.Channel {
		case R:
			c.R = y
		case G:
			c.G = y
		case B:
			c.B = y
		case A:
			c.A = y
		case Gray:
			c.R, c.G, c.B = y, y, y
		}
	}
	return c
}

// scale8 maps raw in [0, 2^bits-1] linearly onto [0, 255], rounding to the
// nearest integer.
func scale8(raw uint64, bits int) uint8 {
	if bits <= 0 {
		return 0
	}
	if bits > 32 {
		// Keep raw*255 inside 64 bits.
		raw >>= uint(bits - 32)
		bits = 32
	}
	m := mask(bits)
	return uint8((raw*255 + m/2) / m)
}
