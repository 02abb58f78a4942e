// Package pixfmt decodes bit-packed pixels out of raw byte buffers.
//
// A pixel is an N-bit unsigned value read at an arbitrary bit address, so
// pixels need not start on a byte boundary. Each value is then split into
// named fields (r, g, b, a, gray) from the most significant end downward and
// every field is scaled linearly to 8 bits.
//
// Bit layout example for a 4-bit pixel read MSB-first at bit address 2:
//
//	Bytes:  0x2D            0xC0
//	Bits:   0 0 1 0 1 1 0 1 1 1 0 0 0 0 0 0
//	            ^-----^
//	Pixel:  0b1011 (11)
//
// This package provides:
//
// - ReadBits: bit-granular reads with MSB-first or LSB-first ordering
// - AdjustByteOrder: whole-byte reversal for multi-byte pixels
// - Format and Decode: field layout and conversion to color.NRGBA
// - Presets: the catalog of named formats grouped by bit depth
// - Image: an image.Image view over a raw buffer
//
// Example usage:
//
//	f := pixfmt.PresetsFor(16)[0].Format(pixfmt.BigEndian)
//	img := pixfmt.NewImage(data, 0, 320, f)
//	c := img.NRGBAAt(10, 20)
package pixfmt
