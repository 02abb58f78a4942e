// Package rawview renders a scrolling viewport over raw, headerless pixel
// data.
//
// A Viewer holds a byte buffer and the viewport state: the bit address of
// the top-left pixel, the number of pixels per row and the pixel format.
// Navigation operations move the bit address, and Render decodes the
// visible window into an *image.NRGBA.
//
// # Addressing
//
// Pixels are addressed in bits, not bytes. The start of the viewport is a
// byte offset plus a bit alignment (0-7), so packed formats that do not
// start on a byte boundary can be lined up:
//
//	v := rawview.New(nil)
//	v.Load(data)
//	v.SetOffset("0x400") // byte 1024
//	v.SetBitAlign(3)     // bit 3 of that byte
//
// Pixel i of the viewport starts at StartBit + i*BPP. Bits past the end of
// the buffer read as zero; pixels that do not fit entirely are transparent.
//
// # Pixel Formats
//
// Formats come from a catalog of presets grouped by depth (see package
// pixfmt). Depths of 1, 2, 4, 8, 16, 24 and 32 bits are supported:
//
//	v.SetBPP(16)                        // first 16-bit preset
//	v.SelectPreset("16-bit: R5-G6-B5")  // by label
//	v.SetByteOrder(pixfmt.LittleEndian) // swap bytes of each pixel
//
// Custom layouts are set field by field, most significant first:
//
//	fields, _ := pixfmt.ParseFields("a1-r5-g5-b5")
//	v.SetFields(fields)
//
// # Navigation
//
// The viewer mirrors the usual shortcuts of an interactive blob viewer:
//
//	v.StepOffset(1)   // one byte forward, keeping bit alignment
//	v.StepWidth(-1)   // one pixel narrower
//	v.PageMove(1)     // two thirds of the visible area forward
//	v.WheelMove(-120) // one row forward
//	v.CycleBPP(1)     // 1 -> 4 -> 8 -> 16 -> 1
//
// Page and wheel moves are clamped so that at least one pixel stays in
// view. Explicit offsets are not clamped and may point past the data, in
// which case the viewport is empty.
//
// # Displays
//
// DrawTo renders the viewport to any periph.io display.Drawer, sizing the
// viewport to the display:
//
//	dev, _ := oled.NewSPI(port, dc, nil)
//	v.DrawTo(dev)
package rawview
