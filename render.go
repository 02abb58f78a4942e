package rawview

import (
	"image"

	"github.com/flavioheleno/rawview/pixfmt"
)

// MaxRows bounds the height of a rendered viewport.
const MaxRows = 10000

// Render decodes the viewport described by st from data into an image that
// is st.Width pixels wide and at most rows tall.
//
// The result only has as many rows as there are pixels to show (at least
// one). Pixels past the end of data are transparent. An empty buffer or a
// start address at or past its end yields an empty image.
func Render(data []byte, st State, rows int) *image.NRGBA {
	total := int64(len(data)) * 8
	if len(data) == 0 || st.StartBit >= total {
		return image.NewNRGBA(image.Rectangle{})
	}
	width := max(st.Width, 1)
	f := st.Format()

	available := pixfmt.Available(len(data), st.StartBit, f.BPP)
	n := min(int64(max(rows, 1))*int64(width), available)
	h := int((n + int64(width) - 1) / int64(width))
	h = min(max(h, 1), MaxRows)

	src := &pixfmt.Image{
		Pix:    data,
		Start:  st.StartBit,
		Rect:   image.Rect(0, 0, width, h),
		Format: f,
	}
	dst := image.NewNRGBA(src.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < width; x++ {
			// Pixels past the available data decode as transparent.
			dst.SetNRGBA(x, y, src.NRGBAAt(x, y))
		}
	}
	return dst
}
