package rawview

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/flavioheleno/rawview/pixfmt"
	"periph.io/x/conn/v3/display"
)

var (
	ErrBadOffset     = errors.New("rawview: bad offset")
	ErrUnknownPreset = errors.New("rawview: unknown preset")
)

// CustomLabel is the preset label used for layouts set with SetFields.
const CustomLabel = "custom"

// Opts is the initial configuration of a Viewer.
type Opts struct {
	Width int // Pixels per row (default: 256)
	BPP   int // Bits per pixel (default: 8, must be one of pixfmt.Depths)

	// Canvas geometry in display pixels; one canvas row shows one image row.
	CanvasWidth int // default: 1100
	CanvasRows  int // default: 700
}

// State is the viewport addressing state.
type State struct {
	StartBit  int64 // Bit address of the top-left pixel
	Width     int   // Pixels per row, >= 1
	Preset    pixfmt.Preset
	BitOrder  pixfmt.BitOrder
	ByteOrder pixfmt.ByteOrder
}

// BPP returns the bits per pixel of the active preset.
func (s State) BPP() int {
	return s.Preset.BPP
}

// ByteOffset returns the byte part of StartBit.
func (s State) ByteOffset() int64 {
	return s.StartBit / 8
}

// BitAlign returns the sub-byte part of StartBit (0-7).
func (s State) BitAlign() int {
	return int(s.StartBit % 8)
}

// Format returns the pixel format described by the state.
func (s State) Format() pixfmt.Format {
	f := s.Preset.Format(s.ByteOrder)
	f.BitOrder = s.BitOrder
	return f
}

// Viewer owns a loaded buffer and the viewport state over it.
//
// All methods are safe for concurrent use. Loading, state changes and
// renders are serialized, so a render always sees a consistent buffer and
// state.
type Viewer struct {
	mu     sync.Mutex
	data   []byte
	st     State
	canvas image.Point // X: width in pixels, Y: visible rows
}

// New returns a Viewer with no data loaded.
//
// opts can be nil to use defaults (256 pixels per row, 8 bpp grayscale).
func New(opts *Opts) *Viewer {
	o := Opts{Width: 256, BPP: 8, CanvasWidth: 1100, CanvasRows: 700}
	if opts != nil {
		if opts.Width > 0 {
			o.Width = opts.Width
		}
		if pixfmt.SupportedDepth(opts.BPP) {
			o.BPP = opts.BPP
		}
		if opts.CanvasWidth > 0 {
			o.CanvasWidth = opts.CanvasWidth
		}
		if opts.CanvasRows > 0 {
			o.CanvasRows = opts.CanvasRows
		}
	}
	p := pixfmt.PresetsFor(o.BPP)[0]
	return &Viewer{
		st: State{
			Width:    o.Width,
			Preset:   p,
			BitOrder: p.BitOrder,
		},
		canvas: image.Pt(o.CanvasWidth, o.CanvasRows),
	}
}

// Load replaces the buffer and moves the viewport back to bit 0.
// The viewer keeps data; callers must not modify it afterwards.
func (v *Viewer) Load(data []byte) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.data = data
	v.st.StartBit = 0
}

// Len returns the size of the loaded buffer in bytes.
func (v *Viewer) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.data)
}

// State returns a snapshot of the viewport state.
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.st
}

// Format returns the active pixel format.
func (v *Viewer) Format() pixfmt.Format {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.st.Format()
}

// Canvas returns the canvas geometry as (width, rows).
func (v *Viewer) Canvas() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.canvas.X, v.canvas.Y
}

// SetOffset parses a byte offset, in hexadecimal when prefixed with 0x and
// in decimal otherwise, and moves the viewport there keeping the current bit
// alignment. The offset may point past the end of the data. On error the
// state is left unchanged.
func (v *Viewer) SetOffset(s string) error {
	off, err := parseOffset(s)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.StartBit = off*8 + int64(v.st.BitAlign())
	return nil
}

func parseOffset(s string) (int64, error) {
	t := strings.TrimSpace(s)
	var (
		n   int64
		err error
	)
	if len(t) > 2 && strings.EqualFold(t[:2], "0x") {
		n, err = strconv.ParseInt(t[2:], 16, 64)
	} else {
		n, err = strconv.ParseInt(t, 10, 64)
	}
	switch {
	case err != nil:
		return 0, fmt.Errorf("%w %q: %v", ErrBadOffset, s, err)
	case n < 0:
		return 0, fmt.Errorf("%w %q: negative", ErrBadOffset, s)
	case n > math.MaxInt64/8-1:
		return 0, fmt.Errorf("%w %q: too large", ErrBadOffset, s)
	}
	return n, nil
}

// StepOffset moves the viewport by delta bytes, keeping the bit alignment.
// The byte offset never goes below zero; there is no upper clamp. It does
// nothing when no data is loaded.
func (v *Viewer) StepOffset(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.data) == 0 {
		return
	}
	off := max(0, v.st.ByteOffset()+int64(delta))
	v.st.StartBit = off*8 + int64(v.st.BitAlign())
}

// SetWidth sets the pixels per row (at least 1).
func (v *Viewer) SetWidth(w int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.Width = max(1, w)
}

// StepWidth changes the pixels per row by delta (result at least 1).
func (v *Viewer) StepWidth(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.Width = max(1, v.st.Width+delta)
}

// SetBPP switches the pixel depth and selects the first preset for it. The
// bit address is unchanged, so the same data is reinterpreted. Depths not in
// pixfmt.Depths are ignored and SetBPP reports false.
func (v *Viewer) SetBPP(bpp int) bool {
	if !pixfmt.SupportedDepth(bpp) {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setBPP(bpp)
	return true
}

func (v *Viewer) setBPP(bpp int) {
	if bpp == v.st.BPP() {
		return
	}
	v.st.Preset = pixfmt.PresetsFor(bpp)[0]
}

// CycleBPP steps circularly through pixfmt.CycleDepths. A positive dir
// moves to deeper pixels, a negative one to shallower pixels.
func (v *Viewer) CycleBPP(dir int) {
	if dir == 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setBPP(nextDepth(pixfmt.CycleDepths, v.st.BPP(), dir))
}

// nextDepth returns the depth dir steps away from cur in the circular list.
// When cur is not listed, it returns the nearest listed depth in the
// direction of dir.
func nextDepth(list []int, cur, dir int) int {
	n := len(list)
	if i := slices.Index(list, cur); i >= 0 {
		return list[((i+dir)%n+n)%n]
	}
	if dir > 0 {
		for _, d := range list {
			if d > cur {
				return d
			}
		}
		return list[0]
	}
	for i := n - 1; i >= 0; i-- {
		if list[i] < cur {
			return list[i]
		}
	}
	return list[n-1]
}

// SelectPreset activates a preset by label. Presets of the current depth are
// searched first, then the whole catalog, switching depth when needed. The
// preset's bit order becomes the active bit order.
func (v *Viewer) SelectPreset(label string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, p := range pixfmt.PresetsFor(v.st.BPP()) {
		if p.Label == label {
			v.st.Preset = p
			v.st.BitOrder = p.BitOrder
			return nil
		}
	}
	p, ok := pixfmt.LookupPreset(label)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, label)
	}
	v.st.Preset = p
	v.st.BitOrder = p.BitOrder
	return nil
}

// SetFields installs a custom field layout for the current depth.
func (v *Viewer) SetFields(fields []pixfmt.Field) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	p := pixfmt.Preset{
		Label:    CustomLabel,
		BPP:      v.st.BPP(),
		BitOrder: v.st.BitOrder,
		Fields:   slices.Clone(fields),
	}
	if err := p.Format(v.st.ByteOrder).Validate(); err != nil {
		return err
	}
	v.st.Preset = p
	return nil
}

// SetBitAlign sets the sub-byte part of the bit address, clamped to 0-7.
func (v *Viewer) SetBitAlign(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.StartBit = v.st.ByteOffset()*8 + int64(min(7, max(0, n)))
}

// StepBitAlign moves the sub-byte part of the bit address by delta, clamped
// to 0-7. The byte offset is never changed.
func (v *Viewer) StepBitAlign(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	a := min(7, max(0, v.st.BitAlign()+delta))
	v.st.StartBit = v.st.ByteOffset()*8 + int64(a)
}

// SetBitOrder sets the bit order used to assemble pixel values.
func (v *Viewer) SetBitOrder(o pixfmt.BitOrder) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.BitOrder = o
}

// SetByteOrder sets the byte order of multi-byte pixels.
func (v *Viewer) SetByteOrder(o pixfmt.ByteOrder) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.st.ByteOrder = o
}

// Resize updates the canvas geometry. Both dimensions are clamped to 1.
func (v *Viewer) Resize(width, rows int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.canvas = image.Pt(max(1, width), max(1, rows))
}

// PageMove moves the viewport by two thirds of the visible area, forward
// when dir is positive and backward when negative. The visible area is
// computed from the current canvas rows, row width and depth.
func (v *Viewer) PageMove(dir int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	visible := int64(v.st.Width) * int64(v.canvas.Y) * int64(v.st.BPP())
	page := visible * 2 / 3
	if page <= 0 || len(v.data) == 0 {
		return
	}
	v.moveBits(int64(sign(dir)) * page)
}

// WheelMove scrolls by one row for small wheel deltas and three rows when
// the magnitude exceeds 120. A positive delta scrolls backward.
func (v *Viewer) WheelMove(delta int) {
	if delta == 0 {
		return
	}
	rows := int64(1)
	if delta > 120 || delta < -120 {
		rows = 3
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.data) == 0 {
		return
	}
	step := rows * int64(v.st.Width) * int64(v.st.BPP())
	v.moveBits(-int64(sign(delta)) * step)
}

// moveBits shifts the bit address and clamps it so that at least one whole
// pixel stays in view. It must be called with v.mu held.
func (v *Viewer) moveBits(delta int64) {
	total := int64(len(v.data)) * 8
	hi := max(0, total-int64(v.st.BPP()))
	v.st.StartBit = min(max(v.st.StartBit+delta, 0), hi)
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// Render decodes the current viewport using the canvas rows as its height.
func (v *Viewer) Render() *image.NRGBA {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Render(v.data, v.st, v.canvas.Y)
}

// DrawTo resizes the canvas to the drawer's bounds, renders the viewport
// and draws it at the drawer's top-left corner.
func (v *Viewer) DrawTo(d display.Drawer) error {
	r := d.Bounds()
	v.Resize(r.Dx(), r.Dy())
	img := v.Render()
	return d.Draw(r, img, image.Point{})
}

// String returns a representation of the viewer.
func (v *Viewer) String() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return fmt.Sprintf("rawview.Viewer{%d bytes, @%d.%d, %dpx, %q %s %s}",
		len(v.data), v.st.ByteOffset(), v.st.BitAlign(), v.st.Width,
		v.st.Preset.Label, v.st.BitOrder, v.st.ByteOrder)
}
