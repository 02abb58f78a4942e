package pixfmt

import (
	"slices"
	"strconv"
)

// Depths lists every supported bits-per-pixel value, in ascending order.
var Depths = []int{1, 2, 4, 8, 16, 24, 32}

// CycleDepths is the subset of Depths stepped through by keyboard cycling.
var CycleDepths = []int{1, 4, 8, 16}

// Preset is a named, predefined pixel layout.
type Preset struct {
	Label    string
	BPP      int
	BitOrder BitOrder
	Fields   []Field
}

// Format returns the preset's layout with the given byte order.
func (p Preset) Format(order ByteOrder) Format {
	return Format{BPP: p.BPP, BitOrder: p.BitOrder, ByteOrder: order, Fields: p.Fields}
}

func (p Preset) String() string {
	return p.Label
}

func rgb(r, g, b int) []Field {
	return []Field{{R, r}, {G, g}, {B, b}}
}

var presets = [...]Preset{
	{"1-bit: Monochrome (MSB)", 1, MSBFirst, []Field{{Gray, 1}}},
	{"1-bit: Monochrome (LSB)", 1, LSBFirst, []Field{{Gray, 1}}},

	{"4-bit: Grayscale (0..15)", 4, MSBFirst, []Field{{Gray, 4}}},
	{"4-bit: 2R-1G-1B (toy-pal)", 4, MSBFirst, rgb(2, 1, 1)},

	{"8-bit: Grayscale (0..255)", 8, MSBFirst, []Field{{Gray, 8}}},
	{"8-bit: R3-G3-B2", 8, MSBFirst, rgb(3, 3, 2)},
	{"8-bit: B3-G3-R2", 8, MSBFirst, []Field{{B, 3}, {G, 3}, {R, 2}}},
	{"8-bit: R2-G3-B3", 8, MSBFirst, rgb(2, 3, 3)},
	{"8-bit: A2-R2-G2-B2", 8, MSBFirst, []Field{{A, 2}, {R, 2}, {G, 2}, {B, 2}}},
	{"8-bit: A1-R2-G3-B2", 8, MSBFirst, []Field{{A, 1}, {R, 2}, {G, 3}, {B, 2}}},

	{"16-bit: R5-G6-B5", 16, MSBFirst, rgb(5, 6, 5)},
	{"16-bit: A1-R5-G5-B5", 16, MSBFirst, []Field{{A, 1}, {R, 5}, {G, 5}, {B, 5}}},
	{"16-bit: R4-G4-B4-A4", 16, MSBFirst, []Field{{R, 4}, {G, 4}, {B, 4}, {A, 4}}},
	{"16-bit: R3-G4-B3 (10-bit packed)", 16, MSBFirst, rgb(3, 4, 3)},
	{"16-bit: B3-G4-R3 (10-bit packed)", 16, MSBFirst, []Field{{B, 3}, {G, 4}, {R, 3}}},
	{"16-bit: A1-R3-G3-B3 (12-bit+pad)", 16, MSBFirst, []Field{{A, 1}, {R, 3}, {G, 3}, {B, 3}}},

	{"24-bit: R-G-B", 24, MSBFirst, rgb(8, 8, 8)},
	{"24-bit: B-G-R", 24, MSBFirst, []Field{{B, 8}, {G, 8}, {R, 8}}},

	{"32-bit: R-G-B-A", 32, MSBFirst, []Field{{R, 8}, {G, 8}, {B, 8}, {A, 8}}},
	{"32-bit: A-R-G-B", 32, MSBFirst, []Field{{A, 8}, {R, 8}, {G, 8}, {B, 8}}},
	{"32-bit: A-B-G-R", 32, MSBFirst, []Field{{A, 8}, {B, 8}, {G, 8}, {R, 8}}},
	{"32-bit: B-G-R-A", 32, MSBFirst, []Field{{B, 8}, {G, 8}, {R, 8}, {A, 8}}},
}

// Presets returns a copy of the whole catalog in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets[:])
	return out
}

// PresetsFor returns the presets for a depth. When the catalog has none, a
// single gray preset covering all bits is synthesized.
func PresetsFor(bpp int) []Preset {
	var out []Preset
	for _, p := range presets {
		if p.BPP == bpp {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = append(out, GrayPreset(bpp))
	}
	return out
}

// GrayPreset returns the synthesized preset mapping all bpp bits to gray.
func GrayPreset(bpp int) Preset {
	return Preset{
		Label:  strconv.Itoa(bpp) + "-bit: raw->grayscale",
		BPP:    bpp,
		Fields: []Field{{Gray, bpp}},
	}
}

// LookupPreset finds a catalog preset by label.
func LookupPreset(label string) (Preset, bool) {
	for _, p := range presets {
		if p.Label == label {
			return p, true
		}
	}
	return Preset{}, false
}

// SupportedDepth reports whether bpp is one of Depths.
func SupportedDepth(bpp int) bool {
	return slices.Contains(Depths, bpp)
}
