package pixfmt

import (
	"errors"
	"image/color"
	"testing"
)

func TestDecode(t *testing.T) {
	gray8 := Format{BPP: 8, Fields: []Field{{Gray, 8}}}
	rgb565 := Format{BPP: 16, Fields: []Field{{R, 5}, {G, 6}, {B, 5}}}

	tests := []struct {
		name string
		v    uint64
		f    Format
		want color.NRGBA
	}{
		{"gray white", 0xFF, gray8, color.NRGBA{255, 255, 255, 255}},
		{"gray black", 0x00, gray8, color.NRGBA{0, 0, 0, 255}},
		{"rgb565 red", 0xF800, rgb565, color.NRGBA{255, 0, 0, 255}},
		{"rgb565 green", 0x07E0, rgb565, color.NRGBA{0, 255, 0, 255}},
		{"rgb565 rounding", 0x8410, rgb565, color.NRGBA{132, 130, 132, 255}},
		{"2-bit steps", 0x1B, Format{BPP: 8, Fields: []Field{{A, 2}, {R, 2}, {G, 2}, {B, 2}}}, color.NRGBA{85, 170, 255, 0}},
		{"no fields", 0x12, Format{BPP: 8}, color.NRGBA{255, 255, 255, 255}},
		{"gray keeps alpha", 0x0F, Format{BPP: 8, Fields: []Field{{A, 4}, {Gray, 4}}}, color.NRGBA{255, 255, 255, 0}},
		{"last field wins", 0xF0, Format{BPP: 8, Fields: []Field{{R, 4}, {R, 4}}}, color.NRGBA{0, 255, 255, 255}},
		{"gray overrides rgb", 0x80, Format{BPP: 8, Fields: []Field{{R, 4}, {Gray, 4}}}, color.NRGBA{0, 0, 0, 255}},
		{"field truncated to remaining bits", 0x0B, Format{BPP: 4, Fields: []Field{{R, 3}, {G, 3}}}, color.NRGBA{182, 255, 255, 255}},
		{"no bits left decodes zero", 0x0F, Format{BPP: 4, Fields: []Field{{Gray, 4}, {R, 2}}}, color.NRGBA{0, 255, 255, 255}},
		{"zero width skipped", 0x0F, Format{BPP: 4, Fields: []Field{{R, 0}, {Gray, 4}}}, color.NRGBA{255, 255, 255, 255}},
		{"wide gray", 0x8000, Format{BPP: 16, Fields: []Field{{Gray, 16}}}, color.NRGBA{128, 128, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.v, tt.f); got != tt.want {
				t.Errorf("Decode(%#x, %v) = %v, want %v", tt.v, tt.f, got, tt.want)
			}
		})
	}
}

func TestDecodeExtremes(t *testing.T) {
	for _, p := range Presets() {
		sum := 0
		for _, f := range p.Fields {
			sum += f.Width
		}
		if sum != p.BPP {
			continue
		}
		t.Run(p.Label, func(t *testing.T) {
			f := p.Format(BigEndian)
			hi := Decode(mask(p.BPP), f)
			lo := Decode(0, f)
			for _, fl := range p.Fields {
				if h, l := channel(hi, fl.Channel), channel(lo, fl.Channel); h != 255 || l != 0 {
					t.Errorf("%v: max decodes to %d, zero decodes to %d; want 255 and 0", fl.Channel, h, l)
				}
			}
		})
	}
}

func TestDecodeLittleEndianPixel(t *testing.T) {
	f := Format{BPP: 16, ByteOrder: LittleEndian, Fields: []Field{{R, 5}, {G, 6}, {B, 5}}}
	v := ReadBits([]byte{0x00, 0xF8}, 0, 16, f.BitOrder)
	v = AdjustByteOrder(v, f.BPP, f.ByteOrder)
	want := color.NRGBA{255, 0, 0, 255}
	if got := Decode(v, f); got != want {
		t.Errorf("Decode = %v, want %v", got, want)
	}
}

func TestFormatValidate(t *testing.T) {
	tests := []struct {
		name string
		f    Format
		want error
	}{
		{"rgb565", Format{BPP: 16, Fields: []Field{{R, 5}, {G, 6}, {B, 5}}}, nil},
		{"padding allowed", Format{BPP: 16, Fields: []Field{{R, 3}, {G, 4}, {B, 3}}}, nil},
		{"too wide", Format{BPP: 8, Fields: []Field{{R, 4}, {G, 4}, {B, 1}}}, ErrFieldsTooBig},
		{"zero depth", Format{BPP: 0}, ErrBadDepth},
		{"negative width", Format{BPP: 8, Fields: []Field{{R, -1}}}, ErrBadField},
		{"unknown channel", Format{BPP: 8, Fields: []Field{{Channel(9), 1}}}, ErrBadField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"r5-g6-b5", "r5-g6-b5", false},
		{"A1,R5,G5,B5", "a1-r5-g5-b5", false},
		{"y8", "gray8", false},
		{"gray4 a4", "gray4-a4", false},
		{"", "", true},
		{"x4", "", true},
		{"r", "", true},
		{"5r", "", true},
		{"r99", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFields(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFields(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if s := (Format{Fields: got}).fieldString(); s != tt.want {
				t.Errorf("ParseFields(%q) = %s, want %s", tt.in, s, tt.want)
			}
		})
	}
}

func TestParseOrders(t *testing.T) {
	if o, err := ParseBitOrder("LSB"); err != nil || o != LSBFirst {
		t.Errorf("ParseBitOrder(LSB) = %v, %v", o, err)
	}
	if _, err := ParseBitOrder("middle"); !errors.Is(err, ErrBadOrder) {
		t.Errorf("ParseBitOrder(middle) error = %v, want ErrBadOrder", err)
	}
	if o, err := ParseByteOrder("le"); err != nil || o != LittleEndian {
		t.Errorf("ParseByteOrder(le) = %v, %v", o, err)
	}
	if _, err := ParseByteOrder("pdp"); !errors.Is(err, ErrBadOrder) {
		t.Errorf("ParseByteOrder(pdp) error = %v, want ErrBadOrder", err)
	}
}

func channel(c color.NRGBA, ch Channel) uint8 {
	switch ch {
	case R, Gray:
		return c.R
	case G:
		return c.G
	case B:
		return c.B
	}
	return c.A
}
