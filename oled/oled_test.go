package oled

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"
)

func newTestDev(t *testing.T, opts *Opts) (*Dev, *spitest.Record, *gpiotest.Pin) {
	t.Helper()
	port := &spitest.Record{}
	dc := &gpiotest.Pin{N: "DC"}
	d, err := NewSPI(port, dc, opts)
	if err != nil {
		t.Fatalf("NewSPI() = %v", err)
	}
	return d, port, dc
}

func TestNewSPIOpts(t *testing.T) {
	tests := []struct {
		name    string
		opts    *Opts
		wantErr error
	}{
		{"nil options", nil, nil},
		{"256x64", &Opts{W: 256, H: 64}, nil},
		{"minimum", &Opts{W: 2, H: 1}, nil},
		{"full RAM", &Opts{W: 480, H: 128}, nil},
		{"rotated", &Opts{W: 256, H: 64, Rotated: true}, nil},
		{"odd width", &Opts{W: 255, H: 64}, ErrWidth},
		{"zero width", &Opts{W: 0, H: 64}, ErrWidth},
		{"wide", &Opts{W: 512, H: 64}, ErrWidth},
		{"zero height", &Opts{W: 256, H: 0}, ErrHeight},
		{"tall", &Opts{W: 256, H: 200}, ErrHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSPI(&spitest.Record{}, &gpiotest.Pin{N: "DC"}, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewSPI() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewSPIInit(t *testing.T) {
	d, port, dc := newTestDev(t, nil)
	if got, want := d.Bounds(), image.Rect(0, 0, 256, 64); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	// Init commands, window, blank frame, display on.
	if len(port.Ops) != 4 {
		t.Fatalf("len(Ops) = %d, want 4", len(port.Ops))
	}
	if !bytes.Equal(port.Ops[0].W, initSequence(&Opts{W: 256, H: 64})) {
		t.Errorf("init sequence = %x", port.Ops[0].W)
	}
	if got, want := port.Ops[1].W, []byte{0x15, 56, 183, 0x75, 0, 63, 0x5C}; !bytes.Equal(got, want) {
		t.Errorf("window = %x, want %x", got, want)
	}
	if len(port.Ops[2].W) != 256*64/2 {
		t.Errorf("blank frame is %d bytes, want %d", len(port.Ops[2].W), 256*64/2)
	}
	if got := port.Ops[3].W; !bytes.Equal(got, []byte{0xAF}) {
		t.Errorf("last command = %x, want af", got)
	}
	if dc.L != gpio.Low {
		t.Errorf("DC = %v after command, want Low", dc.L)
	}
}

func TestInitSequenceRotation(t *testing.T) {
	tests := []struct {
		rotated bool
		want    byte
	}{
		{false, 0x14},
		{true, 0x06},
	}
	for _, tt := range tests {
		seq := initSequence(&Opts{W: 256, H: 64, Rotated: tt.rotated})
		i := bytes.IndexByte(seq, 0xA0)
		if i < 0 || seq[i+1] != tt.want {
			t.Errorf("rotated=%v remap = %x, want %x", tt.rotated, seq[i+1], tt.want)
		}
		if j := bytes.IndexByte(seq, 0xCA); seq[j+1] != 63 {
			t.Errorf("MUX ratio = %d, want 63", seq[j+1])
		}
	}
}

func TestDrawSendsChangedFrames(t *testing.T) {
	d, port, dc := newTestDev(t, &Opts{W: 4, H: 2})
	n := len(port.Ops)

	src := image.NewGray(image.Rect(0, 0, 4, 2))
	src.SetGray(0, 0, color.Gray{0xFF})
	src.SetGray(3, 1, color.Gray{0x88})
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if got := len(port.Ops) - n; got != 2 {
		t.Fatalf("Draw issued %d transfers, want 2", got)
	}
	want := []byte{0xF0, 0x00, 0x00, 0x08}
	if got := port.Ops[len(port.Ops)-1].W; !bytes.Equal(got, want) {
		t.Errorf("frame = %x, want %x", got, want)
	}
	if dc.L != gpio.High {
		t.Errorf("DC = %v after data, want High", dc.L)
	}

	n = len(port.Ops)
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if got := len(port.Ops) - n; got != 0 {
		t.Errorf("identical Draw issued %d transfers, want 0", got)
	}
}

func TestDrawBlankSkipsAfterInit(t *testing.T) {
	d, port, _ := newTestDev(t, &Opts{W: 4, H: 2})
	n := len(port.Ops)
	if err := d.Draw(d.Bounds(), image.NewGray(d.Bounds()), image.Point{}); err != nil {
		t.Fatal(err)
	}
	if got := len(port.Ops) - n; got != 0 {
		t.Errorf("blank Draw issued %d transfers, want 0", got)
	}
}

func TestHalted(t *testing.T) {
	d, port, _ := newTestDev(t, &Opts{W: 4, H: 2})
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if got := port.Ops[len(port.Ops)-1].W; !bytes.Equal(got, []byte{0xAE}) {
		t.Errorf("Halt sent %x, want ae", got)
	}
	n := len(port.Ops)
	if err := d.Halt(); err != nil {
		t.Errorf("second Halt() = %v", err)
	}
	if err := d.Draw(d.Bounds(), image.NewGray(d.Bounds()), image.Point{}); !errors.Is(err, ErrHalted) {
		t.Errorf("Draw() = %v, want %v", err, ErrHalted)
	}
	if err := d.SetContrast(10); !errors.Is(err, ErrHalted) {
		t.Errorf("SetContrast() = %v, want %v", err, ErrHalted)
	}
	if err := d.Invert(true); !errors.Is(err, ErrHalted) {
		t.Errorf("Invert() = %v, want %v", err, ErrHalted)
	}
	if len(port.Ops) != n {
		t.Errorf("halted panel received %d transfers", len(port.Ops)-n)
	}
}

func TestSetContrastInvert(t *testing.T) {
	d, port, _ := newTestDev(t, &Opts{W: 4, H: 2})
	if err := d.SetContrast(0x42); err != nil {
		t.Fatal(err)
	}
	if got := port.Ops[len(port.Ops)-1].W; !bytes.Equal(got, []byte{0xC1, 0x42}) {
		t.Errorf("SetContrast sent %x", got)
	}
	if err := d.Invert(true); err != nil {
		t.Fatal(err)
	}
	if got := port.Ops[len(port.Ops)-1].W; !bytes.Equal(got, []byte{0xA7}) {
		t.Errorf("Invert(true) sent %x", got)
	}
}

func TestDevString(t *testing.T) {
	d := &Dev{rect: image.Rect(0, 0, 256, 64)}
	if got, want := d.String(), "oled.Dev{256x64}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if d.ColorModel() == nil {
		t.Error("ColorModel() = nil")
	}
}
