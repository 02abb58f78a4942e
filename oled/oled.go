package oled

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

var (
	ErrHalted = errors.New("oled: halted")
	ErrWidth  = errors.New("oled: width must be even and between 2 and 480")
	ErrHeight = errors.New("oled: height must be between 1 and 128")
)

// Opts is the configuration for the panel.
type Opts struct {
	W int // Width (default: 256, must be even and <= 480)
	H int // Height (default: 64, must be <= 128)

	Rotated bool // 180° rotation

	// Optional hardware reset pin, nil if not wired.
	RST gpio.PinIO
}

// Dev is a handle to the panel.
type Dev struct {
	c   conn.Conn
	dc  gpio.PinOut
	rst gpio.PinIO

	rect         image.Rectangle
	columnOffset int // Centers the panel in the 480-column RAM

	frame  []byte // Last frame sent, nibble packed
	sent   bool
	halted bool
}

// NewSPI opens a panel on an SPI port. dc is the Data/Command pin.
//
// The port is driven at 10MHz, Mode0, 8-bit words. opts can be nil to use
// defaults (256x64).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 256, H: 64}
	}
	if opts.W <= 0 || opts.W%2 != 0 || opts.W > 480 {
		return nil, ErrWidth
	}
	if opts.H <= 0 || opts.H > 128 {
		return nil, ErrHeight
	}

	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("oled: %w", err)
	}

	d := &Dev{
		c:            c,
		dc:           dc,
		rst:          opts.RST,
		rect:         image.Rect(0, 0, opts.W, opts.H),
		columnOffset: (480 - opts.W) / 2,
		frame:        make([]byte, opts.W*opts.H/2),
	}
	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) init(opts *Opts) error {
	if d.rst != nil {
		for _, l := range []gpio.Level{gpio.Low, gpio.High} {
			if err := d.rst.Out(l); err != nil {
				return fmt.Errorf("oled: reset: %w", err)
			}
			time.Sleep(200 * time.Millisecond)
		}
	}
	if err := d.command(initSequence(opts)...); err != nil {
		return err
	}
	// Blank the RAM window before switching the panel on.
	if err := d.writeFrame(d.frame); err != nil {
		return err
	}
	d.sent = true
	return d.command(0xAF)
}

// initSequence returns the power-on command stream for the given geometry.
func initSequence(opts *Opts) []byte {
	remap := byte(0x14)
	if opts.Rotated {
		remap = 0x06
	}
	return []byte{
		0xFD, 0x12, // Unlock
		0xAE,       // Display off
		0xB3, 0xF2, // Clock divider
		0xCA, byte(opts.H - 1), // MUX ratio
		0xA2, 0x00, // Display offset
		0xA1, 0x00, // Start line
		0xA0, remap, 0x11, // Remap, dual COM
		0xAB, 0x01, // Internal VDD
		0xB4, 0xA0, 0xFD, // VSL
		0xC1, 0xFF, // Contrast
		0xC7, 0x0F, // Master contrast
		0xB9,       // Default gray table
		0xB1, 0xE2, // Phase length
		0xD1, 0x82, 0x20, // Enhancement
		0xBB, 0x1F, // Pre-charge voltage
		0xB6, 0x08, // Second pre-charge
		0xBE, 0x07, // VCOMH
		0xA6, // Normal mode
		0xA9, // Exit partial mode
	}
}

func (d *Dev) command(cmds ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx(cmds, nil)
}

func (d *Dev) data(b []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(b, nil)
}

// writeFrame sets the RAM window to the whole panel and sends pixels.
func (d *Dev) writeFrame(pixels []byte) error {
	colStart := byte(d.columnOffset / 2)
	colEnd := byte((d.columnOffset + d.rect.Dx() - 1) / 2)
	if err := d.command(
		0x15, colStart, colEnd,
		0x75, 0, byte(d.rect.Dy()-1),
		0x5C,
	); err != nil {
		return err
	}
	return d.data(pixels)
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return Gray4Model
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer. The area outside dst is cleared.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	next := packFrame(d.rect, dst, src, sp)
	if d.sent && bytes.Equal(next, d.frame) {
		return nil
	}
	if err := d.writeFrame(next); err != nil {
		return err
	}
	d.frame = next
	d.sent = true
	return nil
}

// SetContrast sets the panel contrast (0-255).
func (d *Dev) SetContrast(level byte) error {
	if d.halted {
		return ErrHalted
	}
	return d.command(0xC1, level)
}

// Invert swaps black and white on the panel.
func (d *Dev) Invert(on bool) error {
	if d.halted {
		return ErrHalted
	}
	mode := byte(0xA6)
	if on {
		mode = 0xA7
	}
	return d.command(mode)
}

// Halt turns the panel off. Further calls fail with ErrHalted.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	return d.command(0xAE)
}

func (d *Dev) String() string {
	return fmt.Sprintf("oled.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
