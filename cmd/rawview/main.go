// Command rawview renders a window of a raw binary file as an image.
//
// The file is interpreted as headerless pixels in the selected format,
// starting at an arbitrary bit address. The rendered viewport is written to
// an image file and/or shown on an SSD1322 OLED panel:
//
//	rawview -bpp 16 -preset "16-bit: R5-G6-B5" -width 320 -o frame.png dump.bin
//	rawview -offset 0x1000 -keys "pgdn*2,shift+right" -o auto dump.bin
//	rawview -decompress auto -spi "" -dc GPIO25 firmware.bin.zst
//
// Panel wiring:
//
//	Display    Raspberry Pi
//	GND        GND
//	VCC        3.3V
//	SCL/CLK    GPIO11 (SPI0 CLK)
//	SDA/MOSI   GPIO10 (SPI0 MOSI)
//	DC         GPIO25 (configurable)
//	CS         GPIO8 (SPI0 CE0)
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/flavioheleno/rawview"
	"github.com/flavioheleno/rawview/export"
	"github.com/flavioheleno/rawview/internal/keymap"
	"github.com/flavioheleno/rawview/oled"
	"github.com/flavioheleno/rawview/pixfmt"
	"github.com/flavioheleno/rawview/source"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

type config struct {
	file       string
	offset     string
	width      int
	bpp        int
	preset     string
	fields     string
	align      int
	bitOrder   string
	byteOrder  string
	cols       int
	rows       int
	keys       string
	out        string
	zoom       int
	decompress string
	list       bool
	spi        string
	usePanel   bool
	dc         string
	rst        string
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	c := &config{}
	fs := flag.NewFlagSet("rawview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.offset, "offset", "0", "Start byte offset (decimal or 0x hex)")
	fs.IntVar(&c.width, "width", 256, "Pixels per row")
	fs.IntVar(&c.bpp, "bpp", 8, "Bits per pixel")
	fs.StringVar(&c.preset, "preset", "", "Preset label (see -list)")
	fs.StringVar(&c.fields, "fields", "", "Custom field layout, e.g. r5-g6-b5")
	fs.IntVar(&c.align, "align", 0, "Bit alignment within the start byte (0-7)")
	fs.StringVar(&c.bitOrder, "bitorder", "", "Bit order: msb or lsb (default: from preset)")
	fs.StringVar(&c.byteOrder, "byteorder", "be", "Byte order of multi-byte pixels: be or le")
	fs.IntVar(&c.cols, "cols", 1100, "Canvas width in pixels")
	fs.IntVar(&c.rows, "rows", 700, "Canvas rows")
	fs.StringVar(&c.keys, "keys", "", "Key presses to replay, e.g. \"pgdn*2,shift+left\"")
	fs.StringVar(&c.out, "o", "", "Output image (.png, .qoi, .bmp, .tif); auto picks rawviewNNN.png")
	fs.IntVar(&c.zoom, "zoom", 1, "Integer zoom factor of the output image")
	fs.StringVar(&c.decompress, "decompress", "none", "Input compression: none, auto, zstd, gzip, zlib")
	fs.BoolVar(&c.list, "list", false, "List presets and exit")
	fs.StringVar(&c.spi, "spi", "", "SPI bus name of an SSD1322 panel (empty for default)")
	fs.StringVar(&c.dc, "dc", "GPIO25", "Panel Data/Command pin name")
	fs.StringVar(&c.rst, "rst", "", "Panel reset pin name (optional)")
	fs.BoolVar(&c.verbose, "v", false, "Verbose output")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: rawview [flags] file")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "spi" {
			c.usePanel = true
		}
	})
	if c.list {
		return c, nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("expected exactly one input file")
	}
	c.file = fs.Arg(0)
	if c.out == "" && !c.usePanel {
		c.out = "auto"
	}
	return c, nil
}

// configure applies the format and position flags to v, in the order an
// interactive session would.
func configure(v *rawview.Viewer, c *config) error {
	if !v.SetBPP(c.bpp) {
		return fmt.Errorf("unsupported depth %d (supported: %v)", c.bpp, pixfmt.Depths)
	}
	if c.preset != "" {
		if err := v.SelectPreset(c.preset); err != nil {
			return err
		}
	}
	if c.fields != "" {
		fields, err := pixfmt.ParseFields(c.fields)
		if err != nil {
			return err
		}
		if err := v.SetFields(fields); err != nil {
			return err
		}
	}
	if c.bitOrder != "" {
		o, err := pixfmt.ParseBitOrder(c.bitOrder)
		if err != nil {
			return err
		}
		v.SetBitOrder(o)
	}
	o, err := pixfmt.ParseByteOrder(c.byteOrder)
	if err != nil {
		return err
	}
	v.SetByteOrder(o)
	v.SetWidth(c.width)
	v.Resize(c.cols, c.rows)
	if err := v.SetOffset(c.offset); err != nil {
		return err
	}
	v.SetBitAlign(c.align)

	events, err := keymap.Parse(c.keys)
	if err != nil {
		return err
	}
	return keymap.Run(v, events)
}

func listPresets(w io.Writer) {
	for _, p := range pixfmt.Presets() {
		fmt.Fprintf(w, "%2d  %-28s %s\n", p.BPP, p.Label, p.BitOrder)
	}
}

func run(c *config, stdout io.Writer) error {
	if c.list {
		listPresets(stdout)
		return nil
	}
	comp, err := source.ParseCompression(c.decompress)
	if err != nil {
		return err
	}
	data, err := source.Load(c.file, comp)
	if err != nil {
		return err
	}
	v := rawview.New(nil)
	v.Load(data)
	if err := configure(v, c); err != nil {
		return err
	}
	if c.verbose {
		log.Printf("%s: %v", c.file, v)
	}

	if c.out != "" {
		path := c.out
		if path == "auto" {
			if path, err = export.NextFreeName(".", "rawview", ".png"); err != nil {
				return err
			}
		}
		img := v.Render()
		if err := export.WriteFile(path, img, c.zoom); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %dx%d\n", path, img.Bounds().Dx(), img.Bounds().Dy())
	}
	if c.usePanel {
		return showOnPanel(v, c)
	}
	return nil
}

func showOnPanel(v *rawview.Viewer, c *config) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph.io: %w", err)
	}
	b, err := spireg.Open(c.spi)
	if err != nil {
		return fmt.Errorf("failed to open SPI bus: %w", err)
	}
	defer b.Close()

	dc := gpioreg.ByName(c.dc)
	if dc == nil {
		return fmt.Errorf("GPIO pin %s not found", c.dc)
	}
	opts := &oled.Opts{W: 256, H: 64}
	if c.rst != "" {
		var rst gpio.PinIO
		if rst = gpioreg.ByName(c.rst); rst == nil {
			return fmt.Errorf("GPIO pin %s not found", c.rst)
		}
		opts.RST = rst
	}
	dev, err := oled.NewSPI(b, dc, opts)
	if err != nil {
		return err
	}
	if c.verbose {
		log.Printf("panel: %v", dev)
	}
	// The panel keeps showing the frame after the process exits.
	return v.DrawTo(dev)
}

func main() {
	c, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("rawview: %v", err)
	}
	if err := run(c, os.Stdout); err != nil {
		log.Fatalf("rawview: %v", err)
	}
}
