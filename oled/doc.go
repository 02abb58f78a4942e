// Package oled shows rendered viewports on an SSD1322 OLED panel via SPI.
//
// The SSD1322 is a 4-bit grayscale controller with a 480×128 RAM. Common
// panels are 256×64; smaller panels are centered in the RAM window.
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select
//	RES         → Optional: GPIO for hardware reset
//
// # Usage
//
//	host.Init()
//	port, _ := spireg.Open("")
//	dev, _ := oled.NewSPI(port, gpioreg.ByName("GPIO25"), &oled.Opts{
//		W:   256,
//		H:   64,
//		RST: gpioreg.ByName("GPIO24"),
//	})
//	defer dev.Halt()
//
//	viewer.DrawTo(dev)
//
// Dev implements display.Drawer. Any image can be drawn; colors are reduced
// to 16 gray levels with BT.601 luma weights and transparent pixels are
// black. Each Draw replaces the whole frame: the area outside the drawn
// rectangle is cleared. A frame identical to the one on the panel is not
// sent again.
package oled
