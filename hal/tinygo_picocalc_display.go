//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"
	"time"
)

// ili9488 drives the PicoCalc panel over SPI1 in 16bpp mode.
type ili9488 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	tx []byte
}

type lcdCmd struct {
	op    byte
	data  []byte
	delay time.Duration
}

var ili9488Init = []lcdCmd{
	{op: 0xC0, data: []byte{0x17, 0x15}},             // PWCTRL1
	{op: 0xC1, data: []byte{0x41}},                   // PWCTRL2
	{op: 0xC5, data: []byte{0x00, 0x12, 0x80, 0x40}}, // VMCTRL
	{op: 0x3A, data: []byte{0x55}},                   // COLMOD: 16bpp
	{op: 0xB1, data: []byte{0xA0, 0x11}},             // FRMCTRL1
	{op: 0xB6, data: []byte{0x02, 0x22, 0x27}},       // DISCTRL, 320 lines
	{op: 0x21},                                       // INVON
	{op: 0x36, data: []byte{0x40 | 0x04 | 0x08}},     // MADCTL: MX|MH|BGR
	{op: 0x11, delay: 120 * time.Millisecond},        // SLPOUT
	{op: 0x29},                                       // DISPON
}

func initILI9488() (*ili9488, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}
	if err := machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	}); err != nil {
		return nil, err
	}

	d := &ili9488{
		spi: *machine.SPI1,
		cs:  machine.GP13,
		dc:  machine.GP14,
		rst: machine.GP15,
		tx:  make([]byte, 4096),
	}
	for _, p := range []machine.Pin{d.cs, d.dc, d.rst} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}

	d.rst.Low()
	time.Sleep(64 * time.Millisecond)
	d.rst.High()
	time.Sleep(140 * time.Millisecond)

	for _, c := range ili9488Init {
		d.cmd(c.op, c.data...)
		if c.delay > 0 {
			time.Sleep(c.delay)
		}
	}
	return d, nil
}

func (d *ili9488) cmd(op byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{op}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

func (d *ili9488) window(w, h int) {
	x1, y1 := uint16(w-1), uint16(h-1)
	d.cmd(0x2A, 0, 0, byte(x1>>8), byte(x1))
	d.cmd(0x2B, 0, 0, byte(y1>>8), byte(y1))
	d.cmd(0x2C)
}

// blitRGB565LittleEndian streams a full frame, swapping to the panel's
// big-endian pixel order chunk by chunk.
func (d *ili9488) blitRGB565LittleEndian(buf []byte, w, h int) error {
	total := w * h * 2
	if w <= 0 || h <= 0 || len(buf) < total {
		return errors.New("invalid framebuffer")
	}
	d.window(w, h)

	d.cs.Low()
	d.dc.High()
	chunk := d.tx[:len(d.tx)&^1]
	for off := 0; off < total; {
		n := min(len(chunk), total-off)
		src := buf[off : off+n]
		for i := 0; i+1 < n; i += 2 {
			chunk[i], chunk[i+1] = src[i+1], src[i]
		}
		d.spi.Tx(chunk[:n], nil)
		off += n
	}
	d.cs.High()
	return nil
}
