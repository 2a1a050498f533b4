// Package display drives an SSD1306-class dot-matrix controller through one of two mutually
// exclusive personalities, a pixel canvas (Graphics) and a character terminal (Terminal), that
// share a single bus connection.
package display

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
)

var (
	// ErrTransport wraps every failed bus transfer.
	ErrTransport = errors.New("display: transport error")

	// ErrInit is returned when a personality could not bring the controller up.
	ErrInit = errors.New("display: init failed")
)

// prechargeCustom is the phase 1/2 period paired with every brightness write.
const prechargeCustom = 0xF1

// DefaultAddress is the usual 7-bit bus address of the controller.
const DefaultAddress = 0x3C

// Config describes the panel behind a Transport.
type Config struct {
	Address  uint16
	Width    int16
	Height   int16
	Rotation drivers.Rotation
}

func (c *Config) setDefaults() {
	if c.Address == 0 {
		c.Address = DefaultAddress
	}
	if c.Width <= 0 {
		c.Width = 96
	}
	if c.Height <= 0 {
		c.Height = 16
	}
}

// Brightness is the controller contrast. It wraps on overflow.
type Brightness uint8

const (
	DefaultBrightness Brightness = 0x0F
	BrightnessStep    Brightness = 16
)

// Raise returns b increased by one step, wrapping modulo 256.
func (b Brightness) Raise() Brightness { return b + BrightnessStep }

// Transport is the connection to the display controller. Exactly one personality owns it at a
// time; the Switcher moves it between them and it is never copied.
type Transport struct {
	dev *ssd1306.Device
	cfg Config
}

// NewTransport wraps bus. The transport is handed to NewSwitcher and must not be used directly
// afterwards.
func NewTransport(bus drivers.I2C, cfg Config) *Transport {
	cfg.setDefaults()
	return &Transport{
		dev: ssd1306.NewI2C(bus),
		cfg: cfg,
	}
}

// Size returns the panel size in pixels.
func (t *Transport) Size() (w, h int16) { return t.cfg.Width, t.cfg.Height }

func wrapTx(err error) error {
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}

// command sends each byte as its own command transfer and stops at the first failure.
func (t *Transport) command(cmds ...byte) error {
	for _, c := range cmds {
		if err := t.dev.Tx([]byte{c}, true); err != nil {
			return wrapTx(err)
		}
	}
	return nil
}

// initialize runs the driver bring-up sequence, which also allocates a blank frame buffer. The
// driver drops bus errors while configuring, so the sequence ends with a checked display-on.
func (t *Transport) initialize() error {
	switch t.cfg.Rotation {
	case drivers.Rotation0, drivers.Rotation180:
	default:
		return fmt.Errorf("rotation %d unsupported", t.cfg.Rotation)
	}
	t.dev.Configure(ssd1306.Config{
		Width:    t.cfg.Width,
		Height:   t.cfg.Height,
		Address:  t.cfg.Address,
		Rotation: t.cfg.Rotation,
	})
	return t.command(ssd1306.DISPLAYON)
}

// flush sends the whole frame buffer.
func (t *Transport) flush() error {
	return wrapTx(t.dev.Display())
}

func (t *Transport) setBrightness(b Brightness) error {
	return t.command(ssd1306.SETPRECHARGE, prechargeCustom, ssd1306.SETCONTRAST, byte(b))
}
