// Package app wires the board to the display personalities and the console loop.
package app

import (
	"fmt"

	"oledcon/assets"
	"oledcon/console"
	"oledcon/display"
	"oledcon/hal"
	"oledcon/internal/buildinfo"

	"tinygo.org/x/drivers"
)

// Reset timing in delay units.
const (
	resetHold   = 100
	resetSettle = 3
)

type Config struct {
	Display display.Config
	Console console.Config

	// Verbose logs every personality activation.
	Verbose bool
}

// DefaultConfig is the board setup: the panel is mounted upside down.
func DefaultConfig() Config {
	return Config{
		Display: display.Config{
			Address:  display.DefaultAddress,
			Width:    96,
			Height:   16,
			Rotation: drivers.Rotation180,
		},
	}
}

// Run boots the firmware and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = Start(h, cfg)
	select {}
}

// Start resets the panel, brings it up in graphics mode and runs the console loop. It returns only
// when a personality fails to activate, after reporting the failure on the diagnostics sink.
func Start(h hal.HAL, cfg Config) (err error) {
	l := h.Logger()
	defer recoverPanic(l, &err)

	bootStep(h, "oledcon "+buildinfo.Line())

	bootStep(h, "panel reset")
	resetPanel(h)

	sw := display.NewSwitcher(display.NewTransport(h.Bus(), cfg.Display))
	if cfg.Verbose {
		sw.OnActivate = func(m display.Mode, err error) {
			if err != nil {
				l.WriteLineString(fmt.Sprintf("display: %s activation failed: %v", m, err))
				return
			}
			l.WriteLineString(fmt.Sprintf("display: %s active", m))
		}
	}

	bootStep(h, "panel init")
	if err := sw.UseGraphics(func(*display.Graphics) {}); err != nil {
		return reportInit(l, err)
	}

	bootStep(h, "console")
	loop := console.NewLoop(
		sw,
		console.NewSampler(h.ButtonA(), h.ButtonB()),
		h.Delay(),
		assets.NewFrameSet(assets.Frames),
		cfg.Console,
	)
	if err := loop.Run(); err != nil {
		return reportInit(l, err)
	}
	return nil
}

// resetPanel pulses the active-low reset line and waits for the controller to come up.
func resetPanel(h hal.HAL) {
	d := h.Delay()
	rst := h.DisplayReset()
	if rst != nil {
		_ = rst.Configure(hal.GPIOModeOutput, hal.GPIOPullNone)
		_ = rst.Write(false)
	}
	d.Wait(resetHold)
	if rst != nil {
		_ = rst.Write(true)
	}
	d.Wait(resetSettle)
}

func reportInit(l hal.Logger, err error) error {
	l.WriteLineString(fmt.Sprintf("Error initializing OLED: %v", err))
	return err
}
