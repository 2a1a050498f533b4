//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"tinygo.org/x/drivers"
)

// HostConfig describes the simulated board used by host runners.
type HostConfig struct {
	Width   int
	Height  int
	Address uint16

	// Unit is the length of one delay unit.
	Unit time.Duration

	// Autopress replaces the keyboard-driven buttons with signals that press A every APeriod and
	// B every BPeriod (zero disables that button).
	Autopress bool
	APeriod   time.Duration
	BPeriod   time.Duration

	// FailInit makes the panel refuse every transfer.
	FailInit bool

	// RunFor stops the runner after this long. Zero runs until the runner is closed or the
	// firmware returns.
	RunFor time.Duration

	// Log receives diagnostics lines. Defaults to stdout.
	Log io.Writer
}

func (c *HostConfig) setDefaults() {
	if c.Width <= 0 {
		c.Width = 96
	}
	if c.Height <= 0 {
		c.Height = 16
	}
	if c.Address == 0 {
		c.Address = 0x3C
	}
	if c.Unit <= 0 {
		c.Unit = time.Millisecond
	}
	if c.Log == nil {
		c.Log = os.Stdout
	}
}

type hostHAL struct {
	logger *hostLogger
	panel  *Panel
	btnA   GPIOPin
	btnB   GPIOPin
	keyA   *buttonLine
	keyB   *buttonLine
	reset  *resetLine
	delay  SleepDelay
}

// New returns a host HAL backed by a simulated panel and host button lines.
func New(cfg HostConfig) HAL {
	return newHostHAL(cfg)
}

func newHostHAL(cfg HostConfig) *hostHAL {
	cfg.setDefaults()

	h := &hostHAL{
		logger: &hostLogger{w: cfg.Log},
		panel:  NewPanel(cfg.Address, cfg.Width, cfg.Height),
		keyA:   newButtonLine("BTN_A"),
		keyB:   newButtonLine("BTN_B"),
		reset:  &resetLine{name: "OLED_RST"},
		delay:  SleepDelay{Unit: cfg.Unit},
	}
	h.btnA, h.btnB = h.keyA, h.keyB
	if cfg.Autopress {
		const pulse = 150 * time.Millisecond
		if cfg.APeriod > 0 {
			h.btnA = newAutoButton("BTN_A", cfg.APeriod, pulse, time.Now)
		}
		if cfg.BPeriod > 0 {
			h.btnB = newAutoButton("BTN_B", cfg.BPeriod, pulse, time.Now)
		}
	}
	for _, pin := range []GPIOPin{h.btnA, h.btnB} {
		if err := pin.Configure(GPIOModeInput, GPIOPullDown); err != nil {
			h.logger.WriteLineString(fmt.Sprintf("hal: %v", err))
		}
	}
	_ = h.reset.Configure(GPIOModeOutput, GPIOPullNone)
	if cfg.FailInit {
		h.panel.FailAlways(true)
	}
	return h
}

func (h *hostHAL) Logger() Logger        { return h.logger }
func (h *hostHAL) Bus() drivers.I2C      { return h.panel }
func (h *hostHAL) ButtonA() GPIOPin      { return h.btnA }
func (h *hostHAL) ButtonB() GPIOPin      { return h.btnB }
func (h *hostHAL) DisplayReset() GPIOPin { return h.reset }
func (h *hostHAL) Delay() Delay          { return h.delay }

// SimPanel exposes the simulated controller of a HAL returned by New.
func SimPanel(h HAL) (*Panel, bool) {
	hh, ok := h.(*hostHAL)
	if !ok {
		return nil, false
	}
	return hh.panel, true
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
