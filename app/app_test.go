//go:build !tinygo

package app

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"oledcon/display"
	"oledcon/hal"

	"tinygo.org/x/drivers"
)

type event string

type recorder struct {
	events []event
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, event(fmt.Sprintf(format, args...)))
}

type lineLog struct {
	lines []string
}

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLog) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func (l *lineLog) count(prefix string) int {
	n := 0
	for _, line := range l.lines {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

// fakePin records writes and serves reads from onRead.
type fakePin struct {
	name   string
	rec    *recorder
	onRead func() bool
}

func (p *fakePin) Name() string { return p.name }

func (p *fakePin) Caps() hal.GPIOCaps {
	return hal.GPIOCapInput | hal.GPIOCapOutput
}

func (p *fakePin) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error { return nil }

func (p *fakePin) Read() (bool, error) {
	if p.onRead == nil {
		return false, nil
	}
	return p.onRead(), nil
}

func (p *fakePin) Write(level bool) error {
	if p.rec != nil {
		p.rec.add("%s=%v", p.name, level)
	}
	return nil
}

type fakeDelay struct{ rec *recorder }

func (d fakeDelay) Wait(units uint32) { d.rec.add("wait %d", units) }

type testHAL struct {
	log   *lineLog
	panel *hal.Panel
	a, b  *fakePin
	reset *fakePin
	delay fakeDelay
}

func newTestHAL() *testHAL {
	rec := &recorder{}
	return &testHAL{
		log:   &lineLog{},
		panel: hal.NewPanel(display.DefaultAddress, 96, 16),
		a:     &fakePin{name: "a"},
		b:     &fakePin{name: "b"},
		reset: &fakePin{name: "rst", rec: rec},
		delay: fakeDelay{rec: rec},
	}
}

func (h *testHAL) Logger() hal.Logger        { return h.log }
func (h *testHAL) Bus() drivers.I2C          { return h.panel }
func (h *testHAL) ButtonA() hal.GPIOPin      { return h.a }
func (h *testHAL) ButtonB() hal.GPIOPin      { return h.b }
func (h *testHAL) DisplayReset() hal.GPIOPin { return h.reset }
func (h *testHAL) Delay() hal.Delay          { return h.delay }

func TestStartReportsInitFailure(t *testing.T) {
	var buf bytes.Buffer
	h := hal.New(hal.HostConfig{FailInit: true, Log: &buf})

	err := Start(h, DefaultConfig())
	if !errors.Is(err, display.ErrInit) {
		t.Fatalf("Start=%v, want ErrInit", err)
	}
	if got := strings.Count(buf.String(), "Error initializing OLED: "); got != 1 {
		t.Fatalf("report printed %d times:\n%s", got, buf.String())
	}
}

func TestStartResetSequence(t *testing.T) {
	h := newTestHAL()
	h.panel.FailAlways(true)
	_ = Start(h, DefaultConfig())

	want := []event{"rst=false", "wait 100", "rst=true", "wait 3"}
	got := h.delay.rec.events
	if len(got) < len(want) {
		t.Fatalf("events=%v, want prefix %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events=%v, want prefix %v", got, want)
		}
	}
}

func TestStartHaltsOnLaterActivationFailure(t *testing.T) {
	h := newTestHAL()
	// The first press on the animation screen asks for the terminal, which the panel then refuses.
	pressed := false
	h.a.onRead = func() bool {
		if pressed {
			return false
		}
		pressed = true
		h.panel.FailAlways(true)
		return true
	}

	cfg := DefaultConfig()
	cfg.Verbose = true
	err := Start(h, cfg)
	if !errors.Is(err, display.ErrInit) {
		t.Fatalf("Start=%v, want ErrInit", err)
	}
	if got := h.log.count("Error initializing OLED: "); got != 1 {
		t.Fatalf("report printed %d times: %q", got, h.log.lines)
	}
	if got := h.log.count("display: graphics active"); got != 1 {
		t.Fatalf("graphics activation logged %d times: %q", got, h.log.lines)
	}
	if got := h.log.count("display: terminal activation failed"); got != 1 {
		t.Fatalf("terminal failure logged %d times: %q", got, h.log.lines)
	}
}

func TestStartRecoversPanic(t *testing.T) {
	h := newTestHAL()
	h.a.onRead = func() bool { panic("button exploded") }

	err := Start(h, DefaultConfig())
	if err == nil || !strings.Contains(err.Error(), "button exploded") {
		t.Fatalf("Start=%v, want panic error", err)
	}
	if got := h.log.count("oledcon panic: button exploded"); got != 1 {
		t.Fatalf("panic logged %d times: %q", got, h.log.lines)
	}
}

func TestDefaultConfigRotatesPanel(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Display.Rotation != drivers.Rotation180 {
		t.Fatalf("Rotation=%v, want 180", cfg.Display.Rotation)
	}
	if cfg.Display.Width != 96 || cfg.Display.Height != 16 {
		t.Fatalf("size=%dx%d, want 96x16", cfg.Display.Width, cfg.Display.Height)
	}
}
