package display

import (
	"bytes"
	"errors"
	"testing"

	"oledcon/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
)

// recordBus stores every transfer and can be told to fail.
type recordBus struct {
	txs  [][]byte
	fail error
}

func (b *recordBus) Tx(addr uint16, w, r []byte) error {
	if b.fail != nil {
		return b.fail
	}
	b.txs = append(b.txs, append([]byte(nil), w...))
	return nil
}

// inits counts display-off commands, which only the init sequence sends.
func (b *recordBus) inits() int {
	n := 0
	for _, tx := range b.txs {
		if len(tx) == 2 && tx[0] == 0x00 && tx[1] == ssd1306.DISPLAYOFF {
			n++
		}
	}
	return n
}

// commands returns the command bytes in order. The driver sends one command byte per transfer.
func (b *recordBus) commands() []byte {
	var out []byte
	for _, tx := range b.txs {
		if len(tx) == 2 && tx[0] == 0x00 {
			out = append(out, tx[1])
		}
	}
	return out
}

func newTestSwitcher(bus drivers.I2C) *Switcher {
	return NewSwitcher(NewTransport(bus, Config{Width: 96, Height: 16}))
}

func TestSwitcherStartsUnbound(t *testing.T) {
	bus := &recordBus{}
	s := newTestSwitcher(bus)
	if s.Mode() != ModeNone {
		t.Fatalf("Mode=%v, want none", s.Mode())
	}
	if len(bus.txs) != 0 {
		t.Fatalf("unexpected bus traffic before first use: %d transfers", len(bus.txs))
	}
}

func TestSwitcherReusesActiveMode(t *testing.T) {
	bus := &recordBus{}
	s := newTestSwitcher(bus)

	calls := 0
	for i := 0; i < 3; i++ {
		if err := s.UseGraphics(func(*Graphics) { calls++ }); err != nil {
			t.Fatalf("UseGraphics: %v", err)
		}
	}
	if calls != 3 {
		t.Fatalf("calls=%d, want 3", calls)
	}
	if got := bus.inits(); got != 1 {
		t.Fatalf("inits=%d, want 1", got)
	}
	if got := s.Activations(); got != 1 {
		t.Fatalf("Activations=%d, want 1", got)
	}
}

func TestSwitcherAlternatesModes(t *testing.T) {
	bus := &recordBus{}
	s := newTestSwitcher(bus)

	seq := []Mode{ModeGraphics, ModeTerminal, ModeTerminal, ModeGraphics, ModeTerminal}
	for i, m := range seq {
		var err error
		switch m {
		case ModeGraphics:
			err = s.UseGraphics(func(*Graphics) {
				if s.Mode() != ModeGraphics {
					t.Fatalf("step %d: Mode=%v inside graphics", i, s.Mode())
				}
			})
		case ModeTerminal:
			err = s.UseTerminal(func(*Terminal) {
				if s.Mode() != ModeTerminal {
					t.Fatalf("step %d: Mode=%v inside terminal", i, s.Mode())
				}
			})
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if _, ok := s.state.(vacant); ok {
			t.Fatalf("step %d: state left vacant", i)
		}
	}
	if got := bus.inits(); got != 4 {
		t.Fatalf("inits=%d, want 4", got)
	}
}

func TestSwitcherReleasesPreviousContext(t *testing.T) {
	s := newTestSwitcher(&recordBus{})

	var g *Graphics
	if err := s.UseGraphics(func(gg *Graphics) { g = gg }); err != nil {
		t.Fatalf("UseGraphics: %v", err)
	}
	if err := s.UseTerminal(func(*Terminal) {}); err != nil {
		t.Fatalf("UseTerminal: %v", err)
	}
	if g.t != nil {
		t.Fatalf("old graphics context still holds the transport")
	}
	term, ok := s.state.(*Terminal)
	if !ok || term.t == nil {
		t.Fatalf("terminal does not own the transport: %#v", s.state)
	}
}

func TestSwitcherInitFailure(t *testing.T) {
	bus := &recordBus{fail: hal.ErrNack}
	s := newTestSwitcher(bus)

	var observed error
	s.OnActivate = func(m Mode, err error) { observed = err }

	ran := false
	err := s.UseGraphics(func(*Graphics) { ran = true })
	if !errors.Is(err, ErrInit) {
		t.Fatalf("err=%v, want ErrInit", err)
	}
	if !errors.Is(err, ErrTransport) || !errors.Is(err, hal.ErrNack) {
		t.Fatalf("err=%v does not wrap the bus error", err)
	}
	if ran {
		t.Fatalf("fn ran after failed activation")
	}
	if observed == nil {
		t.Fatalf("OnActivate did not see the failure")
	}
	if s.Mode() != ModeNone {
		t.Fatalf("Mode=%v after failure, want none", s.Mode())
	}
	if s.Err() != err {
		t.Fatalf("Err=%v, want %v", s.Err(), err)
	}
}

func TestSwitcherFailureIsFinal(t *testing.T) {
	bus := &recordBus{fail: hal.ErrNack}
	s := newTestSwitcher(bus)
	first := s.UseTerminal(func(*Terminal) {})
	if !errors.Is(first, ErrInit) {
		t.Fatalf("err=%v, want ErrInit", first)
	}

	// A healthy bus does not bring the switcher back.
	bus.fail = nil
	hooks := 0
	s.OnActivate = func(Mode, error) { hooks++ }
	ran := false
	if err := s.UseGraphics(func(*Graphics) { ran = true }); err != first {
		t.Fatalf("UseGraphics=%v, want %v", err, first)
	}
	if err := s.UseTerminal(func(*Terminal) { ran = true }); err != first {
		t.Fatalf("UseTerminal=%v, want %v", err, first)
	}
	if ran {
		t.Fatalf("fn ran after a failed activation")
	}
	if len(bus.txs) != 0 || hooks != 0 {
		t.Fatalf("retried: %d transfers, %d activation hooks", len(bus.txs), hooks)
	}
	if got := s.Activations(); got != 1 {
		t.Fatalf("Activations=%d, want 1", got)
	}
}

func TestInitSequenceRotation(t *testing.T) {
	tests := []struct {
		name     string
		rotation drivers.Rotation
		seg      byte
		com      byte
		wantErr  bool
	}{
		{name: "0", rotation: drivers.Rotation0, seg: 0xA1, com: 0xC8},
		{name: "180", rotation: drivers.Rotation180, seg: 0xA0, com: 0xC0},
		{name: "90", rotation: drivers.Rotation90, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &recordBus{}
			tr := NewTransport(bus, Config{Rotation: tt.rotation})
			err := tr.initialize()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if len(bus.txs) != 0 {
					t.Fatalf("rejected rotation still sent %d transfers", len(bus.txs))
				}
				return
			}
			if err != nil {
				t.Fatalf("initialize: %v", err)
			}
			seq := bus.commands()
			if len(seq) != len(bus.txs) {
				t.Fatalf("init sent %d data transfers", len(bus.txs)-len(seq))
			}
			if seq[0] != ssd1306.DISPLAYOFF || seq[len(seq)-1] != ssd1306.DISPLAYON {
				t.Fatalf("unexpected framing: % x", seq)
			}
			if !bytes.Contains(seq, []byte{ssd1306.SETMULTIPLEX, 15}) {
				t.Fatalf("multiplex not set for 16 rows: % x", seq)
			}
			if !bytes.Contains(seq, []byte{tt.seg, tt.com}) {
				t.Fatalf("missing remap %02x %02x: % x", tt.seg, tt.com, seq)
			}
		})
	}
}

func TestInitFailureSurfacesThroughDriver(t *testing.T) {
	// The driver ignores errors while configuring; only the final display-on is checked.
	calls := 0
	bus := busFunc(func(addr uint16, w, r []byte) error {
		calls++
		return hal.ErrNack
	})
	tr := NewTransport(bus, Config{})
	if err := tr.initialize(); !errors.Is(err, ErrTransport) {
		t.Fatalf("initialize=%v, want ErrTransport", err)
	}
	if calls < 2 {
		t.Fatalf("calls=%d, want the full sequence before the check", calls)
	}
}

func TestTransportUsesDefaultAddress(t *testing.T) {
	var addr uint16
	bus := busFunc(func(a uint16, w, r []byte) error { addr = a; return nil })
	tr := NewTransport(bus, Config{})
	if err := tr.initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if addr != DefaultAddress {
		t.Fatalf("addr=%#x, want %#x", addr, DefaultAddress)
	}
}

type busFunc func(addr uint16, w, r []byte) error

func (f busFunc) Tx(addr uint16, w, r []byte) error { return f(addr, w, r) }

func TestBrightnessWraps(t *testing.T) {
	b := DefaultBrightness
	for i := 0; i < 16; i++ {
		b = b.Raise()
	}
	if b != DefaultBrightness {
		t.Fatalf("after 16 steps b=%#x, want %#x", b, DefaultBrightness)
	}
	if got := Brightness(0xFF).Raise(); got != 0x0F {
		t.Fatalf("0xFF.Raise()=%#x, want 0x0F", got)
	}
}

func TestSetBrightnessCommand(t *testing.T) {
	bus := &recordBus{}
	s := newTestSwitcher(bus)
	if err := s.UseTerminal(func(term *Terminal) {
		bus.txs = nil
		if err := term.SetBrightness(0x2F); err != nil {
			t.Fatalf("SetBrightness: %v", err)
		}
	}); err != nil {
		t.Fatalf("UseTerminal: %v", err)
	}
	want := []byte{ssd1306.SETPRECHARGE, 0xF1, ssd1306.SETCONTRAST, 0x2F}
	if got := bus.commands(); len(bus.txs) != len(want) || !bytes.Equal(got, want) {
		t.Fatalf("commands=% x, want % x", got, want)
	}
}

func TestDisplayFlushesWholeFrame(t *testing.T) {
	bus := &recordBus{}
	s := newTestSwitcher(bus)
	if err := s.UseGraphics(func(g *Graphics) {
		bus.txs = nil
		g.SetPixel(1, 0, inkOn)
		if err := g.Display(); err != nil {
			t.Fatalf("Display: %v", err)
		}
	}); err != nil {
		t.Fatalf("UseGraphics: %v", err)
	}
	want := []byte{ssd1306.COLUMNADDR, 0, 95, ssd1306.PAGEADDR, 0, 1}
	if got := bus.commands(); !bytes.Equal(got, want) {
		t.Fatalf("window=% x, want % x", got, want)
	}
	last := bus.txs[len(bus.txs)-1]
	if last[0] != 0x40 || len(last) != 1+96*16/8 || last[2] != 0x01 {
		t.Fatalf("frame transfer=% x", last)
	}
}
