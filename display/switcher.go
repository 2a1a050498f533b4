package display

import "fmt"

// Mode names the personality currently bound to the transport.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeGraphics
	ModeTerminal
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeGraphics:
		return "graphics"
	case ModeTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// modeState is one variant of the switcher state. release hands the transport back and leaves the
// variant unusable.
type modeState interface {
	mode() Mode
	release() *Transport
}

// unbound holds the transport before the first activation.
type unbound struct{ t *Transport }

func (u *unbound) mode() Mode { return ModeNone }

func (u *unbound) release() *Transport {
	t := u.t
	u.t = nil
	return t
}

// failed is terminal: an activation did not complete and the transport is parked for good.
type failed struct {
	t   *Transport
	err error
}

func (f *failed) mode() Mode { return ModeNone }

func (f *failed) release() *Transport {
	t := f.t
	f.t = nil
	return t
}

// vacant marks the state while a swap is in progress. Nothing may observe it.
type vacant struct{}

func (vacant) mode() Mode          { return ModeNone }
func (vacant) release() *Transport { panic("display: switcher state is vacant") }

// Switcher lets callers use one personality at a time and re-initializes the controller whenever the
// requested personality differs from the active one. A failed activation is final: every later Use
// call returns the same ErrInit error without touching the bus. It is not safe for concurrent use.
type Switcher struct {
	state       modeState
	activations uint64

	// OnActivate, if set, is called after every activation attempt.
	OnActivate func(m Mode, err error)
}

// NewSwitcher takes ownership of t. No bus traffic happens until the first Use call.
func NewSwitcher(t *Transport) *Switcher {
	return &Switcher{state: &unbound{t: t}}
}

// Mode reports the active personality.
func (s *Switcher) Mode() Mode { return s.state.mode() }

// Err returns the activation error that stopped the switcher, or nil.
func (s *Switcher) Err() error {
	if f, ok := s.state.(*failed); ok {
		return f.err
	}
	return nil
}

// Activations is the number of init sequences issued so far.
func (s *Switcher) Activations() uint64 { return s.activations }

// UseGraphics runs fn with the graphics personality, activating it first if needed.
func (s *Switcher) UseGraphics(fn func(*Graphics)) error {
	if g, ok := s.state.(*Graphics); ok {
		fn(g)
		return nil
	}
	if err := s.Err(); err != nil {
		return err
	}
	g := newGraphics(s.take())
	s.state = g
	if err := s.activate(g, g.init); err != nil {
		return err
	}
	fn(g)
	return nil
}

// UseTerminal runs fn with the terminal personality, activating it first if needed.
func (s *Switcher) UseTerminal(fn func(*Terminal)) error {
	if t, ok := s.state.(*Terminal); ok {
		fn(t)
		return nil
	}
	if err := s.Err(); err != nil {
		return err
	}
	t := newTerminal(s.take())
	s.state = t
	if err := s.activate(t, t.init); err != nil {
		return err
	}
	fn(t)
	return nil
}

// take moves the transport out of the current variant, leaving the state vacant until the caller
// stores the replacement.
func (s *Switcher) take() *Transport {
	old := s.state
	s.state = vacant{}
	return old.release()
}

// activate runs the init sequence of the freshly stored variant. On failure the variant gives the
// transport back and the switcher parks it in the failed state.
func (s *Switcher) activate(v modeState, init func() error) error {
	s.activations++
	m := v.mode()
	err := init()
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrInit, m, err)
		s.state = &failed{t: v.release(), err: err}
	}
	if s.OnActivate != nil {
		s.OnActivate(m, err)
	}
	return err
}
