//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
	"time"
)

// buttonLine is a console button on the host. Runners press and release it with drive; the
// firmware only reads it.
type buttonLine struct {
	mu    sync.Mutex
	name  string
	level bool
}

func newButtonLine(name string) *buttonLine { return &buttonLine{name: name} }

func (b *buttonLine) Name() string   { return b.name }
func (b *buttonLine) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullDown }

func (b *buttonLine) Configure(mode GPIOMode, pull GPIOPull) error {
	return checkConfig(b.name, b.Caps(), mode, pull)
}

func (b *buttonLine) Read() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.level, nil
}

func (b *buttonLine) Write(bool) error {
	return fmt.Errorf("gpio: %s: button is input only", b.name)
}

func (b *buttonLine) drive(pressed bool) {
	b.mu.Lock()
	b.level = pressed
	b.mu.Unlock()
}

// resetLine is the panel reset output. It remembers the last level written.
type resetLine struct {
	mu    sync.Mutex
	name  string
	level bool
}

func (r *resetLine) Name() string   { return r.name }
func (r *resetLine) Caps() GPIOCaps { return GPIOCapOutput }

func (r *resetLine) Configure(mode GPIOMode, pull GPIOPull) error {
	return checkConfig(r.name, r.Caps(), mode, pull)
}

func (r *resetLine) Read() (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.level, nil
}

func (r *resetLine) Write(level bool) error {
	r.mu.Lock()
	r.level = level
	r.mu.Unlock()
	return nil
}

// autoButton presses itself: high for `hold` once every `period`, the first press `period` after
// creation. The autopress runners use it in place of an operator.
type autoButton struct {
	name   string
	t0     time.Time
	now    func() time.Time
	period time.Duration
	hold   time.Duration
}

func newAutoButton(name string, period, hold time.Duration, now func() time.Time) *autoButton {
	if hold > period {
		hold = period
	}
	return &autoButton{name: name, t0: now(), now: now, period: period, hold: hold}
}

func (a *autoButton) Name() string   { return a.name }
func (a *autoButton) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullDown }

func (a *autoButton) Configure(mode GPIOMode, pull GPIOPull) error {
	return checkConfig(a.name, a.Caps(), mode, pull)
}

func (a *autoButton) Read() (bool, error) {
	elapsed := a.now().Sub(a.t0) - a.period
	if elapsed < 0 {
		return false, nil
	}
	return elapsed%a.period < a.hold, nil
}

func (a *autoButton) Write(bool) error {
	return fmt.Errorf("gpio: %s: button is input only", a.name)
}
