// Package console implements the two-button operator interface: button sampling and the screen
// loop that drives the display personalities.
package console

import "oledcon/hal"

// Buttons is one sample of both console lines. True means pressed.
type Buttons struct {
	A bool
	B bool
}

// Effect is what a sample asks the loop to do. Any effect other than EffectNone ends the running
// screen.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectAdvance
	EffectBrighten
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectAdvance:
		return "advance"
	case EffectBrighten:
		return "brighten"
	default:
		return "unknown"
	}
}

// Classify maps a sample to its effect. A pressed wins over B.
func Classify(b Buttons) Effect {
	switch {
	case b.A:
		return EffectAdvance
	case b.B:
		return EffectBrighten
	default:
		return EffectNone
	}
}

// Sampler reads the two console lines.
type Sampler struct {
	a hal.GPIOPin
	b hal.GPIOPin
}

func NewSampler(a, b hal.GPIOPin) *Sampler {
	return &Sampler{a: a, b: b}
}

// Sample reads both lines. A line that fails to read counts as released.
func (s *Sampler) Sample() Buttons {
	return Buttons{A: high(s.a), B: high(s.b)}
}

// Check samples the lines and classifies the result.
func (s *Sampler) Check() Effect {
	return Classify(s.Sample())
}

// WaitRelease polls until both lines read low, waiting poll units between reads.
func (s *Sampler) WaitRelease(d hal.Delay, poll uint32) {
	for {
		b := s.Sample()
		if !b.A && !b.B {
			return
		}
		d.Wait(poll)
	}
}

func high(p hal.GPIOPin) bool {
	if p == nil {
		return false
	}
	level, err := p.Read()
	return err == nil && level
}
