package console

import (
	"fmt"

	"oledcon/assets"
	"oledcon/display"
	"oledcon/hal"
)

// Screens.
const (
	ScreenAnimation  uint32 = 1
	ScreenGreeting   uint32 = 2
	ScreenAlphabet   uint32 = 3
	ScreenBrightness uint32 = 4
)

const (
	greeting = "Hello world!"
	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Config holds the loop timing in delay units.
type Config struct {
	// SubTick is the wait between two button checks inside the timed screens.
	SubTick uint32

	// FrameSubTicks and GlyphSubTicks are how many sub-ticks one animation frame and one alphabet
	// glyph stay up.
	FrameSubTicks int
	GlyphSubTicks int

	// IdlePoll is the wait between button checks on the static screens and in the release barrier.
	IdlePoll uint32
}

func (c *Config) setDefaults() {
	if c.SubTick == 0 {
		c.SubTick = 25
	}
	if c.FrameSubTicks <= 0 {
		c.FrameSubTicks = 10
	}
	if c.GlyphSubTicks <= 0 {
		c.GlyphSubTicks = 4
	}
	if c.IdlePoll == 0 {
		c.IdlePoll = 1
	}
}

// Loop is the screen state machine. Each screen body runs until a button effect ends it; the loop
// then applies the effect and waits for both buttons to be released.
type Loop struct {
	sw     *display.Switcher
	in     *Sampler
	delay  hal.Delay
	frames *assets.FrameSet
	cfg    Config

	screen     uint32
	brightness display.Brightness
}

func NewLoop(sw *display.Switcher, in *Sampler, delay hal.Delay, frames *assets.FrameSet, cfg Config) *Loop {
	cfg.setDefaults()
	return &Loop{
		sw:         sw,
		in:         in,
		delay:      delay,
		frames:     frames,
		cfg:        cfg,
		screen:     ScreenAnimation,
		brightness: display.DefaultBrightness,
	}
}

// Screen returns the raw screen counter.
func (l *Loop) Screen() uint32 { return l.screen }

// Brightness returns the current panel brightness.
func (l *Loop) Brightness() display.Brightness { return l.brightness }

// Run steps the loop until an activation fails.
func (l *Loop) Run() error {
	for {
		if err := l.Step(); err != nil {
			return err
		}
	}
}

// Step runs one dispatch: either a screen body followed by the release barrier, or the redirect of
// an unknown screen counter. The only error is a failed personality activation.
func (l *Loop) Step() error {
	var (
		eff Effect
		err error
	)
	switch l.screen {
	case ScreenAnimation:
		err = l.sw.UseGraphics(func(g *display.Graphics) { eff = l.animate(g) })
	case ScreenGreeting:
		err = l.sw.UseTerminal(func(t *display.Terminal) { eff = l.greet(t) })
	case ScreenAlphabet:
		err = l.sw.UseTerminal(func(t *display.Terminal) { eff = l.cycleGlyphs(t) })
	case ScreenBrightness:
		err = l.sw.UseTerminal(func(t *display.Terminal) { eff = l.showBrightness(t) })
	case 0:
		l.screen = ScreenAlphabet
		return nil
	default:
		l.screen = ScreenAnimation
		return nil
	}
	if err != nil {
		return err
	}

	l.apply(eff)
	l.in.WaitRelease(l.delay, l.cfg.IdlePoll)
	return nil
}

func (l *Loop) apply(eff Effect) {
	switch eff {
	case EffectAdvance:
		l.screen++
	case EffectBrighten:
		l.brightness = l.brightness.Raise()
	}
}

// wait spends n sub-ticks and returns the first effect seen after any of them.
func (l *Loop) wait(n int) Effect {
	for i := 0; i < n; i++ {
		l.delay.Wait(l.cfg.SubTick)
		if eff := l.in.Check(); eff != EffectNone {
			return eff
		}
	}
	return EffectNone
}

// idle polls the buttons until one is pressed.
func (l *Loop) idle() Effect {
	for {
		if eff := l.in.Check(); eff != EffectNone {
			return eff
		}
		l.delay.Wait(l.cfg.IdlePoll)
	}
}

func (l *Loop) animate(g *display.Graphics) Effect {
	_ = g.SetBrightness(l.brightness)
	l.frames.Reset()
	for {
		g.DrawBitmap(0, 0, l.frames.Next())
		_ = g.Display()
		if eff := l.wait(l.cfg.FrameSubTicks); eff != EffectNone {
			return eff
		}
	}
}

func (l *Loop) greet(t *display.Terminal) Effect {
	_ = t.SetBrightness(l.brightness)
	_ = t.Clear()
	_, _ = t.WriteString(greeting)
	return l.idle()
}

func (l *Loop) cycleGlyphs(t *display.Terminal) Effect {
	_ = t.SetBrightness(l.brightness)
	_ = t.Clear()
	for {
		for _, r := range alphabet {
			_ = t.PrintChar(r)
			if eff := l.wait(l.cfg.GlyphSubTicks); eff != EffectNone {
				return eff
			}
		}
	}
}

func (l *Loop) showBrightness(t *display.Terminal) Effect {
	_ = t.SetBrightness(l.brightness)
	_ = t.Clear()
	_, _ = fmt.Fprintf(t, "Brightness:\n--%d--", l.brightness)
	return l.idle()
}
