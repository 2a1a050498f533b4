//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// Dump logs the panel contents whenever they change between two ticks.
	Dump bool
}

// RunHeadless runs the firmware without opening a window. The firmware runs on its own goroutine;
// the runner samples the simulated panel at Hz until Ticks or hcfg.RunFor elapse, ctx ends or the
// firmware returns. Running out of RunFor is a clean stop.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, hcfg HostConfig, run func(HAL) error) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	var stop <-chan time.Time
	if hcfg.RunFor > 0 {
		timer := time.NewTimer(hcfg.RunFor)
		defer timer.Stop()
		stop = timer.C
	}

	h := newHostHAL(hcfg)
	done := make(chan error, 1)
	go func() { done <- run(h) }()

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick, lastSerial uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		case err := <-done:
			return err
		case <-t.C:
			if cfg.Dump {
				if serial := h.panel.Serial(); serial != lastSerial {
					lastSerial = serial
					dumpPanel(h.logger, tick, h.panel.Snapshot())
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func dumpPanel(l Logger, tick uint64, s PanelSnapshot) {
	l.WriteLineString(fmt.Sprintf("panel: tick=%d on=%v contrast=%d", tick, s.On, s.Contrast))
	for _, line := range s.Lines() {
		l.WriteLineString(line)
	}
}
