//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"oledcon/app"
	"oledcon/hal"
)

type hostOptions struct {
	headless hal.HeadlessConfig
	host     hal.HostConfig
	tui      bool
	verbose  bool
}

func parseFlags(args []string) (*hostOptions, error) {
	var (
		o        hostOptions
		runForMs int
	)
	fs := flag.NewFlagSet("oledcon", flag.ContinueOnError)
	fs.BoolVar(&o.headless.Enabled, "headless", false, "Run without a window.")
	fs.IntVar(&o.headless.Hz, "hz", 60, "Panel sample rate in headless mode.")
	fs.Uint64Var(&o.headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	fs.BoolVar(&o.headless.Dump, "dump", false, "Log the panel contents whenever they change (headless mode).")
	fs.BoolVar(&o.tui, "tui", false, "Show the panel inside the terminal.")
	fs.BoolVar(&o.host.Autopress, "autopress", false, "Press the buttons on a timer instead of the keyboard.")
	fs.DurationVar(&o.host.APeriod, "a-period", 3*time.Second, "Button A period with -autopress (0 = never).")
	fs.DurationVar(&o.host.BPeriod, "b-period", 0, "Button B period with -autopress (0 = never).")
	fs.BoolVar(&o.host.FailInit, "fail-init", false, "Make the simulated panel refuse every transfer.")
	fs.DurationVar(&o.host.Unit, "unit", time.Millisecond, "Length of one delay unit.")
	fs.BoolVar(&o.verbose, "v", false, "Log display mode switches.")
	fs.IntVar(&runForMs, "run-for-ms", 0, "Stop after N milliseconds in any mode (0 = run until closed).")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if runForMs < 0 {
		return nil, fmt.Errorf("invalid -run-for-ms: %d", runForMs)
	}
	o.host.RunFor = time.Duration(runForMs) * time.Millisecond
	return &o, nil
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	acfg := app.DefaultConfig()
	acfg.Verbose = o.verbose
	run := func(h hal.HAL) error { return app.Start(h, acfg) }

	switch {
	case o.headless.Enabled:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, o.headless, o.host, run)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	case o.tui:
		err = hal.RunTUI(o.host, run)
	default:
		err = hal.RunWindow(o.host, run)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
