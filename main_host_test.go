//go:build !tinygo

package main

import (
	"testing"
	"time"
)

func TestRunForAppliesToEveryRunner(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "window", args: []string{"-run-for-ms", "250"}},
		{name: "tui", args: []string{"-tui", "-run-for-ms", "250"}},
		{name: "headless", args: []string{"-headless", "-run-for-ms", "250"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := parseFlags(tt.args)
			if err != nil {
				t.Fatalf("parseFlags: %v", err)
			}
			if o.host.RunFor != 250*time.Millisecond {
				t.Fatalf("RunFor=%v, want 250ms", o.host.RunFor)
			}
		})
	}
}

func TestParseFlagsRejectsNegativeRunFor(t *testing.T) {
	if _, err := parseFlags([]string{"-run-for-ms", "-5"}); err == nil {
		t.Fatalf("expected error for a negative run time")
	}
}

func TestParseFlagsDefaults(t *testing.T) {
	o, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if o.headless.Enabled || o.tui || o.host.RunFor != 0 || o.headless.Hz != 60 {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}
