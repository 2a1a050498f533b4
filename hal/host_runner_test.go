//go:build !tinygo

package hal

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRunHeadlessStopsAfterRunFor(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	err := RunHeadless(context.Background(), HeadlessConfig{Hz: 200},
		HostConfig{RunFor: 30 * time.Millisecond, Log: io.Discard},
		func(HAL) error { <-release; return nil })
	if err != nil {
		t.Fatalf("RunHeadless=%v, want clean stop", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond || elapsed > 2*time.Second {
		t.Fatalf("stopped after %v", elapsed)
	}
}

func TestRunHeadlessReturnsFirmwareError(t *testing.T) {
	err := RunHeadless(context.Background(), HeadlessConfig{Hz: 200},
		HostConfig{RunFor: time.Second, Log: io.Discard},
		func(HAL) error { return ErrNack })
	if err != ErrNack {
		t.Fatalf("RunHeadless=%v, want ErrNack", err)
	}
}

func TestTUIQuitsWhenRunForElapses(t *testing.T) {
	m := tuiModel{runFor: 10 * time.Millisecond}
	if m.Init() == nil {
		t.Fatalf("Init returned no commands")
	}
	_, cmd := m.Update(tuiStopMsg{})
	if cmd == nil {
		t.Fatalf("stop message produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("stop message did not quit the program")
	}
}
