//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"oledcon/internal/buildinfo"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Terminals only report key presses, so a press holds the line high for tuiHold after the last
// repeat before releasing it.
const (
	tuiHold  = 120 * time.Millisecond
	tuiFrame = time.Second / 30
)

type tuiKeys struct {
	A    key.Binding
	B    key.Binding
	Quit key.Binding
}

func (k tuiKeys) ShortHelp() []key.Binding  { return []key.Binding{k.A, k.B, k.Quit} }
func (k tuiKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var defaultTUIKeys = tuiKeys{
	A: key.NewBinding(
		key.WithKeys("a", "left"),
		key.WithHelp("a/←", "button A (next screen)"),
	),
	B: key.NewBinding(
		key.WithKeys("b", "right"),
		key.WithHelp("b/→", "button B (brightness)"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	tuiTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	tuiBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Background(lipgloss.Color("16"))
	tuiError = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type tuiFrameMsg struct{}

type tuiReleaseMsg struct {
	pin *buttonLine
	seq uint64
}

type tuiDoneMsg struct{ err error }

type tuiStopMsg struct{}

type tuiModel struct {
	h    *hostHAL
	keys tuiKeys
	help help.Model
	done <-chan error

	runFor time.Duration

	seqA, seqB uint64
	err        error
	halted     bool
}

// RunTUI shows the simulated panel inside the terminal using half-block characters and maps keys
// onto the buttons. Diagnostics go to hcfg.Log, which defaults to io.Discard here so the log does
// not tear the screen.
func RunTUI(hcfg HostConfig, run func(HAL) error) error {
	if hcfg.Log == nil {
		hcfg.Log = io.Discard
	}
	h := newHostHAL(hcfg)
	done := make(chan error, 1)
	go func() { done <- run(h) }()

	m := tuiModel{h: h, keys: defaultTUIKeys, help: help.New(), done: done, runFor: hcfg.RunFor}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(tuiModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func (m tuiModel) Init() tea.Cmd {
	cmds := []tea.Cmd{tuiTick(), m.waitDone()}
	if m.runFor > 0 {
		cmds = append(cmds, tea.Tick(m.runFor, func(time.Time) tea.Msg { return tuiStopMsg{} }))
	}
	return tea.Batch(cmds...)
}

func tuiTick() tea.Cmd {
	return tea.Tick(tuiFrame, func(time.Time) tea.Msg { return tuiFrameMsg{} })
}

func (m tuiModel) waitDone() tea.Cmd {
	return func() tea.Msg { return tuiDoneMsg{err: <-m.done} }
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.A):
			m.seqA++
			return m, m.press(m.h.keyA, m.seqA)
		case key.Matches(msg, m.keys.B):
			m.seqB++
			return m, m.press(m.h.keyB, m.seqB)
		}
	case tuiReleaseMsg:
		if (msg.pin == m.h.keyA && msg.seq == m.seqA) || (msg.pin == m.h.keyB && msg.seq == m.seqB) {
			msg.pin.drive(false)
		}
	case tuiDoneMsg:
		m.err = msg.err
		m.halted = true
	case tuiStopMsg:
		return m, tea.Quit
	case tuiFrameMsg:
		return m, tuiTick()
	}
	return m, nil
}

func (m tuiModel) press(pin *buttonLine, seq uint64) tea.Cmd {
	pin.drive(true)
	return tea.Tick(tuiHold, func(time.Time) tea.Msg { return tuiReleaseMsg{pin: pin, seq: seq} })
}

func (m tuiModel) View() string {
	s := m.h.panel.Snapshot()
	lit := litShade(s.Contrast)

	var b strings.Builder
	for y := 0; y < s.Height; y += 2 {
		for x := 0; x < s.Width; x++ {
			top, bottom := s.At(x, y), s.At(x, y+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if y+2 < s.Height {
			b.WriteByte('\n')
		}
	}

	header := tuiTitle.Render(fmt.Sprintf("oledcon %s  contrast=%d", buildinfo.Short(), s.Contrast))
	body := tuiBox.Foreground(lit).Render(b.String())
	footer := m.help.View(m.keys)
	if m.halted {
		status := "firmware halted"
		if m.err != nil {
			status = fmt.Sprintf("firmware halted: %v", m.err)
		}
		footer = tuiError.Render(status) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// litShade maps the controller contrast onto the upper part of the 256-color grayscale ramp.
func litShade(contrast uint8) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("%d", 236+int(contrast)*19/255))
}
