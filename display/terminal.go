package display

import (
	"unicode/utf8"

	"oledcon/fonts/font5x7"

	"tinygo.org/x/tinyfont"
)

// Terminal is the character personality: a grid of fixed cells with a cursor. Printing past the
// last cell continues on the next row and the last row wraps to the first; nothing scrolls.
type Terminal struct {
	t    *Transport
	cols int16
	rows int16
	col  int16
	row  int16
	font tinyfont.Fonter
}

func newTerminal(t *Transport) *Terminal {
	w, h := t.Size()
	return &Terminal{
		t:    t,
		cols: w / font5x7.CellWidth,
		rows: h / font5x7.CellHeight,
		font: font5x7.Font,
	}
}

func (t *Terminal) mode() Mode { return ModeTerminal }

func (t *Terminal) release() *Transport {
	tr := t.t
	t.t = nil
	return tr
}

func (t *Terminal) init() error {
	if err := t.t.initialize(); err != nil {
		return err
	}
	return t.Clear()
}

// Grid returns the number of character columns and rows.
func (t *Terminal) Grid() (cols, rows int16) { return t.cols, t.rows }

// Position returns the cursor cell.
func (t *Terminal) Position() (col, row int16) { return t.col, t.row }

// Clear blanks the panel and homes the cursor.
func (t *Terminal) Clear() error {
	t.col, t.row = 0, 0
	t.t.dev.ClearBuffer()
	return t.t.flush()
}

// PrintChar draws r at the cursor and advances it. '\n' moves to the start of the next row and '\r'
// to the start of the current one.
func (t *Terminal) PrintChar(r rune) error {
	switch r {
	case '\n':
		t.newline()
		return nil
	case '\r':
		t.col = 0
		return nil
	}

	x := t.col * font5x7.CellWidth
	y := t.row * font5x7.CellHeight
	err := t.t.dev.FillRectangle(x, y, font5x7.CellWidth, font5x7.CellHeight, inkOff)
	if err == nil {
		tinyfont.DrawChar(t.t.dev, t.font, x, y+font5x7.Baseline, r, inkOn)
		err = t.t.flush()
	}

	t.col++
	if t.col >= t.cols {
		t.newline()
	}
	return err
}

func (t *Terminal) newline() {
	t.col = 0
	t.row++
	if t.row >= t.rows {
		t.row = 0
	}
}

// Write prints p as UTF-8 text. It stops at the first transport error.
func (t *Terminal) Write(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		r, size := utf8.DecodeRune(p[n:])
		if err := t.PrintChar(r); err != nil {
			return n, err
		}
		n += size
	}
	return n, nil
}

// WriteString prints s.
func (t *Terminal) WriteString(s string) (int, error) {
	for i, r := range s {
		if err := t.PrintChar(r); err != nil {
			return i, err
		}
	}
	return len(s), nil
}

// SetBrightness sets the panel contrast.
func (t *Terminal) SetBrightness(b Brightness) error {
	return t.t.setBrightness(b)
}
