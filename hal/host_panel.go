//go:build !tinygo

package hal

import (
	"strings"
	"sync"
)

const (
	panelColumns = 128
	panelPages   = 8
)

// argCount lists the controller commands that take parameter bytes.
var argCount = map[byte]int{
	0x20: 1, // memory addressing mode
	0x21: 2, // column address
	0x22: 2, // page address
	0x81: 1, // contrast
	0x8D: 1, // charge pump
	0xA8: 1, // multiplex ratio
	0xD3: 1, // display offset
	0xD5: 1, // clock divide
	0xD9: 1, // precharge
	0xDA: 1, // COM pins
	0xDB: 1, // VCOMH deselect
}

// Panel simulates an SSD1306-class controller behind an I2C address. It decodes the command and
// data streams into display RAM so host runners and tests can look at what the firmware drew.
type Panel struct {
	mu sync.Mutex

	addr   uint16
	width  int
	height int
	ram    [panelPages][panelColumns]byte

	on         bool
	inverted   bool
	contrast   uint8
	precharge  uint8
	segRemap   bool
	comScanDec bool
	addrMode   byte

	colStart, colEnd, col    int
	pageStart, pageEnd, page int

	// A command whose parameter bytes have not all arrived yet. The controller keeps collecting
	// them across transfers.
	pending     byte
	pendingArgs []byte
	pendingWant int

	displayOffs int
	failNext    int
	failAlways  bool
	serial      uint64
}

// NewPanel returns a powered-down panel of the given visible size answering at addr.
func NewPanel(addr uint16, width, height int) *Panel {
	if width <= 0 || width > panelColumns {
		width = panelColumns
	}
	if height <= 0 || height > panelPages*8 {
		height = panelPages * 8
	}
	return &Panel{
		addr:     addr,
		width:    width,
		height:   height,
		contrast: 0x7F,
		addrMode: 2,
		colEnd:   panelColumns - 1,
		pageEnd:  panelPages - 1,
	}
}

// FailNext makes the next n transfers fail with ErrNack.
func (p *Panel) FailNext(n int) {
	p.mu.Lock()
	p.failNext = n
	p.mu.Unlock()
}

// FailAlways makes every transfer fail with ErrNack while set.
func (p *Panel) FailAlways(fail bool) {
	p.mu.Lock()
	p.failAlways = fail
	p.mu.Unlock()
}

// DisplayOffs reports how many display-off commands were received. Every init sequence starts
// with one, so it doubles as an init counter.
func (p *Panel) DisplayOffs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.displayOffs
}

// Serial increases on every accepted transfer.
func (p *Panel) Serial() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.serial
}

// Tx implements drivers.I2C.
func (p *Panel) Tx(addr uint16, w, r []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if addr != p.addr {
		return ErrNack
	}
	if p.failAlways {
		return ErrNack
	}
	if p.failNext > 0 {
		p.failNext--
		return ErrNack
	}
	for i := range r {
		r[i] = 0
	}
	if len(w) == 0 {
		return nil
	}
	p.serial++

	ctrl, payload := w[0], w[1:]
	if ctrl&0x40 != 0 {
		for _, b := range payload {
			p.writeData(b)
		}
		return nil
	}
	for _, b := range payload {
		p.commandByte(b)
	}
	return nil
}

func (p *Panel) commandByte(b byte) {
	if p.pendingWant > 0 {
		p.pendingArgs = append(p.pendingArgs, b)
		p.pendingWant--
		if p.pendingWant == 0 {
			p.command(p.pending, p.pendingArgs)
		}
		return
	}
	n := argCount[b]
	if n == 0 {
		p.command(b, nil)
		return
	}
	p.pending, p.pendingArgs, p.pendingWant = b, p.pendingArgs[:0], n
}

func (p *Panel) command(cmd byte, args []byte) {
	switch {
	case cmd == 0xAE:
		p.on = false
		p.displayOffs++
	case cmd == 0xAF:
		p.on = true
	case cmd == 0xA6:
		p.inverted = false
	case cmd == 0xA7:
		p.inverted = true
	case cmd == 0xA0:
		p.segRemap = false
	case cmd == 0xA1:
		p.segRemap = true
	case cmd == 0xC0:
		p.comScanDec = false
	case cmd == 0xC8:
		p.comScanDec = true
	case cmd == 0x81:
		p.contrast = args[0]
	case cmd == 0xD9:
		p.precharge = args[0]
	case cmd == 0x20:
		p.addrMode = args[0] & 0x03
	case cmd == 0x21:
		p.colStart = int(args[0]) % panelColumns
		p.colEnd = int(args[1]) % panelColumns
		p.col = p.colStart
	case cmd == 0x22:
		p.pageStart = int(args[0]) % panelPages
		p.pageEnd = int(args[1]) % panelPages
		p.page = p.pageStart
	case cmd >= 0xB0 && cmd <= 0xB7:
		p.page = int(cmd - 0xB0)
	case cmd <= 0x0F:
		p.col = (p.col &^ 0x0F) | int(cmd)
	case cmd >= 0x10 && cmd <= 0x1F:
		p.col = (p.col & 0x0F) | int(cmd-0x10)<<4
	}
}

func (p *Panel) writeData(b byte) {
	if p.page < panelPages && p.col < panelColumns {
		p.ram[p.page][p.col] = b
	}
	switch p.addrMode {
	case 0: // horizontal
		p.col++
		if p.col > p.colEnd {
			p.col = p.colStart
			p.page++
			if p.page > p.pageEnd {
				p.page = p.pageStart
			}
		}
	case 1: // vertical
		p.page++
		if p.page > p.pageEnd {
			p.page = p.pageStart
			p.col++
			if p.col > p.colEnd {
				p.col = p.colStart
			}
		}
	default: // page
		if p.col < panelColumns-1 {
			p.col++
		}
	}
}

// PanelSnapshot is a copy of what the panel currently shows.
type PanelSnapshot struct {
	Width    int
	Height   int
	On       bool
	Contrast uint8
	lit      []bool
}

// At reports whether the visible pixel at (x, y) is lit.
func (s PanelSnapshot) At(x, y int) bool {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return false
	}
	return s.lit[y*s.Width+x]
}

// Lines renders the snapshot with '#' for lit and '.' for dark pixels.
func (s PanelSnapshot) Lines() []string {
	lines := make([]string, 0, s.Height)
	var sb strings.Builder
	for y := 0; y < s.Height; y++ {
		sb.Reset()
		for x := 0; x < s.Width; x++ {
			if s.At(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// Snapshot maps display RAM to visible pixels, honoring segment remap, COM scan direction,
// inversion and the display on/off state.
func (p *Panel) Snapshot() PanelSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := PanelSnapshot{
		Width:    p.width,
		Height:   p.height,
		On:       p.on,
		Contrast: p.contrast,
		lit:      make([]bool, p.width*p.height),
	}
	if !p.on {
		return s
	}
	for y := 0; y < p.height; y++ {
		row := y
		if !p.comScanDec {
			row = p.height - 1 - y
		}
		for x := 0; x < p.width; x++ {
			col := x
			if !p.segRemap {
				col = p.width - 1 - x
			}
			on := p.ram[row/8][col]&(1<<(row%8)) != 0
			s.lit[y*p.width+x] = on != p.inverted
		}
	}
	return s
}
