//go:build !tinygo && cgo

package hal

import (
	"image"
	"image/color"
	"time"

	"oledcon/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const windowScale = 8

// RunWindow starts a desktop window that shows the simulated panel and maps keys onto the buttons.
// The firmware runs on its own goroutine. RunWindow blocks until the window closes, hcfg.RunFor
// elapses or the firmware returns.
func RunWindow(hcfg HostConfig, run func(HAL) error) error {
	h := newHostHAL(hcfg)
	done := make(chan error, 1)
	go func() { done <- run(h) }()

	g := &hostGame{h: h, kbd: newHostKeyboard(h.keyA, h.keyB), done: done}
	if hcfg.RunFor > 0 {
		g.deadline = time.Now().Add(hcfg.RunFor)
	}
	ebiten.SetWindowTitle("oledcon (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.panel.width*windowScale, h.panel.height*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	kbd   *hostKeyboard
	done  <-chan error
	img   *image.RGBA
	panel *ebiten.Image

	deadline time.Time
}

func (g *hostGame) Update() error {
	g.kbd.poll()
	if !g.deadline.IsZero() && time.Now().After(g.deadline) {
		return ebiten.Termination
	}
	select {
	case err := <-g.done:
		if err != nil {
			return err
		}
		return ebiten.Termination
	default:
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	s := g.h.panel.Snapshot()
	if g.img == nil || g.img.Bounds().Dx() != s.Width || g.img.Bounds().Dy() != s.Height {
		g.img = image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
		if g.panel != nil {
			g.panel.Deallocate()
		}
		g.panel = ebiten.NewImage(s.Width, s.Height)
	}

	lit := litColor(s.Contrast)
	off := color.RGBA{R: 0x08, G: 0x08, B: 0x10, A: 0xFF}
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			c := off
			if s.At(x, y) {
				c = lit
			}
			g.img.SetRGBA(x, y, c)
		}
	}

	g.panel.WritePixels(g.img.Pix)
	screen.DrawImage(g.panel, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.panel.width, g.h.panel.height
}

// litColor shades a lit pixel by the controller contrast so brightness changes are visible.
func litColor(contrast uint8) color.RGBA {
	v := uint8(0x30 + (uint16(contrast)*(0xFF-0x30))/0xFF)
	return color.RGBA{R: v / 2, G: v, B: v, A: 0xFF}
}
