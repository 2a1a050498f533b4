//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

// hostKeyboard maps held keys onto the two console lines: A or Left presses button A, B or Right
// presses button B. Lines follow the key level, so holding a key keeps the line high.
type hostKeyboard struct {
	a *buttonLine
	b *buttonLine
}

func newHostKeyboard(a, b *buttonLine) *hostKeyboard {
	return &hostKeyboard{a: a, b: b}
}

func (k *hostKeyboard) poll() {
	k.a.drive(ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft))
	k.b.drive(ebiten.IsKeyPressed(ebiten.KeyB) || ebiten.IsKeyPressed(ebiten.KeyArrowRight))
}
