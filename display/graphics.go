package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/pixel"
)

var (
	inkOn  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	inkOff = color.RGBA{A: 0xFF}
)

// Bitmap is a 1 bit per pixel image stored row-major, most significant bit first, each row padded to
// a whole byte. A set bit is a lit pixel.
type Bitmap struct {
	Width  int16
	Height int16
	Data   []byte
}

func (b Bitmap) stride() int { return (int(b.Width) + 7) / 8 }

// At reports whether the pixel at x, y is lit. Out of range reads as unlit.
func (b Bitmap) At(x, y int16) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	i := int(y)*b.stride() + int(x)/8
	if i >= len(b.Data) {
		return false
	}
	return b.Data[i]&(0x80>>(uint(x)%8)) != 0
}

// image returns b as a packed monochrome image. Rows that are a whole number of bytes wide already
// have the packed layout and are shared; anything else is repacked.
func (b Bitmap) image() pixel.Image[pixel.Monochrome] {
	w, h := int(b.Width), int(b.Height)
	if b.Width%8 == 0 && len(b.Data) == w*h/8 {
		return pixel.NewImageFromBytes[pixel.Monochrome](w, h, b.Data)
	}
	img := pixel.NewImage[pixel.Monochrome](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, pixel.Monochrome(b.At(int16(x), int16(y))))
		}
	}
	return img
}

// Graphics is the pixel canvas personality. Drawing only touches the driver frame buffer; Display
// pushes it to the panel.
type Graphics struct {
	t *Transport
}

var _ drivers.Displayer = (*Graphics)(nil)

func newGraphics(t *Transport) *Graphics {
	return &Graphics{t: t}
}

func (g *Graphics) mode() Mode { return ModeGraphics }

func (g *Graphics) release() *Transport {
	t := g.t
	g.t = nil
	return t
}

func (g *Graphics) init() error {
	return g.t.initialize()
}

// Size returns the canvas size in pixels.
func (g *Graphics) Size() (x, y int16) { return g.t.Size() }

// SetPixel lights the pixel when any channel of c is non-zero and clears it otherwise.
func (g *Graphics) SetPixel(x, y int16, c color.RGBA) { g.t.dev.SetPixel(x, y, c) }

// GetPixel reports whether the buffered pixel at x, y is lit.
func (g *Graphics) GetPixel(x, y int16) bool { return g.t.dev.GetPixel(x, y) }

// ClearBuffer unlights every buffered pixel.
func (g *Graphics) ClearBuffer() { g.t.dev.ClearBuffer() }

// DrawBitmap copies bm into the buffer with its top-left corner at x, y. Unlit bitmap pixels clear
// the buffer underneath. The bitmap must fit inside the canvas.
func (g *Graphics) DrawBitmap(x, y int16, bm Bitmap) error {
	if bm.Width <= 0 || bm.Height <= 0 {
		return nil
	}
	return g.t.dev.DrawBitmap(x, y, bm.image())
}

// Display flushes the whole buffer to the panel.
func (g *Graphics) Display() error { return g.t.flush() }

// SetBrightness sets the panel contrast.
func (g *Graphics) SetBrightness(b Brightness) error {
	return g.t.setBrightness(b)
}
