package main

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type options struct {
	width     int
	height    int
	threshold int
	invert    bool
}

// encode scales src to the frame size and packs it row-major, most significant bit first.
func encode(src image.Image, o options) []byte {
	dst := image.NewGray(image.Rect(0, 0, o.width, o.height))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	stride := (o.width + 7) / 8
	out := make([]byte, stride*o.height)
	cut := uint8(o.threshold * 255 / 100)
	for y := 0; y < o.height; y++ {
		for x := 0; x < o.width; x++ {
			lit := dst.GrayAt(x, y).Y > cut
			if lit != o.invert {
				out[y*stride+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}
	return out
}

// decode unpacks a raw frame into a black and white image.
func decode(raw []byte, width, height int) (*image.Gray, error) {
	stride := (width + 7) / 8
	if len(raw) != stride*height {
		return nil, fmt.Errorf("frame is %d bytes, want %d for %dx%d", len(raw), stride*height, width, height)
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if raw[y*stride+x/8]&(0x80>>uint(x%8)) != 0 {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img, nil
}

// renderText draws s centered on a black canvas of the given size.
func renderText(s string, face font.Face, width, height int) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Gray{Y: 0xFF}),
		Face: face,
	}
	m := face.Metrics()
	textWidth := d.MeasureString(s).Ceil()
	x := (width - textWidth) / 2
	baseline := (height + m.Ascent.Ceil() - m.Descent.Ceil()) / 2
	d.Dot = fixed.P(x, baseline)
	d.DrawString(s)
	return img
}
