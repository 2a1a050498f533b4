// Package assets holds the images compiled into the firmware.
package assets

import (
	_ "embed"
	"fmt"

	"oledcon/display"
)

const (
	FrameWidth  = 96
	FrameHeight = 16
	frameBytes  = FrameWidth * FrameHeight / 8
)

var (
	//go:embed frame0.raw
	frame0 []byte

	//go:embed frame1.raw
	frame1 []byte
)

// Frames are the animation frames in playback order.
var Frames = []display.Bitmap{
	mustFrame("frame0.raw", frame0),
	mustFrame("frame1.raw", frame1),
}

func mustFrame(name string, data []byte) display.Bitmap {
	if len(data) != frameBytes {
		panic(fmt.Sprintf("assets: %s is %d bytes, want %d", name, len(data), frameBytes))
	}
	return display.Bitmap{Width: FrameWidth, Height: FrameHeight, Data: data}
}

// FrameSet cycles through a fixed list of frames forever.
type FrameSet struct {
	frames []display.Bitmap
	next   int
}

// NewFrameSet returns a set positioned at the first of frames. It panics if frames is empty.
func NewFrameSet(frames []display.Bitmap) *FrameSet {
	if len(frames) == 0 {
		panic("assets: empty frame set")
	}
	return &FrameSet{frames: frames}
}

// Len returns the number of frames in one cycle.
func (s *FrameSet) Len() int { return len(s.frames) }

// Next returns the current frame and advances, wrapping after the last one.
func (s *FrameSet) Next() display.Bitmap {
	f := s.frames[s.next]
	s.next = (s.next + 1) % len(s.frames)
	return f
}

// Reset rewinds to the first frame.
func (s *FrameSet) Reset() { s.next = 0 }
