package assets

import (
	"bytes"
	"testing"

	"oledcon/display"
)

func TestEmbeddedFrames(t *testing.T) {
	if len(Frames) != 2 {
		t.Fatalf("len(Frames)=%d, want 2", len(Frames))
	}
	for i, f := range Frames {
		if f.Width != FrameWidth || f.Height != FrameHeight || len(f.Data) != frameBytes {
			t.Fatalf("frame %d: %dx%d %d bytes", i, f.Width, f.Height, len(f.Data))
		}
	}
	if bytes.Equal(Frames[0].Data, Frames[1].Data) {
		t.Fatalf("frames are identical")
	}
}

func TestFrameSetCycles(t *testing.T) {
	a := display.Bitmap{Width: 1, Height: 1, Data: []byte{0x80}}
	b := display.Bitmap{Width: 1, Height: 1, Data: []byte{0x00}}
	s := NewFrameSet([]display.Bitmap{a, b})

	want := []bool{true, false, true, false, true}
	for i, w := range want {
		if got := s.Next().At(0, 0); got != w {
			t.Fatalf("frame %d lit=%v, want %v", i, got, w)
		}
	}

	s.Reset()
	if !s.Next().At(0, 0) {
		t.Fatalf("Reset did not rewind to the first frame")
	}
}

func TestNewFrameSetRejectsEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewFrameSet(nil)
}
