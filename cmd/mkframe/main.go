// Command mkframe builds the raw 1 bit per pixel animation frames embedded by package assets, and
// renders existing frames back to PNG for review.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

func main() {
	var (
		inPath    = flag.String("in", "", "Input image (encode) or raw frame (decode).")
		outPath   = flag.String("out", "", "Output raw frame (encode) or PNG (decode).")
		mode      = flag.String("mode", "encode", "encode|decode.")
		text      = flag.String("text", "", "Render this text instead of reading -in (encode mode only).")
		ttfPath   = flag.String("ttf", "", "TrueType font for -text (default: built-in 7x13).")
		size      = flag.Float64("size", 12, "Font size in points for -ttf.")
		threshold = flag.Int("threshold", 50, "Luma percentage above which a pixel is lit.")
		invert    = flag.Bool("invert", false, "Invert the result.")
		width     = flag.Int("width", 96, "Frame width in pixels.")
		height    = flag.Int("height", 16, "Frame height in pixels.")
	)
	flag.Parse()

	if *outPath == "" || (*inPath == "" && *text == "") {
		fatalf("usage: mkframe -in in.png -out frame.raw [-threshold 50] [-invert]\n       mkframe -text 'Hello' [-ttf font.ttf -size 12] -out frame.raw\n       mkframe -mode decode -in frame.raw -out frame.png")
	}

	opts := options{
		width:     *width,
		height:    *height,
		threshold: *threshold,
		invert:    *invert,
	}

	switch strings.ToLower(*mode) {
	case "encode":
		var (
			src image.Image
			err error
		)
		if *text != "" {
			face, ferr := loadFace(*ttfPath, *size)
			if ferr != nil {
				fatalf("font: %v", ferr)
			}
			src = renderText(*text, face, opts.width, opts.height)
		} else {
			src, err = readImage(*inPath)
			if err != nil {
				fatalf("read: %v", err)
			}
		}
		if err := os.WriteFile(*outPath, encode(src, opts), 0o644); err != nil {
			fatalf("write: %v", err)
		}
	case "decode":
		raw, err := os.ReadFile(*inPath)
		if err != nil {
			fatalf("read: %v", err)
		}
		img, err := decode(raw, opts.width, opts.height)
		if err != nil {
			fatalf("decode: %v", err)
		}
		if err := writePNG(*outPath, img); err != nil {
			fatalf("write: %v", err)
		}
	default:
		fatalf("unknown mode: %s", *mode)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(tt, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}
