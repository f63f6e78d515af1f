package render

import (
	"fmt"
	"image"
	"image/color"
	"os"

	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// LoadBackground reads a background map image, converts it to grayscale
// and resizes it to the output grid dimensions.
func LoadBackground(path string, width, height int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open background image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode background image: %w", err)
	}

	return prepareBackground(src, width, height), nil
}

// prepareBackground grayscales the image by channel mean and scales it to
// the exact target size with Catmull-Rom resampling.
func prepareBackground(src image.Image, width, height int) image.Image {
	bounds := src.Bounds()
	gray := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			m := uint8(((r >> 8) + (g >> 8) + (b >> 8)) / 3)
			gray.SetNRGBA(x, y, color.NRGBA{R: m, G: m, B: m, A: 255})
		}
	}

	if bounds.Dx() == width && bounds.Dy() == height {
		return gray
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), gray, bounds, xdraw.Over, nil)
	return dst
}
