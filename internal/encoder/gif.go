// Package encoder assembles rendered frame files into animated artifacts.
package encoder

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// EncodeGIF reads the frame PNGs in order and writes an animated GIF with
// the given per-frame delay. Frames taller than maxHeight are downscaled
// proportionally; GIF is quite space hungry. The palette is derived from
// the last frame, which has seen the full day of persistence.
func EncodeGIF(framePaths []string, outPath string, delayMs, maxHeight int) error {
	if len(framePaths) == 0 {
		return fmt.Errorf("no frames to encode")
	}

	last, err := openPNG(framePaths[len(framePaths)-1])
	if err != nil {
		return err
	}
	framePalette := derivePalette(downscale(last, maxHeight))

	anim := &gif.GIF{}
	for _, path := range framePaths {
		img, err := openPNG(path)
		if err != nil {
			return err
		}
		img = downscale(img, maxHeight)

		paletted := image.NewPaletted(img.Bounds(), framePalette)
		draw.Draw(paletted, img.Bounds(), img, image.Point{}, draw.Over)

		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delayMs/10) // GIF delays are in 1/100 s
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create GIF file: %w", err)
	}
	defer out.Close()

	if err := gif.EncodeAll(out, anim); err != nil {
		return fmt.Errorf("failed to encode GIF: %w", err)
	}
	return nil
}

// derivePalette quantizes an image against the Plan9 palette and returns
// the resulting palette for reuse across all frames.
func derivePalette(img image.Image) color.Palette {
	paletted := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.Draw(paletted, img.Bounds(), img, image.Point{}, draw.Over)
	return paletted.Palette
}

// downscale shrinks the image proportionally so its height does not exceed
// maxHeight.
func downscale(img image.Image, maxHeight int) image.Image {
	bounds := img.Bounds()
	if bounds.Dy() <= maxHeight {
		return img
	}

	factor := float64(bounds.Dy()) / float64(maxHeight)
	width := int(float64(bounds.Dx()) / factor)

	dst := image.NewRGBA(image.Rect(0, 0, width, maxHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

func openPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %s: %w", path, err)
	}
	return img, nil
}
