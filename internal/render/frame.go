package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/fbolton/location-heatmap-go/internal/models"
)

// FrameOptions control how a quantized density grid is composed into an
// output frame.
type FrameOptions struct {
	Title           string
	Colormap        Colormap
	OverlayAlpha    float64 // opacity of the heatmap layer
	BackgroundAlpha float64 // opacity of the background map over white
}

var titleFace font.Face

func init() {
	// goregular.TTF is embedded and always parses.
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded font: %v", err))
	}
	titleFace = truetype.NewFace(f, &truetype.Options{Size: 13})
}

// Compose renders one frame: the background at BackgroundAlpha over a white
// canvas, the color-mapped intensity grid at OverlayAlpha on top, and the
// title. Grid row 0 is the minimum-latitude edge and is drawn at the bottom
// of the image. An all-zero grid produces a background-only frame.
func Compose(intensity *models.DensityGrid, background image.Image, opts FrameOptions) (image.Image, error) {
	w, h := intensity.Width, intensity.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty grid dimensions %dx%d", w, h)
	}
	if bb := background.Bounds(); bb.Dx() != w || bb.Dy() != h {
		return nil, fmt.Errorf("background size %dx%d does not match grid %dx%d",
			bb.Dx(), bb.Dy(), w, h)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	bgMask := image.NewUniform(color.Alpha{A: uint8(opts.BackgroundAlpha * 255)})
	draw.DrawMask(canvas, canvas.Bounds(), background, image.Point{}, bgMask, image.Point{}, draw.Over)

	if overlay := buildOverlay(intensity, opts); overlay != nil {
		draw.Draw(canvas, canvas.Bounds(), overlay, image.Point{}, draw.Over)
	}

	if opts.Title != "" {
		dc := gg.NewContextForRGBA(canvas)
		dc.SetFontFace(titleFace)
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(opts.Title, float64(w)/2, 14, 0.5, 0.5)
	}

	return canvas, nil
}

// buildOverlay maps the intensity grid through the colormap, flipping it
// vertically so latitude grows upward. Returns nil for an all-zero grid so
// empty frames stay background-only.
func buildOverlay(intensity *models.DensityGrid, opts FrameOptions) image.Image {
	if intensity.Total() == 0 {
		return nil
	}

	alpha := uint8(opts.OverlayAlpha * 255)
	overlay := image.NewNRGBA(image.Rect(0, 0, intensity.Width, intensity.Height))
	for y := 0; y < intensity.Height; y++ {
		imgY := intensity.Height - 1 - y
		for x := 0; x < intensity.Width; x++ {
			c := opts.Colormap.At(intensity.At(x, y))
			c.A = alpha
			overlay.SetNRGBA(x, imgY, c)
		}
	}
	return overlay
}

// SavePNG writes a composed frame to disk.
func SavePNG(path string, img image.Image) error {
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("failed to save frame %s: %w", path, err)
	}
	return nil
}
