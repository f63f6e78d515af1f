// Package render turns density grids into color-mapped frames layered on
// a background map image.
package render

import (
	"fmt"
	"image/color"
	"math"
)

// Colormap maps a normalized intensity in [0, 1] to a color by linear
// interpolation between fixed anchor colors.
type Colormap struct {
	name    string
	anchors []color.NRGBA
}

// spectral reproduces the 11 anchor colors of the Spectral diverging
// colormap, low intensity first.
var spectral = Colormap{
	name: "spectral",
	anchors: []color.NRGBA{
		{R: 158, G: 1, B: 66, A: 255},
		{R: 213, G: 62, B: 79, A: 255},
		{R: 244, G: 109, B: 67, A: 255},
		{R: 253, G: 174, B: 97, A: 255},
		{R: 254, G: 224, B: 139, A: 255},
		{R: 255, G: 255, B: 191, A: 255},
		{R: 230, G: 245, B: 152, A: 255},
		{R: 171, G: 221, B: 164, A: 255},
		{R: 102, G: 194, B: 165, A: 255},
		{R: 50, G: 136, B: 189, A: 255},
		{R: 94, G: 79, B: 162, A: 255},
	},
}

// viridis reproduces the 10 anchor colors of the Viridis sequential
// colormap.
var viridis = Colormap{
	name: "viridis",
	anchors: []color.NRGBA{
		{R: 68, G: 1, B: 84, A: 255},
		{R: 72, G: 40, B: 120, A: 255},
		{R: 62, G: 74, B: 137, A: 255},
		{R: 49, G: 104, B: 142, A: 255},
		{R: 38, G: 130, B: 142, A: 255},
		{R: 31, G: 158, B: 137, A: 255},
		{R: 53, G: 183, B: 121, A: 255},
		{R: 109, G: 205, B: 89, A: 255},
		{R: 180, G: 222, B: 44, A: 255},
		{R: 253, G: 231, B: 37, A: 255},
	},
}

var colormaps = map[string]Colormap{
	"spectral": spectral,
	"viridis":  viridis,
}

// ColormapByName returns a registered colormap.
func ColormapByName(name string) (Colormap, error) {
	cm, ok := colormaps[name]
	if !ok {
		return Colormap{}, fmt.Errorf("unknown colormap %q", name)
	}
	return cm, nil
}

// Name returns the colormap's registered name.
func (c Colormap) Name() string {
	return c.name
}

// At returns the interpolated color for an intensity in [0, 1]. Values
// outside the range are clamped.
func (c Colormap) At(t float64) color.NRGBA {
	if t <= 0 {
		return c.anchors[0]
	}
	if t >= 1 {
		return c.anchors[len(c.anchors)-1]
	}

	pos := t * float64(len(c.anchors)-1)
	lower := int(math.Floor(pos))
	frac := pos - float64(lower)

	a := c.anchors[lower]
	b := c.anchors[lower+1]
	return color.NRGBA{
		R: lerp(a.R, b.R, frac),
		G: lerp(a.G, b.G, frac),
		B: lerp(a.B, b.B, frac),
		A: 255,
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
