package heatmap

import (
	"math"

	"github.com/fbolton/location-heatmap-go/internal/models"
)

// GaussianBlur returns a blurred copy of the grid using a separable
// Gaussian kernel with the given sigma. Edges are handled by reflection,
// so the total mass of the grid is preserved. sigma <= 0 returns a clone.
func GaussianBlur(grid *models.DensityGrid, sigma float64) *models.DensityGrid {
	if sigma <= 0 {
		return grid.Clone()
	}

	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	tmp := models.NewDensityGrid(grid.Width, grid.Height)
	out := models.NewDensityGrid(grid.Width, grid.Height)

	// Horizontal pass
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				sum += kernel[k+radius] * grid.At(reflect(x+k, grid.Width), y)
			}
			tmp.Cells[y*grid.Width+x] = sum
		}
	}

	// Vertical pass
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				sum += kernel[k+radius] * tmp.At(x, reflect(y+k, grid.Height))
			}
			out.Cells[y*grid.Width+x] = sum
		}
	}

	return out
}

// gaussianKernel builds a normalized 1D kernel truncated at 4 sigma.
func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)

	var sum float64
	for k := -radius; k <= radius; k++ {
		v := math.Exp(-float64(k*k) / (2 * sigma * sigma))
		kernel[k+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// reflect maps an out-of-range index back into [0, n) by mirroring at
// the edges.
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}
