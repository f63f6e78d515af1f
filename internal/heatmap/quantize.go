package heatmap

import (
	"sort"

	"github.com/fbolton/location-heatmap-go/internal/models"
	"github.com/fbolton/location-heatmap-go/internal/stats"
)

// DefaultBreakCount is the number of percentile break points used to
// quantize density values into equal-population intensity bins.
const DefaultBreakCount = 99

// Breaks computes the percentile break points of the non-zero cells of a
// (typically blurred) density grid. Returns nil when the grid is empty,
// in which case quantization yields an all-zero intensity map.
func Breaks(grid *models.DensityGrid, count int) []float64 {
	nonZero := grid.NonZero()
	if len(nonZero) == 0 {
		return nil
	}
	return stats.PercentileBreaks(nonZero, count)
}

// ScaleBreaks multiplies every break point by factor. Used to renormalize
// breaks computed over the whole day before quantizing per-window frames,
// which each hold only a fraction of the total mass.
func ScaleBreaks(breaks []float64, factor float64) []float64 {
	scaled := make([]float64, len(breaks))
	for i, b := range breaks {
		scaled[i] = b * factor
	}
	return scaled
}

// Quantize maps every cell of the grid to an intensity in [0, 1] by
// locating it among the break points. Cells below the first break map to
// 0, cells above the last to 1.
func Quantize(grid *models.DensityGrid, breaks []float64) *models.DensityGrid {
	out := models.NewDensityGrid(grid.Width, grid.Height)
	if len(breaks) == 0 {
		return out
	}
	n := float64(len(breaks))
	for i, v := range grid.Cells {
		idx := sort.SearchFloat64s(breaks, v)
		out.Cells[i] = float64(idx) / n
	}
	return out
}
