package spatial

import (
	"math"

	"github.com/fbolton/location-heatmap-go/internal/models"
)

// Project maps an E7 coordinate to integer pixel offsets inside the
// density grid defined by region and scale (E7 units per pixel).
// Out-of-bounds points are discarded (ok=false), never clamped.
func Project(latE7, lonE7 int64, region models.BoundingRegion, scale int64) (x, y int, ok bool) {
	width, height := region.GridSize(scale)

	x = int(math.Round(float64(lonE7-region.MinLonE7) / float64(scale)))
	y = int(math.Round(float64(latE7-region.MinLatE7) / float64(scale)))

	if x < 0 || x >= width || y < 0 || y >= height {
		return x, y, false
	}
	return x, y, true
}
