package models

import "fmt"

// BoundingRegion is the fixed-point latitude/longitude rectangle that a
// run renders. Constant for the duration of a run.
type BoundingRegion struct {
	Name     string
	MinLatE7 int64
	MaxLatE7 int64
	MinLonE7 int64
	MaxLonE7 int64
}

// Validate checks that the region spans a non-empty rectangle.
func (r BoundingRegion) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("region name must not be empty")
	}
	if r.MinLatE7 >= r.MaxLatE7 {
		return fmt.Errorf("invalid latitude bounds: min %d >= max %d", r.MinLatE7, r.MaxLatE7)
	}
	if r.MinLonE7 >= r.MaxLonE7 {
		return fmt.Errorf("invalid longitude bounds: min %d >= max %d", r.MinLonE7, r.MaxLonE7)
	}
	return nil
}

// GridSize returns the output grid dimensions in pixels for the given
// scale factor (E7 units per pixel).
func (r BoundingRegion) GridSize(scale int64) (width, height int) {
	width = int((r.MaxLonE7 - r.MinLonE7) / scale)
	height = int((r.MaxLatE7 - r.MinLatE7) / scale)
	return width, height
}

// Contains reports whether the E7 coordinate lies inside the region.
func (r BoundingRegion) Contains(latE7, lonE7 int64) bool {
	return latE7 >= r.MinLatE7 && latE7 < r.MaxLatE7 &&
		lonE7 >= r.MinLonE7 && lonE7 < r.MaxLonE7
}
