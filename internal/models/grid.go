package models

// DensityGrid is a 2D histogram of accumulated point weights, one cell
// per output pixel. Row 0 corresponds to the minimum latitude edge of
// the bounding region (latitude grows with the row index).
type DensityGrid struct {
	Width  int
	Height int
	Cells  []float64 // row-major, Cells[y*Width+x]
}

// NewDensityGrid creates a zeroed grid of the given dimensions.
func NewDensityGrid(width, height int) *DensityGrid {
	return &DensityGrid{
		Width:  width,
		Height: height,
		Cells:  make([]float64, width*height),
	}
}

// At returns the cell value at (x, y).
func (g *DensityGrid) At(x, y int) float64 {
	return g.Cells[y*g.Width+x]
}

// Add increments the cell at (x, y) by weight. The caller is expected
// to have bounds-checked the coordinates via projection.
func (g *DensityGrid) Add(x, y int, weight float64) {
	g.Cells[y*g.Width+x] += weight
}

// Total returns the sum of all cell values.
func (g *DensityGrid) Total() float64 {
	var sum float64
	for _, v := range g.Cells {
		sum += v
	}
	return sum
}

// NonZero returns the values of all non-zero cells.
func (g *DensityGrid) NonZero() []float64 {
	var values []float64
	for _, v := range g.Cells {
		if v != 0 {
			values = append(values, v)
		}
	}
	return values
}

// Clone returns a deep copy of the grid.
func (g *DensityGrid) Clone() *DensityGrid {
	out := NewDensityGrid(g.Width, g.Height)
	copy(out.Cells, g.Cells)
	return out
}
