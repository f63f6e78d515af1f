package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinutesSinceMidnight(t *testing.T) {
	rec := LocationRecord{
		TimestampMs: time.Date(2020, 6, 1, 8, 45, 59, 0, time.UTC).UnixMilli(),
	}
	assert.Equal(t, 8*60+45, rec.MinutesSinceMidnight())
}

func TestBoundingRegionValidate(t *testing.T) {
	valid := BoundingRegion{Name: "x", MinLatE7: 1, MaxLatE7: 2, MinLonE7: 3, MaxLonE7: 4}
	assert.NoError(t, valid.Validate())

	assert.Error(t, BoundingRegion{MinLatE7: 1, MaxLatE7: 2, MinLonE7: 3, MaxLonE7: 4}.Validate())
	assert.Error(t, BoundingRegion{Name: "x", MinLatE7: 2, MaxLatE7: 1, MinLonE7: 3, MaxLonE7: 4}.Validate())
	assert.Error(t, BoundingRegion{Name: "x", MinLatE7: 1, MaxLatE7: 2, MinLonE7: 4, MaxLonE7: 3}.Validate())
}

func TestBoundingRegionGridSize(t *testing.T) {
	region := BoundingRegion{
		Name:     "x",
		MinLatE7: 450000000,
		MaxLatE7: 450100000,
		MinLonE7: 90000000,
		MaxLonE7: 90050000,
	}
	w, h := region.GridSize(1000)
	assert.Equal(t, 50, w)
	assert.Equal(t, 100, h)
}

func TestDensityGrid(t *testing.T) {
	grid := NewDensityGrid(3, 2)
	grid.Add(2, 1, 4)
	grid.Add(2, 1, 1)

	assert.Equal(t, 5.0, grid.At(2, 1))
	assert.Equal(t, 5.0, grid.Total())
	assert.Equal(t, []float64{5}, grid.NonZero())

	clone := grid.Clone()
	clone.Add(0, 0, 1)
	assert.Equal(t, 0.0, grid.At(0, 0))
}
