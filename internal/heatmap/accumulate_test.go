package heatmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fbolton/location-heatmap-go/internal/models"
)

var testRegion = models.BoundingRegion{
	Name:     "test",
	MinLatE7: 450000000,
	MaxLatE7: 450100000,
	MinLonE7: 90000000,
	MaxLonE7: 90050000,
}

const testScale = 1000

// at builds a record at the given UTC clock time, inside the region.
func at(hour, minute int) models.LocationRecord {
	ts := time.Date(2020, 6, 1, hour, minute, 0, 0, time.UTC)
	return models.LocationRecord{
		TimestampMs: ts.UnixMilli(),
		LatitudeE7:  450050000,
		LongitudeE7: 90025000,
	}
}

func TestAccumulateTotalsEqualInBoundsCount(t *testing.T) {
	records := []models.LocationRecord{
		at(1, 0),
		at(2, 0),
		at(3, 0),
		{TimestampMs: at(4, 0).TimestampMs, LatitudeE7: 0, LongitudeE7: 0},                // far outside
		{TimestampMs: at(5, 0).TimestampMs, LatitudeE7: 450100000, LongitudeE7: 90025000}, // on the max edge
	}

	grid, counters := Accumulate(records, testRegion, testScale, Options{Metric: MetricPointCount})

	assert.Equal(t, 5, counters.Processed)
	assert.Equal(t, 2, counters.Skipped)
	assert.Equal(t, 3.0, grid.Total())
}

func TestAccumulateOutOfRegionNeverIncrements(t *testing.T) {
	records := []models.LocationRecord{
		{TimestampMs: at(1, 0).TimestampMs, LatitudeE7: 449000000, LongitudeE7: 90025000},
		{TimestampMs: at(2, 0).TimestampMs, LatitudeE7: 450050000, LongitudeE7: 91000000},
	}

	grid, counters := Accumulate(records, testRegion, testScale, Options{Metric: MetricPointCount})

	assert.Equal(t, counters.Processed, counters.Skipped)
	assert.Equal(t, 0.0, grid.Total())
}

func TestAccumulateTimeWindow(t *testing.T) {
	records := []models.LocationRecord{
		at(8, 0),  // 480 min
		at(8, 10), // 490 min
		at(8, 20), // 500 min, outside [480, 495]
		at(23, 0),
	}

	window := TimeWindow{StartMinute: 480, EndMinute: 495}
	grid, counters := Accumulate(records, testRegion, testScale, Options{
		Metric: MetricPointCount,
		Window: &window,
	})

	assert.Equal(t, 4, counters.Processed)
	assert.Equal(t, 2, counters.Skipped)
	assert.Equal(t, 2.0, grid.Total())
}

func TestAccumulateDurationWeighting(t *testing.T) {
	// 30 then 15 minutes of dwell; the last record counts as 1.
	records := []models.LocationRecord{
		at(3, 0),
		at(2, 30),
		at(2, 15),
	}

	grid, _ := Accumulate(records, testRegion, testScale, Options{Metric: MetricDuration})

	assert.InDelta(t, 30+15+1, grid.Total(), 1e-9)
}

func TestAccumulateDurationWeightingOldestFirst(t *testing.T) {
	// Newer exports are oldest-first; the gap sign must not matter.
	records := []models.LocationRecord{
		at(2, 15),
		at(2, 30),
		at(3, 0),
	}

	grid, _ := Accumulate(records, testRegion, testScale, Options{Metric: MetricDuration})

	assert.InDelta(t, 15+30+1, grid.Total(), 1e-9)
}

func TestAccumulateEmptyInput(t *testing.T) {
	grid, counters := Accumulate(nil, testRegion, testScale, Options{Metric: MetricPointCount})

	assert.Equal(t, 0, counters.Processed)
	assert.Equal(t, 0.0, grid.Total())
	assert.Equal(t, 50, grid.Width)
	assert.Equal(t, 100, grid.Height)
}
