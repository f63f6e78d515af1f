// Package heatmap bins projected location records into per-pixel density
// grids and prepares them for color mapping.
package heatmap

import (
	"math"

	"github.com/fbolton/location-heatmap-go/internal/models"
	"github.com/fbolton/location-heatmap-go/internal/spatial"
)

// Metric selects the weight contributed by each in-bounds record.
type Metric string

const (
	// MetricPointCount weighs every record as 1.
	MetricPointCount Metric = "point_count"
	// MetricDuration weighs a record by the time gap in minutes to its
	// neighboring record, approximating dwell time at that position.
	MetricDuration Metric = "duration"
)

// TimeWindow restricts accumulation to records sampled between Start and
// End minutes after UTC midnight, inclusive.
type TimeWindow struct {
	StartMinute int
	EndMinute   int
}

// Contains reports whether the given minutes-since-midnight value falls
// inside the window.
func (w TimeWindow) Contains(minute int) bool {
	return minute >= w.StartMinute && minute <= w.EndMinute
}

// Options control a single accumulation pass.
type Options struct {
	Metric Metric
	Window *TimeWindow // nil means all records regardless of time of day
}

// Counters reports how many records an accumulation pass saw and how many
// it discarded (outside the region or outside the time window).
type Counters struct {
	Processed int
	Skipped   int
}

// Accumulate bins records into a density grid for the region at the given
// scale. Records projecting outside the grid are skipped, never clamped.
func Accumulate(records []models.LocationRecord, region models.BoundingRegion, scale int64, opts Options) (*models.DensityGrid, Counters) {
	width, height := region.GridSize(scale)
	grid := models.NewDensityGrid(width, height)

	var c Counters
	for i, rec := range records {
		c.Processed++

		if opts.Window != nil && !opts.Window.Contains(rec.MinutesSinceMidnight()) {
			c.Skipped++
			continue
		}

		x, y, ok := spatial.Project(rec.LatitudeE7, rec.LongitudeE7, region, scale)
		if !ok {
			c.Skipped++
			continue
		}

		grid.Add(x, y, recordWeight(records, i, opts.Metric))
	}

	return grid, c
}

// recordWeight computes the contribution of records[i]. For the duration
// metric this is the absolute time gap to the adjacent record in minutes;
// exports have shipped both newest-first and oldest-first, so the sign of
// the gap carries no meaning. The final record counts as 1.
func recordWeight(records []models.LocationRecord, i int, metric Metric) float64 {
	if metric != MetricDuration {
		return 1
	}
	if i+1 >= len(records) {
		return 1
	}
	gapMs := records[i].TimestampMs - records[i+1].TimestampMs
	return math.Abs(float64(gapMs)) / (1000 * 60)
}
