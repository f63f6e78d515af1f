package geojson

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbolton/location-heatmap-go/internal/parser"
)

func TestBuildGridCountsWaypoints(t *testing.T) {
	segments := []parser.ActivitySegment{
		{
			Type: "IN_PASSENGER_VEHICLE",
			Waypoints: []parser.Waypoint{
				{LatE7: 450001234, LngE7: 90001234},
				{LatE7: 450001300, LngE7: 90001300}, // same cell at precision 3
			},
		},
	}

	grids := BuildGrid(segments, 3)
	require.Contains(t, grids, "IN_PASSENGER_VEHICLE")
	require.Contains(t, grids, AllActivities)

	cell := Cell{LatE7: 450000000, LngE7: 90000000}
	assert.Equal(t, 2, grids["IN_PASSENGER_VEHICLE"][cell])
	assert.Equal(t, 2, grids[AllActivities][cell])
}

func TestBuildGridExploringCountsCellsOncePerSegment(t *testing.T) {
	// Both waypoints and all interpolated points fall in one cell; an
	// exploring activity counts it once.
	segments := []parser.ActivitySegment{
		{
			Type: "WALKING",
			Waypoints: []parser.Waypoint{
				{LatE7: 450001000, LngE7: 90001000},
				{LatE7: 450001100, LngE7: 90001100},
			},
		},
	}

	grids := BuildGrid(segments, 3)
	cell := Cell{LatE7: 450000000, LngE7: 90000000}
	assert.Equal(t, 1, grids["WALKING"][cell])
	assert.Equal(t, 1, grids[AllActivities][cell])
}

func TestBuildGridExploringInterpolates(t *testing.T) {
	// Two waypoints two cells apart; interpolation visits the cell in
	// between as well.
	segments := []parser.ActivitySegment{
		{
			Type: "CYCLING",
			Waypoints: []parser.Waypoint{
				{LatE7: 450000000, LngE7: 90000000},
				{LatE7: 450000000, LngE7: 90030000},
			},
		},
	}

	grids := BuildGrid(segments, 3)
	assert.GreaterOrEqual(t, len(grids["CYCLING"]), 2)
}

func TestExportWritesFeatureCollections(t *testing.T) {
	dir := t.TempDir()
	grids := map[string]Grid{
		"WALKING": {
			{LatE7: 450000000, LngE7: 90000000}: 3,
			{LatE7: 451000000, LngE7: 90000000}: 1,
		},
	}

	require.NoError(t, Export(grids, 3, dir))

	data, err := os.ReadFile(filepath.Join(dir, "history_WALKING.geojson"))
	require.NoError(t, err)

	var collection struct {
		Type     string `json:"type"`
		Features []struct {
			Type       string `json:"type"`
			Properties struct {
				Type  string `json:"type"`
				Count int    `json:"count"`
			} `json:"properties"`
			Geometry struct {
				Type        string       `json:"type"`
				Coordinates [][2]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &collection))

	assert.Equal(t, "FeatureCollection", collection.Type)
	require.Len(t, collection.Features, 2)

	first := collection.Features[0]
	assert.Equal(t, "Feature", first.Type)
	assert.Equal(t, "WALKING", first.Properties.Type)
	assert.Equal(t, 3, first.Properties.Count)
	assert.Equal(t, "LineString", first.Geometry.Type)
	assert.Len(t, first.Geometry.Coordinates, 6)

	// Cells are sorted south to north for reproducible output.
	assert.Equal(t, 45.0, first.Geometry.Coordinates[0][1])
}

func TestCellSizeE7(t *testing.T) {
	assert.Equal(t, int64(10000), cellSizeE7(3))
	assert.Equal(t, int64(1), cellSizeE7(7))
	assert.Equal(t, int64(10000000), cellSizeE7(0))
}

func TestSnapRounds(t *testing.T) {
	size := cellSizeE7(3)
	assert.Equal(t, Cell{LatE7: 450010000, LngE7: 90000000}, snap(450006000, 90004000, size))
	assert.Equal(t, Cell{LatE7: -450010000, LngE7: 90000000}, snap(-450006000, 90004000, size))
}
