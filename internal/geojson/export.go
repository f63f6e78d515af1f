// Package geojson aggregates semantic location history into per-activity
// density grids and writes them as GeoJSON FeatureCollections.
package geojson

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/fbolton/location-heatmap-go/internal/parser"
	"github.com/fbolton/location-heatmap-go/pkg/e7"
)

// IntermediatePoints is the number of interpolation steps inserted between
// consecutive waypoints of exploring activities, so sparse paths still
// leave a continuous trail of visited cells.
const IntermediatePoints = 3

// AllActivities is the synthetic activity type aggregating every segment.
const AllActivities = "ALL"

// exploring activities move slowly enough that a visited cell means the
// place was actually seen; they are counted once per segment and
// interpolated along the path.
var exploring = map[string]bool{
	"WALKING": true,
	"CYCLING": true,
	"RUNNING": true,
}

// Cell is one grid cell, identified by its south-west corner in E7.
type Cell struct {
	LatE7 int64
	LngE7 int64
}

// Grid holds visit counts per cell for one activity type.
type Grid map[Cell]int

// BuildGrid aggregates the segments' waypoints into one grid per activity
// type plus the ALL aggregate. precision is the number of decimal degrees
// kept (3 means cells of about 100 m).
func BuildGrid(segments []parser.ActivitySegment, precision int) map[string]Grid {
	cellSize := cellSizeE7(precision)
	grids := map[string]Grid{AllActivities: {}}

	for _, seg := range segments {
		if grids[seg.Type] == nil {
			grids[seg.Type] = Grid{}
		}

		if exploring[seg.Type] {
			// Count each cell once per segment, with interpolation
			// between waypoints.
			visited := map[Cell]bool{}
			for i := 0; i+1 < len(seg.Waypoints); i++ {
				p1, p2 := seg.Waypoints[i], seg.Waypoints[i+1]
				for s := 0; s < IntermediatePoints; s++ {
					t := float64(s) / IntermediatePoints
					lat := p1.LatE7 + int64(t*float64(p2.LatE7-p1.LatE7))
					lng := p1.LngE7 + int64(t*float64(p2.LngE7-p1.LngE7))
					visited[snap(lat, lng, cellSize)] = true
				}
			}
			for cell := range visited {
				grids[seg.Type][cell]++
				grids[AllActivities][cell]++
			}
		} else {
			for _, wp := range seg.Waypoints {
				cell := snap(wp.LatE7, wp.LngE7, cellSize)
				grids[seg.Type][cell]++
				grids[AllActivities][cell]++
			}
		}
	}

	return grids
}

// Export writes one history_<type>.geojson file per activity grid.
func Export(grids map[string]Grid, precision int, outDir string) error {
	for activity, grid := range grids {
		path := filepath.Join(outDir, fmt.Sprintf("history_%s.geojson", activity))
		if err := writeCollection(path, activity, grid, precision); err != nil {
			return err
		}
		log.Printf("[GeoJSON] Wrote %d cells for %s: %s", len(grid), activity, path)
	}
	return nil
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   geometry               `json:"geometry"`
}

type geometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

func writeCollection(path, activity string, grid Grid, precision int) error {
	cells := make([]Cell, 0, len(grid))
	for cell := range grid {
		cells = append(cells, cell)
	}
	// Map iteration order is random; sort for reproducible output.
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].LatE7 != cells[j].LatE7 {
			return cells[i].LatE7 < cells[j].LatE7
		}
		return cells[i].LngE7 < cells[j].LngE7
	})

	size := cellSizeE7(precision)
	features := make([]feature, 0, len(cells))
	for _, cell := range cells {
		features = append(features, feature{
			Type: "Feature",
			Properties: map[string]interface{}{
				"type":  activity,
				"count": grid[cell],
			},
			Geometry: geometry{
				Type:        "LineString",
				Coordinates: cellOutline(cell, size),
			},
		})
	}

	data, err := json.MarshalIndent(featureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write GeoJSON file: %w", err)
	}
	return nil
}

// cellOutline traces the cell border plus one diagonal, in [lng, lat]
// order as GeoJSON requires.
func cellOutline(cell Cell, size int64) [][2]float64 {
	lng0 := e7.ToDegrees(cell.LngE7)
	lat0 := e7.ToDegrees(cell.LatE7)
	lng1 := e7.ToDegrees(cell.LngE7 + size)
	lat1 := e7.ToDegrees(cell.LatE7 + size)

	return [][2]float64{
		{lng0, lat0},
		{lng0, lat1},
		{lng1, lat1},
		{lng1, lat0},
		{lng0, lat0},
		{lng1, lat1},
	}
}

// cellSizeE7 converts a decimal precision into a cell edge in E7 units.
func cellSizeE7(precision int) int64 {
	size := int64(1)
	for i := 0; i < 7-precision; i++ {
		size *= 10
	}
	return size
}

// snap rounds a coordinate to the nearest cell corner.
func snap(latE7, lngE7, size int64) Cell {
	return Cell{
		LatE7: roundToMultiple(latE7, size),
		LngE7: roundToMultiple(lngE7, size),
	}
}

func roundToMultiple(v, size int64) int64 {
	if v >= 0 {
		return ((v + size/2) / size) * size
	}
	return -(((-v + size/2) / size) * size)
}
