// Package service wires parsing, binning and rendering into the run-level
// operations exposed by the CLI.
package service

import (
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/fbolton/location-heatmap-go/internal/config"
	"github.com/fbolton/location-heatmap-go/internal/heatmap"
	"github.com/fbolton/location-heatmap-go/internal/models"
	"github.com/fbolton/location-heatmap-go/internal/render"
	"github.com/fbolton/location-heatmap-go/internal/spatial"
)

// RenderService renders density heatmaps for one bounding region at one
// scale. It holds the prepared background image and the resolved colormap
// for the whole run.
type RenderService struct {
	Region   models.BoundingRegion
	Scale    int64
	Metric   heatmap.Metric
	Settings config.Settings
	OutDir   string

	colormap   render.Colormap
	background image.Image
}

// NewRenderService validates the run parameters and prepares the
// background image at grid resolution.
func NewRenderService(region models.BoundingRegion, scale int64, metric heatmap.Metric, settings config.Settings, backgroundPath, outDir string) (*RenderService, error) {
	if err := region.Validate(); err != nil {
		return nil, fmt.Errorf("invalid region: %w", err)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("scale factor must be positive, got %d", scale)
	}

	width, height := region.GridSize(scale)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("region too small for scale %d: grid would be %dx%d", scale, width, height)
	}

	colormap, err := render.ColormapByName(settings.Colormap)
	if err != nil {
		return nil, err
	}

	background, err := render.LoadBackground(backgroundPath, width, height)
	if err != nil {
		return nil, err
	}

	log.Printf("[Render] Region %s: grid %dx%d px, ~%.1f m per cell",
		region.Name, width, height, spatial.CellSizeMeters(region, scale))

	return &RenderService{
		Region:     region,
		Scale:      scale,
		Metric:     metric,
		Settings:   settings,
		OutDir:     outDir,
		colormap:   colormap,
		background: background,
	}, nil
}

// RenderAllDay accumulates every record regardless of time of day, fixes
// the percentile breaks for the run and writes the all-day heatmap.
// Returns the output path and the breaks.
func (s *RenderService) RenderAllDay(records []models.LocationRecord) (string, []float64, error) {
	grid, counters := heatmap.Accumulate(records, s.Region, s.Scale, heatmap.Options{Metric: s.Metric})
	log.Printf("[Render] dots processed: %d, dots outside the rectangle: %d", counters.Processed, counters.Skipped)

	var breaks []float64
	var intensity *models.DensityGrid
	if counters.Processed == counters.Skipped {
		log.Printf("[Render] no points for this map, generating an empty one")
		intensity = models.NewDensityGrid(grid.Width, grid.Height)
	} else {
		blurred := heatmap.GaussianBlur(grid, s.Settings.BlurSigma)
		breaks = heatmap.Breaks(blurred, heatmap.DefaultBreakCount)
		intensity = heatmap.Quantize(blurred, breaks)
	}

	title := fmt.Sprintf("Location history for zone: %s at any moment of the day", s.Region.Name)
	path := filepath.Join(s.OutDir, fmt.Sprintf("locations_in_%s_all_time_weighted.png", s.Region.Name))
	if err := s.SaveFrame(intensity, title, path); err != nil {
		return "", nil, err
	}
	return path, breaks, nil
}

// WindowIntensity accumulates only the records inside the time-of-day
// window and quantizes them against the precomputed breaks. A window with
// no in-bounds records yields an all-zero intensity grid.
func (s *RenderService) WindowIntensity(records []models.LocationRecord, window heatmap.TimeWindow, breaks []float64) *models.DensityGrid {
	grid, counters := heatmap.Accumulate(records, s.Region, s.Scale, heatmap.Options{
		Metric: s.Metric,
		Window: &window,
	})
	if counters.Processed == counters.Skipped {
		return models.NewDensityGrid(grid.Width, grid.Height)
	}
	return heatmap.Quantize(heatmap.GaussianBlur(grid, s.Settings.BlurSigma), breaks)
}

// SaveFrame composes an intensity grid with the prepared background and
// writes it as a PNG.
func (s *RenderService) SaveFrame(intensity *models.DensityGrid, title, path string) error {
	img, err := render.Compose(intensity, s.background, render.FrameOptions{
		Title:           title,
		Colormap:        s.colormap,
		OverlayAlpha:    s.Settings.OverlayAlpha,
		BackgroundAlpha: s.Settings.BackgroundAlpha,
	})
	if err != nil {
		return fmt.Errorf("failed to compose frame: %w", err)
	}
	return render.SavePNG(path, img)
}
