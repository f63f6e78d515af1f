package service

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/fbolton/location-heatmap-go/internal/encoder"
	"github.com/fbolton/location-heatmap-go/internal/heatmap"
	"github.com/fbolton/location-heatmap-go/internal/models"
)

// AnimationService renders one frame per time-of-day window and assembles
// the frames into an animated GIF, optionally followed by a video.
type AnimationService struct {
	render *RenderService
}

// NewAnimationService creates an animation service on top of a prepared
// render service.
func NewAnimationService(render *RenderService) *AnimationService {
	return &AnimationService{render: render}
}

// Run renders the all-day frame, then one frame per window with
// moving-average persistence, encodes the GIF and, when videoPath is
// non-empty, the video. Returns the GIF path.
func (s *AnimationService) Run(records []models.LocationRecord, videoPath string) (string, error) {
	settings := s.render.Settings
	region := s.render.Region

	// The all-day pass fixes the percentile breaks once for every frame.
	_, breaks, err := s.render.RenderAllDay(records)
	if err != nil {
		return "", fmt.Errorf("failed to render all-day frame: %w", err)
	}

	starts := windowStarts(settings.MinutesStep)

	// Each window holds only a fraction of the day's mass; rescale the
	// breaks so per-window frames are not uniformly dark.
	breaks = heatmap.ScaleBreaks(breaks, float64(len(starts)))

	bar := progressbar.Default(int64(len(starts)), "Rendering frames")
	var prev *models.DensityGrid
	framePaths := make([]string, 0, len(starts))

	for idx, start := range starts {
		window := heatmap.TimeWindow{StartMinute: start, EndMinute: start + settings.MinutesStep}
		cur := s.render.WindowIntensity(records, window, breaks)

		if prev == nil {
			prev = cur
		} else {
			prev = blendFrames(prev, cur, settings.PersistenceFactor)
		}

		title := fmt.Sprintf("Location history for zone: %s and hour %d:%02d + %d minutes (UTC)",
			region.Name, start/60, start%60, settings.MinutesStep)
		// Zero-padded index keeps lexicographic order numeric for the
		// encoder's file pattern.
		path := filepath.Join(s.render.OutDir,
			fmt.Sprintf("locations_in_%s_time_%04d.png", region.Name, idx+1))

		if err := s.render.SaveFrame(prev, title, path); err != nil {
			return "", err
		}
		framePaths = append(framePaths, path)
		bar.Add(1)
	}

	gifPath := filepath.Join(s.render.OutDir, region.Name+".gif")
	log.Printf("[Animation] Generating the GIF: %s", gifPath)
	if err := encoder.EncodeGIF(framePaths, gifPath, settings.GIFDelayMs, settings.GIFMaxHeight); err != nil {
		return "", fmt.Errorf("failed to encode GIF: %w", err)
	}

	if videoPath != "" {
		log.Printf("[Animation] Generating the video: %s", videoPath)
		pattern := filepath.Join(s.render.OutDir,
			fmt.Sprintf("locations_in_%s_time_%%04d.png", region.Name))
		if err := encoder.EncodeVideo(pattern, 1, settings.VideoFPS, videoPath); err != nil {
			return "", fmt.Errorf("failed to encode video: %w", err)
		}
	}

	return gifPath, nil
}

// windowStarts returns the start minute of every time-of-day window.
func windowStarts(step int) []int {
	var starts []int
	for m := 0; m < 24*60; m += step {
		starts = append(starts, m)
	}
	return starts
}

// blendFrames applies the moving-average frame persistence:
// (prev + cur*k) / (1+k).
func blendFrames(prev, cur *models.DensityGrid, k float64) *models.DensityGrid {
	out := models.NewDensityGrid(cur.Width, cur.Height)
	for i := range out.Cells {
		out.Cells[i] = (prev.Cells[i] + cur.Cells[i]*k) / (1 + k)
	}
	return out
}
