// Package config holds the tunable rendering settings of a run. Settings
// have defaults matching the original tool and can be overridden from a
// YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Settings are the rendering and animation parameters of a run.
type Settings struct {
	// Colormap applied to quantized density values.
	Colormap string `yaml:"colormap" validate:"required"`
	// OverlayAlpha is the opacity of the heatmap layer.
	OverlayAlpha float64 `yaml:"overlay_alpha" validate:"gte=0,lte=1"`
	// BackgroundAlpha is the opacity of the background map over white.
	BackgroundAlpha float64 `yaml:"background_alpha" validate:"gte=0,lte=1"`
	// BlurSigma is the Gaussian blur applied to the raw histogram.
	BlurSigma float64 `yaml:"blur_sigma" validate:"gte=0"`
	// MinutesStep is the width of one time-of-day animation window.
	MinutesStep int `yaml:"minutes_step" validate:"gt=0,lte=1440"`
	// PersistenceFactor is the weight of previous frames over the new one
	// in the animation moving average (the inverse of the decay factor).
	PersistenceFactor float64 `yaml:"persistence_factor" validate:"gte=0"`
	// GIFDelayMs is the per-frame delay of the animated GIF.
	GIFDelayMs int `yaml:"gif_delay_ms" validate:"gt=0"`
	// GIFMaxHeight caps GIF frame height; taller frames are downscaled.
	GIFMaxHeight int `yaml:"gif_max_height" validate:"gt=0"`
	// VideoFPS is the frame rate passed to ffmpeg for video output.
	VideoFPS int `yaml:"video_fps" validate:"gt=0"`
}

// Default returns the settings the original tool shipped with.
func Default() Settings {
	return Settings{
		Colormap:          "spectral",
		OverlayAlpha:      0.5,
		BackgroundAlpha:   0.48,
		BlurSigma:         1,
		MinutesStep:       15,
		PersistenceFactor: 4,
		GIFDelayMs:        300,
		GIFMaxHeight:      500,
		VideoFPS:          4,
	}
}

// Load returns the default settings overridden by the YAML file at path.
// An empty path returns the defaults unchanged. The result is validated.
func Load(path string) (Settings, error) {
	settings := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return settings, fmt.Errorf("failed to read settings file: %w", err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("failed to parse settings file: %w", err)
		}
	}

	if err := validator.New().Struct(settings); err != nil {
		return settings, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}
