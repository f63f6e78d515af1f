package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	settings, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), settings)
	assert.Equal(t, "spectral", settings.Colormap)
	assert.Equal(t, 15, settings.MinutesStep)
}

func TestLoadOverridesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"colormap: viridis\nminutes_step: 30\noverlay_alpha: 0.7\n"), 0o644))

	settings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "viridis", settings.Colormap)
	assert.Equal(t, 30, settings.MinutesStep)
	assert.Equal(t, 0.7, settings.OverlayAlpha)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.48, settings.BackgroundAlpha)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overlay_alpha: 1.5\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
