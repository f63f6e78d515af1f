package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColormapByName(t *testing.T) {
	cm, err := ColormapByName("spectral")
	require.NoError(t, err)
	assert.Equal(t, "spectral", cm.Name())

	_, err = ColormapByName("plasma")
	assert.Error(t, err)
}

func TestColormapEndpoints(t *testing.T) {
	cm, err := ColormapByName("spectral")
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 158, G: 1, B: 66, A: 255}, cm.At(0))
	assert.Equal(t, color.NRGBA{R: 94, G: 79, B: 162, A: 255}, cm.At(1))
}

func TestColormapClamps(t *testing.T) {
	cm, err := ColormapByName("viridis")
	require.NoError(t, err)

	assert.Equal(t, cm.At(0), cm.At(-0.5))
	assert.Equal(t, cm.At(1), cm.At(2))
}

func TestColormapIsDeterministic(t *testing.T) {
	cm, err := ColormapByName("spectral")
	require.NoError(t, err)

	for _, v := range []float64{0, 0.1, 0.33, 0.5, 0.77, 1} {
		assert.Equal(t, cm.At(v), cm.At(v))
	}
}

func TestColormapInterpolatesBetweenAnchors(t *testing.T) {
	cm, err := ColormapByName("spectral")
	require.NoError(t, err)

	// Halfway between the 6th (255,255,191) and 7th (230,245,152) anchors.
	c := cm.At(5.5 / 10)
	assert.Equal(t, color.NRGBA{R: 243, G: 250, B: 172, A: 255}, c)
}
