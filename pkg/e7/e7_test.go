package e7

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDegrees(t *testing.T) {
	assert.Equal(t, 45.1234567, ToDegrees(451234567))
	assert.Equal(t, -9.0, ToDegrees(-90000000))
	assert.Equal(t, 0.0, ToDegrees(0))
}

func TestFromDegrees(t *testing.T) {
	assert.Equal(t, int64(451234567), FromDegrees(45.1234567))
	assert.Equal(t, int64(-90000000), FromDegrees(-9.0))
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 451234567, -1800000000} {
		assert.Equal(t, v, FromDegrees(ToDegrees(v)))
	}
}
