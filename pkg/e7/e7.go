// Package e7 converts between decimal degrees and the E7 fixed-point
// representation used by location-history exports (degrees multiplied
// by 10^7 and rounded to an integer).
package e7

import "math"

// Factor is the fixed-point scale of an E7 coordinate.
const Factor = 1e7

// ToDegrees converts an E7 fixed-point coordinate to decimal degrees.
func ToDegrees(v int64) float64 {
	return float64(v) / Factor
}

// FromDegrees converts decimal degrees to an E7 fixed-point coordinate.
func FromDegrees(deg float64) int64 {
	return int64(math.Round(deg * Factor))
}
