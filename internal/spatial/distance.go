package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/fbolton/location-heatmap-go/internal/models"
	"github.com/fbolton/location-heatmap-go/pkg/e7"
)

// EarthRadiusMeters is the mean Earth radius used for distance conversions.
const EarthRadiusMeters = 6371000.0

// HaversineDistance calculates the great-circle distance between two points
// in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// RegionCenter returns the center of the bounding region as an s2.LatLng.
func RegionCenter(region models.BoundingRegion) s2.LatLng {
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(
		e7.ToDegrees(region.MinLatE7), e7.ToDegrees(region.MinLonE7)))
	rect = rect.AddPoint(s2.LatLngFromDegrees(
		e7.ToDegrees(region.MaxLatE7), e7.ToDegrees(region.MaxLonE7)))
	return rect.Center()
}

// CellSizeMeters estimates the ground size of one grid cell at the region
// center, in meters (latitudinal edge). A scale factor of 1000 is roughly
// 10 meters per pixel.
func CellSizeMeters(region models.BoundingRegion, scale int64) float64 {
	center := RegionCenter(region)
	lat := center.Lat.Degrees()
	step := e7.ToDegrees(scale)
	return HaversineDistance(lat, center.Lng.Degrees(), lat+step, center.Lng.Degrees())
}
