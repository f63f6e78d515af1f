package parser

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/fbolton/location-heatmap-go/internal/models"
	"github.com/fbolton/location-heatmap-go/pkg/e7"
)

// ParseGPXFile reads all track points of a GPX file as location records.
// Points without a timestamp get zero time and only participate in the
// point_count metric.
func ParseGPXFile(path string) ([]models.LocationRecord, error) {
	gpxFile, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPX file: %w", err)
	}

	var records []models.LocationRecord
	for _, track := range gpxFile.Tracks {
		for _, segment := range track.Segments {
			for _, point := range segment.Points {
				rec := models.LocationRecord{
					LatitudeE7:  e7.FromDegrees(point.Latitude),
					LongitudeE7: e7.FromDegrees(point.Longitude),
				}
				if !point.Timestamp.IsZero() {
					rec.TimestampMs = point.Timestamp.UnixMilli()
				}
				records = append(records, rec)
			}
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("GPX file contains no track points")
	}
	return records, nil
}
