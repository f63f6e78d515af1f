package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemantic(t *testing.T) {
	input := `{
		"timelineObjects": [
			{"placeVisit": {"location": {}}},
			{"activitySegment": {
				"activityType": "WALKING",
				"simplifiedRawPath": {"points": [
					{"latE7": 450000000, "lngE7": 90000000},
					{"latE7": 450001000, "lngE7": 90001000}
				]}
			}},
			{"activitySegment": {
				"activityType": "IN_PASSENGER_VEHICLE",
				"waypointPath": {"waypoints": [
					{"latitudeE7": 450002000, "longitudeE7": 90002000}
				]}
			}}
		]
	}`

	segments, err := ParseSemantic(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, "WALKING", segments[0].Type)
	require.Len(t, segments[0].Waypoints, 2)
	assert.Equal(t, int64(450000000), segments[0].Waypoints[0].LatE7)

	assert.Equal(t, "IN_PASSENGER_VEHICLE", segments[1].Type)
	require.Len(t, segments[1].Waypoints, 1)
	assert.Equal(t, int64(90002000), segments[1].Waypoints[0].LngE7)
}

func TestParseSemanticSkipsSegmentsWithoutType(t *testing.T) {
	input := `{
		"timelineObjects": [
			{"activitySegment": {
				"simplifiedRawPath": {"points": [{"latE7": 1, "lngE7": 2}]}
			}}
		]
	}`

	segments, err := ParseSemantic(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestParseSemanticSkipsSegmentsWithoutWaypoints(t *testing.T) {
	input := `{
		"timelineObjects": [
			{"activitySegment": {"activityType": "FLYING"}}
		]
	}`

	segments, err := ParseSemantic(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestParseSemanticUnknownWaypointFormat(t *testing.T) {
	input := `{
		"timelineObjects": [
			{"activitySegment": {
				"activityType": "WALKING",
				"simplifiedRawPath": {"points": [{"lat": 45.0, "lng": 9.0}]}
			}}
		]
	}`

	_, err := ParseSemantic(strings.NewReader(input))
	assert.Error(t, err)
}
