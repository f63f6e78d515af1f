package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTakeout(t *testing.T) {
	input := `{
		"locations": [
			{"timestamp": "2020-06-01T08:30:00Z", "latitudeE7": 450000000, "longitudeE7": 90000000},
			{"timestampMs": "1591000000000", "latitudeE7": 450001000, "longitudeE7": 90001000}
		]
	}`

	records, err := ParseTakeout(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, int64(450000000), records[0].LatitudeE7)
	assert.Equal(t, int64(90000000), records[0].LongitudeE7)
	assert.Equal(t, "2020-06-01T08:30:00Z", records[0].Time().Format("2006-01-02T15:04:05Z"))

	assert.Equal(t, int64(1591000000000), records[1].TimestampMs)
}

func TestParseTakeoutSkipsOtherTopLevelKeys(t *testing.T) {
	input := `{
		"somethingElse": {"nested": [1, 2, 3]},
		"locations": [
			{"timestamp": "2020-06-01T08:30:00Z", "latitudeE7": 1, "longitudeE7": 2}
		]
	}`

	records, err := ParseTakeout(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestParseTakeoutSkipsRecordsWithoutCoordinates(t *testing.T) {
	input := `{
		"locations": [
			{"timestamp": "2020-06-01T08:30:00Z"},
			{"timestamp": "2020-06-01T08:31:00Z", "latitudeE7": 1, "longitudeE7": 2}
		]
	}`

	records, err := ParseTakeout(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestParseTakeoutFractionalSecondsTimestamp(t *testing.T) {
	input := `{
		"locations": [
			{"timestamp": "2020-06-01T08:30:00.123Z", "latitudeE7": 1, "longitudeE7": 2}
		]
	}`

	records, err := ParseTakeout(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 8*60+30, records[0].MinutesSinceMidnight())
}

func TestParseTakeoutMissingLocationsKey(t *testing.T) {
	_, err := ParseTakeout(strings.NewReader(`{"other": []}`))
	assert.Error(t, err)
}

func TestParseTakeoutMalformedJSON(t *testing.T) {
	_, err := ParseTakeout(strings.NewReader(`{"locations": [{]`))
	assert.Error(t, err)
}
