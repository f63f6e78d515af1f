package models

import "time"

// LocationRecord represents a single timestamped position from a
// location-history export. Coordinates are in E7 fixed-point format
// (decimal degrees multiplied by 10^7).
type LocationRecord struct {
	TimestampMs int64 `json:"timestampMs" db:"timestamp_ms"` // Unix timestamp in milliseconds
	LatitudeE7  int64 `json:"latitudeE7" db:"latitude_e7"`
	LongitudeE7 int64 `json:"longitudeE7" db:"longitude_e7"`
}

// Time returns the record timestamp as a time.Time in UTC.
func (r LocationRecord) Time() time.Time {
	return time.UnixMilli(r.TimestampMs).UTC()
}

// MinutesSinceMidnight returns the number of minutes after UTC midnight
// at which the record was sampled.
func (r LocationRecord) MinutesSinceMidnight() int {
	t := r.Time()
	return t.Hour()*60 + t.Minute()
}

// LocationFilter represents filter parameters for querying cached records
type LocationFilter struct {
	StartTimeMs int64 // Unix timestamp in milliseconds, 0 means unbounded
	EndTimeMs   int64
	MinLatE7    int64
	MaxLatE7    int64
	MinLonE7    int64
	MaxLonE7    int64
	Limit       int
}
