package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
)

// Waypoint is a single path point of an activity segment, in E7 fixed point.
type Waypoint struct {
	LatE7 int64
	LngE7 int64
}

// ActivitySegment is one movement segment from a Semantic Location History
// export: an activity type plus the simplified path walked/ridden/driven.
type ActivitySegment struct {
	Type      string
	Waypoints []Waypoint
}

// semanticFile mirrors the subset of a Semantic Location History monthly
// file the exporter needs. Waypoints have shipped under two key spellings
// (latE7/lngE7 and latitudeE7/longitudeE7); both are accepted.
type semanticFile struct {
	TimelineObjects []struct {
		ActivitySegment *struct {
			ActivityType      string        `json:"activityType"`
			SimplifiedRawPath *waypointList `json:"simplifiedRawPath"`
			WaypointPath      *waypointList `json:"waypointPath"`
		} `json:"activitySegment"`
	} `json:"timelineObjects"`
}

type waypointList struct {
	Points    []rawWaypoint `json:"points"`
	Waypoints []rawWaypoint `json:"waypoints"`
}

type rawWaypoint struct {
	LatE7       *int64 `json:"latE7"`
	LngE7       *int64 `json:"lngE7"`
	LatitudeE7  *int64 `json:"latitudeE7"`
	LongitudeE7 *int64 `json:"longitudeE7"`
}

func (l *waypointList) all() []rawWaypoint {
	if len(l.Points) > 0 {
		return l.Points
	}
	return l.Waypoints
}

// ParseSemantic decodes the activity segments of a Semantic Location
// History file. Segments without an activity type (older files) or without
// waypoints are skipped with a log line.
func ParseSemantic(r io.Reader) ([]ActivitySegment, error) {
	var file semanticFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode semantic history: %w", err)
	}

	var segments []ActivitySegment
	for _, obj := range file.TimelineObjects {
		seg := obj.ActivitySegment
		if seg == nil {
			continue
		}
		if seg.ActivityType == "" {
			log.Printf("[Parser] Ignoring a segment without an activity type")
			continue
		}

		var raws []rawWaypoint
		switch {
		case seg.SimplifiedRawPath != nil:
			raws = seg.SimplifiedRawPath.all()
		case seg.WaypointPath != nil:
			raws = seg.WaypointPath.all()
		}
		if len(raws) == 0 {
			log.Printf("[Parser] No waypoints found for %s, skipping", seg.ActivityType)
			continue
		}

		out := ActivitySegment{Type: seg.ActivityType}
		for _, w := range raws {
			wp, err := w.toWaypoint()
			if err != nil {
				return nil, err
			}
			out.Waypoints = append(out.Waypoints, wp)
		}
		segments = append(segments, out)
	}

	return segments, nil
}

// ParseSemanticFile opens and parses a Semantic Location History file.
func ParseSemanticFile(path string) ([]ActivitySegment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open semantic history: %w", err)
	}
	defer f.Close()
	return ParseSemantic(f)
}

func (w rawWaypoint) toWaypoint() (Waypoint, error) {
	switch {
	case w.LatE7 != nil && w.LngE7 != nil:
		return Waypoint{LatE7: *w.LatE7, LngE7: *w.LngE7}, nil
	case w.LatitudeE7 != nil && w.LongitudeE7 != nil:
		return Waypoint{LatE7: *w.LatitudeE7, LngE7: *w.LongitudeE7}, nil
	default:
		return Waypoint{}, fmt.Errorf("unknown waypoint format")
	}
}
