// Package parser reads location-history exports into location records.
package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/fbolton/location-heatmap-go/internal/models"
)

// takeoutRecord mirrors one entry of the Records.json "locations" array.
// Newer exports carry an ISO-8601 "timestamp", legacy ones a stringified
// "timestampMs".
type takeoutRecord struct {
	Timestamp   string `json:"timestamp"`
	TimestampMs string `json:"timestampMs"`
	LatitudeE7  *int64 `json:"latitudeE7"`
	LongitudeE7 *int64 `json:"longitudeE7"`
}

// ParseTakeout decodes the "locations" array of a Google Takeout location
// history export. The file is streamed record by record; exports routinely
// run to hundreds of megabytes.
func ParseTakeout(r io.Reader) ([]models.LocationRecord, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse export: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("failed to parse export: unexpected token %v", tok)
		}
		if key == "locations" {
			return parseLocationsArray(dec)
		}
		// Skip the value of any other top-level key.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, fmt.Errorf("failed to parse export: %w", err)
		}
	}

	return nil, fmt.Errorf("failed to parse export: no \"locations\" key found")
}

// ParseTakeoutFile opens and parses a Takeout export file.
func ParseTakeoutFile(path string) ([]models.LocationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()
	return ParseTakeout(f)
}

func parseLocationsArray(dec *json.Decoder) ([]models.LocationRecord, error) {
	if err := expectDelim(dec, '['); err != nil {
		return nil, fmt.Errorf("failed to parse locations array: %w", err)
	}

	var records []models.LocationRecord
	var malformed int
	for dec.More() {
		var raw takeoutRecord
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode location record: %w", err)
		}

		rec, err := raw.toRecord()
		if err != nil {
			malformed++
			continue
		}
		records = append(records, rec)
	}

	if malformed > 0 {
		log.Printf("[Parser] Skipped %d records without usable coordinates or timestamp", malformed)
	}
	return records, nil
}

func (t takeoutRecord) toRecord() (models.LocationRecord, error) {
	if t.LatitudeE7 == nil || t.LongitudeE7 == nil {
		return models.LocationRecord{}, fmt.Errorf("record has no coordinates")
	}

	ms, err := parseTimestamp(t.Timestamp, t.TimestampMs)
	if err != nil {
		return models.LocationRecord{}, err
	}

	return models.LocationRecord{
		TimestampMs: ms,
		LatitudeE7:  *t.LatitudeE7,
		LongitudeE7: *t.LongitudeE7,
	}, nil
}

// parseTimestamp accepts either format the export has shipped with.
func parseTimestamp(iso, ms string) (int64, error) {
	if iso != "" {
		if t, err := time.Parse(time.RFC3339, iso); err == nil {
			return t.UnixMilli(), nil
		}
		// Some exports carry fractional seconds or offsets the RFC 3339
		// parser rejects; the first 19 characters are always plain.
		if len(iso) >= 19 {
			if t, err := time.Parse("2006-01-02T15:04:05", iso[:19]); err == nil {
				return t.UnixMilli(), nil
			}
		}
		return 0, fmt.Errorf("unparseable timestamp %q", iso)
	}
	if ms != "" {
		v, err := strconv.ParseInt(ms, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("unparseable timestampMs %q", ms)
		}
		return v, nil
	}
	return 0, fmt.Errorf("record has no timestamp")
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
