// Package repository handles database operations for cached location
// records.
package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/fbolton/location-heatmap-go/internal/database"
	"github.com/fbolton/location-heatmap-go/internal/models"
)

// LocationRepository handles database operations for location records
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// InsertBatch stores records in a single transaction.
func (r *LocationRepository) InsertBatch(records []models.LocationRecord) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO locations (timestamp_ms, latitude_e7, longitude_e7)
			VALUES (?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range records {
			if _, err := stmt.Exec(rec.TimestampMs, rec.LatitudeE7, rec.LongitudeE7); err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}
		}
		return nil
	})
}

// GetLocations retrieves cached records matching the filter, newest first
// to match the ordering of the original exports (dwell weighting relies on
// adjacent records being time neighbors).
func (r *LocationRepository) GetLocations(filter models.LocationFilter) ([]models.LocationRecord, error) {
	query := `SELECT timestamp_ms, latitude_e7, longitude_e7 FROM locations`

	var conditions []string
	var args []interface{}

	if filter.StartTimeMs > 0 {
		conditions = append(conditions, "timestamp_ms >= ?")
		args = append(args, filter.StartTimeMs)
	}
	if filter.EndTimeMs > 0 {
		conditions = append(conditions, "timestamp_ms <= ?")
		args = append(args, filter.EndTimeMs)
	}
	if filter.MinLatE7 != 0 || filter.MaxLatE7 != 0 {
		conditions = append(conditions, "latitude_e7 >= ? AND latitude_e7 < ?")
		args = append(args, filter.MinLatE7, filter.MaxLatE7)
	}
	if filter.MinLonE7 != 0 || filter.MaxLonE7 != 0 {
		conditions = append(conditions, "longitude_e7 >= ? AND longitude_e7 < ?")
		args = append(args, filter.MinLonE7, filter.MaxLonE7)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY timestamp_ms DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var records []models.LocationRecord
	for rows.Next() {
		var rec models.LocationRecord
		if err := rows.Scan(&rec.TimestampMs, &rec.LatitudeE7, &rec.LongitudeE7); err != nil {
			return nil, fmt.Errorf("failed to scan location record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Count returns the number of cached records.
func (r *LocationRepository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM locations").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}
	return count, nil
}
