package db

import (
	"fmt"
	"time"
)

// Resolution is one recorded asset resolution outcome.
type Resolution struct {
	ResolutionID int64
	RequestID    string
	URL          string
	FinalURL     string
	AssetKind    string
	Status       string
	SourceTag    string
	Score        int
	Format       string
	ByteSize     int64
	IsFallback   bool
	TimedOut     bool
	ErrorType    string
	DurationMS   int64
	CreatedAt    time.Time
}

// InsertResolution records one outcome row.
func (db *DB) InsertResolution(r Resolution) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO resolutions (
			request_id, url, final_url, asset_kind, status, source_tag,
			score, format, byte_size, is_fallback, timed_out, error_type, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.RequestID, r.URL, r.FinalURL, r.AssetKind, r.Status, r.SourceTag,
		r.Score, r.Format, r.ByteSize, r.IsFallback, r.TimedOut, r.ErrorType, r.DurationMS)
	if err != nil {
		return 0, fmt.Errorf("failed to insert resolution: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get resolution ID: %w", err)
	}
	return id, nil
}

// RecentResolutions returns the most recent rows, newest first.
func (db *DB) RecentResolutions(limit int) ([]Resolution, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT resolution_id, request_id, url, COALESCE(final_url, ''),
		       asset_kind, status, COALESCE(source_tag, ''), COALESCE(score, 0),
		       COALESCE(format, ''), COALESCE(byte_size, 0), is_fallback,
		       timed_out, COALESCE(error_type, ''), COALESCE(duration_ms, 0),
		       created_at
		FROM resolutions
		ORDER BY resolution_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query resolutions: %w", err)
	}
	defer rows.Close()

	var out []Resolution
	for rows.Next() {
		var r Resolution
		if err := rows.Scan(
			&r.ResolutionID, &r.RequestID, &r.URL, &r.FinalURL,
			&r.AssetKind, &r.Status, &r.SourceTag, &r.Score,
			&r.Format, &r.ByteSize, &r.IsFallback,
			&r.TimedOut, &r.ErrorType, &r.DurationMS,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resolution: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SourceStats aggregates successful resolutions per source tag.
func (db *DB) SourceStats() (map[string]int, error) {
	rows, err := db.Query(`
		SELECT source_tag, COUNT(*)
		FROM resolutions
		WHERE status = 'success' AND source_tag != ''
		GROUP BY source_tag
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query source stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var tag string
		var count int
		if err := rows.Scan(&tag, &count); err != nil {
			return nil, fmt.Errorf("failed to scan source stats: %w", err)
		}
		stats[tag] = count
	}
	return stats, rows.Err()
}
