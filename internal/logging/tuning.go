// Package logging records one provenance row per AI pass so tuning
// decisions can be audited after the fact.
package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-tuning

// LogTuning writes one entry to the tuning_log table.
func LogTuning(db *sql.DB, entry TuningEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO tuning_log (request_id, tick, player_id, gesture, intensity, confidence, source, difficulty_adj, difficulty_after, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RequestID,
		entry.Tick,
		entry.PlayerID,
		entry.Gesture,
		entry.Intensity,
		entry.Confidence,
		entry.Source,
		entry.DifficultyAdjustment,
		entry.DifficultyAfter,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log tuning: %w", err)
	}
	return nil
}

// #endregion log-tuning

// #region recent

// RecentTuning returns the most recent log entries, newest first.
func RecentTuning(db *sql.DB, limit int) ([]TuningEntry, error) {
	rows, err := db.Query(
		`SELECT request_id, tick, player_id, gesture, intensity, confidence, source, difficulty_adj, difficulty_after, created_at
		 FROM tuning_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent tuning: %w", err)
	}
	defer rows.Close()

	var entries []TuningEntry
	for rows.Next() {
		var e TuningEntry
		var createdStr string
		if err := rows.Scan(&e.RequestID, &e.Tick, &e.PlayerID, &e.Gesture,
			&e.Intensity, &e.Confidence, &e.Source,
			&e.DifficultyAdjustment, &e.DifficultyAfter, &createdStr); err != nil {
			return nil, fmt.Errorf("scan tuning row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion recent
