package logging

import "time"

// #region entry

// TuningEntry is a single row for tuning_log.
type TuningEntry struct {
	RequestID            string
	Tick                 uint64
	PlayerID             int
	Gesture              string
	Intensity            float32
	Confidence           float32
	Source               string // "remote" | "local"
	DifficultyAdjustment float32
	DifficultyAfter      float32
	CreatedAt            time.Time
}

// #endregion entry
