package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arvela/motion-bridge/internal/motion"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a recorded bridge session.
type Fixture struct {
	Description string        `json:"description"`
	Config      FixtureConfig `json:"config"`
	Ticks       []FixtureTick `json:"ticks"`
}

// FixtureConfig sizes the bridge under replay.
type FixtureConfig struct {
	MaxPlayers     int    `json:"max_players"`
	HistorySize    int    `json:"history_size,omitempty"`
	UpdateInterval uint64 `json:"update_interval,omitempty"`
	GameType       string `json:"game_type,omitempty"`
}

// FixtureTick scripts one frame: presence and sample per channel. Channels
// beyond the listed ones are disconnected.
type FixtureTick struct {
	Channels []FixtureChannel `json:"channels"`
}

// FixtureChannel scripts one channel for one tick.
type FixtureChannel struct {
	Connected bool           `json:"connected"`
	Sample    *FixtureSample `json:"sample,omitempty"`
}

// FixtureSample is the recorded motion sample, reduced to the fields the
// pipeline consumes.
type FixtureSample struct {
	Accel       [3]float32 `json:"accel"`
	Rate        [3]float32 `json:"rate,omitempty"`
	Buttons     uint32     `json:"buttons,omitempty"`
	TimestampMS float64    `json:"timestamp_ms"`
}

// #endregion fixture-types

// #region load

// LoadFixture reads and parses a fixture file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	if f.Config.MaxPlayers <= 0 {
		return Fixture{}, fmt.Errorf("fixture %s: max_players must be positive", path)
	}
	return f, nil
}

// #endregion load

// #region sample-conversion

func (s FixtureSample) toMotion() motion.Sample {
	out := motion.Sample{
		Accel:       motion.Vec3{X: s.Accel[0], Y: s.Accel[1], Z: s.Accel[2]},
		Buttons:     motion.Buttons{Held: s.Buttons},
		TimestampMS: s.TimestampMS,
	}
	if s.Rate != ([3]float32{}) {
		out.Gyro = motion.AngularRate{Pitch: s.Rate[0], Roll: s.Rate[1], Yaw: s.Rate[2], Valid: true}
	}
	return out
}

// #endregion sample-conversion
