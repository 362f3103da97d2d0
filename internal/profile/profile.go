// Package profile holds per-player adaptive state and its SQLite
// persistence. Profiles live for the process lifetime; the store lets
// them survive across runs.
package profile

// #region profile

// Profile is the adaptive state kept for one player slot. Connected is
// toggled every tick by the presence probe and never persisted; all other
// fields persist across disconnects and process restarts.
type Profile struct {
	ID              int
	Connected       bool
	Skill           float32 // [0,1]
	Assistance      float32 // sensitivity multiplier applied to raw acceleration
	LearningRate    float32
	AdaptationSpeed float32
	PlayStyle       string // stored and persisted, never consulted by tuning logic
}

// New returns the startup profile for a player slot.
func New(id int) Profile {
	return Profile{
		ID:              id,
		Skill:           0.5, // start at medium skill
		Assistance:      0.3,
		LearningRate:    0.1,
		AdaptationSpeed: 0.05,
		PlayStyle:       "balanced",
	}
}

// ClampSkill restricts a skill value to [0,1].
func ClampSkill(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion profile
