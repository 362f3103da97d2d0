// Package game holds the single live set of gameplay parameters the
// tuning pipeline adjusts.
package game

// #region game-type

// Type identifies the active game variant.
type Type string

const (
	TypeMenu      Type = "menu"
	TypeSports    Type = "sports"
	TypeAdventure Type = "adventure" // the extended variant with dynamic content
	TypeParty     Type = "party"
	TypeFitness   Type = "fitness"
	TypeRacing    Type = "racing"
	TypeFighting  Type = "fighting"
)

// #endregion game-type

// #region difficulty

// Difficulty bounds. Every applied adjustment is clamped into this range.
const (
	MinDifficulty float32 = 0.1
	MaxDifficulty float32 = 1.0
)

// ClampDifficulty restricts v to [MinDifficulty, MaxDifficulty].
func ClampDifficulty(v float32) float32 {
	if v < MinDifficulty {
		return MinDifficulty
	}
	if v > MaxDifficulty {
		return MaxDifficulty
	}
	return v
}

// #endregion difficulty

// #region parameters

// Parameters is the live game state consumed and mutated by the bridge.
// One instance exists per bridge; requests carry value snapshots of it.
type Parameters struct {
	GameType     Type
	CurrentLevel int
	Difficulty   float32
	AIEnabled    bool
	Tick         uint64
	Scores       []int // one slot per player
}

// NewParameters returns the startup parameter set for the given player count.
func NewParameters(players int) Parameters {
	return Parameters{
		GameType:   TypeMenu,
		Difficulty: 0.5,
		AIEnabled:  true,
		Scores:     make([]int, players),
	}
}

// Clone returns a deep copy suitable for an in-flight request snapshot.
// The copy shares nothing with the live instance.
func (p Parameters) Clone() Parameters {
	out := p
	out.Scores = make([]int, len(p.Scores))
	copy(out.Scores, p.Scores)
	return out
}

// #endregion parameters
