// Package tuning implements the request/response protocol around the
// adaptive-tuning service: request assembly, the local closed-form
// fallback engine, and bounded application of responses to live state.
package tuning

import (
	"math"

	"github.com/google/uuid"

	"github.com/arvela/motion-bridge/internal/game"
	"github.com/arvela/motion-bridge/internal/gesture"
	"github.com/arvela/motion-bridge/internal/motion"
	"github.com/arvela/motion-bridge/internal/profile"
	"github.com/arvela/motion-bridge/internal/ring"
)

// #region constants

const (
	// RecentSampleLimit caps how many motion samples ride along with a request.
	RecentSampleLimit = 5

	targetPerformance float32 = 0.6 // aim for a 60% success band
	adjustmentGain    float32 = 0.1

	frameTargetMS     = 16.67 // expected gap between samples at 60 Hz
	consistencyNormMS = 50.0

	// defaultConsistency is used when fewer than two samples are available.
	defaultConsistency float32 = 0.5
)

// #endregion constants

// #region types

// InputEnhancement is the input-assistance block of a response.
type InputEnhancement struct {
	Enabled               bool
	SensitivityMultiplier float32
}

// OpponentBehavior parameterizes the simulated opponent for one player.
type OpponentBehavior struct {
	Aggression   float32
	Intelligence float32
}

// Request is an immutable per-player snapshot sent to the tuning service.
// It shares no memory with the live state it was built from.
type Request struct {
	RequestID     string
	PlayerID      int
	TimestampMS   float64
	Gesture       gesture.Analysis
	RecentSamples []motion.Sample // most-recent-first, at most RecentSampleLimit
	Game          game.Parameters
	Profile       profile.Profile
}

// Response is what the service (or the local engine) returns. It is
// consumed once by Apply and then discarded.
type Response struct {
	PlayerID             int
	TimestampMS          float64
	DifficultyAdjustment float32
	InputEnhancement     InputEnhancement
	Opponent             OpponentBehavior

	// LearningRateAdjustment is only meaningful when LearningRateSet is
	// true. The remote service always sets it; the local engine never does.
	LearningRateAdjustment float32
	LearningRateSet        bool
}

// #endregion types

// #region build-request

// BuildRequest assembles the snapshot for one player. Pure construction:
// nothing passed in is mutated, and the result aliases none of it.
func BuildRequest(p profile.Profile, g gesture.Analysis, params game.Parameters,
	history *ring.Buffer[motion.Sample], nowMS float64) Request {
	return Request{
		RequestID:     uuid.New().String(),
		PlayerID:      p.ID,
		TimestampMS:   nowMS,
		Gesture:       g,
		RecentSamples: history.Window(RecentSampleLimit),
		Game:          params.Clone(),
		Profile:       p,
	}
}

// #endregion build-request

// #region performance

// Consistency scores how evenly spaced the recent sample timestamps are
// against the 60 Hz frame target. Fewer than two samples scores 0.5.
func Consistency(samples []motion.Sample) float32 {
	if len(samples) < 2 {
		return defaultConsistency
	}
	var deviation float64
	for i := 1; i < len(samples); i++ {
		gap := math.Abs(samples[i-1].TimestampMS - samples[i].TimestampMS)
		deviation += math.Abs(gap - frameTargetMS)
	}
	mean := deviation / float64(len(samples)-1)
	score := 1 - float32(mean)/consistencyNormMS
	if score < 0 {
		return 0
	}
	return score
}

// Performance estimates the player's current performance from gesture
// confidence and input consistency.
func Performance(req Request) float32 {
	return (req.Gesture.Confidence + Consistency(req.RecentSamples)) / 2
}

// #endregion performance

// #region local-engine

// OpponentFor derives simulated-opponent behavior from the live difficulty
// and the player's skill.
func OpponentFor(difficulty, skill float32) OpponentBehavior {
	return OpponentBehavior{
		Aggression:   0.3 + difficulty*0.4,
		Intelligence: 0.5 + skill*0.3,
	}
}

// ComputeLocally is the deterministic fallback engine. It never fails and
// always enables input enhancement. It does not produce a learning-rate
// adjustment.
func ComputeLocally(req Request) Response {
	performance := Performance(req)
	return Response{
		PlayerID:             req.PlayerID,
		TimestampMS:          req.TimestampMS,
		DifficultyAdjustment: (performance - targetPerformance) * adjustmentGain,
		InputEnhancement: InputEnhancement{
			Enabled:               true,
			SensitivityMultiplier: 1 + (0.5-req.Profile.Skill)*0.2,
		},
		Opponent: OpponentFor(req.Game.Difficulty, req.Profile.Skill),
	}
}

// #endregion local-engine

// #region apply

// Apply mutates the profile and game parameters from a response under the
// difficulty clamp. The assistance level is replaced, not accumulated.
func Apply(resp Response, p *profile.Profile, params *game.Parameters) {
	params.Difficulty = game.ClampDifficulty(params.Difficulty + resp.DifficultyAdjustment)

	if resp.InputEnhancement.Enabled {
		p.Assistance = resp.InputEnhancement.SensitivityMultiplier
	}
	if resp.LearningRateSet {
		p.AdaptationSpeed = resp.LearningRateAdjustment
	}
}

// #endregion apply

// #region skill

// UpdateSkill nudges the stored skill toward the observed performance at
// the profile's learning rate, clamped to [0,1].
func UpdateSkill(p *profile.Profile, performance float32) {
	p.Skill = profile.ClampSkill(p.Skill + (performance-p.Skill)*p.LearningRate)
}

// #endregion skill
