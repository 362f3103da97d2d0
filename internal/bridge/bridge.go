// Package bridge drives the per-tick sampling and per-interval tuning
// cadence across all player slots. A Bridge owns every piece of shared
// state (profiles, game parameters, ring buffers); callers interact with
// it from a single goroutine, once per frame.
package bridge

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/arvela/motion-bridge/internal/game"
	"github.com/arvela/motion-bridge/internal/gesture"
	"github.com/arvela/motion-bridge/internal/logging"
	"github.com/arvela/motion-bridge/internal/motion"
	"github.com/arvela/motion-bridge/internal/profile"
	"github.com/arvela/motion-bridge/internal/ring"
	"github.com/arvela/motion-bridge/internal/transport"
	"github.com/arvela/motion-bridge/internal/tuning"
)

// #region interfaces

// Provider exposes the motion hardware: a presence probe and the latest
// sample per channel. Implementations live outside the core (websocket
// feed, replay script, real pads).
type Provider interface {
	Probe(channel int) bool
	Read(channel int) (motion.Sample, bool)
}

// Tuner produces a response for every request; transport.Client is the
// production implementation. A nil Tuner runs the local engine directly.
type Tuner interface {
	Call(ctx context.Context, req tuning.Request) (tuning.Response, transport.Source)
}

// #endregion interfaces

// #region config

// Config carries the bridge dimensions and hooks.
type Config struct {
	MaxPlayers     int
	HistorySize    int
	UpdateInterval uint64 // ticks between AI passes

	// DifficultyTrendRate drifts difficulty toward the mean connected
	// skill once per AI tick. Zero disables the trend.
	DifficultyTrendRate float32

	// ContentHook fires once per AI tick while the adventure game type is
	// active. Fire-and-forget.
	ContentHook func()

	// Now supplies timestamps in milliseconds. Replaceable for
	// deterministic runs; defaults to the wall clock.
	Now func() float64
}

const (
	defaultMaxPlayers     = 4
	defaultHistorySize    = 16
	defaultUpdateInterval = 16 // once per second at 60 ticks/second
)

func (c Config) withDefaults() Config {
	if c.MaxPlayers <= 0 {
		c.MaxPlayers = defaultMaxPlayers
	}
	if c.HistorySize <= 0 {
		c.HistorySize = defaultHistorySize
	}
	if c.UpdateInterval == 0 {
		c.UpdateInterval = defaultUpdateInterval
	}
	if c.Now == nil {
		c.Now = func() float64 {
			return float64(time.Now().UnixNano()) / float64(time.Millisecond)
		}
	}
	return c
}

// #endregion config

// #region bridge-struct

type playerState struct {
	profile  profile.Profile
	history  *ring.Buffer[motion.Sample]
	gestures *ring.Buffer[gesture.Sample]
	opponent tuning.OpponentBehavior
}

// Bridge is the owned context object for one running instance. Multiple
// independent bridges can coexist; nothing here is process-global.
type Bridge struct {
	cfg      Config
	provider Provider
	tuner    Tuner
	store    *profile.Store // nil disables persistence and the tuning log

	params  game.Parameters
	players []playerState
	tick    uint64
}

// New wires a bridge. The provider is required; tuner and store are
// optional (nil means local-only tuning and no persistence).
func New(cfg Config, provider Provider, tuner Tuner, store *profile.Store) (*Bridge, error) {
	if provider == nil {
		return nil, errors.New("bridge: motion provider is required")
	}
	cfg = cfg.withDefaults()

	b := &Bridge{
		cfg:      cfg,
		provider: provider,
		tuner:    tuner,
		store:    store,
		params:   game.NewParameters(cfg.MaxPlayers),
		players:  make([]playerState, cfg.MaxPlayers),
	}

	profiles := make([]profile.Profile, cfg.MaxPlayers)
	for i := range profiles {
		profiles[i] = profile.New(i)
	}
	if store != nil {
		loaded, err := store.Load(cfg.MaxPlayers)
		if err != nil {
			return nil, err
		}
		profiles = loaded
	}

	for i := range b.players {
		b.players[i] = playerState{
			profile:  profiles[i],
			history:  ring.New[motion.Sample](cfg.HistorySize),
			gestures: ring.New[gesture.Sample](gesture.BufferSize),
		}
	}
	return b, nil
}

// #endregion bridge-struct

// #region update

// Update runs one tick: sample every connected channel, and on interval
// boundaries run the tuning pipeline per player followed by the global
// step. A tick always runs to completion.
func (b *Bridge) Update(ctx context.Context) {
	b.tick++
	b.params.Tick = b.tick

	aiTick := b.params.AIEnabled && b.tick%b.cfg.UpdateInterval == 0

	for i := range b.players {
		ps := &b.players[i]
		if !b.provider.Probe(i) {
			// Profile state persists across disconnects; only the flag drops.
			ps.profile.Connected = false
			continue
		}
		ps.profile.Connected = true

		if s, ok := b.provider.Read(i); ok {
			ps.history.Push(s)
			ps.gestures.Push(gesture.Project(s))
		}

		if aiTick {
			b.aiPass(ctx, i)
		}
	}

	if aiTick {
		b.globalPass()
	}
}

// #endregion update

// #region ai-pass

func (b *Bridge) aiPass(ctx context.Context, id int) {
	ps := &b.players[id]

	analysis := gesture.Analyze(ps.gestures)
	req := tuning.BuildRequest(ps.profile, analysis, b.params, ps.history, b.cfg.Now())

	var resp tuning.Response
	src := transport.SourceLocal
	if b.tuner != nil {
		resp, src = b.tuner.Call(ctx, req)
	} else {
		resp = tuning.ComputeLocally(req)
	}

	tuning.Apply(resp, &ps.profile, &b.params)
	tuning.UpdateSkill(&ps.profile, tuning.Performance(req))

	if b.store != nil {
		if err := b.store.Save(ps.profile); err != nil {
			log.Printf("persist profile %d: %v", id, err)
		}
		err := logging.LogTuning(b.store.DB(), logging.TuningEntry{
			RequestID:            req.RequestID,
			Tick:                 b.tick,
			PlayerID:             id,
			Gesture:              string(analysis.Type),
			Intensity:            analysis.Intensity,
			Confidence:           analysis.Confidence,
			Source:               string(src),
			DifficultyAdjustment: resp.DifficultyAdjustment,
			DifficultyAfter:      b.params.Difficulty,
		})
		if err != nil {
			log.Printf("tuning log: %v", err)
		}
	}
}

// #endregion ai-pass

// #region global-pass

// globalPass refreshes simulated-opponent behavior for connected players,
// drifts global difficulty toward the mean skill, and fires the dynamic
// content hook for the adventure variant.
func (b *Bridge) globalPass() {
	var skillSum float32
	connected := 0

	for i := range b.players {
		ps := &b.players[i]
		if !ps.profile.Connected {
			continue
		}
		ps.opponent = tuning.OpponentFor(b.params.Difficulty, ps.profile.Skill)
		skillSum += ps.profile.Skill
		connected++
	}

	if connected > 0 && b.cfg.DifficultyTrendRate > 0 {
		mean := skillSum / float32(connected)
		b.params.Difficulty = game.ClampDifficulty(
			b.params.Difficulty + (mean-b.params.Difficulty)*b.cfg.DifficultyTrendRate)
	}

	if b.params.GameType == game.TypeAdventure && b.cfg.ContentHook != nil {
		b.cfg.ContentHook()
	}
}

// #endregion global-pass

// #region enhanced-input

// EnhancedInput is the assisted view of a player's latest sample.
type EnhancedInput struct {
	Sample            motion.Sample // acceleration scaled by the assistance level
	PredictedGesture  gesture.Type
	GestureConfidence float32
}

// EnhancedInput returns the assisted input for a player. An out-of-range
// id or a disconnected player yields the zero value, never an error.
func (b *Bridge) EnhancedInput(playerID int) EnhancedInput {
	if playerID < 0 || playerID >= len(b.players) {
		return EnhancedInput{}
	}
	ps := &b.players[playerID]
	if !ps.profile.Connected {
		return EnhancedInput{}
	}
	latest, ok := ps.history.Latest()
	if !ok {
		return EnhancedInput{}
	}

	out := latest
	out.Accel = latest.Accel.Scale(ps.profile.Assistance)

	analysis := gesture.Analyze(ps.gestures)
	return EnhancedInput{
		Sample:            out,
		PredictedGesture:  analysis.Type,
		GestureConfidence: analysis.Confidence,
	}
}

// #endregion enhanced-input

// #region accessors

// SetGameType switches the active game variant.
func (b *Bridge) SetGameType(t game.Type) {
	b.params.GameType = t
}

// Parameters returns the live game parameters for the caller to read
// scores and difficulty. The bridge remains the sole writer.
func (b *Bridge) Parameters() *game.Parameters {
	return &b.params
}

// Profile returns a copy of the player's profile.
func (b *Bridge) Profile(playerID int) (profile.Profile, bool) {
	if playerID < 0 || playerID >= len(b.players) {
		return profile.Profile{}, false
	}
	return b.players[playerID].profile, true
}

// Opponent returns the simulated-opponent behavior for a player slot.
func (b *Bridge) Opponent(playerID int) (tuning.OpponentBehavior, bool) {
	if playerID < 0 || playerID >= len(b.players) {
		return tuning.OpponentBehavior{}, false
	}
	return b.players[playerID].opponent, true
}

// Tick returns the current tick count.
func (b *Bridge) Tick() uint64 {
	return b.tick
}

// Flush persists every profile. Call on shutdown; a no-op without a store.
func (b *Bridge) Flush() error {
	if b.store == nil {
		return nil
	}
	for i := range b.players {
		if err := b.store.Save(b.players[i].profile); err != nil {
			return err
		}
	}
	return nil
}

// #endregion accessors
