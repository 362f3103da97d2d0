// Package replay re-runs recorded motion sessions through a real bridge
// with local-only tuning, so pipeline changes can be checked against
// known traces without hardware or a service.
package replay

import (
	"context"
	"fmt"

	"github.com/arvela/motion-bridge/internal/bridge"
	"github.com/arvela/motion-bridge/internal/game"
	"github.com/arvela/motion-bridge/internal/motion"
)

// #region types

// PlayerSummary is the per-slot outcome of a replay run.
type PlayerSummary struct {
	Skill       float32 `json:"skill"`
	Assistance  float32 `json:"assistance"`
	LastGesture string  `json:"last_gesture"`
	Connected   bool    `json:"connected"`
}

// Result aggregates a replay run.
type Result struct {
	Ticks           int             `json:"ticks"`
	AIPasses        int             `json:"ai_passes"`
	ContentTriggers int             `json:"content_triggers"`
	FinalDifficulty float32         `json:"final_difficulty"`
	Players         []PlayerSummary `json:"players"`
}

// #endregion types

// #region scripted-provider

// scriptedProvider serves the fixture tick currently selected by the
// harness. It satisfies bridge.Provider.
type scriptedProvider struct {
	ticks   []FixtureTick
	current int
}

func (p *scriptedProvider) channel(ch int) *FixtureChannel {
	if p.current < 0 || p.current >= len(p.ticks) {
		return nil
	}
	channels := p.ticks[p.current].Channels
	if ch < 0 || ch >= len(channels) {
		return nil
	}
	return &channels[ch]
}

func (p *scriptedProvider) Probe(ch int) bool {
	c := p.channel(ch)
	return c != nil && c.Connected
}

func (p *scriptedProvider) Read(ch int) (motion.Sample, bool) {
	c := p.channel(ch)
	if c == nil || c.Sample == nil {
		return motion.Sample{}, false
	}
	return c.Sample.toMotion(), true
}

// #endregion scripted-provider

// #region run

// Run replays a fixture through a fresh bridge. Tuning is local-only and
// timestamps derive from the tick index, so a fixture always reproduces
// the same result.
func Run(f Fixture) (Result, error) {
	provider := &scriptedProvider{ticks: f.Ticks, current: -1}

	contentTriggers := 0
	tick := 0
	cfg := bridge.Config{
		MaxPlayers:     f.Config.MaxPlayers,
		HistorySize:    f.Config.HistorySize,
		UpdateInterval: f.Config.UpdateInterval,
		ContentHook:    func() { contentTriggers++ },
		Now:            func() float64 { return float64(tick) * 16.67 },
	}

	b, err := bridge.New(cfg, provider, nil, nil)
	if err != nil {
		return Result{}, fmt.Errorf("replay bridge: %w", err)
	}
	if f.Config.GameType != "" {
		b.SetGameType(game.Type(f.Config.GameType))
	}

	interval := f.Config.UpdateInterval
	if interval == 0 {
		interval = 16
	}

	aiPasses := 0
	ctx := context.Background()
	for i := range f.Ticks {
		provider.current = i
		tick = i + 1
		b.Update(ctx)

		if uint64(tick)%interval == 0 {
			for ch := range f.Ticks[i].Channels {
				if p, ok := b.Profile(ch); ok && p.Connected {
					aiPasses++
				}
			}
		}
	}

	result := Result{
		Ticks:           len(f.Ticks),
		AIPasses:        aiPasses,
		ContentTriggers: contentTriggers,
		FinalDifficulty: b.Parameters().Difficulty,
		Players:         make([]PlayerSummary, f.Config.MaxPlayers),
	}
	for i := 0; i < f.Config.MaxPlayers; i++ {
		p, _ := b.Profile(i)
		result.Players[i] = PlayerSummary{
			Skill:       p.Skill,
			Assistance:  p.Assistance,
			LastGesture: string(b.EnhancedInput(i).PredictedGesture),
			Connected:   p.Connected,
		}
	}
	return result, nil
}

// #endregion run
