package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// swingFixture scripts one player swinging hard for n ticks.
func swingFixture(n int, interval uint64) Fixture {
	f := Fixture{
		Description: "one player, constant hard swing",
		Config:      FixtureConfig{MaxPlayers: 2, UpdateInterval: interval},
	}
	for i := 0; i < n; i++ {
		f.Ticks = append(f.Ticks, FixtureTick{
			Channels: []FixtureChannel{
				{Connected: true, Sample: &FixtureSample{
					Accel:       [3]float32{float32(i) * 1.5, 0, 0},
					TimestampMS: float64(i) * 16.67,
				}},
				{Connected: false},
			},
		})
	}
	return f
}

func TestRunDeterministic(t *testing.T) {
	f := swingFixture(32, 8)

	r1, err := Run(f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	r2, err := Run(f)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if r1.FinalDifficulty != r2.FinalDifficulty {
		t.Fatalf("difficulty differs across runs: %f vs %f", r1.FinalDifficulty, r2.FinalDifficulty)
	}
	if r1.Players[0].Skill != r2.Players[0].Skill {
		t.Fatalf("skill differs across runs: %f vs %f", r1.Players[0].Skill, r2.Players[0].Skill)
	}
}

func TestRunCountsAIPasses(t *testing.T) {
	r, err := Run(swingFixture(32, 8))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.Ticks != 32 {
		t.Fatalf("ticks = %d, want 32", r.Ticks)
	}
	// AI ticks at 8, 16, 24, 32 with one connected player.
	if r.AIPasses != 4 {
		t.Fatalf("ai passes = %d, want 4", r.AIPasses)
	}
	if r.Players[0].LastGesture != "swing" {
		t.Fatalf("last gesture = %q, want swing", r.Players[0].LastGesture)
	}
	if r.Players[1].Connected {
		t.Fatal("idle channel reported connected")
	}
	if r.Players[1].LastGesture != "" {
		t.Fatalf("disconnected player has gesture %q", r.Players[1].LastGesture)
	}
}

func TestRunContentTriggers(t *testing.T) {
	f := swingFixture(32, 8)
	f.Config.GameType = "adventure"
	r, err := Run(f)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.ContentTriggers != 4 {
		t.Fatalf("content triggers = %d, want 4", r.ContentTriggers)
	}
}

func TestLoadFixture(t *testing.T) {
	f := swingFixture(4, 2)
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Config.MaxPlayers != 2 || len(got.Ticks) != 4 {
		t.Fatalf("fixture mismatch: %+v", got.Config)
	}

	if _, err := LoadFixture(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing fixture loaded without error")
	}
}

func TestLoadFixtureRejectsZeroPlayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"ticks":[]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFixture(path); err == nil {
		t.Fatal("zero-player fixture accepted")
	}
}
