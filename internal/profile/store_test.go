package profile

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "bridge.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	profiles, err := store.Load(4)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(profiles) != 4 {
		t.Fatalf("got %d profiles, want 4", len(profiles))
	}
	for i, p := range profiles {
		if p.ID != i {
			t.Fatalf("profile %d has id %d", i, p.ID)
		}
		if p.Skill != 0.5 || p.Assistance != 0.3 {
			t.Fatalf("profile %d not default: %+v", i, p)
		}
		if p.PlayStyle != "balanced" {
			t.Fatalf("profile %d play style = %q", i, p.PlayStyle)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "bridge.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	p := New(2)
	p.Skill = 0.75
	p.Assistance = 1.1
	p.AdaptationSpeed = 0.08
	if err := store.Save(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Second save must update, not duplicate.
	p.Skill = 0.8
	if err := store.Save(p); err != nil {
		t.Fatalf("second save: %v", err)
	}

	profiles, err := store.Load(4)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := profiles[2]
	if got.Skill != 0.8 {
		t.Fatalf("skill = %f, want 0.8", got.Skill)
	}
	if got.Assistance != 1.1 {
		t.Fatalf("assistance = %f, want 1.1", got.Assistance)
	}
	// Untouched slot keeps defaults.
	if profiles[0].Skill != 0.5 {
		t.Fatalf("slot 0 skill = %f, want 0.5", profiles[0].Skill)
	}
}

func TestClampSkill(t *testing.T) {
	if ClampSkill(-0.2) != 0 {
		t.Fatal("negative skill not clamped to 0")
	}
	if ClampSkill(1.5) != 1 {
		t.Fatal("excess skill not clamped to 1")
	}
	if ClampSkill(0.42) != 0.42 {
		t.Fatal("in-range skill modified")
	}
}
