package game

import "testing"

func TestClampDifficulty(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{0.5, 0.5},
		{0.0, 0.1},
		{-3, 0.1},
		{1.04, 1.0},
		{0.1, 0.1},
		{1.0, 1.0},
	}
	for _, c := range cases {
		if got := ClampDifficulty(c.in); got != c.want {
			t.Fatalf("ClampDifficulty(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	p := NewParameters(4)
	p.Scores[2] = 7

	snap := p.Clone()
	p.Scores[2] = 99
	p.Difficulty = 0.9

	if snap.Scores[2] != 7 {
		t.Fatalf("snapshot score mutated: %d", snap.Scores[2])
	}
	if snap.Difficulty != 0.5 {
		t.Fatalf("snapshot difficulty mutated: %f", snap.Difficulty)
	}
}
