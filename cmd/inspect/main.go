package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/arvela/motion-bridge/internal/logging"
	"github.com/arvela/motion-bridge/internal/profile"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to bridge.db")
	players := flag.Int("players", 4, "number of player slots to show")
	last := flag.Int("last", 20, "show N most recent tuning decisions")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/bridge.db [--players N] [--last N] [--json]")
		os.Exit(2)
	}

	store, err := profile.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := run(store, *players, *last, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region output

type output struct {
	Profiles  []profileRow `json:"profiles"`
	Decisions []tuningRow  `json:"decisions"`
}

type profileRow struct {
	PlayerID        int     `json:"player_id"`
	Skill           float32 `json:"skill"`
	Assistance      float32 `json:"assistance"`
	LearningRate    float32 `json:"learning_rate"`
	AdaptationSpeed float32 `json:"adaptation_speed"`
	PlayStyle       string  `json:"play_style"`
}

type tuningRow struct {
	RequestID       string  `json:"request_id"`
	Tick            uint64  `json:"tick"`
	PlayerID        int     `json:"player_id"`
	Gesture         string  `json:"gesture"`
	Intensity       float32 `json:"intensity"`
	Confidence      float32 `json:"confidence"`
	Source          string  `json:"source"`
	DifficultyAdj   float32 `json:"difficulty_adj"`
	DifficultyAfter float32 `json:"difficulty_after"`
	CreatedAt       string  `json:"created_at"`
}

func run(store *profile.Store, players, last int, jsonOut bool) error {
	profiles, err := store.Load(players)
	if err != nil {
		return err
	}
	entries, err := logging.RecentTuning(store.DB(), last)
	if err != nil {
		return err
	}

	out := output{
		Profiles:  make([]profileRow, len(profiles)),
		Decisions: make([]tuningRow, len(entries)),
	}
	for i, p := range profiles {
		out.Profiles[i] = profileRow{
			PlayerID:        p.ID,
			Skill:           p.Skill,
			Assistance:      p.Assistance,
			LearningRate:    p.LearningRate,
			AdaptationSpeed: p.AdaptationSpeed,
			PlayStyle:       p.PlayStyle,
		}
	}
	for i, e := range entries {
		out.Decisions[i] = tuningRow{
			RequestID:       e.RequestID,
			Tick:            e.Tick,
			PlayerID:        e.PlayerID,
			Gesture:         e.Gesture,
			Intensity:       e.Intensity,
			Confidence:      e.Confidence,
			Source:          e.Source,
			DifficultyAdj:   e.DifficultyAdjustment,
			DifficultyAfter: e.DifficultyAfter,
			CreatedAt:       e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(out)
	}
	printTables(out)
	return nil
}

func printTables(out output) {
	fmt.Printf("%-8s  %6s  %10s  %9s  %10s  %s\n",
		"Player", "Skill", "Assist", "Learn", "Adapt", "Style")
	fmt.Printf("%-8s+-%6s+-%10s+-%9s+-%10s+-%s\n",
		"--------", "------", "----------", "---------", "----------", "----------")
	for _, p := range out.Profiles {
		fmt.Printf("%-8d  %6.3f  %10.3f  %9.3f  %10.3f  %s\n",
			p.PlayerID, p.Skill, p.Assistance, p.LearningRate, p.AdaptationSpeed, p.PlayStyle)
	}

	if len(out.Decisions) == 0 {
		fmt.Println("\nno tuning decisions logged")
		return
	}

	fmt.Printf("\n%-10s  %6s  %-6s  %-7s  %9s  %-7s  %8s  %7s  %s\n",
		"Request", "Tick", "Player", "Gesture", "Intensity", "Source", "Adj", "Diff", "Time")
	fmt.Printf("%-10s+-%6s+-%-6s+-%-7s+-%9s+-%-7s+-%8s+-%7s+-%s\n",
		"----------", "------", "------", "-------", "---------", "-------", "--------", "-------", "--------------------")
	for _, d := range out.Decisions {
		fmt.Printf("%-10s  %6d  %-6d  %-7s  %9.3f  %-7s  %+8.4f  %7.3f  %s\n",
			shortID(d.RequestID), d.Tick, d.PlayerID, d.Gesture, d.Intensity,
			d.Source, d.DifficultyAdj, d.DifficultyAfter, d.CreatedAt)
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
