package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/arvela/motion-bridge/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--json]")
		os.Exit(2)
	}

	f, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		os.Exit(2)
	}

	result, err := replay.Run(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal json: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	printResult(f, result)
}

// #endregion main

// #region output

func printResult(f replay.Fixture, r replay.Result) {
	if f.Description != "" {
		fmt.Println(f.Description)
	}
	fmt.Printf("Ticks:            %d\n", r.Ticks)
	fmt.Printf("AI passes:        %d\n", r.AIPasses)
	fmt.Printf("Content triggers: %d\n", r.ContentTriggers)
	fmt.Printf("Final difficulty: %.4f\n", r.FinalDifficulty)

	fmt.Printf("\n%-8s  %6s  %10s  %-8s  %s\n", "Player", "Skill", "Assist", "Gesture", "Connected")
	fmt.Printf("%-8s+-%6s+-%10s+-%-8s+-%s\n", "--------", "------", "----------", "--------", "---------")
	for i, p := range r.Players {
		gesture := p.LastGesture
		if gesture == "" {
			gesture = "—"
		}
		fmt.Printf("%-8d  %6.3f  %10.3f  %-8s  %v\n", i, p.Skill, p.Assistance, gesture, p.Connected)
	}
}

// #endregion output
