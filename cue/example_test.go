package cue_test

import (
	"errors"
	"fmt"

	"github.com/zenibako/autocue/cue"
)

// Example generating the cue set for a 128 BPM track with the drop at 1:00
func ExampleGenerate() {
	points, err := cue.Generate(128, 60, 300)
	if err != nil {
		panic(err)
	}
	for _, p := range points {
		fmt.Printf("%-8s %s %-6s %s\n", p.Label, cue.FormatTime(p.Time), p.Type, p.Color)
	}
	// Output:
	// -32 bars 00:00 memory orange
	// -16 bars 00:30 memory yellow
	// Drop     01:00 hot    red
	// +16 bars 01:30 memory blue
	// +32 bars 02:00 memory aqua
}

// Example showing how invalid input is reported
func ExampleGenerate_invalidBPM() {
	_, err := cue.Generate(0, 60, 300)
	fmt.Println(errors.Is(err, cue.ErrInvalidBPM))
	fmt.Println(err)
	// Output:
	// true
	// invalid BPM: must be positive and finite, got 0
}
