package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zenibako/autocue/cue"
	"github.com/zenibako/autocue/picker"
)

func newGenerateCommand() *cobra.Command {
	var (
		bpm       float64
		dropFlag  string
		duration  string
		reference float64
		tieBreak  string
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:         "generate",
		Short:       "Print the cue layout for one track without touching a library",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			drop, err := picker.ParseDropTime(dropFlag)
			if err != nil {
				return fmt.Errorf("--drop: %w", err)
			}
			length, err := picker.ParseDropTime(duration)
			if err != nil {
				return fmt.Errorf("--duration: %w", err)
			}

			var opts []cue.Option
			if cmd.Flags().Changed("snap-reference") {
				tie, err := cue.ParseTieBreak(tieBreak)
				if err != nil {
					return err
				}
				opts = append(opts, cue.WithGrid(cue.Grid{Reference: reference, Tie: tie}))
			}

			points, err := cue.Generate(bpm, drop, length, opts...)
			if err != nil {
				return err
			}
			warnings := cue.Check(points, bpm, length)

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), struct {
					Cues     []cue.Point `json:"cues"`
					Warnings []string    `json:"warnings"`
				}{points, nonNil(warnings)})
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(points))
			for _, p := range points {
				rows = append(rows, []string{
					p.Label,
					string(p.Type),
					cue.FormatTime(p.Time),
					strconv.FormatFloat(p.Time, 'f', 3, 64),
				})
			}
			writeTable(out, []column{
				{title: "Cue"},
				{title: "Type"},
				{title: "Time", numeric: true},
				{title: "Seconds", numeric: true},
			}, rows)
			for _, w := range warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&bpm, "bpm", 0, "Track tempo in beats per minute")
	cmd.Flags().StringVar(&dropFlag, "drop", "", "Drop time (seconds, mm:ss or hh:mm:ss)")
	cmd.Flags().StringVar(&duration, "duration", "", "Track length (seconds, mm:ss or hh:mm:ss)")
	cmd.Flags().Float64Var(&reference, "snap-reference", 0, "Snap cues to bars counted from this downbeat (seconds)")
	cmd.Flags().StringVar(&tieBreak, "tie-break", "half-down", "Rounding for cues exactly between two bars: half-down, half-up or half-even")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print JSON instead of a table")
	_ = cmd.MarkFlagRequired("bpm")
	_ = cmd.MarkFlagRequired("drop")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
