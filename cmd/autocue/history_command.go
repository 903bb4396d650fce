package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/zenibako/autocue/cue"
	"github.com/zenibako/autocue/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previous export runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("history is disabled (history.enabled = false)")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if runID != "" {
				records, err := store.Records(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), records)
				}
				rows := make([][]string, 0, len(records))
				for i, rec := range records {
					drop := "-"
					if rec.Drop != nil {
						drop = cue.FormatTime(*rec.Drop)
					}
					rows = append(rows, []string{strconv.Itoa(i + 1), rec.Track, string(rec.Status), drop, strconv.Itoa(len(rec.Cues)), rec.Reason})
				}
				writeTable(cmd.OutOrStdout(), []column{
					{title: "#", numeric: true},
					{title: "Track"},
					{title: "Status"},
					{title: "Drop", numeric: true},
					{title: "Cues", numeric: true},
					{title: "Reason"},
				}, rows)
				return nil
			}

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				artifact := run.Artifact
				if artifact == "" {
					artifact = "(dry run)"
				}
				rows = append(rows, []string{
					run.ID,
					run.CreatedAt.Local().Format(time.DateTime),
					yesNo(run.Complete),
					strconv.Itoa(run.Summary.Exported),
					strconv.Itoa(run.Summary.Invalidated),
					strconv.Itoa(run.Summary.Skipped),
					strconv.Itoa(run.Summary.Cues),
					artifact,
				})
			}
			writeTable(cmd.OutOrStdout(), []column{
				{title: "Run"},
				{title: "Created"},
				{title: "Complete"},
				{title: "Exported", numeric: true},
				{title: "Invalid", numeric: true},
				{title: "Skipped", numeric: true},
				{title: "Cues", numeric: true},
				{title: "File"},
			}, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the tracks of one run")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print JSON instead of a table")
	return cmd
}
